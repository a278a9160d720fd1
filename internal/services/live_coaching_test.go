package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/spotter/internal/adapters/storage"
	"github.com/renato0307/spotter/internal/clock"
	"github.com/renato0307/spotter/internal/domain"
	"github.com/renato0307/spotter/internal/livestate"
	"github.com/renato0307/spotter/internal/ports"
	portsmocks "github.com/renato0307/spotter/internal/ports/mocks"
)

const testUser = "coach-1"

var testNow = time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)

type testHarness struct {
	clock    *clock.Fake
	kv       *storage.MemoryKVStore
	progress *portsmocks.MockProgressWriter
	sessions *portsmocks.MockSessionReader
	store    *livestate.Store
	svc      *LiveCoachingService
}

func newHarness(t *testing.T) *testHarness {
	t.Helper()
	h := &testHarness{
		clock:    clock.NewFake(testNow),
		kv:       storage.NewMemoryKVStore(),
		progress: portsmocks.NewMockProgressWriter(t),
		sessions: portsmocks.NewMockSessionReader(t),
	}
	h.store = livestate.NewStore(h.kv, h.clock)
	h.svc = NewLiveCoachingService(h.sessions, h.progress, h.store, h.clock, 0)
	return h
}

func newSession(id string, completed ...bool) domain.CoachingSession {
	s := domain.CoachingSession{
		ClientName: "client " + id,
		Date:       "2024-05-10",
		ID:         id,
		Exercises: []domain.Exercise{
			{ID: id + "-e0", Name: "Squat", Position: 0},
			{ID: id + "-e1", Name: "Row", Position: 1},
		},
	}
	for i, c := range completed {
		s.Exercises[i].Completed = c
	}
	return s
}

func persistedLive(index int, ids ...string) domain.LiveCoachingState {
	state := domain.NewLiveCoachingState("2024-05-10", ids, testNow)
	state.CurrentClientIndex = index
	return state
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from domain.Step
		to   domain.Step
		want bool
	}{
		{domain.StepSelectDate, domain.StepLive, true},
		{domain.StepLive, domain.StepLive, true},
		{domain.StepLive, domain.StepSummary, true},
		{domain.StepLive, domain.StepSelectDate, true},
		{domain.StepSummary, domain.StepSelectDate, true},
		{domain.StepSummary, domain.StepLive, false},
		{domain.StepSummary, domain.StepSummary, false},
		{domain.Step("bogus"), domain.StepLive, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestOpen_NothingPersisted(t *testing.T) {
	h := newHarness(t)
	c := h.svc.NewController(testUser)

	decision := c.Open(context.Background())

	assert.Equal(t, ResumeNone, decision)
	view := c.View()
	assert.Equal(t, domain.StepSelectDate, view.Step)
	assert.Nil(t, view.ResumeOffer)
	h.sessions.AssertNotCalled(t, "FetchByIDs", mock.Anything, mock.Anything)
}

func TestOpen_OffersResumeWhenProgressExists(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.store.Save(ctx, testUser, persistedLive(1, "s1", "s2"))
	h.sessions.EXPECT().FetchByIDs(mock.Anything, []string{"s1", "s2"}).
		Return([]domain.CoachingSession{newSession("s1", true), newSession("s2")}, nil)

	c := h.svc.NewController(testUser)
	decision := c.Open(ctx)

	assert.Equal(t, ResumeOffered, decision)
	view := c.View()
	assert.Equal(t, domain.StepSelectDate, view.Step)
	require.NotNil(t, view.ResumeOffer)
	assert.Equal(t, 1, view.ResumeOffer.CurrentClientIndex)
	assert.Equal(t, 2, view.ResumeOffer.SessionCount)
	assert.Equal(t, domain.StepLive, view.ResumeOffer.Step)
}

func TestOpen_DiscardsSilentlyWithoutProgress(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.store.Save(ctx, testUser, persistedLive(1, "s1", "s2"))
	h.sessions.EXPECT().FetchByIDs(mock.Anything, []string{"s1", "s2"}).
		Return([]domain.CoachingSession{newSession("s1"), newSession("s2")}, nil)

	c := h.svc.NewController(testUser)
	decision := c.Open(ctx)

	assert.Equal(t, ResumeDiscarded, decision)
	assert.Nil(t, c.View().ResumeOffer)
	_, ok := h.store.Load(ctx, testUser)
	assert.False(t, ok, "state without progress must be cleared")
}

func TestResume_StaleOfferStartsFresh(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.store.Save(ctx, testUser, persistedLive(1, "s1", "s2"))
	h.sessions.EXPECT().FetchByIDs(mock.Anything, []string{"s1", "s2"}).
		Return([]domain.CoachingSession{newSession("s1", true), newSession("s2")}, nil)

	c := h.svc.NewController(testUser)
	require.Equal(t, ResumeOffered, c.Open(ctx))

	h.clock.Advance(domain.StaleAfter + time.Minute)

	assert.ErrorIs(t, c.Resume(ctx), domain.ErrNoResumeOffer)
	view := c.View()
	assert.Equal(t, domain.StepSelectDate, view.Step)
	assert.Nil(t, view.ResumeOffer)
	_, found, err := h.kv.Get(ctx, livestate.Key(testUser))
	require.NoError(t, err)
	assert.False(t, found, "stale offer must be cleared")
}

func TestOpen_FetchFailureStartsFresh(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.store.Save(ctx, testUser, persistedLive(0, "s1"))
	h.sessions.EXPECT().FetchByIDs(mock.Anything, []string{"s1"}).
		Return(nil, errors.New("connection refused"))

	c := h.svc.NewController(testUser)
	decision := c.Open(ctx)

	assert.Equal(t, ResumeFetchFailed, decision)
	assert.Nil(t, c.View().ResumeOffer)
	assert.Equal(t, domain.StepSelectDate, c.View().Step)
	_, ok := h.store.Load(ctx, testUser)
	assert.False(t, ok)
}

func TestOpen_StaleStateIsIgnored(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.store.Save(ctx, testUser, persistedLive(0, "s1"))
	h.clock.Advance(domain.StaleAfter + time.Millisecond)

	c := h.svc.NewController(testUser)
	decision := c.Open(ctx)

	assert.Equal(t, ResumeNone, decision)
	h.sessions.AssertNotCalled(t, "FetchByIDs", mock.Anything, mock.Anything)
}

func TestResume_JumpsToPersistedClient(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.store.Save(ctx, testUser, persistedLive(1, "s1", "s2"))
	h.sessions.EXPECT().FetchByIDs(mock.Anything, []string{"s1", "s2"}).
		Return([]domain.CoachingSession{newSession("s1", true), newSession("s2")}, nil)

	c := h.svc.NewController(testUser)
	c.Open(ctx)
	require.NoError(t, c.Resume(ctx))

	view := c.View()
	assert.Equal(t, domain.StepLive, view.Step)
	assert.Equal(t, 1, view.CurrentClientIndex)
	assert.Equal(t, "s2", view.CurrentSessionID)
	assert.Nil(t, view.ResumeOffer)
	assert.Len(t, view.Sessions, 2)

	persisted, ok := h.store.Load(ctx, testUser)
	require.True(t, ok)
	assert.Equal(t, 1, persisted.CurrentClientIndex)
	assert.Equal(t, testNow, persisted.StartedAt, "resuming keeps the original start time")
}

func TestResume_WithoutOffer(t *testing.T) {
	h := newHarness(t)
	c := h.svc.NewController(testUser)
	c.Open(context.Background())

	err := c.Resume(context.Background())

	assert.ErrorIs(t, err, domain.ErrNoResumeOffer)
}

func TestResume_InconsistentStateStartsFresh(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.store.Save(ctx, testUser, persistedLive(5, "s1"))
	h.sessions.EXPECT().FetchByIDs(mock.Anything, []string{"s1"}).
		Return([]domain.CoachingSession{newSession("s1", true)}, nil)

	c := h.svc.NewController(testUser)
	require.Equal(t, ResumeOffered, c.Open(ctx))

	err := c.Resume(ctx)

	assert.ErrorIs(t, err, domain.ErrClientIndexOutOfRange)
	assert.Equal(t, domain.StepSelectDate, c.View().Step)
	_, ok := h.store.Load(ctx, testUser)
	assert.False(t, ok)
}

func TestRestart_ClearsOffer(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.store.Save(ctx, testUser, persistedLive(1, "s1", "s2"))
	h.sessions.EXPECT().FetchByIDs(mock.Anything, []string{"s1", "s2"}).
		Return([]domain.CoachingSession{newSession("s1", true), newSession("s2")}, nil)

	c := h.svc.NewController(testUser)
	c.Open(ctx)
	require.NoError(t, c.Restart(ctx))

	view := c.View()
	assert.Equal(t, domain.StepSelectDate, view.Step)
	assert.Nil(t, view.ResumeOffer)
	_, ok := h.store.Load(ctx, testUser)
	assert.False(t, ok)
}

func TestStart_PersistsFreshRun(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.sessions.EXPECT().FetchByIDs(mock.Anything, []string{"s1", "s2"}).
		Return([]domain.CoachingSession{newSession("s1"), newSession("s2")}, nil)

	c := h.svc.NewController(testUser)
	c.Open(ctx)
	require.NoError(t, c.Start(ctx, "2024-05-10", []string{"s1", "s2", "s1", ""}))

	view := c.View()
	assert.Equal(t, domain.StepLive, view.Step)
	assert.Equal(t, 0, view.CurrentClientIndex)
	assert.Equal(t, []string{"s1", "s2"}, view.LiveSessionIDs)

	persisted, ok := h.store.Load(ctx, testUser)
	require.True(t, ok)
	assert.Equal(t, domain.StepLive, persisted.Step)
	assert.Equal(t, "2024-05-10", persisted.SelectedDate)
	assert.Equal(t, testNow, persisted.StartedAt)
}

func TestStart_RejectsBadInput(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	c := h.svc.NewController(testUser)

	assert.ErrorIs(t, c.Start(ctx, "10/05/2024", []string{"s1"}), domain.ErrInvalidDate)
	assert.ErrorIs(t, c.Start(ctx, "2024-05-10", nil), domain.ErrNoSessions)
	assert.ErrorIs(t, c.Start(ctx, "2024-05-10", []string{""}), domain.ErrNoSessions)
	assert.Equal(t, domain.StepSelectDate, c.View().Step)
}

func TestStart_OfflineStillNavigable(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.sessions.EXPECT().FetchByIDs(mock.Anything, []string{"s1", "s2"}).
		Return(nil, errors.New("offline"))

	c := h.svc.NewController(testUser)
	require.NoError(t, c.Start(ctx, "2024-05-10", []string{"s1", "s2"}))
	require.NoError(t, c.NextClient(ctx))

	view := c.View()
	assert.Equal(t, 1, view.CurrentClientIndex)
	assert.Empty(t, view.Sessions)
}

func TestNavigation_BoundsAndPersistence(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.sessions.EXPECT().FetchByIDs(mock.Anything, mock.Anything).
		Return([]domain.CoachingSession{newSession("s1"), newSession("s2"), newSession("s3")}, nil)

	c := h.svc.NewController(testUser)
	require.NoError(t, c.Start(ctx, "2024-05-10", []string{"s1", "s2", "s3"}))

	assert.ErrorIs(t, c.PreviousClient(ctx), domain.ErrClientIndexOutOfRange)
	require.NoError(t, c.NextClient(ctx))
	require.NoError(t, c.NextClient(ctx))
	assert.ErrorIs(t, c.NextClient(ctx), domain.ErrClientIndexOutOfRange)
	assert.Equal(t, 2, c.View().CurrentClientIndex)

	require.NoError(t, c.GoToClient(ctx, 1))
	assert.ErrorIs(t, c.GoToClient(ctx, -1), domain.ErrClientIndexOutOfRange)
	assert.ErrorIs(t, c.GoToClient(ctx, 3), domain.ErrClientIndexOutOfRange)

	persisted, ok := h.store.Load(ctx, testUser)
	require.True(t, ok)
	assert.Equal(t, 1, persisted.CurrentClientIndex)
}

func TestNavigation_OutsideLiveStep(t *testing.T) {
	h := newHarness(t)
	c := h.svc.NewController(testUser)

	assert.ErrorIs(t, c.NextClient(context.Background()), domain.ErrInvalidTransition)
	assert.ErrorIs(t, c.Finish(context.Background()), domain.ErrInvalidTransition)
}

func TestNavigation_LocalWriteFailureDoesNotBlock(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.sessions.EXPECT().FetchByIDs(mock.Anything, mock.Anything).
		Return([]domain.CoachingSession{newSession("s1"), newSession("s2")}, nil)
	h.kv.FailSet(errors.New("quota exceeded"))

	c := h.svc.NewController(testUser)
	require.NoError(t, c.Start(ctx, "2024-05-10", []string{"s1", "s2"}))
	require.NoError(t, c.NextClient(ctx))

	assert.Equal(t, 1, c.View().CurrentClientIndex)
	_, ok := h.store.Load(ctx, testUser)
	assert.False(t, ok)
}

func TestFinish_ClearsPersistedRun(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.sessions.EXPECT().FetchByIDs(mock.Anything, mock.Anything).
		Return([]domain.CoachingSession{newSession("s1")}, nil)

	c := h.svc.NewController(testUser)
	require.NoError(t, c.Start(ctx, "2024-05-10", []string{"s1"}))
	require.NoError(t, c.Finish(ctx))

	assert.Equal(t, domain.StepSummary, c.View().Step)
	_, ok := h.store.Load(ctx, testUser)
	assert.False(t, ok)

	assert.ErrorIs(t, c.NextClient(ctx), domain.ErrInvalidTransition)
	require.NoError(t, c.Restart(ctx))
	assert.Equal(t, domain.StepSelectDate, c.View().Step)
}

func TestRecordExercise_SavesRemotely(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.sessions.EXPECT().FetchByIDs(mock.Anything, mock.Anything).
		Return([]domain.CoachingSession{newSession("s1")}, nil)
	h.progress.EXPECT().UpdateProgress(mock.Anything, ports.ProgressUpdate{
		CurrentExerciseIndex: 1,
		ExerciseID:           "s1-e0",
		Outcome:              domain.OutcomeCompleted,
		SessionID:            "s1",
	}).Return(nil)

	c := h.svc.NewController(testUser)
	require.NoError(t, c.Start(ctx, "2024-05-10", []string{"s1"}))
	require.NoError(t, c.RecordExercise(ctx, "s1", 0, domain.OutcomeCompleted))

	view := c.View()
	assert.Equal(t, domain.SaveSaved, view.SaveStatus.State)
	current, ok := view.CurrentSession()
	require.True(t, ok)
	assert.True(t, current.Exercises[0].Completed)
	assert.Equal(t, 1, current.CurrentExerciseIndex)
}

func TestRecordExercise_RemoteFailureKeepsFlowMoving(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.sessions.EXPECT().FetchByIDs(mock.Anything, mock.Anything).
		Return([]domain.CoachingSession{newSession("s1"), newSession("s2")}, nil)
	h.progress.EXPECT().UpdateProgress(mock.Anything, mock.Anything).
		Return(errors.New("network down"))

	c := h.svc.NewController(testUser)
	require.NoError(t, c.Start(ctx, "2024-05-10", []string{"s1", "s2"}))

	err := c.RecordExercise(ctx, "s1", 1, domain.OutcomeSkipped)
	require.NoError(t, err, "remote failures are reported through save status")

	status := c.View().SaveStatus
	assert.Equal(t, domain.SaveError, status.State)
	assert.Contains(t, status.Message, "network down")

	require.NoError(t, c.NextClient(ctx))
	persisted, ok := h.store.Load(ctx, testUser)
	require.True(t, ok)
	assert.Equal(t, 1, persisted.CurrentClientIndex)
}

func TestRecordExercise_FetchesUncachedSession(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.sessions.EXPECT().FetchByIDs(mock.Anything, []string{"s1"}).
		Return(nil, errors.New("offline")).Once()
	h.sessions.EXPECT().FetchByIDs(mock.Anything, []string{"s1"}).
		Return([]domain.CoachingSession{newSession("s1")}, nil).Once()
	h.progress.EXPECT().UpdateProgress(mock.Anything, ports.ProgressUpdate{
		CurrentExerciseIndex: 2,
		ExerciseID:           "s1-e1",
		Outcome:              domain.OutcomeCompleted,
		SessionID:            "s1",
	}).Return(nil)

	c := h.svc.NewController(testUser)
	require.NoError(t, c.Start(ctx, "2024-05-10", []string{"s1"}))
	require.NoError(t, c.RecordExercise(ctx, "s1", 1, domain.OutcomeCompleted))

	view := c.View()
	assert.Equal(t, domain.SaveSaved, view.SaveStatus.State)
	require.Len(t, view.Sessions, 1)
	assert.True(t, view.Sessions[0].Exercises[1].Completed)
}

func TestRecordExercise_UncachedBadIndexMatchesCached(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.sessions.EXPECT().FetchByIDs(mock.Anything, []string{"s1"}).
		Return(nil, errors.New("offline")).Once()
	h.sessions.EXPECT().FetchByIDs(mock.Anything, []string{"s1"}).
		Return([]domain.CoachingSession{newSession("s1")}, nil).Once()

	c := h.svc.NewController(testUser)
	require.NoError(t, c.Start(ctx, "2024-05-10", []string{"s1"}))

	err := c.RecordExercise(ctx, "s1", 7, domain.OutcomeCompleted)
	assert.ErrorIs(t, err, domain.ErrExerciseIndexOutOfRange)
	assert.Equal(t, domain.SaveIdle, c.View().SaveStatus.State)
	h.progress.AssertNotCalled(t, "UpdateProgress", mock.Anything, mock.Anything)

	// The fetched session is cached, so the same input now fails on the cached path
	assert.ErrorIs(t, c.RecordExercise(ctx, "s1", -1, domain.OutcomeCompleted), domain.ErrExerciseIndexOutOfRange)
}

func TestRecordExercise_UncachedFetchFailureIsSaveError(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.sessions.EXPECT().FetchByIDs(mock.Anything, []string{"s1"}).
		Return(nil, errors.New("offline"))

	c := h.svc.NewController(testUser)
	require.NoError(t, c.Start(ctx, "2024-05-10", []string{"s1"}))

	require.NoError(t, c.RecordExercise(ctx, "s1", 0, domain.OutcomeCompleted))
	status := c.View().SaveStatus
	assert.Equal(t, domain.SaveError, status.State)
	assert.Contains(t, status.Message, "offline")
}

func TestRecordExercise_RejectsBadInput(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.sessions.EXPECT().FetchByIDs(mock.Anything, mock.Anything).
		Return([]domain.CoachingSession{newSession("s1")}, nil)

	c := h.svc.NewController(testUser)
	assert.ErrorIs(t, c.RecordExercise(ctx, "s1", 0, domain.OutcomeCompleted), domain.ErrInvalidTransition)

	require.NoError(t, c.Start(ctx, "2024-05-10", []string{"s1"}))
	assert.ErrorIs(t, c.RecordExercise(ctx, "s1", 0, "done"), domain.ErrInvalidOutcome)
	assert.ErrorIs(t, c.RecordExercise(ctx, "s9", 0, domain.OutcomeCompleted), domain.ErrSessionNotFound)
	assert.ErrorIs(t, c.RecordExercise(ctx, "s1", 7, domain.OutcomeCompleted), domain.ErrExerciseIndexOutOfRange)
	assert.Equal(t, domain.SaveIdle, c.View().SaveStatus.State)
}

func TestSelectDate_ListsSessions(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.sessions.EXPECT().ListByDate(mock.Anything, "coach", "2024-05-10").
		Return([]domain.CoachingSession{newSession("s1"), newSession("s2")}, nil)

	c := h.svc.NewController(testUser)
	sessions, err := c.SelectDate(ctx, "coach", "2024-05-10")

	require.NoError(t, err)
	assert.Len(t, sessions, 2)
	assert.Equal(t, "2024-05-10", c.View().SelectedDate)

	_, err = c.SelectDate(ctx, "coach", "tomorrow")
	assert.ErrorIs(t, err, domain.ErrInvalidDate)
}

func TestSelectDate_ListingFailure(t *testing.T) {
	h := newHarness(t)
	h.sessions.EXPECT().ListByDate(mock.Anything, "coach", "2024-05-10").
		Return(nil, errors.New("timeout"))

	c := h.svc.NewController(testUser)
	_, err := c.SelectDate(context.Background(), "coach", "2024-05-10")

	require.Error(t, err)
	assert.Equal(t, domain.StepSelectDate, c.View().Step)
	assert.Empty(t, c.View().SelectedDate)
}

func TestReload_ResumesAtLastCommittedClient(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.sessions.EXPECT().FetchByIDs(mock.Anything, []string{"s1", "s2", "s3"}).
		Return([]domain.CoachingSession{newSession("s1", true), newSession("s2"), newSession("s3")}, nil)

	first := h.svc.NewController(testUser)
	require.NoError(t, first.Start(ctx, "2024-05-10", []string{"s1", "s2", "s3"}))
	require.NoError(t, first.GoToClient(ctx, 2))

	h.clock.Advance(3 * time.Hour)
	reloaded := h.svc.NewController(testUser)
	require.Equal(t, ResumeOffered, reloaded.Open(ctx))
	require.NoError(t, reloaded.Resume(ctx))

	assert.Equal(t, "s3", reloaded.View().CurrentSessionID)
}
