package ui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/spotter/internal/adapters/storage"
	"github.com/renato0307/spotter/internal/clock"
	"github.com/renato0307/spotter/internal/domain"
	"github.com/renato0307/spotter/internal/livestate"
	"github.com/renato0307/spotter/internal/ports"
	portsmocks "github.com/renato0307/spotter/internal/ports/mocks"
	"github.com/renato0307/spotter/internal/services"
)

var modelNow = time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)

type modelHarness struct {
	ctrl     *services.Controller
	model    *Model
	progress *portsmocks.MockProgressWriter
	sessions *portsmocks.MockSessionReader
	store    *livestate.Store
}

func newModelHarness(t *testing.T) *modelHarness {
	t.Helper()
	fake := clock.NewFake(modelNow)
	h := &modelHarness{
		progress: portsmocks.NewMockProgressWriter(t),
		sessions: portsmocks.NewMockSessionReader(t),
	}
	h.store = livestate.NewStore(storage.NewMemoryKVStore(), fake)
	svc := services.NewLiveCoachingService(h.sessions, h.progress, h.store, fake, 0)
	h.ctrl = svc.NewController("coach-1")
	h.model = NewModel(context.Background(), h.ctrl, Options{
		Clock: fake,
		Keys:  NewKeyMap(nil),
	})
	t.Cleanup(h.model.Close)
	return h
}

func testSession(id, client string) domain.CoachingSession {
	return domain.CoachingSession{
		ClientName: client,
		Date:       "2024-05-10",
		ID:         id,
		Exercises: []domain.Exercise{
			{ID: id + "-e0", Name: "Squat", Position: 0},
			{ID: id + "-e1", Name: "Row", Position: 1},
		},
	}
}

// startLive puts the model in the live state with two clients
func (h *modelHarness) startLive(t *testing.T) {
	t.Helper()
	h.sessions.EXPECT().FetchByIDs(mock.Anything, []string{"s1", "s2"}).
		Return([]domain.CoachingSession{testSession("s1", "Ana"), testSession("s2", "Bruno")}, nil)
	require.NoError(t, h.ctrl.Start(context.Background(), "2024-05-10", []string{"s1", "s2"}))
	h.model.enterCurrentStep()
	require.Equal(t, stateLive, h.model.state)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_OpenWithoutRunShowsDateForm(t *testing.T) {
	h := newModelHarness(t)

	msg := h.model.openCmd()()
	h.model.Update(msg)

	assert.Equal(t, stateSelectingDate, h.model.state)
	require.NotNil(t, h.model.dateForm)
	form, ok := h.model.dateForm.Content().(*DateForm)
	require.True(t, ok)
	assert.Equal(t, "2024-05-10", form.Result().Date)
}

func TestModel_OpenWithProgressShowsResumePrompt(t *testing.T) {
	h := newModelHarness(t)
	state := domain.NewLiveCoachingState("2024-05-10", []string{"s1"}, modelNow)
	h.store.Save(context.Background(), "coach-1", state)

	done := testSession("s1", "Ana")
	done.Exercises[0].Completed = true
	done.CurrentExerciseIndex = 1
	h.sessions.EXPECT().FetchByIDs(mock.Anything, []string{"s1"}).
		Return([]domain.CoachingSession{done}, nil)

	h.model.Update(h.model.openCmd()())

	assert.Equal(t, stateResumePrompt, h.model.state)
	assert.NotNil(t, h.model.resumeForm)
}

func TestModel_ClientNavigation(t *testing.T) {
	h := newModelHarness(t)
	h.startLive(t)

	h.model.Update(runes("l"))
	assert.Equal(t, 1, h.model.view.CurrentClientIndex)
	assert.Equal(t, "s2", h.model.view.CurrentSessionID)

	h.model.Update(runes("1"))
	assert.Equal(t, 0, h.model.view.CurrentClientIndex)

	h.model.Update(runes("9"))
	assert.ErrorIs(t, h.model.err, domain.ErrClientIndexOutOfRange)
	assert.Equal(t, 0, h.model.view.CurrentClientIndex)

	h.model.Update(runes("l"))
	assert.NoError(t, h.model.err)
}

func TestModel_ExerciseCursorIsClamped(t *testing.T) {
	h := newModelHarness(t)
	h.startLive(t)

	h.model.Update(runes("k"))
	assert.Equal(t, 0, h.model.cursor)

	h.model.Update(runes("j"))
	h.model.Update(runes("j"))
	h.model.Update(runes("j"))
	assert.Equal(t, 1, h.model.cursor)
}

func TestModel_CompleteRecordsSelectedExercise(t *testing.T) {
	h := newModelHarness(t)
	h.startLive(t)
	h.progress.EXPECT().UpdateProgress(mock.Anything, mock.MatchedBy(func(u ports.ProgressUpdate) bool {
		return u.SessionID == "s1" && u.ExerciseID == "s1-e0" && u.Outcome == domain.OutcomeCompleted
	})).Return(nil)

	_, cmd := h.model.Update(runes("c"))
	require.NotNil(t, cmd)
	assert.Equal(t, 1, h.model.cursor, "cursor moves to the next exercise")

	h.model.Update(cmd())

	session, ok := h.model.view.CurrentSession()
	require.True(t, ok)
	assert.True(t, session.Exercises[0].Completed)
	assert.Equal(t, domain.SaveSaved, h.ctrl.SaveStatus().Snapshot().State)
}

func TestModel_FinishShowsSummary(t *testing.T) {
	h := newModelHarness(t)
	h.startLive(t)

	h.model.Update(runes("F"))

	assert.Equal(t, stateSummary, h.model.state)
	assert.Contains(t, h.model.View(), "Live run of 2024-05-10 finished")
	assert.False(t, h.store.Lookup(context.Background(), "coach-1").Found())
}

func TestModel_CommandPaletteRunsAction(t *testing.T) {
	h := newModelHarness(t)
	h.startLive(t)

	h.model.Update(runes("p"))
	require.Equal(t, statePalette, h.model.state)
	assert.Contains(t, h.model.View(), "Command Palette")

	for _, r := range "fin" {
		h.model.Update(runes(string(r)))
	}
	require.Len(t, h.model.palette.actions, 1)
	assert.Equal(t, "finish", h.model.palette.actions[0].Name)

	h.model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, stateSummary, h.model.state)
}

func TestModel_CommandPaletteCancel(t *testing.T) {
	h := newModelHarness(t)
	h.startLive(t)

	h.model.Update(runes(":"))
	h.model.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, stateLive, h.model.state)
	assert.Nil(t, h.model.palette)
}

func TestModel_HelpReturnsToPreviousState(t *testing.T) {
	h := newModelHarness(t)
	h.startLive(t)

	h.model.Update(runes("?"))
	require.Equal(t, stateHelp, h.model.state)

	h.model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, stateLive, h.model.state)
}

func TestModel_OfflineBanner(t *testing.T) {
	h := newModelHarness(t)
	h.startLive(t)

	h.model.Update(connectivityMsg{online: false})
	assert.Contains(t, h.model.View(), "Offline")

	h.model.Update(connectivityMsg{online: true})
	assert.NotContains(t, h.model.View(), "Offline")
}

func TestModel_SaveStatusIsShown(t *testing.T) {
	h := newModelHarness(t)
	h.startLive(t)

	h.model.Update(saveStatusMsg{status: domain.SaveStatus{State: domain.SaveError, Message: "boom"}})

	assert.Equal(t, domain.SaveError, h.model.saveStatus.State)
	assert.Contains(t, h.model.View(), domain.SaveError.Symbol())
}

func TestModel_ForceQuit(t *testing.T) {
	h := newModelHarness(t)

	_, cmd := h.model.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestClientIndexForKey(t *testing.T) {
	keys := []string{"1", "2", "3"}

	index, ok := clientIndexForKey("2", keys)
	assert.True(t, ok)
	assert.Equal(t, 1, index)

	_, ok = clientIndexForKey("x", keys)
	assert.False(t, ok)
}
