package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/renato0307/spotter/internal/domain"
	"github.com/renato0307/spotter/internal/livestate"
	"github.com/renato0307/spotter/internal/logging"
	"github.com/renato0307/spotter/internal/metrics"
	"github.com/renato0307/spotter/internal/ports"
	"github.com/renato0307/spotter/internal/savestatus"
)

// ResumeDecision is what Open decided about a previously persisted live run
type ResumeDecision string

const (
	ResumeDiscarded   ResumeDecision = "silent_restart" // state found, no progress recorded
	ResumeFetchFailed ResumeDecision = "fetch_failed"   // state found, sessions unreadable
	ResumeNone        ResumeDecision = "none"           // nothing persisted (or stale)
	ResumeOffered     ResumeDecision = "offered"
)

// transitions lists the allowed step changes of the live coaching flow
var transitions = map[domain.Step][]domain.Step{
	domain.StepSelectDate: {domain.StepSelectDate, domain.StepLive, domain.StepSummary},
	domain.StepLive:       {domain.StepLive, domain.StepSummary, domain.StepSelectDate},
	domain.StepSummary:    {domain.StepSelectDate},
}

// CanTransition reports whether the flow may move from one step to another.
// select-date → summary is only reachable by resuming a run persisted in summary.
func CanTransition(from, to domain.Step) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// LiveCoachingService builds per-coach live coaching controllers
type LiveCoachingService struct {
	clock        ports.Clock
	progress     ports.ProgressWriter
	savedDisplay time.Duration
	sessions     ports.SessionReader
	store        *livestate.Store
}

// NewLiveCoachingService creates a new LiveCoachingService.
// savedDisplay is how long "saved" stays visible before the indicator returns
// to idle; zero leaves resetting to the caller.
func NewLiveCoachingService(
	sessions ports.SessionReader,
	progress ports.ProgressWriter,
	store *livestate.Store,
	clock ports.Clock,
	savedDisplay time.Duration,
) *LiveCoachingService {
	return &LiveCoachingService{
		clock:        clock,
		progress:     progress,
		savedDisplay: savedDisplay,
		sessions:     sessions,
		store:        store,
	}
}

// ListSessions returns the sessions a coach can run live on date
func (s *LiveCoachingService) ListSessions(ctx context.Context, coachID, date string) ([]domain.CoachingSession, error) {
	if _, err := domain.ParseDate(date); err != nil {
		return nil, err
	}
	sessions, err := s.sessions.ListByDate(ctx, coachID, date)
	if err != nil {
		logging.Logger.Warn("Failed to list sessions", "coach_id", coachID, "date", date, "error", err)
		return nil, err
	}
	return sessions, nil
}

// NewController creates the controller for userID, starting at select-date.
// Call Open to check for a run to resume.
func (s *LiveCoachingService) NewController(userID string) *Controller {
	return &Controller{
		saveStatus: savestatus.NewTracker(),
		sessions:   make(map[string]domain.CoachingSession),
		state:      domain.LiveCoachingState{Step: domain.StepSelectDate},
		svc:        s,
		userID:     userID,
	}
}

// Controller drives one coach through select-date → live → summary.
// Every step or client change is persisted locally before returning, so a
// reload resumes at the last committed position. Remote write failures are
// reported through SaveStatus and never block navigation.
type Controller struct {
	mu         sync.Mutex
	offer      *domain.LiveCoachingState
	saveStatus *savestatus.Tracker
	sessions   map[string]domain.CoachingSession
	state      domain.LiveCoachingState
	svc        *LiveCoachingService
	userID     string
}

// UserID returns the coach this controller belongs to
func (c *Controller) UserID() string {
	return c.userID
}

// SaveStatus returns the tracker reporting remote write outcomes
func (c *Controller) SaveStatus() *savestatus.Tracker {
	return c.saveStatus
}

// Open enters select-date and checks for a persisted run. A resume is only
// offered when the referenced sessions show recorded progress; otherwise the
// persisted state is discarded silently. If the sessions cannot be fetched the
// flow starts fresh rather than blocking.
func (c *Controller) Open(ctx context.Context) ResumeDecision {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = domain.LiveCoachingState{Step: domain.StepSelectDate}
	c.offer = nil
	c.sessions = make(map[string]domain.CoachingSession)

	decision := c.checkResume(ctx)
	metrics.ResumeDecisions.WithLabelValues(string(decision)).Inc()
	logging.Logger.Info("Live coaching opened", "user_id", c.userID, "resume", decision)
	return decision
}

func (c *Controller) checkResume(ctx context.Context) ResumeDecision {
	persisted, ok := c.svc.store.Load(ctx, c.userID)
	if !ok {
		return ResumeNone
	}

	sessions, err := c.svc.sessions.FetchByIDs(ctx, persisted.LiveSessionIDs)
	if err != nil {
		logging.Logger.Warn("Failed to fetch sessions to resume, starting fresh",
			"user_id", c.userID,
			"error", err)
		c.svc.store.Clear(ctx, c.userID)
		return ResumeFetchFailed
	}

	if !domain.SessionsHaveProgress(domain.Summaries(sessions)) {
		c.svc.store.Clear(ctx, c.userID)
		return ResumeDiscarded
	}

	c.cacheSessions(sessions)
	c.offer = &persisted
	return ResumeOffered
}

// Resume continues the offered run at its persisted step and client
func (c *Controller) Resume(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.offer == nil {
		return domain.ErrNoResumeOffer
	}
	offer := *c.offer
	if offer.IsStale(c.svc.clock.Now()) {
		logging.Logger.Info("Offered live run went stale, starting fresh", "user_id", c.userID)
		c.offer = nil
		c.svc.store.Clear(ctx, c.userID)
		return domain.ErrNoResumeOffer
	}
	if err := offer.Validate(); err != nil {
		logging.Logger.Warn("Persisted live run is inconsistent, starting fresh",
			"user_id", c.userID,
			"error", err)
		c.offer = nil
		c.svc.store.Clear(ctx, c.userID)
		return fmt.Errorf("cannot resume: %w", err)
	}
	if !CanTransition(c.state.Step, offer.Step) {
		return fmt.Errorf("%w: %s → %s", domain.ErrInvalidTransition, c.state.Step, offer.Step)
	}

	c.offer = nil
	c.state = offer
	c.svc.store.Save(ctx, c.userID, c.state)

	logging.Logger.Info("Live run resumed",
		"user_id", c.userID,
		"step", c.state.Step,
		"client_index", c.state.CurrentClientIndex)
	return nil
}

// Restart discards any persisted run and returns to select-date
func (c *Controller) Restart(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !CanTransition(c.state.Step, domain.StepSelectDate) {
		return fmt.Errorf("%w: %s → %s", domain.ErrInvalidTransition, c.state.Step, domain.StepSelectDate)
	}

	c.svc.store.Clear(ctx, c.userID)
	c.offer = nil
	c.sessions = make(map[string]domain.CoachingSession)
	c.state = domain.LiveCoachingState{Step: domain.StepSelectDate}

	logging.Logger.Info("Live run restarted", "user_id", c.userID)
	return nil
}

// SelectDate lists the coach's sessions on date. The step stays select-date;
// a listing failure is returned and changes nothing.
func (c *Controller) SelectDate(ctx context.Context, coachID, date string) ([]domain.CoachingSession, error) {
	c.mu.Lock()
	step := c.state.Step
	c.mu.Unlock()
	if step != domain.StepSelectDate {
		return nil, fmt.Errorf("%w: date selection outside select-date (%s)", domain.ErrInvalidTransition, step)
	}

	sessions, err := c.svc.ListSessions(ctx, coachID, date)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.SelectedDate = date
	return sessions, nil
}

// Start begins a live run over sessionIDs (in coaching order) on date.
// Any offered resume is dropped and the new run replaces the persisted one.
func (c *Controller) Start(ctx context.Context, date string, sessionIDs []string) error {
	if _, err := domain.ParseDate(date); err != nil {
		return err
	}
	ids := dedupe(sessionIDs)
	if len(ids) == 0 {
		return domain.ErrNoSessions
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Step != domain.StepSelectDate {
		return fmt.Errorf("%w: %s → %s", domain.ErrInvalidTransition, c.state.Step, domain.StepLive)
	}

	c.offer = nil
	c.state = domain.NewLiveCoachingState(date, ids, c.svc.clock.Now())
	c.svc.store.Save(ctx, c.userID, c.state)

	// Session details are best effort: the run stays navigable offline
	sessions, err := c.svc.sessions.FetchByIDs(ctx, ids)
	if err != nil {
		logging.Logger.Warn("Failed to fetch live sessions", "user_id", c.userID, "error", err)
	} else {
		c.sessions = make(map[string]domain.CoachingSession, len(sessions))
		c.cacheSessions(sessions)
	}

	logging.Logger.Info("Live run started",
		"user_id", c.userID,
		"date", date,
		"sessions", len(ids))
	return nil
}

// NextClient moves to the next client of the run
func (c *Controller) NextClient(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.goToClient(ctx, c.state.CurrentClientIndex+1)
}

// PreviousClient moves to the previous client of the run
func (c *Controller) PreviousClient(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.goToClient(ctx, c.state.CurrentClientIndex-1)
}

// GoToClient moves to the client at index
func (c *Controller) GoToClient(ctx context.Context, index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.goToClient(ctx, index)
}

func (c *Controller) goToClient(ctx context.Context, index int) error {
	if c.state.Step != domain.StepLive {
		return fmt.Errorf("%w: client navigation outside live step (%s)", domain.ErrInvalidTransition, c.state.Step)
	}
	if index < 0 || index >= len(c.state.LiveSessionIDs) {
		return fmt.Errorf("%w: %d of %d", domain.ErrClientIndexOutOfRange, index, len(c.state.LiveSessionIDs))
	}

	c.state.CurrentClientIndex = index
	c.svc.store.Save(ctx, c.userID, c.state)
	return nil
}

// Finish ends the run and shows the summary. Nothing is left to resume.
func (c *Controller) Finish(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Step != domain.StepLive {
		return fmt.Errorf("%w: %s → %s", domain.ErrInvalidTransition, c.state.Step, domain.StepSummary)
	}

	// Summary is terminal: persist the step change, then drop the run
	c.state.Step = domain.StepSummary
	c.svc.store.Save(ctx, c.userID, c.state)
	c.svc.store.Clear(ctx, c.userID)

	logging.Logger.Info("Live run finished", "user_id", c.userID, "sessions", len(c.state.LiveSessionIDs))
	return nil
}

// RecordExercise records an outcome for an exercise of a session in the run.
// The local view is updated immediately; the remote write is reported through
// SaveStatus. Only invalid input is returned as an error.
func (c *Controller) RecordExercise(ctx context.Context, sessionID string, exerciseIndex int, outcome domain.ExerciseOutcome) error {
	if !outcome.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidOutcome, outcome)
	}

	c.mu.Lock()
	if c.state.Step != domain.StepLive {
		c.mu.Unlock()
		return fmt.Errorf("%w: recording outside live step (%s)", domain.ErrInvalidTransition, c.state.Step)
	}
	if !contains(c.state.LiveSessionIDs, sessionID) {
		c.mu.Unlock()
		return fmt.Errorf("%w: %s is not part of this run", domain.ErrSessionNotFound, sessionID)
	}

	_, cached := c.sessions[sessionID]
	c.mu.Unlock()

	if !cached {
		// Not fetched yet (offline start): a failed fetch is a failed save
		fetched, err := c.fetchSession(ctx, sessionID)
		if err != nil {
			c.saveStatus.Track(ctx, func(context.Context) error { return err })
			return nil
		}
		c.mu.Lock()
		if _, ok := c.sessions[sessionID]; !ok {
			c.sessions[sessionID] = fetched
		}
		c.mu.Unlock()
	}

	c.mu.Lock()
	updated, err := c.sessions[sessionID].Apply(exerciseIndex, outcome)
	if err != nil {
		c.mu.Unlock()
		return err
	}
	c.sessions[sessionID] = updated
	update := ports.ProgressUpdate{
		CurrentExerciseIndex: updated.CurrentExerciseIndex,
		ExerciseID:           updated.Exercises[exerciseIndex].ID,
		Outcome:              outcome,
		SessionID:            sessionID,
	}
	c.mu.Unlock()

	seq, err := c.saveStatus.Track(ctx, func(ctx context.Context) error {
		return c.svc.progress.UpdateProgress(ctx, update)
	})
	if err == nil {
		c.scheduleReset(seq)
	}
	return nil
}

// Refresh reloads the sessions of the run from the remote store
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	ids := append([]string(nil), c.state.LiveSessionIDs...)
	c.mu.Unlock()

	if len(ids) == 0 {
		return nil
	}
	sessions, err := c.svc.sessions.FetchByIDs(ctx, ids)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.cacheSessions(sessions)
	return nil
}

// View returns a snapshot of the controller
func (c *Controller) View() ControllerView {
	c.mu.Lock()
	defer c.mu.Unlock()

	view := ControllerView{
		CurrentClientIndex: c.state.CurrentClientIndex,
		LiveSessionIDs:     append([]string(nil), c.state.LiveSessionIDs...),
		SaveStatus:         c.saveStatus.Snapshot(),
		SelectedDate:       c.state.SelectedDate,
		Step:               c.state.Step,
	}
	if c.state.Step == domain.StepLive {
		view.CurrentSessionID = c.state.CurrentSessionID()
	}
	if c.offer != nil {
		view.ResumeOffer = &ResumeOffer{
			CurrentClientIndex: c.offer.CurrentClientIndex,
			SelectedDate:       c.offer.SelectedDate,
			SessionCount:       len(c.offer.LiveSessionIDs),
			StartedAt:          c.offer.StartedAt,
			Step:               c.offer.Step,
		}
	}
	for _, id := range c.state.LiveSessionIDs {
		if s, ok := c.sessions[id]; ok {
			view.Sessions = append(view.Sessions, s)
		}
	}
	return view
}

func (c *Controller) fetchSession(ctx context.Context, sessionID string) (domain.CoachingSession, error) {
	sessions, err := c.svc.sessions.FetchByIDs(ctx, []string{sessionID})
	if err != nil {
		return domain.CoachingSession{}, err
	}
	if len(sessions) == 0 {
		return domain.CoachingSession{}, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, sessionID)
	}
	return sessions[0], nil
}

func (c *Controller) scheduleReset(seq uint64) {
	if c.svc.savedDisplay <= 0 {
		return
	}
	time.AfterFunc(c.svc.savedDisplay, func() {
		c.saveStatus.Reset(seq)
	})
}

// cacheSessions must be called with mu held
func (c *Controller) cacheSessions(sessions []domain.CoachingSession) {
	for _, s := range sessions {
		c.sessions[s.ID] = s
	}
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	result := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		result = append(result, id)
	}
	return result
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
