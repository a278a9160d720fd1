package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// StaleAfter is how long a persisted live coaching state stays resumable
const StaleAfter = 24 * time.Hour

// DateLayout is the layout of workout dates (YYYY-MM-DD)
const DateLayout = "2006-01-02"

// Step is the position of the coach in the live coaching flow
type Step string

const (
	StepSelectDate Step = "select-date"
	StepLive       Step = "live"
	StepSummary    Step = "summary"
)

// Valid reports whether the step is one of the known flow steps
func (s Step) Valid() bool {
	switch s {
	case StepSelectDate, StepLive, StepSummary:
		return true
	}
	return false
}

// LiveCoachingState is the UI intent persisted locally, one per user.
// The remote session data stays authoritative; this only records where
// the coach was. StartedAt is kept in UTC at millisecond precision and an
// empty session list is nil; see Normalize.
type LiveCoachingState struct {
	CurrentClientIndex int
	LiveSessionIDs     []string
	SelectedDate       string
	StartedAt          time.Time
	Step               Step
}

// NewLiveCoachingState creates the state for a freshly started live run
func NewLiveCoachingState(date string, sessionIDs []string, now time.Time) LiveCoachingState {
	return LiveCoachingState{
		CurrentClientIndex: 0,
		LiveSessionIDs:     append([]string(nil), sessionIDs...),
		SelectedDate:       date,
		StartedAt:          now,
		Step:               StepLive,
	}.Normalize()
}

// Normalize returns the state in the form it has after a JSON round trip:
// StartedAt in UTC truncated to milliseconds and a nil LiveSessionIDs when
// there are no sessions.
func (s LiveCoachingState) Normalize() LiveCoachingState {
	s.StartedAt = s.StartedAt.UTC().Truncate(time.Millisecond)
	if len(s.LiveSessionIDs) == 0 {
		s.LiveSessionIDs = nil
	}
	return s
}

// IsStale reports whether the state is older than StaleAfter at now.
// A state exactly StaleAfter old is still valid.
func (s LiveCoachingState) IsStale(now time.Time) bool {
	return now.Sub(s.StartedAt) > StaleAfter
}

// CurrentSessionID returns the session being coached, or "" outside the live step
func (s LiveCoachingState) CurrentSessionID() string {
	if s.CurrentClientIndex < 0 || s.CurrentClientIndex >= len(s.LiveSessionIDs) {
		return ""
	}
	return s.LiveSessionIDs[s.CurrentClientIndex]
}

// Validate checks the invariants the flow controller must keep
func (s LiveCoachingState) Validate() error {
	if !s.Step.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStep, s.Step)
	}
	if s.Step == StepLive {
		if len(s.LiveSessionIDs) == 0 {
			return ErrNoSessions
		}
		if s.CurrentClientIndex < 0 || s.CurrentClientIndex >= len(s.LiveSessionIDs) {
			return fmt.Errorf("%w: %d of %d", ErrClientIndexOutOfRange, s.CurrentClientIndex, len(s.LiveSessionIDs))
		}
	}
	return nil
}

// liveCoachingStateJSON is the wire shape shared with the tablet web client.
// startedAt is epoch milliseconds.
type liveCoachingStateJSON struct {
	CurrentClientIndex int             `json:"currentClientIndex"`
	LiveSessionIDs     []string        `json:"liveSessionIds"`
	SelectedDate       string          `json:"selectedDate"`
	StartedAt          json.RawMessage `json:"startedAt"`
	Step               Step            `json:"step"`
}

// MarshalJSON implements json.Marshaler
func (s LiveCoachingState) MarshalJSON() ([]byte, error) {
	startedAt, err := json.Marshal(s.StartedAt.UnixMilli())
	if err != nil {
		return nil, err
	}
	ids := s.LiveSessionIDs
	if ids == nil {
		ids = []string{}
	}
	return json.Marshal(liveCoachingStateJSON{
		CurrentClientIndex: s.CurrentClientIndex,
		LiveSessionIDs:     ids,
		SelectedDate:       s.SelectedDate,
		StartedAt:          startedAt,
		Step:               s.Step,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
// startedAt is accepted as epoch milliseconds or an RFC3339 string.
func (s *LiveCoachingState) UnmarshalJSON(data []byte) error {
	var raw liveCoachingStateJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw.StartedAt) == 0 {
		return fmt.Errorf("missing startedAt")
	}

	var startedAt time.Time
	var millis int64
	if err := json.Unmarshal(raw.StartedAt, &millis); err == nil {
		startedAt = time.UnixMilli(millis).UTC()
	} else {
		var text string
		if err := json.Unmarshal(raw.StartedAt, &text); err != nil {
			return fmt.Errorf("invalid startedAt: %w", err)
		}
		parsed, err := time.Parse(time.RFC3339Nano, text)
		if err != nil {
			return fmt.Errorf("invalid startedAt: %w", err)
		}
		startedAt = parsed.UTC()
	}

	*s = LiveCoachingState{
		CurrentClientIndex: raw.CurrentClientIndex,
		LiveSessionIDs:     raw.LiveSessionIDs,
		SelectedDate:       raw.SelectedDate,
		StartedAt:          startedAt,
		Step:               raw.Step,
	}.Normalize()
	return nil
}

// ParseDate validates a YYYY-MM-DD workout date
func ParseDate(date string) (time.Time, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return t, nil
}
