package services

import (
	"time"

	"github.com/renato0307/spotter/internal/domain"
)

// CreateSessionParams contains parameters for planning a client session
type CreateSessionParams struct {
	ClientName string
	CoachID    string
	Date       string
	Exercises  []ExerciseParams
	GymName    string
}

// ExerciseParams describes one planned exercise
type ExerciseParams struct {
	Name     string
	Reps     int
	Sets     int
	WeightKg float64
}

// ResumeOffer describes a persisted run the coach may resume
type ResumeOffer struct {
	CurrentClientIndex int
	SelectedDate       string
	SessionCount       int
	StartedAt          time.Time
	Step               domain.Step
}

// ControllerView is a snapshot of a live coaching controller.
// Sessions holds the cached details of the run, in coaching order.
type ControllerView struct {
	CurrentClientIndex int
	CurrentSessionID   string
	LiveSessionIDs     []string
	ResumeOffer        *ResumeOffer
	SaveStatus         domain.SaveStatus
	SelectedDate       string
	Sessions           []domain.CoachingSession
	Step               domain.Step
}

// CurrentSession returns the cached session being coached, if any
func (v ControllerView) CurrentSession() (domain.CoachingSession, bool) {
	for _, s := range v.Sessions {
		if s.ID == v.CurrentSessionID {
			return s, true
		}
	}
	return domain.CoachingSession{}, false
}
