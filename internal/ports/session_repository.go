package ports

import (
	"context"

	"github.com/renato0307/spotter/internal/domain"
)

// ProgressUpdate is a progress write for one exercise of a session
type ProgressUpdate struct {
	CurrentExerciseIndex int
	ExerciseID           string
	Outcome              domain.ExerciseOutcome
	SessionID            string
}

// SessionReader reads coaching sessions from the remote store
type SessionReader interface {
	// FetchByIDs returns the sessions with the given IDs, in the order of ids.
	// Unknown IDs are skipped.
	FetchByIDs(ctx context.Context, ids []string) ([]domain.CoachingSession, error)
	ListByDate(ctx context.Context, coachID, date string) ([]domain.CoachingSession, error)
}

// ProgressWriter updates session progress fields in the remote store
type ProgressWriter interface {
	UpdateProgress(ctx context.Context, update ProgressUpdate) error
}

// SessionWriter creates sessions in the remote store
type SessionWriter interface {
	Create(ctx context.Context, session domain.CoachingSession) (domain.CoachingSession, error)
}

// SessionRepository is the composite interface
type SessionRepository interface {
	SessionReader
	ProgressWriter
	SessionWriter
	Close() error
}
