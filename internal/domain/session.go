package domain

import (
	"time"
)

// ExerciseOutcome is what the coach recorded for an exercise during a live run
type ExerciseOutcome string

const (
	OutcomeCompleted ExerciseOutcome = "completed"
	OutcomePending   ExerciseOutcome = "pending"
	OutcomeSkipped   ExerciseOutcome = "skipped"
)

// Valid reports whether the outcome is known
func (o ExerciseOutcome) Valid() bool {
	switch o {
	case OutcomeCompleted, OutcomePending, OutcomeSkipped:
		return true
	}
	return false
}

// Exercise is one planned exercise of a client's workout session
type Exercise struct {
	Completed bool
	ID        string
	Name      string
	Position  int
	Reps      int
	Sets      int
	Skipped   bool
	WeightKg  float64
}

// CoachingSession is a client's workout session on a given date (domain entity)
type CoachingSession struct {
	ClientID             string
	ClientName           string
	CoachID              string
	CurrentExerciseIndex int
	Date                 string
	Exercises            []Exercise
	GymName              string
	ID                   string
	UpdatedAt            time.Time
}

// Summary projects the session to its progress view
func (s CoachingSession) Summary() SessionSummary {
	exercises := make([]ExerciseProgress, len(s.Exercises))
	for i, e := range s.Exercises {
		exercises[i] = ExerciseProgress{Completed: e.Completed, Skipped: e.Skipped}
	}
	return SessionSummary{
		CurrentExerciseIndex: s.CurrentExerciseIndex,
		Exercises:            exercises,
		ID:                   s.ID,
	}
}

// Summaries projects sessions to their progress views
func Summaries(sessions []CoachingSession) []SessionSummary {
	result := make([]SessionSummary, len(sessions))
	for i, s := range sessions {
		result[i] = s.Summary()
	}
	return result
}

// Apply records an outcome for the exercise at index and returns the updated
// session. The current exercise index moves past the recorded exercise unless
// the outcome is pending.
func (s CoachingSession) Apply(exerciseIndex int, outcome ExerciseOutcome) (CoachingSession, error) {
	if exerciseIndex < 0 || exerciseIndex >= len(s.Exercises) {
		return s, ErrExerciseIndexOutOfRange
	}
	if !outcome.Valid() {
		return s, ErrInvalidOutcome
	}

	exercises := make([]Exercise, len(s.Exercises))
	copy(exercises, s.Exercises)
	s.Exercises = exercises

	ex := &s.Exercises[exerciseIndex]
	ex.Completed = outcome == OutcomeCompleted
	ex.Skipped = outcome == OutcomeSkipped

	if outcome != OutcomePending && exerciseIndex+1 > s.CurrentExerciseIndex {
		s.CurrentExerciseIndex = exerciseIndex + 1
	}
	return s, nil
}

// Done reports whether every exercise has been completed or skipped
func (s CoachingSession) Done() bool {
	for _, e := range s.Exercises {
		if !e.Completed && !e.Skipped {
			return false
		}
	}
	return true
}

// Counts returns how many exercises were completed and skipped
func (s CoachingSession) Counts() (completed, skipped int) {
	for _, e := range s.Exercises {
		if e.Completed {
			completed++
		}
		if e.Skipped {
			skipped++
		}
	}
	return completed, skipped
}
