package domain

// ExerciseProgress is the per-exercise progress recorded on a session
type ExerciseProgress struct {
	Completed bool `json:"completed"`
	Skipped   bool `json:"skipped"`
}

// SessionSummary is the progress view of one session, as read from the remote store
type SessionSummary struct {
	CurrentExerciseIndex int                `json:"current_exercise_index"`
	Exercises            []ExerciseProgress `json:"exercises,omitempty"`
	ID                   string             `json:"id"`
}

// SessionsHaveProgress reports whether any session has recorded progress:
// an exercise index past the first one, or any completed or skipped exercise.
// It is used to decide between offering a resume and silently starting fresh.
func SessionsHaveProgress(sessions []SessionSummary) bool {
	for _, s := range sessions {
		if s.CurrentExerciseIndex > 0 {
			return true
		}
		for _, e := range s.Exercises {
			if e.Completed || e.Skipped {
				return true
			}
		}
	}
	return false
}
