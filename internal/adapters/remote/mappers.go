package remote

import (
	"sort"

	"github.com/renato0307/spotter/internal/domain"
)

// sessionModelToDomain converts a SessionModel (GORM) to domain.CoachingSession
func sessionModelToDomain(m SessionModel) domain.CoachingSession {
	exercises := make([]ExerciseModel, len(m.Exercises))
	copy(exercises, m.Exercises)
	sort.SliceStable(exercises, func(i, j int) bool {
		return exercises[i].Position < exercises[j].Position
	})

	result := domain.CoachingSession{
		ClientID:             m.ClientID,
		ClientName:           m.ClientName,
		CoachID:              m.CoachID,
		CurrentExerciseIndex: m.CurrentExerciseIndex,
		Date:                 m.Date,
		Exercises:            make([]domain.Exercise, len(exercises)),
		GymName:              m.GymName,
		ID:                   m.ID,
		UpdatedAt:            m.UpdatedAt,
	}
	for i, e := range exercises {
		result.Exercises[i] = domain.Exercise{
			Completed: e.Completed,
			ID:        e.ID,
			Name:      e.Name,
			Position:  e.Position,
			Reps:      e.Reps,
			Sets:      e.Sets,
			Skipped:   e.Skipped,
			WeightKg:  e.WeightKg,
		}
	}
	return result
}

// domainToSessionModel converts a domain.CoachingSession to SessionModel (GORM)
func domainToSessionModel(s domain.CoachingSession) SessionModel {
	model := SessionModel{
		ClientID:             s.ClientID,
		ClientName:           s.ClientName,
		CoachID:              s.CoachID,
		CurrentExerciseIndex: s.CurrentExerciseIndex,
		Date:                 s.Date,
		Exercises:            make([]ExerciseModel, len(s.Exercises)),
		GymName:              s.GymName,
		ID:                   s.ID,
	}
	for i, e := range s.Exercises {
		model.Exercises[i] = ExerciseModel{
			Completed: e.Completed,
			ID:        e.ID,
			Name:      e.Name,
			Position:  e.Position,
			Reps:      e.Reps,
			SessionID: s.ID,
			Sets:      e.Sets,
			Skipped:   e.Skipped,
			WeightKg:  e.WeightKg,
		}
	}
	return model
}
