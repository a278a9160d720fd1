package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/renato0307/spotter/internal/domain"
	"github.com/renato0307/spotter/internal/logging"
	"github.com/renato0307/spotter/internal/ports"
)

// PlanningService creates client sessions in the remote store
type PlanningService struct {
	sessions ports.SessionWriter
}

// NewPlanningService creates a new PlanningService
func NewPlanningService(sessions ports.SessionWriter) *PlanningService {
	return &PlanningService{sessions: sessions}
}

// CreateSession plans a session for a client on a date
func (s *PlanningService) CreateSession(ctx context.Context, params CreateSessionParams) (domain.CoachingSession, error) {
	if _, err := domain.ParseDate(params.Date); err != nil {
		return domain.CoachingSession{}, err
	}
	if strings.TrimSpace(params.ClientName) == "" {
		return domain.CoachingSession{}, fmt.Errorf("client name is required")
	}
	if strings.TrimSpace(params.CoachID) == "" {
		return domain.CoachingSession{}, fmt.Errorf("coach id is required")
	}

	session := domain.CoachingSession{
		ClientID:   params.ClientName,
		ClientName: params.ClientName,
		CoachID:    params.CoachID,
		Date:       params.Date,
		GymName:    params.GymName,
		Exercises:  make([]domain.Exercise, 0, len(params.Exercises)),
	}
	for i, e := range params.Exercises {
		if strings.TrimSpace(e.Name) == "" {
			return domain.CoachingSession{}, fmt.Errorf("exercise %d has no name", i+1)
		}
		session.Exercises = append(session.Exercises, domain.Exercise{
			Name:     e.Name,
			Position: i,
			Reps:     e.Reps,
			Sets:     e.Sets,
			WeightKg: e.WeightKg,
		})
	}

	created, err := s.sessions.Create(ctx, session)
	if err != nil {
		logging.Logger.Error("Failed to create session", "client", params.ClientName, "date", params.Date, "error", err)
		return domain.CoachingSession{}, fmt.Errorf("failed to create session: %w", err)
	}

	logging.Logger.Info("Session planned",
		"session_id", created.ID,
		"client", created.ClientName,
		"date", created.Date,
		"exercises", len(created.Exercises))
	return created, nil
}

// ParseExercise parses "name:setsxreps@kg", e.g. "squat:3x5@100".
// Sets, reps and weight are optional.
func ParseExercise(spec string) (ExerciseParams, error) {
	name, rest, _ := strings.Cut(spec, ":")
	params := ExerciseParams{Name: strings.TrimSpace(name)}
	if params.Name == "" {
		return params, fmt.Errorf("invalid exercise %q: missing name", spec)
	}
	if rest == "" {
		return params, nil
	}

	volume, weight, hasWeight := strings.Cut(rest, "@")
	if volume != "" {
		sets, reps, ok := strings.Cut(volume, "x")
		if !ok {
			return params, fmt.Errorf("invalid exercise %q: expected setsxreps", spec)
		}
		var err error
		if params.Sets, err = parseCount(sets); err != nil {
			return params, fmt.Errorf("invalid exercise %q: bad sets: %w", spec, err)
		}
		if params.Reps, err = parseCount(reps); err != nil {
			return params, fmt.Errorf("invalid exercise %q: bad reps: %w", spec, err)
		}
	}
	if hasWeight {
		kg, err := strconv.ParseFloat(weight, 64)
		if err != nil || kg < 0 {
			return params, fmt.Errorf("invalid exercise %q: bad weight %q", spec, weight)
		}
		params.WeightKg = kg
	}
	return params, nil
}

func parseCount(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("negative count %d", n)
	}
	return n, nil
}
