package api

import (
	"github.com/renato0307/spotter/internal/domain"
	"github.com/renato0307/spotter/internal/services"
)

type exerciseResponse struct {
	Completed bool    `json:"completed"`
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Reps      int     `json:"reps"`
	Sets      int     `json:"sets"`
	Skipped   bool    `json:"skipped"`
	WeightKg  float64 `json:"weightKg"`
}

type sessionResponse struct {
	ClientName           string             `json:"clientName"`
	CurrentExerciseIndex int                `json:"currentExerciseIndex"`
	Date                 string             `json:"date"`
	Done                 bool               `json:"done"`
	Exercises            []exerciseResponse `json:"exercises"`
	GymName              string             `json:"gymName,omitempty"`
	ID                   string             `json:"id"`
}

type resumeOfferResponse struct {
	CurrentClientIndex int         `json:"currentClientIndex"`
	SelectedDate       string      `json:"selectedDate"`
	SessionCount       int         `json:"sessionCount"`
	StartedAt          int64       `json:"startedAt"`
	Step               domain.Step `json:"step"`
}

type saveStatusResponse struct {
	domain.SaveStatus
	Symbol string `json:"symbol,omitempty"`
}

type viewResponse struct {
	CurrentClientIndex int                  `json:"currentClientIndex"`
	CurrentSessionID   string               `json:"currentSessionId,omitempty"`
	LiveSessionIDs     []string             `json:"liveSessionIds"`
	Online             bool                 `json:"online"`
	ResumeOffer        *resumeOfferResponse `json:"resumeOffer,omitempty"`
	SaveStatus         saveStatusResponse   `json:"saveStatus"`
	SelectedDate       string               `json:"selectedDate"`
	Sessions           []sessionResponse    `json:"sessions"`
	Step               domain.Step          `json:"step"`
}

type openResponse struct {
	Decision services.ResumeDecision `json:"decision"`
	View     viewResponse            `json:"view"`
}

type startRequest struct {
	Date       string   `json:"date" binding:"required"`
	SessionIDs []string `json:"sessionIds" binding:"required"`
}

type goToRequest struct {
	Index *int `json:"index" binding:"required"`
}

type exerciseRequest struct {
	ExerciseIndex *int                   `json:"exerciseIndex" binding:"required"`
	Outcome       domain.ExerciseOutcome `json:"outcome" binding:"required"`
	SessionID     string                 `json:"sessionId" binding:"required"`
}

func toSessionResponse(s domain.CoachingSession) sessionResponse {
	exercises := make([]exerciseResponse, len(s.Exercises))
	for i, e := range s.Exercises {
		exercises[i] = exerciseResponse{
			Completed: e.Completed,
			ID:        e.ID,
			Name:      e.Name,
			Reps:      e.Reps,
			Sets:      e.Sets,
			Skipped:   e.Skipped,
			WeightKg:  e.WeightKg,
		}
	}
	return sessionResponse{
		ClientName:           s.ClientName,
		CurrentExerciseIndex: s.CurrentExerciseIndex,
		Date:                 s.Date,
		Done:                 s.Done(),
		Exercises:            exercises,
		GymName:              s.GymName,
		ID:                   s.ID,
	}
}

func toSessionResponses(sessions []domain.CoachingSession) []sessionResponse {
	result := make([]sessionResponse, len(sessions))
	for i, s := range sessions {
		result[i] = toSessionResponse(s)
	}
	return result
}

func toSaveStatusResponse(status domain.SaveStatus) saveStatusResponse {
	return saveStatusResponse{SaveStatus: status, Symbol: status.State.Symbol()}
}

func toViewResponse(view services.ControllerView, online bool) viewResponse {
	ids := view.LiveSessionIDs
	if ids == nil {
		ids = []string{}
	}
	resp := viewResponse{
		CurrentClientIndex: view.CurrentClientIndex,
		CurrentSessionID:   view.CurrentSessionID,
		LiveSessionIDs:     ids,
		Online:             online,
		SaveStatus:         toSaveStatusResponse(view.SaveStatus),
		SelectedDate:       view.SelectedDate,
		Sessions:           toSessionResponses(view.Sessions),
		Step:               view.Step,
	}
	if offer := view.ResumeOffer; offer != nil {
		resp.ResumeOffer = &resumeOfferResponse{
			CurrentClientIndex: offer.CurrentClientIndex,
			SelectedDate:       offer.SelectedDate,
			SessionCount:       offer.SessionCount,
			StartedAt:          offer.StartedAt.UnixMilli(),
			Step:               offer.Step,
		}
	}
	return resp
}
