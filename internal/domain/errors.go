package domain

import "errors"

var (
	ErrClientIndexOutOfRange   = errors.New("client index out of range")
	ErrExerciseIndexOutOfRange = errors.New("exercise index out of range")
	ErrInvalidDate             = errors.New("invalid workout date")
	ErrInvalidOutcome          = errors.New("invalid exercise outcome")
	ErrInvalidStep             = errors.New("invalid live coaching step")
	ErrInvalidTransition       = errors.New("invalid live coaching transition")
	ErrNoResumeOffer           = errors.New("no live run to resume")
	ErrNoSessions              = errors.New("no sessions selected")
	ErrSessionNotFound         = errors.New("session not found")
	ErrStateNotFound           = errors.New("live coaching state not found")
	ErrUnauthenticated         = errors.New("not authenticated")
)
