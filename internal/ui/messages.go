package ui

import (
	"github.com/renato0307/spotter/internal/domain"
	"github.com/renato0307/spotter/internal/services"
)

// openedMsg is sent when the resume check finished
type openedMsg struct {
	decision services.ResumeDecision
}

// sessionsListedMsg carries the sessions planned on the selected date
type sessionsListedMsg struct {
	err      error
	sessions []domain.CoachingSession
}

// runStartedMsg is sent when a live run was started
type runStartedMsg struct {
	err error
}

// exerciseRecordedMsg is sent when a recording finished (its outcome is in the save status)
type exerciseRecordedMsg struct {
	err error
}

// sessionsRefreshedMsg is sent when the run's sessions were reloaded
type sessionsRefreshedMsg struct {
	err error
}

// saveStatusMsg carries a save indicator change
type saveStatusMsg struct {
	status domain.SaveStatus
}

// connectivityMsg carries the latest connectivity probe result
type connectivityMsg struct {
	online bool
}
