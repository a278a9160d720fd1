package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/renato0307/spotter/internal/domain"
	"github.com/renato0307/spotter/internal/logging"
	"github.com/renato0307/spotter/internal/services"
	"github.com/renato0307/spotter/internal/theme"
)

// SessionPickerResult contains the result of the session picker
type SessionPickerResult struct {
	Cancelled  bool
	Error      error
	SessionIDs []string
}

// SessionPicker lets the coach choose which sessions to run live, then starts the run
type SessionPicker struct {
	Completed  bool
	controller *services.Controller
	ctx        context.Context
	date       string
	form       *huh.Form
	result     SessionPickerResult
	spinner    spinner.Model
	starting   bool
}

// sessionLabel renders a session as a picker option
func sessionLabel(s domain.CoachingSession) string {
	label := s.ClientName
	if s.GymName != "" {
		label += " · " + s.GymName
	}
	return fmt.Sprintf("%s · %d exercises", label, len(s.Exercises))
}

// NewSessionPicker creates a picker over sessions, all selected by default
func NewSessionPicker(ctx context.Context, controller *services.Controller, date string, sessions []domain.CoachingSession) *SessionPicker {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = theme.SpinnerStyle

	sp := &SessionPicker{
		controller: controller,
		ctx:        ctx,
		date:       date,
		spinner:    s,
	}

	options := make([]huh.Option[string], len(sessions))
	for i, session := range sessions {
		options[i] = huh.NewOption(sessionLabel(session), session.ID).Selected(true)
	}

	sp.form = huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title(fmt.Sprintf("Clients on %s", date)).
				Description("space toggles, enter starts the live run").
				Options(options...).
				Value(&sp.result.SessionIDs).
				Validate(func(ids []string) error {
					if len(ids) == 0 {
						return fmt.Errorf("pick at least one client")
					}
					return nil
				}),
		),
	)

	return sp
}

func (sp *SessionPicker) Init() tea.Cmd {
	return sp.form.Init()
}

func (sp *SessionPicker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(runStartedMsg); ok {
		sp.starting = false
		sp.Completed = true
		if msg.err != nil {
			logging.Logger.Error("Failed to start live run", "error", msg.err)
			sp.result.Error = msg.err
		}
		return sp, nil
	}

	if sp.starting {
		var cmd tea.Cmd
		sp.spinner, cmd = sp.spinner.Update(msg)
		return sp, cmd
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.String() == "esc" || keyMsg.String() == "ctrl+c" {
			sp.Completed = true
			sp.result.Cancelled = true
			return sp, nil
		}
	}

	form, cmd := sp.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		sp.form = f
	}

	if sp.form.State == huh.StateCompleted {
		sp.starting = true
		return sp, tea.Batch(sp.startCmd(), sp.spinner.Tick)
	}

	return sp, cmd
}

func (sp *SessionPicker) View() string {
	if sp.starting {
		return fmt.Sprintf("\n%s Starting live run...\n", sp.spinner.View())
	}
	return sp.form.View()
}

// Result returns the picker result
func (sp *SessionPicker) Result() SessionPickerResult {
	return sp.result
}

func (sp *SessionPicker) startCmd() tea.Cmd {
	controller, ctx, date, ids := sp.controller, sp.ctx, sp.date, sp.result.SessionIDs
	return func() tea.Msg {
		return runStartedMsg{err: controller.Start(ctx, date, ids)}
	}
}
