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

// DateFormResult contains the result of the date selection form
type DateFormResult struct {
	Cancelled bool
	Date      string
	Error     error
	Sessions  []domain.CoachingSession
}

// DateForm asks for a workout date and lists the sessions planned on it
type DateForm struct {
	Completed  bool
	controller *services.Controller
	ctx        context.Context
	form       *huh.Form
	loading    bool
	result     DateFormResult
	spinner    spinner.Model
}

// NewDateForm creates a new date selection form, prefilled with date
func NewDateForm(ctx context.Context, controller *services.Controller, date string) *DateForm {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = theme.SpinnerStyle

	df := &DateForm{
		controller: controller,
		ctx:        ctx,
		result:     DateFormResult{Date: date},
		spinner:    s,
	}

	df.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Workout date").
				Description("YYYY-MM-DD").
				Placeholder(date).
				Value(&df.result.Date).
				Validate(func(s string) error {
					_, err := domain.ParseDate(s)
					return err
				}),
		),
	)

	return df
}

func (df *DateForm) Init() tea.Cmd {
	return df.form.Init()
}

func (df *DateForm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(sessionsListedMsg); ok {
		df.loading = false
		df.Completed = true
		switch {
		case msg.err != nil:
			logging.Logger.Error("Failed to list sessions", "date", df.result.Date, "error", msg.err)
			df.result.Error = msg.err
		case len(msg.sessions) == 0:
			df.result.Error = fmt.Errorf("no sessions planned on %s", df.result.Date)
		default:
			df.result.Sessions = msg.sessions
		}
		return df, nil
	}

	if df.loading {
		var cmd tea.Cmd
		df.spinner, cmd = df.spinner.Update(msg)
		return df, cmd
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.String() == "esc" || keyMsg.String() == "ctrl+c" {
			df.Completed = true
			df.result.Cancelled = true
			return df, nil
		}
	}

	form, cmd := df.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		df.form = f
	}

	if df.form.State == huh.StateCompleted {
		df.loading = true
		return df, tea.Batch(df.listSessionsCmd(), df.spinner.Tick)
	}

	return df, cmd
}

func (df *DateForm) View() string {
	if df.loading {
		return fmt.Sprintf("\n%s Loading sessions for %s...\n", df.spinner.View(), df.result.Date)
	}
	return df.form.View()
}

// Result returns the form result
func (df *DateForm) Result() DateFormResult {
	return df.result
}

func (df *DateForm) listSessionsCmd() tea.Cmd {
	controller, ctx, date := df.controller, df.ctx, df.result.Date
	return func() tea.Msg {
		sessions, err := controller.SelectDate(ctx, controller.UserID(), date)
		return sessionsListedMsg{err: err, sessions: sessions}
	}
}
