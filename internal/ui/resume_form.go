package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/renato0307/spotter/internal/services"
)

// ResumeForm asks whether to continue a persisted live run or start over
type ResumeForm struct {
	Cancelled bool
	Completed bool
	form      *huh.Form
	resume    bool
}

// describeOffer summarizes where the persisted run stopped
func describeOffer(offer services.ResumeOffer) string {
	return fmt.Sprintf("Started %s on %s with %d clients, stopped at client %d.",
		offer.StartedAt.Local().Format("15:04"),
		offer.SelectedDate,
		offer.SessionCount,
		offer.CurrentClientIndex+1)
}

// NewResumeForm creates the resume prompt for offer
func NewResumeForm(offer services.ResumeOffer) *ResumeForm {
	rf := &ResumeForm{resume: true}
	rf.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Resume the live session in progress?").
				Description(describeOffer(offer)).
				Affirmative("Resume").
				Negative("Start over").
				Value(&rf.resume),
		),
	)
	return rf
}

func (rf *ResumeForm) Init() tea.Cmd {
	return rf.form.Init()
}

func (rf *ResumeForm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.String() == "esc" || keyMsg.String() == "ctrl+c" {
			rf.Cancelled = true
			rf.Completed = true
			return rf, nil
		}
	}

	form, cmd := rf.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		rf.form = f
	}

	if rf.form.State == huh.StateCompleted {
		rf.Completed = true
		return rf, nil
	}
	return rf, cmd
}

func (rf *ResumeForm) View() string {
	return rf.form.View()
}

// Resume reports whether the coach chose to resume
func (rf *ResumeForm) Resume() bool {
	return rf.resume
}
