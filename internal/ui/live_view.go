package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"

	"github.com/renato0307/spotter/internal/domain"
	"github.com/renato0307/spotter/internal/services"
	"github.com/renato0307/spotter/internal/theme"
)

// renderSaveIndicator renders the save status; the spinner animates while saving
func renderSaveIndicator(status domain.SaveStatus, s spinner.Model) string {
	switch status.State {
	case domain.SaveSaving:
		return s.View() + theme.SavingStyle.Render(" Saving...")
	case domain.SaveSaved:
		return theme.SavedStyle.Render(domain.SymbolSaved + " Saved")
	case domain.SaveError:
		msg := domain.SymbolSaveError + " Not saved"
		if status.Message != "" {
			msg += ": " + status.Message
		}
		return theme.SaveErrorStyle.Render(msg)
	}
	return ""
}

// renderClientTabs renders one tab per client of the run, marking the current one
func renderClientTabs(view services.ControllerView) string {
	names := make(map[string]domain.CoachingSession, len(view.Sessions))
	for _, s := range view.Sessions {
		names[s.ID] = s
	}

	tabs := make([]string, len(view.LiveSessionIDs))
	for i, id := range view.LiveSessionIDs {
		label := fmt.Sprintf("%d", i+1)
		if s, ok := names[id]; ok {
			label = fmt.Sprintf("%d %s", i+1, s.ClientName)
			if s.Done() {
				label += " " + domain.SymbolSaved
			}
		}
		if i == view.CurrentClientIndex {
			tabs[i] = theme.ClientTabActiveStyle.Render(label)
		} else {
			tabs[i] = theme.ClientTabStyle.Render(label)
		}
	}
	return strings.Join(tabs, " ")
}

// renderExercises renders the exercises of session with the cursor on index cursor
func renderExercises(session domain.CoachingSession, cursor int) string {
	if len(session.Exercises) == 0 {
		return theme.MutedStyle.Render("No exercises planned.") + "\n"
	}

	var b strings.Builder
	for i, e := range session.Exercises {
		pointer := "  "
		if i == cursor {
			pointer = theme.CursorStyle.Render("▸ ")
		}

		mark, style := "○", theme.PendingStyle
		switch {
		case e.Completed:
			mark, style = domain.SymbolSaved, theme.CompletedStyle
		case e.Skipped:
			mark, style = "–", theme.SkippedStyle
		}

		line := fmt.Sprintf("%s %s", mark, e.Name)
		if e.Sets > 0 || e.Reps > 0 {
			line += fmt.Sprintf("  %dx%d", e.Sets, e.Reps)
		}
		if e.WeightKg > 0 {
			line += fmt.Sprintf(" @ %gkg", e.WeightKg)
		}
		b.WriteString(pointer + style.Render(line) + "\n")
	}
	return b.String()
}

// renderLive renders the live step
func renderLive(view services.ControllerView, cursor int) string {
	var b strings.Builder
	b.WriteString(renderClientTabs(view) + "\n\n")

	session, ok := view.CurrentSession()
	if !ok {
		b.WriteString(theme.MutedStyle.Render("Session details are not available yet. Press r to reload.") + "\n")
		return b.String()
	}

	title := session.ClientName
	if session.GymName != "" {
		title += " · " + session.GymName
	}
	completed, skipped := session.Counts()
	b.WriteString(theme.SubtitleStyle.Render(title) + "  ")
	b.WriteString(theme.MutedStyle.Render(fmt.Sprintf("%d/%d done, %d skipped", completed, len(session.Exercises), skipped)) + "\n\n")
	b.WriteString(renderExercises(session, cursor))
	return b.String()
}

// renderSummary renders the summary step; restartKey is shown as the way to start over
func renderSummary(view services.ControllerView, restartKey string) string {
	var b strings.Builder
	b.WriteString(theme.SubtitleStyle.Render(fmt.Sprintf("Live run of %s finished", view.SelectedDate)) + "\n\n")

	if len(view.Sessions) == 0 {
		b.WriteString(theme.MutedStyle.Render(fmt.Sprintf("%d clients coached.", len(view.LiveSessionIDs))) + "\n")
	}
	for _, s := range view.Sessions {
		completed, skipped := s.Counts()
		line := fmt.Sprintf("%-20s %d completed, %d skipped, %d pending",
			s.ClientName, completed, skipped, len(s.Exercises)-completed-skipped)
		if s.Done() {
			b.WriteString(theme.CompletedStyle.Render(line) + "\n")
		} else {
			b.WriteString(theme.NormalStyle.Render(line) + "\n")
		}
	}

	b.WriteString("\n" + theme.MutedStyle.Render(fmt.Sprintf("Press %s to start a new run or q to quit.", restartKey)) + "\n")
	return b.String()
}
