package ui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/renato0307/spotter/internal/domain"
	"github.com/renato0307/spotter/internal/theme"
)

// HelpScreen displays keyboard shortcuts organized by category
type HelpScreen struct {
	Completed   bool
	content     string
	initialized bool
	keys        *KeyMap
	viewport    viewport.Model
}

func renderShortcut(key, description string) string {
	return theme.HelpKeyStyle.Render(key) + theme.HelpDescStyle.Render(description) + "\n"
}

func renderBinding(binding key.Binding) string {
	help := binding.Help()
	return renderShortcut(help.Key, help.Desc)
}

func buildHelpContent(keys *KeyMap) string {
	var content string

	content += theme.HelpGroupStyle.Render("Clients") + "\n"
	content += renderBinding(keys.Navigation.NextClient)
	content += renderBinding(keys.Navigation.PreviousClient)
	content += renderBinding(keys.Navigation.GoToClient)

	content += "\n" + theme.HelpGroupStyle.Render("Exercises") + "\n"
	content += renderBinding(keys.Navigation.ExerciseUp)
	content += renderBinding(keys.Navigation.ExerciseDown)
	content += renderBinding(keys.Recording.Complete)
	content += renderBinding(keys.Recording.Skip)
	content += renderBinding(keys.Recording.Undo)

	content += "\n" + theme.HelpGroupStyle.Render("Live Run") + "\n"
	content += renderBinding(keys.Run.Refresh)
	content += renderBinding(keys.Run.Finish)
	content += renderBinding(keys.Run.Restart)

	content += "\n" + theme.HelpGroupStyle.Render("Application") + "\n"
	content += renderBinding(keys.Application.CommandPalette)
	content += renderBinding(keys.Application.Help)
	content += renderBinding(keys.Application.Quit)
	content += renderBinding(keys.Application.ForceQuit)

	content += "\n" + theme.HelpGroupStyle.Render("Save Indicator (read-only)") + "\n"
	content += renderShortcut(domain.SymbolSaving, "progress is being saved")
	content += renderShortcut(domain.SymbolSaved, "progress saved")
	content += renderShortcut(domain.SymbolSaveError, "last save failed, navigation still works")

	return content
}

// NewHelpScreen creates a new help screen component
func NewHelpScreen(keys *KeyMap) *HelpScreen {
	return &HelpScreen{
		content:  buildHelpContent(keys),
		keys:     keys,
		viewport: viewport.New(0, 0),
	}
}

// Init implements tea.Model
func (h *HelpScreen) Init() tea.Cmd {
	h.viewport.KeyMap.Up.SetKeys("up", "k")
	h.viewport.KeyMap.Down.SetKeys("down", "j")
	return nil
}

// Update implements tea.Model
func (h *HelpScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// Dialog header: 4 lines, footer: 2 lines
		viewportHeight := msg.Height - 6
		if viewportHeight < 5 {
			viewportHeight = 5
		}
		h.viewport.Width = msg.Width
		h.viewport.Height = viewportHeight
		h.viewport.SetContent(h.content)
		h.initialized = true
		return h, nil

	case tea.KeyMsg:
		if msg.String() == "esc" || key.Matches(msg, h.keys.Application.Quit, h.keys.Application.Help) {
			h.Completed = true
			return h, nil
		}
	}

	var cmd tea.Cmd
	h.viewport, cmd = h.viewport.Update(msg)
	return h, cmd
}

// View implements tea.Model
func (h *HelpScreen) View() string {
	if !h.initialized {
		return "Loading help..."
	}
	footer := theme.HelpStyle.Render("Press esc, q, or ? to close • ↑↓/jk/PgUp/PgDn to scroll")
	return h.viewport.View() + "\n\n" + footer
}
