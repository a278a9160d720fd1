package ui

import tea "github.com/charmbracelet/bubbletea"

// Dialog wraps a tea.Model and prepends the app header with a title.
//
//	dialog := NewDialog("Pick a date", NewDateForm(...), devMode)
//	dialog.Update(msg) // delegates to the content
//	dialog.View()      // header + content view
type Dialog struct {
	content tea.Model
	devMode bool
	title   string
}

// NewDialog creates a new dialog wrapper
func NewDialog(title string, content tea.Model, devMode bool) *Dialog {
	return &Dialog{
		content: content,
		devMode: devMode,
		title:   title,
	}
}

// Init delegates to the content
func (d *Dialog) Init() tea.Cmd {
	return d.content.Init()
}

// Update delegates to the content and keeps the Dialog as the model
func (d *Dialog) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	updatedContent, cmd := d.content.Update(msg)
	d.content = updatedContent
	return d, cmd
}

// View renders the header followed by the content
func (d *Dialog) View() string {
	return renderHeader(d.devMode, d.title) + d.content.View()
}

// Content returns the wrapped content for type assertion
func (d *Dialog) Content() tea.Model {
	return d.content
}
