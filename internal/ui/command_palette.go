package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/renato0307/spotter/internal/theme"
)

// CommandPalette is a searchable list of live run actions
type CommandPalette struct {
	actions       []KeyDefinition // Filtered actions
	allActions    []KeyDefinition
	Completed     bool
	filterInput   textinput.Model
	keys          KeyMap
	lastQuery     string // Previous filter query (to detect changes)
	Result        CommandPaletteResult
	selectedIndex int
	subtitle      string // Shown next to the title, e.g. the current client
	width         int
}

// CommandPaletteResult contains the result of the command palette interaction
type CommandPaletteResult struct {
	Action    *KeyDefinition
	Cancelled bool
}

// NewCommandPalette creates a command palette; keys provides the shortcuts shown per action
func NewCommandPalette(subtitle string, keys KeyMap) *CommandPalette {
	actions := GetPaletteActions()

	ti := textinput.New()
	ti.Prompt = "Filter: "
	ti.PromptStyle = theme.FilterPromptStyle
	ti.Cursor.Style = theme.FilterCursorStyle
	ti.Placeholder = "type to filter"
	ti.PlaceholderStyle = theme.MutedStyle
	ti.Focus()
	ti.CharLimit = 50
	ti.Width = 40

	return &CommandPalette{
		actions:     actions,
		allActions:  actions,
		filterInput: ti,
		keys:        keys,
		subtitle:    subtitle,
	}
}

func (cp *CommandPalette) Init() tea.Cmd {
	return textinput.Blink
}

func (cp *CommandPalette) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		cp.width = msg.Width
		return cp, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc, tea.KeyCtrlC:
			cp.Completed = true
			cp.Result.Cancelled = true
			return cp, nil
		case tea.KeyEnter:
			if cp.selectedIndex < len(cp.actions) {
				cp.Completed = true
				cp.Result.Action = &cp.actions[cp.selectedIndex]
			}
			return cp, nil
		case tea.KeyUp:
			if cp.selectedIndex > 0 {
				cp.selectedIndex--
			}
			return cp, nil
		case tea.KeyDown:
			if cp.selectedIndex < len(cp.actions)-1 {
				cp.selectedIndex++
			}
			return cp, nil
		}
	}

	var cmd tea.Cmd
	cp.filterInput, cmd = cp.filterInput.Update(msg)
	cp.filterActions()
	return cp, cmd
}

func (cp *CommandPalette) View() string {
	header := theme.PaletteTitleStyle.Render("⌘ Command Palette")
	if cp.subtitle != "" {
		header += " " + theme.MutedStyle.Render("("+cp.subtitle+")")
	}

	var items []string
	maxHelpLen := cp.maxHelpLen()
	for i, def := range cp.actions {
		prefix := "  "
		if i == cp.selectedIndex {
			prefix = theme.CursorStyle.Render("> ")
		}
		line := prefix +
			theme.PaletteItemStyle.Render(padRight(capitalizeFirst(def.Help), maxHelpLen)) +
			theme.PaletteShortcutStyle.Render("  "+cp.shortcut(def))
		items = append(items, line)
	}
	if len(items) == 0 {
		items = append(items, theme.PaletteDescStyle.Render("  No matching actions"))
	}

	content := header + "\n\n" + cp.filterInput.View() + "\n\n" + strings.Join(items, "\n")
	return theme.PaletteBorderStyle.Width(cp.paletteWidth() - 2).Render(content)
}

// shortcut returns the configured keys of an action
func (cp *CommandPalette) shortcut(def KeyDefinition) string {
	if b, ok := cp.keys.Binding(def.Name); ok {
		return b.Help().Key
	}
	return strings.Join(def.Defaults, "/")
}

func (cp *CommandPalette) filterActions() {
	query := strings.ToLower(cp.filterInput.Value())
	if query == cp.lastQuery {
		return
	}
	cp.lastQuery = query

	if query == "" {
		cp.actions = cp.allActions
		cp.selectedIndex = 0
		return
	}

	var filtered []KeyDefinition
	for _, def := range cp.allActions {
		if fuzzyMatch(query, def.Help) {
			filtered = append(filtered, def)
		}
	}
	cp.actions = filtered

	if cp.selectedIndex >= len(cp.actions) {
		cp.selectedIndex = 0
	}
}

// fuzzyMatch checks if all characters in query appear in order in target
func fuzzyMatch(query, target string) bool {
	target = strings.ToLower(target)
	queryRunes := []rune(query)
	qi := 0
	for _, c := range target {
		if qi < len(queryRunes) && c == queryRunes[qi] {
			qi++
		}
	}
	return qi == len(queryRunes)
}

// maxHelpLen uses allActions to keep alignment stable during filtering
func (cp *CommandPalette) maxHelpLen() int {
	maxLen := 0
	for _, def := range cp.allActions {
		maxLen = max(maxLen, len(def.Help))
	}
	return maxLen
}

func (cp *CommandPalette) paletteWidth() int {
	if cp.width > 0 {
		return cp.width
	}
	return 80
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
