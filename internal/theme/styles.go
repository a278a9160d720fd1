package theme

import "github.com/charmbracelet/lipgloss"

// Main UI styles
var (
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	HelpLabelStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle)

	HelpShortcutStyle = lipgloss.NewStyle().
				Foreground(ColorHighlight).
				Bold(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(1, 0)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	NormalStyle = lipgloss.NewStyle().
			Foreground(ColorNormal)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(1, 0)
)

// Header styles
var (
	AppNameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	SubtitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary)

	TaglineStyle = lipgloss.NewStyle().
			Foreground(ColorNormal)

	VersionStyle = lipgloss.NewStyle().
			Foreground(ColorVersion)
)

// Save indicator styles
var (
	SaveErrorStyle = lipgloss.NewStyle().
			Foreground(ColorSaveError)

	SavedStyle = lipgloss.NewStyle().
			Foreground(ColorSaved)

	SavingStyle = lipgloss.NewStyle().
			Foreground(ColorSaving)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(ColorSpinner)
)

// Live view styles
var (
	ClientTabActiveStyle = lipgloss.NewStyle().
				Foreground(ColorHighlight).
				Background(ColorPrimary).
				Bold(true).
				Padding(0, 1)

	ClientTabStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle).
			Padding(0, 1)

	CompletedStyle = lipgloss.NewStyle().
			Foreground(ColorCompleted)

	CursorStyle = lipgloss.NewStyle().
			Foreground(ColorCursor).
			Bold(true)

	OfflineBannerStyle = lipgloss.NewStyle().
				Foreground(ColorOffline).
				Bold(true)

	PendingStyle = lipgloss.NewStyle().
			Foreground(ColorPending)

	SkippedStyle = lipgloss.NewStyle().
			Foreground(ColorSkipped).
			Strikethrough(true)
)

// Help screen styles
var (
	HelpDescStyle = lipgloss.NewStyle().
			Foreground(ColorNormal)

	HelpGroupStyle = lipgloss.NewStyle().
			Foreground(ColorHelpGroup).
			Bold(true)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight).
			Bold(true).
			Width(16)
)

// Command palette styles
var (
	FilterCursorStyle = lipgloss.NewStyle().
				Foreground(ColorCursor)

	FilterPromptStyle = lipgloss.NewStyle().
				Foreground(ColorSecondary).
				Bold(true)

	PaletteBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorPrimary).
				Padding(0, 1)

	PaletteDescStyle = lipgloss.NewStyle().
				Foreground(ColorMuted).
				Italic(true)

	PaletteItemStyle = lipgloss.NewStyle().
				Foreground(ColorNormal)

	PaletteShortcutStyle = lipgloss.NewStyle().
				Foreground(ColorSubtle)

	PaletteTitleStyle = lipgloss.NewStyle().
				Foreground(ColorPrimary).
				Bold(true)

	ScrollIndicatorStyle = lipgloss.NewStyle().
				Foreground(ColorMuted)
)
