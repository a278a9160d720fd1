package theme

import "github.com/charmbracelet/lipgloss"

// Color is an alias for lipgloss.Color for convenience
type Color = lipgloss.Color

// Brand colors
const (
	ColorPrimary   Color = "99" // Purple - app name, titles
	ColorSecondary Color = "86" // Cyan - subtitles
)

// Save indicator colors
const (
	ColorSaveError Color = "1" // Red - last write failed
	ColorSaved     Color = "2" // Green - last write succeeded
	ColorSaving    Color = "3" // Yellow - write in flight
)

// Exercise outcome colors
const (
	ColorCompleted Color = "2" // Green
	ColorPending   Color = "250"
	ColorSkipped   Color = "8" // Gray
)

// UI semantic colors
const (
	ColorError     Color = "196" // Bright red
	ColorHighlight Color = "255" // White - emphasis
	ColorMuted     Color = "241" // Gray - secondary text
	ColorNormal    Color = "250" // Default text
	ColorSubtle    Color = "245" // Light gray - labels
	ColorVersion   Color = "240" // Dark gray
)

// Accent colors
const (
	ColorCursor    Color = "226" // Yellow - selected exercise
	ColorHelpGroup Color = "141" // Purple
	ColorOffline   Color = "208" // Orange - connectivity banner
	ColorSpinner   Color = "205" // Pink
)
