package ui

import (
	"fmt"

	"github.com/renato0307/spotter/internal/theme"
	"github.com/renato0307/spotter/internal/version"
)

// renderHeader creates the header used across the application: app name
// (with build info in dev mode), tagline, and an optional subtitle.
func renderHeader(devMode bool, subtitle string) string {
	appNameLine := theme.AppNameStyle.Render("Spotter")
	if devMode {
		commit := version.Commit
		if len(commit) > 7 {
			commit = commit[:7]
		}
		appNameLine += theme.VersionStyle.Render(fmt.Sprintf(" %s | %s | %s | %s",
			version.Version,
			commit,
			version.Date,
			version.GoVersion))
	}

	result := appNameLine + "\n"
	result += theme.TaglineStyle.Render(version.Tagline)

	if subtitle != "" {
		result += "\n\n" + theme.SubtitleStyle.Render(subtitle)
	}

	result += "\n"
	return result
}
