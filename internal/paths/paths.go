package paths

import (
	"os"
	"path/filepath"
)

// GetSpotterHome returns SPOTTER_HOME or ~/.spotter default
func GetSpotterHome() string {
	spotterHome := os.Getenv("SPOTTER_HOME")
	if spotterHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ".spotter"
		}
		return filepath.Join(homeDir, ".spotter")
	}
	return ExpandPath(spotterHome)
}

// GetDBPath returns $SPOTTER_HOME/state.db
func GetDBPath() string {
	return filepath.Join(GetSpotterHome(), "state.db")
}

// GetSessionsDBPath returns $SPOTTER_HOME/sessions.db, the development
// stand-in for the remote session store
func GetSessionsDBPath() string {
	return filepath.Join(GetSpotterHome(), "sessions.db")
}

// GetSettingsPath returns $SPOTTER_HOME/settings.json
func GetSettingsPath() string {
	return filepath.Join(GetSpotterHome(), "settings.json")
}

// GetSSHDir returns $SPOTTER_HOME/ssh
func GetSSHDir() string {
	return filepath.Join(GetSpotterHome(), "ssh")
}

// ExpandPath expands ~ to home directory
func ExpandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			if len(path) == 1 {
				return homeDir
			}
			return filepath.Join(homeDir, path[1:])
		}
	}
	return path
}
