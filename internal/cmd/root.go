package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/renato0307/spotter/internal/config"
	"github.com/renato0307/spotter/internal/logging"
	"github.com/renato0307/spotter/internal/paths"
	"github.com/renato0307/spotter/internal/ui"
)

const defaultMaxLogFiles = 1000

// CLI represents the command-line interface structure
type CLI struct {
	Version                     kong.VersionFlag `help:"Show version information"`
	ConnectivityIntervalSeconds int              `help:"Seconds between session store reachability checks" default:"15" env:"SPOTTER_CONNECTIVITY_INTERVAL"`
	Debug                       bool             `help:"Enable debug logging to file" short:"d" env:"SPOTTER_DEBUG"`
	DebugFile                   string           `help:"Custom path for debug log file (disables automatic cleanup)" env:"SPOTTER_DEBUG_FILE"`
	JWTSecret                   string           `help:"Secret used to sign and validate bearer tokens" env:"SPOTTER_JWT_SECRET"`
	MaxLogFiles                 int              `help:"Maximum number of log files to keep (0 = unlimited)" default:"1000" env:"SPOTTER_MAX_LOG_FILES"`
	RemoteDSN                   string           `help:"Session store: postgres URL or SQLite path (default $SPOTTER_HOME/sessions.db)" env:"SPOTTER_REMOTE_DSN"`
	SavedDisplaySeconds         int              `help:"Seconds the saved indicator stays visible" default:"2" env:"SPOTTER_SAVED_DISPLAY_SECONDS"`
	StateDB                     string           `help:"On-device state database (default $SPOTTER_HOME/state.db)" env:"SPOTTER_STATE_DB"`

	Run      RunCmd      `cmd:"" help:"Start the live coaching TUI (default)" default:"1"`
	Serve    ServeCmd    `cmd:"serve" help:"Serve the tablet HTTP API and the SSH terminal client"`
	Sessions SessionsCmd `cmd:"sessions" help:"Plan and inspect coaching sessions"`
	Settings SettingsCmd `cmd:"settings" help:"Manage settings"`
	State    StateCmd    `cmd:"state" help:"Inspect or clear persisted live coaching state"`
	Token    TokenCmd    `cmd:"token" help:"Mint a bearer token for the HTTP API"`

	// Internal fields (not flags)
	Container *Container       `kong:"-"`
	settings  *config.Settings `kong:"-"`
}

// SetSettings sets the settings on the CLI struct
func (c *CLI) SetSettings(settings *config.Settings) {
	c.settings = settings
}

// AfterApply initializes logging after CLI parsing and applies settings
func (c *CLI) AfterApply() error {
	// Precedence: CLI flags > env vars > settings.json > defaults.
	// A setting applies only while the flag is at its default and its env var is unset.
	if c.settings != nil {
		applyInt(&c.MaxLogFiles, defaultMaxLogFiles, "SPOTTER_MAX_LOG_FILES", c.settings.MaxLogFiles)
		applyInt(&c.SavedDisplaySeconds, config.DefaultSavedDisplaySeconds, "SPOTTER_SAVED_DISPLAY_SECONDS", c.settings.SavedDisplaySeconds)
		applyInt(&c.ConnectivityIntervalSeconds, config.DefaultConnectivityIntervalSeconds, "SPOTTER_CONNECTIVITY_INTERVAL", c.settings.ConnectivityIntervalSeconds)
		applyString(&c.JWTSecret, "", "SPOTTER_JWT_SECRET", c.settings.JWTSecret)
		applyString(&c.RemoteDSN, "", "SPOTTER_REMOTE_DSN", c.settings.RemoteDSN)
		applyString(&c.StateDB, "", "SPOTTER_STATE_DB", c.settings.StateDBPath)

		if !c.Debug {
			if _, hasEnv := os.LookupEnv("SPOTTER_DEBUG"); !hasEnv {
				if c.settings.Debug != nil && *c.settings.Debug {
					c.Debug = true
				}
			}
		}
	}

	if c.StateDB == "" {
		c.StateDB = paths.GetDBPath()
	}
	if c.RemoteDSN == "" {
		c.RemoteDSN = paths.GetSessionsDBPath()
	}

	if _, err := logging.Initialize(c.Debug, c.DebugFile, c.MaxLogFiles); err != nil {
		return err
	}

	// Create container AFTER logging is initialized so GORM's logger has a target
	container, err := NewContainer(ContainerConfig{
		ConnectivityInterval: time.Duration(c.ConnectivityIntervalSeconds) * time.Second,
		JWTSecret:            c.JWTSecret,
		RemoteDSN:            c.RemoteDSN,
		SavedDisplay:         time.Duration(c.SavedDisplaySeconds) * time.Second,
		StateDBPath:          c.StateDB,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}
	c.Container = container

	return nil
}

// Close closes all resources held by the CLI
func (c *CLI) Close() error {
	if c.Container != nil {
		return c.Container.Close()
	}
	return nil
}

// keyMap validates the configured key bindings and builds the key map
func (c *CLI) keyMap() (ui.KeyMap, error) {
	var keysConfig config.KeyBindingsConfig
	if c.settings != nil && c.settings.Keys != nil {
		if err := c.settings.Keys.Validate(ui.GetValidKeyNames()); err != nil {
			return ui.KeyMap{}, fmt.Errorf("invalid key bindings in settings.json: %w", err)
		}
		keysConfig = c.settings.Keys
		logging.Logger.Debug("Custom key bindings loaded and validated")
	}
	return ui.NewKeyMap(keysConfig), nil
}

// coachID resolves the coach from the flag, then settings.json
func (c *CLI) coachID(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if c.settings != nil && c.settings.CoachID != "" {
		return c.settings.CoachID, nil
	}
	return "", fmt.Errorf("coach id is required (--coach, SPOTTER_COACH_ID or coach_id in settings.json)")
}

// signalContext is cancelled on SIGINT or SIGTERM
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func applyInt(target *int, def int, env string, value *int) {
	if *target != def || value == nil {
		return
	}
	if _, hasEnv := os.LookupEnv(env); hasEnv {
		return
	}
	*target = *value
}

func applyString(target *string, def, env, value string) {
	if *target != def || value == "" {
		return
	}
	if _, hasEnv := os.LookupEnv(env); hasEnv {
		return
	}
	*target = value
}

// RunCmd starts the TUI application
type RunCmd struct {
	Coach string `help:"Coach ID to run as (overrides coach_id in settings.json)" env:"SPOTTER_COACH_ID"`
	Dev   bool   `help:"Enable development mode (shows version info in dialogs)"`
}

// Run executes the TUI
func (r *RunCmd) Run(cli *CLI) error {
	coachID, err := cli.coachID(r.Coach)
	if err != nil {
		return err
	}
	keys, err := cli.keyMap()
	if err != nil {
		return err
	}

	runID := uuid.New().String()
	logging.Logger.Info("Starting spotter TUI", "coach_id", coachID, "run_id", runID)

	ctx, cancel := signalContext()
	defer cancel()

	container := cli.Container
	container.Connectivity.Start()

	controller := container.LiveCoaching.NewController(coachID)
	model := ui.NewModel(ctx, controller, ui.Options{
		Clock:                container.Clock,
		Connectivity:         container.Connectivity,
		ConnectivityInterval: time.Duration(cli.ConnectivityIntervalSeconds) * time.Second,
		DevMode:              r.Dev,
		Keys:                 keys,
	})
	defer model.Close()

	p := tea.NewProgram(model,
		tea.WithAltScreen(), // Use alternate screen buffer
		tea.WithContext(ctx),
	)

	logging.Logger.Info("Starting TUI program")
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		logging.Logger.Error("TUI program error", "error", err)
		return fmt.Errorf("error running program: %w", err)
	}

	logging.Logger.Info("TUI program exited normally", "run_id", runID)
	return nil
}
