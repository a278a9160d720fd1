package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/renato0307/spotter/internal/config"
	"github.com/renato0307/spotter/internal/logging"
	"github.com/renato0307/spotter/internal/paths"
	"github.com/renato0307/spotter/internal/ui"
)

// SettingsKeysCmd manages the terminal client's key bindings
type SettingsKeysCmd struct {
	List  SettingsKeysListCmd  `cmd:"list" help:"Show the bindings used during a live run" default:"1"`
	Reset SettingsKeysResetCmd `cmd:"reset" help:"Restore default bindings (all when no action is given)"`
	Set   SettingsKeysSetCmd   `cmd:"set" help:"Bind an action to one or more keys"`
}

// SettingsKeysListCmd shows the effective bindings per action group
type SettingsKeysListCmd struct {
	Changed bool   `help:"Only show actions bound to custom keys"`
	Format  string `help:"Output format: table or json" enum:"table,json" default:"table"`
}

// SettingsKeysSetCmd binds an action
type SettingsKeysSetCmd struct {
	Action string `arg:"" help:"Action name (e.g. complete, skip, next_client, finish)"`
	Keys   string `arg:"" help:"Keys, comma-separated for several (e.g. enter,c)"`
}

// SettingsKeysResetCmd drops custom bindings
type SettingsKeysResetCmd struct {
	Actions []string `arg:"" optional:"" help:"Actions to restore"`
}

// keyRow is one action as shown by `settings keys list`
type keyRow struct {
	Action    string   `json:"action"`
	Custom    bool     `json:"custom"`
	Defaults  []string `json:"defaults"`
	Effective []string `json:"keys"`
	Group     string   `json:"group"`
	Help      string   `json:"help"`
}

// keyRows lists every action in display order with its effective keys
func keyRows(custom config.KeyBindingsConfig, changedOnly bool) []keyRow {
	rows := make([]keyRow, 0, len(ui.AllKeyDefinitions))
	for _, def := range ui.AllKeyDefinitions {
		override, isCustom := custom[def.Name]
		isCustom = isCustom && len(override) > 0
		if changedOnly && !isCustom {
			continue
		}
		row := keyRow{
			Action:    def.Name,
			Custom:    isCustom,
			Defaults:  def.Defaults,
			Effective: def.Defaults,
			Group:     def.Group,
			Help:      def.Help,
		}
		if isCustom {
			row.Effective = override
		}
		rows = append(rows, row)
	}
	return rows
}

// checkBindingConflicts rejects keys already used by another action once
// custom bindings are applied over the defaults
func checkBindingConflicts(custom config.KeyBindingsConfig, action string, keys []string) error {
	for _, row := range keyRows(custom, false) {
		if row.Action == action {
			continue
		}
		for _, k := range keys {
			if slices.Contains(row.Effective, k) {
				return fmt.Errorf("key %q already triggers %q; rebind %q first", k, row.Action, row.Action)
			}
		}
	}
	return nil
}

func customKeys(cli *CLI) config.KeyBindingsConfig {
	if cli.settings == nil {
		return nil
	}
	return cli.settings.Keys
}

// Run executes the list command
func (s *SettingsKeysListCmd) Run(cli *CLI) error {
	rows := keyRows(customKeys(cli), s.Changed)

	if s.Format == "json" {
		data, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("Live run key bindings (%s)\n\n", paths.GetSettingsPath())
	writeKeyTable(os.Stdout, rows)
	fmt.Println()
	fmt.Println("* custom binding. Change one with 'spotter settings keys set <action> <keys>'.")
	return nil
}

func writeKeyTable(out io.Writer, rows []keyRow) {
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "GROUP\tACTION\tKEYS\tDESCRIPTION")

	group := ""
	for _, row := range rows {
		label := ""
		if row.Group != group {
			group = row.Group
			label = group
		}
		keys := strings.Join(row.Effective, ", ")
		if row.Custom {
			keys += " *"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", label, row.Action, keys, row.Help)
	}
	w.Flush()
}

// Run executes the set command
func (s *SettingsKeysSetCmd) Run(cli *CLI) error {
	if !ui.IsValidKeyName(s.Action) {
		return fmt.Errorf("unknown action %q (valid: %s)", s.Action, strings.Join(ui.GetValidKeyNames(), ", "))
	}
	keys := parseKeyValues(s.Keys)
	if len(keys) == 0 {
		return fmt.Errorf("no keys given for %q", s.Action)
	}

	settings, err := config.LoadSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	if err := applyKeyBinding(settings, s.Action, keys); err != nil {
		return err
	}
	if err := config.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	logging.Logger.Info("Key binding changed", "action", s.Action, "keys", keys)
	fmt.Printf("%s now triggered by: %s\n", s.Action, strings.Join(keys, ", "))
	return nil
}

// applyKeyBinding sets a custom binding after checking it against the
// bindings in effect
func applyKeyBinding(settings *config.Settings, action string, keys []string) error {
	if err := checkBindingConflicts(settings.Keys, action, keys); err != nil {
		return err
	}
	if settings.Keys == nil {
		settings.Keys = make(config.KeyBindingsConfig)
	}
	settings.Keys[action] = keys
	return settings.Keys.Validate(ui.GetValidKeyNames())
}

// Run executes the reset command
func (s *SettingsKeysResetCmd) Run(cli *CLI) error {
	for _, action := range s.Actions {
		if !ui.IsValidKeyName(action) {
			return fmt.Errorf("unknown action %q", action)
		}
	}

	settings, err := config.LoadSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	restored := resetKeyBindings(settings, s.Actions)
	if len(restored) == 0 {
		fmt.Println("No custom bindings to restore.")
		return nil
	}
	if err := config.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	logging.Logger.Info("Key bindings restored", "actions", restored)
	fmt.Printf("Restored defaults for: %s\n", strings.Join(restored, ", "))
	return nil
}

// resetKeyBindings removes custom bindings for actions, or all of them when
// actions is empty, and returns the restored actions in sorted order
func resetKeyBindings(settings *config.Settings, actions []string) []string {
	var restored []string
	for name := range settings.Keys {
		if len(actions) == 0 || slices.Contains(actions, name) {
			restored = append(restored, name)
		}
	}
	for _, name := range restored {
		delete(settings.Keys, name)
	}
	if len(settings.Keys) == 0 {
		settings.Keys = nil
	}
	slices.Sort(restored)
	return restored
}

// parseKeyValues parses comma-separated key values
func parseKeyValues(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
