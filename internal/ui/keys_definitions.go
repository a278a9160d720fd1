package ui

import (
	"sort"
	"sync"
)

// KeyDefinition defines the metadata for a configurable key binding
type KeyDefinition struct {
	Defaults []string
	Group    string
	Help     string
	Name     string
}

// AllKeyDefinitions contains all configurable key bindings.
// Names are the keys accepted in the "keys" section of settings.json.
var AllKeyDefinitions = []KeyDefinition{
	// Application keys
	{Name: "command_palette", Defaults: []string{"p", ":"}, Group: "application", Help: "open command palette"},
	{Name: "force_quit", Defaults: []string{"ctrl+c"}, Group: "application", Help: "force quit"},
	{Name: "help", Defaults: []string{"?"}, Group: "application", Help: "show keyboard shortcuts"},
	{Name: "quit", Defaults: []string{"q"}, Group: "application", Help: "exit application"},

	// Navigation keys
	{Name: "exercise_down", Defaults: []string{"down", "j"}, Group: "navigation", Help: "select next exercise"},
	{Name: "exercise_up", Defaults: []string{"up", "k"}, Group: "navigation", Help: "select previous exercise"},
	{Name: "goto_client", Defaults: []string{"1", "2", "3", "4", "5", "6", "7", "8", "9"}, Group: "navigation", Help: "jump to client by number"},
	{Name: "next_client", Defaults: []string{"right", "l", "tab"}, Group: "navigation", Help: "next client"},
	{Name: "previous_client", Defaults: []string{"left", "h", "shift+tab"}, Group: "navigation", Help: "previous client"},

	// Recording keys
	{Name: "complete", Defaults: []string{"enter", "c"}, Group: "recording", Help: "mark exercise completed"},
	{Name: "skip", Defaults: []string{"s"}, Group: "recording", Help: "mark exercise skipped"},
	{Name: "undo", Defaults: []string{"u"}, Group: "recording", Help: "mark exercise pending"},

	// Run keys
	{Name: "finish", Defaults: []string{"F"}, Group: "run", Help: "finish live run"},
	{Name: "refresh", Defaults: []string{"r"}, Group: "run", Help: "reload sessions"},
	{Name: "restart", Defaults: []string{"R"}, Group: "run", Help: "discard run and pick a new date"},
}

var (
	defaultBindingsCache map[string][]string
	defaultBindingsOnce  sync.Once

	keyDefinitionsMap     map[string]KeyDefinition
	keyDefinitionsMapOnce sync.Once

	validKeyNames     []string
	validKeyNamesOnce sync.Once
)

// GetDefaultKeyBindings returns the default key bindings as a map.
// The result is cached after the first call.
func GetDefaultKeyBindings() map[string][]string {
	defaultBindingsOnce.Do(func() {
		defaultBindingsCache = make(map[string][]string, len(AllKeyDefinitions))
		for _, def := range AllKeyDefinitions {
			defaultBindingsCache[def.Name] = def.Defaults
		}
	})
	return defaultBindingsCache
}

// paletteActionNames are the actions offered by the command palette, in display order
var paletteActionNames = []string{"finish", "refresh", "restart", "help", "quit"}

// GetPaletteActions returns the key definitions offered by the command palette
func GetPaletteActions() []KeyDefinition {
	actions := make([]KeyDefinition, 0, len(paletteActionNames))
	for _, name := range paletteActionNames {
		if def := GetKeyDefinition(name); def != nil {
			actions = append(actions, *def)
		}
	}
	return actions
}

// GetKeyDefinition returns the definition for a key by name, or nil
func GetKeyDefinition(name string) *KeyDefinition {
	keyDefinitionsMapOnce.Do(func() {
		keyDefinitionsMap = make(map[string]KeyDefinition, len(AllKeyDefinitions))
		for _, def := range AllKeyDefinitions {
			keyDefinitionsMap[def.Name] = def
		}
	})
	if def, ok := keyDefinitionsMap[name]; ok {
		return &def
	}
	return nil
}

// GetValidKeyNames returns all valid key binding names in sorted order
func GetValidKeyNames() []string {
	validKeyNamesOnce.Do(func() {
		validKeyNames = make([]string, len(AllKeyDefinitions))
		for i, def := range AllKeyDefinitions {
			validKeyNames[i] = def.Name
		}
		sort.Strings(validKeyNames)
	})
	return validKeyNames
}

// IsValidKeyName reports whether name is a configurable key binding
func IsValidKeyName(name string) bool {
	return GetKeyDefinition(name) != nil
}
