package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/renato0307/spotter/internal/config"
)

// ApplicationKeys are available on every screen
type ApplicationKeys struct {
	CommandPalette key.Binding
	ForceQuit      key.Binding
	Help           key.Binding
	Quit           key.Binding
}

// NavigationKeys move between clients and exercises
type NavigationKeys struct {
	ExerciseDown   key.Binding
	ExerciseUp     key.Binding
	GoToClient     key.Binding
	NextClient     key.Binding
	PreviousClient key.Binding
}

// RecordingKeys record exercise outcomes
type RecordingKeys struct {
	Complete key.Binding
	Skip     key.Binding
	Undo     key.Binding
}

// RunKeys control the live run as a whole
type RunKeys struct {
	Finish  key.Binding
	Refresh key.Binding
	Restart key.Binding
}

// KeyMap contains all keyboard shortcuts organized by context
type KeyMap struct {
	Application ApplicationKeys
	Navigation  NavigationKeys
	Recording   RecordingKeys
	Run         RunKeys
}

// NewKeyMap creates a KeyMap, applying overrides from settings
func NewKeyMap(custom config.KeyBindingsConfig) KeyMap {
	defaults := GetDefaultKeyBindings()
	b := func(name string) key.Binding {
		return buildBinding(name, defaults, custom)
	}
	return KeyMap{
		Application: ApplicationKeys{
			CommandPalette: b("command_palette"),
			ForceQuit:      b("force_quit"),
			Help:           b("help"),
			Quit:           b("quit"),
		},
		Navigation: NavigationKeys{
			ExerciseDown:   b("exercise_down"),
			ExerciseUp:     b("exercise_up"),
			GoToClient:     b("goto_client"),
			NextClient:     b("next_client"),
			PreviousClient: b("previous_client"),
		},
		Recording: RecordingKeys{
			Complete: b("complete"),
			Skip:     b("skip"),
			Undo:     b("undo"),
		},
		Run: RunKeys{
			Finish:  b("finish"),
			Refresh: b("refresh"),
			Restart: b("restart"),
		},
	}
}

// LiveHelp returns the bindings shown in the live view footer
func (k KeyMap) LiveHelp() []key.Binding {
	return []key.Binding{
		k.Navigation.NextClient,
		k.Navigation.PreviousClient,
		k.Recording.Complete,
		k.Recording.Skip,
		k.Run.Finish,
		k.Application.CommandPalette,
		k.Application.Help,
		k.Application.Quit,
	}
}

// Binding returns the binding of the named action
func (k KeyMap) Binding(name string) (key.Binding, bool) {
	bindings := map[string]key.Binding{
		"command_palette": k.Application.CommandPalette,
		"finish":          k.Run.Finish,
		"help":            k.Application.Help,
		"quit":            k.Application.Quit,
		"refresh":         k.Run.Refresh,
		"restart":         k.Run.Restart,
	}
	b, ok := bindings[name]
	return b, ok
}

func buildBinding(name string, defaults map[string][]string, custom config.KeyBindingsConfig) key.Binding {
	def := GetKeyDefinition(name)
	if def == nil {
		panic("unknown key definition: " + name)
	}

	keys := defaults[name]
	if override, ok := custom[name]; ok && len(override) > 0 {
		keys = override
	}

	helpKeys := strings.Join(keys, "/")
	if name == "goto_client" && len(keys) > 1 {
		helpKeys = keys[0] + "-" + keys[len(keys)-1]
	}

	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(helpKeys, def.Help),
	)
}
