package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/spotter/internal/config"
	"github.com/renato0307/spotter/internal/ui"
)

func TestKeyRows_EffectiveBindings(t *testing.T) {
	custom := config.KeyBindingsConfig{"skip": {"x"}}

	rows := keyRows(custom, false)
	require.Len(t, rows, len(ui.AllKeyDefinitions))

	byAction := make(map[string]keyRow, len(rows))
	for _, row := range rows {
		byAction[row.Action] = row
	}
	assert.True(t, byAction["skip"].Custom)
	assert.Equal(t, []string{"x"}, byAction["skip"].Effective)
	assert.Equal(t, []string{"s"}, byAction["skip"].Defaults)
	assert.Equal(t, "recording", byAction["skip"].Group)
	assert.False(t, byAction["complete"].Custom)
	assert.Equal(t, []string{"enter", "c"}, byAction["complete"].Effective)

	changed := keyRows(custom, true)
	require.Len(t, changed, 1)
	assert.Equal(t, "skip", changed[0].Action)
}

func TestWriteKeyTable_MarksCustomAndGroups(t *testing.T) {
	var out bytes.Buffer
	writeKeyTable(&out, keyRows(config.KeyBindingsConfig{"skip": {"x"}}, false))

	text := out.String()
	assert.Contains(t, text, "GROUP")
	assert.Contains(t, text, "x *")
	assert.Contains(t, text, "mark exercise skipped")
	assert.Equal(t, 1, bytes.Count(out.Bytes(), []byte("recording")))
}

func TestApplyKeyBinding(t *testing.T) {
	t.Run("conflict with another action's default", func(t *testing.T) {
		settings := &config.Settings{}
		err := applyKeyBinding(settings, "skip", []string{"c"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "complete")
		assert.Nil(t, settings.Keys)
	})

	t.Run("freed default can be reused", func(t *testing.T) {
		settings := &config.Settings{Keys: config.KeyBindingsConfig{"complete": {"enter"}}}
		require.NoError(t, applyKeyBinding(settings, "skip", []string{"c"}))
		assert.Equal(t, config.KeyBindingValue{"c"}, settings.Keys["skip"])
	})

	t.Run("rebinding an action to its own default", func(t *testing.T) {
		settings := &config.Settings{}
		require.NoError(t, applyKeyBinding(settings, "next_client", []string{"l"}))
		assert.Equal(t, config.KeyBindingValue{"l"}, settings.Keys["next_client"])
	})
}

func TestResetKeyBindings(t *testing.T) {
	settings := &config.Settings{Keys: config.KeyBindingsConfig{
		"finish": {"f"},
		"skip":   {"x"},
	}}

	assert.Equal(t, []string{"skip"}, resetKeyBindings(settings, []string{"skip", "undo"}))
	assert.NotContains(t, settings.Keys, "skip")

	assert.Equal(t, []string{"finish"}, resetKeyBindings(settings, nil))
	assert.Nil(t, settings.Keys)

	assert.Empty(t, resetKeyBindings(settings, nil))
}

func TestSettingsKeysSetAndReset_PersistToSettingsFile(t *testing.T) {
	t.Setenv("SPOTTER_HOME", t.TempDir())
	cli := &CLI{}

	require.NoError(t, (&SettingsKeysSetCmd{Action: "finish", Keys: "f, ctrl+f"}).Run(cli))
	settings, err := config.LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, config.KeyBindingValue{"f", "ctrl+f"}, settings.Keys["finish"])

	assert.Error(t, (&SettingsKeysSetCmd{Action: "dance", Keys: "d"}).Run(cli))
	assert.Error(t, (&SettingsKeysSetCmd{Action: "undo", Keys: " , "}).Run(cli))

	require.NoError(t, (&SettingsKeysResetCmd{Actions: []string{"finish"}}).Run(cli))
	settings, err = config.LoadSettings()
	require.NoError(t, err)
	assert.Empty(t, settings.Keys)

	assert.Error(t, (&SettingsKeysResetCmd{Actions: []string{"dance"}}).Run(cli))
}
