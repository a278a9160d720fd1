package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettings_MissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("SPOTTER_HOME", t.TempDir())

	settings, err := LoadSettings()

	require.NoError(t, err)
	assert.Equal(t, &Settings{}, settings)
}

func TestLoadSettings_ParsesFields(t *testing.T) {
	home := t.TempDir()
	t.Setenv("SPOTTER_HOME", home)
	payload := `{
		"coach_id": "coach-1",
		"cors_origins": "https://tablet.example.com, https://web.example.com",
		"debug": true,
		"saved_display_seconds": 5,
		"remote_dsn": "host=db user=spotter dbname=spotter"
	}`
	require.NoError(t, os.WriteFile(filepath.Join(home, "settings.json"), []byte(payload), 0644))

	settings, err := LoadSettings()

	require.NoError(t, err)
	assert.Equal(t, "coach-1", settings.CoachID)
	assert.Equal(t, StringArray{"https://tablet.example.com", "https://web.example.com"}, settings.CORSOrigins)
	require.NotNil(t, settings.Debug)
	assert.True(t, *settings.Debug)
	require.NotNil(t, settings.SavedDisplaySeconds)
	assert.Equal(t, 5, *settings.SavedDisplaySeconds)
	assert.Equal(t, "host=db user=spotter dbname=spotter", settings.RemoteDSN)
}

func TestLoadSettings_InvalidJSON(t *testing.T) {
	home := t.TempDir()
	t.Setenv("SPOTTER_HOME", home)
	require.NoError(t, os.WriteFile(filepath.Join(home, "settings.json"), []byte("{"), 0644))

	_, err := LoadSettings()

	assert.ErrorContains(t, err, "invalid settings.json")
}

func TestSaveSettings_RoundTrip(t *testing.T) {
	t.Setenv("SPOTTER_HOME", filepath.Join(t.TempDir(), "home"))
	seconds := 3

	require.NoError(t, SaveSettings(&Settings{CoachID: "coach-2", SavedDisplaySeconds: &seconds}))

	settings, err := LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, "coach-2", settings.CoachID)
	require.NotNil(t, settings.SavedDisplaySeconds)
	assert.Equal(t, 3, *settings.SavedDisplaySeconds)
}

func TestStringArray_AcceptsArray(t *testing.T) {
	var sa StringArray
	require.NoError(t, sa.UnmarshalJSON([]byte(`["a","b"]`)))
	assert.Equal(t, StringArray{"a", "b"}, sa)
}

func TestLoadSettingsFrom_KeyBindings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"keys":{"next_client":"n","previous_client":["p","left"]}}`), 0644))

	settings, err := LoadSettingsFrom(path)

	require.NoError(t, err)
	assert.Equal(t, KeyBindingValue{"n"}, settings.Keys["next_client"])
	assert.Equal(t, KeyBindingValue{"p", "left"}, settings.Keys["previous_client"])
}

func TestKeyBindingsConfig_Validate(t *testing.T) {
	valid := []string{"next_client", "previous_client"}

	assert.NoError(t, KeyBindingsConfig(nil).Validate(valid))
	assert.NoError(t, KeyBindingsConfig{"next_client": {"n"}}.Validate(valid))
	assert.ErrorContains(t, KeyBindingsConfig{"warp": {"w"}}.Validate(valid), "unknown key binding")
	assert.ErrorContains(t, KeyBindingsConfig{"next_client": {""}}.Validate(valid), "empty value")
	assert.ErrorContains(t,
		KeyBindingsConfig{"next_client": {"n"}, "previous_client": {"n"}}.Validate(valid),
		"assigned to both 'next_client' and 'previous_client'")
}
