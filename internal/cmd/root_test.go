package cmd

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/spotter/internal/config"
	"github.com/renato0307/spotter/internal/domain"
	"github.com/renato0307/spotter/internal/services"
)

func intPtr(v int) *int { return &v }

func TestApplyInt(t *testing.T) {
	t.Run("settings apply when flag is default", func(t *testing.T) {
		v := 2
		applyInt(&v, 2, "SPOTTER_TEST_UNSET", intPtr(5))
		assert.Equal(t, 5, v)
	})

	t.Run("explicit flag wins", func(t *testing.T) {
		v := 9
		applyInt(&v, 2, "SPOTTER_TEST_UNSET", intPtr(5))
		assert.Equal(t, 9, v)
	})

	t.Run("env var wins", func(t *testing.T) {
		t.Setenv("SPOTTER_TEST_SET", "2")
		v := 2
		applyInt(&v, 2, "SPOTTER_TEST_SET", intPtr(5))
		assert.Equal(t, 2, v)
	})

	t.Run("missing setting keeps default", func(t *testing.T) {
		v := 2
		applyInt(&v, 2, "SPOTTER_TEST_UNSET", nil)
		assert.Equal(t, 2, v)
	})
}

func TestApplyString(t *testing.T) {
	v := ""
	applyString(&v, "", "SPOTTER_TEST_UNSET", "postgres://db")
	assert.Equal(t, "postgres://db", v)

	v = "cli"
	applyString(&v, "", "SPOTTER_TEST_UNSET", "postgres://db")
	assert.Equal(t, "cli", v)
}

func TestCoachID(t *testing.T) {
	cli := &CLI{}
	_, err := cli.coachID("")
	assert.Error(t, err)

	cli.SetSettings(&config.Settings{CoachID: "from-settings"})
	id, err := cli.coachID("")
	require.NoError(t, err)
	assert.Equal(t, "from-settings", id)

	id, err = cli.coachID("from-flag")
	require.NoError(t, err)
	assert.Equal(t, "from-flag", id)
}

func TestKeyMap_RejectsConflicts(t *testing.T) {
	cli := &CLI{}
	cli.SetSettings(&config.Settings{Keys: config.KeyBindingsConfig{
		"complete": {"x"},
		"skip":     {"x"},
	}})

	_, err := cli.keyMap()
	assert.Error(t, err)
}

func TestParseKeyValues(t *testing.T) {
	assert.Equal(t, []string{"up", "k"}, parseKeyValues(" up, k ,"))
	assert.Empty(t, parseKeyValues(" , "))
}

func TestNewContainer_WiresLiveCoaching(t *testing.T) {
	dir := t.TempDir()
	container, err := NewContainer(ContainerConfig{
		ConnectivityInterval: time.Minute,
		RemoteDSN:            filepath.Join(dir, "sessions.db"),
		StateDBPath:          filepath.Join(dir, "state.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { container.Close() })

	_, err = container.RequireIdentity()
	assert.ErrorIs(t, err, ErrNoJWTSecret)

	ctx := context.Background()
	session, err := container.Planning.CreateSession(ctx, services.CreateSessionParams{
		ClientName: "Ana",
		CoachID:    "coach-1",
		Date:       "2024-05-10",
		Exercises:  []services.ExerciseParams{{Name: "Squat", Sets: 3, Reps: 5}},
	})
	require.NoError(t, err)

	controller, err := container.Registry.Get(ctx, "coach-1")
	require.NoError(t, err)
	require.NoError(t, controller.Start(ctx, "2024-05-10", []string{session.ID}))
	require.NoError(t, controller.RecordExercise(ctx, session.ID, 0, domain.OutcomeCompleted))

	result := container.StateStore.Lookup(ctx, "coach-1")
	require.True(t, result.Found())
	assert.Equal(t, []string{session.ID}, result.State.LiveSessionIDs)

	sessions, err := container.LiveCoaching.ListSessions(ctx, "coach-1", "2024-05-10")
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.True(t, sessions[0].Exercises[0].Completed)
	assert.Equal(t, domain.SaveSaved, controller.SaveStatus().Snapshot().State)
}

func TestNewContainer_WithJWTSecret(t *testing.T) {
	dir := t.TempDir()
	container, err := NewContainer(ContainerConfig{
		ConnectivityInterval: time.Minute,
		JWTSecret:            "secret",
		RemoteDSN:            filepath.Join(dir, "sessions.db"),
		StateDBPath:          filepath.Join(dir, "state.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { container.Close() })

	identity, err := container.RequireIdentity()
	require.NoError(t, err)

	token, err := identity.Mint("coach-1", "", time.Hour)
	require.NoError(t, err)
	who, err := identity.Identify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "coach-1", who.UserID)
}
