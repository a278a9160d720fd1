package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/spotter/internal/domain"
)

func TestControllerRegistry_OneControllerPerUser(t *testing.T) {
	h := newHarness(t)
	registry := NewControllerRegistry(h.svc)
	ctx := context.Background()

	a, err := registry.Get(ctx, "coach-a")
	require.NoError(t, err)
	again, err := registry.Get(ctx, "coach-a")
	require.NoError(t, err)
	b, err := registry.Get(ctx, "coach-b")
	require.NoError(t, err)

	assert.Same(t, a, again)
	assert.NotSame(t, a, b)
	assert.Equal(t, 2, registry.Len())

	registry.Drop("coach-a")
	assert.Equal(t, 1, registry.Len())
}

func TestControllerRegistry_RequiresIdentity(t *testing.T) {
	h := newHarness(t)
	registry := NewControllerRegistry(h.svc)

	_, err := registry.Get(context.Background(), "")

	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestControllerRegistry_OpensOnFirstUse(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.store.Save(ctx, "coach-a", persistedLive(0, "s1"))
	h.sessions.EXPECT().FetchByIDs(mock.Anything, []string{"s1"}).
		Return([]domain.CoachingSession{newSession("s1", true)}, nil).Once()
	registry := NewControllerRegistry(h.svc)

	c, err := registry.Get(ctx, "coach-a")
	require.NoError(t, err)
	_, err = registry.Get(ctx, "coach-a")
	require.NoError(t, err)

	assert.NotNil(t, c.View().ResumeOffer)
}
