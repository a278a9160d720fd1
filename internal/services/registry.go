package services

import (
	"context"
	"sync"

	"github.com/renato0307/spotter/internal/domain"
)

// ControllerRegistry keeps one live coaching controller per user
type ControllerRegistry struct {
	controllers map[string]*Controller
	mu          sync.Mutex
	svc         *LiveCoachingService
}

// NewControllerRegistry creates a new ControllerRegistry
func NewControllerRegistry(svc *LiveCoachingService) *ControllerRegistry {
	return &ControllerRegistry{
		controllers: make(map[string]*Controller),
		svc:         svc,
	}
}

// Get returns the controller of userID, opening a new one on first use.
// Without an identity there is nothing to continue.
func (r *ControllerRegistry) Get(ctx context.Context, userID string) (*Controller, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}

	r.mu.Lock()
	c, ok := r.controllers[userID]
	if !ok {
		c = r.svc.NewController(userID)
		r.controllers[userID] = c
	}
	r.mu.Unlock()

	if !ok {
		c.Open(ctx)
	}
	return c, nil
}

// Drop forgets the controller of userID (sign out). Persisted state is kept.
func (r *ControllerRegistry) Drop(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.controllers, userID)
}

// Len returns the number of active controllers
func (r *ControllerRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.controllers)
}
