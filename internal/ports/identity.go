package ports

import (
	"context"
	"time"

	"github.com/renato0307/spotter/internal/domain"
)

// IdentityProvider resolves the coach behind an access token
type IdentityProvider interface {
	Identify(ctx context.Context, token string) (domain.Identity, error)
}

// Connectivity reports whether the remote store is reachable
type Connectivity interface {
	Online() bool
}

// Clock abstracts time to keep the flow deterministic in tests
type Clock interface {
	Now() time.Time
}
