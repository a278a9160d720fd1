package cmd

import (
	"errors"
	"time"

	"github.com/renato0307/spotter/internal/adapters/auth"
	"github.com/renato0307/spotter/internal/adapters/connectivity"
	"github.com/renato0307/spotter/internal/adapters/remote"
	adapterstorage "github.com/renato0307/spotter/internal/adapters/storage"
	"github.com/renato0307/spotter/internal/clock"
	"github.com/renato0307/spotter/internal/livestate"
	"github.com/renato0307/spotter/internal/logging"
	"github.com/renato0307/spotter/internal/ports"
	"github.com/renato0307/spotter/internal/services"
)

// ErrNoJWTSecret is returned by commands that need tokens when no secret is configured
var ErrNoJWTSecret = errors.New("jwt secret is required (--jwt-secret, SPOTTER_JWT_SECRET or jwt_secret in settings.json)")

// ContainerConfig holds what the container needs to wire adapters
type ContainerConfig struct {
	ConnectivityInterval time.Duration
	JWTSecret            string
	RemoteDSN            string
	SavedDisplay         time.Duration
	StateDBPath          string
}

// Container holds all dependencies for the application
type Container struct {
	Clock        ports.Clock
	Connectivity *connectivity.Monitor
	Identity     *auth.JWTProvider // nil without a JWT secret
	LiveCoaching *services.LiveCoachingService
	Planning     *services.PlanningService
	Registry     *services.ControllerRegistry
	StateStore   *livestate.Store

	// Internal - exposed for inspection commands and cleanup
	kv          *adapterstorage.SQLiteKVStore
	sessionRepo *remote.SessionRepository
}

// NewContainer creates a new Container with all dependencies wired
func NewContainer(cfg ContainerConfig) (*Container, error) {
	kv, err := adapterstorage.NewSQLiteKVStore(cfg.StateDBPath)
	if err != nil {
		return nil, err
	}

	sessionRepo, err := remote.NewSessionRepository(cfg.RemoteDSN)
	if err != nil {
		kv.Close()
		return nil, err
	}

	var identity *auth.JWTProvider
	if cfg.JWTSecret != "" {
		identity, err = auth.NewJWTProvider(cfg.JWTSecret)
		if err != nil {
			kv.Close()
			sessionRepo.Close()
			return nil, err
		}
	}

	systemClock := clock.System{}
	stateStore := livestate.NewStore(kv, systemClock)
	liveCoaching := services.NewLiveCoachingService(sessionRepo, sessionRepo, stateStore, systemClock, cfg.SavedDisplay)

	logging.Logger.Debug("Container initialized",
		"state_db", cfg.StateDBPath,
		"remote_postgres", remote.IsPostgresDSN(cfg.RemoteDSN),
		"jwt", identity != nil)

	return &Container{
		Clock:        systemClock,
		Connectivity: connectivity.NewMonitor(sessionRepo, cfg.ConnectivityInterval),
		Identity:     identity,
		LiveCoaching: liveCoaching,
		Planning:     services.NewPlanningService(sessionRepo),
		Registry:     services.NewControllerRegistry(liveCoaching),
		StateStore:   stateStore,
		kv:           kv,
		sessionRepo:  sessionRepo,
	}, nil
}

// RequireIdentity returns the token provider or ErrNoJWTSecret
func (c *Container) RequireIdentity() (*auth.JWTProvider, error) {
	if c.Identity == nil {
		return nil, ErrNoJWTSecret
	}
	return c.Identity, nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	c.Connectivity.Stop()
	return errors.Join(c.kv.Close(), c.sessionRepo.Close())
}
