package server

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	wishlogging "github.com/charmbracelet/wish/logging"

	"github.com/renato0307/spotter/internal/logging"
	"github.com/renato0307/spotter/internal/ports"
	"github.com/renato0307/spotter/internal/services"
	"github.com/renato0307/spotter/internal/ui"
)

const shutdownTimeout = 30 * time.Second

// Config configures the SSH server
type Config struct {
	Address              string
	AuthorizedKeysPath   string // Defaults to ~/.ssh/authorized_keys
	ConnectivityInterval time.Duration
	HostKeyPath          string
	Keys                 ui.KeyMap
}

// Server serves the live coaching terminal client over SSH.
// The SSH user name is the coach ID.
type Server struct {
	clock        ports.Clock
	cfg          Config
	connectivity ports.Connectivity
	service      *services.LiveCoachingService
	wishServer   *ssh.Server
}

// NewServer creates a new SSH server instance
func NewServer(cfg Config, service *services.LiveCoachingService, connectivity ports.Connectivity, clock ports.Clock) (*Server, error) {
	if cfg.AuthorizedKeysPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		cfg.AuthorizedKeysPath = filepath.Join(homeDir, ".ssh", "authorized_keys")
	}

	if err := os.MkdirAll(filepath.Dir(cfg.HostKeyPath), 0700); err != nil {
		return nil, fmt.Errorf("failed to create SSH directory: %w", err)
	}

	s := &Server{
		clock:        clock,
		cfg:          cfg,
		connectivity: connectivity,
		service:      service,
	}

	// Middleware executes in reverse order (last to first)
	wishServer, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(cfg.HostKeyPath),
		wish.WithPublicKeyAuth(s.authorize),
		wish.WithMiddleware(
			bubbletea.Middleware(s.teaHandler),
			activeterm.Middleware(), // Require PTY
			wishlogging.Middleware(),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create SSH server: %w", err)
	}

	s.wishServer = wishServer
	return s, nil
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logging.Logger.Info("Starting SSH server", "address", s.cfg.Address)
		errCh <- s.wishServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, ssh.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("SSH server failed: %w", err)
	case <-ctx.Done():
	}

	logging.Logger.Info("Shutting down SSH server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.wishServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown SSH server: %w", err)
	}

	logging.Logger.Info("SSH server stopped")
	return nil
}
