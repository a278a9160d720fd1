package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/renato0307/spotter/internal/api"
	"github.com/renato0307/spotter/internal/config"
	"github.com/renato0307/spotter/internal/logging"
	"github.com/renato0307/spotter/internal/paths"
	"github.com/renato0307/spotter/internal/server"
)

// ServeCmd runs the HTTP API and the SSH terminal client until interrupted
type ServeCmd struct {
	AuthorizedKeys string   `help:"authorized_keys file for SSH logins (default ~/.ssh/authorized_keys)" env:"SPOTTER_AUTHORIZED_KEYS"`
	CORSOrigins    []string `help:"Allowed CORS origins for the tablet client (default: any)" env:"SPOTTER_CORS_ORIGINS"`
	HTTPAddress    string   `help:"HTTP API listen address" default:":8080" env:"SPOTTER_HTTP_ADDRESS"`
	NoSSH          bool     `help:"Do not start the SSH server"`
	SSHAddress     string   `help:"SSH listen address" default:":2222" env:"SPOTTER_SSH_ADDRESS"`
}

// Run executes the serve command
func (s *ServeCmd) Run(cli *CLI) error {
	if cli.settings != nil {
		applyString(&s.HTTPAddress, config.DefaultHTTPAddress, "SPOTTER_HTTP_ADDRESS", cli.settings.HTTPAddress)
		applyString(&s.SSHAddress, config.DefaultSSHAddress, "SPOTTER_SSH_ADDRESS", cli.settings.SSHAddress)
		if len(s.CORSOrigins) == 0 {
			s.CORSOrigins = cli.settings.CORSOrigins
		}
	}

	container := cli.Container
	identity, err := container.RequireIdentity()
	if err != nil {
		return err
	}

	httpServer := api.New(api.Config{
		CORSOrigins: s.CORSOrigins,
		Debug:       cli.Debug,
	}, container.Registry, identity, container.Connectivity)

	var sshServer *server.Server
	if !s.NoSSH {
		keys, err := cli.keyMap()
		if err != nil {
			return err
		}
		sshServer, err = server.NewServer(server.Config{
			Address:              s.SSHAddress,
			AuthorizedKeysPath:   s.AuthorizedKeys,
			ConnectivityInterval: time.Duration(cli.ConnectivityIntervalSeconds) * time.Second,
			HostKeyPath:          filepath.Join(paths.GetSSHDir(), "id_ed25519"),
			Keys:                 keys,
		}, container.LiveCoaching, container.Connectivity, container.Clock)
		if err != nil {
			return err
		}
	}

	ctx, cancel := signalContext()
	defer cancel()

	container.Connectivity.Start()

	logging.Logger.Info("Starting spotter server",
		"http_address", s.HTTPAddress,
		"ssh_address", s.SSHAddress,
		"ssh", sshServer != nil)
	fmt.Printf("HTTP API listening on %s\n", s.HTTPAddress)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return httpServer.Run(gctx, s.HTTPAddress)
	})
	if sshServer != nil {
		fmt.Printf("SSH server listening on %s\n", s.SSHAddress)
		g.Go(func() error {
			return sshServer.Run(gctx)
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}
	logging.Logger.Info("Spotter server stopped")
	return nil
}
