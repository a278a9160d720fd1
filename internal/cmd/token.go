package cmd

import (
	"fmt"
	"time"

	"github.com/renato0307/spotter/internal/logging"
)

// TokenCmd mints a bearer token for the HTTP API
type TokenCmd struct {
	Email string        `help:"Email claim"`
	TTL   time.Duration `help:"Token lifetime" default:"24h"`
	User  string        `arg:"" help:"User ID (token subject, used as coach ID)"`
}

// Run executes the token command
func (t *TokenCmd) Run(cli *CLI) error {
	identity, err := cli.Container.RequireIdentity()
	if err != nil {
		return err
	}

	token, err := identity.Mint(t.User, t.Email, t.TTL)
	if err != nil {
		return fmt.Errorf("failed to mint token: %w", err)
	}

	logging.Logger.Info("Token minted", "user_id", t.User, "ttl", t.TTL.String())
	fmt.Println(token)
	return nil
}
