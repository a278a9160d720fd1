package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/renato0307/spotter/internal/domain"
	"github.com/renato0307/spotter/internal/livestate"
)

// StateCmd inspects the on-device live coaching state
type StateCmd struct {
	Clear StateClearCmd `cmd:"clear" help:"Discard the persisted live run of a user"`
	Show  StateShowCmd  `cmd:"show" help:"Show persisted live runs" default:"1"`
}

// StateShowCmd shows persisted live runs
type StateShowCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
	User   string `arg:"" optional:"" help:"User ID (default: every user with a persisted run)"`
}

// StateClearCmd clears the persisted live run of a user
type StateClearCmd struct {
	User string `arg:"" help:"User ID"`
}

// Run executes the show command
func (s *StateShowCmd) Run(cli *CLI) error {
	ctx := context.Background()

	users, err := s.users(ctx, cli)
	if err != nil {
		return err
	}

	// Lookup clears stale entries, so show reports what a client would see
	results := make(map[string]livestate.LookupResult, len(users))
	for _, user := range users {
		results[user] = cli.Container.StateStore.Lookup(ctx, user)
	}

	if s.Format == "json" {
		output := make(map[string]stateEntry, len(results))
		for user, r := range results {
			r := r // per-iteration copy; go directive is < 1.22
			entry := stateEntry{Outcome: string(r.Outcome)}
			if r.Found() {
				entry.State = &r.State
			}
			output[user] = entry
		}
		data, err := json.MarshalIndent(output, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "USER\tLOOKUP\tSTEP\tDATE\tCLIENT\tSESSIONS\tSTARTED")
	for _, user := range users {
		r := results[user]
		if !r.Found() {
			fmt.Fprintf(w, "%s\t%s\t-\t-\t-\t-\t-\n", user, r.Outcome)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d/%d\t%s\t%s\n",
			user,
			r.Outcome,
			r.State.Step,
			r.State.SelectedDate,
			r.State.CurrentClientIndex+1,
			len(r.State.LiveSessionIDs),
			strings.Join(r.State.LiveSessionIDs, ","),
			r.State.StartedAt.Local().Format("2006-01-02 15:04:05"))
	}
	w.Flush()
	return nil
}

type stateEntry struct {
	Outcome string                    `json:"outcome"`
	State   *domain.LiveCoachingState `json:"state,omitempty"`
}

func (s *StateShowCmd) users(ctx context.Context, cli *CLI) ([]string, error) {
	if s.User != "" {
		return []string{s.User}, nil
	}
	keys, err := cli.Container.kv.Keys(ctx, livestate.KeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list state keys: %w", err)
	}
	users := make([]string, 0, len(keys))
	for _, k := range keys {
		users = append(users, strings.TrimPrefix(k, livestate.KeyPrefix))
	}
	return users, nil
}

// Run executes the clear command
func (s *StateClearCmd) Run(cli *CLI) error {
	cli.Container.StateStore.Clear(context.Background(), s.User)
	fmt.Printf("Live state of '%s' cleared\n", s.User)
	return nil
}
