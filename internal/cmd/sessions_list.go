package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/renato0307/spotter/internal/domain"
)

// SessionsListCmd lists the sessions of a coach on a date
type SessionsListCmd struct {
	Coach  string `help:"Coach ID (overrides coach_id in settings.json)" env:"SPOTTER_COACH_ID"`
	Date   string `help:"Workout date as YYYY-MM-DD (default today)"`
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
}

// Run executes the list command
func (s *SessionsListCmd) Run(cli *CLI) error {
	coachID, err := cli.coachID(s.Coach)
	if err != nil {
		return err
	}

	date := s.Date
	if date == "" {
		date = time.Now().Format(domain.DateLayout)
	}

	sessions, err := cli.Container.LiveCoaching.ListSessions(context.Background(), coachID, date)
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}

	if s.Format == "json" {
		return s.printJSON(sessions)
	}
	return s.printTable(date, sessions)
}

func (s *SessionsListCmd) printJSON(sessions []domain.CoachingSession) error {
	data, err := json.MarshalIndent(sessions, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func (s *SessionsListCmd) printTable(date string, sessions []domain.CoachingSession) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCLIENT\tGYM\tEXERCISES\tDONE\tSKIPPED\tUPDATED")
	for _, sess := range sessions {
		completed, skipped := sess.Counts()
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%s\n",
			sess.ID,
			sess.ClientName,
			sess.GymName,
			len(sess.Exercises),
			completed,
			skipped,
			sess.UpdatedAt.Local().Format("2006-01-02 15:04:05"))
	}
	w.Flush()

	fmt.Printf("\nTotal: %d sessions on %s\n", len(sessions), date)
	return nil
}
