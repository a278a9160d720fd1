package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/renato0307/spotter/internal/domain"
	"github.com/renato0307/spotter/internal/services"
)

// SessionsAddCmd plans a new session
type SessionsAddCmd struct {
	Client    string   `arg:"" help:"Client name"`
	Coach     string   `help:"Coach ID (overrides coach_id in settings.json)" env:"SPOTTER_COACH_ID"`
	Date      string   `help:"Workout date as YYYY-MM-DD (default today)"`
	Exercises []string `help:"Exercise as name:SETSxREPS@KG, e.g. squat:3x5@100 (repeatable)" short:"e" name:"exercise" sep:"none"`
	Gym       string   `help:"Gym name"`
}

// Run executes the add command
func (s *SessionsAddCmd) Run(cli *CLI) error {
	coachID, err := cli.coachID(s.Coach)
	if err != nil {
		return err
	}

	date := s.Date
	if date == "" {
		date = time.Now().Format(domain.DateLayout)
	}

	params := services.CreateSessionParams{
		ClientName: s.Client,
		CoachID:    coachID,
		Date:       date,
		GymName:    s.Gym,
	}
	for _, spec := range s.Exercises {
		exercise, err := services.ParseExercise(spec)
		if err != nil {
			return err
		}
		params.Exercises = append(params.Exercises, exercise)
	}

	session, err := cli.Container.Planning.CreateSession(context.Background(), params)
	if err != nil {
		return err
	}

	fmt.Printf("Session '%s' planned for %s on %s (%d exercises)\n",
		session.ID, session.ClientName, session.Date, len(session.Exercises))
	return nil
}
