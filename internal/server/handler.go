package server

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"

	"github.com/renato0307/spotter/internal/logging"
	"github.com/renato0307/spotter/internal/ui"
)

// teaHandler creates a terminal client for each SSH session.
// Every session gets its own controller; sessions of the same coach share
// the persisted live state, so a second terminal is offered the resume.
func (s *Server) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sess.Pty()
	coachID := sess.User()
	sessionID := fmt.Sprintf("%s@%s", coachID, sess.RemoteAddr().String())

	logging.Logger.Info("New SSH session",
		"session_id", sessionID,
		"coach_id", coachID,
		"term", pty.Term,
		"window", fmt.Sprintf("%dx%d", pty.Window.Width, pty.Window.Height))

	controller := s.service.NewController(coachID)
	model := ui.NewModel(sess.Context(), controller, ui.Options{
		Clock:                s.clock,
		Connectivity:         s.connectivity,
		ConnectivityInterval: s.cfg.ConnectivityInterval,
		DevMode:              false, // SSH mode never uses dev mode
		Keys:                 s.cfg.Keys,
	})

	startTime := time.Now()
	go func() {
		<-sess.Context().Done()
		model.Close()
		logging.Logger.Info("SSH session ended",
			"session_id", sessionID,
			"duration", time.Since(startTime).String())
	}()

	return model, []tea.ProgramOption{tea.WithAltScreen()}
}
