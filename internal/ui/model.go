package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/renato0307/spotter/internal/domain"
	"github.com/renato0307/spotter/internal/logging"
	"github.com/renato0307/spotter/internal/ports"
	"github.com/renato0307/spotter/internal/services"
	"github.com/renato0307/spotter/internal/theme"
)

type uiState int

const (
	stateOpening uiState = iota
	stateHelp
	stateLive
	statePalette
	statePickingSessions
	stateResumePrompt
	stateSelectingDate
	stateSummary
)

// Options configures the terminal client
type Options struct {
	Clock                ports.Clock
	Connectivity         ports.Connectivity // nil: always online
	ConnectivityInterval time.Duration
	DevMode              bool
	Keys                 KeyMap
}

// Model is the terminal live coaching client of one coach
type Model struct {
	clock                ports.Clock
	connectivity         ports.Connectivity
	connectivityInterval time.Duration
	controller           *services.Controller
	ctx                  context.Context
	cursor               int     // Selected exercise of the current client
	dateForm             *Dialog // Date selection dialog
	devMode              bool
	err                  error // Last error, shown until the next action
	height               int
	help                 help.Model
	helpScreen           *Dialog
	keys                 KeyMap
	online               bool
	palette              *CommandPalette
	picker               *Dialog // Session picker dialog
	previousState        uiState // State to return to from help and the palette
	resumeForm           *Dialog
	saveStatus           domain.SaveStatus
	spinner              spinner.Model
	state                uiState
	statusCh             <-chan domain.SaveStatus
	unsubscribe          func()
	view                 services.ControllerView
	width                int
}

// NewModel creates the terminal client for controller
func NewModel(ctx context.Context, controller *services.Controller, opts Options) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = theme.SpinnerStyle

	statusCh, unsubscribe := controller.SaveStatus().Subscribe()

	return &Model{
		clock:                opts.Clock,
		connectivity:         opts.Connectivity,
		connectivityInterval: opts.ConnectivityInterval,
		controller:           controller,
		ctx:                  ctx,
		devMode:              opts.DevMode,
		help:                 help.New(),
		keys:                 opts.Keys,
		online:               true,
		spinner:              s,
		state:                stateOpening,
		statusCh:             statusCh,
		unsubscribe:          unsubscribe,
	}
}

// Close stops listening for save status changes
func (m *Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.openCmd(), m.waitForStatus(), m.probeConnectivity())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Application.ForceQuit) {
			return m, tea.Quit
		}
	case saveStatusMsg:
		m.saveStatus = msg.status
		cmds := []tea.Cmd{m.waitForStatus()}
		if msg.status.State == domain.SaveSaving {
			cmds = append(cmds, m.spinner.Tick)
		}
		return m, tea.Batch(cmds...)
	case connectivityMsg:
		if msg.online != m.online {
			logging.Logger.Info("Connectivity changed", "online", msg.online)
		}
		m.online = msg.online
		return m, m.scheduleConnectivity()
	case spinner.TickMsg:
		if m.saveStatus.State != domain.SaveSaving {
			break
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	switch m.state {
	case stateOpening:
		return m.updateOpening(msg)
	case stateHelp:
		return m.updateHelp(msg)
	case stateLive:
		return m.updateLive(msg)
	case statePalette:
		return m.updatePalette(msg)
	case statePickingSessions:
		return m.updatePickingSessions(msg)
	case stateResumePrompt:
		return m.updateResumePrompt(msg)
	case stateSelectingDate:
		return m.updateSelectingDate(msg)
	case stateSummary:
		return m.updateSummary(msg)
	}
	return m, nil
}

func (m *Model) updateOpening(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(openedMsg); !ok {
		return m, nil
	}

	m.refreshView()
	if m.view.ResumeOffer != nil {
		m.resumeForm = NewDialog("Live session in progress", NewResumeForm(*m.view.ResumeOffer), m.devMode)
		m.state = stateResumePrompt
		return m, m.resumeForm.Init()
	}
	return m, m.showDateForm()
}

func (m *Model) updateResumePrompt(msg tea.Msg) (tea.Model, tea.Cmd) {
	updated, cmd := m.resumeForm.Update(msg)
	m.resumeForm = updated.(*Dialog)

	content, ok := m.resumeForm.Content().(*ResumeForm)
	if !ok || !content.Completed {
		return m, cmd
	}
	m.resumeForm = nil

	if content.Cancelled {
		return m, tea.Quit
	}

	if content.Resume() {
		if err := m.controller.Resume(m.ctx); err != nil {
			m.err = err
			return m, m.showDateForm()
		}
		m.enterCurrentStep()
		return m, nil
	}

	if err := m.controller.Restart(m.ctx); err != nil {
		m.err = err
	}
	return m, m.showDateForm()
}

func (m *Model) updateSelectingDate(msg tea.Msg) (tea.Model, tea.Cmd) {
	updated, cmd := m.dateForm.Update(msg)
	m.dateForm = updated.(*Dialog)

	content, ok := m.dateForm.Content().(*DateForm)
	if !ok || !content.Completed {
		return m, cmd
	}
	m.dateForm = nil

	result := content.Result()
	if result.Cancelled {
		return m, tea.Quit
	}
	if result.Error != nil {
		m.err = result.Error
		return m, m.showDateForm()
	}

	m.err = nil
	picker := NewSessionPicker(m.ctx, m.controller, result.Date, result.Sessions)
	m.picker = NewDialog("Pick clients", picker, m.devMode)
	m.state = statePickingSessions
	return m, m.picker.Init()
}

func (m *Model) updatePickingSessions(msg tea.Msg) (tea.Model, tea.Cmd) {
	updated, cmd := m.picker.Update(msg)
	m.picker = updated.(*Dialog)

	content, ok := m.picker.Content().(*SessionPicker)
	if !ok || !content.Completed {
		return m, cmd
	}
	m.picker = nil

	result := content.Result()
	if result.Cancelled {
		return m, m.showDateForm()
	}
	if result.Error != nil {
		m.err = result.Error
		return m, m.showDateForm()
	}

	m.err = nil
	m.enterCurrentStep()
	return m, nil
}

func (m *Model) updateLive(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case exerciseRecordedMsg:
		if msg.err != nil {
			m.err = msg.err
		}
		m.refreshView()
		return m, nil
	case sessionsRefreshedMsg:
		m.err = msg.err
		m.refreshView()
		m.clampCursor()
		return m, nil
	case tea.KeyMsg:
		return m.handleLiveKey(msg)
	}
	return m, nil
}

func (m *Model) handleLiveKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Application.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Application.Help):
		return m, m.showHelp()
	case key.Matches(msg, m.keys.Application.CommandPalette):
		return m, m.showPalette()
	case key.Matches(msg, m.keys.Navigation.NextClient):
		m.navigate(m.controller.NextClient(m.ctx))
	case key.Matches(msg, m.keys.Navigation.PreviousClient):
		m.navigate(m.controller.PreviousClient(m.ctx))
	case key.Matches(msg, m.keys.Navigation.GoToClient):
		if index, ok := clientIndexForKey(msg.String(), m.keys.Navigation.GoToClient.Keys()); ok {
			m.navigate(m.controller.GoToClient(m.ctx, index))
		}
	case key.Matches(msg, m.keys.Navigation.ExerciseDown):
		m.cursor++
		m.clampCursor()
	case key.Matches(msg, m.keys.Navigation.ExerciseUp):
		m.cursor--
		m.clampCursor()
	case key.Matches(msg, m.keys.Recording.Complete):
		return m, m.record(domain.OutcomeCompleted)
	case key.Matches(msg, m.keys.Recording.Skip):
		return m, m.record(domain.OutcomeSkipped)
	case key.Matches(msg, m.keys.Recording.Undo):
		return m, m.record(domain.OutcomePending)
	case key.Matches(msg, m.keys.Run.Refresh):
		return m, m.refreshCmd()
	case key.Matches(msg, m.keys.Run.Finish):
		m.finish()
	case key.Matches(msg, m.keys.Run.Restart):
		return m, m.restart()
	}
	return m, nil
}

func (m *Model) updatePalette(msg tea.Msg) (tea.Model, tea.Cmd) {
	updated, cmd := m.palette.Update(msg)
	m.palette = updated.(*CommandPalette)
	if !m.palette.Completed {
		return m, cmd
	}

	result := m.palette.Result
	m.palette = nil
	m.state = m.previousState
	if result.Cancelled || result.Action == nil {
		return m, nil
	}

	switch result.Action.Name {
	case "finish":
		m.finish()
	case "help":
		return m, m.showHelp()
	case "quit":
		return m, tea.Quit
	case "refresh":
		return m, m.refreshCmd()
	case "restart":
		return m, m.restart()
	}
	return m, nil
}

func (m *Model) updateSummary(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Application.Quit):
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Application.Help):
		return m, m.showHelp()
	case key.Matches(keyMsg, m.keys.Run.Restart):
		return m, m.restart()
	}
	return m, nil
}

func (m *Model) updateHelp(msg tea.Msg) (tea.Model, tea.Cmd) {
	updated, cmd := m.helpScreen.Update(msg)
	m.helpScreen = updated.(*Dialog)

	if content, ok := m.helpScreen.Content().(*HelpScreen); ok && content.Completed {
		m.helpScreen = nil
		m.state = m.previousState
		return m, nil
	}
	return m, cmd
}

func (m *Model) View() string {
	var body string
	switch m.state {
	case stateOpening:
		body = renderHeader(m.devMode, "") + "\n" + theme.MutedStyle.Render("Checking for a live session in progress...") + "\n"
	case stateHelp:
		return m.helpScreen.View()
	case stateResumePrompt:
		body = m.resumeForm.View()
	case stateSelectingDate:
		body = m.dateForm.View()
	case statePickingSessions:
		body = m.picker.View()
	case stateLive:
		body = renderHeader(m.devMode, "Live · "+m.view.SelectedDate) + "\n" + renderLive(m.view, m.cursor)
	case statePalette:
		body = renderHeader(m.devMode, "Live · "+m.view.SelectedDate) + "\n" + renderLive(m.view, m.cursor) + "\n" + m.palette.View()
	case stateSummary:
		body = renderHeader(m.devMode, "Summary") + "\n" + renderSummary(m.view, m.keys.Run.Restart.Help().Key)
	}

	var b strings.Builder
	if !m.online {
		b.WriteString(theme.OfflineBannerStyle.Render("Offline: progress will not reach the server until the connection returns") + "\n")
	}
	b.WriteString(body)

	if m.state == stateLive || m.state == stateSummary {
		if indicator := renderSaveIndicator(m.saveStatus, m.spinner); indicator != "" {
			b.WriteString("\n" + indicator + "\n")
		}
	}
	if m.err != nil {
		b.WriteString("\n" + theme.ErrorStyle.Width(max(m.width, 20)).Render("Error: "+m.err.Error()) + "\n")
	}
	if m.state == stateLive {
		b.WriteString("\n" + m.help.ShortHelpView(m.keys.LiveHelp()) + "\n")
	}
	return b.String()
}

func (m *Model) openCmd() tea.Cmd {
	controller, ctx := m.controller, m.ctx
	return func() tea.Msg {
		return openedMsg{decision: controller.Open(ctx)}
	}
}

// waitForStatus delivers the next save status change
func (m *Model) waitForStatus() tea.Cmd {
	ch := m.statusCh
	return func() tea.Msg {
		status, ok := <-ch
		if !ok {
			return nil
		}
		return saveStatusMsg{status: status}
	}
}

func (m *Model) probeConnectivity() tea.Cmd {
	if m.connectivity == nil {
		return nil
	}
	conn := m.connectivity
	return func() tea.Msg {
		return connectivityMsg{online: conn.Online()}
	}
}

func (m *Model) scheduleConnectivity() tea.Cmd {
	if m.connectivity == nil || m.connectivityInterval <= 0 {
		return nil
	}
	conn := m.connectivity
	return tea.Tick(m.connectivityInterval, func(time.Time) tea.Msg {
		return connectivityMsg{online: conn.Online()}
	})
}

func (m *Model) refreshCmd() tea.Cmd {
	controller, ctx := m.controller, m.ctx
	return func() tea.Msg {
		return sessionsRefreshedMsg{err: controller.Refresh(ctx)}
	}
}

// record sends the outcome of the selected exercise; the flow never waits for it
func (m *Model) record(outcome domain.ExerciseOutcome) tea.Cmd {
	session, ok := m.view.CurrentSession()
	if !ok || len(session.Exercises) == 0 {
		return nil
	}

	controller, ctx, index := m.controller, m.ctx, m.cursor
	if outcome != domain.OutcomePending && m.cursor < len(session.Exercises)-1 {
		m.cursor++
	}
	return func() tea.Msg {
		return exerciseRecordedMsg{err: controller.RecordExercise(ctx, session.ID, index, outcome)}
	}
}

func (m *Model) restart() tea.Cmd {
	if err := m.controller.Restart(m.ctx); err != nil {
		m.err = err
		return nil
	}
	m.err = nil
	return m.showDateForm()
}

func (m *Model) finish() {
	if err := m.controller.Finish(m.ctx); err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.enterCurrentStep()
}

func (m *Model) navigate(err error) {
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.refreshView()
	m.resetCursor()
}

func (m *Model) showDateForm() tea.Cmd {
	m.refreshView()
	date := m.view.SelectedDate
	if date == "" {
		date = m.today()
	}
	m.dateForm = NewDialog("Select date", NewDateForm(m.ctx, m.controller, date), m.devMode)
	m.state = stateSelectingDate
	return m.dateForm.Init()
}

func (m *Model) showPalette() tea.Cmd {
	subtitle := ""
	if session, ok := m.view.CurrentSession(); ok {
		subtitle = "client: " + session.ClientName
	}
	m.palette = NewCommandPalette(subtitle, m.keys)
	m.palette.width = m.width
	m.previousState = m.state
	m.state = statePalette
	return m.palette.Init()
}

func (m *Model) showHelp() tea.Cmd {
	m.previousState = m.state
	m.helpScreen = NewDialog("Help", NewHelpScreen(&m.keys), m.devMode)
	m.state = stateHelp
	initCmd := m.helpScreen.Init()
	updated, sizeCmd := m.helpScreen.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
	m.helpScreen = updated.(*Dialog)
	return tea.Batch(initCmd, sizeCmd)
}

// enterCurrentStep switches the UI to the controller's step
func (m *Model) enterCurrentStep() {
	m.refreshView()
	switch m.view.Step {
	case domain.StepLive:
		m.state = stateLive
		m.resetCursor()
	case domain.StepSummary:
		m.state = stateSummary
	default:
		m.state = stateSelectingDate
	}
}

func (m *Model) refreshView() {
	m.view = m.controller.View()
}

// resetCursor puts the cursor on the client's next exercise
func (m *Model) resetCursor() {
	m.cursor = 0
	if session, ok := m.view.CurrentSession(); ok {
		m.cursor = session.CurrentExerciseIndex
	}
	m.clampCursor()
}

func (m *Model) clampCursor() {
	session, ok := m.view.CurrentSession()
	if !ok || len(session.Exercises) == 0 {
		m.cursor = 0
		return
	}
	m.cursor = min(max(m.cursor, 0), len(session.Exercises)-1)
}

func (m *Model) today() string {
	if m.clock == nil {
		return time.Now().Format(domain.DateLayout)
	}
	return m.clock.Now().Local().Format(domain.DateLayout)
}

// clientIndexForKey maps a goto key to its client index ("1" → 0)
func clientIndexForKey(pressed string, keys []string) (int, bool) {
	for i, k := range keys {
		if k == pressed {
			return i, true
		}
	}
	return 0, false
}
