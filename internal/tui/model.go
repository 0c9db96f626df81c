// Package tui implements the interactive crew composer and monitor.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/hay-kot/a4s/internal/a4s"
	"github.com/hay-kot/a4s/internal/core/crew"
	"github.com/hay-kot/a4s/internal/core/logging"
	"github.com/hay-kot/a4s/internal/core/notify"
	"github.com/hay-kot/a4s/internal/core/styles"
	"github.com/hay-kot/a4s/internal/tui/components"
)

// ViewType identifies which top level view is active.
type ViewType int

const (
	ViewCreate ViewType = iota
	ViewCrews
)

// UIState represents the current state of the TUI.
type UIState int

const (
	stateNormal UIState = iota
	stateCreating
	stateExecuting
	stateConfirming
	stateShowingHelp
	stateShowingNotifications
)

const keyCtrlC = "ctrl+c"

// Opts configures the TUI.
type Opts struct {
	ConfigPath string
	Build      BuildInfo
	// ConfigWatcher reloads theme and toast settings when set.
	ConfigWatcher *ConfigWatcher
}

// Model is the main Bubble Tea model for the TUI.
type Model struct {
	ctx  context.Context
	app  *a4s.App
	opts Opts
	log  zerolog.Logger

	keys    KeyMap
	help    help.Model
	spinner spinner.Model

	state      UIState
	activeView ViewType
	width      int
	height     int
	quitting   bool

	taskCursor int
	crewCursor int
	showDetail bool

	// focusCrewID moves the cursor to this crew on the next list load.
	focusCrewID string

	// pendingDelete is the crew id awaiting confirmation.
	pendingDelete string
	confirmModal  components.ConfirmModal

	createModal       *createModal
	executeModal      *executeModal
	helpDialog        *components.HelpDialog
	notificationModal *NotificationModal

	markdown *markdownRenderer

	notifyBuf       *NotificationBuffer
	toastController *ToastController
	toastView       *ToastView
}

// New creates the TUI model. Notifications published on the app bus are
// routed into the model as toasts.
func New(ctx context.Context, app *a4s.App, opts Opts) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Spinner{Frames: styles.SpinnerFrames, FPS: spinner.Dot.FPS}
	sp.Style = styles.TextSecondaryStyle

	buf := NewNotificationBuffer()
	app.Bus.Subscribe(buf.Push)

	toasts := NewToastController(app.Config.TUI.ToastTTL)

	keys := DefaultKeyMap()
	keys.SetView(ViewCreate)

	h := help.New()
	h.Styles = helpStyles()

	return Model{
		ctx:             ctx,
		app:             app,
		opts:            opts,
		log:             logging.Component("tui"),
		keys:            keys,
		help:            h,
		spinner:         sp,
		activeView:      ViewCreate,
		markdown:        &markdownRenderer{},
		notifyBuf:       buf,
		toastController: toasts,
		toastView:       NewToastView(toasts),
	}
}

func helpStyles() help.Styles {
	s := help.New().Styles
	s.ShortKey = styles.TextPrimaryStyle
	s.ShortDesc = styles.TextMutedStyle
	s.ShortSeparator = styles.TextSurfaceStyle
	return s
}

// Messages carrying the outcome of backend calls. The service has already
// published the user-facing notification by the time these arrive.
type (
	crewsLoadedMsg struct{ err error }
	crewCreatedMsg struct {
		crew crew.Crew
		err  error
	}
	crewExecutedMsg struct {
		crewID string
		err    error
	}
	crewSyncedMsg struct {
		crewID string
		err    error
	}
	executionsMsg struct {
		crewID string
		err    error
	}
	refreshAllMsg  struct{ err error }
	crewDeletedMsg struct {
		crewID string
		err    error
	}
)

// Init starts the first crew fetch, the spinner and the notification pump.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.fetchCrews(),
		m.spinner.Tick,
		m.notifyBuf.WaitForSignal(),
	}
	if m.opts.ConfigWatcher != nil {
		cmds = append(cmds, m.opts.ConfigWatcher.Start())
	}
	return tea.Batch(cmds...)
}

func (m Model) fetchCrews() tea.Cmd {
	return func() tea.Msg {
		_, err := m.app.Crews.Fetch(m.ctx)
		return crewsLoadedMsg{err: err}
	}
}

func (m Model) createCrew(name, description string) tea.Cmd {
	return func() tea.Msg {
		c, err := m.app.Crews.Create(m.ctx, name, description, m.app.Selection)
		return crewCreatedMsg{crew: c, err: err}
	}
}

func (m Model) executeCrew(crewID, payload string) tea.Cmd {
	return func() tea.Msg {
		_, err := m.app.Crews.Execute(m.ctx, crewID, payload)
		return crewExecutedMsg{crewID: crewID, err: err}
	}
}

func (m Model) syncCrew(crewID string) tea.Cmd {
	return func() tea.Msg {
		_, err := m.app.Crews.Sync(m.ctx, crewID)
		return crewSyncedMsg{crewID: crewID, err: err}
	}
}

func (m Model) syncExecutions(crewID string) tea.Cmd {
	return func() tea.Msg {
		_, err := m.app.Crews.SyncExecutions(m.ctx, crewID)
		return executionsMsg{crewID: crewID, err: err}
	}
}

func (m Model) refreshAll() tea.Cmd {
	return func() tea.Msg {
		return refreshAllMsg{err: m.app.Crews.RefreshAll(m.ctx)}
	}
}

func (m Model) deleteCrew(crewID string) tea.Cmd {
	return func() tea.Msg {
		return crewDeletedMsg{crewID: crewID, err: m.app.Crews.Delete(m.ctx, crewID)}
	}
}

// Update routes messages to their handlers.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)

	case crewsLoadedMsg:
		return m.handleCrewsLoaded(msg)
	case crewCreatedMsg:
		return m.handleCrewCreated(msg)
	case crewExecutedMsg:
		return m.handleCrewExecuted(msg)
	case crewSyncedMsg:
		return m, nil
	case executionsMsg:
		return m, nil
	case refreshAllMsg:
		return m, nil
	case crewDeletedMsg:
		return m.handleCrewDeleted(msg)

	case drainNotificationsMsg:
		return m.handleDrainNotifications()
	case toastTickMsg:
		return m.handleToastTick()
	case configChangedMsg:
		return m.handleConfigChanged(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m.handleFallthrough(msg)
}

func (m Model) quit() (Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

// selectedCrew returns the crew under the cursor on the crews view.
func (m Model) selectedCrew() (crew.Crew, bool) {
	crews := m.app.Crews.Crews()
	if len(crews) == 0 {
		return crew.Crew{}, false
	}
	idx := min(max(m.crewCursor, 0), len(crews)-1)
	return crews[idx], true
}

func (m *Model) setView(v ViewType) {
	m.activeView = v
	m.keys.SetView(v)
}

// ensureToastTick starts the toast countdown unless one is already running.
func (m *Model) ensureToastTick() tea.Cmd {
	if !m.toastController.HasToasts() || m.toastController.Ticking() {
		return nil
	}
	m.toastController.SetTicking(true)
	return scheduleToastTick()
}

// pushToasts moves drained notifications onto the toast stack.
func (m *Model) pushToasts(items []notify.Notification) tea.Cmd {
	for _, n := range items {
		m.toastController.Push(n)
	}
	return m.ensureToastTick()
}
