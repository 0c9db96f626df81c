package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hay-kot/a4s/internal/a4s"
	"github.com/hay-kot/a4s/internal/core/crew"
	"github.com/hay-kot/a4s/internal/core/styles"
	"github.com/hay-kot/a4s/internal/tui/components"
)

// --- Window ---

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.help.Width = msg.Width

	if m.createModal != nil {
		m.createModal.SetWidth(msg.Width)
	}
	if m.executeModal != nil {
		m.executeModal.SetWidth(msg.Width)
	}
	return m, nil
}

// --- Backend results ---

func (m Model) handleCrewsLoaded(msg crewsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.log.Debug().Err(msg.err).Msg("crew fetch failed")
	}
	crews := m.app.Crews.Crews()
	if m.focusCrewID != "" {
		for i, c := range crews {
			if c.ID == m.focusCrewID {
				m.crewCursor = i
				break
			}
		}
		m.focusCrewID = ""
	}
	m.crewCursor = min(m.crewCursor, max(len(crews)-1, 0))
	return m, nil
}

func (m Model) handleCrewCreated(msg crewCreatedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if m.createModal == nil {
			return m, nil
		}
		// Keep the form open with what the user typed.
		m.createModal.submitting = false
		if errors.Is(msg.err, a4s.ErrNameRequired) || errors.Is(msg.err, a4s.ErrNoTasksSelected) {
			m.createModal.err = msg.err.Error()
		} else {
			m.createModal.err = "Failed to create crew. Please try again."
		}
		return m, m.createModal.Reset()
	}

	m.state = stateNormal
	m.createModal = nil
	m.taskCursor = 0
	m.setView(ViewCrews)

	m.focusCrewID = msg.crew.ID
	return m, m.fetchCrews()
}

func (m Model) handleCrewExecuted(msg crewExecutedMsg) (tea.Model, tea.Cmd) {
	if m.executeModal == nil || m.executeModal.crewID != msg.crewID {
		return m, nil
	}

	if msg.err != nil {
		m.executeModal.submitting = false
		switch {
		case errors.Is(msg.err, crew.ErrInvalidPayload):
			m.executeModal.err = msg.err.Error()
		case errors.Is(msg.err, a4s.ErrCrewRunning):
			m.executeModal.err = "Crew is already running."
		default:
			m.executeModal.err = "Failed to execute crew."
		}
		return m, nil
	}

	m.state = stateNormal
	m.executeModal = nil
	return m, nil
}

func (m Model) handleCrewDeleted(msg crewDeletedMsg) (tea.Model, tea.Cmd) {
	if msg.err == nil {
		m.crewCursor = min(m.crewCursor, max(len(m.app.Crews.Crews())-1, 0))
	}
	return m, nil
}

// --- Notifications ---

func (m Model) handleDrainNotifications() (tea.Model, tea.Cmd) {
	items := m.notifyBuf.Drain()
	cmd := m.pushToasts(items)
	if m.notificationModal != nil && len(items) > 0 {
		m.notificationModal.refreshContent()
	}
	return m, tea.Batch(cmd, m.notifyBuf.WaitForSignal())
}

func (m Model) handleToastTick() (tea.Model, tea.Cmd) {
	m.toastController.Tick(toastTickInterval)
	if m.toastController.HasToasts() {
		return m, scheduleToastTick()
	}
	m.toastController.SetTicking(false)
	return m, nil
}

// handleConfigChanged applies theme and toast settings from a reloaded
// config. API settings take effect on the next start.
func (m Model) handleConfigChanged(msg configChangedMsg) (tea.Model, tea.Cmd) {
	var next tea.Cmd
	if m.opts.ConfigWatcher != nil {
		next = m.opts.ConfigWatcher.Start()
	}

	if msg.err != nil {
		m.log.Warn().Err(msg.err).Msg("config reload")
		m.app.Bus.Warn("Config", "Reload failed: "+msg.err.Error())
		return m, next
	}

	if palette, ok := styles.GetPalette(msg.cfg.TUI.Theme); ok {
		styles.SetTheme(palette)
		m.help.Styles = helpStyles()
		m.markdown = &markdownRenderer{}
	}
	m.toastController.SetTTL(msg.cfg.TUI.ToastTTL)
	m.app.Config.TUI = msg.cfg.TUI

	m.log.Info().Str("theme", msg.cfg.TUI.Theme).Msg("config reloaded")
	m.app.Bus.Info("Config Reloaded", "Theme and toast settings applied.")
	return m, next
}

// --- Input ---

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()

	switch m.state {
	case stateCreating:
		return m.handleCreateModalKey(msg, keyStr)
	case stateExecuting:
		return m.handleExecuteModalKey(msg, keyStr)
	case stateConfirming:
		return m.handleConfirmModalKey(msg, keyStr)
	case stateShowingHelp:
		return m.handleHelpDialogKey(keyStr)
	case stateShowingNotifications:
		return m.handleNotificationModalKey(keyStr)
	}

	return m.handleNormalKey(msg)
}

func (m Model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Dismiss):
		m.toastController.Dismiss()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		return m.showHelpDialog()
	case key.Matches(msg, m.keys.Notifications):
		m.notificationModal = NewNotificationModal(m.app.Bus, m.width, m.height)
		m.state = stateShowingNotifications
		return m, nil
	case key.Matches(msg, m.keys.NextView):
		if m.activeView == ViewCreate {
			m.setView(ViewCrews)
		} else {
			m.setView(ViewCreate)
		}
		return m, nil
	case key.Matches(msg, m.keys.CreateView):
		m.setView(ViewCreate)
		return m, nil
	case key.Matches(msg, m.keys.CrewsView):
		m.setView(ViewCrews)
		return m, nil
	}

	if m.activeView == ViewCreate {
		return m.handleCreateViewKey(msg)
	}
	return m.handleCrewsViewKey(msg)
}

func (m Model) handleCreateViewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	tasks := crew.Catalog()

	switch {
	case key.Matches(msg, m.keys.Up):
		m.taskCursor = max(m.taskCursor-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.taskCursor = min(m.taskCursor+1, len(tasks)-1)
	case key.Matches(msg, m.keys.Toggle):
		if m.taskCursor >= 0 && m.taskCursor < len(tasks) {
			m.app.Selection.Toggle(tasks[m.taskCursor].ID)
		}
	case key.Matches(msg, m.keys.Build):
		return m.openCreateModal()
	}
	return m, nil
}

func (m Model) handleCrewsViewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Reload):
		return m, m.fetchCrews()
	case key.Matches(msg, m.keys.RefreshAll):
		if len(m.app.Crews.Crews()) == 0 {
			return m, nil
		}
		return m, m.refreshAll()
	case key.Matches(msg, m.keys.NewCrew):
		m.setView(ViewCreate)
		return m, nil
	case key.Matches(msg, m.keys.Up):
		m.crewCursor = max(m.crewCursor-1, 0)
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.crewCursor = min(m.crewCursor+1, max(len(m.app.Crews.Crews())-1, 0))
		return m, nil
	}

	c, ok := m.selectedCrew()
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.ToggleDetail):
		m.showDetail = !m.showDetail
		if m.showDetail {
			if _, known := m.app.Crews.Executions(c.ID); !known {
				return m, m.syncExecutions(c.ID)
			}
		}
	case key.Matches(msg, m.keys.Execute):
		return m.openExecuteModal(c)
	case key.Matches(msg, m.keys.Sync):
		if m.app.Crews.Syncing(c.ID) {
			return m, nil
		}
		return m, m.syncCrew(c.ID)
	case key.Matches(msg, m.keys.Executions):
		return m, m.syncExecutions(c.ID)
	case key.Matches(msg, m.keys.Delete):
		m.pendingDelete = c.ID
		m.confirmModal = components.NewConfirmModal(
			"Delete Crew",
			fmt.Sprintf("Delete %q? This cannot be undone.", c.Name),
		)
		m.state = stateConfirming
	}
	return m, nil
}

// --- Create modal ---

func (m Model) openCreateModal() (tea.Model, tea.Cmd) {
	tasks := m.app.Selection.Tasks()
	if len(tasks) == 0 {
		return m, nil
	}
	m.createModal = newCreateModal(tasks, m.width)
	m.state = stateCreating
	return m, m.createModal.Init()
}

func (m Model) handleCreateModalKey(msg tea.KeyMsg, keyStr string) (tea.Model, tea.Cmd) {
	switch keyStr {
	case keyCtrlC:
		return m.quit()
	case "esc":
		m.state = stateNormal
		m.createModal = nil
		return m, nil
	}

	if m.createModal.submitting {
		return m, nil
	}
	return m.updateCreateModal(msg)
}

// updateCreateModal routes a message to the form and submits once the form
// completes.
func (m Model) updateCreateModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.createModal.Update(msg)

	if m.createModal.Cancelled() {
		m.state = stateNormal
		m.createModal = nil
		return m, nil
	}

	if m.createModal.Submitted() && !m.createModal.submitting {
		return m.submitCreate()
	}
	return m, cmd
}

func (m Model) submitCreate() (tea.Model, tea.Cmd) {
	m.createModal.submitting = true
	m.createModal.err = ""
	return m, m.createCrew(m.createModal.name, m.createModal.description)
}

// --- Execute modal ---

func (m Model) openExecuteModal(c crew.Crew) (tea.Model, tea.Cmd) {
	if !m.app.Crews.CanExecute(c.ID) {
		return m, nil
	}
	m.executeModal = newExecuteModal(c, m.app.Crews.LastPayload(m.ctx, c.ID), m.width)
	m.state = stateExecuting
	return m, m.executeModal.Focus()
}

func (m Model) handleExecuteModalKey(msg tea.KeyMsg, keyStr string) (tea.Model, tea.Cmd) {
	switch keyStr {
	case keyCtrlC:
		return m.quit()
	case "esc":
		m.state = stateNormal
		m.executeModal = nil
		return m, nil
	case keySubmitPayload:
		if m.executeModal.submitting || !m.executeModal.Validate() {
			return m, nil
		}
		m.executeModal.submitting = true
		return m, m.executeCrew(m.executeModal.crewID, m.executeModal.Value())
	}

	if m.executeModal.submitting {
		return m, nil
	}
	return m, m.executeModal.Update(msg)
}

// --- Confirm modal ---

func (m Model) handleConfirmModalKey(msg tea.KeyMsg, keyStr string) (tea.Model, tea.Cmd) {
	if keyStr == keyCtrlC {
		return m.quit()
	}

	m.confirmModal, _ = m.confirmModal.Update(msg)

	switch {
	case m.confirmModal.Confirmed():
		id := m.pendingDelete
		m.state = stateNormal
		m.pendingDelete = ""
		return m, m.deleteCrew(id)
	case m.confirmModal.Cancelled():
		m.state = stateNormal
		m.pendingDelete = ""
	}
	return m, nil
}

// --- Help and notifications ---

func (m Model) showHelpDialog() (tea.Model, tea.Cmd) {
	m.helpDialog = components.NewHelpDialog("Keyboard Shortcuts", m.keys.Sections())
	m.state = stateShowingHelp
	return m, nil
}

func (m Model) handleHelpDialogKey(keyStr string) (tea.Model, tea.Cmd) {
	switch keyStr {
	case keyCtrlC:
		return m.quit()
	case "esc", "?", "q":
		m.state = stateNormal
		m.helpDialog = nil
	}
	return m, nil
}

func (m Model) handleNotificationModalKey(keyStr string) (tea.Model, tea.Cmd) {
	switch keyStr {
	case keyCtrlC:
		return m.quit()
	case "esc", "q", "N":
		m.state = stateNormal
		m.notificationModal = nil
	case "j", "down":
		m.notificationModal.ScrollDown()
	case "k", "up":
		m.notificationModal.ScrollUp()
	case "D":
		if err := m.notificationModal.Clear(); err != nil {
			m.app.Bus.Error("Error", fmt.Sprintf("Failed to clear notifications: %v", err))
		}
	}
	return m, nil
}

// handleFallthrough routes messages that no typed case claimed. Form
// components emit internal messages (cursor blink, field focus) that must
// reach them.
func (m Model) handleFallthrough(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch {
	case m.state == stateCreating && m.createModal != nil && !m.createModal.submitting:
		return m.updateCreateModal(msg)
	case m.state == stateExecuting && m.executeModal != nil:
		return m, m.executeModal.Update(msg)
	}
	return m, nil
}
