package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/hay-kot/a4s/internal/core/styles"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	headerHeight  = 2 // tab bar + bottom border
	helpBarHeight = 1
)

// View renders the TUI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	w, h := m.width, m.height
	if w == 0 {
		w = defaultWidth
	}
	if h == 0 {
		h = defaultHeight
	}

	var content string
	switch {
	case m.state == stateCreating && m.createModal != nil:
		content = m.createModal.Overlay(w, h)
	case m.state == stateExecuting && m.executeModal != nil:
		content = m.executeModal.Overlay(w, h)
	case m.state == stateConfirming:
		content = m.confirmModal.Overlay(w, h)
	case m.state == stateShowingHelp && m.helpDialog != nil:
		content = m.helpDialog.Overlay(w, h)
	case m.state == stateShowingNotifications && m.notificationModal != nil:
		content = m.notificationModal.Overlay(w, h)
	default:
		content = m.renderMain(w, h)
	}

	if m.toastController.HasToasts() {
		content = m.toastView.Overlay(content, w, h)
	}
	return content
}

// renderMain renders the header, the active view and the help bar.
func (m Model) renderMain(w, h int) string {
	header := m.renderHeader(w)
	helpBar := styles.HelpBarStyle.Render(m.help.View(m.keys))

	bodyHeight := max(h-headerHeight-helpBarHeight, 1)

	var body string
	switch m.activeView {
	case ViewCrews:
		body = m.renderCrewsView(w, bodyHeight)
	default:
		body = m.renderCreateView(w, bodyHeight)
	}
	body = lipgloss.NewStyle().Height(bodyHeight).MaxHeight(bodyHeight).Render(body)

	return lipgloss.JoinVertical(lipgloss.Left, header, body, helpBar)
}

// renderHeader renders the tab bar with branding on the right.
func (m Model) renderHeader(w int) string {
	renderTab := func(label string, view ViewType) string {
		if m.activeView == view {
			return styles.ViewSelectedStyle.Render(label)
		}
		return styles.ViewNormalStyle.Render(label)
	}

	crewsLabel := "Crews"
	if n := len(m.app.Crews.Crews()); n > 0 {
		crewsLabel += " (" + strconv.Itoa(n) + ")"
	}

	tabs := lipgloss.JoinHorizontal(lipgloss.Left,
		renderTab(styles.IconSparkles+" Create", ViewCreate),
		renderTab(styles.IconLayers+" "+crewsLabel, ViewCrews),
	)

	brand := styles.LogoStyle.Render(styles.IconCrew + " a4s")
	if v := m.opts.Build.Version; v != "" {
		brand += styles.TextMutedStyle.Render(" " + v)
	}

	gap := max(w-lipgloss.Width(tabs)-lipgloss.Width(brand)-2, 1)
	return styles.HeaderStyle.Width(w).Render(tabs + strings.Repeat(" ", gap) + brand)
}

// truncate shortens plain text to width cells with an ellipsis.
func truncate(s string, width int) string {
	return ansi.Truncate(s, max(width, 1), "…")
}

// truncateANSI shortens styled text to width cells.
func truncateANSI(s string, width int) string {
	return ansi.Truncate(s, max(width, 1), "")
}
