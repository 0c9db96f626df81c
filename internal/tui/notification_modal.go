package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"

	"github.com/hay-kot/a4s/internal/core/notify"
	"github.com/hay-kot/a4s/internal/core/styles"
	"github.com/hay-kot/a4s/internal/tui/components"
)

const (
	notifyModalWidthPct  = 65
	notifyModalMinWidth  = 60
	notifyModalMaxHeight = 24
	notifyModalMargin    = 4
	notifyModalChrome    = 6 // title + divider + help + spacing
)

// notificationHistory is the part of the notification bus the modal reads.
type notificationHistory interface {
	History() ([]notify.Notification, error)
	Clear() error
}

// NotificationModal displays a scrollable history of notifications.
type NotificationModal struct {
	history  notificationHistory
	viewport viewport.Model
	width    int
	height   int
}

// NewNotificationModal creates a modal showing notification history.
func NewNotificationModal(history notificationHistory, width, height int) *NotificationModal {
	modalWidth := calcNotificationModalWidth(width)
	modalHeight := min(height-notifyModalMargin, notifyModalMaxHeight)

	m := &NotificationModal{
		history:  history,
		viewport: viewport.New(modalWidth-4, max(modalHeight-notifyModalChrome, 1)),
		width:    width,
		height:   height,
	}

	m.refreshContent()
	return m
}

func (m *NotificationModal) refreshContent() {
	items, err := m.history.History()
	if err != nil {
		log.Error().Err(err).Msg("failed to load notification history")
		m.viewport.SetContent(styles.TextErrorStyle.Render(fmt.Sprintf("failed to load notifications: %v", err)))
		return
	}

	if len(items) == 0 {
		m.viewport.SetContent(styles.TextMutedStyle.Render("No notifications"))
		return
	}

	lines := make([]string, 0, len(items))
	for _, n := range items {
		lines = append(lines, formatNotification(n))
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))
}

func formatNotification(n notify.Notification) string {
	ts := styles.TextMutedStyle.Render(n.CreatedAt.Format("15:04:05"))
	ago := styles.TextMutedStyle.Render("(" + humanize.Time(n.CreatedAt) + ")")

	var icon string
	var msgStyle lipgloss.Style
	switch n.Level {
	case notify.LevelError:
		icon = styles.IconNotifyError
		msgStyle = styles.TextErrorStyle
	case notify.LevelWarning:
		icon = styles.IconNotifyWarning
		msgStyle = styles.TextWarningStyle
	default:
		icon = styles.IconNotifyInfo
		msgStyle = styles.TextPrimaryStyle
	}

	return fmt.Sprintf("%s %s %s %s", ts, icon, msgStyle.Render(n.Text()), ago)
}

// ScrollUp scrolls the viewport up.
func (m *NotificationModal) ScrollUp() {
	m.viewport.LineUp(1)
}

// ScrollDown scrolls the viewport down.
func (m *NotificationModal) ScrollDown() {
	m.viewport.LineDown(1)
}

// Clear deletes all notifications and refreshes the view.
func (m *NotificationModal) Clear() error {
	if err := m.history.Clear(); err != nil {
		return err
	}
	m.refreshContent()
	return nil
}

// Overlay renders the notification modal centered in a width x height area.
func (m *NotificationModal) Overlay(width, height int) string {
	modalWidth := calcNotificationModalWidth(width)

	scrollInfo := ""
	if m.viewport.TotalLineCount() > m.viewport.VisibleLineCount() {
		scrollInfo = styles.TextMutedStyle.Render(
			fmt.Sprintf(" (%.0f%%)", m.viewport.ScrollPercent()*100),
		)
	}

	divider := styles.TextSurfaceStyle.Render(strings.Repeat("─", max(modalWidth-6, 1)))
	content := lipgloss.JoinVertical(
		lipgloss.Left,
		styles.ModalTitleStyle.Render("Notifications"+scrollInfo),
		divider,
		m.viewport.View(),
		styles.ModalHelpStyle.Render("[j/k] scroll  [D] clear all  [esc] close"),
	)

	return components.Center(styles.ModalStyle.Width(modalWidth).Render(content), width, height)
}

func calcNotificationModalWidth(termWidth int) int {
	available := max(termWidth-notifyModalMargin, 1)
	target := termWidth * notifyModalWidthPct / 100
	return min(max(target, notifyModalMinWidth), available)
}
