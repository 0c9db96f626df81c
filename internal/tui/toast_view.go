package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hay-kot/a4s/internal/core/notify"
	"github.com/hay-kot/a4s/internal/core/styles"
	"github.com/hay-kot/a4s/internal/tui/components"
)

type toastTickMsg time.Time

func scheduleToastTick() tea.Cmd {
	return tea.Tick(toastTickInterval, func(t time.Time) tea.Msg {
		return toastTickMsg(t)
	})
}

// ToastView renders toast notifications in the lower right corner.
type ToastView struct {
	controller *ToastController
}

func NewToastView(controller *ToastController) *ToastView {
	return &ToastView{controller: controller}
}

// View renders the toast stack, oldest at top and newest at bottom.
func (v *ToastView) View() string {
	toasts := v.controller.Toasts()
	if len(toasts) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(toasts))
	for _, t := range toasts {
		rendered = append(rendered, renderToast(t.notification))
	}
	return strings.Join(rendered, "\n")
}

func renderToast(n notify.Notification) string {
	var icon string
	var style lipgloss.Style

	switch n.Level {
	case notify.LevelError:
		icon = styles.IconNotifyError
		style = styles.ToastErrorStyle
	case notify.LevelWarning:
		icon = styles.IconNotifyWarning
		style = styles.ToastWarningStyle
	default:
		icon = styles.IconNotifyInfo
		style = styles.ToastInfoStyle
	}

	content := icon + " " + n.Message
	if n.Title != "" {
		content = icon + " " + styles.TextForegroundBoldStyle.Render(n.Title)
		if n.Message != "" {
			content += "\n" + n.Message
		}
	}
	return style.Width(toastWidth).Render(content)
}

// Overlay draws the toast stack over the lower right corner of background.
func (v *ToastView) Overlay(background string, width, height int) string {
	return components.OverlayBottomRight(background, v.View(), width, height)
}
