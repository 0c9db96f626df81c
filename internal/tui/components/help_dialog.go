// Package components provides reusable TUI components.
package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/hay-kot/a4s/internal/core/styles"
)

// HelpDialogSection groups related bindings under a title.
type HelpDialogSection struct {
	Title    string
	Bindings []key.Binding
}

// HelpDialog displays all available keyboard shortcuts.
type HelpDialog struct {
	title    string
	sections []HelpDialogSection
}

// NewHelpDialog creates a new help dialog with the given sections.
func NewHelpDialog(title string, sections []HelpDialogSection) *HelpDialog {
	return &HelpDialog{
		title:    title,
		sections: sections,
	}
}

// View renders the help dialog.
func (h *HelpDialog) View() string {
	var lines []string
	separator := styles.TextMutedStyle.Render(strings.Repeat("─", 25))

	for i, section := range h.sections {
		if section.Title != "" {
			if i > 0 {
				lines = append(lines, "")
			}
			lines = append(lines, styles.HelpDialogSectionStyle.Render(section.Title), separator)
		}

		for _, b := range section.Bindings {
			if !b.Enabled() {
				continue
			}
			help := b.Help()
			lines = append(lines, formatKeyDesc(help.Key, help.Desc))
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.TextForegroundBoldStyle.Render(h.title),
		"",
		strings.Join(lines, "\n"),
		styles.HelpDialogHelpStyle.Render("esc/? close"),
	)

	return styles.HelpDialogModalStyle.Render(content)
}

// Overlay renders the help dialog centered in a width x height area.
func (h *HelpDialog) Overlay(width, height int) string {
	return Center(h.View(), width, height)
}

// formatKeyDesc formats a key-description pair with consistent alignment.
func formatKeyDesc(k, desc string) string {
	const keyWidth = 12

	padded := k + strings.Repeat(" ", max(keyWidth-lipgloss.Width(k), 1))
	return styles.TextPrimaryBoldStyle.Render(padded) + styles.TextForegroundStyle.Render(desc)
}
