package tui

import (
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hay-kot/a4s/internal/core/crew"
	"github.com/hay-kot/a4s/internal/core/styles"
	"github.com/hay-kot/a4s/internal/tui/components"
	"github.com/hay-kot/a4s/internal/tui/jsoncolor"
)

const (
	keySubmitPayload     = "ctrl+s"
	executeModalMaxWidth = 72
	executeModalMargin   = 6
	executeInputHeight   = 8
)

// executeModal edits the optional JSON payload sent with an execution.
type executeModal struct {
	crewID     string
	crewName   string
	input      textarea.Model
	width      int
	submitting bool
	err        string
}

func newExecuteModal(c crew.Crew, prefill string, termWidth int) *executeModal {
	ta := textarea.New()
	ta.Placeholder = `{"repository": "org/service"}`
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetHeight(executeInputHeight)
	ta.SetValue(prefill)

	e := &executeModal{
		crewID:   c.ID,
		crewName: c.Name,
		input:    ta,
	}
	e.SetWidth(termWidth)
	return e
}

// SetWidth sizes the modal for a terminal of the given width.
func (e *executeModal) SetWidth(termWidth int) {
	e.width = max(min(termWidth-executeModalMargin, executeModalMaxWidth), 30)
	e.input.SetWidth(e.width - 6)
}

// Focus focuses the payload input.
func (e *executeModal) Focus() tea.Cmd {
	return e.input.Focus()
}

// Update forwards msg to the payload input.
func (e *executeModal) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	e.input, cmd = e.input.Update(msg)
	return cmd
}

// Value returns the raw payload text.
func (e *executeModal) Value() string {
	return e.input.Value()
}

// Validate checks the payload and records an inline error message. Blank
// input is valid and means no request body.
func (e *executeModal) Validate() bool {
	if _, err := crew.ParsePayload(e.input.Value()); err != nil {
		e.err = err.Error()
		return false
	}
	e.err = ""
	return true
}

// Overlay renders the modal centered in a width x height area.
func (e *executeModal) Overlay(width, height int) string {
	parts := []string{
		styles.ModalTitleStyle.Render("Execute " + e.crewName),
		styles.TextMutedStyle.Render("Optional JSON payload. Leave empty to send no body."),
		"",
		e.input.View(),
	}

	switch {
	case e.err != "":
		parts = append(parts, styles.FormErrorStyle.Render(styles.IconFailed+" "+e.err))
	case e.input.Value() != "":
		if payload, err := crew.ParsePayload(e.input.Value()); err == nil && payload != nil {
			parts = append(parts, styles.TextSuccessStyle.Render(styles.IconCompleted+" valid JSON"))
			parts = append(parts, jsoncolor.ColorizeLines(payload, 3))
		}
	}

	help := "[ctrl+s] execute  [esc] cancel"
	if e.submitting {
		help = "Starting execution..."
	}
	parts = append(parts, styles.ModalHelpStyle.Render(help))

	content := lipgloss.JoinVertical(lipgloss.Left, parts...)
	return components.Center(styles.ModalStyle.Width(e.width).Render(content), width, height)
}
