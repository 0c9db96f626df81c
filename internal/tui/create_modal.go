package tui

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/hay-kot/a4s/internal/core/crew"
	"github.com/hay-kot/a4s/internal/core/styles"
	"github.com/hay-kot/a4s/internal/core/validate"
	"github.com/hay-kot/a4s/internal/tui/components"
)

const (
	createModalMaxWidth = 64
	createModalMargin   = 6
)

// createModal collects the name and description of a new crew. The form
// values live on the heap so they survive Model copies and form rebuilds.
type createModal struct {
	form        *huh.Form
	name        string
	description string
	tasks       []crew.Task
	width       int
	submitting  bool
	err         string
}

func newCreateModal(tasks []crew.Task, termWidth int) *createModal {
	c := &createModal{tasks: tasks}
	c.SetWidth(termWidth)
	c.buildForm()
	return c
}

func (c *createModal) buildForm() {
	c.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Crew Name").
				Placeholder("e.g. nightly-triage").
				Value(&c.name).
				Validate(validate.CrewName),
			huh.NewText().
				Title("Description").
				Placeholder("What does this crew do?").
				Lines(3).
				Value(&c.description),
		),
	).
		WithTheme(styles.FormTheme()).
		WithShowHelp(false).
		WithWidth(c.width - 4)
}

// SetWidth sizes the modal for a terminal of the given width.
func (c *createModal) SetWidth(termWidth int) {
	c.width = max(min(termWidth-createModalMargin, createModalMaxWidth), 30)
	if c.form != nil {
		c.form = c.form.WithWidth(c.width - 4)
	}
}

// Init returns the form's initial command.
func (c *createModal) Init() tea.Cmd {
	return c.form.Init()
}

// Update forwards msg to the form.
func (c *createModal) Update(msg tea.Msg) tea.Cmd {
	model, cmd := c.form.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		c.form = f
	}
	return cmd
}

// Reset rebuilds a completed form so the user can submit again with the
// values already entered.
func (c *createModal) Reset() tea.Cmd {
	c.buildForm()
	return c.form.Init()
}

// Submitted reports whether the user completed the form.
func (c *createModal) Submitted() bool {
	return c.form.State == huh.StateCompleted
}

// Cancelled reports whether the user aborted the form.
func (c *createModal) Cancelled() bool {
	return c.form.State == huh.StateAborted
}

func (c *createModal) renderTasks() string {
	chips := make([]string, 0, len(c.tasks))
	for _, t := range c.tasks {
		chips = append(chips, styles.ChipStyle.Render(t.Icon+" "+t.Name))
	}
	return lipgloss.JoinVertical(
		lipgloss.Left,
		styles.TextMutedStyle.Render("Selected Tasks ("+strconv.Itoa(len(c.tasks))+")"),
		lipgloss.NewStyle().Width(c.width-4).Render(strings.Join(chips, "")),
	)
}

// Overlay renders the modal centered in a width x height area.
func (c *createModal) Overlay(width, height int) string {
	parts := []string{
		styles.ModalTitleStyle.Render("Create New Crew"),
		c.renderTasks(),
		"",
		c.form.View(),
	}

	if c.err != "" {
		parts = append(parts, styles.FormErrorStyle.Render(c.err))
	}

	help := "[tab] next field  [enter] create  [esc] cancel"
	if c.submitting {
		help = "Creating crew..."
	}
	parts = append(parts, styles.ModalHelpStyle.Render(help))

	content := lipgloss.JoinVertical(lipgloss.Left, parts...)
	return components.Center(styles.ModalStyle.Width(c.width).Render(content), width, height)
}
