package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hay-kot/a4s/internal/core/crew"
	"github.com/hay-kot/a4s/internal/core/styles"
)

const (
	taskGridMinCardWidth = 34
	taskGridGap          = 1
)

// renderCreateView renders the task picker grid and the selection summary.
func (m Model) renderCreateView(width, height int) string {
	heading := lipgloss.JoinVertical(
		lipgloss.Left,
		styles.TextForegroundBoldStyle.Render("Build Your ")+styles.TextPrimaryBoldStyle.Render("Crew"),
		styles.TextMutedStyle.Render("Select the tasks you need and combine them into a single automated crew."),
	)

	grid := m.renderTaskGrid(width)
	summary := m.renderSelectionSummary(width)

	body := lipgloss.JoinVertical(lipgloss.Left, heading, "", grid, "", summary)
	return lipgloss.NewStyle().Padding(0, 1).MaxHeight(height).Render(body)
}

func taskGridColumns(width int) int {
	cols := max(width/(taskGridMinCardWidth+taskGridGap), 1)
	return min(cols, 4)
}

func (m Model) renderTaskGrid(width int) string {
	tasks := crew.Catalog()
	cols := taskGridColumns(width - 2)
	cardWidth := (width-2)/cols - taskGridGap

	var rows []string
	for start := 0; start < len(tasks); start += cols {
		end := min(start+cols, len(tasks))
		cards := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			card := m.renderTaskCard(tasks[i], i == m.taskCursor, cardWidth)
			cards = append(cards, lipgloss.NewStyle().MarginRight(taskGridGap).Render(card))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderTaskCard(t crew.Task, focused bool, width int) string {
	selected := m.app.Selection.Has(t.ID)

	marker := styles.TextMutedStyle.Render(styles.IconUnchecked)
	title := styles.TaskTitleStyle.Render(t.Name)
	if selected {
		marker = styles.TextPrimaryStyle.Render(styles.IconChecked)
		title = styles.TaskTitleActiveStyle.Render(t.Name)
	}

	inner := max(width-4, 10)
	header := t.Icon + " " + title
	gap := max(inner-lipgloss.Width(header)-lipgloss.Width(marker), 1)

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		header+strings.Repeat(" ", gap)+marker,
		styles.TextMutedStyle.Width(inner).Render(t.Description),
	)

	style := styles.TaskCardStyle
	switch {
	case focused:
		style = styles.TaskCardCursorStyle
	case selected:
		style = styles.TaskCardSelectedStyle
	}
	return style.Width(width - 2).Render(content)
}

// selectionSummary is the plain text summary of the current selection.
func selectionSummary(n int) string {
	if n == 0 {
		return "Select tasks to build your crew"
	}
	if n == 1 {
		return "1 task selected"
	}
	return fmt.Sprintf("%d tasks selected", n)
}

func (m Model) renderSelectionSummary(width int) string {
	n := m.app.Selection.Len()

	text := styles.TextMutedStyle.Render(selectionSummary(n))
	button := styles.ButtonDisabledStyle.Render("Create Crew →")
	if n > 0 {
		text = styles.TextPrimaryBoldStyle.Render(selectionSummary(n))
		button = styles.ButtonStyle.Render("[enter] Create Crew →")
	}

	inner := max(width-8, 20)
	gap := max(inner-lipgloss.Width(text)-lipgloss.Width(button), 1)
	return styles.SummaryStyle.Width(width - 4).Render(text + strings.Repeat(" ", gap) + button)
}
