package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/hay-kot/a4s/internal/core/crew"
	"github.com/hay-kot/a4s/internal/core/styles"
	"github.com/hay-kot/a4s/internal/tui/jsoncolor"
)

const (
	crewCardHeight     = 6 // border + name + description + chips + footer
	detailMinWidth     = 100
	detailJSONMaxLines = 12
	detailMaxExecs     = 8
)

// renderCrewsView renders the crew cards and, when toggled, the detail pane
// for the crew under the cursor.
func (m Model) renderCrewsView(width, height int) string {
	if !m.app.Crews.Loaded() {
		return styles.EmptyStateStyle.Width(width).Render(m.spinner.View() + " Loading crews...")
	}

	crews := m.app.Crews.Crews()
	if len(crews) == 0 {
		return styles.EmptyStateStyle.Width(width).Render(lipgloss.JoinVertical(
			lipgloss.Center,
			styles.TextForegroundBoldStyle.Render("No crews yet"),
			"Create your first crew by selecting tasks and giving it a name.",
			"",
			styles.ButtonStyle.Render("[n] Create Your First Crew"),
		))
	}

	listWidth := width
	showDetail := m.showDetail && width >= detailMinWidth
	if showDetail {
		listWidth = width / 2
	}

	list := m.renderCrewList(crews, listWidth, height)
	if !showDetail {
		return list
	}

	c, _ := m.selectedCrew()
	detail := m.renderCrewDetail(c, width-listWidth, height)
	return lipgloss.JoinHorizontal(lipgloss.Top, list, detail)
}

func (m Model) renderCrewList(crews []crew.Crew, width, height int) string {
	visible := max(height/crewCardHeight, 1)
	cursor := min(m.crewCursor, len(crews)-1)
	start := max(cursor-visible+1, 0)
	end := min(start+visible, len(crews))

	cards := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		cards = append(cards, m.renderCrewCard(crews[i], i == cursor, width))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

// displayStatus prefers what the crew's executions say over the crew's own
// status field.
func (m Model) displayStatus(c crew.Crew) crew.Status {
	if execs, ok := m.app.Crews.Executions(c.ID); ok && crew.AnyRunning(execs) {
		return crew.StatusRunning
	}
	return c.Status
}

func (m Model) renderCrewCard(c crew.Crew, focused bool, width int) string {
	inner := max(width-4, 20)

	badge := styles.RenderStatus(m.displayStatus(c))
	name := styles.CrewNameStyle.Render(truncate(c.Name, inner-lipgloss.Width(badge)-1))
	header := name + strings.Repeat(" ", max(inner-lipgloss.Width(name)-lipgloss.Width(badge), 1)) + badge

	desc := c.Description
	if desc == "" {
		desc = "No description"
	}
	description := styles.TextMutedStyle.Render(truncate(firstLine(desc), inner))

	chips := make([]string, 0, len(c.TaskNames))
	for _, t := range c.Tasks() {
		chips = append(chips, styles.ChipStyle.Render(strings.TrimSpace(t.Icon+" "+t.Name)))
	}
	chipLine := truncateANSI(strings.Join(chips, ""), inner)

	button := m.renderExecuteButton(c)
	footerLeft := styles.TextMutedStyle.Render(truncate(footerLabel(c), inner-lipgloss.Width(button)-1))
	footer := footerLeft + strings.Repeat(" ", max(inner-lipgloss.Width(footerLeft)-lipgloss.Width(button), 1)) + button

	style := styles.CrewCardStyle
	if focused {
		style = styles.CrewCardSelectedStyle
	}
	return style.Width(width - 2).Render(lipgloss.JoinVertical(lipgloss.Left, header, description, chipLine, footer))
}

// renderExecuteButton shows the execute trigger, disabled while the crew is
// running or a sync for it is in flight.
func (m Model) renderExecuteButton(c crew.Crew) string {
	switch {
	case m.app.Crews.Syncing(c.ID):
		return styles.ButtonDisabledStyle.Render(m.spinner.View() + " Syncing")
	case !m.app.Crews.CanExecute(c.ID):
		return styles.ButtonDisabledStyle.Render(styles.IconRunning + " Running")
	default:
		return styles.ButtonStyle.Render("▶ Execute")
	}
}

// footerLabel describes when the crew was created and, once the backend has
// touched it since, when it last ran.
func footerLabel(c crew.Crew) string {
	label := "Created recently"
	created := c.Created()
	if !created.IsZero() {
		label = "Created " + humanize.Time(created)
	}

	if updated := c.Updated(); !updated.IsZero() && updated.After(created) {
		label += " · Last run " + humanize.Time(updated)
	}
	return label
}

func (m Model) renderCrewDetail(c crew.Crew, width, height int) string {
	inner := max(width-4, 20)

	sections := []string{
		styles.CrewNameStyle.Render(c.Name) + " " + styles.TextMutedStyle.Render(c.ID),
	}

	if c.Description != "" {
		sections = append(sections, m.markdown.Render(c.Description, inner))
	}

	sections = append(sections, styles.HelpDialogSectionStyle.Render("Executions"))
	execs, known := m.app.Crews.Executions(c.ID)
	switch {
	case !known:
		sections = append(sections, styles.TextMutedStyle.Render("Press [e] to load executions"))
	case len(execs) == 0:
		sections = append(sections, styles.TextMutedStyle.Render("No executions yet"))
	default:
		for i, e := range execs {
			if i == detailMaxExecs {
				sections = append(sections, styles.TextMutedStyle.Render(
					humanize.Comma(int64(len(execs)-detailMaxExecs))+" more"))
				break
			}
			sections = append(sections, renderExecution(e))
		}
	}

	if len(c.Raw) > 0 {
		sections = append(sections,
			styles.HelpDialogSectionStyle.Render("Last Response"),
			jsoncolor.ColorizeLines(c.Raw, detailJSONMaxLines),
		)
	}

	return styles.CrewCardStyle.
		Width(width - 2).
		MaxHeight(height).
		Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func renderExecution(e crew.Execution) string {
	when := ""
	if t := e.Created(); !t.IsZero() {
		when = " " + styles.TextMutedStyle.Render(humanize.Time(t))
	}
	return styles.RenderStatus(e.Status) + " " + styles.TextForegroundStyle.Render(e.ID) + when
}

// markdownRenderer caches a glamour renderer per wrap width.
type markdownRenderer struct {
	width    int
	renderer *glamour.TermRenderer
}

// Render renders md as terminal markdown wrapped to width. Rendering errors
// fall back to the plain text.
func (r *markdownRenderer) Render(md string, width int) string {
	if r.renderer == nil || r.width != width {
		tr, err := glamour.NewTermRenderer(
			glamour.WithStyles(styles.GlamourStyle()),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return md
		}
		r.renderer = tr
		r.width = width
	}

	out, err := r.renderer.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n")
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
