package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Center places modal in the middle of a width x height canvas. The
// background is replaced rather than composited; lipgloss v1 has no layers.
func Center(modal string, width, height int) string {
	if width <= 0 || height <= 0 {
		return modal
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, modal)
}

// OverlayBottomRight draws fg over the lower right corner of bg, keeping the
// left part of each covered background line. bg is padded to height lines.
func OverlayBottomRight(bg, fg string, width, height int) string {
	if fg == "" {
		return bg
	}

	bgLines := strings.Split(bg, "\n")
	for len(bgLines) < height {
		bgLines = append(bgLines, "")
	}

	fgLines := strings.Split(fg, "\n")
	fgWidth := lipgloss.Width(fg)
	x := max(width-fgWidth-1, 0)
	top := max(len(bgLines)-len(fgLines), 0)

	for i, line := range fgLines {
		row := top + i
		if row >= len(bgLines) {
			break
		}
		left := ansi.Truncate(bgLines[row], x, "")
		if w := ansi.StringWidth(left); w < x {
			left += strings.Repeat(" ", x-w)
		}
		bgLines[row] = left + line
	}

	return strings.Join(bgLines, "\n")
}
