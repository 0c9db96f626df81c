// Package jsoncolor renders JSON documents with theme colors.
package jsoncolor

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hay-kot/a4s/internal/core/styles"
)

// Colorize pretty-prints JSON bytes with theme-aware syntax coloring.
// Invalid JSON is returned unchanged.
func Colorize(data []byte) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return string(data)
	}
	return paint(buf.String())
}

// ColorizeLines is Colorize limited to maxLines lines. A trailing muted
// marker reports how many lines were cut. maxLines <= 0 means no limit.
func ColorizeLines(data []byte, maxLines int) string {
	out := Colorize(data)
	if maxLines <= 0 {
		return out
	}
	lines := strings.Split(out, "\n")
	if len(lines) <= maxLines {
		return out
	}
	hidden := len(lines) - maxLines
	return strings.Join(lines[:maxLines], "\n") + "\n" +
		styles.TextMutedStyle.Render("… "+plural(hidden, "more line"))
}

func paint(raw string) string {
	var out strings.Builder

	for i := 0; i < len(raw); {
		ch := raw[i]
		switch {
		case ch == '"':
			end := findStringEnd(raw, i)
			str := raw[i : end+1]
			style := styles.TextSuccessStyle
			if isKey(raw[end+1:]) {
				style = styles.TextPrimaryStyle
			}
			out.WriteString(style.Render(str))
			i = end + 1

		case ch == ':' || ch == ',':
			out.WriteString(styles.TextMutedStyle.Render(string(ch)))
			i++

		case ch == '-' || (ch >= '0' && ch <= '9'):
			end := i + 1
			for end < len(raw) && strings.IndexByte("0123456789.eE+-", raw[end]) >= 0 {
				end++
			}
			out.WriteString(styles.TextWarningStyle.Render(raw[i:end]))
			i = end

		case ch == '{' || ch == '}' || ch == '[' || ch == ']':
			out.WriteString(styles.TextForegroundStyle.Render(string(ch)))
			i++

		default:
			if lit, style, ok := literal(raw[i:]); ok {
				out.WriteString(style.Render(lit))
				i += len(lit)
				continue
			}
			out.WriteByte(ch)
			i++
		}
	}

	return out.String()
}

// literal matches true, false or null at the start of s.
func literal(s string) (string, lipgloss.Style, bool) {
	switch {
	case strings.HasPrefix(s, "true"):
		return "true", styles.TextSecondaryStyle, true
	case strings.HasPrefix(s, "false"):
		return "false", styles.TextSecondaryStyle, true
	case strings.HasPrefix(s, "null"):
		return "null", styles.TextErrorStyle, true
	}
	return "", lipgloss.Style{}, false
}

// isKey reports whether the text after a string starts with a colon.
func isKey(rest string) bool {
	rest = strings.TrimLeft(rest, " \t")
	return rest != "" && rest[0] == ':'
}

// findStringEnd returns the index of the closing quote for a JSON string starting at pos.
func findStringEnd(s string, pos int) int {
	for i := pos + 1; i < len(s); i++ {
		if s[i] == '\\' {
			i++
			continue
		}
		if s[i] == '"' {
			return i
		}
	}
	return len(s) - 1
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return strconv.Itoa(n) + " " + word + "s"
}
