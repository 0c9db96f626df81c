package components

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/hay-kot/a4s/pkg/tuitest"
)

func TestConfirmModal(t *testing.T) {
	tests := []struct {
		name          string
		msg           tea.Msg
		wantConfirmed bool
		wantCancelled bool
	}{
		{"y confirms", tuitest.KeyPress('y'), true, false},
		{"enter confirms", tuitest.KeyEnter(), true, false},
		{"n cancels", tuitest.KeyPress('n'), false, true},
		{"esc cancels", tuitest.KeyEsc(), false, true},
		{"other key ignored", tuitest.KeyPress('x'), false, false},
		{"non key ignored", tuitest.WindowSize(10, 10), false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewConfirmModal("Delete Crew", "Delete nightly?")
			m, _ = m.Update(tt.msg)
			assert.Equal(t, tt.wantConfirmed, m.Confirmed())
			assert.Equal(t, tt.wantCancelled, m.Cancelled())
		})
	}
}

func TestConfirmModal_View(t *testing.T) {
	view := tuitest.StripANSI(NewConfirmModal("Delete Crew", "Delete nightly?").View())

	assert.Contains(t, view, "Delete Crew")
	assert.Contains(t, view, "Delete nightly?")
	assert.Contains(t, view, "Continue? (y/n)")
}

func TestHelpDialog_SkipsDisabledBindings(t *testing.T) {
	enabled := key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "execute"))
	disabled := key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete"))
	disabled.SetEnabled(false)

	view := tuitest.StripANSI(NewHelpDialog("Keys", []HelpDialogSection{
		{Title: "Crews", Bindings: []key.Binding{enabled, disabled}},
	}).View())

	assert.Contains(t, view, "Crews")
	assert.Contains(t, view, "execute")
	assert.NotContains(t, view, "delete")
}

func TestCenter(t *testing.T) {
	out := Center("hi", 6, 3)

	assert.Equal(t, "\n  hi", tuitest.StripANSI(out))
	assert.Equal(t, "hi", Center("hi", 0, 0))
}

func TestOverlayBottomRight(t *testing.T) {
	bg := "aaaaaaaaaa\nbbbbbbbbbb\ncccccccccc"

	out := OverlayBottomRight(bg, "XX\nYY", 10, 3)

	assert.Equal(t, "aaaaaaaaaa\nbbbbbbbXX\ncccccccYY", tuitest.StripANSI(out))
	assert.Equal(t, bg, OverlayBottomRight(bg, "", 10, 3))
}

func TestOverlayBottomRight_PadsShortBackground(t *testing.T) {
	out := OverlayBottomRight("top", "T", 5, 3)

	assert.Equal(t, "top\n\n   T", tuitest.StripANSI(out))
}
