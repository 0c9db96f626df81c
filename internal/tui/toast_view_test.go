package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/a4s/internal/core/notify"
	"github.com/hay-kot/a4s/internal/core/styles"
	"github.com/hay-kot/a4s/pkg/tuitest"
)

func TestToastView_View_empty(t *testing.T) {
	v := NewToastView(NewToastController(time.Second))
	assert.Empty(t, v.View())
}

func TestToastView_View_renders_each_level(t *testing.T) {
	tests := []struct {
		level notify.Level
		icon  string
	}{
		{notify.LevelError, styles.IconNotifyError},
		{notify.LevelWarning, styles.IconNotifyWarning},
		{notify.LevelInfo, styles.IconNotifyInfo},
	}

	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			c := NewToastController(time.Second)
			c.Push(notify.Notification{Level: tt.level, Title: "Title", Message: "test msg"})

			out := tuitest.StripANSI(NewToastView(c).View())
			assert.Contains(t, out, tt.icon+" Title")
			assert.Contains(t, out, "test msg")
		})
	}
}

func TestToastView_Overlay_positions_lower_right(t *testing.T) {
	c := NewToastController(time.Second)
	c.Push(notify.Notification{Level: notify.LevelInfo, Message: "positioned"})

	width, height := 120, 40
	rows := make([]string, height)
	for i := range rows {
		rows[i] = strings.Repeat(".", width)
	}

	out := tuitest.StripANSI(NewToastView(c).Overlay(strings.Join(rows, "\n"), width, height))
	lines := strings.Split(out, "\n")
	require.Len(t, lines, height)

	toastLine := -1
	for i, line := range lines {
		if strings.Contains(line, "positioned") {
			toastLine = i
			break
		}
	}
	require.NotEqual(t, -1, toastLine)
	assert.Greater(t, toastLine, height/2)
	assert.True(t, strings.HasPrefix(lines[toastLine], "......"), "background kept left of the toast")
}
