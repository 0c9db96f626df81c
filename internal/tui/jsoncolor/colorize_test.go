package jsoncolor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hay-kot/a4s/pkg/tuitest"
)

func TestColorize_PrettyPrints(t *testing.T) {
	input := []byte(`{"repo":"a4s","depth":3,"dry_run":true,"labels":["a","b"],"owner":null}`)

	got := tuitest.StripANSI(Colorize(input))

	want := `{
  "repo": "a4s",
  "depth": 3,
  "dry_run": true,
  "labels": [
    "a",
    "b"
  ],
  "owner": null
}`
	assert.Equal(t, want, got)
}

func TestColorize_InvalidJSON(t *testing.T) {
	assert.Equal(t, "{bad", Colorize([]byte(`{bad`)))
}

func TestColorize_EscapedStrings(t *testing.T) {
	got := tuitest.StripANSI(Colorize([]byte(`{"msg":"hello \"world\""}`)))
	assert.Contains(t, got, `"hello \"world\""`)
}

func TestColorize_Numbers(t *testing.T) {
	got := tuitest.StripANSI(Colorize([]byte(`{"int":42,"float":3.14,"neg":-1,"exp":1e10}`)))
	for _, n := range []string{"42", "3.14", "-1", "1e10"} {
		assert.Contains(t, got, n)
	}
}

func TestColorizeLines_Truncates(t *testing.T) {
	input := []byte(`{"a":1,"b":2,"c":3,"d":4}`)

	got := tuitest.StripANSI(ColorizeLines(input, 3))

	lines := strings.Split(got, "\n")
	assert.Len(t, lines, 4)
	assert.Equal(t, "… 3 more lines", lines[3])

	assert.Equal(t, tuitest.StripANSI(Colorize(input)), tuitest.StripANSI(ColorizeLines(input, 0)))
}

func TestFindStringEnd(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{"simple", `"hello"`, 6},
		{"escaped quote", `"he\"llo"`, 8},
		{"escaped backslash", `"he\\"`, 5},
		{"empty string", `""`, 1},
		{"unterminated", `"abc`, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, findStringEnd(tt.input, 0))
		})
	}
}
