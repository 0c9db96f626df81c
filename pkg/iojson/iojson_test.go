package iojson

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteLine(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteLine(&buf, map[string]int{"a": 1}))
	require.NoError(t, WriteLine(&buf, []string{"x"}))

	assert.Equal(t, "{\"a\":1}\n[\"x\"]\n", buf.String())
}

func TestWriteWith_MarshalFailure(t *testing.T) {
	var out, errOut bytes.Buffer

	require.NoError(t, WriteWith(&out, &errOut, math.Inf(1)))

	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "json_error")
}

func TestMarshalError(t *testing.T) {
	got := MarshalError(`bad "input"`, map[string]any{"crew_id": "c1"})
	assert.JSONEq(t, `{"message":"bad \"input\"","data":{"crew_id":"c1"}}`, got)
}

func TestFileReader_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "payload.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"repo":"a4s"}`), 0o644))

	fr := &FileReader{path: path}
	assert.True(t, fr.IsSet())

	data, err := fr.ReadRaw()
	require.NoError(t, err)
	assert.Equal(t, `{"repo":"a4s"}`, string(data))
}

func TestFileReader_Stdin(t *testing.T) {
	fr := &FileReader{path: "-", stdin: strings.NewReader("[1,2]")}

	data, err := fr.ReadRaw()
	require.NoError(t, err)
	assert.Equal(t, "[1,2]", string(data))
}

func TestFileReader_MissingFile(t *testing.T) {
	fr := &FileReader{path: filepath.Join(t.TempDir(), "nope.json")}

	_, err := fr.ReadRaw()
	assert.Error(t, err)
}
