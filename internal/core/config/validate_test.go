package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validConfig returns a Config with all required fields set for testing.
func validConfig(t *testing.T) *Config {
	t.Helper()
	cfg := DefaultConfig()
	cfg.DataDir = t.TempDir()
	return &cfg
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := validConfig(t)
	assert.NoError(t, cfg.Validate())
	assert.NoError(t, cfg.ValidateDeep(""))
}

func TestValidate_BaseURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr string
	}{
		{name: "empty", url: "", wantErr: "cannot be empty"},
		{name: "bad scheme", url: "ftp://host", wantErr: "scheme must be http or https"},
		{name: "no host", url: "http://", wantErr: "missing host"},
		{name: "https ok", url: "https://crews.internal:8443/api"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			cfg.API.BaseURL = tt.url

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}

			var fieldErrs criterio.FieldErrors
			require.ErrorAs(t, err, &fieldErrs)
			require.Len(t, fieldErrs, 1)
			assert.Equal(t, "api.base_url", fieldErrs[0].Field)
			assert.Contains(t, fieldErrs[0].Err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_UnknownTheme(t *testing.T) {
	cfg := validConfig(t)
	cfg.TUI.Theme = "neon-dreams"

	err := cfg.Validate()

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	require.Len(t, fieldErrs, 1)
	assert.Equal(t, "tui.theme", fieldErrs[0].Field)
	assert.Contains(t, fieldErrs[0].Err.Error(), "tokyo-night")
}

func TestValidate_NonPositiveNumbers(t *testing.T) {
	cfg := validConfig(t)
	cfg.API.RefreshConcurrency = -1
	cfg.History.MaxPayloads = 0

	err := cfg.Validate()

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Len(t, fieldErrs, 2)
}

func TestValidate_ContentTypeHeaderRejected(t *testing.T) {
	cfg := validConfig(t)
	cfg.API.Headers = map[string]string{"content-type": "text/plain"}

	err := cfg.Validate()

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	require.Len(t, fieldErrs, 1)
	assert.Contains(t, fieldErrs[0].Field, "api.headers")
}

func TestValidateDeep_ConfigPathIsDirectory(t *testing.T) {
	cfg := validConfig(t)

	err := cfg.ValidateDeep(t.TempDir())

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	require.Len(t, fieldErrs, 1)
	assert.Equal(t, "config_file", fieldErrs[0].Field)
}

func TestValidateDeep_DataDirIsFile(t *testing.T) {
	cfg := validConfig(t)
	file := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	cfg.DataDir = file

	err := cfg.ValidateDeep("")

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	require.Len(t, fieldErrs, 1)
	assert.Equal(t, "data_dir", fieldErrs[0].Field)
}
