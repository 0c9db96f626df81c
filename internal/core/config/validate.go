package config

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"slices"
	"strings"

	"github.com/hay-kot/criterio"

	"github.com/hay-kot/a4s/internal/core/styles"
)

// Validate checks the structural rules of the configuration. It does no I/O.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("api.base_url", c.API.BaseURL, validateBaseURL),
		criterio.Run("api.timeout", c.API.Timeout.Seconds(), positive[float64]),
		criterio.Run("api.refresh_concurrency", c.API.RefreshConcurrency, positive[int]),
		c.validateHeaders(),
		criterio.Run("tui.theme", c.TUI.Theme, knownTheme),
		criterio.Run("tui.toast_ttl", c.TUI.ToastTTL.Seconds(), positive[float64]),
		criterio.Run("history.max_payloads", c.History.MaxPayloads, positive[int]),
		criterio.Run("data_dir", c.DataDir, notBlank),
	)
}

// ValidateDeep performs comprehensive validation of the configuration including
// file accessibility. The configPath argument specifies the config file location
// to validate (empty string skips config file check).
// This calls Validate() first for basic structural validation, then adds I/O checks.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("data_dir", c.DataDir, isDirectoryOrNotExist),
	)
}

func (c *Config) validateHeaders() error {
	var errs criterio.FieldErrorsBuilder
	for name := range c.API.Headers {
		field := fmt.Sprintf("api.headers[%q]", name)
		if strings.TrimSpace(name) == "" {
			errs = errs.Append(field, fmt.Errorf("header name cannot be empty"))
			continue
		}
		if http.CanonicalHeaderKey(name) == "Content-Type" {
			errs = errs.Append(field, fmt.Errorf("content type is set per request"))
		}
	}
	return errs.ToError()
}

func validateBaseURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("cannot be empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host")
	}
	return nil
}

func knownTheme(name string) error {
	names := styles.ThemeNames()
	if !slices.Contains(names, name) {
		return fmt.Errorf("unknown theme %q (available: %s)", name, strings.Join(names, ", "))
	}
	return nil
}

func positive[T int | float64](v T) error {
	if v <= 0 {
		return fmt.Errorf("must be greater than zero")
	}
	return nil
}

func notBlank(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("cannot be empty")
	}
	return nil
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

// isDirectoryOrNotExist validates that a path is a directory or doesn't exist.
func isDirectoryOrNotExist(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // will be created
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("exists but is not a directory")
	}
	return nil
}
