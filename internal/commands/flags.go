package commands

import (
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/a4s/internal/core/config"
)

// Flags holds the global flag values shared by every command.
type Flags struct {
	LogLevel     string
	LogFile      string
	ConfigPath   string
	DataDir      string
	APIURL       string
	ProfilerPort int

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config
}

// ValidatesConfig reports whether args invoke "config validate", which
// reports problems itself and so needs the config loaded unvalidated.
func ValidatesConfig(args []string) bool {
	return len(args) >= 2 && args[0] == "config" && args[1] == "validate"
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "a4s", "config.yaml")
}

// DefaultDataDir returns the default data directory using XDG_DATA_HOME.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "a4s")
}

// GlobalFlags returns the root command flags bound to f.
func GlobalFlags(f *Flags) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error, fatal, panic)",
			Sources:     cli.EnvVars("A4S_LOG_LEVEL"),
			Value:       "info",
			Destination: &f.LogLevel,
		},
		&cli.StringFlag{
			Name:        "log-file",
			Usage:       "path to log file (defaults to <data-dir>/a4s.log)",
			Sources:     cli.EnvVars("A4S_LOG_FILE"),
			Destination: &f.LogFile,
		},
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "path to config file",
			Sources:     cli.EnvVars("A4S_CONFIG"),
			Value:       DefaultConfigPath(),
			Destination: &f.ConfigPath,
		},
		&cli.StringFlag{
			Name:        "data-dir",
			Usage:       "path to data directory",
			Sources:     cli.EnvVars("A4S_DATA_DIR"),
			Value:       DefaultDataDir(),
			Destination: &f.DataDir,
		},
		&cli.StringFlag{
			Name:        "api-url",
			Usage:       "crew backend base URL (overrides api.base_url)",
			Sources:     cli.EnvVars("A4S_API_URL"),
			Destination: &f.APIURL,
		},
	}
}
