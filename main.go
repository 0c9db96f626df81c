package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/a4s/internal/a4s"
	"github.com/hay-kot/a4s/internal/api"
	"github.com/hay-kot/a4s/internal/commands"
	"github.com/hay-kot/a4s/internal/core/config"
	corenotify "github.com/hay-kot/a4s/internal/core/notify"
	"github.com/hay-kot/a4s/internal/core/styles"
	"github.com/hay-kot/a4s/internal/printer"
	"github.com/hay-kot/a4s/internal/store/jsonfile"
	"github.com/hay-kot/a4s/internal/tui"
	"github.com/hay-kot/a4s/internal/tui/notify"
	"github.com/hay-kot/a4s/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, build() falls back to
	// runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func buildInfo() tui.BuildInfo {
	v, c, d := version, commit, date

	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	if len(c) > 7 {
		c = c[:7]
	}

	return tui.BuildInfo{Version: v, Commit: c, Date: d}
}

func main() {
	ctx := context.Background()

	var (
		logCloser func()
		a4sApp    = &a4s.App{}
		build     = buildInfo()
	)

	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "a4s",
		Usage:     "Compose, launch and monitor crews",
		UsageText: "a4s [global options] command [command options]",
		Description: `a4s is a terminal front-end for a crew execution backend.

Pick tasks, bundle them into a named crew, start it with an optional JSON
payload and watch its executions. The backend owns all crew state.

Run 'a4s' with no arguments to open the interactive composer.`,
		Version: build.String(),
		Flags:   commands.GlobalFlags(flags),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			// Always log to a file so the TUI owns the terminal.
			logFile := flags.LogFile
			if logFile == "" {
				logFile = filepath.Join(flags.DataDir, "a4s.log")
			}

			logger, closer, err := logutils.New(flags.LogLevel, logFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer

			load := config.Load
			validating := commands.ValidatesConfig(c.Args().Slice())
			if validating {
				load = config.Read
			}

			cfg, err := load(flags.ConfigPath, flags.DataDir)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}

			if flags.APIURL != "" {
				cfg.API.BaseURL = flags.APIURL
				if !validating {
					if err := cfg.Validate(); err != nil {
						return ctx, fmt.Errorf("invalid --api-url: %w", err)
					}
				}
			}
			flags.Config = cfg

			if palette, ok := styles.GetPalette(cfg.TUI.Theme); ok {
				styles.SetTheme(palette)
			}

			client := api.New(api.Options{
				BaseURL: cfg.API.BaseURL,
				Timeout: cfg.API.Timeout,
				Headers: cfg.API.Headers,
			})

			bus := notify.NewBus(corenotify.NewMemoryStore(100))
			hist := jsonfile.NewHistoryStore(cfg.PayloadHistoryFile())

			// Populate the pre-allocated App struct (commands already hold a pointer to it)
			*a4sApp = *a4s.NewApp(cfg, client, bus, hist)

			log.Debug().
				Str("version", build.Version).
				Str("api", cfg.API.BaseURL).
				Msg("a4s started")

			return printer.NewContext(ctx, printer.New(c.Root().Writer, c.Root().ErrWriter)), nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if a4sApp.API != nil {
				a4sApp.API.CloseIdleConnections()
			}
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	tuiCmd := commands.NewTuiCmd(flags, a4sApp, build)

	app = tuiCmd.Register(app)
	app = commands.NewTasksCmd(flags).Register(app)
	app = commands.NewLsCmd(flags, a4sApp).Register(app)
	app = commands.NewCreateCmd(flags, a4sApp).Register(app)
	app = commands.NewExecCmd(flags, a4sApp).Register(app)
	app = commands.NewStatusCmd(flags, a4sApp).Register(app)
	app = commands.NewRmCmd(flags, a4sApp).Register(app)
	app = commands.NewConfigValidateCmd(flags).Register(app)

	// Register TUI flags on root command
	app.Flags = append(app.Flags, tuiCmd.Flags()...)

	// Set TUI as default action when no subcommand is provided
	app.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'a4s --help' for usage", c.Args().First())
		}
		return tuiCmd.Run(ctx, c)
	}

	exitCode := 0
	if err := app.Run(ctx, os.Args); err != nil {
		if msg := err.Error(); msg != "" {
			fmt.Fprintln(os.Stderr)
			fmt.Fprintln(os.Stderr, msg)
		}
		exitCode = 1
	}

	os.Exit(exitCode)
}
