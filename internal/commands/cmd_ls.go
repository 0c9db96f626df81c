package commands

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/a4s/internal/a4s"
	"github.com/hay-kot/a4s/internal/core/crew"
	"github.com/hay-kot/a4s/internal/printer"
	"github.com/hay-kot/a4s/pkg/iojson"
)

type LsCmd struct {
	flags *Flags
	app   *a4s.App

	// flags
	jsonOutput bool
	match      string
}

// NewLsCmd creates a new ls command
func NewLsCmd(flags *Flags, app *a4s.App) *LsCmd {
	return &LsCmd{flags: flags, app: app}
}

// Register adds the ls command to the application
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ls",
		Usage:     "List all crews",
		UsageText: "a4s ls [--json] [--match <glob>]",
		Description: `Displays a table of all crews with their id, name, status, tasks and age.

Use --match to filter by crew name with a glob such as 'nightly-*'.
Use --json for one JSON object per line.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
			&cli.StringFlag{
				Name:        "match",
				Aliases:     []string{"m"},
				Usage:       "only show crews whose name matches the glob",
				Destination: &cmd.match,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *LsCmd) run(ctx context.Context, c *cli.Command) error {
	if cmd.match != "" && !doublestar.ValidatePattern(cmd.match) {
		return fmt.Errorf("invalid --match pattern %q", cmd.match)
	}

	if !cmd.jsonOutput {
		printNotifications(ctx, cmd.app.Bus)
	}

	crews, err := cmd.app.Crews.Fetch(ctx)
	if err != nil {
		return backendError(cmd.app, "", err)
	}

	crews = filterCrews(crews, cmd.match)
	out := c.Root().Writer

	if cmd.jsonOutput {
		for _, cr := range crews {
			if err := iojson.WriteLine(out, cr); err != nil {
				return fmt.Errorf("encode crew: %w", err)
			}
		}
		return nil
	}

	if len(crews) == 0 {
		printer.Ctx(ctx).Infof("No crews found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tSTATUS\tTASKS\tCREATED")
	for _, cr := range crews {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			cr.ID,
			cr.Name,
			cr.Status.Label(),
			strings.Join(cr.TaskNames, ","),
			relativeTime(cr.Created()),
		)
	}
	return w.Flush()
}

// filterCrews keeps crews whose name matches pattern. An empty pattern keeps
// everything.
func filterCrews(crews []crew.Crew, pattern string) []crew.Crew {
	if pattern == "" {
		return crews
	}
	out := make([]crew.Crew, 0, len(crews))
	for _, cr := range crews {
		if ok, _ := doublestar.Match(pattern, cr.Name); ok {
			out = append(out, cr)
		}
	}
	return out
}

func relativeTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return humanize.Time(t)
}
