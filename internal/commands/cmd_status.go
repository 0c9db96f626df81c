package commands

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/a4s/internal/a4s"
	"github.com/hay-kot/a4s/internal/core/crew"
	"github.com/hay-kot/a4s/internal/core/styles"
	"github.com/hay-kot/a4s/internal/printer"
	"github.com/hay-kot/a4s/pkg/iojson"
)

type StatusCmd struct {
	flags *Flags
	app   *a4s.App

	jsonOutput bool
}

// NewStatusCmd creates a new status command
func NewStatusCmd(flags *Flags, app *a4s.App) *StatusCmd {
	return &StatusCmd{flags: flags, app: app}
}

// Register adds the status command to the application
func (cmd *StatusCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "status",
		Usage:     "Show a crew's status and executions",
		UsageText: "a4s status <crew-id> [--json]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

// statusOutput is the JSON output format for a4s status --json.
type statusOutput struct {
	Crew       crew.Crew        `json:"crew"`
	Executions []crew.Execution `json:"executions"`
	CanExecute bool             `json:"can_execute"`
}

func (cmd *StatusCmd) run(ctx context.Context, c *cli.Command) error {
	crewID := c.Args().First()
	if crewID == "" {
		return errors.New("crew id is required")
	}

	if !cmd.jsonOutput {
		printNotifications(ctx, cmd.app.Bus)
	}

	// Fetch first so that the synced record has a slot to land in.
	if _, err := cmd.app.Crews.Fetch(ctx); err != nil {
		return backendError(cmd.app, "", err)
	}
	if _, ok := cmd.app.Crews.Crew(crewID); !ok {
		return fmt.Errorf("%w: %s", a4s.ErrCrewNotFound, crewID)
	}

	current, err := cmd.app.Crews.Sync(ctx, crewID)
	if err != nil {
		return backendError(cmd.app, crewID, err)
	}

	execs, err := cmd.app.Crews.SyncExecutions(ctx, crewID)
	if err != nil {
		return fmt.Errorf("list executions: %w", err)
	}

	out := statusOutput{
		Crew:       current,
		Executions: execs,
		CanExecute: cmd.app.Crews.CanExecute(crewID),
	}

	if cmd.jsonOutput {
		return iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, out)
	}

	p := printer.Ctx(ctx)
	p.Section(current.Name)
	p.Printf("%s  %s", current.ID, styles.RenderStatus(current.Status))
	if current.Description != "" {
		p.Printf("%s", current.Description)
	}
	p.Printf("")

	if len(execs) == 0 {
		p.Infof("No executions yet")
		return nil
	}

	w := tabwriter.NewWriter(c.Root().Writer, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "EXECUTION\tSTATUS\tSTARTED")
	for _, e := range execs {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", e.ID, e.Status.Label(), relativeTime(e.Created()))
	}
	return w.Flush()
}
