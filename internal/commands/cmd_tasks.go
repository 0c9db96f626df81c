package commands

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/a4s/internal/core/crew"
	"github.com/hay-kot/a4s/pkg/iojson"
)

type TasksCmd struct {
	flags *Flags

	jsonOutput bool
}

// NewTasksCmd creates a new tasks command
func NewTasksCmd(flags *Flags) *TasksCmd {
	return &TasksCmd{flags: flags}
}

// Register adds the tasks command to the application
func (cmd *TasksCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "tasks",
		Usage:     "List the tasks a crew can be built from",
		UsageText: "a4s tasks [--json]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *TasksCmd) run(_ context.Context, c *cli.Command) error {
	out := c.Root().Writer
	tasks := crew.Catalog()

	if cmd.jsonOutput {
		for _, t := range tasks {
			if err := iojson.WriteLine(out, t); err != nil {
				return fmt.Errorf("encode task: %w", err)
			}
		}
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tDESCRIPTION")
	for _, t := range tasks {
		_, _ = fmt.Fprintf(w, "%s\t%s %s\t%s\n", t.ID, t.Icon, t.Name, t.Description)
	}
	return w.Flush()
}
