package commands

import (
	"context"
	"errors"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/a4s/internal/a4s"
	"github.com/hay-kot/a4s/internal/printer"
	"github.com/hay-kot/a4s/pkg/iojson"
)

type ExecCmd struct {
	flags *Flags
	app   *a4s.App

	// flags
	data  string
	input iojson.FileReader
}

// NewExecCmd creates a new exec command
func NewExecCmd(flags *Flags, app *a4s.App) *ExecCmd {
	return &ExecCmd{flags: flags, app: app}
}

// Register adds the exec command to the application
func (cmd *ExecCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "exec",
		Usage:     "Execute a crew",
		UsageText: "a4s exec <crew-id> [--data <json> | -f <file>]",
		Description: `Starts a crew on the backend with an optional JSON payload.

The payload is validated locally first; malformed JSON is never sent.
Use -f - to read the payload from stdin.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "data",
				Usage:       "inline JSON payload",
				Destination: &cmd.data,
			},
			cmd.input.Flag(),
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ExecCmd) run(ctx context.Context, c *cli.Command) error {
	crewID := c.Args().First()
	if crewID == "" {
		return errors.New("crew id is required")
	}

	payload, err := cmd.payload()
	if err != nil {
		return err
	}

	printNotifications(ctx, cmd.app.Bus)

	updated, err := cmd.app.Crews.Execute(ctx, crewID, payload)
	if err != nil {
		return backendError(cmd.app, crewID, err)
	}

	printer.Ctx(ctx).Printf("  status: %s", updated.Status.Label())
	return nil
}

func (cmd *ExecCmd) payload() (string, error) {
	if cmd.data != "" && cmd.input.IsSet() {
		return "", errors.New("use either --data or --file, not both")
	}
	if !cmd.input.IsSet() {
		return cmd.data, nil
	}
	raw, err := cmd.input.ReadRaw()
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
