package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/hay-kot/a4s/internal/a4s"
	"github.com/hay-kot/a4s/internal/core/styles"
)

type RmCmd struct {
	flags *Flags
	app   *a4s.App

	yes bool
}

// NewRmCmd creates a new rm command
func NewRmCmd(flags *Flags, app *a4s.App) *RmCmd {
	return &RmCmd{flags: flags, app: app}
}

// Register adds the rm command to the application
func (cmd *RmCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "rm",
		Usage:     "Delete a crew",
		UsageText: "a4s rm <crew-id> [--yes]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "yes",
				Aliases:     []string{"y"},
				Usage:       "skip the confirmation prompt",
				Destination: &cmd.yes,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *RmCmd) run(ctx context.Context, c *cli.Command) error {
	crewID := c.Args().First()
	if crewID == "" {
		return errors.New("crew id is required")
	}

	if !cmd.yes {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return errors.New("refusing to delete without --yes when not running interactively")
		}

		confirmed := false
		err := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete crew %s?", crewID)).
				Description("The backend removes the crew and its tasks.").
				Affirmative("Delete").
				Negative("Cancel").
				Value(&confirmed),
		)).WithTheme(styles.FormTheme()).RunWithContext(ctx)
		if err != nil && !errors.Is(err, huh.ErrUserAborted) {
			return err
		}
		if !confirmed {
			return nil
		}
	}

	printNotifications(ctx, cmd.app.Bus)
	return backendError(cmd.app, crewID, cmd.app.Crews.Delete(ctx, crewID))
}
