package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/hay-kot/a4s/internal/a4s"
	"github.com/hay-kot/a4s/internal/core/crew"
	"github.com/hay-kot/a4s/internal/core/styles"
	"github.com/hay-kot/a4s/internal/core/validate"
	"github.com/hay-kot/a4s/internal/printer"
)

type CreateCmd struct {
	flags *Flags
	app   *a4s.App

	// flags
	name        string
	description string
	tasks       []string
}

// NewCreateCmd creates a new create command
func NewCreateCmd(flags *Flags, app *a4s.App) *CreateCmd {
	return &CreateCmd{flags: flags, app: app}
}

// Register adds the create command to the application
func (cmd *CreateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "create",
		Usage:     "Create a crew from a set of tasks",
		UsageText: "a4s create [--name <name>] [--description <text>] [--task <id>]...",
		Description: `Creates a crew on the backend.

When --name or --task is missing and a terminal is attached, an interactive
form asks for the remaining fields. Run 'a4s tasks' to list task ids.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "name",
				Aliases:     []string{"n"},
				Usage:       "crew name",
				Destination: &cmd.name,
			},
			&cli.StringFlag{
				Name:        "description",
				Aliases:     []string{"d"},
				Usage:       "crew description",
				Destination: &cmd.description,
			},
			&cli.StringSliceFlag{
				Name:        "task",
				Aliases:     []string{"t"},
				Usage:       "task id to include (repeatable)",
				Destination: &cmd.tasks,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *CreateCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	if strings.TrimSpace(cmd.name) == "" || len(cmd.tasks) == 0 {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return errors.New("--name and at least one --task are required when not running interactively")
		}
		if err := cmd.runForm(ctx); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return err
		}
	}

	if err := validate.CreatePayload(crew.CreatePayload{Name: cmd.name, TaskNames: cmd.tasks}); err != nil {
		return err
	}
	sel := selectionFor(cmd.tasks)

	printNotifications(ctx, cmd.app.Bus)

	created, err := cmd.app.Crews.Create(ctx, cmd.name, cmd.description, sel)
	if err != nil {
		return err
	}

	if created.ID != "" {
		p.Printf("  id: %s", created.ID)
	}
	return nil
}

func (cmd *CreateCmd) runForm(ctx context.Context) error {
	options := make([]huh.Option[string], 0, len(crew.Catalog()))
	for _, t := range crew.Catalog() {
		options = append(options, huh.NewOption(t.Icon+" "+t.Name, t.ID).Selected(slices.Contains(cmd.tasks, t.ID)))
	}

	_, _ = fmt.Fprintln(os.Stderr, styles.BannerStyle.Render(styles.Banner))

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Crew name").
				Placeholder("nightly-review").
				Value(&cmd.name).
				Validate(validate.CrewName),
			huh.NewText().
				Title("Description").
				Lines(3).
				Value(&cmd.description),
			huh.NewMultiSelect[string]().
				Title("Tasks").
				Options(options...).
				Value(&cmd.tasks).
				Validate(validate.TaskIDs),
		),
	).WithTheme(styles.FormTheme())

	return form.RunWithContext(ctx)
}

// selectionFor builds a Selection from validated task ids, dropping repeats.
func selectionFor(ids []string) *a4s.Selection {
	sel := a4s.NewSelection()
	for _, id := range ids {
		if !sel.Has(id) {
			sel.Toggle(id)
		}
	}
	return sel
}
