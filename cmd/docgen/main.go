// Command docgen generates CLI reference documentation from the a4s command
// definitions. Output is written to docs/cli-reference.md.
package main

import (
	"fmt"
	"os"

	docs "github.com/urfave/cli-docs/v3"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/a4s/internal/a4s"
	"github.com/hay-kot/a4s/internal/commands"
	"github.com/hay-kot/a4s/internal/tui"
)

func main() {
	flags := &commands.Flags{}
	app := &a4s.App{}

	root := &cli.Command{
		Name:      "a4s",
		Usage:     "Compose, launch and monitor crews",
		UsageText: "a4s [global options] command [command options]",
		Description: `a4s is a terminal front-end for a crew execution backend.

Pick tasks, bundle them into a named crew, start it with an optional JSON
payload and watch its executions. The backend owns all crew state.

Run 'a4s' with no arguments to open the interactive composer.`,
		Flags: commands.GlobalFlags(flags),
	}

	tuiCmd := commands.NewTuiCmd(flags, app, tui.BuildInfo{Version: "dev"})
	root.Flags = append(root.Flags, tuiCmd.Flags()...)

	root = tuiCmd.Register(root)
	root = commands.NewTasksCmd(flags).Register(root)
	root = commands.NewLsCmd(flags, app).Register(root)
	root = commands.NewCreateCmd(flags, app).Register(root)
	root = commands.NewExecCmd(flags, app).Register(root)
	root = commands.NewStatusCmd(flags, app).Register(root)
	root = commands.NewRmCmd(flags, app).Register(root)
	root = commands.NewConfigValidateCmd(flags).Register(root)

	md, err := docs.ToMarkdown(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error generating docs: %v\n", err)
		os.Exit(1)
	}

	outPath := "docs/cli-reference.md"
	if len(os.Args) > 1 {
		outPath = os.Args[1]
	}

	if err := os.WriteFile(outPath, []byte(md), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "error writing %s: %v\n", outPath, err)
		os.Exit(1)
	}

	fmt.Printf("Generated %s\n", outPath)
}
