package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskvault/internal/config"
	"taskvault/internal/exitcode"
	"taskvault/internal/output"
	"taskvault/internal/service"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `taskvault` (no args) and `taskvault list`.
type ListCmd struct {
	status  string
	verbose bool
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string     { return "taskvault list [--status <todo|in_progress|done>]" }
func (c *ListCmd) NeedsStore() bool  { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.status, "status", "", "")
	fs.StringVar(&c.status, "s", "", "")
	fs.BoolVar(&c.verbose, "verbose", false, "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) != 0 {
		fmt.Fprintln(errOut, "error: list takes no arguments")
		return exitcode.UserError
	}

	var filter service.Status
	if c.status != "" {
		parsed, err := service.ParseStatus(c.status)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		filter = parsed
	}

	tasks, err := svc.List(ctx, filter)
	if err != nil {
		return WriteError(errOut, err)
	}

	if len(tasks) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no tasks found")
		}
		return exitcode.Success
	}

	for _, task := range tasks {
		if c.verbose {
			output.FormatTaskVerbose(out, task)
		} else {
			output.FormatTask(out, task)
		}
	}
	return exitcode.Success
}
