package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskvault/internal/config"
	"taskvault/internal/exitcode"
	"taskvault/internal/service"
)

func init() {
	Register(&MarkDoneCmd{})
	Register(&MarkInProgressCmd{})
}

// MarkDoneCmd implements the mark-done command.
type MarkDoneCmd struct{}

func (c *MarkDoneCmd) Name() string      { return "mark-done" }
func (c *MarkDoneCmd) Aliases() []string { return []string{"done"} }
func (c *MarkDoneCmd) Synopsis() string  { return "Mark a task done" }
func (c *MarkDoneCmd) Usage() string     { return "taskvault mark-done <id>" }
func (c *MarkDoneCmd) NeedsStore() bool  { return true }

func (c *MarkDoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *MarkDoneCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	return runSetStatus(ctx, cfg, svc, service.StatusDone, args, out, errOut)
}

// MarkInProgressCmd implements the mark-in-progress command.
type MarkInProgressCmd struct{}

func (c *MarkInProgressCmd) Name() string      { return "mark-in-progress" }
func (c *MarkInProgressCmd) Aliases() []string { return []string{"start"} }
func (c *MarkInProgressCmd) Synopsis() string  { return "Mark a task in progress" }
func (c *MarkInProgressCmd) Usage() string     { return "taskvault mark-in-progress <id>" }
func (c *MarkInProgressCmd) NeedsStore() bool  { return true }

func (c *MarkInProgressCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *MarkInProgressCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	return runSetStatus(ctx, cfg, svc, service.StatusInProgress, args, out, errOut)
}

// runSetStatus is the shared implementation for the status commands.
func runSetStatus(ctx context.Context, cfg *config.Config, svc service.Service, status service.Status, args []string, out, errOut io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(errOut, "error: task id required")
		return exitcode.UserError
	}
	id, err := parseID(args[0])
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	task, err := svc.SetStatus(ctx, id, status)
	if err != nil {
		return WriteError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "task %d is now %s\n", task.ID, task.Status)
	}
	return exitcode.Success
}
