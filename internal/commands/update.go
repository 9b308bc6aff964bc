package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskvault/internal/config"
	"taskvault/internal/exitcode"
	"taskvault/internal/service"
)

func init() {
	Register(&UpdateCmd{})
}

// UpdateCmd implements the update command.
type UpdateCmd struct{}

func (c *UpdateCmd) Name() string      { return "update" }
func (c *UpdateCmd) Aliases() []string { return nil }
func (c *UpdateCmd) Synopsis() string  { return "Change a task's description" }
func (c *UpdateCmd) Usage() string     { return "taskvault update <id> <description...>" }
func (c *UpdateCmd) NeedsStore() bool  { return true }

func (c *UpdateCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UpdateCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "error: task id required")
		return exitcode.UserError
	}
	id, err := parseID(args[0])
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	description := strings.Join(args[1:], " ")
	if strings.TrimSpace(description) == "" {
		fmt.Fprintln(errOut, "error: description required")
		return exitcode.UserError
	}

	task, err := svc.Update(ctx, id, description)
	if err != nil {
		return WriteError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "updated task %d\n", task.ID)
	}
	return exitcode.Success
}
