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
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "taskvault help" }
func (c *HelpCmd) NeedsStore() bool  { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  taskvault                                           List all tasks
  taskvault add [common flags] <description...>       Create a task
  taskvault update [common flags] <id> <description...>
  taskvault delete [common flags] <id>                (alias: rm)
  taskvault list [common flags] [--status <s>]        s: todo|in_progress|done
  taskvault mark-done [common flags] <id>             (alias: done)
  taskvault mark-in-progress [common flags] <id>      (alias: start)
  taskvault keygen                                    Print a fresh encryption key
  taskvault help
  taskvault version

Common flags:
  --data <dir>     Override data directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr

The encryption key is read from the ENCRYPTION_KEY environment variable
(standard base64, 32 bytes). Exit codes: 0 success, 1 user error,
2 integrity/decryption failure, 3 configuration error, 4 I/O error.
`
