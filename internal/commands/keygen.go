package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskvault/internal/config"
	"taskvault/internal/exitcode"
	"taskvault/internal/secrets"
	"taskvault/internal/service"
)

func init() {
	Register(&KeygenCmd{})
}

// KeygenCmd prints a fresh encryption key. It never touches the store.
type KeygenCmd struct{}

func (c *KeygenCmd) Name() string      { return "keygen" }
func (c *KeygenCmd) Aliases() []string { return nil }
func (c *KeygenCmd) Synopsis() string  { return "Generate a new encryption key" }
func (c *KeygenCmd) Usage() string     { return "taskvault keygen" }
func (c *KeygenCmd) NeedsStore() bool  { return false }

func (c *KeygenCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *KeygenCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	key, err := secrets.GenerateKey()
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.IOError
	}
	fmt.Fprintln(out, key.Encode())
	if !cfg.Quiet {
		fmt.Fprintf(errOut, "export %s with this value to use the store\n", secrets.KeyEnv)
	}
	return exitcode.Success
}
