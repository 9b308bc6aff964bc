// Package cli handles command-line parsing and dispatch.
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"taskvault/internal/commands"
	"taskvault/internal/config"
	"taskvault/internal/exitcode"
	"taskvault/internal/service"
)

// ServiceFactory creates a Service from config.
// Used to inject the store backend during dispatch.
type ServiceFactory func(ctx context.Context, cfg *config.Config) (service.Service, error)

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	factory  ServiceFactory
}

// NewDispatcher creates a new dispatcher with the given registry and service factory.
func NewDispatcher(registry *commands.Registry, factory ServiceFactory) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		factory:  factory,
	}
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	// No args -> dispatch to "list" with no args
	if len(args) == 0 {
		return d.dispatch(ctx, "list", nil, out, errOut)
	}

	cmdName := args[0]

	// Flags require a command in front of them
	if strings.HasPrefix(cmdName, "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	return d.dispatch(ctx, cmdName, args[1:], out, errOut)
}

func (d *Dispatcher) dispatch(ctx context.Context, cmdName string, args []string, out, errOut io.Writer) int {
	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard) // We handle errors ourselves

	// Common flags
	var dataDir string
	var quiet bool
	var debug bool

	fs.StringVar(&dataDir, "data", "", "")
	fs.BoolVar(&quiet, "quiet", false, "")
	fs.BoolVar(&debug, "debug", false, "")

	cmd.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		return writeFlagError(errOut, err)
	}

	// A leftover positional starting with - means an unknown flag
	positionalArgs := fs.Args()
	if len(positionalArgs) > 0 && strings.HasPrefix(positionalArgs[0], "-") {
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", positionalArgs[0])
		return exitcode.UserError
	}

	cfg, err := config.New(dataDir)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.ConfigError
	}
	cfg.Quiet = cfg.Quiet || quiet
	cfg.Debug = debug

	var debugLog *log.Logger
	if debug {
		debugLog = log.NewWithOptions(errOut, log.Options{
			Level:           log.DebugLevel,
			ReportTimestamp: true,
			TimeFormat:      time.RFC3339,
			Prefix:          "taskvault",
		})
		debugLog.Debug("resolved paths", "data", cfg.Dir, "store", cfg.StorePath())
	}

	var svc service.Service
	if cmd.NeedsStore() {
		svc, err = d.factory(ctx, cfg)
		if err != nil {
			return commands.WriteError(errOut, err)
		}
		if closer, ok := svc.(io.Closer); ok {
			defer closer.Close()
		}
		if debugLog != nil {
			debugLog.Debug("store opened")
		}
	}

	return cmd.Run(ctx, cfg, svc, positionalArgs, out, errOut)
}

// writeFlagError normalizes flag package errors into user-facing messages.
func writeFlagError(errOut io.Writer, err error) int {
	errStr := err.Error()

	if strings.Contains(errStr, "flag needs an argument") {
		parts := strings.Split(errStr, ":")
		flagPart := strings.TrimSpace(parts[0])
		flagPart = strings.TrimPrefix(flagPart, "flag ")
		fmt.Fprintf(errOut, "error: flag needs an argument: %s\n", flagPart)
		return exitcode.UserError
	}

	if strings.HasPrefix(errStr, "flag provided but not defined:") {
		flagName := strings.TrimPrefix(errStr, "flag provided but not defined: ")
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", flagName)
		return exitcode.UserError
	}

	fmt.Fprintf(errOut, "error: %s\n", errStr)
	return exitcode.UserError
}
