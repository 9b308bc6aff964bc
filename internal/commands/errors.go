package commands

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"taskvault/internal/exitcode"
	"taskvault/internal/secrets"
	"taskvault/internal/service"
)

// WriteError prints err to errOut and maps it to an exit code.
// The dispatcher uses the same mapping for factory failures.
func WriteError(errOut io.Writer, err error) int {
	fmt.Fprintf(errOut, "error: %v\n", err)
	switch {
	case errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, service.ErrEmptyDescription),
		errors.Is(err, service.ErrInvalidStatus):
		return exitcode.UserError
	case errors.Is(err, secrets.ErrDecrypt),
		errors.Is(err, secrets.ErrIntegrity):
		return exitcode.DataError
	case errors.Is(err, secrets.ErrKeyMissing),
		errors.Is(err, secrets.ErrKeyInvalid):
		return exitcode.ConfigError
	default:
		return exitcode.IOError
	}
}

// parseID parses a task id argument.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid task id: %q", arg)
	}
	return id, nil
}
