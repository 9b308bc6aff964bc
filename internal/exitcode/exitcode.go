// Package exitcode defines exit codes for the CLI.
package exitcode

// Exit codes of the CLI contract.
const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad id, bad arguments).
	UserError = 1

	// DataError indicates an integrity or decryption failure.
	DataError = 2

	// ConfigError indicates a configuration error (missing or invalid key).
	ConfigError = 3

	// IOError indicates a filesystem failure, including a failed backup.
	IOError = 4
)
