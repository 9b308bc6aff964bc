// Package actionlog appends one human-readable line per mutating action.
package actionlog

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// Action kinds recorded in the log.
const (
	ActionAdd    = "ADD"
	ActionUpdate = "UPDATE"
	ActionDelete = "DELETE"
	ActionStatus = "STATUS"
)

// Logger is an append-only sink. Nothing reads it back through this package.
type Logger struct {
	file   *os.File
	logger *log.Logger
}

// Open opens (or creates, mode 0600) the log file for appending.
func Open(path string) (*Logger, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open action log: %w", err)
	}
	logger := log.NewWithOptions(file, log.Options{
		Formatter:       log.TextFormatter,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
	})
	return &Logger{file: file, logger: logger}, nil
}

// Record appends one line: <timestamp> INFO <action> task=<id> [details].
// The sync error is surfaced so a failing log aborts the mutation.
func (l *Logger) Record(action string, taskID int64, keyvals ...interface{}) error {
	kv := append([]interface{}{"task", taskID}, keyvals...)
	l.logger.Info(action, kv...)
	if err := l.file.Sync(); err != nil {
		return fmt.Errorf("sync action log: %w", err)
	}
	return nil
}

// Close closes the underlying file.
func (l *Logger) Close() error {
	return l.file.Close()
}
