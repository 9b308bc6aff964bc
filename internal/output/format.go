// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"taskvault/internal/service"
)

// FormatTask formats a task line.
// Format: "{ID:>4}  {STATUS:<12} {DESCRIPTION}\n"
func FormatTask(w io.Writer, task service.Task) {
	fmt.Fprintf(w, "%4d  %-12s %s\n", task.ID, task.Status, normalizeDescription(task.Description))
}

// FormatTaskVerbose includes the created/updated timestamps.
func FormatTaskVerbose(w io.Writer, task service.Task) {
	fmt.Fprintf(w, "%4d  %-12s %s  (created %s, updated %s)\n",
		task.ID, task.Status, normalizeDescription(task.Description),
		task.CreatedAt.Format("2006-01-02 15:04"), task.UpdatedAt.Format("2006-01-02 15:04"))
}

// normalizeDescription keeps task output one line per task.
// Newlines are replaced with spaces.
func normalizeDescription(description string) string {
	description = strings.ReplaceAll(description, "\r", " ")
	description = strings.ReplaceAll(description, "\n", " ")
	if strings.TrimSpace(description) == "" {
		return "(empty)"
	}
	return description
}
