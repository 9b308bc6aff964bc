// Package service defines the backend-agnostic interface for task operations.
package service

import (
	"context"
	"errors"
)

// ErrTaskNotFound is returned when no task has the requested id.
var ErrTaskNotFound = errors.New("task not found")

// ErrEmptyDescription is returned for blank task descriptions.
var ErrEmptyDescription = errors.New("description required")

// ErrInvalidStatus is returned for unknown status values.
var ErrInvalidStatus = errors.New("invalid status")

// Service defines the interface for task store operations.
// Commands never touch the encrypted store file directly.
type Service interface {
	// Add creates a task with status todo and the next id.
	Add(ctx context.Context, description string) (Task, error)

	// Update replaces a task's description and bumps its updated_at.
	Update(ctx context.Context, id int64, description string) (Task, error)

	// Delete removes a task. The id is never reused.
	Delete(ctx context.Context, id int64) error

	// SetStatus moves a task to the given status and bumps its updated_at.
	SetStatus(ctx context.Context, id int64, status Status) (Task, error)

	// List returns tasks in id order. An empty filter returns all tasks;
	// otherwise only tasks with the given status.
	List(ctx context.Context, filter Status) ([]Task, error)
}
