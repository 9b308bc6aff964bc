// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"taskvault/internal/service"
)

// FakeService is an in-memory implementation of service.Service for testing.
type FakeService struct {
	mu     sync.Mutex
	tasks  []service.Task
	nextID int64

	// Error injection for testing
	AddErr       error
	UpdateErr    error
	DeleteErr    error
	SetStatusErr error
	ListErr      error
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{nextID: 1}
}

// Seed inserts a task directly, bypassing validation.
func (f *FakeService) Seed(description string, status service.Status) service.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now().UTC()
	task := service.Task{
		ID:          f.nextID,
		Description: description,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	f.tasks = append(f.tasks, task)
	f.nextID++
	return task
}

// Add implements service.Service.
func (f *FakeService) Add(ctx context.Context, description string) (service.Task, error) {
	if f.AddErr != nil {
		return service.Task{}, f.AddErr
	}
	if strings.TrimSpace(description) == "" {
		return service.Task{}, service.ErrEmptyDescription
	}
	return f.Seed(strings.TrimSpace(description), service.StatusTodo), nil
}

// Update implements service.Service.
func (f *FakeService) Update(ctx context.Context, id int64, description string) (service.Task, error) {
	if f.UpdateErr != nil {
		return service.Task{}, f.UpdateErr
	}
	if strings.TrimSpace(description) == "" {
		return service.Task{}, service.ErrEmptyDescription
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks[i].Description = strings.TrimSpace(description)
			f.tasks[i].UpdatedAt = time.Now().UTC()
			return f.tasks[i], nil
		}
	}
	return service.Task{}, fmt.Errorf("%w: %d", service.ErrTaskNotFound, id)
}

// Delete implements service.Service.
func (f *FakeService) Delete(ctx context.Context, id int64) error {
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %d", service.ErrTaskNotFound, id)
}

// SetStatus implements service.Service.
func (f *FakeService) SetStatus(ctx context.Context, id int64, status service.Status) (service.Task, error) {
	if f.SetStatusErr != nil {
		return service.Task{}, f.SetStatusErr
	}
	if !status.Valid() {
		return service.Task{}, fmt.Errorf("%w: %q", service.ErrInvalidStatus, status)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks[i].Status = status
			f.tasks[i].UpdatedAt = time.Now().UTC()
			return f.tasks[i], nil
		}
	}
	return service.Task{}, fmt.Errorf("%w: %d", service.ErrTaskNotFound, id)
}

// List implements service.Service.
func (f *FakeService) List(ctx context.Context, filter service.Status) ([]service.Task, error) {
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []service.Task
	for _, t := range f.tasks {
		if filter == "" || t.Status == filter {
			result = append(result, t)
		}
	}
	return result, nil
}
