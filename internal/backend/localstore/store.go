// Package localstore persists the task collection to an encrypted file with
// plaintext integrity verification, timestamped backups, and action logging.
package localstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"taskvault/internal/actionlog"
	"taskvault/internal/backup"
	"taskvault/internal/config"
	"taskvault/internal/secrets"
	"taskvault/internal/service"
)

// payloadVersion is the serialized envelope version.
const payloadVersion = 1

// payload is the plaintext JSON envelope inside the encrypted store file.
// next_id is persisted so ids stay unique and monotonically increasing
// across deletes.
type payload struct {
	Version int            `json:"version"`
	NextID  int64          `json:"next_id"`
	Tasks   []service.Task `json:"tasks"`
}

// Store implements service.Service over the encrypted store file.
// It is single-invocation state: the whole collection is loaded in Open and
// rewritten on every mutation. Concurrent invocations are not coordinated.
type Store struct {
	storePath  string
	digestPath string
	key        secrets.Key
	backups    *backup.Manager
	actions    *actionlog.Logger

	tasks  []service.Task
	nextID int64
}

// Open loads the store: read, decrypt, verify digest, validate, deserialize.
// Any failure in that chain aborts. A missing store file is an empty
// collection.
func Open(cfg *config.Config, key secrets.Key, actions *actionlog.Logger) (*Store, error) {
	s := &Store{
		storePath:  cfg.StorePath(),
		digestPath: cfg.DigestPath(),
		key:        key,
		backups:    backup.New(cfg.BackupDirPath()),
		actions:    actions,
		nextID:     1,
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	blob, err := os.ReadFile(s.storePath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read store file: %w", err)
	}

	// An existing but truncated store file is tampered data, not an empty
	// collection. Decrypt rejects any blob shorter than nonce+overhead.
	plaintext, err := secrets.Decrypt(blob, s.key)
	if err != nil {
		return err
	}

	stored, err := os.ReadFile(s.digestPath)
	if errors.Is(err, fs.ErrNotExist) {
		// Fail closed: a store file without its digest is not trusted.
		return fmt.Errorf("%w: digest file %s missing", secrets.ErrIntegrity, s.digestPath)
	}
	if err != nil {
		return fmt.Errorf("read digest file: %w", err)
	}
	if !secrets.Verify(plaintext, strings.TrimSpace(string(stored))) {
		return fmt.Errorf("%w: digest mismatch, possible tampering", secrets.ErrIntegrity)
	}

	if err := validatePayload(plaintext); err != nil {
		return fmt.Errorf("%w: %v", secrets.ErrIntegrity, err)
	}

	var p payload
	if err := json.Unmarshal(plaintext, &p); err != nil {
		return fmt.Errorf("%w: %v", secrets.ErrIntegrity, err)
	}
	s.tasks = p.Tasks
	s.nextID = p.NextID
	if s.nextID < 1 {
		s.nextID = 1
	}
	return nil
}

// flush runs the mutation pipeline: backup, serialize, digest, encrypt,
// atomic write, one action log line. A backup failure aborts the write.
func (s *Store) flush(action string, taskID int64, keyvals ...interface{}) error {
	if _, err := s.backups.Create(s.storePath); err != nil {
		return err
	}

	plaintext, err := json.MarshalIndent(payload{
		Version: payloadVersion,
		NextID:  s.nextID,
		Tasks:   s.tasks,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize tasks: %w", err)
	}
	digest := secrets.Digest(plaintext)

	blob, err := secrets.Encrypt(plaintext, s.key)
	if err != nil {
		return err
	}

	if err := writeAtomic(s.storePath, blob); err != nil {
		return err
	}
	if err := writeAtomic(s.digestPath, []byte(digest+"\n")); err != nil {
		return err
	}

	return s.actions.Record(action, taskID, keyvals...)
}

// writeAtomic replaces path via a temp file and rename, mode 0600.
func writeAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create dir for %s: %w", path, err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

func (s *Store) find(id int64) (int, error) {
	for i, t := range s.tasks {
		if t.ID == id {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %d", service.ErrTaskNotFound, id)
}

// Add implements service.Service.
func (s *Store) Add(ctx context.Context, description string) (service.Task, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return service.Task{}, service.ErrEmptyDescription
	}

	now := time.Now().UTC()
	task := service.Task{
		ID:          s.nextID,
		Description: description,
		Status:      service.StatusTodo,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.tasks = append(s.tasks, task)
	s.nextID++

	if err := s.flush(actionlog.ActionAdd, task.ID, "description", task.Description); err != nil {
		return service.Task{}, err
	}
	return task, nil
}

// Update implements service.Service.
func (s *Store) Update(ctx context.Context, id int64, description string) (service.Task, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return service.Task{}, service.ErrEmptyDescription
	}

	i, err := s.find(id)
	if err != nil {
		return service.Task{}, err
	}
	s.tasks[i].Description = description
	s.tasks[i].UpdatedAt = time.Now().UTC()

	if err := s.flush(actionlog.ActionUpdate, id, "description", description); err != nil {
		return service.Task{}, err
	}
	return s.tasks[i], nil
}

// Delete implements service.Service.
func (s *Store) Delete(ctx context.Context, id int64) error {
	i, err := s.find(id)
	if err != nil {
		return err
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)

	return s.flush(actionlog.ActionDelete, id)
}

// SetStatus implements service.Service.
func (s *Store) SetStatus(ctx context.Context, id int64, status service.Status) (service.Task, error) {
	if !status.Valid() {
		return service.Task{}, fmt.Errorf("%w: %q", service.ErrInvalidStatus, status)
	}

	i, err := s.find(id)
	if err != nil {
		return service.Task{}, err
	}
	s.tasks[i].Status = status
	s.tasks[i].UpdatedAt = time.Now().UTC()

	if err := s.flush(actionlog.ActionStatus, id, "status", string(status)); err != nil {
		return service.Task{}, err
	}
	return s.tasks[i], nil
}

// List implements service.Service.
func (s *Store) List(ctx context.Context, filter service.Status) ([]service.Task, error) {
	if filter != "" && !filter.Valid() {
		return nil, fmt.Errorf("%w: %q", service.ErrInvalidStatus, filter)
	}

	var result []service.Task
	for _, t := range s.tasks {
		if filter == "" || t.Status == filter {
			result = append(result, t)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// Close releases the action log file.
func (s *Store) Close() error {
	return s.actions.Close()
}
