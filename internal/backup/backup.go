// Package backup snapshots the encrypted store file before each overwrite.
//
// Backups are never pruned; unbounded growth is an accepted, documented
// limitation of the store.
package backup

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// timestampFormat has nanosecond resolution so writes within the same second
// never collide on a backup name.
const timestampFormat = "20060102T150405.000000000"

// Manager copies the store file into a backup directory.
type Manager struct {
	// Dir is the backup directory, created on first use with mode 0700.
	Dir string
}

// New creates a Manager writing into dir.
func New(dir string) *Manager {
	return &Manager{Dir: dir}
}

// Create copies src into the backup directory under a timestamped name.
// A missing src is not an error: there is nothing to back up on the first
// write. Returns the backup path, or "" when no backup was taken.
func (m *Manager) Create(src string) (string, error) {
	data, err := os.ReadFile(src)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read store file for backup: %w", err)
	}

	if err := os.MkdirAll(m.Dir, 0o700); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}

	name := fmt.Sprintf("%s.%s.bak", filepath.Base(src), time.Now().UTC().Format(timestampFormat))
	dst := filepath.Join(m.Dir, name)
	if err := os.WriteFile(dst, data, 0o600); err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}
	return dst, nil
}

// List returns the backup file paths currently on disk, sorted by name.
// Timestamped names sort chronologically.
func (m *Manager) List() ([]string, error) {
	entries, err := os.ReadDir(m.Dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read backup dir: %w", err)
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".bak" {
			continue
		}
		paths = append(paths, filepath.Join(m.Dir, entry.Name()))
	}
	return paths, nil
}
