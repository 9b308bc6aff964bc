// Package config resolves the data directory and store file paths.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const (
	// AppName is the application directory name.
	AppName = "taskvault"

	// ConfigFile is the optional TOML config filename inside the data dir.
	ConfigFile = "config.toml"

	// EnvDir overrides the data directory.
	EnvDir = "TASKVAULT_DIR"
)

// Defaults for file locations, all relative to the data dir.
const (
	DefaultStoreFile  = "tasks.enc"
	DefaultDigestFile = "tasks.sha256"
	DefaultBackupDir  = "backups"
	DefaultLogFile    = "actions.log"
)

// Config holds resolved paths and settings for one invocation.
//
// Values come from, in priority order: defaults, then the optional
// config.toml in the data dir, then CLI flags (Quiet/Debug).
type Config struct {
	// Dir is the data directory path.
	Dir string `toml:"-"`

	// StoreFile is the encrypted store filename.
	StoreFile string `toml:"store_file"`

	// DigestFile is the sidecar integrity digest filename.
	DigestFile string `toml:"digest_file"`

	// BackupDir is the backup directory name.
	BackupDir string `toml:"backup_dir"`

	// LogFile is the action log filename.
	LogFile string `toml:"log_file"`

	// Quiet suppresses informational output.
	Quiet bool `toml:"quiet"`

	// Debug enables debug logging to stderr.
	Debug bool `toml:"-"`
}

// New creates a Config rooted at dataDir. If dataDir is empty, TASKVAULT_DIR
// and then the XDG data directory are used. An existing config.toml in the
// data dir is applied on top of the defaults.
func New(dataDir string) (*Config, error) {
	dir := dataDir
	if dir == "" {
		dir = os.Getenv(EnvDir)
	}
	if dir == "" {
		dir = DefaultDataDir()
	}

	cfg := &Config{
		Dir:        dir,
		StoreFile:  DefaultStoreFile,
		DigestFile: DefaultDigestFile,
		BackupDir:  DefaultBackupDir,
		LogFile:    DefaultLogFile,
	}

	path := filepath.Join(dir, ConfigFile)
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}
	return cfg, nil
}

// DefaultDataDir returns XDG_DATA_HOME/taskvault, falling back to
// $HOME/.local/share/taskvault.
func DefaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".local", "share", AppName)
}

// StorePath returns the encrypted store file path.
func (c *Config) StorePath() string { return c.resolve(c.StoreFile) }

// DigestPath returns the sidecar digest file path.
func (c *Config) DigestPath() string { return c.resolve(c.DigestFile) }

// BackupDirPath returns the backup directory path.
func (c *Config) BackupDirPath() string { return c.resolve(c.BackupDir) }

// LogPath returns the action log path.
func (c *Config) LogPath() string { return c.resolve(c.LogFile) }

// EnsureDir creates the data directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0o700)
}

func (c *Config) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Dir, p)
}
