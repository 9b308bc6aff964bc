package localstore

import (
	"context"
	"fmt"

	"taskvault/internal/actionlog"
	"taskvault/internal/config"
	"taskvault/internal/secrets"
	"taskvault/internal/service"
)

// Factory builds the real encrypted store for the dispatcher. The key is
// validated before anything touches the data dir, so a missing key fails
// without creating files.
func Factory(ctx context.Context, cfg *config.Config) (service.Service, error) {
	key, err := secrets.LoadKey()
	if err != nil {
		return nil, err
	}

	if err := cfg.EnsureDir(); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	actions, err := actionlog.Open(cfg.LogPath())
	if err != nil {
		return nil, err
	}

	store, err := Open(cfg, key, actions)
	if err != nil {
		actions.Close()
		return nil, err
	}
	return store, nil
}
