package localstore

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"taskvault/internal/actionlog"
	"taskvault/internal/backup"
	"taskvault/internal/config"
	"taskvault/internal/secrets"
	"taskvault/internal/service"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.New(t.TempDir())
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	return cfg
}

func testKey(t *testing.T) secrets.Key {
	t.Helper()
	key, err := secrets.GenerateKey()
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	return key
}

func openStore(t *testing.T, cfg *config.Config, key secrets.Key) (*Store, error) {
	t.Helper()
	actions, err := actionlog.Open(cfg.LogPath())
	if err != nil {
		t.Fatalf("open action log: %v", err)
	}
	store, err := Open(cfg, key, actions)
	if err != nil {
		actions.Close()
		return nil, err
	}
	t.Cleanup(func() { store.Close() })
	return store, nil
}

func mustOpen(t *testing.T, cfg *config.Config, key secrets.Key) *Store {
	t.Helper()
	store, err := openStore(t, cfg, key)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return store
}

func TestAdd_AssignsSequentialIDs(t *testing.T) {
	store := mustOpen(t, testConfig(t), testKey(t))
	ctx := context.Background()

	first, err := store.Add(ctx, "buy milk")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if first.ID != 1 {
		t.Errorf("expected id 1, got %d", first.ID)
	}
	if first.Status != service.StatusTodo {
		t.Errorf("expected status todo, got %s", first.Status)
	}
	if first.CreatedAt.IsZero() || !first.CreatedAt.Equal(first.UpdatedAt) {
		t.Error("expected created_at == updated_at on a fresh task")
	}

	second, err := store.Add(ctx, "write report")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if second.ID != 2 {
		t.Errorf("expected id 2, got %d", second.ID)
	}
}

func TestAdd_EmptyDescription(t *testing.T) {
	store := mustOpen(t, testConfig(t), testKey(t))

	_, err := store.Add(context.Background(), "   ")
	if !errors.Is(err, service.ErrEmptyDescription) {
		t.Fatalf("expected ErrEmptyDescription, got %v", err)
	}
}

func TestList_IDOrderAndFilter(t *testing.T) {
	store := mustOpen(t, testConfig(t), testKey(t))
	ctx := context.Background()

	for _, desc := range []string{"one", "two", "three"} {
		if _, err := store.Add(ctx, desc); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	if _, err := store.SetStatus(ctx, 2, service.StatusDone); err != nil {
		t.Fatalf("set status: %v", err)
	}

	all, err := store.List(ctx, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(all))
	}
	for i, task := range all {
		if task.ID != int64(i+1) {
			t.Errorf("position %d: expected id %d, got %d", i, i+1, task.ID)
		}
	}

	done, err := store.List(ctx, service.StatusDone)
	if err != nil {
		t.Fatalf("list done: %v", err)
	}
	if len(done) != 1 || done[0].ID != 2 {
		t.Errorf("expected only task 2 done, got %+v", done)
	}

	if _, err := store.List(ctx, service.Status("bogus")); !errors.Is(err, service.ErrInvalidStatus) {
		t.Errorf("expected ErrInvalidStatus for bogus filter, got %v", err)
	}
}

func TestReload_RoundTrip(t *testing.T) {
	cfg := testConfig(t)
	key := testKey(t)
	ctx := context.Background()

	store := mustOpen(t, cfg, key)
	if _, err := store.Add(ctx, "persisted"); err != nil {
		t.Fatalf("add: %v", err)
	}
	store.Close()

	reopened := mustOpen(t, cfg, key)
	tasks, err := reopened.List(ctx, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Description != "persisted" {
		t.Fatalf("expected the persisted task back, got %+v", tasks)
	}
}

func TestDelete_IDNeverReused(t *testing.T) {
	cfg := testConfig(t)
	key := testKey(t)
	ctx := context.Background()

	store := mustOpen(t, cfg, key)
	for _, desc := range []string{"one", "two"} {
		if _, err := store.Add(ctx, desc); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	if err := store.Delete(ctx, 2); err != nil {
		t.Fatalf("delete: %v", err)
	}

	task, err := store.Add(ctx, "three")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if task.ID != 3 {
		t.Errorf("expected id 3 after deleting id 2, got %d", task.ID)
	}
	store.Close()

	// Monotonic across reloads too.
	reopened := mustOpen(t, cfg, key)
	task, err = reopened.Add(ctx, "four")
	if err != nil {
		t.Fatalf("add after reload: %v", err)
	}
	if task.ID != 4 {
		t.Errorf("expected id 4 after reload, got %d", task.ID)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	store := mustOpen(t, testConfig(t), testKey(t))

	_, err := store.Update(context.Background(), 42, "nope")
	if !errors.Is(err, service.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestSetStatus_BumpsUpdatedAt(t *testing.T) {
	store := mustOpen(t, testConfig(t), testKey(t))
	ctx := context.Background()

	task, err := store.Add(ctx, "buy milk")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	updated, err := store.SetStatus(ctx, task.ID, service.StatusDone)
	if err != nil {
		t.Fatalf("set status: %v", err)
	}
	if updated.Status != service.StatusDone {
		t.Errorf("expected done, got %s", updated.Status)
	}
	if !updated.UpdatedAt.After(task.UpdatedAt) {
		t.Error("expected updated_at to advance")
	}
	if !updated.CreatedAt.Equal(task.CreatedAt) {
		t.Error("created_at must not change")
	}
}

func TestMutation_OneBackupAndOneLogLine(t *testing.T) {
	cfg := testConfig(t)
	key := testKey(t)
	ctx := context.Background()
	store := mustOpen(t, cfg, key)

	backups := backup.New(cfg.BackupDirPath())
	countBackups := func() int {
		t.Helper()
		paths, err := backups.List()
		if err != nil {
			t.Fatalf("list backups: %v", err)
		}
		return len(paths)
	}
	countLogLines := func() int {
		t.Helper()
		data, err := os.ReadFile(cfg.LogPath())
		if err != nil {
			t.Fatalf("read log: %v", err)
		}
		return strings.Count(string(data), "\n")
	}

	// First write: no store file yet, so no backup, but one log line.
	if _, err := store.Add(ctx, "one"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if got := countBackups(); got != 0 {
		t.Errorf("first write: expected 0 backups, got %d", got)
	}
	if got := countLogLines(); got != 1 {
		t.Errorf("first write: expected 1 log line, got %d", got)
	}

	steps := []func() error{
		func() error { _, err := store.Add(ctx, "two"); return err },
		func() error { _, err := store.Update(ctx, 1, "one edited"); return err },
		func() error { _, err := store.SetStatus(ctx, 1, service.StatusInProgress); return err },
		func() error { return store.Delete(ctx, 2) },
	}
	for i, step := range steps {
		if err := step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if got := countBackups(); got != i+1 {
			t.Errorf("step %d: expected %d backups, got %d", i, i+1, got)
		}
		if got := countLogLines(); got != i+2 {
			t.Errorf("step %d: expected %d log lines, got %d", i, i+2, got)
		}
	}
}

func TestLoad_TamperedStoreFile(t *testing.T) {
	cfg := testConfig(t)
	key := testKey(t)

	store := mustOpen(t, cfg, key)
	if _, err := store.Add(context.Background(), "buy milk"); err != nil {
		t.Fatalf("add: %v", err)
	}
	store.Close()

	blob, err := os.ReadFile(cfg.StorePath())
	if err != nil {
		t.Fatalf("read store: %v", err)
	}
	blob[len(blob)/2] ^= 0x01
	if err := os.WriteFile(cfg.StorePath(), blob, 0o600); err != nil {
		t.Fatalf("write tampered store: %v", err)
	}

	_, err = openStore(t, cfg, key)
	if !errors.Is(err, secrets.ErrDecrypt) {
		t.Fatalf("expected ErrDecrypt for tampered store, got %v", err)
	}
}

func TestLoad_TruncatedStoreFile(t *testing.T) {
	cfg := testConfig(t)
	key := testKey(t)

	store := mustOpen(t, cfg, key)
	if _, err := store.Add(context.Background(), "buy milk"); err != nil {
		t.Fatalf("add: %v", err)
	}
	store.Close()

	if err := os.Truncate(cfg.StorePath(), 0); err != nil {
		t.Fatalf("truncate store: %v", err)
	}

	_, err := openStore(t, cfg, key)
	if !errors.Is(err, secrets.ErrDecrypt) {
		t.Fatalf("expected ErrDecrypt for truncated store, got %v", err)
	}
}

func TestLoad_WrongKey(t *testing.T) {
	cfg := testConfig(t)

	store := mustOpen(t, cfg, testKey(t))
	if _, err := store.Add(context.Background(), "buy milk"); err != nil {
		t.Fatalf("add: %v", err)
	}
	store.Close()

	_, err := openStore(t, cfg, testKey(t))
	if !errors.Is(err, secrets.ErrDecrypt) {
		t.Fatalf("expected ErrDecrypt for wrong key, got %v", err)
	}
}

func TestLoad_MissingDigestFile(t *testing.T) {
	cfg := testConfig(t)
	key := testKey(t)

	store := mustOpen(t, cfg, key)
	if _, err := store.Add(context.Background(), "buy milk"); err != nil {
		t.Fatalf("add: %v", err)
	}
	store.Close()

	if err := os.Remove(cfg.DigestPath()); err != nil {
		t.Fatalf("remove digest: %v", err)
	}

	_, err := openStore(t, cfg, key)
	if !errors.Is(err, secrets.ErrIntegrity) {
		t.Fatalf("expected ErrIntegrity without digest file, got %v", err)
	}
}

func TestLoad_DigestMismatch(t *testing.T) {
	cfg := testConfig(t)
	key := testKey(t)

	store := mustOpen(t, cfg, key)
	if _, err := store.Add(context.Background(), "buy milk"); err != nil {
		t.Fatalf("add: %v", err)
	}
	store.Close()

	wrong := secrets.Digest([]byte("something else entirely"))
	if err := os.WriteFile(cfg.DigestPath(), []byte(wrong+"\n"), 0o600); err != nil {
		t.Fatalf("write digest: %v", err)
	}

	_, err := openStore(t, cfg, key)
	if !errors.Is(err, secrets.ErrIntegrity) {
		t.Fatalf("expected ErrIntegrity for digest mismatch, got %v", err)
	}
}

func TestLoad_RejectsPayloadFailingSchema(t *testing.T) {
	cfg := testConfig(t)
	key := testKey(t)

	// A payload that decrypts and digests fine but carries a bogus status.
	plaintext := []byte(`{"version":1,"next_id":2,"tasks":[{"id":1,"description":"x","status":"bogus","created_at":"2026-08-26T00:00:00Z","updated_at":"2026-08-26T00:00:00Z"}]}`)
	blob, err := secrets.Encrypt(plaintext, key)
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if err := os.WriteFile(cfg.StorePath(), blob, 0o600); err != nil {
		t.Fatalf("write store: %v", err)
	}
	if err := os.WriteFile(cfg.DigestPath(), []byte(secrets.Digest(plaintext)+"\n"), 0o600); err != nil {
		t.Fatalf("write digest: %v", err)
	}

	_, err = openStore(t, cfg, key)
	if !errors.Is(err, secrets.ErrIntegrity) {
		t.Fatalf("expected ErrIntegrity for schema violation, got %v", err)
	}
}

func TestLoad_MissingStoreFileIsEmpty(t *testing.T) {
	store := mustOpen(t, testConfig(t), testKey(t))

	tasks, err := store.List(context.Background(), "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("expected empty collection, got %d tasks", len(tasks))
	}
}

func TestScenario_BuyMilk(t *testing.T) {
	cfg := testConfig(t)
	key := testKey(t)
	ctx := context.Background()
	store := mustOpen(t, cfg, key)

	task, err := store.Add(ctx, "buy milk")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if task.ID != 1 || task.Status != service.StatusTodo {
		t.Fatalf("expected task 1 todo, got %+v", task)
	}

	time.Sleep(10 * time.Millisecond)
	done, err := store.SetStatus(ctx, 1, service.StatusDone)
	if err != nil {
		t.Fatalf("mark done: %v", err)
	}
	if done.Status != service.StatusDone || !done.UpdatedAt.After(task.UpdatedAt) {
		t.Fatalf("expected done with bumped updated_at, got %+v", done)
	}

	filtered, err := store.List(ctx, service.StatusDone)
	if err != nil {
		t.Fatalf("list done: %v", err)
	}
	if len(filtered) != 1 || filtered[0].ID != 1 {
		t.Fatalf("expected exactly task 1, got %+v", filtered)
	}
}
