package database

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"entgo.io/ent/dialect"

	"github.com/eslsoft/atservices/internal/infrastructure/config"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	cfg := &config.Config{Database: config.DatabaseConfig{
		Driver: "sqlite3",
		DSN:    "file:" + filepath.Join(t.TempDir(), "store.db") + "?_fk=1",
	}}
	store, cleanup, err := NewStore(cfg, nil)
	if err != nil {
		t.Skipf("sqlite driver not available: %v", err)
	}
	t.Cleanup(cleanup)
	return store
}

func TestNewStoreSQLite(t *testing.T) {
	store := openTestStore(t)
	if store.Dialect != dialect.SQLite {
		t.Fatalf("unexpected dialect %q", store.Dialect)
	}
}

func TestInTxRollsBackOnError(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	if _, err := store.DB.ExecContext(ctx, "CREATE TABLE items (name TEXT)"); err != nil {
		t.Fatalf("create table: %v", err)
	}

	boom := errors.New("boom")
	err := store.InTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "INSERT INTO items (name) VALUES ('a')"); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	var count int
	if err := store.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM items").Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected rollback, found %d rows", count)
	}

	if err := store.InTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, "INSERT INTO items (name) VALUES ('b')")
		return err
	}); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if err := store.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM items").Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 committed row, found %d", count)
	}
}

func TestNewStoreRejectsUnknownDriver(t *testing.T) {
	cfg := &config.Config{Database: config.DatabaseConfig{Driver: "mssql"}}
	if _, _, err := NewStore(cfg, nil); err == nil {
		t.Fatalf("expected error")
	}
}

func TestNewStorePureGoSQLite(t *testing.T) {
	cfg := &config.Config{Database: config.DatabaseConfig{
		Driver: config.DriverSQLitePure,
		DSN:    "file:" + filepath.Join(t.TempDir(), "pure.db") + "?_time_format=sqlite",
	}}
	store, cleanup, err := NewStore(cfg, nil)
	if err != nil {
		t.Fatalf("open pure go sqlite: %v", err)
	}
	defer cleanup()
	if store.Dialect != dialect.SQLite {
		t.Fatalf("unexpected dialect %q", store.Dialect)
	}
	var fk int
	if err := store.DB.QueryRow("PRAGMA foreign_keys").Scan(&fk); err != nil {
		t.Fatalf("read pragma: %v", err)
	}
	if fk != 1 {
		t.Fatalf("expected foreign keys enabled, got %d", fk)
	}
}
