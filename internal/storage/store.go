package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Collection names, one table per aggregate type.
const (
	BudgetCollection   = "budgets"
	PaymentCollection  = "payment_items"
	AppStateCollection = "app_state"
)

// Store locates the embedded document database. It holds no open handle:
// every operation opens a short-lived connection and releases it on every
// exit path, so no state survives across calls. The path is an opaque
// string, relative or absolute.
type Store struct {
	path string
}

// Open prepares the store at path: creates the parent directory if missing
// and runs schema migrations. No connection outlives the call.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}

	if err := runMigrations(path); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{path: path}, nil
}

// Path returns the store location as configured.
func (s *Store) Path() string { return s.path }

// acquire opens a connection scoped to one logical operation. The caller
// must close it on every exit path. busy_timeout keeps concurrent
// short-lived connections from failing spuriously on the file lock.
func (s *Store) acquire(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}

	return db, nil
}
