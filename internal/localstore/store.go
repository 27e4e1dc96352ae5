// Package localstore provides persistent key/value storage backed by SQLite.
// It holds JSON-serialized snapshots of each entity collection and the
// saved session, used when no authenticated session exists or when the
// hosted backend is unreachable.
package localstore

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// Fixed keys, one JSON array per entity collection.
const (
	KeyProperties = "rental-properties"
	KeyTenants    = "rental-tenants"
	KeyPayments   = "rental-payments"
	KeyChecklists = "rental-checklists"
	KeyComments   = "rental-comments"
	KeySession    = "rental-session"
)

// CollectionKeys lists the entity snapshot keys. The session key is
// excluded: clearing collections must not log the user out.
var CollectionKeys = []string{
	KeyProperties, KeyTenants, KeyPayments, KeyChecklists, KeyComments,
}

// Store is a SQLite-backed key/value store.
type Store struct {
	db *sql.DB
}

// DefaultPath returns the default database path: ~/.rentkit/rentkit.db
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".rentkit", "rentkit.db"), nil
}

// Open opens (or creates) the store at the given path, enables WAL mode,
// and runs migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating store directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	if err := configure(db); err != nil {
		closeErr := db.Close()
		if closeErr != nil {
			return nil, fmt.Errorf("%w (also failed to close: %v)", err, closeErr)
		}
		return nil, err
	}

	if err := migrate(db); err != nil {
		closeErr := db.Close()
		if closeErr != nil {
			return nil, fmt.Errorf("running migrations: %w (also failed to close: %v)", err, closeErr)
		}
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return &Store{db: db}, nil
}

// configure sets SQLite pragmas for WAL mode and busy timeout.
func configure(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	}

	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("executing %s: %w", p, err)
		}
	}

	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("closing store: %w", err)
	}
	return nil
}

// Get returns the value stored under key. The second return is false if
// the key is absent.
func (s *Store) Get(key string) ([]byte, bool, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading key %s: %w", key, err)
	}
	return []byte(value), true, nil
}

// Put stores value under key, replacing any previous value.
func (s *Store) Put(key string, value []byte) error {
	if _, err := s.db.Exec(
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, string(value),
	); err != nil {
		return fmt.Errorf("writing key %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is a no-op.
func (s *Store) Delete(key string) error {
	if _, err := s.db.Exec("DELETE FROM kv WHERE key = ?", key); err != nil {
		return fmt.Errorf("deleting key %s: %w", key, err)
	}
	return nil
}

// ClearCollections removes every entity snapshot key. Called on sign-out
// so no record owned by the previous account survives on this device.
func (s *Store) ClearCollections() error {
	for _, key := range CollectionKeys {
		if err := s.Delete(key); err != nil {
			return err
		}
	}
	return nil
}
