// Package sqlstore persists the current list in an embedded SQLite
// database. It is a single-record store: one fixed key holding the
// same encoded token text that share links carry, so both persistence
// paths share one wire format.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"github.com/idilsaglam/shoplist/internal/codec"
	"github.com/idilsaglam/shoplist/internal/model"
)

const (
	dataFileName = "shoplist.sqlite3"
	recordKey    = "current_list_data"
)

// Store lazily opens the database on first use. Repeated opens are
// safe and cheap; a failed open is remembered so an unavailable host
// environment degrades to "nothing stored" instead of erroring on
// every call.
type Store struct {
	path string

	mu      sync.Mutex
	db      *sql.DB
	openErr error
	opened  bool
}

// New returns a store backed by the database file at path. An empty
// path selects ~/.shoplist/shoplist.sqlite3. Nothing is opened yet.
func New(path string) *Store {
	return &Store{path: path}
}

// DefaultPath returns the per-user database location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home: %w", err)
	}
	return filepath.Join(home, ".shoplist", dataFileName), nil
}

func (s *Store) ensure() (*sql.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.opened {
		return s.db, s.openErr
	}
	s.opened = true
	s.db, s.openErr = open(s.path)
	return s.db, s.openErr
}

func open(path string) (*sql.DB, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("mkdir: %w", err)
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// SQLite supports one writer at a time; a single connection avoids
	// SQLITE_BUSY on rapid consecutive flushes.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec(
		`CREATE TABLE IF NOT EXISTS shopping_list (
			key   TEXT NOT NULL PRIMARY KEY,
			token TEXT NOT NULL
		)`,
	); err != nil {
		db.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}
	return db, nil
}

// Save upserts the encoded form of items under the fixed key, or
// deletes the record when the list is empty so a cleared list stays
// cleared after reload.
func (s *Store) Save(ctx context.Context, items []model.Item) error {
	db, err := s.ensure()
	if err != nil {
		return err
	}
	token := codec.Encode(items)
	if token == "" {
		if _, err := db.ExecContext(ctx,
			`DELETE FROM shopping_list WHERE key = ?`, recordKey); err != nil {
			return fmt.Errorf("delete record: %w", err)
		}
		return nil
	}
	if _, err := db.ExecContext(ctx,
		`INSERT INTO shopping_list (key, token) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET token = excluded.token`,
		recordKey, token); err != nil {
		return fmt.Errorf("upsert record: %w", err)
	}
	return nil
}

// Load reads the stored list. found is false when nothing is stored,
// which is distinct from a stored empty list; callers use that to tell
// a first run from a deliberate clear. An unparseable stored value
// degrades to an empty list through the codec's total decode.
func (s *Store) Load(ctx context.Context) (items []model.Item, found bool, err error) {
	db, err := s.ensure()
	if err != nil {
		return nil, false, err
	}
	var token string
	err = db.QueryRowContext(ctx,
		`SELECT token FROM shopping_list WHERE key = ?`, recordKey).Scan(&token)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read record: %w", err)
	}
	return codec.Decode(token), true, nil
}

// Close releases the database handle if one was ever opened.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	s.opened = false
	return err
}
