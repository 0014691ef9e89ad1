// Package prefs persists the shell's last tech selection and camera mode in a
// small SQLite database under the state directory.
package prefs

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite"
)

// FileName is the database file name inside the state directory.
const FileName = "prefs.db"

const (
	keyTechIndex  = "tech_index"
	keyCameraMode = "camera_mode"
)

//go:embed schema.sql
var schemaSQL string

// Selection is what the shell restores on the next run.
type Selection struct {
	// TechIndex is -1 when no tech panel was ever selected.
	TechIndex  int
	CameraMode string
}

// Store is a SQLite-backed preference store.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the store at {dir}/prefs.db.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}
	return OpenPath(filepath.Join(dir, FileName))
}

// OpenPath opens the store at an explicit path. ":memory:" is accepted.
func OpenPath(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open preferences: %w", err)
	}
	// A single connection keeps ":memory:" databases alive and serializes writes.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize preferences schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Load returns the stored selection. ok is false when nothing was saved yet.
func (s *Store) Load(ctx context.Context) (sel Selection, ok bool, err error) {
	sel = Selection{TechIndex: -1}

	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM preferences WHERE key IN (?, ?)`, keyTechIndex, keyCameraMode)
	if err != nil {
		return sel, false, fmt.Errorf("failed to load preferences: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return sel, false, fmt.Errorf("failed to scan preference: %w", err)
		}
		ok = true
		switch key {
		case keyTechIndex:
			idx, convErr := strconv.Atoi(value)
			if convErr != nil {
				return sel, false, fmt.Errorf("corrupt %s preference %q: %w", key, value, convErr)
			}
			sel.TechIndex = idx
		case keyCameraMode:
			sel.CameraMode = value
		}
	}
	if err := rows.Err(); err != nil {
		return sel, false, fmt.Errorf("failed to read preferences: %w", err)
	}
	return sel, ok, nil
}

// Save writes the selection in one transaction.
func (s *Store) Save(ctx context.Context, sel Selection) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin preferences transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().Unix()
	const upsert = `INSERT INTO preferences (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

	values := map[string]string{
		keyTechIndex:  strconv.Itoa(sel.TechIndex),
		keyCameraMode: sel.CameraMode,
	}
	for key, value := range values {
		if _, err := tx.ExecContext(ctx, upsert, key, value, now); err != nil {
			return fmt.Errorf("failed to save %s preference: %w", key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit preferences: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
