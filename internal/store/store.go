// Package store persists a project's backlog in SQLite: flattened rows for
// sections and items, and the reconciled type configuration as JSON. The
// markdown file stays the source of truth; the store is derived from it on
// every sync, so schema mismatches are handled by dropping and recreating.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3" // sqlite3 driver
)

// currentSchemaVersion is stored in SQLite's user_version pragma.
// Increment it whenever tables, columns, or indices change; a mismatch
// triggers a full drop-and-recreate on Open.
const currentSchemaVersion = 1

// DBFileName is the SQLite file created inside the project data directory.
const DBFileName = "backlog.sqlite"

const dirPerms = 0o750

// ErrItemNotFound is returned by GetItem for an unknown item id.
var ErrItemNotFound = errors.New("item not found")

// Store holds the per-project SQLite handle.
type Store struct {
	dir string
	sql *sql.DB
}

// Open initializes the store inside the given data directory, creating the
// directory, the database file, and the schema as needed.
func Open(ctx context.Context, dir string) (*Store, error) {
	if ctx == nil {
		return nil, errors.New("open store: context is nil")
	}

	if dir == "" {
		return nil, errors.New("open store: directory is empty")
	}

	dataDir := filepath.Clean(dir)

	err := os.MkdirAll(dataDir, dirPerms)
	if err != nil {
		return nil, fmt.Errorf("open store: create data directory: %w", err)
	}

	db, err := openSqlite(ctx, filepath.Join(dataDir, DBFileName))
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	version, err := storedSchemaVersion(ctx, db)
	if err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("open store: %w", err)
	}

	if version != currentSchemaVersion {
		err = recreateSchema(ctx, db)
		if err != nil {
			_ = db.Close()

			return nil, fmt.Errorf("open store: %w", err)
		}
	}

	return &Store{dir: dataDir, sql: db}, nil
}

// Close releases the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sql == nil {
		return nil
	}

	err := s.sql.Close()
	if err != nil {
		return fmt.Errorf("close store: %w", err)
	}

	return nil
}

// EnsureProject records the project row on first use. Subsequent calls leave
// the existing row untouched.
func (s *Store) EnsureProject(ctx context.Context, name string) error {
	_, err := s.sql.ExecContext(ctx,
		`INSERT OR IGNORE INTO project (id, name, created_at) VALUES (1, ?, ?)`,
		name, time.Now().UTC().Unix())
	if err != nil {
		return fmt.Errorf("ensure project: %w", err)
	}

	return nil
}

// ProjectName returns the stored project name, or "" when no project row
// exists yet.
func (s *Store) ProjectName(ctx context.Context) (string, error) {
	row := s.sql.QueryRowContext(ctx, `SELECT name FROM project WHERE id = 1`)

	var name string

	err := row.Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}

	if err != nil {
		return "", fmt.Errorf("read project name: %w", err)
	}

	return name, nil
}

func openSqlite(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	err = db.PingContext(ctx)
	if err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	err = applyPragmas(ctx, db)
	if err != nil {
		_ = db.Close()

		return nil, err
	}

	return db, nil
}

// sqliteBusyTimeout is how long SQLite waits on a locked database before
// returning SQLITE_BUSY, in milliseconds.
const sqliteBusyTimeout = 10000

func applyPragmas(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, fmt.Sprintf(`
		PRAGMA busy_timeout = %d;
		PRAGMA journal_mode = WAL;
		PRAGMA synchronous = FULL;
		PRAGMA foreign_keys = ON;
		PRAGMA temp_store = MEMORY;
	`, sqliteBusyTimeout))
	if err != nil {
		return fmt.Errorf("apply pragmas: %w", err)
	}

	return nil
}

func storedSchemaVersion(ctx context.Context, db *sql.DB) (int, error) {
	row := db.QueryRowContext(ctx, "PRAGMA user_version")

	var version int

	err := row.Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("read user_version: %w", err)
	}

	return version, nil
}

// recreateSchema drops and recreates all tables inside one transaction.
// The store is derived from the markdown file, so this loses nothing the
// next sync cannot restore.
func recreateSchema(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema txn: %w", err)
	}

	statements := []string{
		"DROP TABLE IF EXISTS backlog_items",
		"DROP TABLE IF EXISTS sections",
		"DROP TABLE IF EXISTS type_config",
		"DROP TABLE IF EXISTS project",
		`CREATE TABLE project (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			name TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			synced_at INTEGER
		)`,
		`CREATE TABLE sections (
			ordinal INTEGER PRIMARY KEY,
			display_id INTEGER NOT NULL,
			title TEXT NOT NULL,
			raw_header TEXT NOT NULL
		)`,
		`CREATE TABLE backlog_items (
			id TEXT PRIMARY KEY,
			type TEXT NOT NULL,
			number INTEGER NOT NULL,
			section_ordinal INTEGER NOT NULL REFERENCES sections(ordinal) ON DELETE CASCADE,
			section_index INTEGER NOT NULL,
			title TEXT NOT NULL,
			emoji TEXT NOT NULL DEFAULT '',
			component TEXT NOT NULL DEFAULT '',
			severity TEXT NOT NULL DEFAULT '',
			priority TEXT NOT NULL DEFAULT '',
			effort TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			user_story TEXT NOT NULL DEFAULT '',
			criteria_total INTEGER NOT NULL DEFAULT 0,
			criteria_done INTEGER NOT NULL DEFAULT 0,
			from_table INTEGER NOT NULL DEFAULT 0,
			raw_markdown TEXT NOT NULL
		)`,
		"CREATE INDEX idx_items_type ON backlog_items(type)",
		"CREATE INDEX idx_items_section ON backlog_items(section_ordinal, section_index)",
		`CREATE TABLE type_config (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			json TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		)`,
		fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion),
	}

	for _, stmt := range statements {
		_, err = tx.ExecContext(ctx, stmt)
		if err != nil {
			_ = tx.Rollback()

			return fmt.Errorf("schema statement: %w", err)
		}
	}

	err = tx.Commit()
	if err != nil {
		return fmt.Errorf("commit schema txn: %w", err)
	}

	return nil
}
