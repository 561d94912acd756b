package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	sq "github.com/Masterminds/squirrel"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// builder renders SQLite-flavoured statements.
var builder = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// runner is satisfied by both *sql.DB and *sql.Tx.
type runner interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Store holds the database handle and provides access to repositories.
type Store struct {
	db     *sql.DB
	policy HeartPolicy
}

// Open creates a new Store connected to the SQLite database at dsn.
// It applies recommended pragmas and creates missing tables.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One connection keeps in-memory databases alive and serializes writers.
	db.SetMaxOpenConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if err := migrate(context.Background(), db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &Store{db: db, policy: DefaultHeartPolicy()}, nil
}

// SetHeartPolicy replaces the heart cap and refill delay used when applying
// sessions and reading progress.
func (s *Store) SetHeartPolicy(p HeartPolicy) {
	s.policy = p
}

// HeartPolicy returns the policy in use.
func (s *Store) HeartPolicy() HeartPolicy {
	return s.policy
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ProgressRepo returns a ProgressRepo backed by this store.
func (s *Store) ProgressRepo() ProgressRepo {
	return &progressRepo{s: s}
}

// SessionEventRepo returns a SessionEventRepo backed by this store.
func (s *Store) SessionEventRepo() SessionEventRepo {
	return &sessionEventRepo{db: s.db}
}

// transact runs fn inside a transaction, committing when it returns nil.
func (s *Store) transact(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// applyPragmas configures SQLite for optimal single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS progress (
		user_id          TEXT    NOT NULL,
		language_id      TEXT    NOT NULL,
		xp               INTEGER NOT NULL DEFAULT 0,
		hearts           REAL    NOT NULL,
		hearts_reset_at  INTEGER NULL,
		streak           INTEGER NOT NULL DEFAULT 0,
		longest_streak   INTEGER NOT NULL DEFAULT 0,
		last_active_date TEXT    NOT NULL DEFAULT '',
		updated_at       INTEGER NOT NULL,
		PRIMARY KEY (user_id, language_id)
	)`,
	`CREATE TABLE IF NOT EXISTS completed_lessons (
		user_id      TEXT    NOT NULL,
		language_id  TEXT    NOT NULL,
		lesson_id    TEXT    NOT NULL,
		completed_at INTEGER NOT NULL,
		PRIMARY KEY (user_id, language_id, lesson_id),
		FOREIGN KEY (user_id, language_id) REFERENCES progress (user_id, language_id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS session_events (
		id            TEXT    PRIMARY KEY,
		user_id       TEXT    NOT NULL,
		language_id   TEXT    NOT NULL,
		lesson_id     TEXT    NOT NULL,
		xp_earned     INTEGER NOT NULL,
		hearts_lost   REAL    NOT NULL,
		hearts_gained REAL    NOT NULL,
		correct       INTEGER NOT NULL,
		total         INTEGER NOT NULL,
		attempts      INTEGER NOT NULL,
		started_at    INTEGER NOT NULL,
		finished_at   INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS session_events_user_finished
		ON session_events (user_id, finished_at DESC)`,
}

func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. $XDG_DATA_HOME/afrolingo/afrolingo.db
// 2. ~/.local/share/afrolingo/afrolingo.db
func DefaultDBPath() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "afrolingo", "afrolingo.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
