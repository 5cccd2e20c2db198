package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"modernc.org/sqlite" // Pure Go SQLite driver
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/vovakirdan/hoops/internal/leaderboard"
)

// errSchemaVersion reports a database written by a newer, unknown schema.
var errSchemaVersion = errors.New("unsupported schema version")

// isCorrupt reports whether err means the database content is unusable, as
// opposed to an I/O, locking or permission failure.
func isCorrupt(err error) bool {
	if errors.Is(err, errSchemaVersion) {
		return true
	}
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	// Extended result codes keep the primary code in the low byte
	switch sqliteErr.Code() & 0xff {
	case sqlite3.SQLITE_NOTADB, sqlite3.SQLITE_CORRUPT:
		return true
	}
	return false
}

// classify wraps err as a CorruptStoreError when the database is unusable.
func (s *SQLiteStore) classify(op string, err error) error {
	if isCorrupt(err) {
		return &leaderboard.CorruptStoreError{Path: s.path, Err: fmt.Errorf("%s: %w", op, err)}
	}
	return fmt.Errorf("storage: %s: %w", op, err)
}

// SQLiteStore keeps the leaderboard in a SQLite database.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// OpenSQLite creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func OpenSQLite(dbPath string) (*SQLiteStore, error) {
	dbPath, err := ExpandPath(dbPath)
	if err != nil {
		return nil, err
	}
	if dbPath == "" {
		return nil, fmt.Errorf("storage: empty database path")
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	store := &SQLiteStore{db: db, path: dbPath}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, store.classify("cannot connect to database", err)
	}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, store.classify("migration failed", err)
	}

	return store, nil
}

// migrate creates the schema if it doesn't exist and checks its version.
func (s *SQLiteStore) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS leaderboard_entries (
			position INTEGER PRIMARY KEY,
			score INTEGER NOT NULL CHECK (score >= 0),
			recorded_on TEXT NOT NULL
		);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return err
	}

	var version int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return err
	}
	switch version {
	case 0:
		_, err := s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", schemaVersion))
		return err
	case schemaVersion:
		return nil
	default:
		return fmt.Errorf("%w %d", errSchemaVersion, version)
	}
}

// Path returns the resolved database path.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Load reads the ranked entries.
func (s *SQLiteStore) Load() (leaderboard.Board, error) {
	rows, err := s.db.Query(
		`SELECT score, recorded_on
		 FROM leaderboard_entries
		 ORDER BY position`,
	)
	if err != nil {
		return leaderboard.Board{}, s.classify("cannot query leaderboard", err)
	}
	defer rows.Close()

	var entries []leaderboard.Entry
	for rows.Next() {
		var score int
		var recordedOn string
		if err := rows.Scan(&score, &recordedOn); err != nil {
			return leaderboard.Board{}, &leaderboard.CorruptStoreError{Path: s.path, Err: fmt.Errorf("scan row: %w", err)}
		}

		date, err := leaderboard.ParseDate(recordedOn)
		if err != nil {
			return leaderboard.Board{}, &leaderboard.CorruptStoreError{Path: s.path, Err: err}
		}
		entries = append(entries, leaderboard.Entry{Score: score, RecordedOn: date})
	}

	if err := rows.Err(); err != nil {
		return leaderboard.Board{}, s.classify("row iteration error", err)
	}

	b, err := leaderboard.FromEntries(entries)
	if err != nil {
		return leaderboard.Board{}, &leaderboard.CorruptStoreError{Path: s.path, Err: err}
	}
	return b, nil
}

// Save replaces every stored entry with b in a single transaction.
func (s *SQLiteStore) Save(b leaderboard.Board) error {
	tx, err := s.db.Begin()
	if err != nil {
		return &leaderboard.StoreWriteError{Path: s.path, Err: fmt.Errorf("begin transaction: %w", err)}
	}
	//nolint:errcheck // Rollback after Commit is a no-op
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM leaderboard_entries"); err != nil {
		return &leaderboard.StoreWriteError{Path: s.path, Err: fmt.Errorf("clear entries: %w", err)}
	}

	stmt, err := tx.Prepare("INSERT INTO leaderboard_entries (position, score, recorded_on) VALUES (?, ?, ?)")
	if err != nil {
		return &leaderboard.StoreWriteError{Path: s.path, Err: fmt.Errorf("prepare insert: %w", err)}
	}
	defer stmt.Close()

	for i, e := range b.Entries() {
		if _, err := stmt.Exec(i+1, e.Score, e.RecordedOn.String()); err != nil {
			return &leaderboard.StoreWriteError{Path: s.path, Err: fmt.Errorf("insert entry %d: %w", i+1, err)}
		}
	}

	if err := tx.Commit(); err != nil {
		return &leaderboard.StoreWriteError{Path: s.path, Err: fmt.Errorf("commit: %w", err)}
	}
	return nil
}

// Ensure both backends implement Store
var (
	_ Store = (*SQLiteStore)(nil)
	_ Store = (*FileStore)(nil)
)
