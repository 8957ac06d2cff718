package blob

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Versioned keys, one JSON array per entity kind
const (
	KeyCandidatures  = "candidatures_v3"
	KeyReminders     = "reminders_v1"
	KeyAutomation    = "automation_v1"
	KeyNotifications = "notifications_v1"
	KeyDismissed     = "dismissed_v1"
)

// KV is the persistence collaborator the engine components write through.
// Writes are best-effort; callers log failures and keep going.
type KV interface {
	Get(key string) ([]byte, bool, error)
	Put(key string, value []byte) error
}

// Store is a versioned-key JSON blob store backed by SQLite
type Store struct {
	db *sql.DB
}

// Open creates the data directory if needed and opens the blob database
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dir, "jobpipe.db")

	// Open with DSN options for SQLite pragmas
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

// DB exposes the underlying handle for lifecycle management
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// runMigrations creates all necessary tables
func runMigrations(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS blobs (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`

	_, err := db.Exec(schema)
	return err
}

// Get returns the stored value for key; ok is false when the key is absent
func (s *Store) Get(key string) ([]byte, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM blobs WHERE key=?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(value), true, nil
}

// Put stores value under key, replacing any previous value
func (s *Store) Put(key string, value []byte) error {
	query := `INSERT OR REPLACE INTO blobs (key, value, updated_at) VALUES (?, ?, ?)`
	_, err := s.db.Exec(query, key, string(value), time.Now())
	return err
}
