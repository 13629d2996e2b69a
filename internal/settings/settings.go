// Package settings persists the few values that survive a session, in a
// small SQLite key-value table. Right now that is exactly one value: the
// debug system-prompt override passed through to the narrator.
package settings

import (
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

// SystemPromptKey is the fixed key the debug prompt override lives under.
const SystemPromptKey = "debug_system_prompt"

const schema = `
CREATE TABLE IF NOT EXISTS settings (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);`

// Store is a SQLite-backed key-value store.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the settings database at path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("settings path is required")
	}

	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open settings db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping settings db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create settings schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Get returns the value stored under key, or "" when the key is unset.
func (s *Store) Get(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, nil
}

// Set upserts the value under key. Writing an empty string clears the
// key entirely.
func (s *Store) Set(key, value string) error {
	if value == "" {
		if _, err := s.db.Exec(`DELETE FROM settings WHERE key = ?`, key); err != nil {
			return fmt.Errorf("clear setting %q: %w", key, err)
		}
		return nil
	}
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("set setting %q: %w", key, err)
	}
	return nil
}

// SystemPrompt returns the persisted debug prompt override, "" when none
// is set. Errors degrade to "" so a broken settings file never blocks
// play; they are the caller's to log if it cares.
func (s *Store) SystemPrompt() string {
	value, err := s.Get(SystemPromptKey)
	if err != nil {
		return ""
	}
	return value
}

// SetSystemPrompt stores the debug prompt override; "" clears it.
func (s *Store) SetSystemPrompt(value string) error {
	return s.Set(SystemPromptKey, value)
}
