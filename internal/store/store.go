// Package store persists the three record collections (deconstruction
// history, generated notes, generated scripts) in a local SQLite database.
// Each collection lives in one keyed slot as a JSON array; a mutation always
// rewrites the whole slot, so there is no partial-write state to recover.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"trendremix/internal/types"
)

const (
	slotHistory = "deconstruct_history"
	slotNotes   = "generated_notes"
	slotScripts = "generated_scripts"
)

// Store is the durable local store. Safe for use from a single control flow;
// the mutex guards against accidental concurrent CLI invocations sharing a
// process, not a real concurrency model.
type Store struct {
	db   *sql.DB
	mu   sync.Mutex
	path string
	log  *zap.Logger
}

// Open initializes the SQLite database at path, creating the parent
// directory and schema when missing.
func Open(path string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		log.Debug("failed to set sqlite busy_timeout", zap.Error(err))
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		log.Debug("failed to set sqlite journal_mode=WAL", zap.Error(err))
	}

	s := &Store{db: db, path: path, log: log}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	log.Debug("store opened", zap.String("path", path))
	return s, nil
}

func (s *Store) initialize() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS collections (
			slot       TEXT PRIMARY KEY,
			payload    TEXT NOT NULL,
			updated_at INTEGER NOT NULL DEFAULT (strftime('%s','now'))
		)`)
	if err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

// History loads the deconstruction history, newest first.
func (s *Store) History() ([]types.DeconstructedNote, error) {
	return loadSlot[types.DeconstructedNote](s, slotHistory)
}

// SaveHistory rewrites the deconstruction history slot.
func (s *Store) SaveHistory(items []types.DeconstructedNote) error {
	return saveSlot(s, slotHistory, items)
}

// Notes loads the generated notes collection.
func (s *Store) Notes() ([]types.GeneratedNote, error) {
	return loadSlot[types.GeneratedNote](s, slotNotes)
}

// SaveNotes rewrites the generated notes slot.
func (s *Store) SaveNotes(items []types.GeneratedNote) error {
	return saveSlot(s, slotNotes, items)
}

// Scripts loads the generated scripts collection.
func (s *Store) Scripts() ([]types.GeneratedScript, error) {
	return loadSlot[types.GeneratedScript](s, slotScripts)
}

// SaveScripts rewrites the generated scripts slot.
func (s *Store) SaveScripts(items []types.GeneratedScript) error {
	return saveSlot(s, slotScripts, items)
}

// loadSlot reads one collection. A missing slot is an empty collection;
// a corrupt payload is logged and treated as empty.
func loadSlot[T any](s *Store, slot string) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var payload string
	err := s.db.QueryRow("SELECT payload FROM collections WHERE slot = ?", slot).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, types.Storagef(err, "failed to read %s", slot)
	}

	var items []T
	if err := json.Unmarshal([]byte(payload), &items); err != nil {
		s.log.Warn("discarding corrupt collection payload",
			zap.String("slot", slot), zap.Error(err))
		return nil, nil
	}
	return items, nil
}

// saveSlot rewrites one collection in full.
func saveSlot[T any](s *Store, slot string, items []T) error {
	if items == nil {
		items = []T{}
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return types.Storagef(err, "failed to encode %s", slot)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.Exec(`
		INSERT INTO collections (slot, payload, updated_at)
		VALUES (?, ?, strftime('%s','now'))
		ON CONFLICT(slot) DO UPDATE SET
			payload = excluded.payload,
			updated_at = excluded.updated_at`,
		slot, string(payload))
	if err != nil {
		return types.Storagef(err, "failed to write %s", slot)
	}
	return nil
}
