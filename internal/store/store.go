package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

const currentVersion = 1

// Store persists every FocusKit record as a JSON blob under a well-known
// string key. It is the single source of truth for history; the engines keep
// only transient state and re-derive everything else from here.
type Store struct {
	db  *sql.DB
	log *zap.Logger
}

// New opens (or creates) the SQLite database at dbPath and runs migrations.
func New(dbPath string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// One connection: every read-modify-write of a key is serialized.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db, log: log}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// NewMemory creates an in-memory store for testing.
func NewMemory(log *zap.Logger) (*Store, error) {
	return New(":memory:", log)
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	var version int
	err := s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}

	if version >= currentVersion {
		return nil
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	_, err = s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentVersion))
	return err
}

func (s *Store) migrateV1() error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS records (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(ddl)
	return err
}

// get returns the raw blob for key, reporting absence without an error.
func (s *Store) get(key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.QueryRow(`SELECT value FROM records WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get record %q: %w", key, err)
	}
	return value, true, nil
}

func (s *Store) put(key string, value []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO records (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("put record %q: %w", key, err)
	}
	return nil
}

// Delete removes the record stored under key. Missing keys are a no-op.
func (s *Store) Delete(key string) error {
	_, err := s.db.Exec(`DELETE FROM records WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("delete record %q: %w", key, err)
	}
	return nil
}

// loadList decodes the slice stored under key. A missing key or an
// undecodable blob is treated as empty: history that cannot be read degrades
// to "no history", never to a hard failure.
func loadList[T any](s *Store, key string) []T {
	raw, ok, err := s.get(key)
	if err != nil {
		s.log.Warn("read records failed, treating as empty",
			zap.String("key", key), zap.Error(err))
		return nil
	}
	if !ok {
		return nil
	}
	var list []T
	if err := json.Unmarshal(raw, &list); err != nil {
		s.log.Warn("decode records failed, treating as empty",
			zap.String("key", key), zap.Error(err))
		return nil
	}
	return list
}

func saveList[T any](s *Store, key string, list []T) error {
	if list == nil {
		list = []T{}
	}
	raw, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode records %q: %w", key, err)
	}
	return s.put(key, raw)
}

// loadOne decodes the single record stored under key.
func loadOne[T any](s *Store, key string) (T, bool) {
	var v T
	raw, ok, err := s.get(key)
	if err != nil {
		s.log.Warn("read record failed, treating as absent",
			zap.String("key", key), zap.Error(err))
		return v, false
	}
	if !ok {
		return v, false
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		s.log.Warn("decode record failed, treating as absent",
			zap.String("key", key), zap.Error(err))
		var zero T
		return zero, false
	}
	return v, true
}

func saveOne[T any](s *Store, key string, v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode record %q: %w", key, err)
	}
	return s.put(key, raw)
}

// Snapshot is a point-in-time read of the full history, used by the
// pull-based consumers (statistics, achievements).
type Snapshot struct {
	Sessions    []Session
	Habits      []Habit
	Completions []HabitCompletion
	Notes       []Note
	Scores      []GameScore
}

func (s *Store) Snapshot() Snapshot {
	return Snapshot{
		Sessions:    s.Sessions(),
		Habits:      s.Habits(),
		Completions: s.Completions(),
		Notes:       s.Notes(),
		Scores:      s.GameScores(),
	}
}

// DefaultDBPath returns ~/.config/focuskit/focuskit.db
func DefaultDBPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "focuskit", "focuskit.db"), nil
}
