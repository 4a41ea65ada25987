package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/dawnlock/internal/constants"
	"github.com/julianstephens/dawnlock/internal/models"
)

// SQLiteStore persists the keyed records in a single key/value table, one
// JSON blob per key.
type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: ExpandPath(path),
	}
}

// ExpandPath resolves a leading "~/" against the user's home directory.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

func (s *SQLiteStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	_, err = s.db.Exec(`
		CREATE TABLE IF NOT EXISTS records (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("failed to create records table: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'dawnlock init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}

func (s *SQLiteStore) get(key string, v any) (bool, error) {
	if s.db == nil {
		return false, fmt.Errorf("storage not loaded")
	}
	var raw string
	err := s.db.QueryRow("SELECT value FROM records WHERE key = ?", key).Scan(&raw)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		// Corrupt blob reads as no data present.
		return false, nil
	}
	return true, nil
}

func (s *SQLiteStore) set(key string, v any) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to serialize %s: %w", key, err)
	}
	_, err = s.db.Exec(`
		INSERT INTO records (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, string(raw))
	return err
}

func (s *SQLiteStore) delete(key string) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}
	_, err := s.db.Exec("DELETE FROM records WHERE key = ?", key)
	return err
}

func (s *SQLiteStore) getTimestamp(key string) (time.Time, bool, error) {
	var ms int64
	ok, err := s.get(key, &ms)
	if !ok || err != nil {
		return time.Time{}, false, err
	}
	return time.UnixMilli(ms), true, nil
}

func (s *SQLiteStore) GetSettings() (models.AppSettings, bool, error) {
	var settings models.AppSettings
	ok, err := s.get(constants.KeySettings, &settings)
	return settings, ok, err
}

func (s *SQLiteStore) SaveSettings(settings models.AppSettings) error {
	return s.set(constants.KeySettings, settings)
}

func (s *SQLiteStore) GetChecklistItems() ([]models.RoutineItem, bool, error) {
	var items []models.RoutineItem
	ok, err := s.get(constants.KeyChecklistItems, &items)
	return items, ok, err
}

func (s *SQLiteStore) SaveChecklistItems(items []models.RoutineItem) error {
	return s.set(constants.KeyChecklistItems, items)
}

func (s *SQLiteStore) GetChecklistStart() (time.Time, bool, error) {
	return s.getTimestamp(constants.KeyChecklistStart)
}

func (s *SQLiteStore) SaveChecklistStart(t time.Time) error {
	return s.set(constants.KeyChecklistStart, t.UnixMilli())
}

func (s *SQLiteStore) ClearChecklistStart() error {
	return s.delete(constants.KeyChecklistStart)
}

func (s *SQLiteStore) GetLastReset() (time.Time, bool, error) {
	return s.getTimestamp(constants.KeyLastReset)
}

func (s *SQLiteStore) SaveLastReset(t time.Time) error {
	return s.set(constants.KeyLastReset, t.UnixMilli())
}

func (s *SQLiteStore) GetHistory() ([]models.DailyRecord, bool, error) {
	var records []models.DailyRecord
	ok, err := s.get(constants.KeyHistory, &records)
	return records, ok, err
}

func (s *SQLiteStore) SaveHistory(records []models.DailyRecord) error {
	return s.set(constants.KeyHistory, records)
}

func (s *SQLiteStore) GetStreakCache() (models.StreakData, bool, error) {
	var streaks models.StreakData
	ok, err := s.get(constants.KeyStreakCache, &streaks)
	return streaks, ok, err
}

func (s *SQLiteStore) SaveStreakCache(streaks models.StreakData) error {
	return s.set(constants.KeyStreakCache, streaks)
}

func (s *SQLiteStore) GetLockState() (models.LockState, bool, error) {
	var state models.LockState
	ok, err := s.get(constants.KeyLockState, &state)
	return state, ok, err
}

func (s *SQLiteStore) SaveLockState(state models.LockState) error {
	return s.set(constants.KeyLockState, state)
}

func (s *SQLiteStore) ClearLockState() error {
	return s.delete(constants.KeyLockState)
}
