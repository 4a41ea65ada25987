package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/julianstephens/dawnlock/internal/constants"
	"github.com/julianstephens/dawnlock/internal/models"
)

// JSONStore keeps every record as a keyed JSON blob inside a single file.
// Timestamps are stored as raw millisecond numbers; structured records as
// JSON objects. Malformed blobs are treated the same as absent ones.
type JSONStore struct {
	path    string
	records map[string]json.RawMessage
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: ExpandPath(configPath),
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.records = make(map[string]json.RawMessage)
	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'dawnlock init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.records = make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &s.records); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) get(key string, v any) (bool, error) {
	if s.records == nil {
		return false, fmt.Errorf("storage not loaded")
	}
	raw, ok := s.records[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		// Corrupt blob reads as no data present.
		return false, nil
	}
	return true, nil
}

func (s *JSONStore) set(key string, v any) error {
	if s.records == nil {
		return fmt.Errorf("storage not loaded")
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to serialize %s: %w", key, err)
	}
	s.records[key] = raw
	return s.save()
}

func (s *JSONStore) delete(key string) error {
	if s.records == nil {
		return fmt.Errorf("storage not loaded")
	}
	if _, ok := s.records[key]; !ok {
		return nil
	}
	delete(s.records, key)
	return s.save()
}

func (s *JSONStore) getTimestamp(key string) (time.Time, bool, error) {
	var ms int64
	ok, err := s.get(key, &ms)
	if !ok || err != nil {
		return time.Time{}, false, err
	}
	return time.UnixMilli(ms), true, nil
}

func (s *JSONStore) GetSettings() (models.AppSettings, bool, error) {
	var settings models.AppSettings
	ok, err := s.get(constants.KeySettings, &settings)
	return settings, ok, err
}

func (s *JSONStore) SaveSettings(settings models.AppSettings) error {
	return s.set(constants.KeySettings, settings)
}

func (s *JSONStore) GetChecklistItems() ([]models.RoutineItem, bool, error) {
	var items []models.RoutineItem
	ok, err := s.get(constants.KeyChecklistItems, &items)
	return items, ok, err
}

func (s *JSONStore) SaveChecklistItems(items []models.RoutineItem) error {
	return s.set(constants.KeyChecklistItems, items)
}

func (s *JSONStore) GetChecklistStart() (time.Time, bool, error) {
	return s.getTimestamp(constants.KeyChecklistStart)
}

func (s *JSONStore) SaveChecklistStart(t time.Time) error {
	return s.set(constants.KeyChecklistStart, t.UnixMilli())
}

func (s *JSONStore) ClearChecklistStart() error {
	return s.delete(constants.KeyChecklistStart)
}

func (s *JSONStore) GetLastReset() (time.Time, bool, error) {
	return s.getTimestamp(constants.KeyLastReset)
}

func (s *JSONStore) SaveLastReset(t time.Time) error {
	return s.set(constants.KeyLastReset, t.UnixMilli())
}

func (s *JSONStore) GetHistory() ([]models.DailyRecord, bool, error) {
	var records []models.DailyRecord
	ok, err := s.get(constants.KeyHistory, &records)
	return records, ok, err
}

func (s *JSONStore) SaveHistory(records []models.DailyRecord) error {
	return s.set(constants.KeyHistory, records)
}

func (s *JSONStore) GetStreakCache() (models.StreakData, bool, error) {
	var streaks models.StreakData
	ok, err := s.get(constants.KeyStreakCache, &streaks)
	return streaks, ok, err
}

func (s *JSONStore) SaveStreakCache(streaks models.StreakData) error {
	return s.set(constants.KeyStreakCache, streaks)
}

func (s *JSONStore) GetLockState() (models.LockState, bool, error) {
	var state models.LockState
	ok, err := s.get(constants.KeyLockState, &state)
	return state, ok, err
}

func (s *JSONStore) SaveLockState(state models.LockState) error {
	return s.set(constants.KeyLockState, state)
}

func (s *JSONStore) ClearLockState() error {
	return s.delete(constants.KeyLockState)
}
