package services

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/dawnlock/internal/utils"
)

// PhotoRecord is the marker left behind by a photo verification. The core
// only ever consumes the boolean "a photo exists for this tag today".
type PhotoRecord struct {
	ID      string    `json:"id"`
	Tag     string    `json:"tag"`
	TakenAt time.Time `json:"taken_at"`
}

// PhotoService verifies photo-backed routine items.
type PhotoService interface {
	TakePhoto(tag string) (*PhotoRecord, error)
	HasPhotoToday(tag string) bool
}

// DirPhotoService stores one marker file per (day, tag) under a photos
// directory. It stands in for a platform camera binding: the capture itself
// is out of scope, the daily verification signal is not.
type DirPhotoService struct {
	dir string
	now func() time.Time
}

func NewDirPhotoService(dir string) *DirPhotoService {
	return &DirPhotoService{
		dir: dir,
		now: time.Now,
	}
}

func (s *DirPhotoService) markerPath(tag string, t time.Time) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s-%s.json", utils.DateKey(t), tag))
}

func (s *DirPhotoService) TakePhoto(tag string) (*PhotoRecord, error) {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create photos directory: %w", err)
	}

	record := &PhotoRecord{
		ID:      uuid.New().String(),
		Tag:     tag,
		TakenAt: s.now(),
	}
	data, err := json.Marshal(record)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(s.markerPath(tag, record.TakenAt), data, 0600); err != nil {
		return nil, fmt.Errorf("failed to write photo marker: %w", err)
	}
	return record, nil
}

func (s *DirPhotoService) HasPhotoToday(tag string) bool {
	_, err := os.Stat(s.markerPath(tag, s.now()))
	return err == nil
}
