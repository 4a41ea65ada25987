package services

import (
	"testing"
	"time"
)

func TestPhotoMarkerPerDay(t *testing.T) {
	svc := NewDirPhotoService(t.TempDir())
	current := time.Date(2025, 3, 5, 8, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return current }

	if svc.HasPhotoToday("make_bed") {
		t.Error("HasPhotoToday() = true before any photo")
	}

	record, err := svc.TakePhoto("make_bed")
	if err != nil {
		t.Fatalf("TakePhoto() error = %v", err)
	}
	if record.ID == "" {
		t.Error("photo record has no ID")
	}
	if !svc.HasPhotoToday("make_bed") {
		t.Error("HasPhotoToday() = false after taking a photo")
	}
	if svc.HasPhotoToday("skincare") {
		t.Error("photo leaked across tags")
	}

	// A marker never carries over to the next day.
	current = current.AddDate(0, 0, 1)
	if svc.HasPhotoToday("make_bed") {
		t.Error("yesterday's photo counted for today")
	}
}
