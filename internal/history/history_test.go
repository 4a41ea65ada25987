package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/dawnlock/internal/models"
	"github.com/julianstephens/dawnlock/internal/storage"
	"github.com/julianstephens/dawnlock/internal/utils"
)

var testNow = time.Date(2025, time.March, 5, 9, 0, 0, 0, time.Local)

func newTestLedger(t *testing.T) *Ledger {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "dawnlock.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	ledger := NewLedger(store)
	ledger.now = func() time.Time { return testNow }
	return ledger
}

// recordOn writes a completion as if it happened on the given day offset
// from the test clock (0 = today, 1 = yesterday, ...).
func recordOn(l *Ledger, daysAgo int) {
	day := testNow.AddDate(0, 0, -daysAgo)
	saved := l.now
	l.now = func() time.Time { return day }
	l.RecordCompletion(models.AllRoutineItems(), day.Add(-20*time.Minute), day, false)
	l.now = saved
}

func TestRecordCompletionReplacesSameDay(t *testing.T) {
	l := newTestLedger(t)

	l.RecordCompletion(models.AllRoutineItems(), testNow.Add(-30*time.Minute), testNow, true)
	l.RecordCompletion(models.AllRoutineItems(), testNow.Add(-10*time.Minute), testNow, false)

	records := l.LastNDays(10)
	if len(records) != 1 {
		t.Fatalf("history length = %d, want 1", len(records))
	}
	if records[0].WasLocked {
		t.Error("record should reflect the replacement, not the original")
	}
	if records[0].TotalTimeMs != (10 * time.Minute).Milliseconds() {
		t.Errorf("TotalTimeMs = %d, want %d", records[0].TotalTimeMs, (10 * time.Minute).Milliseconds())
	}
}

func TestRecordCompletionTruncatesToRetentionCap(t *testing.T) {
	l := newTestLedger(t)
	for day := 100; day >= 0; day-- {
		recordOn(l, day)
	}
	if got := len(l.LastNDays(200)); got != 90 {
		t.Errorf("history length = %d, want 90", got)
	}
	// Newest record survives the truncation.
	records := l.LastNDays(1)
	if len(records) != 1 || records[0].Date != utils.DateKey(testNow) {
		t.Errorf("head of history = %v, want today", records)
	}
}

func TestTodayRecord(t *testing.T) {
	l := newTestLedger(t)
	if l.TodayRecord() != nil {
		t.Error("TodayRecord() on empty ledger should be nil")
	}
	recordOn(l, 1)
	if l.TodayRecord() != nil {
		t.Error("TodayRecord() with only yesterday's record should be nil")
	}
	recordOn(l, 0)
	got := l.TodayRecord()
	if got == nil || got.Date != utils.DateKey(testNow) {
		t.Errorf("TodayRecord() = %v, want today's record", got)
	}
}

func TestRecordsInRange(t *testing.T) {
	l := newTestLedger(t)
	for day := 5; day >= 0; day-- {
		recordOn(l, day)
	}

	start := utils.DateKey(testNow.AddDate(0, 0, -3))
	end := utils.DateKey(testNow.AddDate(0, 0, -1))
	got := l.RecordsInRange(start, end)
	if len(got) != 3 {
		t.Fatalf("RecordsInRange() length = %d, want 3", len(got))
	}
	for _, r := range got {
		if r.Date < start || r.Date > end {
			t.Errorf("record %s outside range [%s, %s]", r.Date, start, end)
		}
	}
}

func TestStreakDataCurrentAndLongest(t *testing.T) {
	l := newTestLedger(t)

	// A three-day run ending today, then a gap, then a five-day run.
	for _, daysAgo := range []int{10, 9, 8, 7, 6, 2, 1, 0} {
		recordOn(l, daysAgo)
	}

	streaks := l.StreakData()
	if streaks.CurrentStreak != 3 {
		t.Errorf("CurrentStreak = %d, want 3", streaks.CurrentStreak)
	}
	if streaks.LongestStreak != 5 {
		t.Errorf("LongestStreak = %d, want 5", streaks.LongestStreak)
	}
	if streaks.TotalCompletions != 8 {
		t.Errorf("TotalCompletions = %d, want 8", streaks.TotalCompletions)
	}
	if streaks.LastCompletionDate != utils.DateKey(testNow) {
		t.Errorf("LastCompletionDate = %q, want today", streaks.LastCompletionDate)
	}
}

func TestStreakDataBrokenToday(t *testing.T) {
	l := newTestLedger(t)
	recordOn(l, 2)
	recordOn(l, 1)

	streaks := l.StreakData()
	if streaks.CurrentStreak != 0 {
		t.Errorf("CurrentStreak = %d, want 0 when today is missing", streaks.CurrentStreak)
	}
	if streaks.LongestStreak != 2 {
		t.Errorf("LongestStreak = %d, want 2", streaks.LongestStreak)
	}
}

func TestStreakDataEmpty(t *testing.T) {
	l := newTestLedger(t)
	streaks := l.StreakData()
	if streaks.CurrentStreak != 0 || streaks.LongestStreak != 0 || streaks.TotalCompletions != 0 {
		t.Errorf("StreakData() on empty ledger = %+v, want zero values", streaks)
	}
}

func TestStreakDataFreshComputationNotPersisted(t *testing.T) {
	l := newTestLedger(t)
	recordOn(l, 0)

	if _, ok, _ := l.store.GetStreakCache(); !ok {
		t.Fatal("streak cache should exist after RecordCompletion")
	}

	// A store holding history but no cache forces a fresh computation.
	fresh := storage.NewJSONStore(filepath.Join(t.TempDir(), "dawnlock.json"))
	if err := fresh.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if err := fresh.SaveHistory(l.records()); err != nil {
		t.Fatalf("SaveHistory() error = %v", err)
	}
	l2 := NewLedger(fresh)
	l2.now = l.now

	streaks := l2.StreakData()
	if streaks.CurrentStreak != 1 {
		t.Errorf("CurrentStreak = %d, want 1", streaks.CurrentStreak)
	}
	if _, ok, _ := fresh.GetStreakCache(); ok {
		t.Error("fresh streak computation must not be persisted")
	}
}

func TestCompletionRate(t *testing.T) {
	tests := []struct {
		name    string
		records int
		days    int
		want    int
	}{
		{name: "seven of ten", records: 7, days: 10, want: 70},
		{name: "full window", records: 10, days: 10, want: 100},
		{name: "more history than window", records: 20, days: 10, want: 100},
		{name: "empty", records: 0, days: 10, want: 0},
		{name: "zero days", records: 5, days: 0, want: 0},
		{name: "rounds to nearest", records: 1, days: 3, want: 33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newTestLedger(t)
			for day := tt.records - 1; day >= 0; day-- {
				recordOn(l, day)
			}
			if got := l.CompletionRate(tt.days); got != tt.want {
				t.Errorf("CompletionRate(%d) = %d, want %d", tt.days, got, tt.want)
			}
		})
	}
}

func TestAverageCompletionTime(t *testing.T) {
	l := newTestLedger(t)
	if got := l.AverageCompletionTime(); got != 0 {
		t.Errorf("AverageCompletionTime() on empty ledger = %v, want 0", got)
	}

	l.RecordCompletion(models.AllRoutineItems(), testNow.Add(-10*time.Minute), testNow, false)
	saved := l.now
	yesterday := testNow.AddDate(0, 0, -1)
	l.now = func() time.Time { return yesterday }
	l.RecordCompletion(models.AllRoutineItems(), yesterday.Add(-30*time.Minute), yesterday, false)
	l.now = saved

	if got := l.AverageCompletionTime(); got != 20*time.Minute {
		t.Errorf("AverageCompletionTime() = %v, want 20m", got)
	}
}

func TestLastNDaysBounds(t *testing.T) {
	l := newTestLedger(t)
	recordOn(l, 1)
	recordOn(l, 0)

	tests := []struct {
		name string
		n    int
		want int
	}{
		{"negative", -1, 0},
		{"zero", 0, 0},
		{"within", 1, 1},
		{"beyond", 10, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(l.LastNDays(tt.n)); got != tt.want {
				t.Errorf("LastNDays(%d) returned %d records, want %d", tt.n, got, tt.want)
			}
		})
	}
}

func TestCleanupOldRecords(t *testing.T) {
	l := newTestLedger(t)
	for _, daysAgo := range []int{40, 20, 5, 0} {
		recordOn(l, daysAgo)
	}

	l.CleanupOldRecords(30)
	records := l.LastNDays(100)
	if len(records) != 3 {
		t.Fatalf("history length after cleanup = %d, want 3", len(records))
	}
	for _, r := range records {
		if r.Date < utils.DateKey(testNow.AddDate(0, 0, -30)) {
			t.Errorf("record %s should have been dropped", r.Date)
		}
	}
}

func TestCleanupOldRecordsRefusesNonPositiveWindow(t *testing.T) {
	l := newTestLedger(t)
	for _, daysAgo := range []int{40, 20, 5, 0} {
		recordOn(l, daysAgo)
	}

	for _, days := range []int{0, -5} {
		l.CleanupOldRecords(days)
		if got := len(l.LastNDays(100)); got != 4 {
			t.Fatalf("CleanupOldRecords(%d) left %d records, want 4 untouched", days, got)
		}
	}
}
