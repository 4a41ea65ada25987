package history

import (
	"math"
	"sync"
	"time"

	"github.com/julianstephens/dawnlock/internal/constants"
	"github.com/julianstephens/dawnlock/internal/logger"
	"github.com/julianstephens/dawnlock/internal/models"
	"github.com/julianstephens/dawnlock/internal/storage"
	"github.com/julianstephens/dawnlock/internal/utils"
)

// Ledger is the append-per-day record of completed routines, kept
// most-recent-first and capped at the retention window. Streak statistics
// are recomputed and cached on every write. All storage failures degrade to
// empty or zero values; nothing propagates to callers.
type Ledger struct {
	store storage.Provider
	mu    sync.Mutex
	now   func() time.Time
	loc   *time.Location
}

func NewLedger(store storage.Provider) *Ledger {
	return &Ledger{
		store: store,
		now:   time.Now,
		loc:   time.Local,
	}
}

// WithClock overrides the time source, primarily for tests.
func (l *Ledger) WithClock(now func() time.Time) *Ledger {
	l.now = now
	return l
}

func (l *Ledger) records() []models.DailyRecord {
	records, ok, err := l.store.GetHistory()
	if err != nil {
		logger.Warn("Failed to load history", "error", err)
		return nil
	}
	if !ok {
		return nil
	}
	return records
}

// RecordCompletion writes today's DailyRecord. A second completion on the
// same day replaces the earlier record, so at most one record exists per
// date key. The list is truncated to the retention cap before persisting,
// and the streak cache is rebuilt from the truncated list.
func (l *Ledger) RecordCompletion(items []models.RoutineItem, startTime, endTime time.Time, wasLocked bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	today := utils.DateKey(l.now())
	record := models.DailyRecord{
		Date:           today,
		CompletedItems: items,
		StartedAt:      startTime,
		CompletedAt:    endTime,
		TotalTimeMs:    endTime.Sub(startTime).Milliseconds(),
		WasLocked:      wasLocked,
	}

	records := l.records()
	kept := make([]models.DailyRecord, 0, len(records)+1)
	kept = append(kept, record)
	for _, r := range records {
		if r.Date != today {
			kept = append(kept, r)
		}
	}
	if len(kept) > constants.HistoryRetentionDays {
		kept = kept[:constants.HistoryRetentionDays]
	}

	if err := l.store.SaveHistory(kept); err != nil {
		logger.Error("Failed to save history", "error", err)
	}

	streaks := l.computeStreaks(kept)
	if err := l.store.SaveStreakCache(streaks); err != nil {
		logger.Error("Failed to save streak cache", "error", err)
	}
}

// TodayRecord returns today's record, or nil when the routine has not been
// completed today.
func (l *Ledger) TodayRecord() *models.DailyRecord {
	today := utils.DateKey(l.now())
	for _, r := range l.records() {
		if r.Date == today {
			return &r
		}
	}
	return nil
}

// RecordsInRange returns records whose date keys fall in [start, end],
// inclusive. Date keys compare lexicographically.
func (l *Ledger) RecordsInRange(start, end string) []models.DailyRecord {
	var matched []models.DailyRecord
	for _, r := range l.records() {
		if r.Date >= start && r.Date <= end {
			matched = append(matched, r)
		}
	}
	return matched
}

// LastNDays returns up to n of the most recent records. n <= 0 yields nil.
func (l *Ledger) LastNDays(n int) []models.DailyRecord {
	if n <= 0 {
		return nil
	}
	records := l.records()
	if n < len(records) {
		records = records[:n]
	}
	return records
}

// StreakData returns the cached streak summary when present, otherwise a
// fresh computation from stored history. The fresh result is not persisted;
// durability comes from the next RecordCompletion.
func (l *Ledger) StreakData() models.StreakData {
	cached, ok, err := l.store.GetStreakCache()
	if err == nil && ok {
		return cached
	}
	if err != nil {
		logger.Warn("Failed to load streak cache", "error", err)
	}
	return l.computeStreaks(l.records())
}

func (l *Ledger) computeStreaks(records []models.DailyRecord) models.StreakData {
	streaks := models.StreakData{}
	if len(records) == 0 {
		return streaks
	}

	dates := make([]string, len(records))
	for i, r := range records {
		dates[i] = r.Date
	}

	streaks.CurrentStreak = utils.CalculateStreak(dates, l.now())
	streaks.LastCompletionDate = dates[0]
	streaks.TotalCompletions = len(records)
	streaks.CompletionDates = dates

	// Longest run anywhere in retained history: walk the most-recent-first
	// list pairwise, extending the run while neighbors are adjacent days.
	longest := 1
	run := 1
	for i := 0; i < len(dates)-1; i++ {
		if utils.IsNextDay(dates[i+1], dates[i], l.loc) {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 1
		}
	}
	if streaks.CurrentStreak > longest {
		longest = streaks.CurrentStreak
	}
	streaks.LongestStreak = longest

	return streaks
}

// CompletionRate returns the percentage of the trailing days window covered
// by records, rounded to the nearest whole percent. The metric assumes no
// placeholder records are ever written for missed days.
func (l *Ledger) CompletionRate(days int) int {
	if days <= 0 {
		return 0
	}
	count := len(l.LastNDays(days))
	return int(math.Round(100 * float64(count) / float64(days)))
}

// AverageCompletionTime returns the mean completion duration across all
// retained records, or zero when history is empty.
func (l *Ledger) AverageCompletionTime() time.Duration {
	records := l.records()
	if len(records) == 0 {
		return 0
	}
	var totalMs int64
	for _, r := range records {
		totalMs += r.TotalTimeMs
	}
	return time.Duration(totalMs/int64(len(records))) * time.Millisecond
}

// CleanupOldRecords drops records older than today minus daysToKeep days.
// A non-positive window is refused: a future cutoff would sweep the whole
// history.
func (l *Ledger) CleanupOldRecords(daysToKeep int) {
	if daysToKeep <= 0 {
		logger.Warn("Refusing history cleanup with non-positive window", "days", daysToKeep)
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := utils.DateKey(l.now().AddDate(0, 0, -daysToKeep))
	records := l.records()
	kept := records[:0]
	for _, r := range records {
		if r.Date >= cutoff {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(records) {
		return
	}
	if err := l.store.SaveHistory(kept); err != nil {
		logger.Error("Failed to save history", "error", err)
	}
}
