package cli

import (
	"fmt"
	"strings"

	"github.com/julianstephens/dawnlock/internal/utils"
)

type HistoryCmd struct {
	Days int `help:"Number of recent days to show." default:"14"`
}

func (c *HistoryCmd) Run(ctx *Context) error {
	if c.Days < 1 {
		return fmt.Errorf("--days must be at least 1")
	}
	records := ctx.App.History.LastNDays(c.Days)
	if len(records) == 0 {
		fmt.Println("No completions recorded yet.")
		return nil
	}

	for _, r := range records {
		lockedTag := ""
		if r.WasLocked {
			lockedTag = " [locked]"
		}
		items := make([]string, len(r.CompletedItems))
		for i, item := range r.CompletedItems {
			items[i] = string(item)
		}
		fmt.Printf("%s  %s%s\n    %s\n",
			r.Date, utils.FormatDuration(r.TotalTime()), lockedTag, strings.Join(items, ", "))
	}

	fmt.Printf("\nCompletion rate (last %d days): %d%%\n", c.Days, ctx.App.History.CompletionRate(c.Days))
	if avg := ctx.App.History.AverageCompletionTime(); avg > 0 {
		fmt.Printf("Average completion time: %s\n", utils.FormatDuration(avg))
	}
	return nil
}

type StreakCmd struct{}

func (c *StreakCmd) Run(ctx *Context) error {
	streaks := ctx.App.History.StreakData()
	fmt.Printf("Current streak:    %d day(s)\n", streaks.CurrentStreak)
	fmt.Printf("Longest streak:    %d day(s)\n", streaks.LongestStreak)
	fmt.Printf("Total completions: %d\n", streaks.TotalCompletions)
	if streaks.LastCompletionDate != "" {
		fmt.Printf("Last completion:   %s\n", streaks.LastCompletionDate)
	}
	return nil
}

type CleanupCmd struct {
	Keep int `help:"Days of history to keep." default:"90"`
}

func (c *CleanupCmd) Run(ctx *Context) error {
	if c.Keep < 1 {
		return fmt.Errorf("--keep must be at least 1")
	}
	ctx.App.History.CleanupOldRecords(c.Keep)
	fmt.Printf("History trimmed to the last %d days.\n", c.Keep)
	return nil
}
