// Package stats derives display numbers from the store. Everything here is
// a pure recomputation over a snapshot: no caching, no side effects, correct
// at any call frequency.
package stats

import (
	"time"

	"github.com/sadopc/focuskit/internal/habit"
	"github.com/sadopc/focuskit/internal/store"
)

// Summary holds the aggregate numbers shown on the profile screen.
type Summary struct {
	CompletedToday    int
	CompletedThisWeek int
	TotalPomodoros    int
	AverageFocus      time.Duration
	HabitsCompleted   int
	NotesCreated      int
}

// Compute derives a Summary from snap as of now.
func Compute(snap store.Snapshot, now time.Time) Summary {
	var sum Summary
	today := habit.DayStart(now)
	weekAgo := today.AddDate(0, 0, -7)

	var focusTotal time.Duration
	for _, s := range snap.Sessions {
		if s.Kind != store.SessionWork || !s.Completed() {
			continue
		}
		sum.TotalPomodoros++
		focusTotal += s.Planned()
		if habit.DayStart(*s.CompletedAt).Equal(today) {
			sum.CompletedToday++
		}
		if !s.CompletedAt.Before(weekAgo) {
			sum.CompletedThisWeek++
		}
	}
	if sum.TotalPomodoros > 0 {
		sum.AverageFocus = focusTotal / time.Duration(sum.TotalPomodoros)
	}

	sum.HabitsCompleted = len(snap.Completions)
	sum.NotesCreated = len(snap.Notes)
	return sum
}

// DayCount is one day's completed work session count.
type DayCount struct {
	Day   time.Time
	Count int
}

// WeeklyWork buckets completed work sessions into the last seven calendar
// days, oldest first, including empty days.
func WeeklyWork(snap store.Snapshot, now time.Time) []DayCount {
	today := habit.DayStart(now)
	counts := make([]DayCount, 7)
	for i := range counts {
		counts[i].Day = today.AddDate(0, 0, i-6)
	}

	for _, s := range snap.Sessions {
		if s.Kind != store.SessionWork || !s.Completed() {
			continue
		}
		day := habit.DayStart(*s.CompletedAt)
		for i := range counts {
			if counts[i].Day.Equal(day) {
				counts[i].Count++
				break
			}
		}
	}
	return counts
}
