package stats

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/sadopc/focuskit/internal/store"
)

func workSession(plannedSecs int, completedAt time.Time) store.Session {
	return store.Session{
		ID:          uuid.New(),
		Kind:        store.SessionWork,
		PlannedSecs: plannedSecs,
		StartedAt:   completedAt.Add(-time.Duration(plannedSecs) * time.Second),
		CompletedAt: &completedAt,
	}
}

func breakSession(completedAt time.Time) store.Session {
	return store.Session{
		ID:          uuid.New(),
		Kind:        store.SessionShortBreak,
		PlannedSecs: 300,
		StartedAt:   completedAt.Add(-5 * time.Minute),
		CompletedAt: &completedAt,
	}
}

var statsNow = time.Date(2026, 3, 10, 15, 0, 0, 0, time.Local)

func TestComputeEmpty(t *testing.T) {
	got := Compute(store.Snapshot{}, statsNow)
	if got != (Summary{}) {
		t.Fatalf("expected zero summary, got %+v", got)
	}
}

func TestComputeCounts(t *testing.T) {
	snap := store.Snapshot{
		Sessions: []store.Session{
			workSession(1500, statsNow.Add(-time.Hour)),              // today
			workSession(1500, statsNow.AddDate(0, 0, -2)),            // this week
			workSession(3000, statsNow.AddDate(0, 0, -20)),           // older
			breakSession(statsNow.Add(-30 * time.Minute)),            // ignored
			{ID: uuid.New(), Kind: store.SessionWork, StartedAt: statsNow}, // incomplete
		},
		Completions: []store.HabitCompletion{
			{ID: uuid.New(), HabitID: uuid.New(), Day: statsNow},
			{ID: uuid.New(), HabitID: uuid.New(), Day: statsNow.AddDate(0, 0, -1)},
		},
		Notes: []store.Note{{ID: uuid.New(), Title: "a"}},
	}

	got := Compute(snap, statsNow)
	if got.CompletedToday != 1 {
		t.Fatalf("expected 1 today, got %d", got.CompletedToday)
	}
	if got.CompletedThisWeek != 2 {
		t.Fatalf("expected 2 this week, got %d", got.CompletedThisWeek)
	}
	if got.TotalPomodoros != 3 {
		t.Fatalf("expected 3 total, got %d", got.TotalPomodoros)
	}
	if got.HabitsCompleted != 2 || got.NotesCreated != 1 {
		t.Fatalf("wrong habit/note counts: %+v", got)
	}
}

func TestComputeAverageFocus(t *testing.T) {
	snap := store.Snapshot{
		Sessions: []store.Session{
			workSession(1500, statsNow.Add(-2*time.Hour)),
			workSession(3000, statsNow.Add(-time.Hour)),
		},
	}
	got := Compute(snap, statsNow)
	if got.AverageFocus != 2250*time.Second {
		t.Fatalf("expected 37m30s average, got %v", got.AverageFocus)
	}
}

func TestWeeklyWorkBuckets(t *testing.T) {
	snap := store.Snapshot{
		Sessions: []store.Session{
			workSession(1500, statsNow),                   // today
			workSession(1500, statsNow.Add(-time.Hour)),   // today again
			workSession(1500, statsNow.AddDate(0, 0, -6)), // oldest bucket
			workSession(1500, statsNow.AddDate(0, 0, -7)), // outside
			breakSession(statsNow),                        // ignored
		},
	}

	got := WeeklyWork(snap, statsNow)
	if len(got) != 7 {
		t.Fatalf("expected 7 buckets, got %d", len(got))
	}
	if !got[0].Day.Equal(time.Date(2026, 3, 4, 0, 0, 0, 0, time.Local)) {
		t.Fatalf("expected oldest-first ordering, first day %v", got[0].Day)
	}
	if got[0].Count != 1 {
		t.Fatalf("expected 1 in oldest bucket, got %d", got[0].Count)
	}
	if got[6].Count != 2 {
		t.Fatalf("expected 2 today, got %d", got[6].Count)
	}
	for i := 1; i < 6; i++ {
		if got[i].Count != 0 {
			t.Fatalf("bucket %d should be empty, got %d", i, got[i].Count)
		}
	}
}

func TestWeeklyWorkEmptySnapshot(t *testing.T) {
	got := WeeklyWork(store.Snapshot{}, statsNow)
	if len(got) != 7 {
		t.Fatalf("expected 7 buckets, got %d", len(got))
	}
	for _, dc := range got {
		if dc.Count != 0 {
			t.Fatalf("expected empty buckets, got %+v", dc)
		}
	}
}
