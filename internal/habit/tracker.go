package habit

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sadopc/focuskit/internal/event"
	"github.com/sadopc/focuskit/internal/notify"
	"github.com/sadopc/focuskit/internal/store"
)

// ErrNotFound reports an update against a habit id that is not in the store.
var ErrNotFound = errors.New("habit not found")

// DayStart normalizes t to midnight in the local time zone. Every day
// comparison in the ledger goes through this; mixing normalizations would
// silently break streaks and counts.
func DayStart(t time.Time) time.Time {
	t = t.In(time.Local)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}

func sameDay(a, b time.Time) bool {
	return DayStart(a).Equal(DayStart(b))
}

// Tracker owns habit definitions and the completion ledger, and keeps the
// notification schedule in sync with the reminder policies.
type Tracker struct {
	store *store.Store
	sched notify.Scheduler
	bus   *event.Bus
	log   *zap.Logger

	now func() time.Time
}

func NewTracker(s *store.Store, sched notify.Scheduler, bus *event.Bus, log *zap.Logger) *Tracker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Tracker{store: s, sched: sched, bus: bus, log: log, now: time.Now}
}

func (t *Tracker) Habits() []store.Habit {
	return t.store.Habits()
}

func (t *Tracker) Completions() []store.HabitCompletion {
	return t.store.Completions()
}

// Add stores a new habit and schedules its reminders.
func (t *Tracker) Add(h store.Habit) {
	habits := t.store.Habits()
	habits = append(habits, h)
	if err := t.store.SaveHabits(habits); err != nil {
		t.log.Error("persist habits failed", zap.Error(err))
	}
	t.log.Info("habit added",
		zap.String("name", h.Name),
		zap.Bool("notifications", h.NotificationsEnabled))
	t.Reschedule(h)
	t.bus.PublishHabitsChanged()
}

// Update replaces the stored habit with the same id, cancelling the old
// schedule before the new one is computed. Updating a missing habit is a
// logged no-op.
func (t *Tracker) Update(h store.Habit) error {
	habits := t.store.Habits()
	idx := -1
	for i := range habits {
		if habits[i].ID == h.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		t.log.Warn("habit update skipped", zap.String("id", h.ID.String()))
		return fmt.Errorf("update habit %s: %w", h.ID, ErrNotFound)
	}

	habits[idx] = h
	if err := t.store.SaveHabits(habits); err != nil {
		t.log.Error("persist habits failed", zap.Error(err))
	}
	t.log.Info("habit updated", zap.String("name", h.Name))
	t.Reschedule(h)
	t.bus.PublishHabitsChanged()
	return nil
}

// Delete removes the habit, every completion referencing it, and all of its
// scheduled notification points.
func (t *Tracker) Delete(id uuid.UUID) {
	habits := t.store.Habits()
	kept := habits[:0]
	for _, h := range habits {
		if h.ID != id {
			kept = append(kept, h)
		}
	}
	if len(kept) == len(habits) {
		t.log.Warn("habit delete skipped", zap.String("id", id.String()))
		return
	}

	if t.sched != nil {
		t.sched.CancelPrefix(id.String())
	}
	if err := t.store.SaveHabits(kept); err != nil {
		t.log.Error("persist habits failed", zap.Error(err))
	}

	completions := t.store.Completions()
	keptC := completions[:0]
	for _, c := range completions {
		if c.HabitID != id {
			keptC = append(keptC, c)
		}
	}
	if err := t.store.SaveCompletions(keptC); err != nil {
		t.log.Error("persist completions failed", zap.Error(err))
	}

	t.log.Info("habit deleted", zap.String("id", id.String()))
	t.bus.PublishHabitsChanged()
}

// Reschedule is cancel-then-expand-then-schedule; there is no partial
// update of a habit's notification points. Habits with notifications off
// end up with nothing scheduled.
func (t *Tracker) Reschedule(h store.Habit) {
	if t.sched == nil {
		return
	}
	t.sched.CancelPrefix(h.ID.String())
	if !h.NotificationsEnabled {
		return
	}
	for _, p := range Expand(h) {
		req := notify.Request{
			ID:    p.ID,
			Spec:  notify.DailyAt(p.At.Hour, p.At.Minute),
			Title: "Habit Reminder",
			Body:  "Don't forget: " + h.Name,
		}
		// Best effort: a delivery failure never rolls back the habit.
		if err := t.sched.Schedule(req); err != nil {
			t.log.Warn("schedule reminder failed",
				zap.String("id", p.ID), zap.Error(err))
		}
	}
}

// ScheduleAll re-registers reminders for every habit, for app launch.
func (t *Tracker) ScheduleAll() {
	for _, h := range t.store.Habits() {
		if h.NotificationsEnabled {
			t.Reschedule(h)
		}
	}
}

// ToggleCompletion flips the completion record for (habitID, day): removes
// it when present, inserts one otherwise. Its own inverse. Returns whether
// the habit is completed for that day afterwards.
func (t *Tracker) ToggleCompletion(habitID uuid.UUID, day time.Time) bool {
	dayStart := DayStart(day)
	completions := t.store.Completions()

	idx := -1
	for i, c := range completions {
		if c.HabitID == habitID && sameDay(c.Day, dayStart) {
			idx = i
			break
		}
	}

	var completed bool
	if idx >= 0 {
		completions = append(completions[:idx], completions[idx+1:]...)
		t.log.Debug("completion removed",
			zap.String("habit", habitID.String()), zap.Time("day", dayStart))
	} else {
		completions = append(completions, store.HabitCompletion{
			ID:      uuid.New(),
			HabitID: habitID,
			Day:     dayStart,
		})
		completed = true
		t.log.Debug("completion added",
			zap.String("habit", habitID.String()), zap.Time("day", dayStart))
	}

	if err := t.store.SaveCompletions(completions); err != nil {
		t.log.Error("persist completions failed", zap.Error(err))
	}
	t.bus.PublishHabitsChanged()
	return completed
}

// IsCompleted reports whether the habit has a completion on day.
func (t *Tracker) IsCompleted(habitID uuid.UUID, day time.Time) bool {
	for _, c := range t.store.Completions() {
		if c.HabitID == habitID && sameDay(c.Day, day) {
			return true
		}
	}
	return false
}

// Streak counts consecutive completed days walking backward from asOf,
// stopping at the first gap. Zero when asOf itself is not completed.
func (t *Tracker) Streak(habitID uuid.UUID, asOf time.Time) int {
	days := make(map[int64]bool)
	for _, c := range t.store.Completions() {
		if c.HabitID == habitID {
			days[DayStart(c.Day).Unix()] = true
		}
	}

	// A streak cannot be longer than the number of completed days, which
	// also bounds the walk against corrupted ledgers.
	streak := 0
	day := DayStart(asOf)
	for days[day.Unix()] && streak < len(days) {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// CompletionCount counts completions in the trailing window of windowDays
// days ending today.
func (t *Tracker) CompletionCount(habitID uuid.UUID, windowDays int) int {
	cutoff := DayStart(t.now()).AddDate(0, 0, -windowDays)
	count := 0
	for _, c := range t.store.Completions() {
		if c.HabitID == habitID && !DayStart(c.Day).Before(cutoff) {
			count++
		}
	}
	return count
}
