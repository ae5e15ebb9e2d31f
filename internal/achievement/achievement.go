// Package achievement evaluates unlock predicates over the full store
// snapshot. Unlocks are monotonic: once flipped, an achievement is never
// re-evaluated and never reverts.
package achievement

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sadopc/focuskit/internal/event"
	"github.com/sadopc/focuskit/internal/store"
)

// Predicate keys of the fixed catalog.
const (
	KeyFirstSteps     = "first_steps"
	KeyProductiveWeek = "productive_week"
	KeyHabitMaster    = "habit_master"
	KeyWriter         = "writer"
	KeyReaction       = "reaction"
)

type catalogEntry struct {
	key         string
	title       string
	description string
	icon        string
}

var catalog = []catalogEntry{
	{KeyFirstSteps, "First Steps", "Complete your first Pomodoro session", "star"},
	{KeyProductiveWeek, "Productive Week", "Complete 7 Pomodoro sessions in a week", "calendar"},
	{KeyHabitMaster, "Habit Master", "Complete 10 habits", "check-circle"},
	{KeyWriter, "Writer", "Create 5 notes", "note"},
	{KeyReaction, "Reaction", "Score 20 points in the reaction game", "bolt"},
}

// predicates test the current history; order-independent, side-effect-free.
var predicates = map[string]func(snap store.Snapshot, now time.Time) bool{
	KeyFirstSteps: func(snap store.Snapshot, _ time.Time) bool {
		for _, s := range snap.Sessions {
			if s.Kind == store.SessionWork && s.Completed() {
				return true
			}
		}
		return false
	},
	KeyProductiveWeek: func(snap store.Snapshot, now time.Time) bool {
		weekAgo := now.AddDate(0, 0, -7)
		count := 0
		for _, s := range snap.Sessions {
			if s.Kind == store.SessionWork && s.Completed() && !s.CompletedAt.Before(weekAgo) {
				count++
			}
		}
		return count >= 7
	},
	KeyHabitMaster: func(snap store.Snapshot, _ time.Time) bool {
		return len(snap.Completions) >= 10
	},
	KeyWriter: func(snap store.Snapshot, _ time.Time) bool {
		return len(snap.Notes) >= 5
	},
	KeyReaction: func(snap store.Snapshot, _ time.Time) bool {
		for _, gs := range snap.Scores {
			if gs.Kind == store.GameReaction && gs.Score >= 20 {
				return true
			}
		}
		return false
	},
}

type Engine struct {
	store *store.Store
	bus   *event.Bus
	log   *zap.Logger

	now func() time.Time
}

func New(s *store.Store, bus *event.Bus, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{store: s, bus: bus, log: log, now: time.Now}
}

// Load returns the persisted achievements, seeding the fixed catalog on
// first use.
func (e *Engine) Load() []store.Achievement {
	achievements := e.store.Achievements()
	if len(achievements) > 0 {
		return achievements
	}

	for _, c := range catalog {
		achievements = append(achievements, store.Achievement{
			ID:          uuid.New(),
			Key:         c.key,
			Title:       c.title,
			Description: c.description,
			Icon:        c.icon,
		})
	}
	if err := e.store.SaveAchievements(achievements); err != nil {
		e.log.Error("seed achievements failed", zap.Error(err))
	}
	return achievements
}

// Evaluate tests every still-locked achievement against the current store
// and flips the ones whose predicate holds, persisting once. Idempotent on
// repeated calls; already-unlocked entries are never re-tested. Returns the
// newly unlocked achievements.
func (e *Engine) Evaluate() []store.Achievement {
	achievements := e.Load()
	snap := e.store.Snapshot()
	now := e.now()

	var unlocked []store.Achievement
	for i := range achievements {
		a := &achievements[i]
		if a.Unlocked {
			continue
		}
		pred, ok := predicates[a.Key]
		if !ok {
			e.log.Warn("unknown achievement key", zap.String("key", a.Key))
			continue
		}
		if !pred(snap, now) {
			continue
		}
		a.Unlocked = true
		at := now
		a.UnlockedAt = &at
		unlocked = append(unlocked, *a)
		e.log.Info("achievement unlocked", zap.String("key", a.Key))
	}

	if len(unlocked) > 0 {
		if err := e.store.SaveAchievements(achievements); err != nil {
			e.log.Error("persist achievements failed", zap.Error(err))
		}
		for _, a := range unlocked {
			e.bus.PublishAchievementUnlocked(event.AchievementUnlocked{Achievement: a})
		}
	}
	return unlocked
}
