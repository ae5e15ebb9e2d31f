// Package timer holds the countdown state machines: the pomodoro Engine and
// the count-up Stopwatch. Both are tick-driven by an external clock source
// and keep only transient state; completed intervals are appended to the
// store and never touched again.
package timer

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sadopc/focuskit/internal/event"
	"github.com/sadopc/focuskit/internal/store"
)

// ErrInvalidConfiguration is returned for out-of-range duration updates.
// The engine state is untouched when it is returned.
var ErrInvalidConfiguration = errors.New("invalid timer configuration")

// Duration bounds for UpdateDuration, in minutes.
const (
	minWorkMinutes       = 25
	maxWorkMinutes       = 50
	minShortBreakMinutes = 3
	maxShortBreakMinutes = 15
	minLongBreakMinutes  = 10
	maxLongBreakMinutes  = 30
)

type State int

const (
	StateIdle State = iota
	StateRunning
	StatePaused
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	default:
		return "idle"
	}
}

// Engine is the pomodoro state machine: Idle -> Running <-> Paused, with a
// transient completed step that rolls into the next session's Idle or
// Running per the cycle policy. All methods are total: calls that do not
// apply in the current state are no-ops, never errors.
type Engine struct {
	store *store.Store
	bus   *event.Bus
	log   *zap.Logger

	state     State
	kind      store.SessionKind
	remaining time.Duration
	settings  store.PomodoroSettings

	// Completed work sessions since the last long break. Only completed
	// work sessions move it.
	workStreak int

	current *store.Session

	now func() time.Time
}

func New(s *store.Store, bus *event.Bus, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	settings := s.PomodoroSettings()
	return &Engine{
		store:     s,
		bus:       bus,
		log:       log,
		state:     StateIdle,
		kind:      store.SessionWork,
		remaining: settings.Duration(store.SessionWork),
		settings:  settings,
		now:       time.Now,
	}
}

func (e *Engine) State() State                     { return e.state }
func (e *Engine) Kind() store.SessionKind          { return e.kind }
func (e *Engine) Remaining() time.Duration         { return e.remaining }
func (e *Engine) WorkStreak() int                  { return e.workStreak }
func (e *Engine) Settings() store.PomodoroSettings { return e.settings }

// Planned is the full duration of the current session kind.
func (e *Engine) Planned() time.Duration {
	return e.settings.Duration(e.kind)
}

// CompletedToday counts completed work sessions since local midnight.
func (e *Engine) CompletedToday() int {
	now := e.now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return e.completedWorkSince(dayStart)
}

// CompletedThisWeek counts completed work sessions in the trailing 7 days.
func (e *Engine) CompletedThisWeek() int {
	return e.completedWorkSince(e.now().AddDate(0, 0, -7))
}

func (e *Engine) completedWorkSince(cutoff time.Time) int {
	n := 0
	for _, s := range e.store.Sessions() {
		if s.Kind == store.SessionWork && s.CompletedAt != nil && !s.CompletedAt.Before(cutoff) {
			n++
		}
	}
	return n
}

// Progress reports completion of the current session in [0, 1].
func (e *Engine) Progress() float64 {
	planned := e.Planned()
	if planned <= 0 {
		return 0
	}
	return 1 - float64(e.remaining)/float64(planned)
}

// Start begins a session, creating its record if none is active. Starting a
// running engine is a no-op; starting a paused one resumes it.
func (e *Engine) Start() {
	switch e.state {
	case StateRunning:
		return
	case StatePaused:
		e.state = StateRunning
		e.log.Info("timer resumed", zap.Duration("remaining", e.remaining))
		return
	}

	sess := store.Session{
		ID:          uuid.New(),
		Kind:        e.kind,
		PlannedSecs: int(e.Planned().Seconds()),
		StartedAt:   e.now(),
	}
	e.current = &sess
	e.remaining = e.Planned()
	e.state = StateRunning
	e.log.Info("timer started",
		zap.String("kind", string(e.kind)),
		zap.Duration("planned", e.Planned()))
}

// Pause stops the countdown. Idempotent; a no-op while idle.
func (e *Engine) Pause() {
	if e.state != StateRunning {
		return
	}
	e.state = StatePaused
	e.log.Info("timer paused", zap.Duration("remaining", e.remaining))
}

// Reset discards the active session without persisting it and restores the
// full duration of the current kind.
func (e *Engine) Reset() {
	e.current = nil
	e.state = StateIdle
	e.remaining = e.Planned()
	e.log.Info("timer reset", zap.String("kind", string(e.kind)))
}

// Tick advances the countdown by elapsed. Ticks while idle or paused are
// no-ops, so a tick scheduled before a pause or reset lands harmlessly.
// Reaching zero completes the session.
func (e *Engine) Tick(elapsed time.Duration) {
	if e.state != StateRunning {
		return
	}
	e.remaining -= elapsed
	if e.remaining <= 0 {
		e.remaining = 0
		e.complete(e.settings.AutoStartNext)
	}
}

// Skip forcibly completes the active session at the current time and
// advances per the cycle policy, rolling straight into the next session.
// A no-op when no session is active.
func (e *Engine) Skip() {
	if e.current == nil {
		return
	}
	e.log.Info("session skipped",
		zap.String("kind", string(e.kind)),
		zap.Duration("remaining", e.remaining))
	e.complete(true)
}

// complete persists the finished session, advances the cycle, and either
// starts the next session or parks idle with its full duration.
func (e *Engine) complete(startNext bool) {
	finished := e.kind

	if e.current != nil {
		done := *e.current
		completedAt := e.now()
		if completedAt.Before(done.StartedAt) {
			completedAt = done.StartedAt
		}
		done.CompletedAt = &completedAt
		if err := e.store.AppendSession(done); err != nil {
			e.log.Error("persist session failed", zap.Error(err))
		}
		e.current = nil

		next := e.nextKind(finished)
		e.bus.PublishSessionCompleted(event.SessionCompleted{Session: done, Next: next})
		e.log.Info("session completed",
			zap.String("kind", string(finished)),
			zap.String("next", string(next)))
		e.kind = next
	} else {
		e.kind = e.nextKind(finished)
	}

	e.state = StateIdle
	e.remaining = e.Planned()
	if startNext {
		e.Start()
	}
}

// nextKind applies the cycle policy and moves the work streak counter.
func (e *Engine) nextKind(finished store.SessionKind) store.SessionKind {
	if finished != store.SessionWork {
		return store.SessionWork
	}
	e.workStreak++
	if e.workStreak >= e.settings.SessionsUntilLongBreak {
		e.workStreak = 0
		return store.SessionLongBreak
	}
	return store.SessionShortBreak
}

// UpdateDuration validates and applies a new duration for kind. Out-of-range
// minutes are rejected with ErrInvalidConfiguration and no state change. If
// the engine is idle on the same kind, the remaining time refreshes
// immediately.
func (e *Engine) UpdateDuration(kind store.SessionKind, minutes int) error {
	var lo, hi int
	switch kind {
	case store.SessionWork:
		lo, hi = minWorkMinutes, maxWorkMinutes
	case store.SessionShortBreak:
		lo, hi = minShortBreakMinutes, maxShortBreakMinutes
	case store.SessionLongBreak:
		lo, hi = minLongBreakMinutes, maxLongBreakMinutes
	default:
		return fmt.Errorf("%w: unknown session kind %q", ErrInvalidConfiguration, kind)
	}
	if minutes < lo || minutes > hi {
		e.log.Warn("duration update rejected",
			zap.String("kind", string(kind)),
			zap.Int("minutes", minutes),
			zap.Int("min", lo), zap.Int("max", hi))
		return fmt.Errorf("%w: %s duration %d min outside [%d, %d]",
			ErrInvalidConfiguration, kind, minutes, lo, hi)
	}

	secs := minutes * 60
	switch kind {
	case store.SessionWork:
		e.settings.WorkSecs = secs
	case store.SessionShortBreak:
		e.settings.ShortBreakSecs = secs
	case store.SessionLongBreak:
		e.settings.LongBreakSecs = secs
	}
	if err := e.store.SavePomodoroSettings(e.settings); err != nil {
		e.log.Error("persist settings failed", zap.Error(err))
	}
	if e.state == StateIdle && e.kind == kind {
		e.remaining = e.Planned()
	}
	e.log.Info("duration updated",
		zap.String("kind", string(kind)), zap.Int("minutes", minutes))
	return nil
}

// UpdateSettings replaces the cycle settings (auto-start, sessions until
// long break), persisting them. Durations go through UpdateDuration.
func (e *Engine) UpdateSettings(autoStartNext bool, sessionsUntilLongBreak int) error {
	if sessionsUntilLongBreak < 1 {
		return fmt.Errorf("%w: sessions until long break must be positive, got %d",
			ErrInvalidConfiguration, sessionsUntilLongBreak)
	}
	e.settings.AutoStartNext = autoStartNext
	e.settings.SessionsUntilLongBreak = sessionsUntilLongBreak
	if err := e.store.SavePomodoroSettings(e.settings); err != nil {
		e.log.Error("persist settings failed", zap.Error(err))
	}
	return nil
}
