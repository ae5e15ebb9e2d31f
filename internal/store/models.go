package store

import (
	"time"

	"github.com/google/uuid"
)

// Record keys. These are the only keys the store is ever asked for.
const (
	KeyNotes            = "notes"
	KeyHabits           = "habits"
	KeyHabitCompletions = "habit_completions"
	KeyPomodoroSessions = "pomodoro_sessions"
	KeyPomodoroSettings = "pomodoro_settings"
	KeyGameScores       = "game_scores"
	KeyTimerSessions    = "timer_sessions"
	KeyAppSettings      = "app_settings"
	KeyAchievements     = "achievements"
)

type SessionKind string

const (
	SessionWork       SessionKind = "work"
	SessionShortBreak SessionKind = "short_break"
	SessionLongBreak  SessionKind = "long_break"
)

// Session is one timed work/break interval. Immutable once written;
// CompletedAt is set exactly once, on natural completion or skip.
type Session struct {
	ID          uuid.UUID   `json:"id"`
	Kind        SessionKind `json:"kind"`
	PlannedSecs int         `json:"planned_secs"`
	StartedAt   time.Time   `json:"started_at"`
	CompletedAt *time.Time  `json:"completed_at,omitempty"`
}

func (s Session) Completed() bool {
	return s.CompletedAt != nil
}

func (s Session) Planned() time.Duration {
	return time.Duration(s.PlannedSecs) * time.Second
}

type ReminderInterval string

const (
	ReminderDaily    ReminderInterval = "daily"
	ReminderHourly   ReminderInterval = "hourly"
	ReminderMultiple ReminderInterval = "multiple"
)

// TimeOfDay is a wall-clock firing point, date-independent.
type TimeOfDay struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// ReminderPolicy describes when reminders fire for a habit. A nil policy on
// a Habit means no reminders. Which fields are meaningful depends on
// Interval: At for daily, From/To for hourly, Times for multiple.
type ReminderPolicy struct {
	Interval ReminderInterval `json:"interval"`
	At       TimeOfDay        `json:"at,omitempty"`
	From     TimeOfDay        `json:"from,omitempty"`
	To       TimeOfDay        `json:"to,omitempty"`
	Times    []TimeOfDay      `json:"times,omitempty"`
}

// Habit is a recurring user-defined activity tracked per calendar day.
// Edited in place by the owning user action; deletion cascades to its
// completions.
type Habit struct {
	ID                   uuid.UUID       `json:"id"`
	Name                 string          `json:"name"`
	Color                string          `json:"color"`
	CreatedAt            time.Time       `json:"created_at"`
	Reminder             *ReminderPolicy `json:"reminder,omitempty"`
	NotificationsEnabled bool            `json:"notifications_enabled"`
}

// HabitCompletion marks one habit done on one calendar day. Day is
// normalized to local midnight at write time; at most one record exists per
// (habit, day).
type HabitCompletion struct {
	ID      uuid.UUID `json:"id"`
	HabitID uuid.UUID `json:"habit_id"`
	Day     time.Time `json:"day"`
}

type Note struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type GameKind string

const (
	GamePuzzle   GameKind = "puzzle"
	GameReaction GameKind = "reaction"
)

// GameScore is an append-only result of one mini-game round.
type GameScore struct {
	ID         uuid.UUID `json:"id"`
	Kind       GameKind  `json:"kind"`
	Score      int       `json:"score"`
	RecordedAt time.Time `json:"recorded_at"`
}

// TimerSession is one finished stopwatch run.
type TimerSession struct {
	ID         uuid.UUID `json:"id"`
	DurationMS int64     `json:"duration_ms"`
	StartedAt  time.Time `json:"started_at"`
	EndedAt    time.Time `json:"ended_at"`
}

func (t TimerSession) Duration() time.Duration {
	return time.Duration(t.DurationMS) * time.Millisecond
}

// Achievement unlock is monotonic: Unlocked flips false to true exactly once
// and UnlockedAt never changes after first set.
type Achievement struct {
	ID          uuid.UUID  `json:"id"`
	Key         string     `json:"key"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Icon        string     `json:"icon"`
	Unlocked    bool       `json:"unlocked"`
	UnlockedAt  *time.Time `json:"unlocked_at,omitempty"`
}

// PomodoroSettings is the timer configuration, overwritten wholesale on save.
type PomodoroSettings struct {
	WorkSecs               int  `json:"work_secs"`
	ShortBreakSecs         int  `json:"short_break_secs"`
	LongBreakSecs          int  `json:"long_break_secs"`
	AutoStartNext          bool `json:"auto_start_next"`
	SessionsUntilLongBreak int  `json:"sessions_until_long_break"`
}

func DefaultPomodoroSettings() PomodoroSettings {
	return PomodoroSettings{
		WorkSecs:               25 * 60,
		ShortBreakSecs:         5 * 60,
		LongBreakSecs:          15 * 60,
		AutoStartNext:          true,
		SessionsUntilLongBreak: 4,
	}
}

func (p PomodoroSettings) Duration(kind SessionKind) time.Duration {
	switch kind {
	case SessionShortBreak:
		return time.Duration(p.ShortBreakSecs) * time.Second
	case SessionLongBreak:
		return time.Duration(p.LongBreakSecs) * time.Second
	default:
		return time.Duration(p.WorkSecs) * time.Second
	}
}

// AppSettings is the singleton application settings record.
type AppSettings struct {
	Theme                string `json:"theme"`
	SoundsEnabled        bool   `json:"sounds_enabled"`
	NotificationsEnabled bool   `json:"notifications_enabled"`
	GameDifficulty       string `json:"game_difficulty"`
}

func DefaultAppSettings() AppSettings {
	return AppSettings{
		Theme:                "system",
		SoundsEnabled:        true,
		NotificationsEnabled: true,
		GameDifficulty:       "medium",
	}
}
