// Package event carries the closed set of domain events the engines publish.
// Dispatch is synchronous and happens on the single logical thread that owns
// all engine state, so handlers need no locking.
package event

import "github.com/sadopc/focuskit/internal/store"

// SessionCompleted fires when a pomodoro session completes, naturally or by
// skip, after its record has been persisted.
type SessionCompleted struct {
	Session store.Session
	Next    store.SessionKind
}

// HabitsChanged fires after any habit or completion mutation.
type HabitsChanged struct{}

// NotesChanged fires after any journal mutation.
type NotesChanged struct{}

// AchievementUnlocked fires once per achievement, on its first true
// predicate evaluation.
type AchievementUnlocked struct {
	Achievement store.Achievement
}

// Bus fans each event out to its type's subscribers, in subscription order.
type Bus struct {
	sessionCompleted    []func(SessionCompleted)
	habitsChanged       []func(HabitsChanged)
	notesChanged        []func(NotesChanged)
	achievementUnlocked []func(AchievementUnlocked)
}

func NewBus() *Bus {
	return &Bus{}
}

func (b *Bus) OnSessionCompleted(fn func(SessionCompleted)) {
	b.sessionCompleted = append(b.sessionCompleted, fn)
}

func (b *Bus) OnHabitsChanged(fn func(HabitsChanged)) {
	b.habitsChanged = append(b.habitsChanged, fn)
}

func (b *Bus) OnNotesChanged(fn func(NotesChanged)) {
	b.notesChanged = append(b.notesChanged, fn)
}

func (b *Bus) OnAchievementUnlocked(fn func(AchievementUnlocked)) {
	b.achievementUnlocked = append(b.achievementUnlocked, fn)
}

// Publishing on a nil bus is a no-op, so engines can be wired without one.

func (b *Bus) PublishSessionCompleted(e SessionCompleted) {
	if b == nil {
		return
	}
	for _, fn := range b.sessionCompleted {
		fn(e)
	}
}

func (b *Bus) PublishHabitsChanged() {
	if b == nil {
		return
	}
	for _, fn := range b.habitsChanged {
		fn(HabitsChanged{})
	}
}

func (b *Bus) PublishNotesChanged() {
	if b == nil {
		return
	}
	for _, fn := range b.notesChanged {
		fn(NotesChanged{})
	}
}

func (b *Bus) PublishAchievementUnlocked(e AchievementUnlocked) {
	if b == nil {
		return
	}
	for _, fn := range b.achievementUnlocked {
		fn(e)
	}
}
