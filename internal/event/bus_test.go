package event

import (
	"testing"

	"github.com/sadopc/focuskit/internal/store"
)

func TestFanOutInSubscriptionOrder(t *testing.T) {
	b := NewBus()
	var order []int
	b.OnHabitsChanged(func(HabitsChanged) { order = append(order, 1) })
	b.OnHabitsChanged(func(HabitsChanged) { order = append(order, 2) })

	b.PublishHabitsChanged()

	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Fatalf("wrong dispatch order: %v", order)
	}
}

func TestEventPayloadDelivered(t *testing.T) {
	b := NewBus()
	var got SessionCompleted
	b.OnSessionCompleted(func(e SessionCompleted) { got = e })

	sent := SessionCompleted{
		Session: store.Session{Kind: store.SessionWork},
		Next:    store.SessionLongBreak,
	}
	b.PublishSessionCompleted(sent)

	if got.Session.Kind != store.SessionWork || got.Next != store.SessionLongBreak {
		t.Fatalf("payload lost: %+v", got)
	}
}

func TestTypesAreIsolated(t *testing.T) {
	b := NewBus()
	notes, habits := 0, 0
	b.OnNotesChanged(func(NotesChanged) { notes++ })
	b.OnHabitsChanged(func(HabitsChanged) { habits++ })

	b.PublishNotesChanged()

	if notes != 1 || habits != 0 {
		t.Fatalf("cross-type delivery: notes=%d habits=%d", notes, habits)
	}
}

func TestPublishWithoutSubscribers(t *testing.T) {
	b := NewBus()
	b.PublishSessionCompleted(SessionCompleted{})
	b.PublishAchievementUnlocked(AchievementUnlocked{})
}

func TestNilBusIsSafe(t *testing.T) {
	var b *Bus
	b.PublishSessionCompleted(SessionCompleted{})
	b.PublishHabitsChanged()
	b.PublishNotesChanged()
	b.PublishAchievementUnlocked(AchievementUnlocked{})
}
