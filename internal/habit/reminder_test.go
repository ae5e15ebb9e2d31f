package habit

import (
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/sadopc/focuskit/internal/store"
)

func habitWith(policy *store.ReminderPolicy) store.Habit {
	return store.Habit{ID: uuid.New(), Name: "Stretch", Reminder: policy}
}

func TestExpandNilPolicy(t *testing.T) {
	if got := Expand(habitWith(nil)); got != nil {
		t.Fatalf("expected nil for habit without reminders, got %+v", got)
	}
}

func TestExpandDaily(t *testing.T) {
	h := habitWith(&store.ReminderPolicy{
		Interval: store.ReminderDaily,
		At:       store.TimeOfDay{Hour: 7, Minute: 30},
	})

	got := Expand(h)
	if len(got) != 1 {
		t.Fatalf("expected 1 point, got %d", len(got))
	}
	if got[0].ID != h.ID.String() {
		t.Fatalf("daily point must use the bare habit id, got %q", got[0].ID)
	}
	if got[0].At != (store.TimeOfDay{Hour: 7, Minute: 30}) {
		t.Fatalf("wrong firing time: %+v", got[0].At)
	}
}

func TestExpandHourlyKeepsFirstMinuteOnly(t *testing.T) {
	h := habitWith(&store.ReminderPolicy{
		Interval: store.ReminderHourly,
		From:     store.TimeOfDay{Hour: 9, Minute: 15},
		To:       store.TimeOfDay{Hour: 11, Minute: 45}, // To's minute is ignored
	})

	got := Expand(h)
	want := []store.TimeOfDay{
		{Hour: 9, Minute: 15},
		{Hour: 10, Minute: 0},
		{Hour: 11, Minute: 0},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d points, got %d", len(want), len(got))
	}
	for i, w := range want {
		if got[i].At != w {
			t.Fatalf("point %d: expected %+v, got %+v", i, w, got[i].At)
		}
		wantID := fmt.Sprintf("%s_%d", h.ID, w.Hour)
		if got[i].ID != wantID {
			t.Fatalf("point %d: expected id %q, got %q", i, wantID, got[i].ID)
		}
	}
}

func TestExpandHourlySingleHour(t *testing.T) {
	h := habitWith(&store.ReminderPolicy{
		Interval: store.ReminderHourly,
		From:     store.TimeOfDay{Hour: 14, Minute: 20},
		To:       store.TimeOfDay{Hour: 14, Minute: 59},
	})

	got := Expand(h)
	if len(got) != 1 {
		t.Fatalf("expected 1 point, got %d", len(got))
	}
	if got[0].At != (store.TimeOfDay{Hour: 14, Minute: 20}) {
		t.Fatalf("single-hour range lost the start minute: %+v", got[0].At)
	}
}

func TestExpandHourlyInvertedRangeIsEmpty(t *testing.T) {
	h := habitWith(&store.ReminderPolicy{
		Interval: store.ReminderHourly,
		From:     store.TimeOfDay{Hour: 18},
		To:       store.TimeOfDay{Hour: 9},
	})
	if got := Expand(h); len(got) != 0 {
		t.Fatalf("inverted range produced %d points", len(got))
	}
}

func TestExpandMultiple(t *testing.T) {
	h := habitWith(&store.ReminderPolicy{
		Interval: store.ReminderMultiple,
		Times: []store.TimeOfDay{
			{Hour: 8, Minute: 0},
			{Hour: 13, Minute: 30},
			{Hour: 21, Minute: 15},
		},
	})

	got := Expand(h)
	if len(got) != 3 {
		t.Fatalf("expected 3 points, got %d", len(got))
	}
	for i, p := range got {
		wantID := fmt.Sprintf("%s_%d", h.ID, i)
		if p.ID != wantID {
			t.Fatalf("point %d: expected id %q, got %q", i, wantID, p.ID)
		}
	}
	if got[1].At != (store.TimeOfDay{Hour: 13, Minute: 30}) {
		t.Fatalf("wrong firing time: %+v", got[1].At)
	}
}

func TestExpandMultipleEmptyTimes(t *testing.T) {
	h := habitWith(&store.ReminderPolicy{Interval: store.ReminderMultiple})
	if got := Expand(h); len(got) != 0 {
		t.Fatalf("expected no points, got %d", len(got))
	}
}
