package notify

import (
	"testing"
	"time"

	"go.uber.org/zap"
)

func newTestRegistry() *Registry {
	return NewRegistry(zap.NewNop())
}

func TestScheduleAndPending(t *testing.T) {
	r := newTestRegistry()
	if err := r.Schedule(Request{ID: "a", Spec: DailyAt(9, 30), Title: "T"}); err != nil {
		t.Fatal(err)
	}

	got := r.Pending("a")
	if len(got) != 1 {
		t.Fatalf("expected 1 pending, got %d", len(got))
	}
	if !got[0].Spec.Repeating || got[0].Spec.Hour != 9 || got[0].Spec.Minute != 30 {
		t.Fatalf("wrong spec: %+v", got[0].Spec)
	}
}

func TestScheduleSameIDReplaces(t *testing.T) {
	r := newTestRegistry()
	r.Schedule(Request{ID: "a", Spec: DailyAt(9, 0)})
	r.Schedule(Request{ID: "a", Spec: DailyAt(10, 0)})

	got := r.Pending("a")
	if len(got) != 1 {
		t.Fatalf("expected replacement, got %d requests", len(got))
	}
	if got[0].Spec.Hour != 10 {
		t.Fatalf("expected the newer request, got hour %d", got[0].Spec.Hour)
	}
}

func TestCancel(t *testing.T) {
	r := newTestRegistry()
	r.Schedule(Request{ID: "a"})
	r.Schedule(Request{ID: "b"})
	r.Cancel("a", "missing")

	if got := len(r.Pending("")); got != 1 {
		t.Fatalf("expected 1 left, got %d", got)
	}
}

func TestCancelPrefix(t *testing.T) {
	r := newTestRegistry()
	r.Schedule(Request{ID: "habit1_9"})
	r.Schedule(Request{ID: "habit1_10"})
	r.Schedule(Request{ID: "habit2_9"})

	r.CancelPrefix("habit1")

	got := r.Pending("")
	if len(got) != 1 || got[0].ID != "habit2_9" {
		t.Fatalf("prefix cancel wrong: %+v", got)
	}
}

func TestPendingSorted(t *testing.T) {
	r := newTestRegistry()
	r.Schedule(Request{ID: "c"})
	r.Schedule(Request{ID: "a"})
	r.Schedule(Request{ID: "b"})

	got := r.Pending("")
	if got[0].ID != "a" || got[1].ID != "b" || got[2].ID != "c" {
		t.Fatalf("pending not sorted: %+v", got)
	}
}

func TestOnceSpec(t *testing.T) {
	spec := Once(5 * time.Second)
	if spec.Repeating {
		t.Fatal("once spec must not repeat")
	}
	if spec.Offset != 5*time.Second {
		t.Fatalf("wrong offset: %v", spec.Offset)
	}
}

func TestNilLoggerRegistry(t *testing.T) {
	r := NewRegistry(nil)
	if err := r.Schedule(Request{ID: "a"}); err != nil {
		t.Fatal(err)
	}
	r.CancelPrefix("a")
}
