// Package notify is the notification delivery collaborator. The engines
// treat delivery as best effort: a scheduling failure is logged by the
// caller and never rolls back the domain mutation that requested it.
package notify

import (
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
)

// FireSpec says when a notification fires: either once after Offset, or
// repeating daily at Hour:Minute.
type FireSpec struct {
	Repeating bool
	Hour      int
	Minute    int
	Offset    time.Duration
}

// Once returns a one-shot spec firing after d.
func Once(d time.Duration) FireSpec {
	return FireSpec{Offset: d}
}

// DailyAt returns a repeating spec firing every day at hour:minute.
func DailyAt(hour, minute int) FireSpec {
	return FireSpec{Repeating: true, Hour: hour, Minute: minute}
}

// Request is one schedulable notification. ID is the addressable handle used
// for cancellation; callers own the identifier scheme.
type Request struct {
	ID    string
	Spec  FireSpec
	Title string
	Body  string
}

// Scheduler is the delivery interface the core talks to. Pending exists for
// display only; correctness never depends on polling it.
type Scheduler interface {
	Schedule(req Request) error
	Cancel(ids ...string)
	CancelPrefix(prefix string)
	Pending(prefix string) []Request
}

// Registry is the in-process Scheduler. Scheduling the same ID replaces the
// previous request, matching cancel-then-schedule semantics.
type Registry struct {
	log     *zap.Logger
	pending map[string]Request
}

func NewRegistry(log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{
		log:     log,
		pending: make(map[string]Request),
	}
}

func (r *Registry) Schedule(req Request) error {
	r.pending[req.ID] = req
	if req.Spec.Repeating {
		r.log.Debug("notification scheduled",
			zap.String("id", req.ID),
			zap.Int("hour", req.Spec.Hour),
			zap.Int("minute", req.Spec.Minute))
	} else {
		r.log.Debug("notification scheduled",
			zap.String("id", req.ID),
			zap.Duration("offset", req.Spec.Offset))
	}
	return nil
}

func (r *Registry) Cancel(ids ...string) {
	for _, id := range ids {
		delete(r.pending, id)
	}
}

func (r *Registry) CancelPrefix(prefix string) {
	var removed int
	for id := range r.pending {
		if strings.HasPrefix(id, prefix) {
			delete(r.pending, id)
			removed++
		}
	}
	if removed > 0 {
		r.log.Debug("notifications cancelled",
			zap.String("prefix", prefix), zap.Int("count", removed))
	}
}

func (r *Registry) Pending(prefix string) []Request {
	var reqs []Request
	for id, req := range r.pending {
		if strings.HasPrefix(id, prefix) {
			reqs = append(reqs, req)
		}
	}
	sort.Slice(reqs, func(i, j int) bool { return reqs[i].ID < reqs[j].ID })
	return reqs
}
