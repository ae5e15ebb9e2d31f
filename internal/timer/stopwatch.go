package timer

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sadopc/focuskit/internal/store"
)

// Stopwatch counts up at 0.1s tick granularity. Stopping or resetting with
// nonzero elapsed time appends a TimerSession record.
type Stopwatch struct {
	store *store.Store
	log   *zap.Logger

	running   bool
	elapsed   time.Duration
	startedAt time.Time

	now func() time.Time
}

func NewStopwatch(s *store.Store, log *zap.Logger) *Stopwatch {
	if log == nil {
		log = zap.NewNop()
	}
	return &Stopwatch{store: s, log: log, now: time.Now}
}

func (w *Stopwatch) Running() bool          { return w.running }
func (w *Stopwatch) Elapsed() time.Duration { return w.elapsed }

func (w *Stopwatch) Start() {
	if w.running {
		return
	}
	if w.elapsed == 0 || w.startedAt.IsZero() {
		w.startedAt = w.now()
	}
	w.running = true
	w.log.Info("stopwatch started")
}

func (w *Stopwatch) Pause() {
	if !w.running {
		return
	}
	w.running = false
	w.log.Info("stopwatch paused", zap.Duration("elapsed", w.elapsed))
}

// Tick advances the running stopwatch by elapsed; a no-op while paused.
func (w *Stopwatch) Tick(elapsed time.Duration) {
	if !w.running {
		return
	}
	w.elapsed += elapsed
}

// Stop ends the run, persisting it when any time accumulated. The elapsed
// reading stays on the display until Reset.
func (w *Stopwatch) Stop() {
	if w.elapsed > 0 && !w.startedAt.IsZero() {
		w.persist()
		w.log.Info("stopwatch stopped", zap.Duration("elapsed", w.elapsed))
	}
	w.running = false
	w.startedAt = time.Time{}
}

// Reset persists any accumulated run and zeroes the stopwatch.
func (w *Stopwatch) Reset() {
	if w.elapsed > 0 && !w.startedAt.IsZero() {
		w.persist()
	}
	w.running = false
	w.elapsed = 0
	w.startedAt = time.Time{}
}

func (w *Stopwatch) persist() {
	ts := store.TimerSession{
		ID:         uuid.New(),
		DurationMS: w.elapsed.Milliseconds(),
		StartedAt:  w.startedAt,
		EndedAt:    w.now(),
	}
	if err := w.store.AppendTimerSession(ts); err != nil {
		w.log.Error("persist stopwatch run failed", zap.Error(err))
	}
}
