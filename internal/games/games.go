// Package games holds the focus-break mini-game cores and the score log.
package games

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sadopc/focuskit/internal/store"
)

// Service records and reads game results.
type Service struct {
	store *store.Store
	log   *zap.Logger

	now func() time.Time
}

func NewService(s *store.Store, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: s, log: log, now: time.Now}
}

// RecordScore appends one round's result to the score log.
func (s *Service) RecordScore(kind store.GameKind, score int) {
	gs := store.GameScore{
		ID:         uuid.New(),
		Kind:       kind,
		Score:      score,
		RecordedAt: s.now(),
	}
	if err := s.store.AppendGameScore(gs); err != nil {
		s.log.Error("persist game score failed", zap.Error(err))
		return
	}
	s.log.Info("game score saved",
		zap.String("kind", string(kind)), zap.Int("score", score))
}

// RecordPuzzleSolve logs a completed puzzle. Every solve scores one,
// whatever the move count.
func (s *Service) RecordPuzzleSolve() {
	s.RecordScore(store.GamePuzzle, 1)
}

func (s *Service) Scores() []store.GameScore {
	return s.store.GameScores()
}

// Rounds counts the recorded rounds of kind.
func (s *Service) Rounds(kind store.GameKind) int {
	n := 0
	for _, gs := range s.store.GameScores() {
		if gs.Kind == kind {
			n++
		}
	}
	return n
}

// BestScore returns the highest recorded score for kind, zero when none.
func (s *Service) BestScore(kind store.GameKind) int {
	best := 0
	for _, gs := range s.store.GameScores() {
		if gs.Kind == kind && gs.Score > best {
			best = gs.Score
		}
	}
	return best
}
