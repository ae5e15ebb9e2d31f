package games

import "github.com/sadopc/focuskit/internal/store"

// Reaction tracks one round of the reaction game: a target appears, a hit
// scores a point, finishing the round records the total.
type Reaction struct {
	active        bool
	score         int
	targetVisible bool
}

func NewReaction() *Reaction {
	return &Reaction{}
}

func (r *Reaction) Active() bool        { return r.active }
func (r *Reaction) Score() int          { return r.score }
func (r *Reaction) TargetVisible() bool { return r.targetVisible }

func (r *Reaction) Start() {
	r.active = true
	r.score = 0
	r.targetVisible = true
}

// ShowTarget makes the next target hittable.
func (r *Reaction) ShowTarget() {
	if r.active {
		r.targetVisible = true
	}
}

// HideTarget expires the current target without scoring.
func (r *Reaction) HideTarget() {
	r.targetVisible = false
}

// Hit scores the visible target. Reports whether the tap counted.
func (r *Reaction) Hit() bool {
	if !r.active || !r.targetVisible {
		return false
	}
	r.score++
	r.targetVisible = false
	return true
}

// Finish ends the round and returns the final score, recording it through
// svc when any points were scored.
func (r *Reaction) Finish(svc *Service) int {
	if !r.active {
		return r.score
	}
	r.active = false
	r.targetVisible = false
	if svc != nil && r.score > 0 {
		svc.RecordScore(store.GameReaction, r.score)
	}
	return r.score
}
