// Package target implements the timed clickable entities of a level.
//
// Every target shares one state machine, Alive -> {Clicked, Expired}, and
// differs only in what it reports when it leaves Alive. The rewarding and
// penalizing behaviors are two Variant implementations.
package target

import (
	"github.com/vovakirdan/duckclick/internal/core"
	"github.com/vovakirdan/duckclick/internal/spawn"
)

// State is a target's lifecycle state.
type State int

const (
	StateAlive State = iota
	StateClicked
	StateExpired
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateAlive:
		return "alive"
	case StateClicked:
		return "clicked"
	case StateExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// Reporter receives the outcome of a target's terminal transition.
// The run controller implements it.
type Reporter interface {
	GoodClicked(points int)
	GoodExpired()
	DecoyClicked()
	DecoyExpired()
}

// Variant is the kind-specific behavior of a target.
type Variant interface {
	Kind() spawn.Kind
	Clicked(r Reporter, t *Target)
	Expired(r Reporter, t *Target)
}

// Target is a spawned clickable entity.
type Target struct {
	ID       spawn.EntityID
	Variant  Variant
	Tier     spawn.Tier
	Pos      core.Vec
	Lifetime float64

	elapsed float64
	state   State
}

// New creates a live target.
func New(id spawn.EntityID, v Variant, tier spawn.Tier, pos core.Vec, lifetime float64) *Target {
	return &Target{
		ID:       id,
		Variant:  v,
		Tier:     tier,
		Pos:      pos,
		Lifetime: lifetime,
	}
}

// NewOfKind creates a target with the variant for kind.
func NewOfKind(id spawn.EntityID, kind spawn.Kind, tier spawn.Tier, pos core.Vec, lifetime float64) *Target {
	var v Variant = Good{}
	if kind == spawn.KindDecoy {
		v = Decoy{}
	}
	return New(id, v, tier, pos, lifetime)
}

// Kind returns the variant's kind.
func (t *Target) Kind() spawn.Kind {
	return t.Variant.Kind()
}

// State returns the lifecycle state.
func (t *Target) State() State {
	return t.state
}

// Alive reports whether the target can still be clicked.
func (t *Target) Alive() bool {
	return t.state == StateAlive
}

// Elapsed returns how long the target has been alive.
func (t *Target) Elapsed() float64 {
	return t.elapsed
}

// Remaining returns the fraction of lifetime left, in [0, 1].
func (t *Target) Remaining() float64 {
	if t.Lifetime <= 0 {
		return 0
	}
	return core.ClampF(1-t.elapsed/t.Lifetime, 0, 1)
}

// Click handles an external click. It returns true only when this call made
// the transition; clicks on a terminal target are ignored.
func (t *Target) Click(r Reporter) bool {
	if t.state != StateAlive {
		return false
	}
	t.state = StateClicked
	t.Variant.Clicked(r, t)
	return true
}

// Advance ages the target by dt seconds and expires it once its lifetime is
// reached. It returns true only when this call made the transition.
func (t *Target) Advance(dt float64, r Reporter) bool {
	if t.state != StateAlive {
		return false
	}
	t.elapsed += dt
	if t.elapsed < t.Lifetime {
		return false
	}
	t.state = StateExpired
	t.Variant.Expired(r, t)
	return true
}

// Size returns the hit-box dimensions in cells for a tier.
func Size(tier spawn.Tier) (w, h int) {
	switch tier {
	case spawn.TierLarge:
		return 5, 3
	case spawn.TierMedium:
		return 3, 2
	default:
		return 1, 1
	}
}

// Bounds returns the cell rectangle the target occupies, centred on Pos.
func (t *Target) Bounds() core.Rect {
	w, h := Size(t.Tier)
	cx, cy := int(t.Pos.X+0.5), int(t.Pos.Y+0.5)
	return core.NewRect(cx-w/2, cy-h/2, w, h)
}

// Contains reports whether the cell (x, y) hits the target.
func (t *Target) Contains(x, y int) bool {
	return t.Bounds().Contains(x, y)
}
