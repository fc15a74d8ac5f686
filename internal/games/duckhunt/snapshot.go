package duckhunt

import (
	"github.com/vovakirdan/duckclick/internal/core"
	"github.com/vovakirdan/duckclick/internal/run"
	"github.com/vovakirdan/duckclick/internal/spawn"
)

// TargetSnapshot describes one live target.
type TargetSnapshot struct {
	ID        spawn.EntityID
	Kind      spawn.Kind
	Tier      spawn.Tier
	Pos       core.Vec
	Remaining float64
}

// Snapshot captures the complete game state for determinism testing.
type Snapshot struct {
	Tick           uint64
	Run            run.Snapshot
	Targets        []TargetSnapshot
	GoodRemaining  int
	DecoyRemaining int
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Tick: g.tick,
		Run:  g.controller.Snapshot(),
	}
	if sess := g.arena.Session(); sess != nil {
		s.GoodRemaining = sess.GoodRemaining()
		s.DecoyRemaining = sess.DecoyRemaining()
	}
	for _, t := range g.arena.Targets() {
		s.Targets = append(s.Targets, TargetSnapshot{
			ID:        t.ID,
			Kind:      t.Kind(),
			Tier:      t.Tier,
			Pos:       t.Pos,
			Remaining: t.Remaining(),
		})
	}
	return s
}
