package duckhunt

import (
	"github.com/vovakirdan/duckclick/internal/core"
	"github.com/vovakirdan/duckclick/internal/level"
	"github.com/vovakirdan/duckclick/internal/spawn"
	"github.com/vovakirdan/duckclick/internal/target"
)

// DefaultPadding keeps spawned targets clear of the arena edge.
const DefaultPadding = 3.0

// Reporter receives target outcomes and spawn notifications.
// *run.Controller implements it.
type Reporter interface {
	target.Reporter
	EntitySpawned()
}

// Observer is told about every target that spawns or resolves.
// The audio player uses it for hit and miss sounds.
type Observer interface {
	TargetSpawned(t *target.Target)
	TargetResolved(t *target.Target)
}

// Arena owns the live spawn session and its targets. It implements
// run.Spawner.
type Arena struct {
	policy    *spawn.Policy
	reporter  Reporter
	observers []Observer

	area    core.Bounds
	padding float64

	level   level.Config
	session *spawn.Session
	targets []*target.Target
	nextID  spawn.EntityID
}

// NewArena creates an idle arena spawning inside area.
func NewArena(policy *spawn.Policy, reporter Reporter, area core.Bounds) *Arena {
	return &Arena{
		policy:   policy,
		reporter: reporter,
		area:     area,
		padding:  DefaultPadding,
	}
}

// Observe adds an observer.
func (a *Arena) Observe(o Observer) {
	a.observers = append(a.observers, o)
}

// SetArea changes where new targets appear. Live targets stay put.
func (a *Arena) SetArea(area core.Bounds) {
	a.area = area
}

// SetPadding changes the edge inset for new targets.
func (a *Arena) SetPadding(p float64) {
	if p >= 0 {
		a.padding = p
	}
}

// StartSpawning replaces any running session with a new one for cfg.
func (a *Arena) StartSpawning(cfg level.Config) {
	a.StopSpawning()
	a.ClearActiveEntities()

	cfg.SizeDistribution = cfg.SizeDistribution.Normalize()
	a.level = cfg
	a.session = spawn.NewSession(cfg, a.policy)
}

// StopSpawning cancels the session. Targets already out keep their timers.
func (a *Arena) StopSpawning() {
	if a.session != nil {
		a.session.Stop()
	}
}

// ClearActiveEntities removes every live target without reporting it.
func (a *Arena) ClearActiveEntities() {
	if a.session != nil {
		for _, t := range a.targets {
			a.session.Release(t.ID)
		}
	}
	a.targets = nil
}

// Update advances the session and every target by dt seconds.
func (a *Arena) Update(dt float64) {
	if a.session != nil {
		a.session.Step(dt, a.spawnTarget)
	}

	// Reporting can clear the arena, so walk a copy.
	live := append([]*target.Target(nil), a.targets...)
	for _, t := range live {
		if t.Advance(dt, a.reporter) {
			a.resolve(t)
		}
	}
}

// ClickAt resolves a click on cell (x, y) against the top-most live target.
// It reports whether a target was hit.
func (a *Arena) ClickAt(x, y int) bool {
	for i := len(a.targets) - 1; i >= 0; i-- {
		t := a.targets[i]
		if !t.Alive() || !t.Contains(x, y) {
			continue
		}
		if t.Click(a.reporter) {
			a.resolve(t)
			return true
		}
	}
	return false
}

// Targets returns the live targets, oldest first.
func (a *Arena) Targets() []*target.Target {
	return a.targets
}

// Session returns the current spawn session, or nil before the first level.
func (a *Arena) Session() *spawn.Session {
	return a.session
}

func (a *Arena) spawnTarget(kind spawn.Kind) {
	a.nextID++
	tier := a.policy.ChooseSizeTier(a.level.SizeDistribution)
	pos := a.policy.ChoosePosition(a.area, a.padding)
	t := target.NewOfKind(a.nextID, kind, tier, pos, a.level.TargetLifetimeSeconds)

	a.targets = append(a.targets, t)
	a.session.Track(t.ID)
	for _, o := range a.observers {
		o.TargetSpawned(t)
	}
	a.reporter.EntitySpawned()
}

// resolve drops a target that reached a terminal state.
func (a *Arena) resolve(t *target.Target) {
	if a.session != nil {
		a.session.Release(t.ID)
	}
	for i, live := range a.targets {
		if live == t {
			a.targets = append(a.targets[:i], a.targets[i+1:]...)
			break
		}
	}
	for _, o := range a.observers {
		o.TargetResolved(t)
	}
}
