package spawn

import "github.com/vovakirdan/duckclick/internal/level"

// EntityID identifies a spawned target within a game instance.
type EntityID uint64

// Session is the spawn activity of one level attempt. It is a cooperative
// routine: Step is called once per tick and spawns whenever the interval
// timer runs out. The first spawn happens on the first Step.
type Session struct {
	policy   *Policy
	interval float64

	goodRemaining  int
	decoyRemaining int
	untilNext      float64

	active  map[EntityID]struct{}
	stopped bool
}

// NewSession opens a session with the level's quotas and pacing.
func NewSession(cfg level.Config, policy *Policy) *Session {
	interval := cfg.SpawnIntervalSeconds
	if interval <= 0 {
		interval = level.DefaultSpawnIntervalSeconds
	}
	return &Session{
		policy:         policy,
		interval:       interval,
		goodRemaining:  max(cfg.GoodTargetCount, 0),
		decoyRemaining: max(cfg.DecoyTargetCount, 0),
		active:         make(map[EntityID]struct{}),
	}
}

// Step advances the interval timer by dt seconds and calls spawn for every
// target due. A large dt may produce several spawns. Stopping the session,
// including from inside spawn, prevents any further calls.
func (s *Session) Step(dt float64, spawn func(Kind)) {
	if s.stopped || s.Exhausted() {
		return
	}

	s.untilNext -= dt
	for s.untilNext <= 0 && !s.stopped && !s.Exhausted() {
		kind := s.policy.ChooseNextKind(s.goodRemaining, s.decoyRemaining)
		if kind == KindGood {
			s.goodRemaining--
		} else {
			s.decoyRemaining--
		}
		s.untilNext += s.interval
		spawn(kind)
	}
}

// Stop cancels the session. It is permanent and idempotent.
func (s *Session) Stop() {
	s.stopped = true
}

// Stopped reports whether the session was cancelled.
func (s *Session) Stopped() bool {
	return s.stopped
}

// Track registers a live entity belonging to this session.
func (s *Session) Track(id EntityID) {
	s.active[id] = struct{}{}
}

// Release removes an entity once it has been clicked, expired or cleared.
func (s *Session) Release(id EntityID) {
	delete(s.active, id)
}

// Active returns the number of live entities.
func (s *Session) Active() int {
	return len(s.active)
}

// IsActive reports whether id is a live entity of this session.
func (s *Session) IsActive(id EntityID) bool {
	_, ok := s.active[id]
	return ok
}

// GoodRemaining returns how many good targets are still to be spawned.
func (s *Session) GoodRemaining() int {
	return s.goodRemaining
}

// DecoyRemaining returns how many decoys are still to be spawned.
func (s *Session) DecoyRemaining() int {
	return s.decoyRemaining
}

// Exhausted reports whether both quotas are used up.
func (s *Session) Exhausted() bool {
	return s.goodRemaining <= 0 && s.decoyRemaining <= 0
}

// Finished reports whether the session will produce nothing more and no
// entity of it is still alive.
func (s *Session) Finished() bool {
	return (s.stopped || s.Exhausted()) && len(s.active) == 0
}
