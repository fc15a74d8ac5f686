package run

import "github.com/vovakirdan/duckclick/internal/level"

// Listener observes a controller. Calls are synchronous and happen on the
// goroutine that drives the controller, in subscription order.
type Listener interface {
	PhaseChanged(p Phase)
	LevelLoaded(cfg level.Config)
	ScoreChanged(score int)
	LivesChanged(lives int)
	TimeChanged(timeLeft float64)
	// RunEnded fires once when a run reaches RunOver or AllLevelsComplete,
	// or when a single-life failure discards it.
	RunEnded(finalScore int)
}

// NopListener implements Listener with no-ops. Embed it to observe only
// some events.
type NopListener struct{}

func (NopListener) PhaseChanged(Phase)       {}
func (NopListener) LevelLoaded(level.Config) {}
func (NopListener) ScoreChanged(int)         {}
func (NopListener) LivesChanged(int)         {}
func (NopListener) TimeChanged(float64)      {}
func (NopListener) RunEnded(int)             {}

type subscription struct {
	l      Listener
	active bool
}

// Subscribe registers l and returns a function that removes it.
// The returned function is idempotent.
func (c *Controller) Subscribe(l Listener) (unsubscribe func()) {
	sub := &subscription{l: l, active: true}
	c.subs = append(c.subs, sub)
	return func() {
		if !sub.active {
			return
		}
		sub.active = false
		for i, s := range c.subs {
			if s == sub {
				c.subs = append(c.subs[:i:i], c.subs[i+1:]...)
				break
			}
		}
	}
}

// emit delivers to every listener subscribed when the event fired. A listener
// removed by an earlier listener in the same delivery is skipped.
func (c *Controller) emit(fn func(Listener)) {
	subs := append([]*subscription(nil), c.subs...)
	for _, s := range subs {
		if s.active {
			fn(s.l)
		}
	}
}
