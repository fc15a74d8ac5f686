// Package duckhunt wires the run controller, the spawn session and the
// targets into a playable game driven one fixed tick at a time.
package duckhunt

import (
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/duckclick/internal/checkpoint"
	"github.com/vovakirdan/duckclick/internal/core"
	"github.com/vovakirdan/duckclick/internal/run"
	"github.com/vovakirdan/duckclick/internal/spawn"
)

const (
	hudHeight    = 2 // status line and separator
	footerHeight = 1
	minScreenW   = 40
	minScreenH   = 14
)

// Options holds the collaborators of a Game.
type Options struct {
	Levels      run.LevelSource
	Checkpoints checkpoint.Store
	RunOptions  []run.Option
	Listeners   []run.Listener
	Observers   []Observer
	Padding     float64
	Logger      *log.Logger
}

// Game is the playable duck-clicking game.
type Game struct {
	opts   Options
	logger *log.Logger

	controller *run.Controller
	arena      *Arena
	rng        *rand.Rand

	tick    uint64
	dt      float64
	screenW int
	screenH int

	tooSmall bool
}

// New creates a game. Call Reset before the first Step.
func New(opts Options) *Game {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.Padding <= 0 {
		opts.Padding = DefaultPadding
	}
	return &Game{opts: opts, logger: logger}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "duckclick"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Duck Click"
}

// Mode returns the failure policy name, used as the score table key.
func (g *Game) Mode() string {
	if g.controller == nil {
		return run.MultiLife.String()
	}
	return g.controller.Policy().String()
}

// Subscribe adds a run listener that stays attached across resets.
func (g *Game) Subscribe(l run.Listener) {
	g.opts.Listeners = append(g.opts.Listeners, l)
	if g.controller != nil {
		g.controller.Subscribe(l)
	}
}

// Observe adds a target observer that stays attached across resets.
func (g *Game) Observe(o Observer) {
	g.opts.Observers = append(g.opts.Observers, o)
	if g.arena != nil {
		g.arena.Observe(o)
	}
}

// Controller exposes the run controller.
func (g *Game) Controller() *run.Controller {
	return g.controller
}

// Arena exposes the arena.
func (g *Game) Arena() *Arena {
	return g.arena
}

// Reset builds a fresh run. The checkpoint store is kept, so a saved
// checkpoint survives a reset.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0
	g.dt = cfg.TickSeconds()

	runOpts := append([]run.Option{run.WithLogger(g.logger)}, g.opts.RunOptions...)
	g.controller = run.New(g.opts.Levels, g.opts.Checkpoints, runOpts...)
	g.arena = NewArena(spawn.NewPolicy(g.rng), g.controller, core.Bounds{})
	g.arena.SetPadding(g.opts.Padding)
	g.controller.SetSpawner(g.arena)

	for _, l := range g.opts.Listeners {
		g.controller.Subscribe(l)
	}
	for _, o := range g.opts.Observers {
		g.arena.Observe(o)
	}

	g.Resize(cfg.ScreenW, cfg.ScreenH)
}

// Resize adapts the arena to a new screen size without restarting the run.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.tooSmall = w < minScreenW || h < minScreenH
	if g.arena != nil {
		g.arena.SetArea(playArea(w, h))
	}
}

// playArea is the region below the HUD and above the footer, inside a
// one-cell border.
func playArea(w, h int) core.Bounds {
	return core.BoundsFromRect(core.NewRect(1, hudHeight+1, max(w-2, 1), max(h-hudHeight-footerHeight-2, 1)))
}

// Step advances the game by one tick: commands, then the countdown, then
// clicks, then spawning and target lifetimes.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	consumed := g.handleCommands(in)
	g.controller.Tick(g.dt)

	if !consumed {
		for _, c := range in.Clicks {
			if g.controller.Phase() != run.PhasePlaying {
				break
			}
			g.arena.ClickAt(c.X, c.Y)
		}
	}

	// Pausing freezes every entity timer along with the countdown.
	if g.controller.Phase() == run.PhasePlaying {
		g.arena.Update(g.dt)
	}

	return core.StepResult{State: g.State()}
}

// handleCommands applies the frame's commands. It reports whether the
// frame's clicks were used to acknowledge a screen.
func (g *Game) handleCommands(in core.InputFrame) bool {
	c := g.controller
	phase := c.Phase()

	switch {
	case in.Has(core.ActionNewGame):
		c.NewGame()
		return false
	case in.Has(core.ActionRestart):
		c.RestartLevel()
		return false
	case in.Has(core.ActionPause):
		c.TogglePause()
		return false
	}

	// Outside play a click acknowledges the current screen, like Confirm.
	clicked := len(in.Clicks) > 0 && phase != run.PhasePlaying && phase != run.PhasePaused
	if !in.Has(core.ActionConfirm) && !clicked {
		return false
	}

	switch phase {
	case run.PhaseMenu:
		c.StartRun()
	case run.PhasePaused:
		c.TogglePause()
	case run.PhaseLevelComplete:
		c.Advance()
	case run.PhaseFailed:
		c.ResolveFailure()
	case run.PhaseRunOver, run.PhaseAllLevelsComplete:
		c.NewGame()
	}
	return clicked
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	phase := g.controller.Phase()
	return core.GameState{
		Score:    g.controller.State().Score,
		Phase:    phase.String(),
		GameOver: phase.Terminal(),
		Paused:   phase == run.PhasePaused,
	}
}
