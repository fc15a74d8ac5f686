// Package run implements the level/run state machine: it owns score, lives
// and the countdown, consumes target outcomes, decides wins and losses, and
// drives level progression and checkpoints.
//
// A Controller is not safe for concurrent use. It is meant to be driven from
// a single update loop, which makes every handler run to completion before
// the next tick.
package run

import (
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/duckclick/internal/checkpoint"
	"github.com/vovakirdan/duckclick/internal/level"
)

// Defaults for a new controller.
const (
	DefaultStartingLives   = 3
	DefaultCheckpointLevel = 6
	DefaultFirstLevel      = 1
)

// LevelSource supplies level records. *level.Store implements it.
type LevelSource interface {
	Load(id int) level.Config
	NextLevelID(current int) (int, bool)
}

// Spawner produces the targets of a level. StartSpawning must replace any
// session that is still running.
type Spawner interface {
	StartSpawning(cfg level.Config)
	StopSpawning()
	ClearActiveEntities()
}

// State is the mutable progress of a run.
type State struct {
	Score          int
	LivesRemaining int
	TimeLeft       float64
	GoodClicked    int
	GoodMissed     int
	TotalSpawned   int
	CurrentLevelID int
	Phase          Phase
}

// Option configures a Controller.
type Option func(*Controller)

// WithStartingLives sets the lives a MultiLife run starts with.
func WithStartingLives(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.startingLives = n
		}
	}
}

// WithFailurePolicy selects how failed levels are resolved.
func WithFailurePolicy(p FailurePolicy) Option {
	return func(c *Controller) {
		c.policy = p
	}
}

// WithCheckpointLevel sets the level whose completion writes a checkpoint.
// Zero disables checkpoints.
func WithCheckpointLevel(id int) Option {
	return func(c *Controller) {
		c.checkpointLevel = id
	}
}

// WithFirstLevel sets the level a fresh run starts on.
func WithFirstLevel(id int) Option {
	return func(c *Controller) {
		if id > 0 {
			c.firstLevel = id
		}
	}
}

// WithSpawner attaches the spawner. It can also be attached later with
// SetSpawner.
func WithSpawner(s Spawner) Option {
	return func(c *Controller) {
		c.spawner = s
	}
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// Controller is the run state machine.
type Controller struct {
	levels      LevelSource
	checkpoints checkpoint.Store
	spawner     Spawner
	logger      *log.Logger

	startingLives   int
	policy          FailurePolicy
	checkpointLevel int
	firstLevel      int

	state State
	level level.Config
	subs  []*subscription
}

// New creates a controller in the Menu phase on the first level.
// A nil checkpoint store is replaced with an in-memory one.
func New(levels LevelSource, checkpoints checkpoint.Store, opts ...Option) *Controller {
	c := &Controller{
		levels:          levels,
		checkpoints:     checkpoints,
		logger:          log.New(io.Discard),
		startingLives:   DefaultStartingLives,
		checkpointLevel: DefaultCheckpointLevel,
		firstLevel:      DefaultFirstLevel,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.checkpoints == nil {
		c.checkpoints = checkpoint.NewMemory()
	}

	c.state = State{
		LivesRemaining: c.initialLives(),
		CurrentLevelID: c.firstLevel,
		Phase:          PhaseMenu,
	}
	c.level = c.levels.Load(c.firstLevel)
	c.state.TimeLeft = c.level.TimeLimitSeconds
	return c
}

// SetSpawner attaches or replaces the spawner.
func (c *Controller) SetSpawner(s Spawner) {
	c.spawner = s
}

// State returns a copy of the run state.
func (c *Controller) State() State {
	return c.state
}

// Phase returns the current phase.
func (c *Controller) Phase() Phase {
	return c.state.Phase
}

// Level returns the configuration of the current level.
func (c *Controller) Level() level.Config {
	return c.level
}

// Policy returns the failure policy.
func (c *Controller) Policy() FailurePolicy {
	return c.policy
}

// CheckpointLevel returns the level whose completion writes a checkpoint.
func (c *Controller) CheckpointLevel() int {
	return c.checkpointLevel
}

func (c *Controller) initialLives() int {
	if c.policy == SingleLife {
		return 1
	}
	return c.startingLives
}

// StartRun begins playing the current level from the Menu phase.
// Without a spawner the run cannot start and the call does nothing.
func (c *Controller) StartRun() {
	if c.state.Phase != PhaseMenu {
		return
	}
	if !c.requireSpawner("start run") {
		return
	}
	c.beginLevel(c.state.CurrentLevelID)
}

// Tick advances the countdown by dt seconds while Playing.
func (c *Controller) Tick(dt float64) {
	if c.state.Phase != PhasePlaying || dt <= 0 {
		return
	}
	c.spendTime(dt)
}

// GoodClicked records a hit on a good target worth points.
func (c *Controller) GoodClicked(points int) {
	if c.state.Phase != PhasePlaying {
		return
	}
	c.state.GoodClicked++
	c.addScore(max(points, 0))

	if c.state.GoodClicked < c.level.GoodTargetCount {
		return
	}

	bonus := int(math.Round(c.state.TimeLeft * 10))
	c.addScore(bonus)
	c.logger.Info("level complete",
		"level", c.state.CurrentLevelID,
		"score", c.state.Score,
		"timeBonus", bonus,
	)
	c.endLevel(PhaseLevelComplete)
}

// GoodExpired records a good target that timed out. Misses carry no penalty.
func (c *Controller) GoodExpired() {
	if c.state.Phase != PhasePlaying {
		return
	}
	c.state.GoodMissed++
}

// DecoyClicked applies the level's time penalty.
func (c *Controller) DecoyClicked() {
	if c.state.Phase != PhasePlaying {
		return
	}
	penalty := float64(max(c.level.DecoyPenaltySeconds, 0))
	if penalty == 0 {
		return
	}
	c.spendTime(penalty)
}

// DecoyExpired records a decoy that timed out. It has no effect.
func (c *Controller) DecoyExpired() {}

// EntitySpawned counts a spawned target.
func (c *Controller) EntitySpawned() {
	if c.state.Phase != PhasePlaying {
		return
	}
	c.state.TotalSpawned++
}

// TogglePause switches between Playing and Paused.
func (c *Controller) TogglePause() {
	switch c.state.Phase {
	case PhasePlaying:
		c.setPhase(PhasePaused)
	case PhasePaused:
		c.setPhase(PhasePlaying)
	}
}

// Advance moves on from a completed level: it writes the checkpoint when
// the level is the checkpoint level, then starts the next level or ends the
// run when there is none.
func (c *Controller) Advance() {
	if c.state.Phase != PhaseLevelComplete {
		return
	}

	if c.checkpointLevel > 0 && c.state.CurrentLevelID == c.checkpointLevel {
		snap := checkpoint.Snapshot{
			LevelID: c.state.CurrentLevelID,
			Score:   c.state.Score,
			Lives:   c.state.LivesRemaining,
		}
		if err := c.checkpoints.Save(snap); err != nil {
			c.logger.Error("checkpoint not saved", "level", snap.LevelID, "err", err)
		} else {
			c.logger.Info("checkpoint saved", "level", snap.LevelID, "score", snap.Score, "lives", snap.Lives)
		}
	}

	next, ok := c.levels.NextLevelID(c.state.CurrentLevelID)
	if !ok {
		c.setPhase(PhaseAllLevelsComplete)
		c.endRun()
		return
	}
	if !c.requireSpawner("advance") {
		return
	}
	c.beginLevel(next)
}

// ResolveFailure applies the failure policy to a Failed level.
func (c *Controller) ResolveFailure() {
	if c.state.Phase != PhaseFailed {
		return
	}

	if c.policy == SingleLife {
		c.endRun()
		c.clearCheckpoint()
		c.resetRun()
		c.setPhase(PhaseMenu)
		return
	}

	c.setLives(c.state.LivesRemaining - 1)
	if c.state.LivesRemaining > 0 {
		c.loadLevel(c.state.CurrentLevelID)
		c.setPhase(PhaseMenu)
		return
	}

	c.clearCheckpoint()
	c.setPhase(PhaseRunOver)
	c.endRun()
	c.setLives(c.startingLives)
}

// RestartLevel replays a level from Failed, Paused or Menu. A saved
// checkpoint restores its level, score and lives first.
func (c *Controller) RestartLevel() {
	switch c.state.Phase {
	case PhaseFailed, PhasePaused, PhaseMenu:
	default:
		return
	}
	if !c.requireSpawner("restart level") {
		return
	}

	if snap, ok := c.checkpoints.Load(); ok {
		c.logger.Info("restoring checkpoint", "level", snap.LevelID, "score", snap.Score, "lives", snap.Lives)
		c.state.CurrentLevelID = snap.LevelID
		c.setScore(snap.Score)
		c.setLives(snap.Lives)
	}
	c.beginLevel(c.state.CurrentLevelID)
}

// NewGame discards all progress, including the checkpoint, and returns to
// the Menu on the first level. It is valid from any phase.
func (c *Controller) NewGame() {
	c.clearCheckpoint()
	c.resetRun()
	c.setPhase(PhaseMenu)
}

func (c *Controller) resetRun() {
	c.stopSpawner()
	c.state.CurrentLevelID = c.firstLevel
	c.setScore(0)
	c.setLives(c.initialLives())
	c.loadLevel(c.firstLevel)
}

// beginLevel loads id and starts a fresh spawn session for it.
func (c *Controller) beginLevel(id int) {
	c.stopSpawner()
	c.loadLevel(id)
	c.setPhase(PhasePlaying)
	c.spawner.StartSpawning(c.level)
}

// loadLevel makes id current and resets the per-level counters.
func (c *Controller) loadLevel(id int) {
	c.level = c.levels.Load(id)
	c.state.CurrentLevelID = id
	c.state.GoodClicked = 0
	c.state.GoodMissed = 0
	c.state.TotalSpawned = 0
	c.state.TimeLeft = c.level.TimeLimitSeconds

	c.logger.Debug("level loaded", "level", id, "name", c.level.LevelName)
	cfg := c.level
	c.emit(func(l Listener) { l.LevelLoaded(cfg) })
	c.emit(func(l Listener) { l.TimeChanged(cfg.TimeLimitSeconds) })
}

// spendTime subtracts seconds from the countdown and fails the level once
// it reaches zero. The observable time never goes below zero.
func (c *Controller) spendTime(seconds float64) {
	c.state.TimeLeft -= seconds
	failed := c.state.TimeLeft <= 0
	if failed {
		c.state.TimeLeft = 0
	}
	left := c.state.TimeLeft
	c.emit(func(l Listener) { l.TimeChanged(left) })

	if failed {
		c.logger.Info("level failed", "level", c.state.CurrentLevelID, "score", c.state.Score)
		c.endLevel(PhaseFailed)
	}
}

// endLevel stops the session, removes its targets and enters p.
func (c *Controller) endLevel(p Phase) {
	c.stopSpawner()
	c.setPhase(p)
}

func (c *Controller) endRun() {
	score := c.state.Score
	c.logger.Info("run ended", "score", score, "phase", c.state.Phase)
	c.emit(func(l Listener) { l.RunEnded(score) })
}

func (c *Controller) stopSpawner() {
	if c.spawner == nil {
		return
	}
	c.spawner.StopSpawning()
	c.spawner.ClearActiveEntities()
}

func (c *Controller) requireSpawner(action string) bool {
	if c.spawner != nil {
		return true
	}
	c.logger.Error("no spawner attached", "action", action)
	return false
}

func (c *Controller) clearCheckpoint() {
	if err := c.checkpoints.Clear(); err != nil {
		c.logger.Error("checkpoint not cleared", "err", err)
	}
}

func (c *Controller) setPhase(p Phase) {
	if c.state.Phase == p {
		return
	}
	c.logger.Debug("phase changed", "from", c.state.Phase, "to", p)
	c.state.Phase = p
	c.emit(func(l Listener) { l.PhaseChanged(p) })
}

func (c *Controller) addScore(delta int) {
	if delta == 0 {
		return
	}
	c.setScore(c.state.Score + delta)
}

func (c *Controller) setScore(score int) {
	score = max(score, 0)
	if c.state.Score == score {
		return
	}
	c.state.Score = score
	c.emit(func(l Listener) { l.ScoreChanged(score) })
}

func (c *Controller) setLives(lives int) {
	lives = max(lives, 0)
	if c.state.LivesRemaining == lives {
		return
	}
	c.state.LivesRemaining = lives
	c.emit(func(l Listener) { l.LivesChanged(lives) })
}
