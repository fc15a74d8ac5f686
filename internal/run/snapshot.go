package run

// Snapshot is a read-only view of the controller for rendering and tests.
type Snapshot struct {
	State
	LevelName       string
	Difficulty      string
	GoodTarget      int
	TimeLimit       float64
	Policy          FailurePolicy
	CheckpointLevel int
}

// Snapshot captures the current state.
func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		State:           c.state,
		LevelName:       c.level.LevelName,
		Difficulty:      c.level.DifficultyLabel,
		GoodTarget:      c.level.GoodTargetCount,
		TimeLimit:       c.level.TimeLimitSeconds,
		Policy:          c.policy,
		CheckpointLevel: c.checkpointLevel,
	}
}
