package run

// Phase is the controller's state-machine state.
type Phase int

const (
	PhaseMenu Phase = iota
	PhasePlaying
	PhasePaused
	PhaseLevelComplete
	PhaseFailed
	PhaseRunOver
	PhaseAllLevelsComplete
)

func (p Phase) String() string {
	switch p {
	case PhaseMenu:
		return "menu"
	case PhasePlaying:
		return "playing"
	case PhasePaused:
		return "paused"
	case PhaseLevelComplete:
		return "level_complete"
	case PhaseFailed:
		return "failed"
	case PhaseRunOver:
		return "run_over"
	case PhaseAllLevelsComplete:
		return "all_levels_complete"
	default:
		return "unknown"
	}
}

// Terminal reports whether the run has ended and only a new game can follow.
func (p Phase) Terminal() bool {
	return p == PhaseRunOver || p == PhaseAllLevelsComplete
}

// FailurePolicy decides what a failed level costs.
type FailurePolicy int

const (
	// MultiLife spends a life and replays the level; the run ends when no
	// lives remain.
	MultiLife FailurePolicy = iota
	// SingleLife sends every failure back to the first level with one life.
	SingleLife
)

func (p FailurePolicy) String() string {
	switch p {
	case MultiLife:
		return "multi_life"
	case SingleLife:
		return "single_life"
	default:
		return "unknown"
	}
}

// ParseFailurePolicy converts a policy name to a FailurePolicy.
// Returns MultiLife and false if the name is not recognized.
func ParseFailurePolicy(s string) (FailurePolicy, bool) {
	switch s {
	case "multi_life", "multi", "lives":
		return MultiLife, true
	case "single_life", "single":
		return SingleLife, true
	default:
		return MultiLife, false
	}
}
