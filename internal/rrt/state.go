package rrt

import "github.com/pkg/errors"

// State is the lifecycle of a search run.
type State int

const (
	// StateGrowing means the tree is still being extended.
	StateGrowing State = iota
	// StateGoalConnected is the terminal success state.
	StateGoalConnected
	// StateFailed is the terminal failure state: budget exhausted, cancelled,
	// or path extraction failed.
	StateFailed
)

var stateNames = map[State]string{
	StateGrowing:       "growing",
	StateGoalConnected: "goal_connected",
	StateFailed:        "failed",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Terminal reports whether no further iterations will run.
func (s State) Terminal() bool {
	return s != StateGrowing
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *State) UnmarshalText(text []byte) error {
	for state, name := range stateNames {
		if name == string(text) {
			*s = state
			return nil
		}
	}
	return errors.Errorf("rrt: unknown state %q", text)
}

// Outcome describes what a single iteration did.
type Outcome int

const (
	// OutcomeDiscarded means the sample produced no extension.
	OutcomeDiscarded Outcome = iota
	// OutcomeExtended means a new node and edge were committed.
	OutcomeExtended
	// OutcomeConnected means the goal was attached and the path extracted.
	OutcomeConnected
	// OutcomeExhausted means the iteration budget ran out.
	OutcomeExhausted
	// OutcomeIdle means the run was already terminal; nothing happened.
	OutcomeIdle
)

func (o Outcome) String() string {
	switch o {
	case OutcomeDiscarded:
		return "discarded"
	case OutcomeExtended:
		return "extended"
	case OutcomeConnected:
		return "connected"
	case OutcomeExhausted:
		return "exhausted"
	case OutcomeIdle:
		return "idle"
	default:
		return "unknown"
	}
}
