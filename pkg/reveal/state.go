package reveal

// State identifies the pipeline stage currently executing. Transitions are
// strictly sequential: Idle → Planning → Hidden → RevealingNodes →
// RevealingEdges → Refining → Idle. The pipeline always returns to Idle,
// success or failure.
type State int

// Pipeline states in execution order.
const (
	StateIdle State = iota
	StatePlanning
	StateHidden
	StateRevealingNodes
	StateRevealingEdges
	StateRefining
)

var stateNames = map[State]string{
	StateIdle:            "idle",
	StatePlanning:        "planning",
	StateHidden:          "hidden",
	StateRevealingNodes:  "revealing-nodes",
	StateRevealingEdges:  "revealing-edges",
	StateRefining:        "refining",
}

// String returns the stage name used in logs and hook events.
func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}
