package agent

// State is the loop's current phase.
type State string

const (
	// StateThinking means the loop is waiting on, or about to make, a
	// model call.
	StateThinking State = "thinking"
	// StateActing means the loop is dispatching the round's invocations.
	StateActing State = "acting"
	// StateDone means the run ended with a final answer.
	StateDone State = "done"
	// StateExhausted means the round budget ran out without a final answer.
	StateExhausted State = "exhausted"
)

// Terminal reports whether the state ends a run.
func (s State) Terminal() bool {
	return s == StateDone || s == StateExhausted
}
