package domain

import "fmt"

// RunState is a state of the validation run state machine.
type RunState string

const (
	StateIdle           RunState = "idle"
	StateResolvingPath  RunState = "resolving_path"
	StateDiscovering    RunState = "discovering"
	StateValidatingFile RunState = "validating_file"
	StateSucceeded      RunState = "success"
	StateFailed         RunState = "failed"
)

var runTransitions = map[RunState][]RunState{
	StateIdle:           {StateResolvingPath, StateSucceeded},
	StateResolvingPath:  {StateDiscovering, StateFailed},
	StateDiscovering:    {StateValidatingFile, StateResolvingPath, StateSucceeded, StateFailed},
	StateValidatingFile: {StateValidatingFile, StateResolvingPath, StateSucceeded, StateFailed},
}

// Terminal reports whether no transition leaves s.
func (s RunState) Terminal() bool {
	return s == StateSucceeded || s == StateFailed
}

// CanTransitionTo reports whether next is reachable from s in one step.
func (s RunState) CanTransitionTo(next RunState) bool {
	for _, allowed := range runTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// RunMachine tracks the current state of a run and rejects illegal moves.
type RunMachine struct {
	state RunState
}

// NewRunMachine returns a machine in StateIdle.
func NewRunMachine() *RunMachine {
	return &RunMachine{state: StateIdle}
}

// State returns the current state.
func (m *RunMachine) State() RunState {
	return m.state
}

// Transition moves to next, or returns an InvariantError if the move is
// not allowed.
func (m *RunMachine) Transition(next RunState) error {
	if !m.state.CanTransitionTo(next) {
		return &InvariantError{
			Path:    "",
			Message: fmt.Sprintf("illegal run transition %s -> %s", m.state, next),
		}
	}
	m.state = next
	return nil
}
