// Package statemachine is a generic transition-table state machine used by
// workflow-style aggregates that sit alongside the core Person aggregate
// (spec.md §4.9's onboarding workflow). States and commands are comparable
// Go values; transitions carry an optional guard and action, matching the
// builder pattern of the original Rust aggregate framework this was
// generalized from.
package statemachine

import "fmt"

// Transition is one edge of the machine: From a state, on a matching
// command (selected by Guard, or unconditionally if Guard is nil), move to
// To and run Action.
type Transition[S comparable, C any] struct {
	From   S
	To     S
	Guard  func(S, C) bool
	Action func(S, C) error
}

// Machine is an immutable transition table plus entry/exit hooks.
type Machine[S comparable, C any] struct {
	initial      S
	transitions  map[S][]Transition[S, C]
	onEntry      map[S]func(S) error
	onExit       map[S]func(S) error
}

// Builder assembles a Machine. Start with New, chain Transition/OnEntry/OnExit,
// and call Build.
type Builder[S comparable, C any] struct {
	m Machine[S, C]
}

// New starts a builder with the machine's initial state.
func New[S comparable, C any](initial S) *Builder[S, C] {
	return &Builder[S, C]{m: Machine[S, C]{
		initial:     initial,
		transitions: make(map[S][]Transition[S, C]),
		onEntry:     make(map[S]func(S) error),
		onExit:      make(map[S]func(S) error),
	}}
}

// Transition registers an unconditional, action-free edge.
func (b *Builder[S, C]) Transition(from, to S) *Builder[S, C] {
	b.m.transitions[from] = append(b.m.transitions[from], Transition[S, C]{From: from, To: to})
	return b
}

// TransitionWithGuard registers an edge that only matches when guard(state, cmd) is true.
func (b *Builder[S, C]) TransitionWithGuard(from, to S, guard func(S, C) bool) *Builder[S, C] {
	b.m.transitions[from] = append(b.m.transitions[from], Transition[S, C]{From: from, To: to, Guard: guard})
	return b
}

// TransitionWithAction registers an edge that runs action on the way through.
func (b *Builder[S, C]) TransitionWithAction(from, to S, action func(S, C) error) *Builder[S, C] {
	b.m.transitions[from] = append(b.m.transitions[from], Transition[S, C]{From: from, To: to, Action: action})
	return b
}

// OnEntry registers a hook run whenever the machine transitions into state.
func (b *Builder[S, C]) OnEntry(state S, action func(S) error) *Builder[S, C] {
	b.m.onEntry[state] = action
	return b
}

// OnExit registers a hook run whenever the machine transitions out of state.
func (b *Builder[S, C]) OnExit(state S, action func(S) error) *Builder[S, C] {
	b.m.onExit[state] = action
	return b
}

// Build finalizes the machine.
func (b *Builder[S, C]) Build() *Machine[S, C] {
	m := b.m
	return &m
}

// Initial returns the machine's configured initial state.
func (m *Machine[S, C]) Initial() S { return m.initial }

// ValidateTransition finds the first matching transition out of current for
// cmd, runs its exit/action/entry hooks in that order, and returns the new
// state. An unmatched (state, command) pair returns a plain error, not a
// panic; workflow aggregates such as onboarding.Workflow wrap it as a
// ValidationError, the same way Decide reports an invalid command.
func (m *Machine[S, C]) ValidateTransition(current S, cmd C) (S, error) {
	for _, t := range m.transitions[current] {
		if t.Guard != nil && !t.Guard(current, cmd) {
			continue
		}
		if exit, ok := m.onExit[current]; ok {
			if err := exit(current); err != nil {
				var zero S
				return zero, err
			}
		}
		if t.Action != nil {
			if err := t.Action(current, cmd); err != nil {
				var zero S
				return zero, err
			}
		}
		if entry, ok := m.onEntry[t.To]; ok {
			if err := entry(t.To); err != nil {
				var zero S
				return zero, err
			}
		}
		return t.To, nil
	}
	var zero S
	return zero, fmt.Errorf("statemachine: no transition from state %v", current)
}

// ValidTransitions lists the states reachable in one step from state,
// ignoring guards (used for introspection/diagnostics, not for execution).
func (m *Machine[S, C]) ValidTransitions(state S) []S {
	ts := m.transitions[state]
	out := make([]S, 0, len(ts))
	for _, t := range ts {
		out = append(out, t.To)
	}
	return out
}
