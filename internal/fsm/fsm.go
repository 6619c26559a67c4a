// Package fsm is a small event-driven finite state machine. Transitions are
// declared up front as a table; firing an event with no matching row fails
// and leaves the machine untouched.
package fsm

import "github.com/cockroachdb/errors"

// ErrIllegalTransition is returned when an event cannot fire in the current state
var ErrIllegalTransition = errors.New("illegal transition")

// State is a machine state
type State string

// Event names a transition
type Event string

// Any matches every state in Transition.From
const Any State = "*"

func (s State) String() string { return string(s) }
func (e Event) String() string { return string(e) }

// Transition moves the machine to To when Event fires in one of From
type Transition struct {
	Event Event
	From  []State
	To    State
}

// Hook is called after a transition has changed the current state
type Hook func(ev Event, from, to State)

// Machine holds the current state and the transition table. It is not safe
// for concurrent use. Hooks may fire further events.
type Machine struct {
	current State
	table   map[Event]map[State]State
	any     map[Event]State

	onTransition []Hook
	onEnter      map[State][]Hook
	onEvent      map[Event][]Hook
}

// New builds a machine in the initial state
func New(initial State, transitions []Transition) *Machine {
	m := &Machine{
		current: initial,
		table:   make(map[Event]map[State]State),
		any:     make(map[Event]State),
		onEnter: make(map[State][]Hook),
		onEvent: make(map[Event][]Hook),
	}
	for _, t := range transitions {
		for _, from := range t.From {
			if from == Any {
				m.any[t.Event] = t.To
				continue
			}
			if m.table[t.Event] == nil {
				m.table[t.Event] = make(map[State]State)
			}
			m.table[t.Event][from] = t.To
		}
	}
	return m
}

// Current returns the current state
func (m *Machine) Current() State { return m.current }

// Can reports whether ev may fire in the current state
func (m *Machine) Can(ev Event) bool {
	_, ok := m.target(ev)
	return ok
}

// target returns the state ev would lead to from the current state
func (m *Machine) target(ev Event) (State, bool) {
	if to, ok := m.table[ev][m.current]; ok {
		return to, true
	}
	to, ok := m.any[ev]
	return to, ok
}

// Fire performs the transition for ev. Transition hooks run first, then
// the enter hooks of the new state, then the hooks bound to ev.
func (m *Machine) Fire(ev Event) error {
	to, ok := m.target(ev)
	if !ok {
		return errors.Wrapf(ErrIllegalTransition, "event %q in state %q", ev, m.current)
	}

	from := m.current
	m.current = to

	for _, h := range m.onTransition {
		h(ev, from, to)
	}
	for _, h := range m.onEnter[to] {
		h(ev, from, to)
	}
	for _, h := range m.onEvent[ev] {
		h(ev, from, to)
	}
	return nil
}

// OnTransition registers a hook run on every transition
func (m *Machine) OnTransition(h Hook) {
	m.onTransition = append(m.onTransition, h)
}

// OnEnter registers a hook run whenever s is entered
func (m *Machine) OnEnter(s State, h Hook) {
	m.onEnter[s] = append(m.onEnter[s], h)
}

// OnEvent registers a hook run after ev has fired
func (m *Machine) OnEvent(ev Event, h Hook) {
	m.onEvent[ev] = append(m.onEvent[ev], h)
}

// Set forces the current state without running hooks
func (m *Machine) Set(s State) { m.current = s }
