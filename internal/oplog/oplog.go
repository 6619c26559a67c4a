// Package oplog buffers the node attribute writes a search makes so they can
// be replayed later at a visual pace.
package oplog

import "fmt"

// Attribute names a node property whose writes are recorded
type Attribute string

const (
	Opened   Attribute = "opened"
	Closed   Attribute = "closed"
	Tested   Attribute = "tested"
	Parent   Attribute = "parent"
	Walkable Attribute = "walkable"
)

// Event is one recorded attribute assignment on a grid cell
type Event struct {
	X     int
	Y     int
	Attr  Attribute
	Value bool
}

func (e Event) String() string {
	return fmt.Sprintf("%s(%d,%d)=%t", e.Attr, e.X, e.Y, e.Value)
}

// Log is a FIFO of recorded events. It is not safe for concurrent use: a
// search writes it to completion before playback starts reading.
type Log struct {
	events []Event
	head   int
}

// New creates an empty log
func New() *Log {
	return &Log{}
}

// Push appends an event to the tail
func (l *Log) Push(e Event) {
	l.events = append(l.events, e)
}

// Shift removes and returns the event at the head
func (l *Log) Shift() (Event, bool) {
	if l.head >= len(l.events) {
		return Event{}, false
	}
	e := l.events[l.head]
	l.head++

	// Reclaim the consumed prefix once it dominates the backing array
	if l.head > 64 && l.head*2 > len(l.events) {
		l.events = append([]Event(nil), l.events[l.head:]...)
		l.head = 0
	}
	return e, true
}

// Len returns the number of events not yet shifted
func (l *Log) Len() int {
	return len(l.events) - l.head
}

// Clear drops every pending event
func (l *Log) Clear() {
	l.events = nil
	l.head = 0
}

// Events returns a copy of the pending events in order
func (l *Log) Events() []Event {
	return append([]Event(nil), l.events[l.head:]...)
}
