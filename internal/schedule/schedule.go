// Package schedule provides the cancellable delay primitive the controller
// and the playback engine suspend on. Callbacks never run concurrently with
// each other; each implementation decides which goroutine runs them.
package schedule

import (
	"sort"
	"time"
)

// Timer is a pending callback
type Timer interface {
	// Stop prevents the callback from running. It reports whether the
	// timer was still pending.
	Stop() bool
}

// Scheduler runs fn once after d has elapsed
type Scheduler interface {
	After(d time.Duration, fn func()) Timer
}

type entry struct {
	due     time.Duration
	seq     uint64
	fn      func()
	stopped bool
	fired   bool
}

func (e *entry) Stop() bool {
	if e.stopped || e.fired {
		return false
	}
	e.stopped = true
	return true
}

// queue orders entries by due time, then by scheduling order
type queue struct {
	seq     uint64
	entries []*entry
}

func (q *queue) add(due time.Duration, fn func()) *entry {
	q.seq++
	e := &entry{due: due, seq: q.seq, fn: fn}
	i := sort.Search(len(q.entries), func(i int) bool {
		o := q.entries[i]
		return o.due > due || (o.due == due && o.seq > e.seq)
	})
	q.entries = append(q.entries, nil)
	copy(q.entries[i+1:], q.entries[i:])
	q.entries[i] = e
	return e
}

// next drops stopped entries and returns the earliest live one
func (q *queue) next() *entry {
	for len(q.entries) > 0 {
		e := q.entries[0]
		if !e.stopped {
			return e
		}
		q.entries = q.entries[1:]
	}
	return nil
}

func (q *queue) pop() *entry {
	e := q.next()
	if e != nil {
		q.entries = q.entries[1:]
		e.fired = true
	}
	return e
}

func (q *queue) live() int {
	n := 0
	for _, e := range q.entries {
		if !e.stopped {
			n++
		}
	}
	return n
}
