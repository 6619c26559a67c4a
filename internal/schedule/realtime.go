package schedule

import (
	"context"
	"time"
)

// RealTime is a wall-clock Scheduler whose callbacks run on the goroutine
// calling Run.
type RealTime struct {
	start time.Time
	q     queue
}

func NewRealTime() *RealTime {
	return &RealTime{start: time.Now()}
}

func (r *RealTime) After(d time.Duration, fn func()) Timer {
	if d < 0 {
		d = 0
	}
	return r.q.add(time.Since(r.start)+d, fn)
}

// Run sleeps until each timer is due and fires it, returning when done
// reports true or the queue is empty. It returns ctx.Err() if the context
// ends first.
func (r *RealTime) Run(ctx context.Context, done func() bool) error {
	for !done() {
		e := r.q.next()
		if e == nil {
			return nil
		}
		if wait := e.due - time.Since(r.start); wait > 0 {
			t := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				t.Stop()
				return ctx.Err()
			case <-t.C:
			}
			// a callback can only be stopped from another callback, so e is
			// still the head of the queue
		}
		r.q.pop()
		e.fn()
	}
	return nil
}
