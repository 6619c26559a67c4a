package schedule

import "time"

// Virtual is a Scheduler driven by a fake clock. Nothing runs until the
// clock is advanced.
type Virtual struct {
	now time.Duration
	q   queue
}

func NewVirtual() *Virtual {
	return &Virtual{}
}

func (v *Virtual) After(d time.Duration, fn func()) Timer {
	if d < 0 {
		d = 0
	}
	return v.q.add(v.now+d, fn)
}

// Now is the time elapsed on the fake clock
func (v *Virtual) Now() time.Duration { return v.now }

// Pending counts timers that have neither fired nor been stopped
func (v *Virtual) Pending() int { return v.q.live() }

// Advance moves the clock forward by d, firing every timer that comes due
// on the way, including timers scheduled by those callbacks.
func (v *Virtual) Advance(d time.Duration) {
	target := v.now + d
	for {
		e := v.q.next()
		if e == nil || e.due > target {
			break
		}
		v.q.pop()
		v.now = e.due
		e.fn()
	}
	v.now = target
}

// RunUntil fires timers in order until done reports true, no timers are
// left, or limit has elapsed on the fake clock. It reports whether done
// was reached.
func (v *Virtual) RunUntil(done func() bool, limit time.Duration) bool {
	deadline := v.now + limit
	for !done() {
		e := v.q.next()
		if e == nil || e.due > deadline {
			return false
		}
		v.q.pop()
		v.now = e.due
		e.fn()
	}
	return true
}
