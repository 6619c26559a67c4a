// Package playback replays an operation log into a render sink at a fixed
// rate, independent of how fast the search that filled the log ran.
package playback

import (
	"log"
	"time"

	"github.com/cockroachdb/errors"

	"pathviz/internal/oplog"
	"pathviz/internal/schedule"
)

// DefaultOperationsPerSecond is the replay rate used when none is configured
const DefaultOperationsPerSecond = 300

// ErrUnsupportedOperation marks a log event the sink cannot render
var ErrUnsupportedOperation = errors.New("unsupported operation")

// Sink receives the replayed node attribute changes
type Sink interface {
	SetAttributeAt(x, y int, attr oplog.Attribute, value bool)
}

// Engine drains a Log into a Sink, one renderable event per tick
type Engine struct {
	log       *oplog.Log
	sink      Sink
	scheduler schedule.Scheduler
	onDrained func()

	interval   time.Duration
	supported  map[oplog.Attribute]bool
	active     bool
	generation uint64
	timer      schedule.Timer
}

// New creates an engine. onDrained runs on the tick that finds the log
// empty.
func New(l *oplog.Log, sink Sink, scheduler schedule.Scheduler, opsPerSecond int, onDrained func()) *Engine {
	e := &Engine{
		log:       l,
		sink:      sink,
		scheduler: scheduler,
		onDrained: onDrained,
		supported: map[oplog.Attribute]bool{
			oplog.Opened: true,
			oplog.Closed: true,
			oplog.Tested: true,
		},
	}
	e.SetRate(opsPerSecond)
	return e
}

// SetRate changes the replay rate. A running playback picks it up on its
// next tick.
func (e *Engine) SetRate(opsPerSecond int) {
	if opsPerSecond <= 0 {
		opsPerSecond = DefaultOperationsPerSecond
	}
	e.interval = time.Second / time.Duration(opsPerSecond)
}

// Interval is the time between two ticks
func (e *Engine) Interval() time.Duration { return e.interval }

// Active reports whether a playback loop is running
func (e *Engine) Active() bool { return e.active }

// Supports reports whether events with attr are forwarded to the sink
func (e *Engine) Supports(attr oplog.Attribute) bool { return e.supported[attr] }

// Start begins a new playback loop, superseding any previous one. The
// first tick is scheduled immediately.
func (e *Engine) Start() {
	e.cancelTimer()
	e.generation++
	e.active = true
	gen := e.generation
	e.timer = e.scheduler.After(0, func() { e.step(gen) })
}

// Stop halts playback. Events left in the log stay there.
func (e *Engine) Stop() {
	e.active = false
	e.cancelTimer()
}

func (e *Engine) cancelTimer() {
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
}

func (e *Engine) step(gen uint64) {
	if gen != e.generation || !e.active {
		return
	}
	e.timer = nil

	for {
		ev, ok := e.log.Shift()
		if !ok {
			e.active = false
			if e.onDrained != nil {
				e.onDrained()
			}
			return
		}
		if !e.supported[ev.Attr] {
			log.Printf("playback: %v", errors.Wrapf(ErrUnsupportedOperation, "skipping %s", ev))
			continue
		}
		e.sink.SetAttributeAt(ev.X, ev.Y, ev.Attr, ev.Value)
		break
	}

	e.timer = e.scheduler.After(e.interval, func() { e.step(gen) })
}
