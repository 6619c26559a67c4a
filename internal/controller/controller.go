// Package controller implements the pathviz lifecycle: the state machine
// that decides when a search may run, be interrupted, or have its grid
// edited, and the entry actions that drive the search adapter, the
// operation log and the playback engine.
package controller

import (
	"context"
	"log"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"pathviz/internal/config"
	"pathviz/internal/domain"
	"pathviz/internal/eventbus"
	"pathviz/internal/finder"
	"pathviz/internal/fsm"
	"pathviz/internal/grid"
	"pathviz/internal/oplog"
	"pathviz/internal/playback"
	"pathviz/internal/schedule"
)

var (
	// ErrIllegalTransition is returned for an event with no matching transition
	ErrIllegalTransition = fsm.ErrIllegalTransition
	// ErrControlDisabled is returned when pressing a disabled button
	ErrControlDisabled = errors.New("control disabled")
	// ErrBlockedCell is returned when moving an endpoint onto a wall or the other endpoint
	ErrBlockedCell = errors.New("cell not available")
)

// Options configures a Controller
type Options struct {
	Cols, Rows          int
	DemoWall            bool
	OperationsPerSecond int
	// Grace is how long restart and reset wait before clearing the board
	Grace         time.Duration
	Algorithm     finder.Algorithm
	FinderOptions finder.Options
	// Context interrupts a running search; context.Background when nil
	Context context.Context
}

// OptionsFromConfig extracts the controller options from cfg
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Cols:                cfg.Grid.Cols,
		Rows:                cfg.Grid.Rows,
		DemoWall:            cfg.Grid.DemoWall,
		OperationsPerSecond: cfg.Playback.OperationsPerSecond,
		Grace:               cfg.Grace(),
		Algorithm:           cfg.Algorithm(),
		FinderOptions:       cfg.FinderOptions(),
	}
}

// Controller is the single source of truth for what the grid and the
// playback engine may do. It is not safe for concurrent use: every method,
// and every scheduler callback, must run on the same goroutine.
type Controller struct {
	opts      Options
	machine   *fsm.Machine
	grid      *grid.Grid
	start     grid.Point
	end       grid.Point
	log       *oplog.Log
	playback  *playback.Engine
	sink      RenderSink
	surface   ControlSurface
	scheduler schedule.Scheduler
	bus       eventbus.EventBus

	controls   [numControls]Control
	algorithm  finder.Algorithm
	finderOpts finder.Options
	path       grid.Path
	stats      domain.Stats

	pending     schedule.Timer
	pendingName string
	pendingWork func()
}

// New creates a controller in state none. surface and bus may be nil.
func New(opts Options, sink RenderSink, surface ControlSurface, scheduler schedule.Scheduler, bus eventbus.EventBus) *Controller {
	if opts.Cols < 2 {
		opts.Cols = 2
	}
	if opts.Rows < 2 {
		opts.Rows = 2
	}
	if opts.Algorithm == "" {
		opts.Algorithm = finder.AStar
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}

	c := &Controller{
		opts:       opts,
		machine:    fsm.New(StateNone, Transitions),
		grid:       grid.New(opts.Cols, opts.Rows),
		log:        oplog.New(),
		sink:       sink,
		surface:    surface,
		scheduler:  scheduler,
		bus:        bus,
		algorithm:  opts.Algorithm,
		finderOpts: opts.FinderOptions.Normalize(),
	}
	for i := range c.controls {
		c.controls[i].ID = ControlID(i + 1)
	}
	c.playback = playback.New(c.log, sink, scheduler, opts.OperationsPerSecond, c.onDrained)

	c.machine.OnTransition(c.onTransition)
	c.machine.OnEnter(StateReady, c.enterReady)
	c.machine.OnEnter(StateStarting, c.enterStarting)
	c.machine.OnEnter(StateSearching, c.enterSearching)
	c.machine.OnEnter(StatePaused, c.enterPaused)
	c.machine.OnEnter(StateFinished, c.enterFinished)
	c.machine.OnEnter(StateModified, c.enterModified)
	c.machine.OnEnter(StateRestarting, c.enterRestarting)
	c.machine.OnEvent(EventCancel, c.onClearFootprints)
	c.machine.OnEvent(EventClear, c.onClearFootprints)
	c.machine.OnEvent(EventReset, c.onReset)
	return c
}

// Init places the endpoints, draws the demo wall and enters ready
func (c *Controller) Init() error {
	if !c.machine.Can(EventInit) {
		return c.Fire(EventInit)
	}
	c.setDefaultStartEndPos()
	if c.opts.DemoWall {
		c.drawDemoWall()
	}
	return c.Fire(EventInit)
}

// Fire performs a lifecycle event. An event with no matching transition
// fails with ErrIllegalTransition and has no effect.
func (c *Controller) Fire(ev Event) error {
	from := c.machine.Current()
	if err := c.machine.Fire(ev); err != nil {
		log.Printf("controller: %v", err)
		c.publish(domain.IllegalEventEvent{Event: string(ev), State: string(from), Err: err})
		return err
	}
	return nil
}

// State returns the current lifecycle state
func (c *Controller) State() State { return c.machine.Current() }

// Can reports whether ev may fire now
func (c *Controller) Can(ev Event) bool { return c.machine.Can(ev) }

// Controls returns a copy of the control table
func (c *Controller) Controls() []Control {
	out := make([]Control, numControls)
	copy(out, c.controls[:])
	return out
}

// Press fires the event bound to a control button
func (c *Controller) Press(id ControlID) error {
	if id < ControlPrimary || int(id) > numControls {
		return errors.Newf("unknown control %d", id)
	}
	ctl := c.controls[id-1]
	if !ctl.Enabled || ctl.Event == "" {
		return errors.Wrapf(ErrControlDisabled, "%q in state %s", ctl.Label, c.State())
	}
	return c.Fire(ctl.Event)
}

// Grid returns the live grid
func (c *Controller) Grid() *grid.Grid { return c.grid }

// StartPos is the start endpoint
func (c *Controller) StartPos() grid.Point { return c.start }

// EndPos is the end endpoint
func (c *Controller) EndPos() grid.Point { return c.end }

// Path is the result of the latest search
func (c *Controller) Path() grid.Path { return c.path }

// Stats describes the latest search
func (c *Controller) Stats() domain.Stats { return c.stats }

// PendingOperations is the number of log events not yet replayed
func (c *Controller) PendingOperations() int { return c.log.Len() }

// Algorithm returns the algorithm and options used by the next search
func (c *Controller) Algorithm() (finder.Algorithm, finder.Options) {
	return c.algorithm, c.finderOpts
}

// SetAlgorithm replaces the search algorithm. It takes effect at the next start.
func (c *Controller) SetAlgorithm(algo finder.Algorithm, opts finder.Options) {
	c.algorithm = algo
	c.finderOpts = opts.Normalize()
	log.Printf("controller: algorithm %s %+v", algo, c.finderOpts)
}

// SetRate changes the playback rate in operations per second
func (c *Controller) SetRate(opsPerSecond int) {
	c.playback.SetRate(opsPerSecond)
}

func (c *Controller) publish(e domain.DomainEvent) {
	if c.bus != nil {
		c.bus.Publish(e)
	}
}

func (c *Controller) onTransition(ev Event, from, to State) {
	log.Printf("=> %s", to)
	if from == StateSearching && to != StateSearching {
		c.playback.Stop()
	}
	c.publish(domain.StateChangedEvent{Event: string(ev), From: string(from), To: string(to)})
}

func (c *Controller) setControls(controls ...Control) {
	for _, ctl := range controls {
		c.controls[ctl.ID-1] = ctl
	}
	if c.surface != nil {
		c.surface.Refresh(c.State(), c.Controls())
	}
}

func (c *Controller) enterReady(Event, State, State) {
	c.setControls(
		Control{ID: ControlPrimary, Label: "Start", Enabled: true, Event: EventStart},
		Control{ID: ControlSecondary, Label: "Pause", Enabled: false},
		Control{ID: ControlTertiary, Label: "Clear", Enabled: true, Event: EventReset},
	)
}

func (c *Controller) enterStarting(Event, State, State) {
	c.flushPendingReset()
	c.log.Clear()
	c.clearFootprints()
	c.setControls(Control{ID: ControlSecondary, Label: "Pause", Enabled: true, Event: EventPause})

	c.search()
	if err := c.Fire(EventSearch); err != nil {
		log.Printf("controller: auto-advance after search: %v", err)
	}
}

func (c *Controller) enterSearching(Event, State, State) {
	c.setControls(
		Control{ID: ControlPrimary, Label: "Restart", Enabled: true, Event: EventRestart},
		Control{ID: ControlSecondary, Label: "Pause", Enabled: true, Event: EventPause},
	)
	c.playback.Start()
}

func (c *Controller) enterPaused(Event, State, State) {
	c.setControls(
		Control{ID: ControlPrimary, Label: "Resume", Enabled: true, Event: EventResume},
		Control{ID: ControlSecondary, Label: "Cancel", Enabled: true, Event: EventCancel},
	)
}

func (c *Controller) enterFinished(Event, State, State) {
	c.setControls(
		Control{ID: ControlPrimary, Label: "Restart", Enabled: true, Event: EventRestart},
		Control{ID: ControlSecondary, Label: "Clear", Enabled: true, Event: EventClear},
	)
	c.sink.ShowStats(c.stats)
	if !c.path.Empty() {
		c.sink.DrawPath(c.path)
	}
	c.publish(domain.PlaybackFinishedEvent{Stats: c.stats})
}

func (c *Controller) enterModified(Event, State, State) {
	c.setControls(
		Control{ID: ControlPrimary, Label: "Start", Enabled: true, Event: EventStart},
		Control{ID: ControlSecondary, Label: "Clear", Enabled: true, Event: EventClear},
	)
}

func (c *Controller) enterRestarting(Event, State, State) {
	c.deferWork("restart", func() {
		c.log.Clear()
		c.clearFootprints()
		if err := c.Fire(EventStart); err != nil {
			log.Printf("controller: deferred restart: %v", err)
		}
	})
}

func (c *Controller) onReset(Event, State, State) {
	c.deferWork("reset", func() {
		c.log.Clear()
		c.clearFootprints()
		c.sink.ClearBlockedNodes()
		c.grid = grid.New(c.opts.Cols, c.opts.Rows)
		c.path = nil
		c.setDefaultStartEndPos()
		c.publish(domain.GridResetEvent{
			Cols:  c.opts.Cols,
			Rows:  c.opts.Rows,
			Start: domain.Position{X: c.start.X, Y: c.start.Y},
			End:   domain.Position{X: c.end.X, Y: c.end.Y},
		})
	})
}

func (c *Controller) onClearFootprints(Event, State, State) {
	c.log.Clear()
	c.clearFootprints()
}

func (c *Controller) onDrained() {
	if err := c.Fire(EventFinish); err != nil {
		log.Printf("controller: playback drained: %v", err)
	}
}

func (c *Controller) clearFootprints() {
	c.sink.ClearFootprints()
	c.sink.ClearPath()
}

// deferWork runs fn after the grace period, superseding any pending work
func (c *Controller) deferWork(name string, fn func()) {
	if c.pending != nil && c.pending.Stop() {
		log.Printf("controller: pending %s superseded by %s", c.pendingName, name)
	}

	var timer schedule.Timer
	timer = c.scheduler.After(c.opts.Grace, func() {
		if c.pending != timer {
			return
		}
		c.pending, c.pendingName, c.pendingWork = nil, "", nil
		fn()
	})
	c.pending, c.pendingName, c.pendingWork = timer, name, fn
}

// flushPendingReset applies a pending reset now; edits must land on the
// rebuilt grid
func (c *Controller) flushPendingReset() {
	if c.pendingName == "reset" {
		c.flushPending()
	}
}

// flushPending runs the pending deferred work now
func (c *Controller) flushPending() {
	if c.pending == nil || !c.pending.Stop() {
		return
	}
	fn := c.pendingWork
	c.pending, c.pendingName, c.pendingWork = nil, "", nil
	fn()
}

// search runs the adapter synchronously against a clone of the grid
func (c *Controller) search() {
	clone := c.grid.Clone()
	nodes := oplog.NewRecorder(c.log)

	began := time.Now()
	var path grid.Path
	f, err := finder.NewContext(c.opts.Context, c.algorithm, c.finderOpts)
	if err == nil {
		path, err = f.FindPath(c.start.X, c.start.Y, c.end.X, c.end.Y, clone, nodes)
	}
	spent := time.Since(began)

	if err != nil {
		if errors.Is(err, finder.ErrTimeLimit) {
			log.Printf("controller: %v, treating as unreachable", err)
		} else {
			log.Printf("controller: search failed: %v", err)
		}
		path = nil
	}

	c.path = path
	c.stats = domain.Stats{
		RunID:          uuid.NewString(),
		PathLength:     path.Length(),
		PathNodes:      len(path),
		TimeSpent:      spent,
		OperationCount: c.log.Len(),
		Unreachable:    path.Empty(),
	}
	log.Printf("controller: run %s %s nodes=%d length=%.2f ops=%d time=%s",
		c.stats.RunID, c.algorithm, c.stats.PathNodes, c.stats.PathLength, c.stats.OperationCount, spent)
	c.publish(domain.SearchCompletedEvent{Algorithm: string(c.algorithm), Stats: c.stats})
}
