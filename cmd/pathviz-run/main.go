// Command pathviz-run performs one search without a terminal UI and prints
// the painted grid and the run's stats.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"

	"pathviz/internal/config"
	"pathviz/internal/controller"
	"pathviz/internal/domain"
	"pathviz/internal/grid"
	"pathviz/internal/oplog"
	"pathviz/internal/schedule"
)

// wallList collects repeated -wall x,y flags
type wallList []grid.Point

func (w *wallList) String() string {
	parts := make([]string, len(*w))
	for i, p := range *w {
		parts[i] = fmt.Sprintf("%d,%d", p.X, p.Y)
	}
	return strings.Join(parts, " ")
}

func (w *wallList) Set(v string) error {
	for _, item := range strings.FieldsFunc(v, func(r rune) bool { return r == ';' || r == ' ' }) {
		p, err := parsePoint(item)
		if err != nil {
			return err
		}
		*w = append(*w, p)
	}
	return nil
}

func parsePoint(s string) (grid.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return grid.Point{}, errors.Newf("wall %q: want x,y", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return grid.Point{}, errors.Wrapf(err, "wall %q", s)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return grid.Point{}, errors.Wrapf(err, "wall %q", s)
	}
	return grid.Point{X: x, Y: y}, nil
}

func main() {
	var (
		configPath string
		overrides  config.Overrides
		walls      wallList
		instant    bool
		trace      bool
		timeout    time.Duration
	)
	flag.StringVar(&configPath, "config", "", "Path to the config file (default: user config dir)")
	flag.IntVar(&overrides.Cols, "cols", 0, "Grid width in cells")
	flag.IntVar(&overrides.Rows, "rows", 0, "Grid height in cells")
	flag.StringVar(&overrides.Algorithm, "algo", "", "Search algorithm")
	flag.IntVar(&overrides.Rate, "rate", 0, "Playback rate in operations per second")
	flag.Var(&walls, "wall", "Blocked cell as x,y (repeatable)")
	flag.BoolVar(&instant, "instant", false, "Replay on a virtual clock instead of in real time")
	flag.BoolVar(&trace, "trace", false, "Print every replayed operation")
	flag.DurationVar(&timeout, "timeout", time.Minute, "Give up after this long")
	flag.Parse()

	log.SetOutput(io.Discard)

	cfg, err := config.NewConfigService(configPath).Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Apply(overrides); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	ctx, cancelTimeout := context.WithTimeout(ctx, timeout)
	defer cancelTimeout()

	if err := run(ctx, cfg, walls, instant, trace, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, walls []grid.Point, instant, trace bool, out io.Writer) error {
	sink := newTextSink(cfg.Grid.Cols, cfg.Grid.Rows)
	if trace {
		sink.trace = out
	}

	var (
		sched   schedule.Scheduler
		runLoop func(done func() bool) error
	)
	if instant {
		v := schedule.NewVirtual()
		sched = v
		runLoop = func(done func() bool) error {
			if !v.RunUntil(done, 24*time.Hour) {
				return errors.New("playback did not finish")
			}
			return nil
		}
	} else {
		rt := schedule.NewRealTime()
		sched = rt
		runLoop = func(done func() bool) error { return rt.Run(ctx, done) }
	}

	opts := controller.OptionsFromConfig(cfg)
	opts.Context = ctx
	ctrl := controller.New(opts, sink, nil, sched, nil)
	if err := ctrl.Init(); err != nil {
		return err
	}
	for _, p := range walls {
		if err := ctrl.SetWalkableAt(p.X, p.Y, false); err != nil {
			return errors.Wrapf(err, "wall %s", p)
		}
	}
	if err := ctrl.Fire(controller.EventStart); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, "search")
	}

	finished := func() bool { return ctrl.State() == controller.StateFinished }
	if err := runLoop(finished); err != nil {
		return err
	}
	if !finished() {
		return errors.Newf("stopped in state %s", ctrl.State())
	}

	algo, _ := ctrl.Algorithm()
	fmt.Fprintf(out, "%s on %dx%d\n", algo.Title(), cfg.Grid.Cols, cfg.Grid.Rows)
	fmt.Fprintln(out, sink.String())
	fmt.Fprintln(out, formatStats(sink.stats))
	return nil
}

func formatStats(s domain.Stats) string {
	ms := float64(s.TimeSpent.Microseconds()) / 1000
	if s.Unreachable {
		return fmt.Sprintf("no path | time: %.4fms | operations: %d", ms, s.OperationCount)
	}
	return fmt.Sprintf("length: %.2f | nodes: %d | time: %.4fms | operations: %d",
		s.PathLength, s.PathNodes, ms, s.OperationCount)
}

// textSink paints into a rune matrix
type textSink struct {
	cols, rows int
	cells      [][]rune
	start, end grid.Point
	stats      domain.Stats
	trace      io.Writer
}

func newTextSink(cols, rows int) *textSink {
	s := &textSink{cols: cols, rows: rows}
	s.cells = make([][]rune, rows)
	for y := range s.cells {
		s.cells[y] = []rune(strings.Repeat(".", cols))
	}
	return s
}

func (s *textSink) set(x, y int, r rune) {
	if x >= 0 && y >= 0 && x < s.cols && y < s.rows {
		s.cells[y][x] = r
	}
}

func (s *textSink) SetAttributeAt(x, y int, attr oplog.Attribute, value bool) {
	if s.trace != nil && attr != oplog.Walkable {
		fmt.Fprintln(s.trace, oplog.Event{X: x, Y: y, Attr: attr, Value: value})
	}
	switch {
	case attr == oplog.Walkable:
		if value {
			s.set(x, y, '.')
		} else {
			s.set(x, y, '#')
		}
	case !value:
	case attr == oplog.Closed:
		s.set(x, y, 'x')
	case attr == oplog.Opened:
		s.set(x, y, 'o')
	case attr == oplog.Tested:
		s.set(x, y, '+')
	}
}

func (s *textSink) SetStartPos(x, y int) { s.start = grid.Point{X: x, Y: y} }
func (s *textSink) SetEndPos(x, y int)   { s.end = grid.Point{X: x, Y: y} }

func (s *textSink) ClearFootprints() {
	s.replace(func(r rune) bool { return r != '#' }, '.')
}

func (s *textSink) ClearPath() {
	s.replace(func(r rune) bool { return r == '*' }, '.')
}

func (s *textSink) ClearBlockedNodes() {
	s.replace(func(r rune) bool { return r == '#' }, '.')
}

func (s *textSink) replace(match func(rune) bool, with rune) {
	for y := range s.cells {
		for x, r := range s.cells[y] {
			if match(r) {
				s.cells[y][x] = with
			}
		}
	}
}

func (s *textSink) DrawPath(path grid.Path) {
	for _, p := range grid.ExpandPath(path) {
		s.set(p.X, p.Y, '*')
	}
}

func (s *textSink) ShowStats(stats domain.Stats) { s.stats = stats }

func (s *textSink) ToGridCoordinate(px, py int) (int, int) { return px, py }

func (s *textSink) String() string {
	var b strings.Builder
	for y, row := range s.cells {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x, r := range row {
			switch (grid.Point{X: x, Y: y}) {
			case s.start:
				r = 'S'
			case s.end:
				r = 'E'
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}
