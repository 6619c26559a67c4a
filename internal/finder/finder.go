// Package finder holds the search adapter contract and the pathfinding
// algorithms shipped with pathviz.
//
// A Finder runs synchronously to completion. It never paints anything: every
// write to a node's opened, closed or tested flag goes through the node
// store it is given, which is how a run's footprints reach the operation log.
package finder

import (
	"context"
	"math"
	"strings"

	"github.com/cockroachdb/errors"

	"pathviz/internal/grid"
	"pathviz/internal/oplog"
)

var (
	// ErrUnknownAlgorithm is returned by New for an unrecognised algorithm name
	ErrUnknownAlgorithm = errors.New("unknown algorithm")
	// ErrTimeLimit is returned when a bounded search ran out of time
	ErrTimeLimit = errors.New("search time limit exceeded")
)

// Finder is the uniform contract over interchangeable search algorithms
type Finder interface {
	FindPath(startX, startY, endX, endY int, g *grid.Grid, nodes oplog.NodeStore) (grid.Path, error)
}

// Algorithm identifies a search strategy
type Algorithm string

const (
	AStar          Algorithm = "astar"
	BestFirst      Algorithm = "bestfirst"
	Dijkstra       Algorithm = "dijkstra"
	BreadthFirst   Algorithm = "breadthfirst"
	JumpPoint      Algorithm = "jumppoint"
	OrthoJumpPoint Algorithm = "orthojumppoint"
	IDAStar        Algorithm = "idastar"
)

// Algorithms lists every algorithm in panel order
var Algorithms = []Algorithm{AStar, IDAStar, BreadthFirst, BestFirst, Dijkstra, JumpPoint, OrthoJumpPoint}

// Title is the display name of the algorithm
func (a Algorithm) Title() string {
	switch a {
	case AStar:
		return "A*"
	case IDAStar:
		return "IDA*"
	case BreadthFirst:
		return "Breadth-First"
	case BestFirst:
		return "Best-First"
	case Dijkstra:
		return "Dijkstra"
	case JumpPoint:
		return "Jump Point"
	case OrthoJumpPoint:
		return "Orthogonal Jump Point"
	default:
		return string(a)
	}
}

// Supports reports whether the algorithm reads the given option
func (a Algorithm) Supports(opt string) bool {
	switch opt {
	case "diagonal", "corners":
		return a != JumpPoint && a != OrthoJumpPoint
	case "bidirectional":
		return a == AStar || a == BestFirst || a == Dijkstra || a == BreadthFirst
	case "heuristic":
		return a != BreadthFirst && a != Dijkstra
	case "weight":
		return a == AStar || a == IDAStar
	case "recursion":
		return a == JumpPoint || a == OrthoJumpPoint || a == IDAStar
	case "timelimit":
		return a == IDAStar
	}
	return false
}

// ParseAlgorithm resolves a case-insensitive algorithm name
func ParseAlgorithm(name string) (Algorithm, error) {
	a := Algorithm(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Algorithms {
		if a == known {
			return a, nil
		}
	}
	return "", errors.Wrapf(ErrUnknownAlgorithm, "%q", name)
}

// Options configures a finder
type Options struct {
	AllowDiagonal    bool
	DontCrossCorners bool
	Heuristic        HeuristicName
	Weight           float64
	Bidirectional    bool
	TrackRecursion   bool
	// TimeLimit is in seconds; -1 means unbounded
	TimeLimit int
}

// Bounds of the time limit the panel can set, in seconds
const (
	DefaultTimeLimit = 10
	MaxTimeLimit     = 60
)

// DefaultOptions mirrors the initial state of the algorithm panel
func DefaultOptions() Options {
	return Options{
		Heuristic: Manhattan,
		Weight:    1,
		TimeLimit: DefaultTimeLimit,
	}
}

// Normalize clamps option values into their valid ranges
func (o Options) Normalize() Options {
	if o.Weight < 1 {
		o.Weight = 1
	}
	if o.TimeLimit <= 0 {
		o.TimeLimit = -1
	}
	if _, ok := heuristics[o.Heuristic]; !ok {
		o.Heuristic = Manhattan
	}
	return o
}

// New builds the finder for an algorithm, applying the same option mapping
// as the algorithm panel.
func New(algo Algorithm, opts Options) (Finder, error) {
	return NewContext(context.Background(), algo, opts)
}

// NewContext is New with a context that interrupts the finders whose running
// time is not polynomial in the grid size (IDA*).
func NewContext(ctx context.Context, algo Algorithm, opts Options) (Finder, error) {
	opts = opts.Normalize()
	h := heuristics[opts.Heuristic]
	diagonal := grid.DiagonalFor(opts.AllowDiagonal, opts.DontCrossCorners)

	switch algo {
	case AStar, BestFirst, Dijkstra:
		weight := opts.Weight
		switch algo {
		case BestFirst:
			weight = 1
			base := h
			h = func(dx, dy float64) float64 { return base(dx, dy) * 1000000 }
		case Dijkstra:
			weight = 1
			h = func(dx, dy float64) float64 { return 0 }
		}
		f := &AStarFinder{Diagonal: diagonal, Heuristic: h, Weight: weight}
		if opts.Bidirectional {
			return &BiAStarFinder{*f}, nil
		}
		return f, nil
	case BreadthFirst:
		if opts.Bidirectional {
			return &BiBreadthFirstFinder{Diagonal: diagonal}, nil
		}
		return &BreadthFirstFinder{Diagonal: diagonal}, nil
	case JumpPoint:
		return &JumpPointFinder{Diagonal: grid.DiagonalIfAtMostOneObstacle, Heuristic: h, TrackRecursion: opts.TrackRecursion}, nil
	case OrthoJumpPoint:
		return &JumpPointFinder{Diagonal: grid.DiagonalNever, Heuristic: h, TrackRecursion: opts.TrackRecursion}, nil
	case IDAStar:
		return &IDAStarFinder{
			Diagonal:       diagonal,
			Heuristic:      h,
			Weight:         opts.Weight,
			TrackRecursion: opts.TrackRecursion,
			TimeLimit:      opts.TimeLimit,
			Context:        ctx,
		}, nil
	}
	return nil, errors.Wrapf(ErrUnknownAlgorithm, "%q", algo)
}

// stepCost is 1 for orthogonal moves and √2 for diagonal ones
func stepCost(a, b *oplog.Node) float64 {
	if a.X == b.X || a.Y == b.Y {
		return 1
	}
	return math.Sqrt2
}

func absf(v int) float64 {
	if v < 0 {
		return float64(-v)
	}
	return float64(v)
}

// backtrace walks parent links from n back to the start
func backtrace(n *oplog.Node) grid.Path {
	var path grid.Path
	for ; n != nil; n = n.Parent {
		path = append(path, n.Point())
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// biBacktrace joins the two halves of a bidirectional search that met
// between a (reached from the start) and b (reached from the end).
func biBacktrace(a, b *oplog.Node) grid.Path {
	front := backtrace(a)
	back := backtrace(b)
	for i := len(back) - 1; i >= 0; i-- {
		front = append(front, back[i])
	}
	return front
}
