package finder

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/cockroachdb/errors"

	"pathviz/internal/grid"
	"pathviz/internal/oplog"
)

// IDAStarFinder is iterative deepening A*. It keeps no open list; each
// iteration is a depth-first search bounded by an f-cost cutoff.
type IDAStarFinder struct {
	Diagonal       grid.DiagonalMovement
	Heuristic      Heuristic
	Weight         float64
	TrackRecursion bool
	// TimeLimit is in seconds; values <= 0 mean unbounded
	TimeLimit int

	// Now is the clock used for the time limit, time.Now when nil
	Now func() time.Time
	// Context interrupts the search when done; it is reported as ErrTimeLimit
	Context context.Context
}

// checkEvery is how many expansions pass between clock and context checks
const checkEvery = 256

type idaSearch struct {
	*IDAStarFinder
	g        *grid.Grid
	nodes    oplog.NodeStore
	end      *oplog.Node
	deadline time.Time
	expired  bool
	steps    int
	onRoute  map[*oplog.Node]bool
	route    grid.Path
}

func (f *IDAStarFinder) FindPath(startX, startY, endX, endY int, g *grid.Grid, nodes oplog.NodeStore) (grid.Path, error) {
	s := &idaSearch{
		IDAStarFinder: f,
		g:             g,
		nodes:         nodes,
		end:           nodes.Node(endX, endY),
		onRoute:       make(map[*oplog.Node]bool),
	}
	if f.TimeLimit > 0 {
		s.deadline = f.now().Add(time.Duration(f.TimeLimit) * time.Second)
	}

	// every simple path would be enumerated before giving up
	if !reachable(g, startX, startY, endX, endY, f.Diagonal) {
		return nil, nil
	}

	start := nodes.Node(startX, startY)
	cutoff := s.h(start)

	for {
		s.route = s.route[:0]
		t, found := s.search(start, 0, cutoff)
		if found {
			path := make(grid.Path, len(s.route))
			copy(path, s.route)
			return path, nil
		}
		if s.expired {
			if f.Context != nil && f.Context.Err() != nil {
				return nil, errors.Wrapf(ErrTimeLimit, "interrupted: %v", f.Context.Err())
			}
			return nil, errors.Wrapf(ErrTimeLimit, "after %ds", f.TimeLimit)
		}
		if math.IsInf(t, 1) {
			return nil, nil
		}
		cutoff = t
	}
}

func (f *IDAStarFinder) now() time.Time {
	if f.Now != nil {
		return f.Now()
	}
	return time.Now()
}

func (s *idaSearch) h(n *oplog.Node) float64 {
	h := s.Heuristic
	if h == nil {
		h = HeuristicFor(Manhattan)
	}
	w := s.Weight
	if w < 1 {
		w = 1
	}
	return w * h(absf(s.end.X-n.X), absf(s.end.Y-n.Y))
}

// search returns either found=true with the route filled in, or the
// smallest f-cost that exceeded the cutoff.
func (s *idaSearch) search(node *oplog.Node, g, cutoff float64) (float64, bool) {
	if s.interrupted() {
		s.expired = true
		return math.Inf(1), false
	}

	f := g + s.h(node)
	if f > cutoff {
		return f, false
	}

	s.route = append(s.route, node.Point())
	if node == s.end {
		return 0, true
	}
	s.onRoute[node] = true
	defer delete(s.onRoute, node)

	var neighbors []*oplog.Node
	for _, p := range s.g.Neighbors(node.X, node.Y, s.Diagonal) {
		n := s.nodes.Node(p.X, p.Y)
		if !s.onRoute[n] {
			neighbors = append(neighbors, n)
		}
	}
	// most promising first
	sort.SliceStable(neighbors, func(i, j int) bool {
		return s.h(neighbors[i]) < s.h(neighbors[j])
	})

	lowest := math.Inf(1)
	for _, neighbor := range neighbors {
		if s.TrackRecursion {
			neighbor.RetainCount++
			if !neighbor.Tested() {
				neighbor.SetTested(true)
			}
		}

		t, found := s.search(neighbor, g+stepCost(node, neighbor), cutoff)
		if found {
			return 0, true
		}
		if s.expired {
			return math.Inf(1), false
		}

		if s.TrackRecursion {
			neighbor.RetainCount--
			if neighbor.RetainCount == 0 {
				neighbor.SetTested(false)
			}
		}
		if t < lowest {
			lowest = t
		}
	}

	s.route = s.route[:len(s.route)-1]
	return lowest, false
}

func (s *idaSearch) interrupted() bool {
	s.steps++
	if s.steps%checkEvery != 1 {
		return false
	}
	if s.Context != nil && s.Context.Err() != nil {
		return true
	}
	return !s.deadline.IsZero() && s.now().After(s.deadline)
}

// reachable floods the grid from the start without touching any node
func reachable(g *grid.Grid, startX, startY, endX, endY int, diagonal grid.DiagonalMovement) bool {
	target := grid.Point{X: endX, Y: endY}
	seen := map[grid.Point]bool{{X: startX, Y: startY}: true}
	queue := []grid.Point{{X: startX, Y: startY}}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		if p == target {
			return true
		}
		for _, n := range g.Neighbors(p.X, p.Y, diagonal) {
			if !seen[n] {
				seen[n] = true
				queue = append(queue, n)
			}
		}
	}
	return false
}
