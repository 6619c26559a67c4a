package finder

import (
	"math"

	"pathviz/internal/grid"
	"pathviz/internal/oplog"
)

// JumpPointFinder prunes symmetric paths by jumping along straight lines
// until a forced neighbor appears. Only the DiagonalNever and
// DiagonalIfAtMostOneObstacle policies are supported.
type JumpPointFinder struct {
	Diagonal       grid.DiagonalMovement
	Heuristic      Heuristic
	TrackRecursion bool
}

type jumpSearch struct {
	*JumpPointFinder
	g     *grid.Grid
	nodes oplog.NodeStore
	open  openList
	end   *oplog.Node
}

func (f *JumpPointFinder) FindPath(startX, startY, endX, endY int, g *grid.Grid, nodes oplog.NodeStore) (grid.Path, error) {
	s := &jumpSearch{JumpPointFinder: f, g: g, nodes: nodes}
	start := nodes.Node(startX, startY)
	s.end = nodes.Node(endX, endY)

	start.G, start.F = 0, 0
	s.open.Push(start)
	start.SetOpened(true)

	for s.open.Len() > 0 {
		node := s.open.Pop()
		node.SetClosed(true)

		if node == s.end {
			return grid.ExpandPath(backtrace(s.end)), nil
		}
		s.identifySuccessors(node)
	}
	return nil, nil
}

func (s *jumpSearch) identifySuccessors(node *oplog.Node) {
	h := s.Heuristic
	if h == nil {
		h = HeuristicFor(Manhattan)
	}
	octile := HeuristicFor(Octile)

	for _, n := range s.findNeighbors(node) {
		jp, ok := s.jump(n.X, n.Y, node.X, node.Y)
		if !ok {
			continue
		}
		jumpNode := s.nodes.Node(jp.X, jp.Y)
		if jumpNode.Closed() {
			continue
		}

		ng := node.G + octile(absf(jp.X-node.X), absf(jp.Y-node.Y))
		if !jumpNode.Opened() || ng < jumpNode.G {
			jumpNode.G = ng
			if jumpNode.H == 0 {
				jumpNode.H = h(absf(jp.X-s.end.X), absf(jp.Y-s.end.Y))
			}
			jumpNode.F = jumpNode.G + jumpNode.H
			jumpNode.Parent = node

			if !jumpNode.Opened() {
				s.open.Push(jumpNode)
				jumpNode.SetOpened(true)
			} else {
				s.open.Update(jumpNode)
			}
		}
	}
}

func (s *jumpSearch) walkable(x, y int) bool { return s.g.Walkable(x, y) }

// direction returns the unit step from the node's parent to the node
func direction(node *oplog.Node) (int, int) {
	px, py := node.Parent.X, node.Parent.Y
	dx := (node.X - px) / int(math.Max(absf(node.X-px), 1))
	dy := (node.Y - py) / int(math.Max(absf(node.Y-py), 1))
	return dx, dy
}

func (s *jumpSearch) findNeighbors(node *oplog.Node) []grid.Point {
	if node.Parent == nil {
		return s.g.Neighbors(node.X, node.Y, s.Diagonal)
	}
	if s.Diagonal == grid.DiagonalNever {
		return s.orthogonalNeighbors(node)
	}

	x, y := node.X, node.Y
	dx, dy := direction(node)
	var out []grid.Point

	if dx != 0 && dy != 0 {
		if s.walkable(x, y+dy) {
			out = append(out, grid.Point{X: x, Y: y + dy})
		}
		if s.walkable(x+dx, y) {
			out = append(out, grid.Point{X: x + dx, Y: y})
		}
		if s.walkable(x, y+dy) || s.walkable(x+dx, y) {
			out = append(out, grid.Point{X: x + dx, Y: y + dy})
		}
		if !s.walkable(x-dx, y) && s.walkable(x, y+dy) {
			out = append(out, grid.Point{X: x - dx, Y: y + dy})
		}
		if !s.walkable(x, y-dy) && s.walkable(x+dx, y) {
			out = append(out, grid.Point{X: x + dx, Y: y - dy})
		}
		return out
	}

	if dx == 0 {
		if s.walkable(x, y+dy) {
			out = append(out, grid.Point{X: x, Y: y + dy})
			if !s.walkable(x+1, y) {
				out = append(out, grid.Point{X: x + 1, Y: y + dy})
			}
			if !s.walkable(x-1, y) {
				out = append(out, grid.Point{X: x - 1, Y: y + dy})
			}
		}
		return out
	}

	if s.walkable(x+dx, y) {
		out = append(out, grid.Point{X: x + dx, Y: y})
		if !s.walkable(x, y+1) {
			out = append(out, grid.Point{X: x + dx, Y: y + 1})
		}
		if !s.walkable(x, y-1) {
			out = append(out, grid.Point{X: x + dx, Y: y - 1})
		}
	}
	return out
}

func (s *jumpSearch) orthogonalNeighbors(node *oplog.Node) []grid.Point {
	x, y := node.X, node.Y
	dx, dy := direction(node)
	var out []grid.Point

	if dx != 0 {
		if s.walkable(x, y-1) {
			out = append(out, grid.Point{X: x, Y: y - 1})
		}
		if s.walkable(x, y+1) {
			out = append(out, grid.Point{X: x, Y: y + 1})
		}
		if s.walkable(x+dx, y) {
			out = append(out, grid.Point{X: x + dx, Y: y})
		}
	} else if dy != 0 {
		if s.walkable(x-1, y) {
			out = append(out, grid.Point{X: x - 1, Y: y})
		}
		if s.walkable(x+1, y) {
			out = append(out, grid.Point{X: x + 1, Y: y})
		}
		if s.walkable(x, y+dy) {
			out = append(out, grid.Point{X: x, Y: y + dy})
		}
	}
	return out
}

// jump searches from (x, y), arriving from (px, py), for the next jump point
func (s *jumpSearch) jump(x, y, px, py int) (grid.Point, bool) {
	if !s.walkable(x, y) {
		return grid.Point{}, false
	}
	if s.TrackRecursion {
		s.nodes.Node(x, y).SetTested(true)
	}
	if x == s.end.X && y == s.end.Y {
		return grid.Point{X: x, Y: y}, true
	}
	if s.Diagonal == grid.DiagonalNever {
		return s.jumpOrthogonal(x, y, px, py)
	}

	here := grid.Point{X: x, Y: y}
	dx, dy := x-px, y-py

	if dx != 0 && dy != 0 {
		if (s.walkable(x-dx, y+dy) && !s.walkable(x-dx, y)) ||
			(s.walkable(x+dx, y-dy) && !s.walkable(x, y-dy)) {
			return here, true
		}
		// diagonal moves must look for horizontal and vertical jump points
		if _, ok := s.jump(x+dx, y, x, y); ok {
			return here, true
		}
		if _, ok := s.jump(x, y+dy, x, y); ok {
			return here, true
		}
	} else if dx != 0 {
		if (s.walkable(x+dx, y+1) && !s.walkable(x, y+1)) ||
			(s.walkable(x+dx, y-1) && !s.walkable(x, y-1)) {
			return here, true
		}
	} else {
		if (s.walkable(x+1, y+dy) && !s.walkable(x+1, y)) ||
			(s.walkable(x-1, y+dy) && !s.walkable(x-1, y)) {
			return here, true
		}
	}

	if s.walkable(x+dx, y) || s.walkable(x, y+dy) {
		return s.jump(x+dx, y+dy, x, y)
	}
	return grid.Point{}, false
}

func (s *jumpSearch) jumpOrthogonal(x, y, px, py int) (grid.Point, bool) {
	here := grid.Point{X: x, Y: y}
	dx, dy := x-px, y-py

	if dx != 0 {
		if (s.walkable(x, y-1) && !s.walkable(x-dx, y-1)) ||
			(s.walkable(x, y+1) && !s.walkable(x-dx, y+1)) {
			return here, true
		}
	} else if dy != 0 {
		if (s.walkable(x-1, y) && !s.walkable(x-1, y-dy)) ||
			(s.walkable(x+1, y) && !s.walkable(x+1, y-dy)) {
			return here, true
		}
		// vertical moves must look for horizontal jump points
		if _, ok := s.jump(x+1, y, x, y); ok {
			return here, true
		}
		if _, ok := s.jump(x-1, y, x, y); ok {
			return here, true
		}
	} else {
		return grid.Point{}, false
	}
	return s.jump(x+dx, y+dy, x, y)
}
