package finder

import (
	"pathviz/internal/grid"
	"pathviz/internal/oplog"
)

// AStarFinder is weighted A*. Best-first and Dijkstra are A* with a scaled
// or zero heuristic.
type AStarFinder struct {
	Diagonal  grid.DiagonalMovement
	Heuristic Heuristic
	Weight    float64
}

func (f *AStarFinder) heuristic(n *oplog.Node, x, y int) float64 {
	h := f.Heuristic
	if h == nil {
		h = HeuristicFor(Manhattan)
	}
	w := f.Weight
	if w < 1 {
		w = 1
	}
	return w * h(absf(n.X-x), absf(n.Y-y))
}

func (f *AStarFinder) FindPath(startX, startY, endX, endY int, g *grid.Grid, nodes oplog.NodeStore) (grid.Path, error) {
	var open openList
	start := nodes.Node(startX, startY)
	end := nodes.Node(endX, endY)

	start.G, start.F = 0, 0
	open.Push(start)
	start.SetOpened(true)

	for open.Len() > 0 {
		node := open.Pop()
		node.SetClosed(true)

		if node == end {
			return backtrace(end), nil
		}

		for _, p := range g.Neighbors(node.X, node.Y, f.Diagonal) {
			neighbor := nodes.Node(p.X, p.Y)
			if neighbor.Closed() {
				continue
			}

			ng := node.G + stepCost(node, neighbor)
			if !neighbor.Opened() || ng < neighbor.G {
				neighbor.G = ng
				if neighbor.H == 0 {
					neighbor.H = f.heuristic(neighbor, endX, endY)
				}
				neighbor.F = neighbor.G + neighbor.H
				neighbor.Parent = node

				if !neighbor.Opened() {
					open.Push(neighbor)
					neighbor.SetOpened(true)
				} else {
					// the neighbor is already queued with a worse score
					open.Update(neighbor)
				}
			}
		}
	}
	return nil, nil
}

// BiAStarFinder runs A* from both ends and stops when the frontiers touch
type BiAStarFinder struct {
	AStarFinder
}

func (f *BiAStarFinder) FindPath(startX, startY, endX, endY int, g *grid.Grid, nodes oplog.NodeStore) (grid.Path, error) {
	var startOpen, endOpen openList
	start := nodes.Node(startX, startY)
	end := nodes.Node(endX, endY)
	if start == end {
		return grid.Path{start.Point()}, nil
	}

	start.G, start.F = 0, 0
	startOpen.Push(start)
	start.By = oplog.ByStart
	start.SetOpened(true)

	end.G, end.F = 0, 0
	endOpen.Push(end)
	end.By = oplog.ByEnd
	end.SetOpened(true)

	for startOpen.Len() > 0 && endOpen.Len() > 0 {
		if path, ok := f.expand(g, nodes, &startOpen, oplog.ByStart, endX, endY); ok {
			return path, nil
		}
		if path, ok := f.expand(g, nodes, &endOpen, oplog.ByEnd, startX, startY); ok {
			return path, nil
		}
	}
	return nil, nil
}

// expand closes the best node of one frontier. It reports a path when a
// neighbor already belongs to the opposite frontier.
func (f *BiAStarFinder) expand(g *grid.Grid, nodes oplog.NodeStore, open *openList, side, targetX, targetY int) (grid.Path, bool) {
	node := open.Pop()
	node.SetClosed(true)

	for _, p := range g.Neighbors(node.X, node.Y, f.Diagonal) {
		neighbor := nodes.Node(p.X, p.Y)
		if neighbor.Closed() {
			continue
		}
		if neighbor.Opened() && neighbor.By != side {
			if side == oplog.ByStart {
				return biBacktrace(node, neighbor), true
			}
			return biBacktrace(neighbor, node), true
		}

		ng := node.G + stepCost(node, neighbor)
		if !neighbor.Opened() || ng < neighbor.G {
			neighbor.G = ng
			if neighbor.H == 0 {
				neighbor.H = f.heuristic(neighbor, targetX, targetY)
			}
			neighbor.F = neighbor.G + neighbor.H
			neighbor.Parent = node

			if !neighbor.Opened() {
				open.Push(neighbor)
				neighbor.By = side
				neighbor.SetOpened(true)
			} else {
				open.Update(neighbor)
			}
		}
	}
	return nil, false
}
