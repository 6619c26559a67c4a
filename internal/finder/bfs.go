package finder

import (
	"pathviz/internal/grid"
	"pathviz/internal/oplog"
)

// BreadthFirstFinder expands nodes in FIFO order
type BreadthFirstFinder struct {
	Diagonal grid.DiagonalMovement
}

func (f *BreadthFirstFinder) FindPath(startX, startY, endX, endY int, g *grid.Grid, nodes oplog.NodeStore) (grid.Path, error) {
	start := nodes.Node(startX, startY)
	end := nodes.Node(endX, endY)

	queue := []*oplog.Node{start}
	start.SetOpened(true)

	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		node.SetClosed(true)

		if node == end {
			return backtrace(end), nil
		}

		for _, p := range g.Neighbors(node.X, node.Y, f.Diagonal) {
			neighbor := nodes.Node(p.X, p.Y)
			if neighbor.Closed() || neighbor.Opened() {
				continue
			}
			queue = append(queue, neighbor)
			neighbor.SetOpened(true)
			neighbor.Parent = node
		}
	}
	return nil, nil
}

// BiBreadthFirstFinder grows two breadth-first frontiers until they meet
type BiBreadthFirstFinder struct {
	Diagonal grid.DiagonalMovement
}

func (f *BiBreadthFirstFinder) FindPath(startX, startY, endX, endY int, g *grid.Grid, nodes oplog.NodeStore) (grid.Path, error) {
	start := nodes.Node(startX, startY)
	end := nodes.Node(endX, endY)
	if start == end {
		return grid.Path{start.Point()}, nil
	}

	startQueue := []*oplog.Node{start}
	start.By = oplog.ByStart
	start.SetOpened(true)

	endQueue := []*oplog.Node{end}
	end.By = oplog.ByEnd
	end.SetOpened(true)

	for len(startQueue) > 0 && len(endQueue) > 0 {
		var (
			path  grid.Path
			found bool
		)
		if startQueue, path, found = f.expand(g, nodes, startQueue, oplog.ByStart); found {
			return path, nil
		}
		if endQueue, path, found = f.expand(g, nodes, endQueue, oplog.ByEnd); found {
			return path, nil
		}
	}
	return nil, nil
}

func (f *BiBreadthFirstFinder) expand(g *grid.Grid, nodes oplog.NodeStore, queue []*oplog.Node, side int) ([]*oplog.Node, grid.Path, bool) {
	node := queue[0]
	queue = queue[1:]
	node.SetClosed(true)

	for _, p := range g.Neighbors(node.X, node.Y, f.Diagonal) {
		neighbor := nodes.Node(p.X, p.Y)
		if neighbor.Closed() {
			continue
		}
		if neighbor.Opened() {
			if neighbor.By != side {
				if side == oplog.ByStart {
					return queue, biBacktrace(node, neighbor), true
				}
				return queue, biBacktrace(neighbor, node), true
			}
			continue
		}
		queue = append(queue, neighbor)
		neighbor.Parent = node
		neighbor.By = side
		neighbor.SetOpened(true)
	}
	return queue, nil, false
}
