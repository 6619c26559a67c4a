package oplog

import "pathviz/internal/grid"

// Direction tags which end of a bidirectional search reached a node
const (
	ByStart = 1
	ByEnd   = 2
)

// Node carries the per-run search state of one grid cell. The opened,
// closed and tested flags can only be changed through their setters so that
// every assignment is recorded.
type Node struct {
	X, Y int

	G, H, F float64
	Parent  *Node
	By      int

	// HeapIndex is owned by the priority queue holding the node
	HeapIndex int
	// RetainCount counts live references from a recursive search branch
	RetainCount int

	opened bool
	closed bool
	tested bool

	store *Recorder
}

// Point returns the node's coordinate
func (n *Node) Point() grid.Point { return grid.Point{X: n.X, Y: n.Y} }

func (n *Node) Opened() bool { return n.opened }
func (n *Node) Closed() bool { return n.closed }
func (n *Node) Tested() bool { return n.tested }

// SetOpened records and assigns the opened flag
func (n *Node) SetOpened(v bool) {
	n.opened = v
	n.store.record(n, Opened, v)
}

// SetClosed records and assigns the closed flag
func (n *Node) SetClosed(v bool) {
	n.closed = v
	n.store.record(n, Closed, v)
}

// SetTested records and assigns the tested flag
func (n *Node) SetTested(v bool) {
	n.tested = v
	n.store.record(n, Tested, v)
}

// NodeStore hands out the search nodes for a single run
type NodeStore interface {
	Node(x, y int) *Node
}

// Recorder is a NodeStore that appends every instrumented write to a Log.
// A Recorder with a nil log still tracks nodes but records nothing.
type Recorder struct {
	log   *Log
	nodes map[grid.Point]*Node
}

// NewRecorder creates a node store writing to log
func NewRecorder(log *Log) *Recorder {
	return &Recorder{
		log:   log,
		nodes: make(map[grid.Point]*Node),
	}
}

// Node returns the node at (x, y), creating it on first use
func (r *Recorder) Node(x, y int) *Node {
	p := grid.Point{X: x, Y: y}
	if n, ok := r.nodes[p]; ok {
		return n
	}
	n := &Node{X: x, Y: y, HeapIndex: -1, store: r}
	r.nodes[p] = n
	return n
}

func (r *Recorder) record(n *Node, attr Attribute, v bool) {
	if r == nil || r.log == nil {
		return
	}
	r.log.Push(Event{X: n.X, Y: n.Y, Attr: attr, Value: v})
}
