package finder

import (
	"container/heap"

	"pathviz/internal/oplog"
)

// openList is a min-heap of nodes ordered by F
type openList struct {
	items nodeHeap
}

func (o *openList) Len() int { return len(o.items) }

func (o *openList) Push(n *oplog.Node) { heap.Push(&o.items, n) }

func (o *openList) Pop() *oplog.Node { return heap.Pop(&o.items).(*oplog.Node) }

// Update restores heap order after n's F changed
func (o *openList) Update(n *oplog.Node) {
	if n.HeapIndex >= 0 && n.HeapIndex < len(o.items) && o.items[n.HeapIndex] == n {
		heap.Fix(&o.items, n.HeapIndex)
	}
}

type nodeHeap []*oplog.Node

func (h nodeHeap) Len() int           { return len(h) }
func (h nodeHeap) Less(i, j int) bool { return h[i].F < h[j].F }
func (h nodeHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].HeapIndex = i
	h[j].HeapIndex = j
}

func (h *nodeHeap) Push(x any) {
	n := x.(*oplog.Node)
	n.HeapIndex = len(*h)
	*h = append(*h, n)
}

func (h *nodeHeap) Pop() any {
	old := *h
	last := len(old) - 1
	n := old[last]
	old[last] = nil
	n.HeapIndex = -1
	*h = old[:last]
	return n
}
