package dag

import (
	"container/heap"
	"fmt"
)

// indexHeap is a min-heap of nodes ordered by insertion index.
type indexHeap []*node

func (h indexHeap) Len() int           { return len(h) }
func (h indexHeap) Less(i, j int) bool { return h[i].index < h[j].index }
func (h indexHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *indexHeap) Push(x any)        { *h = append(*h, x.(*node)) }
func (h *indexHeap) Pop() any {
	old := *h
	n := old[len(old)-1]
	*h = old[:len(old)-1]
	return n
}

// TopologicalOrder returns every node ID such that each edge points from an
// earlier to a later ID (Kahn's algorithm). Among nodes that are ready at the
// same time, the one inserted first comes first, so the order is
// deterministic. If the graph has a cycle, an error wrapping ErrCycle is
// returned.
func (g *Graph) TopologicalOrder() ([]string, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	inDegree := make(map[string]int, len(g.nodes))
	ready := &indexHeap{}
	for _, id := range g.order {
		n := g.nodes[id]
		inDegree[id] = len(n.deps)
		if len(n.deps) == 0 {
			*ready = append(*ready, n)
		}
	}
	heap.Init(ready)

	order := make([]string, 0, len(g.order))
	for ready.Len() > 0 {
		n := heap.Pop(ready).(*node)
		order = append(order, n.id)

		for _, succID := range n.dependents {
			inDegree[succID]--
			if inDegree[succID] == 0 {
				heap.Push(ready, g.nodes[succID])
			}
		}
	}

	if len(order) != len(g.order) {
		return nil, fmt.Errorf("%w: %d of %d nodes sorted", ErrCycle, len(order), len(g.order))
	}
	return order, nil
}
