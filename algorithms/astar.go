package algorithms

import (
	"container/heap"
)

// queueItem - priority queue entry
type queueItem struct {
	node     *Node
	priority float64
	index    int // for heap
}

// priorityQueue - min-heap ordered by priority
type priorityQueue []*queueItem

func (pq priorityQueue) Len() int { return len(pq) }

func (pq priorityQueue) Less(i, j int) bool {
	return pq[i].priority < pq[j].priority
}

func (pq priorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *priorityQueue) Push(x interface{}) {
	item := x.(*queueItem)
	item.index = len(*pq)
	*pq = append(*pq, item)
}

func (pq *priorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*pq = old[0 : n-1]
	return item
}

// AStarSearch - best-first graph search ordered by f = g + h.
// Returns the goal node, or nil when no solution exists.
func AStarSearch(p Problem) *Node {
	return bestFirstSearch(p, func(n *Node) float64 {
		return n.Cost + p.H(n.State)
	})
}

// GreedyBestFirstSearch - best-first graph search ordered by h alone
func GreedyBestFirstSearch(p Problem) *Node {
	return bestFirstSearch(p, func(n *Node) float64 {
		return p.H(n.State)
	})
}

// bestFirstSearch - graph search expanding the frontier node that
// minimizes f. Goal test happens when a node is popped, so with an
// admissible f = g + h the returned path cost is optimal. A state is
// re-queued only when reached with a strictly lower path cost.
func bestFirstSearch(p Problem, f func(*Node) float64) *Node {
	root := &Node{State: p.Initial()}
	if p.GoalTest(root.State) {
		return root
	}

	frontier := make(priorityQueue, 0)
	heap.Init(&frontier)
	heap.Push(&frontier, &queueItem{node: root, priority: f(root)})

	bestCost := map[string]float64{root.State.Key(): 0}

	for frontier.Len() > 0 {
		current := heap.Pop(&frontier).(*queueItem).node

		if p.GoalTest(current.State) {
			return current
		}

		// A cheaper route to this state was queued after this entry
		if g, ok := bestCost[current.State.Key()]; ok && current.Cost > g {
			continue
		}

		for _, child := range current.Expand(p) {
			key := child.State.Key()
			if g, seen := bestCost[key]; !seen || child.Cost < g {
				bestCost[key] = child.Cost
				heap.Push(&frontier, &queueItem{node: child, priority: f(child)})
			}
		}
	}

	return nil
}
