package algorithms

import (
	"poxim-backend/models"
)

// Problem - narrow state-space search contract. Any type implementing
// it can be searched by BreadthFirstSearch, GreedyBestFirstSearch or
// AStarSearch. Initial and Goal are rebindable so iterative variants
// and instrumentation wrappers keep working.
type Problem interface {
	Initial() models.State
	SetInitial(models.State)
	Goal() models.Position
	SetGoal(models.Position)

	Actions(s models.State) []models.Action
	Result(s models.State, a models.Action) models.State
	GoalTest(s models.State) bool
	PathCost(c float64, s1 models.State, a models.Action, s2 models.State) float64
	H(s models.State) float64
}

// Node - search tree node
type Node struct {
	State  models.State
	Parent *Node
	Action models.Action
	Cost   float64 // accumulated path cost (g)
}

// Expand - child nodes reachable in one action. Calls p.Actions exactly
// once, which is what instrumentation counts as one expansion.
func (n *Node) Expand(p Problem) []*Node {
	actions := p.Actions(n.State)
	children := make([]*Node, 0, len(actions))
	for _, a := range actions {
		next := p.Result(n.State, a)
		children = append(children, &Node{
			State:  next,
			Parent: n,
			Action: a,
			Cost:   p.PathCost(n.Cost, n.State, a, next),
		})
	}
	return children
}

// Solution - action sequence from the root to this node
func (n *Node) Solution() []models.Action {
	var actions []models.Action
	for cur := n; cur.Parent != nil; cur = cur.Parent {
		actions = append(actions, cur.Action)
	}
	// reverse in place
	for i, j := 0, len(actions)-1; i < j; i, j = i+1, j-1 {
		actions[i], actions[j] = actions[j], actions[i]
	}
	return actions
}
