package algorithms

// BreadthFirstSearch - uninformed graph search, goal-tested at
// generation time. Optimal in number of actions, not in path cost.
// Returns nil when no solution exists.
func BreadthFirstSearch(p Problem) *Node {
	root := &Node{State: p.Initial()}
	if p.GoalTest(root.State) {
		return root
	}

	frontier := []*Node{root}
	explored := map[string]bool{root.State.Key(): true}

	for len(frontier) > 0 {
		current := frontier[0]
		frontier = frontier[1:]

		for _, child := range current.Expand(p) {
			key := child.State.Key()
			if explored[key] {
				continue
			}
			if p.GoalTest(child.State) {
				return child
			}
			explored[key] = true
			frontier = append(frontier, child)
		}
	}

	return nil
}
