package services

import (
	"poxim-backend/models"
)

// movement expansion order is fixed for reproducible search traces
var movementOrder = []models.Action{
	models.ActionUp,
	models.ActionDown,
	models.ActionLeft,
	models.ActionRight,
}

// NavigationProblem - state-space definition for one navigation leg:
// reach a single target cell and/or return to base. States are
// (position, battery, pending targets); battery strictly decreases
// along every transition, so search always terminates.
type NavigationProblem struct {
	initial models.State
	goal    models.Position // leg terminal: the target cell, or the mission base
	grid    models.GridConfig
}

// NewNavigationProblem - build a leg over the given grid
func NewNavigationProblem(initial models.State, goal models.Position, grid models.GridConfig) *NavigationProblem {
	return &NavigationProblem{
		initial: initial,
		goal:    goal,
		grid:    grid,
	}
}

func (p *NavigationProblem) Initial() models.State     { return p.initial }
func (p *NavigationProblem) SetInitial(s models.State) { p.initial = s }
func (p *NavigationProblem) Goal() models.Position     { return p.goal }
func (p *NavigationProblem) SetGoal(g models.Position) { p.goal = g }

// Actions - legal movements from a state. Empty when battery is
// exhausted (a dead end the search handles, not an error); a direction
// is included only when its destination is in bounds and unobstructed.
func (p *NavigationProblem) Actions(s models.State) []models.Action {
	if s.Battery <= 0 {
		return nil
	}

	var actions []models.Action
	for _, a := range movementOrder {
		dx, dy, _ := a.Delta()
		dest := s.Pos.Shift(dx, dy)
		if p.grid.InBounds(dest) && !p.grid.IsObstacle(dest) {
			actions = append(actions, a)
		}
	}
	return actions
}

// Result - successor state: position shifts, the destination is
// removed from the pending targets when it is one (auto-collect on
// arrival), and battery drops by the destination-based step cost.
func (p *NavigationProblem) Result(s models.State, a models.Action) models.State {
	dx, dy, _ := a.Delta()
	dest := s.Pos.Shift(dx, dy)

	return models.State{
		Pos:     dest,
		Battery: s.Battery - p.grid.StepCost(dest),
		Targets: s.Targets.Without(dest),
	}
}

// GoalTest - all targets collected, drone at the leg terminal, battery
// still non-negative
func (p *NavigationProblem) GoalTest(s models.State) bool {
	return s.Targets.Empty() && s.Pos == p.goal && s.Battery >= 0
}

// PathCost - accumulated cost plus the step cost of the destination
// cell. Uses the identical rule as Result so the reported path cost
// always matches the battery actually consumed.
func (p *NavigationProblem) PathCost(c float64, s1 models.State, a models.Action, s2 models.State) float64 {
	return c + float64(p.grid.StepCost(s2.Pos))
}

// H - admissible heuristic: wind-adjusted Manhattan distance to the
// leg terminal, or, while targets remain, the most optimistic
// target-then-terminal round trip.
func (p *NavigationProblem) H(s models.State) float64 {
	if s.Targets.Empty() {
		return p.grid.WindAdjustedDistance(s.Pos, p.goal)
	}

	best := -1.0
	for _, t := range s.Targets {
		est := p.grid.WindAdjustedDistance(s.Pos, t) + p.grid.WindAdjustedDistance(t, p.goal)
		if best < 0 || est < best {
			best = est
		}
	}
	return best
}
