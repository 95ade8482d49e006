package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"poxim-backend/algorithms"
	"poxim-backend/models"
)

func testGrid() models.GridConfig {
	return models.GridConfig{
		Width: 6, Height: 6,
		Obstacles:       map[models.Position]bool{},
		UrbanZones:      map[models.Position]bool{},
		Base:            models.Position{X: 0, Y: 0},
		WindDirection:   models.WindNone,
		WindFactor:      1.0,
		BatteryCapacity: 30,
	}
}

func TestActionsFilterBoundsAndObstacles(t *testing.T) {
	grid := testGrid()
	grid.Obstacles[models.Position{X: 1, Y: 0}] = true

	p := NewNavigationProblem(models.State{
		Pos:     models.Position{X: 0, Y: 0},
		Battery: 10,
		Targets: models.NewTargetSet(),
	}, grid.Base, grid)

	// corner cell: UP and LEFT leave the grid, RIGHT is an obstacle
	actions := p.Actions(p.Initial())
	assert.Equal(t, []models.Action{models.ActionDown}, actions)
}

func TestActionsEmptyWhenBatteryExhausted(t *testing.T) {
	grid := testGrid()
	p := NewNavigationProblem(models.State{
		Pos:     models.Position{X: 3, Y: 3},
		Battery: 0,
		Targets: models.NewTargetSet(),
	}, grid.Base, grid)

	assert.Empty(t, p.Actions(p.Initial()))

	negative := models.State{Pos: models.Position{X: 3, Y: 3}, Battery: -2, Targets: models.NewTargetSet()}
	assert.Empty(t, p.Actions(negative))
}

func TestResultAppliesUrbanPenaltyAndCollectsTarget(t *testing.T) {
	grid := testGrid()
	urban := models.Position{X: 1, Y: 0}
	grid.UrbanZones[urban] = true

	p := NewNavigationProblem(models.State{
		Pos:     models.Position{X: 0, Y: 0},
		Battery: 10,
		Targets: models.NewTargetSet(urban),
	}, grid.Base, grid)

	next := p.Result(p.Initial(), models.ActionRight)
	assert.Equal(t, urban, next.Pos)
	assert.Equal(t, 7, next.Battery, "urban destination costs 3")
	assert.True(t, next.Targets.Empty(), "entering a target cell collects it")

	// the path cost rule matches the battery rule
	cost := p.PathCost(0, p.Initial(), models.ActionRight, next)
	assert.Equal(t, 3.0, cost)
}

func TestGoalTestRequiresAllConjuncts(t *testing.T) {
	grid := testGrid()
	goal := models.Position{X: 2, Y: 2}
	p := NewNavigationProblem(models.State{}, goal, grid)

	atGoal := models.State{Pos: goal, Battery: 5, Targets: models.NewTargetSet()}
	assert.True(t, p.GoalTest(atGoal))

	pendingTarget := models.State{Pos: goal, Battery: 5, Targets: models.NewTargetSet(models.Position{X: 4, Y: 4})}
	assert.False(t, p.GoalTest(pendingTarget), "pending targets block the goal")

	elsewhere := models.State{Pos: models.Position{X: 1, Y: 2}, Battery: 5, Targets: models.NewTargetSet()}
	assert.False(t, p.GoalTest(elsewhere), "position must match the leg terminal")

	drained := models.State{Pos: goal, Battery: -1, Targets: models.NewTargetSet()}
	assert.False(t, p.GoalTest(drained), "negative battery never satisfies the goal")
}

func TestHeuristicNeverOverestimatesOnCalmGrid(t *testing.T) {
	grid := testGrid() // wind none, no urban: true cost is the Manhattan distance
	goal := models.Position{X: 5, Y: 5}

	p := NewNavigationProblem(models.State{
		Pos:     models.Position{X: 0, Y: 0},
		Battery: 30,
		Targets: models.NewTargetSet(goal),
	}, goal, grid)

	node := algorithms.AStarSearch(p)
	require.NotNil(t, node)
	assert.LessOrEqual(t, p.H(p.Initial()), node.Cost)
	assert.Equal(t, 10.0, node.Cost)
}

func TestHeuristicRoundTripsThroughTargets(t *testing.T) {
	grid := testGrid()
	target := models.Position{X: 4, Y: 0}
	base := grid.Base

	p := NewNavigationProblem(models.State{
		Pos:     models.Position{X: 0, Y: 0},
		Battery: 30,
		Targets: models.NewTargetSet(target),
	}, base, grid)

	// out 4, back 4: the most optimistic target-then-terminal estimate
	assert.Equal(t, 8.0, p.H(p.Initial()))

	// once targets are gone the estimate is a plain distance to terminal
	collected := models.State{Pos: target, Battery: 26, Targets: models.NewTargetSet()}
	assert.Equal(t, 4.0, p.H(collected))
}

func TestSmallGridRoundTrip(t *testing.T) {
	grid := models.GridConfig{
		Width: 3, Height: 3,
		Obstacles:       map[models.Position]bool{},
		UrbanZones:      map[models.Position]bool{},
		Base:            models.Position{X: 0, Y: 0},
		WindDirection:   models.WindNone,
		WindFactor:      1.0,
		BatteryCapacity: 10,
	}

	p := NewNavigationProblem(models.State{
		Pos:     grid.Base,
		Battery: 10,
		Targets: models.NewTargetSet(models.Position{X: 2, Y: 0}),
	}, grid.Base, grid)

	node := algorithms.AStarSearch(p)
	require.NotNil(t, node)
	assert.Equal(t, 4.0, node.Cost, "two out, two back")
	assert.Equal(t, 6, node.State.Battery)
	assert.True(t, p.GoalTest(node.State))
}

func TestTargetSetShrinksMonotonically(t *testing.T) {
	grid := testGrid()
	targets := models.NewTargetSet(models.Position{X: 1, Y: 0}, models.Position{X: 2, Y: 0})
	p := NewNavigationProblem(models.State{
		Pos:     grid.Base,
		Battery: 20,
		Targets: targets,
	}, grid.Base, grid)

	state := p.Initial()
	walk := []models.Action{
		models.ActionRight, models.ActionRight, // collect both
		models.ActionLeft, models.ActionLeft, // back over collected cells
	}
	prev := len(state.Targets)
	for _, a := range walk {
		state = p.Result(state, a)
		assert.LessOrEqual(t, len(state.Targets), prev, "targets never grow")
		prev = len(state.Targets)
	}
	assert.True(t, state.Targets.Empty())
	assert.Equal(t, grid.Base, state.Pos)
}

func TestFullLegVisitTargetThenReturn(t *testing.T) {
	grid := testGrid()
	target := models.Position{X: 3, Y: 2}

	p := NewNavigationProblem(models.State{
		Pos:     grid.Base,
		Battery: 30,
		Targets: models.NewTargetSet(target),
	}, grid.Base, grid)

	node := algorithms.AStarSearch(p)
	require.NotNil(t, node)

	// out 5, back 5
	assert.Equal(t, 10.0, node.Cost)
	assert.Equal(t, grid.Base, node.State.Pos)
	assert.True(t, node.State.Targets.Empty())
	assert.Equal(t, 20, node.State.Battery)
}
