package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"poxim-backend/models"
)

func TestCompareAlgorithms(t *testing.T) {
	grid := DefaultGridConfig()
	goal := models.Position{X: 7, Y: 2}
	initial := models.State{
		Pos:     grid.Base,
		Battery: grid.BatteryCapacity,
		Targets: models.NewTargetSet(goal),
	}

	results := CompareAlgorithms(initial, goal, grid)
	require.Len(t, results, 3)

	byName := make(map[string]AlgorithmResult, len(results))
	for _, r := range results {
		byName[r.Name] = r
		assert.True(t, r.Solved, "%s must solve the default leg", r.Name)
		assert.Greater(t, r.Expansions, 0, "%s must report expansions", r.Name)
		assert.Equal(t, len(r.Actions), r.PathLength)
	}

	require.Contains(t, byName, "breadth_first")
	require.Contains(t, byName, "greedy_best_first")
	require.Contains(t, byName, "astar")

	// an urban-free Manhattan route exists, so A* finds cost 9
	assert.Equal(t, 9.0, byName["astar"].PathCost)
	assert.LessOrEqual(t, byName["astar"].PathCost, byName["greedy_best_first"].PathCost)
	assert.LessOrEqual(t, byName["astar"].PathCost, byName["breadth_first"].PathCost)
}

func TestCompareAlgorithmsUnsolvable(t *testing.T) {
	grid := DefaultGridConfig()
	goal := models.Position{X: 9, Y: 9}
	initial := models.State{
		Pos:     grid.Base,
		Battery: 2, // far too little for an 18-cell trip
		Targets: models.NewTargetSet(goal),
	}

	for _, r := range CompareAlgorithms(initial, goal, grid) {
		assert.False(t, r.Solved)
		assert.Empty(t, r.Actions)
	}
}
