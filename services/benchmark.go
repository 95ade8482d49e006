package services

import (
	"log"
	"time"

	"poxim-backend/algorithms"
	"poxim-backend/models"
)

// AlgorithmResult - one search procedure measured on one problem
type AlgorithmResult struct {
	Name       string          `json:"name"`
	Solved     bool            `json:"solved"`
	Expansions int             `json:"expansions"`
	DurationMS float64         `json:"duration_ms"`
	PathCost   float64         `json:"path_cost"`
	PathLength int             `json:"path_length"`
	Actions    []models.Action `json:"actions,omitempty"`
}

// CompareAlgorithms - run BFS, greedy best-first and A* on the same
// navigation problem and report expansions, wall time and path cost
// side by side. Each procedure gets a fresh problem instance so
// instrumentation counts are independent.
func CompareAlgorithms(initial models.State, goal models.Position, grid models.GridConfig) []AlgorithmResult {
	procedures := []struct {
		name   string
		search SearchFunc
	}{
		{"breadth_first", algorithms.BreadthFirstSearch},
		{"greedy_best_first", algorithms.GreedyBestFirstSearch},
		{"astar", algorithms.AStarSearch},
	}

	results := make([]AlgorithmResult, 0, len(procedures))
	for _, proc := range procedures {
		problem := NewNavigationProblem(initial, goal, grid)
		instrumented := algorithms.NewInstrumentedProblem(problem)

		start := time.Now()
		node := proc.search(instrumented)
		elapsed := time.Since(start)

		result := AlgorithmResult{
			Name:       proc.name,
			Expansions: instrumented.Expansions,
			DurationMS: float64(elapsed.Microseconds()) / 1000.0,
		}
		if node != nil {
			result.Solved = true
			result.PathCost = node.Cost
			result.Actions = node.Solution()
			result.PathLength = len(result.Actions)
		}
		results = append(results, result)

		log.Printf("📊 %s: solved=%v expansions=%d cost=%.1f in %.2fms",
			result.Name, result.Solved, result.Expansions, result.PathCost, result.DurationMS)
	}
	return results
}
