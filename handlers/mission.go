package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"poxim-backend/algorithms"
	"poxim-backend/models"
	"poxim-backend/services"
)

// Mission runner behind the HTTP API
var missionRunner *services.MissionRunner

// InitMissionRunner - install the runner the mission API drives
func InitMissionRunner(runner *services.MissionRunner) {
	missionRunner = runner
	log.Println("✈️ mission API initialized")
}

// HandleStartMission - launch a survey mission
func HandleStartMission(c *fiber.Ctx) error {
	if missionRunner.Running() {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success": false,
			"message": "a mission is already running",
		})
	}

	missionRunner.Start()
	return c.JSON(fiber.Map{
		"success": true,
		"status":  missionRunner.Status(),
	})
}

// HandleStopMission - abort the running mission
func HandleStopMission(c *fiber.Ctx) error {
	if !missionRunner.Running() {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success": false,
			"message": "no mission is running",
		})
	}

	missionRunner.Stop()
	return c.JSON(fiber.Map{
		"success": true,
	})
}

// HandleMissionStatus - current runner state
func HandleMissionStatus(c *fiber.Ctx) error {
	return c.JSON(missionRunner.Status())
}

// HandleMissionReport - final report of the last completed mission
func HandleMissionReport(c *fiber.Ctx) error {
	report := missionRunner.Report()
	if report == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "no completed mission yet",
		})
	}
	return c.JSON(report)
}

// PathfindingRequest - one single-leg planning request. Battery and
// grid default to the estuary survey configuration when omitted.
type PathfindingRequest struct {
	Start     models.Position `json:"start"`
	Goal      models.Position `json:"goal"`
	Battery   int             `json:"battery"`
	Algorithm string          `json:"algorithm"` // "bfs", "greedy" or "astar" (default)
}

type PathfindingResponse struct {
	Success bool            `json:"success"`
	Actions []models.Action `json:"actions,omitempty"`
	Cost    float64         `json:"cost,omitempty"`
	Message string          `json:"message,omitempty"`
}

// HandlePathfinding - plan one leg on the survey grid without running
// a mission
func HandlePathfinding(c *fiber.Ctx) error {
	var req PathfindingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(PathfindingResponse{
			Success: false,
			Message: "invalid request body",
		})
	}

	grid := services.DefaultGridConfig()
	if req.Battery <= 0 {
		req.Battery = grid.BatteryCapacity
	}

	search := algorithms.AStarSearch
	switch req.Algorithm {
	case "bfs":
		search = algorithms.BreadthFirstSearch
	case "greedy":
		search = algorithms.GreedyBestFirstSearch
	case "", "astar":
	default:
		return c.Status(fiber.StatusBadRequest).JSON(PathfindingResponse{
			Success: false,
			Message: "unknown algorithm: " + req.Algorithm,
		})
	}

	log.Printf("📍 pathfinding request: %v → %v (battery %d, %s)",
		req.Start, req.Goal, req.Battery, req.Algorithm)

	initial := models.State{
		Pos:     req.Start,
		Battery: req.Battery,
		Targets: models.NewTargetSet(req.Goal),
	}
	problem := services.NewNavigationProblem(initial, req.Goal, grid)

	node := search(problem)
	if node == nil {
		log.Println("❌ no route found")
		return c.JSON(PathfindingResponse{
			Success: false,
			Message: "no route found",
		})
	}

	actions := node.Solution()
	log.Printf("✅ route found: %d actions, cost %.1f", len(actions), node.Cost)
	return c.JSON(PathfindingResponse{
		Success: true,
		Actions: actions,
		Cost:    node.Cost,
	})
}

// BenchmarkRequest - algorithm comparison request; defaults mirror the
// pathfinding request
type BenchmarkRequest struct {
	Start   models.Position `json:"start"`
	Goal    models.Position `json:"goal"`
	Battery int             `json:"battery"`
}

// HandleBenchmark - run all search procedures on one leg and report
// expansions, wall time and cost side by side
func HandleBenchmark(c *fiber.Ctx) error {
	var req BenchmarkRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	grid := services.DefaultGridConfig()
	if req.Battery <= 0 {
		req.Battery = grid.BatteryCapacity
	}

	initial := models.State{
		Pos:     req.Start,
		Battery: req.Battery,
		Targets: models.NewTargetSet(req.Goal),
	}
	results := services.CompareAlgorithms(initial, req.Goal, grid)

	return c.JSON(fiber.Map{
		"success": true,
		"results": results,
	})
}
