package models

// ========================================
// Drone action constants
// ========================================
const (
	ActionUp      Action = "UP"      // move one cell up (y - 1)
	ActionDown    Action = "DOWN"    // move one cell down (y + 1)
	ActionLeft    Action = "LEFT"    // move one cell left (x - 1)
	ActionRight   Action = "RIGHT"   // move one cell right (x + 1)
	ActionCollect Action = "COLLECT" // collect samples at the current cell
	ActionNoOp    Action = "NOOP"    // wait
)

// Prevailing wind directions
const (
	WindEast = "east"
	WindWest = "west"
	WindNone = "none"
)

// Battery cost of a movement whose destination cell is urban ("Urban Penalty")
const UrbanPenaltyCost = 3

// Action - a single drone command
type Action string

// Delta - unit vector for a movement action. ok is false for
// non-movement actions (COLLECT, NOOP, unknown).
func (a Action) Delta() (dx, dy int, ok bool) {
	switch a {
	case ActionUp:
		return 0, -1, true
	case ActionDown:
		return 0, 1, true
	case ActionLeft:
		return -1, 0, true
	case ActionRight:
		return 1, 0, true
	}
	return 0, 0, false
}

// Position - integer cell coordinates on the monitoring grid
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Shift - position moved by (dx, dy)
func (p Position) Shift(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// ManhattanTo - Manhattan distance to another position
func (p Position) ManhattanTo(o Position) int {
	return abs(p.X-o.X) + abs(p.Y-o.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// ========================================
// Grid configuration
// ========================================

// GridConfig - static description of one monitoring mission area:
// grid bounds, mangrove obstacles, urban zones (Urban Penalty cells),
// base position, prevailing wind and battery capacity.
type GridConfig struct {
	Width           int                `json:"width"`
	Height          int                `json:"height"`
	Obstacles       map[Position]bool  `json:"-"`
	UrbanZones      map[Position]bool  `json:"-"`
	Base            Position           `json:"base"`
	WindDirection   string             `json:"wind_direction"` // "east" | "west" | "none"
	WindFactor      float64            `json:"wind_factor"`    // > 1, heuristic-only multiplier
	BatteryCapacity int                `json:"battery_capacity"`
}

// InBounds - grid limit check
func (g GridConfig) InBounds(p Position) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

// IsObstacle - impassable cell check
func (g GridConfig) IsObstacle(p Position) bool {
	return g.Obstacles[p]
}

// IsUrban - Urban Penalty cell check
func (g GridConfig) IsUrban(p Position) bool {
	return g.UrbanZones[p]
}

// StepCost - battery charge for a movement, based on the destination
// cell only: 3 inside an urban zone, 1 elsewhere.
func (g GridConfig) StepCost(dest Position) int {
	if g.IsUrban(dest) {
		return UrbanPenaltyCost
	}
	return 1
}

// WindAdjustedDistance - Manhattan distance with the horizontal
// component multiplied by WindFactor when travel opposes the
// prevailing wind. A wind from the east penalizes increasing-x travel.
// The vertical component is unaffected.
func (g GridConfig) WindAdjustedDistance(from, to Position) float64 {
	dx := float64(abs(to.X - from.X))
	dy := float64(abs(to.Y - from.Y))

	switch {
	case g.WindDirection == WindEast && to.X > from.X:
		dx *= g.WindFactor
	case g.WindDirection == WindWest && to.X < from.X:
		dx *= g.WindFactor
	}

	return dx + dy
}
