package services

import (
	"poxim-backend/models"
)

// Sensor capabilities are one fixed method set each; consumers depend
// only on the capability they actually call.

// TelemetrySensor - position and energy
type TelemetrySensor interface {
	Position() models.Position
	BatteryLevel() int
}

// ChemicalSensor - contaminant readings at the current cell
type ChemicalSensor interface {
	// ContaminationReading maps pollutant name to concentration (ppm)
	ContaminationReading() map[string]float64
}

// ProximitySensor - obstacle detection around the drone
type ProximitySensor interface {
	ObstaclesNearby(radius int) []models.Position
}

// VisionSensor - thermal/RGB capture
type VisionSensor interface {
	CaptureImage() []byte
	ThermalReading() float64
}

// ========================================
// Simulated implementations (no hardware)
// ========================================

// SimulatedChemical - fixed-reading chemical sensor
type SimulatedChemical struct {
	readings map[string]float64
}

// NewSimulatedChemical - sensor with the given readings, or healthy
// defaults when nil
func NewSimulatedChemical(readings map[string]float64) *SimulatedChemical {
	if readings == nil {
		readings = map[string]float64{
			"mercury":          0.0,
			"lead":             0.0,
			"dissolved_oxygen": 6.5,
		}
	}
	return &SimulatedChemical{readings: readings}
}

func (s *SimulatedChemical) ContaminationReading() map[string]float64 {
	out := make(map[string]float64, len(s.readings))
	for k, v := range s.readings {
		out[k] = v
	}
	return out
}

// EnvTelemetry - telemetry capability backed by the environment's
// authoritative ledgers
type EnvTelemetry struct {
	env     *Environment
	agentID string
}

// NewEnvTelemetry - telemetry view of one agent
func NewEnvTelemetry(env *Environment, agentID string) *EnvTelemetry {
	return &EnvTelemetry{env: env, agentID: agentID}
}

func (t *EnvTelemetry) Position() models.Position { return t.env.Location(t.agentID) }
func (t *EnvTelemetry) BatteryLevel() int         { return t.env.Battery(t.agentID) }

// EnvProximity - proximity capability backed by the grid's obstacle set
type EnvProximity struct {
	env     *Environment
	agentID string
}

// NewEnvProximity - proximity view of one agent
func NewEnvProximity(env *Environment, agentID string) *EnvProximity {
	return &EnvProximity{env: env, agentID: agentID}
}

func (p *EnvProximity) ObstaclesNearby(radius int) []models.Position {
	loc := p.env.Location(p.agentID)
	grid := p.env.Grid()

	var out []models.Position
	for obstacle := range grid.Obstacles {
		if obstacle.ManhattanTo(loc) <= radius {
			out = append(out, obstacle)
		}
	}
	return out
}
