package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"poxim-backend/models"
)

func TestEnvTelemetryTracksLedgers(t *testing.T) {
	grid := testGrid()
	grid.UrbanZones[models.Position{X: 1, Y: 0}] = true

	env := NewEnvironment(grid)
	env.AddAgentAt(&scriptedAgent{id: "drone-1"}, grid.Base)

	telemetry := NewEnvTelemetry(env, "drone-1")
	assert.Equal(t, grid.Base, telemetry.Position())
	assert.Equal(t, grid.BatteryCapacity, telemetry.BatteryLevel())

	env.ExecuteAction("drone-1", models.ActionRight)
	assert.Equal(t, models.Position{X: 1, Y: 0}, telemetry.Position())
	assert.Equal(t, grid.BatteryCapacity-3, telemetry.BatteryLevel(), "urban move reflected in the reading")
}

func TestEnvProximityFiltersByRadius(t *testing.T) {
	grid := testGrid()
	near := models.Position{X: 1, Y: 0}
	far := models.Position{X: 5, Y: 5}
	grid.Obstacles[near] = true
	grid.Obstacles[far] = true

	env := NewEnvironment(grid)
	env.AddAgentAt(&scriptedAgent{id: "drone-1"}, grid.Base)

	proximity := NewEnvProximity(env, "drone-1")

	within := proximity.ObstaclesNearby(1)
	require.Len(t, within, 1)
	assert.Equal(t, near, within[0])

	assert.Len(t, proximity.ObstaclesNearby(10), 2)
	assert.Empty(t, proximity.ObstaclesNearby(0))
}

func TestSimulatedChemicalDefaults(t *testing.T) {
	sensor := NewSimulatedChemical(nil)

	readings := sensor.ContaminationReading()
	assert.Equal(t, 0.0, readings["mercury"])
	assert.Equal(t, 0.0, readings["lead"])
	assert.Equal(t, 6.5, readings["dissolved_oxygen"])

	// each reading is an independent copy
	readings["mercury"] = 9.9
	assert.Equal(t, 0.0, sensor.ContaminationReading()["mercury"])
}
