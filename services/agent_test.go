package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"poxim-backend/models"
)

// simGateway - offline gateway whose fallback holds exactly the given
// tickets
func simGateway(tickets ...models.Ticket) *TicketGateway {
	g := NewTicketGateway("", "", "", true)
	for _, t := range g.fallback.List() {
		_ = g.fallback.Delete(t.ID)
	}
	for _, t := range tickets {
		g.fallback.Create(t)
	}
	return g
}

func TestFullSimulatedMission(t *testing.T) {
	grid := DefaultGridConfig()
	gateway := NewTicketGateway("", "", "", true)

	env := NewEnvironment(grid)
	for _, ticket := range gateway.OpenTickets() {
		env.AddSample(&Sample{TicketID: ticket.ID, Title: ticket.Title, Position: ticket.Coordinates})
	}

	agent := NewMissionAgent(gateway, grid)
	agent.SetChemicalSensor(NewSimulatedChemical(nil))
	env.AddAgentAt(agent, grid.Base)

	for i := 0; i < 200 && !agent.MissionComplete(); i++ {
		env.Step()
	}

	require.True(t, agent.MissionComplete(), "mission must finish within the step ceiling")
	assert.Equal(t, grid.Base, env.Location(agent.AgentID()))
	assert.True(t, env.AllSamplesCollected())
	assert.Len(t, agent.ProcessedTickets(), 3)
	assert.Empty(t, agent.PendingTickets())
	assert.Empty(t, gateway.OpenTickets(), "every ticket closed at the source")

	// optimal legs: 9 out, 5, 7, 11 home, plus 3 collection units
	assert.Equal(t, 25, env.Battery(agent.AgentID()))

	for _, ticket := range gateway.AllTickets() {
		assert.Equal(t, models.TicketClosed, ticket.Status)
		require.NotNil(t, ticket.Payload, "closed tickets carry collection results")
		assert.Contains(t, ticket.Payload, "battery_remaining")
		assert.Contains(t, ticket.Payload, "collection_position")
		assert.Contains(t, ticket.Payload, "contamination")
	}
}

func TestLowBatteryRetreatDiscardsTargets(t *testing.T) {
	grid := DefaultGridConfig()
	agent := NewMissionAgent(NewTicketGateway("", "", "", true), grid)

	// drone far afield with 2/60 battery: retreat utility dominates
	agent.UpdateState(Percept{Location: models.Position{X: 5, Y: 5}, Battery: 2})

	goal := agent.FormulateGoal()
	require.NotNil(t, goal)
	assert.Equal(t, grid.Base, *goal)
	assert.True(t, agent.ReturningToBase())

	// the abort is irreversible: later cycles keep steering home
	again := agent.FormulateGoal()
	require.NotNil(t, again)
	assert.Equal(t, grid.Base, *again)
}

func TestHealthyBatteryKeepsMission(t *testing.T) {
	grid := DefaultGridConfig()
	agent := NewMissionAgent(NewTicketGateway("", "", "", true), grid)

	agent.UpdateState(Percept{Location: models.Position{X: 5, Y: 5}, Battery: 55})

	goal := agent.FormulateGoal()
	require.NotNil(t, goal)
	assert.Equal(t, models.Position{X: 8, Y: 6}, *goal, "nearest pending target wins")
	assert.False(t, agent.ReturningToBase())
}

func TestUnreachableTargetReportsStuck(t *testing.T) {
	grid := models.GridConfig{
		Width: 3, Height: 3,
		Obstacles: map[models.Position]bool{
			{X: 1, Y: 0}: true, {X: 1, Y: 1}: true, {X: 1, Y: 2}: true,
		},
		UrbanZones:      map[models.Position]bool{},
		Base:            models.Position{X: 0, Y: 0},
		WindDirection:   models.WindNone,
		WindFactor:      1.0,
		BatteryCapacity: 20,
	}
	gateway := simGateway(models.Ticket{
		Title:       "walled off",
		Status:      models.TicketOpen,
		Coordinates: models.Position{X: 2, Y: 1},
	})

	agent := NewMissionAgent(gateway, grid)
	action := agent.NextAction(Percept{Location: grid.Base, Battery: 20})

	assert.Equal(t, models.ActionNoOp, action, "no route and already home means stand down")
	assert.True(t, agent.ReturningToBase())
}

func TestArrivalClosesTicketWithPayload(t *testing.T) {
	grid := testGrid()
	target := models.Position{X: 2, Y: 0}
	gateway := simGateway(models.Ticket{
		Title:       "close by",
		Status:      models.TicketOpen,
		Coordinates: target,
	})

	agent := NewMissionAgent(gateway, grid)
	agent.SetChemicalSensor(NewSimulatedChemical(map[string]float64{"mercury": 0.8}))
	require.Len(t, agent.PendingTickets(), 1)

	agent.UpdateState(Percept{Location: target, Battery: 28})

	require.Len(t, agent.ProcessedTickets(), 1)
	assert.Empty(t, agent.PendingTickets())

	closed := gateway.AllTickets()[0]
	assert.Equal(t, models.TicketClosed, closed.Status)
	require.NotNil(t, closed.Payload)
	assert.Equal(t, 28, closed.Payload["battery_remaining"])
	assert.Equal(t, []int{2, 0}, closed.Payload["collection_position"])
	readings := closed.Payload["contamination"].(map[string]float64)
	assert.Equal(t, 0.8, readings["mercury"])
}

func TestDefaultGridConfig(t *testing.T) {
	grid := DefaultGridConfig()

	assert.Equal(t, 10, grid.Width)
	assert.Equal(t, 10, grid.Height)
	assert.Equal(t, models.Position{X: 0, Y: 0}, grid.Base)
	assert.Equal(t, 60, grid.BatteryCapacity)
	assert.Equal(t, models.WindEast, grid.WindDirection)
	assert.Equal(t, 1.5, grid.WindFactor)
	assert.True(t, grid.IsObstacle(models.Position{X: 4, Y: 4}))
	assert.True(t, grid.IsUrban(models.Position{X: 5, Y: 5}))
	assert.False(t, grid.IsObstacle(grid.Base))
	assert.False(t, grid.IsUrban(grid.Base))
}
