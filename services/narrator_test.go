package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"poxim-backend/models"
)

func TestNarratorBroadcastsExplanations(t *testing.T) {
	received := make(chan models.WebSocketMessage, 10)
	n := NewNarrator("mission-test", func(msg models.WebSocketMessage) {
		received <- msg
	})
	n.Start()
	defer n.Stop()

	n.Publish(EventTicketClosed, map[string]interface{}{
		"ticket_id": 1,
		"title":     "North Point Sampling",
		"battery":   41,
	})

	select {
	case msg := <-received:
		assert.Equal(t, models.MessageTypeMissionEvent, msg.Type)
		data, ok := msg.Data.(models.MissionEventData)
		require.True(t, ok)
		assert.Equal(t, EventTicketClosed, data.EventType)
		assert.Contains(t, data.Explanation, "North Point Sampling")
		assert.Contains(t, data.Explanation, "41")
	case <-time.After(2 * time.Second):
		t.Fatal("no narration received")
	}
}

func TestNarratorDropsUnknownEvents(t *testing.T) {
	received := make(chan models.WebSocketMessage, 10)
	n := NewNarrator("mission-test", func(msg models.WebSocketMessage) {
		received <- msg
	})
	n.Start()
	defer n.Stop()

	n.Publish("not_a_real_event", nil)

	select {
	case msg := <-received:
		t.Fatalf("unexpected broadcast: %+v", msg)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestExplainTemplates(t *testing.T) {
	cases := []struct {
		event    NarratorEvent
		contains string
	}{
		{NarratorEvent{Type: EventGoalSelected, Data: map[string]interface{}{"goal": models.Position{X: 7, Y: 2}, "battery": 60}}, "heading"},
		{NarratorEvent{Type: EventLowBatteryDecision, Data: map[string]interface{}{"battery": 5, "u_target": -131.5, "u_base": -80.0}}, "Battery low"},
		{NarratorEvent{Type: EventPlanFailed, Data: map[string]interface{}{"position": models.Position{X: 3, Y: 3}, "battery": 4}}, "stuck"},
		{NarratorEvent{Type: EventBump, Data: map[string]interface{}{"position": models.Position{X: 4, Y: 4}}}, "blocked"},
		{NarratorEvent{Type: EventMissionComplete, Data: map[string]interface{}{"battery": 25}}, "Mission complete"},
		{NarratorEvent{Type: EventMissionAborted, Data: map[string]interface{}{"reason": "step limit reached"}}, "aborted"},
	}

	for _, tc := range cases {
		assert.Contains(t, explain(tc.event), tc.contains, tc.event.Type)
	}
}

func TestMissionRunnerStatusBeforeRun(t *testing.T) {
	runner := NewMissionRunner(NewTicketGateway("", "", "", true), DefaultGridConfig(), nil)

	status := runner.Status()
	assert.Equal(t, false, status["running"])
	assert.Equal(t, true, status["simulating"])
	assert.NotContains(t, status, "mission_id")
	assert.Nil(t, runner.Report())
}
