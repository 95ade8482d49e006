package services

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"poxim-backend/models"
)

// one simulation step per tick; fast enough to watch, slow enough
// for the web client to animate
const missionTickInterval = 200 * time.Millisecond

// hard ceiling so a stuck or oscillating agent cannot run forever
const missionMaxSteps = 200

// DefaultGridConfig - the estuary survey grid used when a mission is
// started without an explicit grid
func DefaultGridConfig() models.GridConfig {
	urban := map[models.Position]bool{
		{X: 1, Y: 1}: true, {X: 2, Y: 1}: true, {X: 3, Y: 1}: true,
		{X: 1, Y: 2}: true, {X: 2, Y: 2}: true,
		{X: 5, Y: 5}: true, {X: 6, Y: 5}: true,
		{X: 4, Y: 3}: true, {X: 5, Y: 3}: true,
	}
	obstacles := map[models.Position]bool{
		{X: 4, Y: 4}: true, {X: 5, Y: 4}: true,
		{X: 6, Y: 3}: true, {X: 7, Y: 4}: true,
		{X: 2, Y: 6}: true,
	}
	return models.GridConfig{
		Width:           10,
		Height:          10,
		Obstacles:       obstacles,
		UrbanZones:      urban,
		Base:            models.Position{X: 0, Y: 0},
		WindDirection:   models.WindEast,
		WindFactor:      1.5,
		BatteryCapacity: 60,
	}
}

// MissionRunner - drives one autonomous survey mission: wires gateway,
// environment, agent and narrator together and steps the world on a
// ticker until the mission ends.
type MissionRunner struct {
	IsRunning     bool
	broadcastFunc func(models.WebSocketMessage)

	gateway *TicketGateway
	grid    models.GridConfig

	missionID string
	env       *Environment
	agent     *MissionAgent
	narrator  *Narrator
	telemetry TelemetrySensor
	proximity ProximitySensor
	report    *models.MissionReportData

	stopChan chan bool
	mu       sync.RWMutex
}

// NewMissionRunner - runner over the given gateway and grid
func NewMissionRunner(gateway *TicketGateway, grid models.GridConfig, broadcastFunc func(models.WebSocketMessage)) *MissionRunner {
	return &MissionRunner{
		broadcastFunc: broadcastFunc,
		gateway:       gateway,
		grid:          grid,
		stopChan:      make(chan bool, 1),
	}
}

// Start - launch a new mission. No-op while one is already running.
func (r *MissionRunner) Start() {
	r.mu.Lock()
	if r.IsRunning {
		r.mu.Unlock()
		return
	}
	r.IsRunning = true
	r.missionID = uuid.New().String()
	r.report = nil

	r.env = NewEnvironment(r.grid)
	for _, t := range r.gateway.OpenTickets() {
		r.env.AddSample(&Sample{
			TicketID: t.ID,
			Title:    t.Title,
			Position: t.Coordinates,
		})
	}

	r.narrator = NewNarrator(r.missionID, r.broadcastFunc)

	r.agent = NewMissionAgent(r.gateway, r.grid)
	r.agent.SetChemicalSensor(NewSimulatedChemical(nil))
	r.agent.SetEventSink(r.narrator)
	r.env.AddAgentAt(r.agent, r.grid.Base)
	r.telemetry = NewEnvTelemetry(r.env, r.agent.AgentID())
	r.proximity = NewEnvProximity(r.env, r.agent.AgentID())
	// fresh channel per run; a stale stop token must not leak into the
	// next mission
	r.stopChan = make(chan bool, 1)
	stop := r.stopChan
	r.mu.Unlock()

	log.Printf("🚀 mission %s started (%d open tickets)", r.missionID, len(r.agent.PendingTickets()))

	r.narrator.Start()
	go r.runMission(stop)
}

// Stop - abort the running mission. Non-blocking: when the loop is
// already finishing on its own the request is simply dropped.
func (r *MissionRunner) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.IsRunning {
		return
	}

	select {
	case r.stopChan <- true:
		log.Println("🛑 mission stop requested")
	default:
	}
}

// runMission - main mission loop
func (r *MissionRunner) runMission(stop <-chan bool) {
	ticker := time.NewTicker(missionTickInterval)
	defer ticker.Stop()

	collectedSeen := 0

	for {
		select {
		case <-stop:
			r.finish("stopped by operator")
			return
		case <-ticker.C:
			r.env.Step()
			step := r.env.StepCount()
			agentID := r.agent.AgentID()
			pos := r.telemetry.Position()
			battery := r.telemetry.BatteryLevel()

			LogAgentState(r.missionID, agentID, pos, battery, step)

			if r.env.Bumped(agentID) {
				r.narrator.Publish(EventBump, map[string]interface{}{
					"position":  pos,
					"obstacles": r.proximity.ObstaclesNearby(1),
				})
			}

			collected := r.env.CollectedSamples(agentID)
			for _, s := range collected[collectedSeen:] {
				LogSampleCollected(r.missionID, agentID, s.TicketID, s.Position, battery, step)
				r.broadcast(models.WebSocketMessage{
					Type: models.MessageTypeSampleCollected,
					Data: models.SampleCollectedData{
						AgentID:  agentID,
						TicketID: s.TicketID,
						Title:    s.Title,
						Position: s.Position,
						Battery:  battery,
					},
					Timestamp: time.Now().UnixMilli(),
				})
			}
			collectedSeen = len(collected)

			r.broadcastPosition(step)
			r.broadcastStatus(step)

			if r.agent.MissionComplete() || r.env.IsDone() {
				r.finish("")
				return
			}
			if step >= missionMaxSteps {
				r.narrator.Publish(EventMissionAborted, map[string]interface{}{
					"reason": "step limit reached",
				})
				r.finish("step limit reached")
				return
			}
		}
	}
}

// finish - compose the final report, broadcast it and shut the
// mission down
func (r *MissionRunner) finish(abortReason string) {
	agentID := r.agent.AgentID()
	pos := r.telemetry.Position()
	battery := r.telemetry.BatteryLevel()

	report := models.MissionReportData{
		MissionID:        r.missionID,
		Steps:            r.env.StepCount(),
		TicketsProcessed: len(r.agent.ProcessedTickets()),
		TicketsPending:   len(r.agent.PendingTickets()),
		SamplesCollected: len(r.env.CollectedSamples(agentID)),
		BatteryRemaining: battery,
		FinalPosition:    pos,
		AtBase:           pos == r.grid.Base,
		MissionComplete:  r.agent.MissionComplete() && abortReason == "",
		FinishedAt:       time.Now(),
	}

	r.mu.Lock()
	r.IsRunning = false
	r.report = &report
	r.mu.Unlock()

	LogMissionReport(r.missionID, agentID, report)
	r.broadcast(models.WebSocketMessage{
		Type:      models.MessageTypeMissionReport,
		Data:      report,
		Timestamp: time.Now().UnixMilli(),
	})

	if abortReason == "" {
		log.Printf("✅ mission %s finished: %d tickets in %d steps, battery %d",
			r.missionID, report.TicketsProcessed, report.Steps, report.BatteryRemaining)
	} else {
		log.Printf("⚠️ mission %s ended early (%s): %d tickets in %d steps",
			r.missionID, abortReason, report.TicketsProcessed, report.Steps)
	}

	r.narrator.Stop()
}

// broadcastPosition - drone position broadcast, read through the
// telemetry sensor
func (r *MissionRunner) broadcastPosition(step int) {
	r.broadcast(models.WebSocketMessage{
		Type: models.MessageTypePosition,
		Data: models.PositionUpdate{
			AgentID:  r.agent.AgentID(),
			Position: r.telemetry.Position(),
			Step:     step,
		},
		Timestamp: time.Now().UnixMilli(),
	})
}

// broadcastStatus - drone status broadcast, read through the telemetry
// sensor
func (r *MissionRunner) broadcastStatus(step int) {
	pos := r.telemetry.Position()
	r.broadcast(models.WebSocketMessage{
		Type: models.MessageTypeStatus,
		Data: models.StatusUpdate{
			AgentID:        r.agent.AgentID(),
			Position:       pos,
			Battery:        r.telemetry.BatteryLevel(),
			PendingTickets: len(r.agent.PendingTickets()),
			Returning:      r.agent.ReturningToBase(),
			AtBase:         pos == r.grid.Base,
			Step:           step,
		},
		Timestamp: time.Now().UnixMilli(),
	})
}

func (r *MissionRunner) broadcast(msg models.WebSocketMessage) {
	if r.broadcastFunc != nil {
		r.broadcastFunc(msg)
	}
}

// Running - true while a mission loop is active
func (r *MissionRunner) Running() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.IsRunning
}

// Report - final report of the last completed mission, nil while
// running or before the first run
func (r *MissionRunner) Report() *models.MissionReportData {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.report
}

// Status - current runner state
func (r *MissionRunner) Status() map[string]interface{} {
	r.mu.RLock()
	defer r.mu.RUnlock()

	status := map[string]interface{}{
		"running":    r.IsRunning,
		"simulating": r.gateway.Simulating(),
	}
	if r.env != nil && r.agent != nil {
		status["mission_id"] = r.missionID
		status["step"] = r.env.StepCount()
		status["position"] = r.telemetry.Position()
		status["battery"] = r.telemetry.BatteryLevel()
		status["pending_tickets"] = len(r.agent.PendingTickets())
		status["processed_tickets"] = len(r.agent.ProcessedTickets())
		status["returning_to_base"] = r.agent.ReturningToBase()
		status["mission_complete"] = r.agent.MissionComplete()
	}
	return status
}
