package services

import (
	"fmt"
	"log"
	"sync"
	"time"

	"poxim-backend/models"
)

// Narrated event types
const (
	EventGoalSelected       = "goal_selected"
	EventTicketClosed       = "ticket_closed"
	EventLowBatteryDecision = "low_battery_decision"
	EventPlanFailed         = "plan_failed"
	EventBump               = "bump"
	EventMissionComplete    = "mission_complete"
	EventMissionAborted     = "mission_aborted"
)

// NarratorEvent - one queued mission event
type NarratorEvent struct {
	Type      string
	Data      map[string]interface{}
	Timestamp time.Time
}

// Narrator - turns mission events into human-readable commentary,
// broadcasts it to web clients and persists it through the log buffer.
type Narrator struct {
	broadcastFunc func(models.WebSocketMessage)
	missionID     string

	mu      sync.RWMutex
	enabled bool

	eventQueue chan NarratorEvent
	stopChan   chan bool
}

// NewNarrator - narrator bound to one mission run
func NewNarrator(missionID string, broadcastFunc func(models.WebSocketMessage)) *Narrator {
	return &Narrator{
		broadcastFunc: broadcastFunc,
		missionID:     missionID,
		enabled:       true,
		eventQueue:    make(chan NarratorEvent, 50),
		stopChan:      make(chan bool),
	}
}

// Start - begin processing queued events
func (n *Narrator) Start() {
	log.Println("🎙️ mission narrator started")
	go n.processEvents()
}

// Stop - stop the worker
func (n *Narrator) Stop() {
	n.stopChan <- true
}

// Publish - queue an event (drops when the queue is full; narration
// must never block the mission loop)
func (n *Narrator) Publish(eventType string, data map[string]interface{}) {
	n.mu.RLock()
	enabled := n.enabled
	n.mu.RUnlock()
	if !enabled {
		return
	}

	select {
	case n.eventQueue <- NarratorEvent{Type: eventType, Data: data, Timestamp: time.Now()}:
	default:
		log.Println("⚠️ narrator queue full, event dropped")
	}
}

func (n *Narrator) processEvents() {
	for {
		select {
		case <-n.stopChan:
			return
		case ev := <-n.eventQueue:
			n.narrate(ev)
		}
	}
}

func (n *Narrator) narrate(ev NarratorEvent) {
	text := explain(ev)
	if text == "" {
		return
	}

	LogMissionEvent(n.missionID, ev.Type, text)

	if n.broadcastFunc == nil {
		return
	}
	n.broadcastFunc(models.WebSocketMessage{
		Type: models.MessageTypeMissionEvent,
		Data: models.MissionEventData{
			EventType:   ev.Type,
			Explanation: text,
			Timestamp:   ev.Timestamp.UnixMilli(),
		},
		Timestamp: time.Now().UnixMilli(),
	})
}

// explain - template per event type
func explain(ev NarratorEvent) string {
	d := ev.Data
	switch ev.Type {
	case EventGoalSelected:
		return fmt.Sprintf("Drone heading to collection point %v with %v battery.", d["goal"], d["battery"])
	case EventTicketClosed:
		return fmt.Sprintf("Sample collected for ticket #%v (%v), %v battery remaining.", d["ticket_id"], d["title"], d["battery"])
	case EventLowBatteryDecision:
		return fmt.Sprintf("Battery low at %v. Utility of continuing %.2f vs returning %.2f.",
			d["battery"], toFloat(d["u_target"]), toFloat(d["u_base"]))
	case EventPlanFailed:
		return fmt.Sprintf("No viable route from %v with %v battery. Drone is stuck.", d["position"], d["battery"])
	case EventBump:
		return fmt.Sprintf("Movement blocked near %v.", d["position"])
	case EventMissionComplete:
		return fmt.Sprintf("Mission complete. Drone landed at base with %v battery.", d["battery"])
	case EventMissionAborted:
		return fmt.Sprintf("Mission aborted: %v.", d["reason"])
	}
	return ""
}

func toFloat(v interface{}) float64 {
	f, _ := v.(float64)
	return f
}
