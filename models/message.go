package models

import "time"

// ========================================
// Message type constants
// ========================================
const (
	// Server → Web
	MessageTypePosition        = "position"         // drone position update
	MessageTypeStatus          = "status"           // drone status update
	MessageTypeSampleCollected = "sample_collected" // sample collected at a ticket cell
	MessageTypeTicketUpdate    = "ticket_update"    // ticket status transition
	MessageTypeMissionEvent    = "mission_event"    // narrated mission event
	MessageTypeMissionReport   = "mission_report"   // final mission report
	MessageTypeSystemInfo      = "system_info"      // system information
)

// ========================================
// Common WebSocket message envelope
// ========================================
type WebSocketMessage struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data"`
	Timestamp int64       `json:"timestamp"` // Unix timestamp (ms)
}

// ========================================
// Drone telemetry
// ========================================

// PositionUpdate - drone position broadcast
type PositionUpdate struct {
	AgentID  string   `json:"agent_id"`
	Position Position `json:"position"`
	Step     int      `json:"step"`
}

// StatusUpdate - drone status broadcast
type StatusUpdate struct {
	AgentID        string   `json:"agent_id"`
	Position       Position `json:"position"`
	Battery        int      `json:"battery"`
	PendingTickets int      `json:"pending_tickets"`
	Returning      bool     `json:"returning_to_base"`
	AtBase         bool     `json:"at_base"`
	Step           int      `json:"step"`
}

// SampleCollectedData - sample collection broadcast
type SampleCollectedData struct {
	AgentID  string   `json:"agent_id"`
	TicketID int      `json:"ticket_id"`
	Title    string   `json:"title"`
	Position Position `json:"position"`
	Battery  int      `json:"battery"`
}

// MissionEventData - narrated mission event
type MissionEventData struct {
	EventType   string   `json:"event_type"`
	Explanation string   `json:"explanation"`
	Position    Position `json:"position"`
	Timestamp   int64    `json:"timestamp"`
}

// MissionReportData - final mission report
type MissionReportData struct {
	MissionID        string    `json:"mission_id"`
	Steps            int       `json:"steps"`
	TicketsProcessed int       `json:"tickets_processed"`
	TicketsPending   int       `json:"tickets_pending"`
	SamplesCollected int       `json:"samples_collected"`
	BatteryRemaining int       `json:"battery_remaining"`
	FinalPosition    Position  `json:"final_position"`
	AtBase           bool      `json:"at_base"`
	MissionComplete  bool      `json:"mission_complete"`
	FinishedAt       time.Time `json:"finished_at"`
}
