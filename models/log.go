package models

import (
	"time"
)

// MissionLog - one persisted mission event
type MissionLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	EventType string    `json:"event_type"` // "telemetry", "sample_collected", "mission_report", narrated events
	MissionID string    `json:"mission_id"`
	AgentID   string    `json:"agent_id"`

	// Drone state at the time of the event
	PositionX int `json:"position_x"`
	PositionY int `json:"position_y"`
	Battery   int `json:"battery"`
	Step      int `json:"step"`

	// Ticket context (0 when not ticket-related)
	TicketID int `json:"ticket_id"`

	// Human-readable narration / decision detail
	Detail string `json:"detail"`

	// Raw payload JSON
	DataJSON string `json:"data_json"`
}
