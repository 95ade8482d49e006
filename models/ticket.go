package models

// ========================================
// Ticket status constants
// ========================================
const (
	TicketOpen       = "open"        // waiting for a drone
	TicketInProgress = "in_progress" // a drone is en route
	TicketClosed     = "closed"      // sample collected
)

// Ticket - one monitoring mission record served by the ticket API.
// Payload carries collection results once the ticket is closed
// (battery remaining, collection position, sensor readings).
type Ticket struct {
	ID          int                    `json:"id"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Status      string                 `json:"status"`
	Coordinates Position               `json:"coordinates"`
	Payload     map[string]interface{} `json:"payload"`
}

// DefaultTickets - seed dataset for the in-memory ticket store and the
// gateway's offline fallback
func DefaultTickets() []Ticket {
	return []Ticket{
		{
			ID:          1,
			Title:       "North Point Sampling - Degraded Mangrove",
			Description: "Collect water and sediment samples in the northern stretch with identified domestic sewage discharge.",
			Status:      TicketOpen,
			Coordinates: Position{X: 7, Y: 2},
		},
		{
			ID:          2,
			Title:       "Heavy Metal Screening - Industrial Zone",
			Description: "Measure heavy metal concentration next to the industrial zone adjacent to the estuary.",
			Status:      TicketOpen,
			Coordinates: Position{X: 3, Y: 8},
		},
		{
			ID:          3,
			Title:       "Biodiversity Watch - Crab Nursery",
			Description: "Assess habitat conditions of the mangrove crab nursery in the southern channel.",
			Status:      TicketOpen,
			Coordinates: Position{X: 8, Y: 6},
		},
	}
}
