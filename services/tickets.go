package services

import (
	"fmt"
	"sync"

	"poxim-backend/models"
)

// TicketStore - in-memory ticket collection, constructed explicitly by
// whoever owns it (the HTTP API and the gateway fallback both hold
// their own instance; there is no process-wide dataset).
type TicketStore struct {
	mu      sync.RWMutex
	tickets []models.Ticket
	nextID  int
}

// NewTicketStore - store seeded with the given tickets
func NewTicketStore(seed []models.Ticket) *TicketStore {
	maxID := 0
	for _, t := range seed {
		if t.ID > maxID {
			maxID = t.ID
		}
	}
	tickets := make([]models.Ticket, len(seed))
	copy(tickets, seed)
	return &TicketStore{
		tickets: tickets,
		nextID:  maxID + 1,
	}
}

// List - copy of all tickets
func (s *TicketStore) List() []models.Ticket {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Ticket, len(s.tickets))
	copy(out, s.tickets)
	return out
}

// ListByStatus - copy of tickets with the given status
func (s *TicketStore) ListByStatus(status string) []models.Ticket {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Ticket
	for _, t := range s.tickets {
		if t.Status == status {
			out = append(out, t)
		}
	}
	return out
}

// Get - one ticket by ID
func (s *TicketStore) Get(id int) (models.Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.tickets {
		if t.ID == id {
			return t, nil
		}
	}
	return models.Ticket{}, fmt.Errorf("ticket %d not found", id)
}

// Create - add a new ticket, assigning the next ID. Status defaults
// to open.
func (s *TicketStore) Create(t models.Ticket) models.Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = s.nextID
	s.nextID++
	if t.Status == "" {
		t.Status = models.TicketOpen
	}
	s.tickets = append(s.tickets, t)
	return t
}

// TicketUpdate - partial update; nil fields are left unchanged
type TicketUpdate struct {
	Title       *string                `json:"title"`
	Description *string                `json:"description"`
	Status      *string                `json:"status"`
	Coordinates *models.Position       `json:"coordinates"`
	Payload     map[string]interface{} `json:"payload"`
}

// Update - apply a partial update to a ticket
func (s *TicketStore) Update(id int, upd TicketUpdate) (models.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tickets {
		if s.tickets[i].ID != id {
			continue
		}
		if upd.Title != nil {
			s.tickets[i].Title = *upd.Title
		}
		if upd.Description != nil {
			s.tickets[i].Description = *upd.Description
		}
		if upd.Status != nil {
			s.tickets[i].Status = *upd.Status
		}
		if upd.Coordinates != nil {
			s.tickets[i].Coordinates = *upd.Coordinates
		}
		if upd.Payload != nil {
			s.tickets[i].Payload = upd.Payload
		}
		return s.tickets[i], nil
	}
	return models.Ticket{}, fmt.Errorf("ticket %d not found", id)
}

// Delete - remove a ticket
func (s *TicketStore) Delete(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tickets {
		if s.tickets[i].ID == id {
			s.tickets = append(s.tickets[:i], s.tickets[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("ticket %d not found", id)
}
