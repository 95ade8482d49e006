package services

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"

	"poxim-backend/models"
)

const gatewayTimeout = 5 * time.Second

// TicketGateway - the agent's only source of mission tickets. In live
// mode it talks HTTP Basic to the ticket API; any transport failure
// flips it to the in-memory fallback store for the remainder of the
// run, so a mission never aborts on ticket-service unavailability.
type TicketGateway struct {
	baseURL  string
	username string
	password string

	mu       sync.Mutex
	simulate bool
	fallback *TicketStore
}

// NewTicketGateway - gateway against the given ticket API. With
// simulate true it never touches the network and serves the seeded
// fallback dataset.
func NewTicketGateway(baseURL, username, password string, simulate bool) *TicketGateway {
	return &TicketGateway{
		baseURL:  baseURL,
		username: username,
		password: password,
		simulate: simulate,
		fallback: NewTicketStore(models.DefaultTickets()),
	}
}

// Simulating - true when serving the fallback dataset
func (g *TicketGateway) Simulating() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.simulate
}

func (g *TicketGateway) degrade(err interface{}) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.simulate {
		log.Printf("⚠️ ticket API unavailable (%v), switching to fallback data", err)
		g.simulate = true
	}
}

// AllTickets - every ticket known to the collaborator
func (g *TicketGateway) AllTickets() []models.Ticket {
	if g.Simulating() {
		return g.fallback.List()
	}

	agent := fiber.Get(g.baseURL + "/api/tickets").
		BasicAuth(g.username, g.password).
		Timeout(gatewayTimeout)

	code, body, errs := agent.Bytes()
	if len(errs) > 0 || code != fiber.StatusOK {
		g.degrade(fmt.Sprintf("status %d, errs %v", code, errs))
		return g.fallback.List()
	}

	var tickets []models.Ticket
	if err := json.Unmarshal(body, &tickets); err != nil {
		g.degrade(err)
		return g.fallback.List()
	}
	return tickets
}

// OpenTickets - tickets still waiting for a drone
func (g *TicketGateway) OpenTickets() []models.Ticket {
	var open []models.Ticket
	for _, t := range g.AllTickets() {
		if t.Status == models.TicketOpen {
			open = append(open, t)
		}
	}
	return open
}

// UpdateStatus - transition one ticket (open → in_progress → closed)
// with an optional payload. Returns false when the remote update
// failed; the local fallback is still kept consistent so the run can
// continue.
func (g *TicketGateway) UpdateStatus(id int, status string, payload map[string]interface{}) bool {
	upd := TicketUpdate{Status: &status}
	if payload != nil {
		upd.Payload = payload
	}

	if g.Simulating() {
		if _, err := g.fallback.Update(id, upd); err != nil {
			return false
		}
		log.Printf("📡 [SIM] ticket #%d → %s", id, status)
		return true
	}

	agent := fiber.Put(fmt.Sprintf("%s/api/tickets/%d", g.baseURL, id)).
		BasicAuth(g.username, g.password).
		Timeout(gatewayTimeout).
		JSON(upd)

	code, _, errs := agent.Bytes()
	if len(errs) > 0 || code != fiber.StatusOK {
		g.degrade(fmt.Sprintf("status %d, errs %v", code, errs))
		// keep the local view consistent for the rest of the run
		_, _ = g.fallback.Update(id, upd)
		return false
	}

	log.Printf("📡 ticket #%d → %s", id, status)
	return true
}
