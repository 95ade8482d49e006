package handlers

import (
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"poxim-backend/models"
	"poxim-backend/services"
)

// Ticket store behind the HTTP API
var ticketStore *services.TicketStore

// InitTicketStore - install the store the ticket API serves
func InitTicketStore(store *services.TicketStore) {
	ticketStore = store
	log.Printf("📋 ticket API initialized (%d tickets)", len(store.List()))
}

// HandleListTickets - all tickets, optionally filtered by status
func HandleListTickets(c *fiber.Ctx) error {
	status := c.Query("status")
	if status != "" {
		return c.JSON(ticketStore.ListByStatus(status))
	}
	return c.JSON(ticketStore.List())
}

// HandleGetTicket - one ticket by ID
func HandleGetTicket(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid ticket id",
		})
	}

	ticket, err := ticketStore.Get(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(ticket)
}

// HandleCreateTicket - create a ticket; status defaults to open
func HandleCreateTicket(c *fiber.Ctx) error {
	var ticket models.Ticket
	if err := c.BodyParser(&ticket); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	if ticket.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "title is required",
		})
	}

	created := ticketStore.Create(ticket)
	log.Printf("📋 ticket created: #%d %s @ %v", created.ID, created.Title, created.Coordinates)
	return c.Status(fiber.StatusCreated).JSON(created)
}

// HandleUpdateTicket - partial update; broadcasts the transition to
// web clients
func HandleUpdateTicket(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid ticket id",
		})
	}

	var upd services.TicketUpdate
	if err := c.BodyParser(&upd); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	updated, err := ticketStore.Update(id, upd)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	Manager.BroadcastMessage(models.WebSocketMessage{
		Type:      models.MessageTypeTicketUpdate,
		Data:      updated,
		Timestamp: time.Now().UnixMilli(),
	})

	log.Printf("📋 ticket #%d updated → %s", updated.ID, updated.Status)
	return c.JSON(updated)
}

// HandleDeleteTicket - remove a ticket
func HandleDeleteTicket(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid ticket id",
		})
	}

	if err := ticketStore.Delete(id); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"success": true,
	})
}
