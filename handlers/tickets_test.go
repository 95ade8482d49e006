package handlers

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"poxim-backend/models"
	"poxim-backend/services"
)

func newTicketApp() *fiber.App {
	InitTicketStore(services.NewTicketStore(models.DefaultTickets()))

	app := fiber.New()
	tickets := app.Group("/api/tickets", basicauth.New(basicauth.Config{
		Users: map[string]string{"admin": "secret"},
	}))
	tickets.Get("/", HandleListTickets)
	tickets.Get("/:id", HandleGetTicket)
	tickets.Post("/", HandleCreateTicket)
	tickets.Put("/:id", HandleUpdateTicket)
	tickets.Delete("/:id", HandleDeleteTicket)
	return app
}

func authedRequest(method, target string, body []byte) *http.Request {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte("admin:secret")))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func TestTicketAPIRequiresAuth(t *testing.T) {
	app := newTicketApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/tickets/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestTicketAPIList(t *testing.T) {
	app := newTicketApp()

	resp, err := app.Test(authedRequest(http.MethodGet, "/api/tickets/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var tickets []models.Ticket
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&tickets))
	assert.Len(t, tickets, 3)
}

func TestTicketAPIListByStatus(t *testing.T) {
	app := newTicketApp()

	resp, err := app.Test(authedRequest(http.MethodGet, "/api/tickets/?status=closed", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var tickets []models.Ticket
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&tickets))
	assert.Empty(t, tickets)
}

func TestTicketAPIGet(t *testing.T) {
	app := newTicketApp()

	resp, err := app.Test(authedRequest(http.MethodGet, "/api/tickets/2", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var ticket models.Ticket
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&ticket))
	assert.Equal(t, 2, ticket.ID)
	assert.Equal(t, models.TicketOpen, ticket.Status)

	resp, err = app.Test(authedRequest(http.MethodGet, "/api/tickets/99", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestTicketAPICreate(t *testing.T) {
	app := newTicketApp()

	body, _ := json.Marshal(models.Ticket{
		Title:       "Turbidity Spike - West Channel",
		Description: "Investigate sudden turbidity increase reported by the buoy array.",
		Coordinates: models.Position{X: 6, Y: 7},
	})
	resp, err := app.Test(authedRequest(http.MethodPost, "/api/tickets/", body))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.Ticket
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.Equal(t, 4, created.ID, "IDs continue after the seed data")
	assert.Equal(t, models.TicketOpen, created.Status, "status defaults to open")

	// missing title is rejected
	body, _ = json.Marshal(models.Ticket{Description: "no title"})
	resp, err = app.Test(authedRequest(http.MethodPost, "/api/tickets/", body))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestTicketAPIUpdate(t *testing.T) {
	app := newTicketApp()

	body := []byte(`{"status":"closed","payload":{"battery_remaining":41}}`)
	resp, err := app.Test(authedRequest(http.MethodPut, "/api/tickets/1", body))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var updated models.Ticket
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&updated))
	assert.Equal(t, models.TicketClosed, updated.Status)
	assert.EqualValues(t, 41, updated.Payload["battery_remaining"])

	// untouched fields survive a partial update
	assert.NotEmpty(t, updated.Title)
}

func TestTicketAPIDelete(t *testing.T) {
	app := newTicketApp()

	resp, err := app.Test(authedRequest(http.MethodDelete, "/api/tickets/3", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(authedRequest(http.MethodGet, "/api/tickets/3", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
