package handlers

import (
	"log"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"

	"poxim-backend/models"
)

type Client struct {
	Conn       *websocket.Conn
	ClientType string // "drone" or "web"
}

// Client manager
type ClientManager struct {
	clients    map[*websocket.Conn]*Client
	broadcast  chan models.WebSocketMessage
	register   chan *Client
	unregister chan *websocket.Conn
	mutex      sync.RWMutex
}

// Global client manager
var Manager = &ClientManager{
	clients:    make(map[*websocket.Conn]*Client),
	broadcast:  make(chan models.WebSocketMessage, 100),
	register:   make(chan *Client),
	unregister: make(chan *websocket.Conn),
}

// Start the client management loop
func (manager *ClientManager) Start() {
	for {
		select {
		case client := <-manager.register:
			manager.mutex.Lock()
			manager.clients[client.Conn] = client
			manager.mutex.Unlock()
			log.Printf("client registered: %s (%s)", client.ClientType, client.Conn.RemoteAddr())

		case conn := <-manager.unregister:
			manager.mutex.Lock()
			if client, ok := manager.clients[conn]; ok {
				delete(manager.clients, conn)
				_ = conn.Close()
				log.Printf("client unregistered: %s (%s)", client.ClientType, conn.RemoteAddr())
			}
			manager.mutex.Unlock()
		case message := <-manager.broadcast:
			manager.handleBroadcast(message)
		}
	}
}

func (manager *ClientManager) handleBroadcast(message models.WebSocketMessage) {
	manager.mutex.RLock()
	defer manager.mutex.RUnlock()

	for conn, client := range manager.clients {
		// Mission telemetry and reports flow server → web only
		shouldSend := false

		switch message.Type {
		case models.MessageTypePosition,
			models.MessageTypeStatus,
			models.MessageTypeSampleCollected,
			models.MessageTypeTicketUpdate,
			models.MessageTypeMissionEvent,
			models.MessageTypeMissionReport,
			models.MessageTypeSystemInfo:
			if client.ClientType == "web" {
				shouldSend = true
			}
		}

		if shouldSend {
			err := conn.WriteJSON(message)
			if err != nil {
				log.Printf("send failed (%s): %v", client.ClientType, err)
				manager.unregister <- conn
			}
		}
	}
}

// BroadcastMessage - externally callable broadcast
func (manager *ClientManager) BroadcastMessage(msg models.WebSocketMessage) {
	manager.broadcast <- msg
}

func (manager *ClientManager) GetClientCount() map[string]int {
	manager.mutex.RLock()
	defer manager.mutex.RUnlock()

	count := map[string]int{
		"drone": 0,
		"web":   0,
	}

	for _, client := range manager.clients {
		count[client.ClientType]++
	}

	return count
}

// Web client WebSocket handler (mission telemetry stream)
func HandleWebClientWebSocket(c *websocket.Conn) {
	client := &Client{
		Conn:       c,
		ClientType: "web",
	}

	Manager.register <- client

	defer func() {
		Manager.unregister <- c
	}()

	welcomeMsg := models.WebSocketMessage{
		Type: models.MessageTypeSystemInfo,
		Data: map[string]interface{}{
			"message":      "web client connected",
			"connected_at": time.Now().Format(time.RFC3339),
		},
		Timestamp: time.Now().UnixMilli(),
	}
	_ = c.WriteJSON(welcomeMsg)

	for {
		var msg models.WebSocketMessage
		err := c.ReadJSON(&msg)
		if err != nil {
			log.Printf("web message read error: %v", err)
			break
		}

		if msg.Timestamp == 0 {
			msg.Timestamp = time.Now().UnixMilli()
		}

		log.Printf("web message: %s - %+v", msg.Type, msg.Data)
	}
}
