package main

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/websocket/v2"
	"github.com/joho/godotenv"

	"poxim-backend/handlers"
	"poxim-backend/models"
	"poxim-backend/services"
)

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  no .env file found")
	}

	// MySQL is optional; mission logs are simply not persisted without it
	if err := services.InitDatabase(); err != nil {
		log.Printf("⚠️ DB unavailable, mission logs will not be persisted: %v", err)
	}

	// flushSize: 50 (batch insert every 50 logs)
	// flushInterval: 10s (periodic flush)
	services.InitLogging(50, 10*time.Second)
	defer services.StopLogging()

	// Ticket API store, seeded with the default estuary tickets
	ticketStore := services.NewTicketStore(models.DefaultTickets())
	handlers.InitTicketStore(ticketStore)

	// Ticket gateway the drone plans against. Simulation mode (the
	// default) serves a local dataset; live mode talks to TICKETS_URL.
	simulate := getenv("TICKETS_SIMULATION", "true") != "false"
	gateway := services.NewTicketGateway(
		getenv("TICKETS_URL", "http://localhost:3000"),
		getenv("TICKETS_USER", "admin"),
		getenv("TICKETS_PASSWORD", "secret"),
		simulate,
	)

	runner := services.NewMissionRunner(gateway, services.DefaultGridConfig(), handlers.Manager.BroadcastMessage)
	handlers.InitMissionRunner(runner)

	app := fiber.New()

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "http://localhost:5173, http://localhost:3000",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	go handlers.Manager.Start()

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Poxim mission server is running.")
	})

	api := app.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "OK",
			"clients": handlers.Manager.GetClientCount(),
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	// Ticket CRUD, HTTP Basic protected
	tickets := api.Group("/tickets", basicauth.New(basicauth.Config{
		Users: map[string]string{
			getenv("TICKETS_USER", "admin"): getenv("TICKETS_PASSWORD", "secret"),
		},
	}))
	tickets.Get("/", handlers.HandleListTickets)
	tickets.Get("/:id", handlers.HandleGetTicket)
	tickets.Post("/", handlers.HandleCreateTicket)
	tickets.Put("/:id", handlers.HandleUpdateTicket)
	tickets.Delete("/:id", handlers.HandleDeleteTicket)

	// Mission control
	mission := api.Group("/mission")
	mission.Post("/start", handlers.HandleStartMission)
	mission.Post("/stop", handlers.HandleStopMission)
	mission.Get("/status", handlers.HandleMissionStatus)
	mission.Get("/report", handlers.HandleMissionReport)

	// Planning without a mission
	api.Post("/pathfinding", handlers.HandlePathfinding)
	api.Post("/benchmark", handlers.HandleBenchmark)

	// Mission log queries
	logsAPI := api.Group("/logs")
	logsAPI.Get("/recent", handlers.HandleGetRecentLogs)
	logsAPI.Get("/range", handlers.HandleGetLogsByTimeRange)
	logsAPI.Get("/type", handlers.HandleGetLogsByEventType)
	logsAPI.Get("/stats", handlers.HandleGetLogStats)

	// WebSocket
	app.Use("/websocket", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			c.Locals("allowed", true)
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get("/websocket/web", websocket.New(handlers.HandleWebClientWebSocket))

	port := getenv("PORT", "3000")
	log.Println("🚀 server started: http://localhost:" + port)
	log.Println("📡 WebSocket: ws://localhost:" + port + "/websocket/web")
	log.Println("📋 ticket API: http://localhost:" + port + "/api/tickets")
	log.Println("✈️ mission API: POST http://localhost:" + port + "/api/mission/start")
	log.Fatal(app.Listen(":" + port))
}
