package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"poxim-backend/services"
)

// HandleGetRecentLogs - newest mission logs
func HandleGetRecentLogs(c *fiber.Ctx) error {
	missionID := c.Query("mission_id")
	limitStr := c.Query("limit", "100")

	if missionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "mission_id parameter is required",
		})
	}

	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		limit = 100
	}

	logs, err := services.GetRecentLogs(missionID, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch logs",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(logs),
		"logs":    logs,
	})
}

// HandleGetLogsByTimeRange - mission logs within a time range
func HandleGetLogsByTimeRange(c *fiber.Ctx) error {
	missionID := c.Query("mission_id")
	startStr := c.Query("start") // RFC3339 format
	endStr := c.Query("end")     // RFC3339 format
	limitStr := c.Query("limit", "100")

	if missionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "mission_id parameter is required",
		})
	}

	var start time.Time
	if startStr != "" {
		parsed, err := time.Parse(time.RFC3339, startStr)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid start time format (use RFC3339)",
			})
		}
		start = parsed
	} else {
		start = time.Now().Add(-24 * time.Hour)
	}

	var end time.Time
	if endStr != "" {
		parsed, err := time.Parse(time.RFC3339, endStr)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid end time format (use RFC3339)",
			})
		}
		end = parsed
	} else {
		end = time.Now()
	}

	limit, _ := strconv.Atoi(limitStr)
	if limit <= 0 {
		limit = 100
	}

	logs, err := services.GetLogsByTimeRange(missionID, start, end, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch logs",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(logs),
		"time_range": fiber.Map{
			"start": start.Format(time.RFC3339),
			"end":   end.Format(time.RFC3339),
		},
		"logs": logs,
	})
}

// HandleGetLogsByEventType - mission logs of one event type
func HandleGetLogsByEventType(c *fiber.Ctx) error {
	missionID := c.Query("mission_id")
	eventType := c.Query("event_type")
	limitStr := c.Query("limit", "100")

	if missionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "mission_id parameter is required",
		})
	}
	if eventType == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "event_type parameter is required",
		})
	}

	limit, _ := strconv.Atoi(limitStr)
	if limit <= 0 {
		limit = 100
	}

	logs, err := services.GetLogsByEventType(missionID, eventType, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch logs",
		})
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"count":      len(logs),
		"event_type": eventType,
		"logs":       logs,
	})
}

// HandleGetLogStats - per-event-type mission log statistics
func HandleGetLogStats(c *fiber.Ctx) error {
	missionID := c.Query("mission_id")
	hoursStr := c.Query("hours", "24")

	if missionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "mission_id parameter is required",
		})
	}

	hours, err := strconv.Atoi(hoursStr)
	if err != nil || hours <= 0 {
		hours = 24
	}

	stats, err := services.GetLogStats(missionID, hours)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch stats",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"stats":   stats,
	})
}
