package services

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"poxim-backend/models"
)

// LogBuffer - async batched mission-log writer
type LogBuffer struct {
	logs      []models.MissionLog
	mu        sync.Mutex
	flushSize int
	flushTime time.Duration
	stopChan  chan bool
}

var logBuffer *LogBuffer

// InitLogging - start the buffered logging system
func InitLogging(flushSize int, flushInterval time.Duration) {
	logBuffer = &LogBuffer{
		logs:      make([]models.MissionLog, 0, flushSize*2),
		flushSize: flushSize,
		flushTime: flushInterval,
		stopChan:  make(chan bool),
	}

	go logBuffer.autoFlush()

	log.Printf("✅ logging initialized (flushSize: %d, flushInterval: %v)", flushSize, flushInterval)
}

// autoFlush - periodic flush loop
func (lb *LogBuffer) autoFlush() {
	ticker := time.NewTicker(lb.flushTime)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			lb.Flush()
		case <-lb.stopChan:
			lb.Flush() // drain remaining logs on shutdown
			return
		}
	}
}

// AddLog - append to the buffer (flushes early when full)
func AddLog(logEntry models.MissionLog) {
	if logBuffer == nil {
		return
	}

	logBuffer.mu.Lock()
	logBuffer.logs = append(logBuffer.logs, logEntry)
	size := len(logBuffer.logs)
	logBuffer.mu.Unlock()

	if size >= logBuffer.flushSize {
		go logBuffer.Flush()
	}
}

// Flush - write all buffered logs to the DB in one batch
func (lb *LogBuffer) Flush() {
	lb.mu.Lock()
	if len(lb.logs) == 0 {
		lb.mu.Unlock()
		return
	}

	logsToSave := make([]models.MissionLog, len(lb.logs))
	copy(logsToSave, lb.logs)
	lb.logs = lb.logs[:0]
	lb.mu.Unlock()

	if db != nil {
		err := db.CreateInBatches(logsToSave, 100).Error
		if err != nil {
			log.Printf("❌ log flush failed: %v", err)
		} else {
			log.Printf("💾 flushed %d logs", len(logsToSave))
		}
	}
}

// LogAgentState - per-step drone telemetry
func LogAgentState(missionID, agentID string, pos models.Position, battery, step int) {
	AddLog(models.MissionLog{
		CreatedAt: time.Now(),
		EventType: "telemetry",
		MissionID: missionID,
		AgentID:   agentID,
		PositionX: pos.X,
		PositionY: pos.Y,
		Battery:   battery,
		Step:      step,
	})
}

// LogSampleCollected - sample collection at a ticket cell
func LogSampleCollected(missionID, agentID string, ticketID int, pos models.Position, battery, step int) {
	AddLog(models.MissionLog{
		CreatedAt: time.Now(),
		EventType: "sample_collected",
		MissionID: missionID,
		AgentID:   agentID,
		PositionX: pos.X,
		PositionY: pos.Y,
		Battery:   battery,
		Step:      step,
		TicketID:  ticketID,
	})
}

// LogMissionEvent - narrated decision or milestone
func LogMissionEvent(missionID, eventType, detail string) {
	AddLog(models.MissionLog{
		CreatedAt: time.Now(),
		EventType: eventType,
		MissionID: missionID,
		Detail:    detail,
	})
}

// LogMissionReport - final report, payload serialized as JSON
func LogMissionReport(missionID, agentID string, report models.MissionReportData) {
	dataJSON, _ := json.Marshal(report)
	AddLog(models.MissionLog{
		CreatedAt: time.Now(),
		EventType: "mission_report",
		MissionID: missionID,
		AgentID:   agentID,
		PositionX: report.FinalPosition.X,
		PositionY: report.FinalPosition.Y,
		Battery:   report.BatteryRemaining,
		Step:      report.Steps,
		DataJSON:  string(dataJSON),
	})
}

// GetLogsByTimeRange - mission logs within [start, end]
func GetLogsByTimeRange(missionID string, start, end time.Time, limit int) ([]models.MissionLog, error) {
	if db == nil {
		return nil, fmt.Errorf("database not connected")
	}

	query := db.Where("mission_id = ? AND created_at BETWEEN ? AND ?", missionID, start, end)
	if limit > 0 {
		query = query.Limit(limit)
	}

	var logs []models.MissionLog
	err := query.Order("created_at DESC").Find(&logs).Error
	return logs, err
}

// GetLogsByEventType - mission logs of one event type
func GetLogsByEventType(missionID string, eventType string, limit int) ([]models.MissionLog, error) {
	if db == nil {
		return nil, fmt.Errorf("database not connected")
	}

	var logs []models.MissionLog
	err := db.Where("mission_id = ? AND event_type = ?", missionID, eventType).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}

// GetLogStats - per-event-type counts over the last N hours
func GetLogStats(missionID string, hours int) (map[string]interface{}, error) {
	if db == nil {
		return nil, fmt.Errorf("database not connected")
	}

	since := time.Now().Add(-time.Duration(hours) * time.Hour)

	var totalLogs int64
	db.Model(&models.MissionLog{}).
		Where("mission_id = ? AND created_at >= ?", missionID, since).
		Count(&totalLogs)

	var eventCounts []struct {
		EventType string
		Count     int64
	}
	db.Model(&models.MissionLog{}).
		Select("event_type, COUNT(*) as count").
		Where("mission_id = ? AND created_at >= ?", missionID, since).
		Group("event_type").
		Scan(&eventCounts)

	eventMap := make(map[string]int64)
	for _, ec := range eventCounts {
		eventMap[ec.EventType] = ec.Count
	}

	return map[string]interface{}{
		"total_logs":   totalLogs,
		"event_counts": eventMap,
		"time_range":   fmt.Sprintf("Last %d hours", hours),
	}, nil
}

// StopLogging - flush and stop
func StopLogging() {
	if logBuffer != nil {
		logBuffer.stopChan <- true
		log.Println("🛑 logging stopped")
	}
}
