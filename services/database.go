package services

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"poxim-backend/models"
)

// GORM instance; nil when the server runs without persistence
var db *gorm.DB

// InitDatabase - connect to MySQL from environment variables
func InitDatabase() error {
	host := os.Getenv("MYSQL_HOST")
	portStr := os.Getenv("MYSQL_PORT")
	user := os.Getenv("MYSQL_USER")
	password := os.Getenv("MYSQL_PASSWORD")
	dbname := os.Getenv("MYSQL_DATABASE")

	if host == "" || user == "" || password == "" || dbname == "" {
		return fmt.Errorf("MySQL env vars missing: MYSQL_HOST, MYSQL_USER, MYSQL_PASSWORD, MYSQL_DATABASE")
	}

	port, err := strconv.Atoi(portStr)
	if err != nil || port == 0 {
		port = 3306
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, password, host, port, dbname)

	var errDB error
	db, errDB = gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if errDB != nil {
		return fmt.Errorf("DB connection failed: %v", errDB)
	}

	if errMigrate := db.AutoMigrate(&models.MissionLog{}); errMigrate != nil {
		return fmt.Errorf("migration failed: %v", errMigrate)
	}

	log.Println("✅ MySQL connected and migrated")
	log.Printf("📡 connection: %s@%s:%d/%s", user, host, port, dbname)
	return nil
}

// GetDB - GORM instance (nil without persistence)
func GetDB() *gorm.DB {
	return db
}

// GetRecentLogs - newest logs for one mission
func GetRecentLogs(missionID string, limit int) ([]models.MissionLog, error) {
	if db == nil {
		return nil, fmt.Errorf("database not connected")
	}
	var logs []models.MissionLog
	err := db.Where("mission_id = ?", missionID).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}
