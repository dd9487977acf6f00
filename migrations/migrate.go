package main

import (
	"flag"
	"fmt"
	"os"

	"investmanager/src/config"
	"investmanager/src/database"
	"investmanager/src/utils"

	"github.com/pressly/goose/v3"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	settings := flag.String("settings", "./settings", "directory holding appsettings.yaml")
	dir := flag.String("dir", "./migrations", "directory holding the SQL migrations")
	command := flag.String("command", "up", "goose command: up, down, status")
	flag.Parse()

	logger := utils.NewLogger(utils.ParseLevel("info"), false, "")

	cfg, err := config.LoadConfig(*settings, os.Getenv("ENV"))
	if err != nil {
		logger.Fatalf("Error loading config for environment: %v", err)
	}

	db, err := gorm.Open(postgres.Open(database.DSN(cfg.Databases.SQL)), &gorm.Config{})
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatalf("Failed to get SQL DB from GORM DB: %v", err)
	}
	defer sqlDB.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		logger.Fatalf("Failed to set goose dialect: %v", err)
	}

	switch *command {
	case "up":
		err = goose.Up(sqlDB, *dir)
	case "down":
		err = goose.Down(sqlDB, *dir)
	case "status":
		err = goose.Status(sqlDB, *dir)
	default:
		err = fmt.Errorf("unknown command %q", *command)
	}
	if err != nil {
		logger.Fatalf("Migration %s failed: %v", *command, err)
	}

	logger.Infof("Database migration %s completed successfully", *command)
}
