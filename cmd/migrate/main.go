package main

import (
	"context"                        // Context for the connection
	"finance_ledger/internal/config" // Custom import path (Config)
	"finance_ledger/internal/db"     // Custom import path (Database)

	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration
	config.SetupLogging(cfg)

	conn := db.NewConnector(cfg.DBDriver, cfg.SQLConnection)
	defer conn.Close()
	gdb, err := conn.Get(context.Background())
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err) // Log fatal error if connection fails
	}
	if err := db.Migrate(gdb); err != nil {
		logrus.Fatalf("%v", err)
	}
}
