package db

import (
	"finance_ledger/internal/domain" // Importing domain models
	"fmt"                            // Error wrapping

	"github.com/sirupsen/logrus" // Logrus for structured logging
	"gorm.io/gorm"               // GORM ORM library
)

// Migrate performs automatic migration for the database schema
func Migrate(db *gorm.DB) error {
	// AutoMigrate creates the transactions table and its created_at index
	if err := db.AutoMigrate(&domain.Transaction{}); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logrus.Info("Migration completed.") // Log successful migration
	return nil
}
