package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pirouter/api/models"
	"github.com/pirouter/api/pkg/log"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Connect opens the embedded sqlite store at dbPath, creating the parent
// directory if needed.
func Connect(dbPath string, verbose bool) error {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return fmt.Errorf("failed to create database dir: %w", err)
	}

	logLevel := logger.Silent
	if verbose {
		logLevel = logger.Info
	}

	var err error
	DB, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return err
	}

	log.Logger.Info("Database connected successfully")
	return nil
}

func Migrate() error {
	log.Logger.Info("Running database migrations...")

	err := DB.AutoMigrate(
		&models.User{},
		&models.Device{},
		&models.SystemEvent{},
		&models.ServiceLog{},
	)
	if err != nil {
		return err
	}

	log.Logger.Info("Database migrations completed")
	return nil
}

func Close() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
