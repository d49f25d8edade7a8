package sqlite

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/isaacphi/rendertools/internal/domain"
	"github.com/isaacphi/rendertools/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Initialize opens (or creates) the call history database at dbPath.
func Initialize(dbPath string) (repository.CallRepository, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Run migrations
	if err := db.AutoMigrate(&domain.Call{}); err != nil {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			sqlDB.Close()
		}
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return NewCallRepository(db), nil
}
