package testutil

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"botcafe/internal/models"
)

// SetupTestDB opens an in-memory SQLite database with the full schema.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to connect test database: %v", err)
	}

	err = gdb.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Bot{},
		&models.Interaction{},
		&models.MoodEntry{},
		&models.Doc{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return gdb
}

// CleanupTestDB closes the underlying connection.
func CleanupTestDB(t *testing.T, gdb *gorm.DB) {
	t.Helper()

	sqlDB, err := gdb.DB()
	if err != nil {
		t.Logf("Warning: Failed to get underlying DB: %v", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		t.Logf("Warning: Failed to close test database: %v", err)
	}
}
