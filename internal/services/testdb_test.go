package services

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tracker-backend/internal/models"
)

// newTestDB opens an in-memory sqlite database with the real schema so
// service tests run without postgres.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("could not open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Application{}); err != nil {
		t.Fatalf("migration failed: %v", err)
	}
	return db
}
