package database

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"tracker-backend/internal/models"
)

func Connect(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	log.Println("Database connection established")

	// Migration: This creates the tables in Postgres automatically
	log.Println("Running Migrations...")
	if err := db.AutoMigrate(&models.User{}, &models.Application{}); err != nil {
		log.Fatal("Migration failed:", err)
	}
	return db
}
