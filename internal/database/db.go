package database

import (
	"fmt"

	"arab_ai_go_backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens the Postgres connection and migrates the schema. The returned
// handle is passed explicitly to every store constructor; there is no package
// level DB variable.
func Connect(host, user, password, name, port string) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		host, user, password, name, port,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate provisions the users, conversations and messages tables.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(&models.User{}, &models.Conversation{}, &models.Message{})
	if err != nil {
		return fmt.Errorf("failed to auto migrate: %w", err)
	}
	return nil
}
