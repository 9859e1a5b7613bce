package database

import (
	"cornelius-notes/cornelius/models"

	"gorm.io/gorm"
)

// RunMigrations keeps the schema in sync with the model definitions.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Note{},
		&models.NoteLink{},
	)
}
