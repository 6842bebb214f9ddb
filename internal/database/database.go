package database

import (
	"fmt"

	"notes_service/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})

	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates the schema plus the partial unique indexes that keep
// uniqueness scoped to live rows (a soft-deleted user frees its email,
// a revoked grant frees its (user, note) slot).
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(&models.User{}, &models.Note{}, &models.UserNoteAccess{})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	indexes := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_active_email ON users (email) WHERE deleted_at IS NULL`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_active_user_note_access ON user_note_accesses (user_id, note_id) WHERE deleted_at IS NULL`,
	}
	for _, stmt := range indexes {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("index creation failed: %w", err)
		}
	}

	return nil
}
