package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/noah-isme/pantau-go-api/internal/models"
)

// ConnectPostgres establishes a connection to the PostgreSQL database using the provided DSN.
func ConnectPostgres(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres dsn must not be empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	return db, nil
}

// Migrate creates the schema for the three tracked entities. Beyond the
// AutoMigrate pass it installs a partial unique index so that at most one
// pending or assigned intervention can exist per student, which keeps the
// active-intervention invariant true under concurrent writers rather than
// only in application logic. The statement works on both postgres and
// sqlite.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Student{}, &models.Intervention{}, &models.DailyLog{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	err := db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_interventions_one_active
		 ON interventions (student_id)
		 WHERE status IN ('pending', 'assigned')`,
	).Error
	if err != nil {
		return fmt.Errorf("failed to create active intervention index: %w", err)
	}

	return nil
}
