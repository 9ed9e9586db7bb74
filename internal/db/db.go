package db

import (
	"log"
	"time"

	"github.com/velourstudio/salon-scheduler/internal/config"
	"github.com/velourstudio/salon-scheduler/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Location{},
		&models.User{},
		&models.Service{},
		&models.TechnicianBlock{},
		&models.Client{},
		&models.Appointment{},
		&models.PhoneVerification{},
		&models.WebhookEvent{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// Write-time backstop for the overlap pre-check: two requests can
	// both pass the read before either inserts, so the database itself
	// must reject the second insert for any active status. The service
	// must not come up without it.
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		log.Fatalf("failed to create btree_gist extension: %v", err)
	}
	if err := db.Exec(`ALTER TABLE appointments DROP CONSTRAINT IF EXISTS appointments_no_overlap`).Error; err != nil {
		log.Fatalf("failed to drop overlap constraint: %v", err)
	}
	if err := db.Exec(`
        ALTER TABLE appointments
        ADD CONSTRAINT appointments_no_overlap
        EXCLUDE USING gist (
            technician_id WITH =,
            tsrange(start_time, end_time, '[)') WITH &&
        )
        WHERE (status IN ('pending', 'confirmed', 'checked_in'))
    `).Error; err != nil {
		log.Fatalf("failed to create overlap constraint: %v", err)
	}

	db.Exec(`
        UPDATE locations
        SET timezone = 'America/Los_Angeles'
        WHERE timezone IS NULL OR timezone = ''
    `)

	return db
}
