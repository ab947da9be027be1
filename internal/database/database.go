package database

import (
	"fmt"

	"github.com/av1ctor/metamob-sub003/internal/logging"
	"github.com/av1ctor/metamob-sub003/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Connect establishes a connection to the PostgreSQL database
func Connect(dsn string) error {
	var err error

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Error),
		DisableForeignKeyConstraintWhenMigrating: true,
	})

	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	logging.Info("Database connection established successfully")
	return nil
}

// AutoMigrate runs automatic migrations for all models
func AutoMigrate() error {
	return Migrate(DB)
}

// Migrate runs migrations for all models against the given handle.
// Exposed separately so tests can migrate an in-memory database.
func Migrate(db *gorm.DB) error {
	// Content entities first
	contentModels := []interface{}{
		&models.User{},
		&models.Place{},
		&models.Campaign{},
		&models.Signature{},
		&models.Vote{},
		&models.Donation{},
		&models.Funding{},
		&models.CampaignUpdate{},
		&models.Poap{},
	}

	for _, model := range contentModels {
		if err := db.AutoMigrate(model); err != nil {
			logging.Warnf("migration issue for %T: %v", model, err)
		}
	}

	// Moderation workflow models
	moderationModels := []interface{}{
		&models.Report{},
		&models.Moderation{},
		&models.Challenge{},
		&models.ChallengeVote{},
		&models.RewardEntry{},
		&models.AuditLog{},
	}

	for _, model := range moderationModels {
		if err := db.AutoMigrate(model); err != nil {
			logging.Warnf("migration issue for %T: %v", model, err)
		}
	}

	logging.Info("Database migrations completed successfully")
	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}
