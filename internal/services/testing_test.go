package services

import (
	"testing"

	"github.com/av1ctor/metamob-sub003/internal/database"
	"github.com/av1ctor/metamob-sub003/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	// :memory: is unique per connection unless using cache=shared, so
	// each test cleans the tables it touches.
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	cleanTables(db)
	return db
}

func cleanTables(db *gorm.DB) {
	db.Exec("DELETE FROM challenge_votes")
	db.Exec("DELETE FROM challenges")
	db.Exec("DELETE FROM moderations")
	db.Exec("DELETE FROM reward_entries")
	db.Exec("DELETE FROM reports")
	db.Exec("DELETE FROM audit_logs")
	db.Exec("DELETE FROM signatures")
	db.Exec("DELETE FROM campaigns")
	db.Exec("DELETE FROM users")
}

func createTestUser(t *testing.T, db *gorm.DB, principal string, role models.UserRole) *models.User {
	user := &models.User{
		PubID:     models.NewPubID(),
		Principal: principal,
		Name:      principal,
		Role:      role,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

func createTestCampaign(t *testing.T, db *gorm.DB, owner *models.User) *models.Campaign {
	campaign := &models.Campaign{
		PubID:     models.NewPubID(),
		Kind:      models.CampaignKindSignatures,
		Title:     "Save the old town library",
		Target:    "City council",
		Body:      "The library building must be preserved.",
		State:     models.CampaignStatePublished,
		CreatedBy: owner.ID,
	}
	if err := db.Create(campaign).Error; err != nil {
		t.Fatalf("failed to create campaign: %v", err)
	}
	return campaign
}

func createTestReport(t *testing.T, db *gorm.DB, campaign *models.Campaign, reporter *models.User) *models.Report {
	report := &models.Report{
		PubID:       models.NewPubID(),
		EntityType:  models.EntityTypeCampaigns,
		EntityID:    campaign.ID,
		EntityPubID: campaign.PubID,
		Kind:        models.ReportKindSpam,
		Description: "This campaign is spam, please review it.",
		State:       models.ReportStatePending,
		CreatedBy:   reporter.ID,
	}
	if err := db.Create(report).Error; err != nil {
		t.Fatalf("failed to create report: %v", err)
	}
	return report
}
