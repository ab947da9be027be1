package entities

import (
	"context"
	"errors"
	"testing"

	"github.com/av1ctor/metamob-sub003/internal/database"
	"github.com/av1ctor/metamob-sub003/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}
	db.Exec("DELETE FROM campaigns")
	db.Exec("DELETE FROM users")
	return db
}

func TestLookupUnknownType(t *testing.T) {
	_, err := Lookup("GADGETS")
	if !errors.Is(err, ErrUnknownEntityType) {
		t.Errorf("expected ErrUnknownEntityType, got %v", err)
	}
}

func TestBuiltinKindsRegistered(t *testing.T) {
	expected := []models.EntityType{
		models.EntityTypeCampaigns,
		models.EntityTypeSignatures,
		models.EntityTypeVotes,
		models.EntityTypeDonations,
		models.EntityTypeFundings,
		models.EntityTypeUpdates,
		models.EntityTypePlaces,
		models.EntityTypeUsers,
		models.EntityTypePoaps,
	}
	for _, kind := range expected {
		if _, err := Lookup(kind); err != nil {
			t.Errorf("kind %s not registered: %v", kind, err)
		}
	}
}

func TestFetchByPubID(t *testing.T) {
	db := setupTestDB(t)

	campaign := models.Campaign{
		PubID:     models.NewPubID(),
		Kind:      models.CampaignKindSignatures,
		Title:     "Save the old town library",
		Target:    "City council",
		Body:      "The library building must be preserved.",
		State:     models.CampaignStatePublished,
		CreatedBy: 1,
	}
	if err := db.Create(&campaign).Error; err != nil {
		t.Fatalf("failed to create campaign: %v", err)
	}

	entity, err := FetchByPubID(context.Background(), db, models.EntityTypeCampaigns, campaign.PubID)
	if err != nil {
		t.Fatalf("FetchByPubID failed: %v", err)
	}
	if entity.EntityID() != campaign.ID {
		t.Errorf("expected id %d, got %d", campaign.ID, entity.EntityID())
	}
	if entity.AuthorID() != campaign.CreatedBy {
		t.Errorf("expected author %d, got %d", campaign.CreatedBy, entity.AuthorID())
	}

	_, err = FetchByPubID(context.Background(), db, models.EntityTypeCampaigns, "missing")
	if !errors.Is(err, ErrEntityNotFound) {
		t.Errorf("expected ErrEntityNotFound, got %v", err)
	}
}

func TestModerationRoundTrip(t *testing.T) {
	db := setupTestDB(t)

	campaign := models.Campaign{
		PubID:     models.NewPubID(),
		Kind:      models.CampaignKindSignatures,
		Title:     "Save the old town library",
		Target:    "City council",
		Body:      "The library building must be preserved.",
		State:     models.CampaignStatePublished,
		CreatedBy: 1,
	}
	if err := db.Create(&campaign).Error; err != nil {
		t.Fatalf("failed to create campaign: %v", err)
	}

	entity, err := FetchByID(context.Background(), db, models.EntityTypeCampaigns, campaign.ID)
	if err != nil {
		t.Fatalf("FetchByID failed: %v", err)
	}

	snapshot := entity.Snapshot()
	entity.ApplyModeration(models.ModerationActionRedacted, models.ReasonSpam, models.JSONB{"body": "[redacted]"})
	if err := Save(context.Background(), db, entity); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	var redacted models.Campaign
	db.First(&redacted, campaign.ID)
	if redacted.Body != "[redacted]" {
		t.Errorf("expected redacted body, got %q", redacted.Body)
	}
	if redacted.Moderated&models.ReasonSpam == 0 {
		t.Error("expected spam flag set")
	}

	entity.RestoreFrom(snapshot)
	if err := Save(context.Background(), db, entity); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	var restored models.Campaign
	db.First(&restored, campaign.ID)
	if restored.Body != campaign.Body {
		t.Errorf("expected original body, got %q", restored.Body)
	}
	if restored.Moderated != models.ReasonNone {
		t.Errorf("expected flags cleared, got %d", restored.Moderated)
	}
}
