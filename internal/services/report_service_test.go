package services

import (
	"context"
	"errors"
	"testing"

	"github.com/av1ctor/metamob-sub003/internal/entities"
	"github.com/av1ctor/metamob-sub003/internal/models"
	"github.com/av1ctor/metamob-sub003/internal/repository"
)

func TestCreateReport(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewRepository(db)
	service := NewReportService(repo)

	owner := createTestUser(t, db, "owner", models.UserRoleUser)
	reporter := createTestUser(t, db, "reporter", models.UserRoleUser)
	campaign := createTestCampaign(t, db, owner)

	req := &models.CreateReportRequest{
		EntityType:  models.EntityTypeCampaigns,
		EntityPubID: campaign.PubID,
		Kind:        models.ReportKindSpam,
		Description: "This campaign is spam, please review it.",
	}

	report, err := service.CreateReport(context.Background(), reporter.ID, req)
	if err != nil {
		t.Fatalf("CreateReport failed: %v", err)
	}

	if report.State != models.ReportStatePending {
		t.Errorf("expected state PENDING, got %s", report.State)
	}
	if report.EntityID != campaign.ID {
		t.Errorf("expected entity id %d, got %d", campaign.ID, report.EntityID)
	}
	if report.EntityPubID != campaign.PubID {
		t.Errorf("expected entity pub id %s, got %s", campaign.PubID, report.EntityPubID)
	}
	if report.PubID == "" {
		t.Error("expected a public id to be assigned")
	}
}

func TestCreateReportDuplicate(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewRepository(db)
	service := NewReportService(repo)

	owner := createTestUser(t, db, "owner", models.UserRoleUser)
	reporter := createTestUser(t, db, "reporter", models.UserRoleUser)
	campaign := createTestCampaign(t, db, owner)

	req := &models.CreateReportRequest{
		EntityType:  models.EntityTypeCampaigns,
		EntityPubID: campaign.PubID,
		Kind:        models.ReportKindSpam,
		Description: "This campaign is spam, please review it.",
	}

	if _, err := service.CreateReport(context.Background(), reporter.ID, req); err != nil {
		t.Fatalf("first CreateReport failed: %v", err)
	}

	_, err := service.CreateReport(context.Background(), reporter.ID, req)
	if !errors.Is(err, ErrDuplicateReport) {
		t.Errorf("expected ErrDuplicateReport, got %v", err)
	}

	// A different user may still report the same entity.
	other := createTestUser(t, db, "other", models.UserRoleUser)
	if _, err := service.CreateReport(context.Background(), other.ID, req); err != nil {
		t.Errorf("report by another user failed: %v", err)
	}
}

func TestCreateReportValidation(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewRepository(db)
	service := NewReportService(repo)

	reporter := createTestUser(t, db, "reporter", models.UserRoleUser)

	req := &models.CreateReportRequest{
		EntityType:  models.EntityTypeCampaigns,
		EntityPubID: "does-not-matter",
		Kind:        models.ReportKindSpam,
		Description: "too short",
	}

	_, err := service.CreateReport(context.Background(), reporter.ID, req)
	var validation *ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(validation.Fields) == 0 {
		t.Error("expected at least one field error")
	}

	// Nothing was persisted.
	var count int64
	db.Model(&models.Report{}).Count(&count)
	if count != 0 {
		t.Errorf("expected no reports, found %d", count)
	}
}

func TestCreateReportUnknownEntity(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewRepository(db)
	service := NewReportService(repo)

	reporter := createTestUser(t, db, "reporter", models.UserRoleUser)

	_, err := service.CreateReport(context.Background(), reporter.ID, &models.CreateReportRequest{
		EntityType:  "GADGETS",
		EntityPubID: "abc",
		Kind:        models.ReportKindSpam,
		Description: "This entity kind does not exist at all.",
	})
	if !errors.Is(err, entities.ErrUnknownEntityType) {
		t.Errorf("expected ErrUnknownEntityType, got %v", err)
	}

	_, err = service.CreateReport(context.Background(), reporter.ID, &models.CreateReportRequest{
		EntityType:  models.EntityTypeCampaigns,
		EntityPubID: "missing-pub-id",
		Kind:        models.ReportKindSpam,
		Description: "This campaign does not exist anymore.",
	})
	if !errors.Is(err, entities.ErrEntityNotFound) {
		t.Errorf("expected ErrEntityNotFound, got %v", err)
	}
}
