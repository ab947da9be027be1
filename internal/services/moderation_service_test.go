package services

import (
	"context"
	"errors"
	"testing"

	"github.com/av1ctor/metamob-sub003/internal/models"
	"github.com/av1ctor/metamob-sub003/internal/repository"
)

func newModerationService(db *repository.Repository) (*ModerationService, *RewardService) {
	reward := NewRewardService(db.DB(), "1")
	audit := NewAuditService(db.DB())
	return NewModerationService(db.DB(), db, reward, audit), reward
}

func TestModerateFlagsEntity(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewRepository(db)
	service, reward := newModerationService(repo)

	owner := createTestUser(t, db, "owner", models.UserRoleUser)
	reporter := createTestUser(t, db, "reporter", models.UserRoleUser)
	moderator := createTestUser(t, db, "moderator", models.UserRoleModerator)
	campaign := createTestCampaign(t, db, owner)
	report := createTestReport(t, db, campaign, reporter)

	moderation, err := service.Moderate(context.Background(), moderator.ID, &models.ModerationRequest{
		ReportID: report.ID,
		Reason:   models.ReasonSpam,
		Action:   models.ModerationActionFlagged,
		Body:     "This campaign was flagged as spam.",
	})
	if err != nil {
		t.Fatalf("Moderate failed: %v", err)
	}

	if moderation.State != models.ModerationStateCreated {
		t.Errorf("expected state CREATED, got %s", moderation.State)
	}
	if moderation.EntityID != campaign.ID {
		t.Errorf("expected entity id %d, got %d", campaign.ID, moderation.EntityID)
	}

	// Snapshot holds the original fields.
	if title, _ := moderation.EntityOrg.String("title"); title != campaign.Title {
		t.Errorf("snapshot title mismatch: got %q", title)
	}

	// The entity is flagged but the content survives.
	var updated models.Campaign
	if err := db.First(&updated, campaign.ID).Error; err != nil {
		t.Fatalf("failed to reload campaign: %v", err)
	}
	if updated.Moderated&models.ReasonSpam == 0 {
		t.Error("expected campaign to carry the spam flag")
	}
	if updated.Title != campaign.Title {
		t.Errorf("flagging must not change content, got title %q", updated.Title)
	}

	// The report is closed and the reporter rewarded.
	var reloaded models.Report
	db.First(&reloaded, report.ID)
	if reloaded.State != models.ReportStateModerated {
		t.Errorf("expected report MODERATED, got %s", reloaded.State)
	}

	balance, err := reward.Balance(context.Background(), reporter.ID)
	if err != nil {
		t.Fatalf("Balance failed: %v", err)
	}
	if balance.IsZero() {
		t.Error("expected reporter to be rewarded")
	}
}

func TestModerateRedactsEntity(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewRepository(db)
	service, _ := newModerationService(repo)

	owner := createTestUser(t, db, "owner", models.UserRoleUser)
	reporter := createTestUser(t, db, "reporter", models.UserRoleUser)
	moderator := createTestUser(t, db, "moderator", models.UserRoleModerator)
	campaign := createTestCampaign(t, db, owner)
	report := createTestReport(t, db, campaign, reporter)

	moderation, err := service.Moderate(context.Background(), moderator.ID, &models.ModerationRequest{
		ReportID: report.ID,
		Reason:   models.ReasonOffensive,
		Action:   models.ModerationActionRedacted,
		Body:     "Offensive wording removed from the body.",
		Patch:    models.JSONB{"body": "[redacted]"},
	})
	if err != nil {
		t.Fatalf("Moderate failed: %v", err)
	}

	var updated models.Campaign
	db.First(&updated, campaign.ID)
	if updated.Body != "[redacted]" {
		t.Errorf("expected redacted body, got %q", updated.Body)
	}
	if updated.Title != campaign.Title {
		t.Errorf("unpatched fields must survive, got title %q", updated.Title)
	}

	// The snapshot still holds the original body for a later revert.
	if body, _ := moderation.EntityOrg.String("body"); body != campaign.Body {
		t.Errorf("snapshot body mismatch: got %q", body)
	}
}

func TestModerateValidationBeforeWrite(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewRepository(db)
	service, _ := newModerationService(repo)

	owner := createTestUser(t, db, "owner", models.UserRoleUser)
	reporter := createTestUser(t, db, "reporter", models.UserRoleUser)
	moderator := createTestUser(t, db, "moderator", models.UserRoleModerator)
	campaign := createTestCampaign(t, db, owner)
	report := createTestReport(t, db, campaign, reporter)

	_, err := service.Moderate(context.Background(), moderator.ID, &models.ModerationRequest{
		ReportID: report.ID,
		Reason:   models.ReasonNone,
		Action:   "BANANA",
		Body:     "short",
	})

	var validation *ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(validation.Fields) != 3 {
		t.Errorf("expected 3 field errors, got %d", len(validation.Fields))
	}

	// Nothing was persisted and the report stayed pending.
	var count int64
	db.Model(&models.Moderation{}).Count(&count)
	if count != 0 {
		t.Errorf("expected no moderations, found %d", count)
	}
	var reloaded models.Report
	db.First(&reloaded, report.ID)
	if reloaded.State != models.ReportStatePending {
		t.Errorf("expected report still PENDING, got %s", reloaded.State)
	}
}

func TestModerateAssessedReportRejected(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewRepository(db)
	service, _ := newModerationService(repo)

	owner := createTestUser(t, db, "owner", models.UserRoleUser)
	reporter := createTestUser(t, db, "reporter", models.UserRoleUser)
	moderator := createTestUser(t, db, "moderator", models.UserRoleModerator)
	campaign := createTestCampaign(t, db, owner)
	report := createTestReport(t, db, campaign, reporter)

	req := &models.ModerationRequest{
		ReportID: report.ID,
		Reason:   models.ReasonSpam,
		Action:   models.ModerationActionFlagged,
		Body:     "This campaign was flagged as spam.",
	}
	if _, err := service.Moderate(context.Background(), moderator.ID, req); err != nil {
		t.Fatalf("first Moderate failed: %v", err)
	}

	if _, err := service.Moderate(context.Background(), moderator.ID, req); err == nil {
		t.Error("expected second moderation of the same report to fail")
	}
}

func TestIgnoreReport(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewRepository(db)
	service, reward := newModerationService(repo)

	owner := createTestUser(t, db, "owner", models.UserRoleUser)
	reporter := createTestUser(t, db, "reporter", models.UserRoleUser)
	moderator := createTestUser(t, db, "moderator", models.UserRoleModerator)
	campaign := createTestCampaign(t, db, owner)
	report := createTestReport(t, db, campaign, reporter)

	if err := service.IgnoreReport(context.Background(), moderator.ID, report.ID); err != nil {
		t.Fatalf("IgnoreReport failed: %v", err)
	}

	var reloaded models.Report
	db.First(&reloaded, report.ID)
	if reloaded.State != models.ReportStateIgnored {
		t.Errorf("expected report IGNORED, got %s", reloaded.State)
	}

	// Ignored reports earn nothing.
	balance, _ := reward.Balance(context.Background(), reporter.ID)
	if !balance.IsZero() {
		t.Error("expected no reward for an ignored report")
	}

	// And cannot be assessed again.
	if err := service.IgnoreReport(context.Background(), moderator.ID, report.ID); err == nil {
		t.Error("expected second assessment to fail")
	}
}

func TestModerationRequestRoundTrip(t *testing.T) {
	moderation := models.Moderation{
		ReportID: 7,
		Reason:   models.ReasonSpam | models.ReasonFake,
		Action:   models.ModerationActionRedacted,
		Body:     "Spam with fabricated claims, body redacted.",
	}

	req := moderation.RequestFor()
	if req.ReportID != moderation.ReportID ||
		req.Reason != moderation.Reason ||
		req.Action != moderation.Action ||
		req.Body != moderation.Body {
		t.Errorf("request did not round-trip: %+v", req)
	}
	if errs := req.Validate(); len(errs) != 0 {
		t.Errorf("rebuilt request must validate cleanly, got %v", errs)
	}
}
