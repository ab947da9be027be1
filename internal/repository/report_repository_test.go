package repository

import (
	"context"
	"fmt"
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
	db.Exec("DELETE FROM reports")
	return db
}

func seedReports(t *testing.T, db *gorm.DB, n int) {
	for i := 0; i < n; i++ {
		report := models.Report{
			PubID:       models.NewPubID(),
			EntityType:  models.EntityTypeCampaigns,
			EntityID:    uint(i + 1),
			EntityPubID: fmt.Sprintf("entity-%d", i+1),
			Kind:        models.ReportKindSpam,
			Description: "Spam report seeded for pagination checks.",
			State:       models.ReportStatePending,
			CreatedBy:   1,
		}
		if err := db.Create(&report).Error; err != nil {
			t.Fatalf("failed to seed report: %v", err)
		}
	}
}

func TestListReportsHasMore(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	seedReports(t, db, 5)

	// A full page signals more may follow.
	page, hasMore, err := repo.ListReports(context.Background(), models.ReportStatePending, 2, 0)
	if err != nil {
		t.Fatalf("ListReports failed: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(page))
	}
	if !hasMore {
		t.Error("expected has_more on a full page")
	}

	// A short page is the last one.
	page, hasMore, err = repo.ListReports(context.Background(), models.ReportStatePending, 2, 4)
	if err != nil {
		t.Fatalf("ListReports failed: %v", err)
	}
	if len(page) != 1 {
		t.Fatalf("expected 1 report, got %d", len(page))
	}
	if hasMore {
		t.Error("expected has_more false on the last page")
	}

	// An empty page past the end.
	page, hasMore, err = repo.ListReports(context.Background(), models.ReportStatePending, 2, 10)
	if err != nil {
		t.Fatalf("ListReports failed: %v", err)
	}
	if len(page) != 0 || hasMore {
		t.Errorf("expected empty page without more, got %d/%v", len(page), hasMore)
	}

	// Exactly one full page: has_more is a hint, not a count. The next
	// fetch returns empty and clears it.
	db.Exec("DELETE FROM reports")
	seedReports(t, db, 2)
	page, hasMore, err = repo.ListReports(context.Background(), models.ReportStatePending, 2, 0)
	if err != nil {
		t.Fatalf("ListReports failed: %v", err)
	}
	if len(page) != 2 || !hasMore {
		t.Errorf("expected full page with has_more, got %d/%v", len(page), hasMore)
	}
}

func TestListReportsStateFilter(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	seedReports(t, db, 3)
	db.Model(&models.Report{}).Where("entity_id = ?", 1).Update("state", models.ReportStateIgnored)

	pending, _, err := repo.ListReports(context.Background(), models.ReportStatePending, 20, 0)
	if err != nil {
		t.Fatalf("ListReports failed: %v", err)
	}
	if len(pending) != 2 {
		t.Errorf("expected 2 pending reports, got %d", len(pending))
	}

	// Empty state lists everything.
	all, _, err := repo.ListReports(context.Background(), "", 20, 0)
	if err != nil {
		t.Fatalf("ListReports failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 reports, got %d", len(all))
	}
}

func TestFindReportByEntityAndUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	seedReports(t, db, 1)

	found, err := repo.FindReportByEntityAndUser(context.Background(), models.EntityTypeCampaigns, 1, 1)
	if err != nil {
		t.Fatalf("FindReportByEntityAndUser failed: %v", err)
	}
	if found == nil {
		t.Fatal("expected a report")
	}

	// Missing rows are nil, not an error.
	missing, err := repo.FindReportByEntityAndUser(context.Background(), models.EntityTypeCampaigns, 99, 1)
	if err != nil {
		t.Fatalf("FindReportByEntityAndUser failed: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for a missing report")
	}
}
