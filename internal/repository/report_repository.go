package repository

import (
	"context"
	"errors"

	"github.com/av1ctor/metamob-sub003/internal/models"

	"gorm.io/gorm"
)

// CreateReport creates a new report
func (r *Repository) CreateReport(ctx context.Context, report *models.Report) error {
	return r.db.WithContext(ctx).Create(report).Error
}

// GetReportByID retrieves a report by ID
func (r *Repository) GetReportByID(ctx context.Context, id uint) (*models.Report, error) {
	var report models.Report
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&report).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// GetReportByPubID retrieves a report by public ID
func (r *Repository) GetReportByPubID(ctx context.Context, pubID string) (*models.Report, error) {
	var report models.Report
	err := r.db.WithContext(ctx).Where("pub_id = ?", pubID).First(&report).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// FindReportByEntityAndUser returns the user's existing report on an
// entity, or nil when there is none. "No such row" is expected here,
// not an error.
func (r *Repository) FindReportByEntityAndUser(
	ctx context.Context,
	entityType models.EntityType,
	entityID uint,
	userID uint,
) (*models.Report, error) {
	var report models.Report
	err := r.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ? AND created_by = ?", entityType, entityID, userID).
		First(&report).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// ListReports retrieves reports filtered by state, newest first. The
// extra has-more flag is inferred from page fullness, no count query.
func (r *Repository) ListReports(
	ctx context.Context,
	state models.ReportState,
	limit, offset int,
) ([]*models.Report, bool, error) {
	limit, offset = clampPage(limit, offset)

	query := r.db.WithContext(ctx).Model(&models.Report{})
	if state != "" {
		query = query.Where("state = ?", state)
	}

	var reports []*models.Report
	err := query.
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&reports).Error
	if err != nil {
		return nil, false, err
	}

	return reports, len(reports) == limit, nil
}

// ListReportsByEntity retrieves reports against a specific entity.
func (r *Repository) ListReportsByEntity(
	ctx context.Context,
	entityType models.EntityType,
	entityID uint,
	limit, offset int,
) ([]*models.Report, bool, error) {
	limit, offset = clampPage(limit, offset)

	var reports []*models.Report
	err := r.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&reports).Error
	if err != nil {
		return nil, false, err
	}

	return reports, len(reports) == limit, nil
}
