package repository

import (
	"context"
	"errors"

	"github.com/av1ctor/metamob-sub003/internal/models"

	"gorm.io/gorm"
)

// GetModerationByID retrieves a moderation by ID
func (r *Repository) GetModerationByID(ctx context.Context, id uint) (*models.Moderation, error) {
	var moderation models.Moderation
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&moderation).Error
	if err != nil {
		return nil, err
	}
	return &moderation, nil
}

// GetModerationByPubID retrieves a moderation by public ID
func (r *Repository) GetModerationByPubID(ctx context.Context, pubID string) (*models.Moderation, error) {
	var moderation models.Moderation
	err := r.db.WithContext(ctx).Where("pub_id = ?", pubID).First(&moderation).Error
	if err != nil {
		return nil, err
	}
	return &moderation, nil
}

// ListModerationsByEntity retrieves moderations attached to an entity,
// newest first.
func (r *Repository) ListModerationsByEntity(
	ctx context.Context,
	entityType models.EntityType,
	entityID uint,
	limit, offset int,
) ([]*models.Moderation, bool, error) {
	limit, offset = clampPage(limit, offset)

	var moderations []*models.Moderation
	err := r.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&moderations).Error
	if err != nil {
		return nil, false, err
	}

	return moderations, len(moderations) == limit, nil
}

// FindModerationByReport returns the moderation issued for a report,
// or nil when the report has not been moderated yet.
func (r *Repository) FindModerationByReport(ctx context.Context, reportID uint) (*models.Moderation, error) {
	var moderation models.Moderation
	err := r.db.WithContext(ctx).Where("report_id = ?", reportID).First(&moderation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &moderation, nil
}
