package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/av1ctor/metamob-sub003/internal/entities"
	"github.com/av1ctor/metamob-sub003/internal/logging"
	"github.com/av1ctor/metamob-sub003/internal/models"
	"github.com/av1ctor/metamob-sub003/internal/repository"

	"gorm.io/gorm"
)

type ModerationService struct {
	db     *gorm.DB
	repo   *repository.Repository
	reward *RewardService
	audit  *AuditService
}

func NewModerationService(
	db *gorm.DB,
	repo *repository.Repository,
	reward *RewardService,
	audit *AuditService,
) *ModerationService {
	return &ModerationService{
		db:     db,
		repo:   repo,
		reward: reward,
		audit:  audit,
	}
}

// Moderate applies a moderator's decision on a reported entity: the
// entity update (flag or redaction) and the Moderation record are
// written in one transaction so a half-applied moderation cannot be
// observed.
func (s *ModerationService) Moderate(
	ctx context.Context,
	moderatorID uint,
	req *models.ModerationRequest,
) (*models.Moderation, error) {
	if err := validationError(req.Validate()); err != nil {
		return nil, err
	}

	var moderation *models.Moderation

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var report models.Report
		if err := tx.Where("id = ?", req.ReportID).First(&report).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("report %d not found", req.ReportID)
			}
			return err
		}

		if report.State != models.ReportStatePending {
			return fmt.Errorf("report %d was already assessed", report.ID)
		}

		entity, err := entities.FetchByID(ctx, tx, report.EntityType, report.EntityID)
		if err != nil {
			return err
		}

		snapshot := entity.Snapshot()
		entity.ApplyModeration(req.Action, req.Reason, req.Patch)
		if err := tx.Save(entity).Error; err != nil {
			return fmt.Errorf("failed to update entity: %w", err)
		}

		moderation = &models.Moderation{
			PubID:       models.NewPubID(),
			ReportID:    report.ID,
			EntityType:  report.EntityType,
			EntityID:    report.EntityID,
			EntityPubID: report.EntityPubID,
			Reason:      req.Reason,
			Action:      req.Action,
			Body:        req.Body,
			EntityOrg:   snapshot,
			State:       models.ModerationStateCreated,
			CreatedBy:   moderatorID,
		}
		if err := tx.Create(moderation).Error; err != nil {
			return fmt.Errorf("failed to create moderation: %w", err)
		}

		report.State = models.ReportStateModerated
		if err := tx.Save(&report).Error; err != nil {
			return fmt.Errorf("failed to update report: %w", err)
		}

		// Report accepted: the reporter earns the reward.
		return s.reward.Credit(tx, report.CreatedBy, report.ID)
	})
	if err != nil {
		return nil, err
	}

	s.audit.Log(moderatorID, "MODERATE_ENTITY", string(moderation.EntityType), &moderation.EntityID,
		map[string]interface{}{
			"moderation": moderation.PubID,
			"action":     moderation.Action,
			"reason":     moderation.Reason,
		})

	logging.WithUser(moderatorID).Infof("moderation %s issued on %s/%d (%s)",
		moderation.PubID, moderation.EntityType, moderation.EntityID, moderation.Action)

	return moderation, nil
}

// IgnoreReport closes a report without acting on the entity.
func (s *ModerationService) IgnoreReport(ctx context.Context, moderatorID uint, reportID uint) error {
	report, err := s.repo.GetReportByID(ctx, reportID)
	if err != nil {
		return err
	}

	if report.State != models.ReportStatePending {
		return fmt.Errorf("report %d was already assessed", report.ID)
	}

	report.State = models.ReportStateIgnored
	if err := s.db.WithContext(ctx).Save(report).Error; err != nil {
		return fmt.Errorf("failed to update report: %w", err)
	}

	s.audit.Log(moderatorID, "IGNORE_REPORT", "REPORT", &report.ID, nil)
	return nil
}

// GetModeration retrieves a moderation by public ID
func (s *ModerationService) GetModeration(ctx context.Context, pubID string) (*models.Moderation, error) {
	return s.repo.GetModerationByPubID(ctx, pubID)
}

// FindByReport returns the moderation issued for a report, or nil when
// the report has not been moderated yet.
func (s *ModerationService) FindByReport(ctx context.Context, reportID uint) (*models.Moderation, error) {
	return s.repo.FindModerationByReport(ctx, reportID)
}

// FindByEntity retrieves the moderations attached to an entity.
func (s *ModerationService) FindByEntity(
	ctx context.Context,
	entityType models.EntityType,
	entityID uint,
	limit, offset int,
) ([]*models.Moderation, bool, error) {
	return s.repo.ListModerationsByEntity(ctx, entityType, entityID, limit, offset)
}
