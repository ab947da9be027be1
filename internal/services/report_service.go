package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/av1ctor/metamob-sub003/internal/entities"
	"github.com/av1ctor/metamob-sub003/internal/logging"
	"github.com/av1ctor/metamob-sub003/internal/models"
	"github.com/av1ctor/metamob-sub003/internal/repository"

	"github.com/lib/pq"
)

type ReportService struct {
	repo *repository.Repository
}

func NewReportService(repo *repository.Repository) *ReportService {
	return &ReportService{repo: repo}
}

// CreateReport flags an entity, opening a pending moderation case.
// The referenced entity must exist; a user may report a given entity
// only once (checked here and enforced by a unique index).
func (s *ReportService) CreateReport(
	ctx context.Context,
	userID uint,
	req *models.CreateReportRequest,
) (*models.Report, error) {
	if err := validationError(req.Validate()); err != nil {
		return nil, err
	}

	entity, err := entities.FetchByPubID(ctx, s.repo.DB(), req.EntityType, req.EntityPubID)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.FindReportByEntityAndUser(ctx, req.EntityType, entity.EntityID(), userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing reports: %w", err)
	}
	if existing != nil {
		return nil, ErrDuplicateReport
	}

	report := &models.Report{
		PubID:       models.NewPubID(),
		EntityType:  req.EntityType,
		EntityID:    entity.EntityID(),
		EntityPubID: entity.EntityPubID(),
		Kind:        req.Kind,
		Description: req.Description,
		State:       models.ReportStatePending,
		CreatedBy:   userID,
	}

	if err := s.repo.CreateReport(ctx, report); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateReport
		}
		return nil, fmt.Errorf("failed to create report: %w", err)
	}

	logging.WithUser(userID).Infof("report %s created against %s/%d", report.PubID, report.EntityType, report.EntityID)

	return report, nil
}

// GetReport retrieves a report by public ID
func (s *ReportService) GetReport(ctx context.Context, pubID string) (*models.Report, error) {
	return s.repo.GetReportByPubID(ctx, pubID)
}

// ListReports retrieves reports for the moderation queue.
func (s *ReportService) ListReports(
	ctx context.Context,
	state models.ReportState,
	limit, offset int,
) ([]*models.Report, bool, error) {
	return s.repo.ListReports(ctx, state, limit, offset)
}

// ListReportsByEntity retrieves reports against one entity.
func (s *ReportService) ListReportsByEntity(
	ctx context.Context,
	entityType models.EntityType,
	entityID uint,
	limit, offset int,
) ([]*models.Report, bool, error) {
	return s.repo.ListReportsByEntity(ctx, entityType, entityID, limit, offset)
}

// isUniqueViolation reports whether the error is a PostgreSQL
// unique-constraint violation (23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
