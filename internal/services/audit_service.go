package services

import (
	"github.com/av1ctor/metamob-sub003/internal/logging"
	"github.com/av1ctor/metamob-sub003/internal/models"

	"gorm.io/gorm"
)

// AuditService records moderator and judge actions.
type AuditService struct {
	db *gorm.DB
}

func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{db: db}
}

// Log writes an audit entry. Failures are logged but never fail the
// calling operation.
func (s *AuditService) Log(actorID uint, action string, resourceType string,
	resourceID *uint, details map[string]interface{}) {

	entry := models.AuditLog{
		ActorID:      actorID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Details:      models.JSONB(details),
	}

	if err := s.db.Create(&entry).Error; err != nil {
		logging.Error(err, "failed to write audit log")
	}
}

// List returns audit entries, newest first.
func (s *AuditService) List(limit, offset int) ([]models.AuditLog, bool, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var logs []models.AuditLog
	err := s.db.Preload("Actor").
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error
	if err != nil {
		return nil, false, err
	}
	return logs, len(logs) == limit, nil
}
