package services

import (
	"context"

	"github.com/av1ctor/metamob-sub003/internal/entities"
	"github.com/av1ctor/metamob-sub003/internal/models"

	"gorm.io/gorm"
)

// EntityService resolves registered entity kinds for preview.
type EntityService struct {
	db *gorm.DB
}

func NewEntityService(db *gorm.DB) *EntityService {
	return &EntityService{db: db}
}

// Resolve loads any registered entity by type tag and public id.
func (s *EntityService) Resolve(
	ctx context.Context,
	entityType models.EntityType,
	pubID string,
) (entities.Moderable, error) {
	return entities.FetchByPubID(ctx, s.db, entityType, pubID)
}
