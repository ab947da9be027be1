package services

import (
	"context"
	"fmt"

	"github.com/av1ctor/metamob-sub003/internal/models"

	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// GetProfile returns a user by ID.
func (s *UserService) GetProfile(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// SetRole changes a user's role (admin operation).
func (s *UserService) SetRole(ctx context.Context, userID uint, role models.UserRole) error {
	switch role {
	case models.UserRoleUser, models.UserRoleModerator, models.UserRoleJudge, models.UserRoleAdmin:
	default:
		return fmt.Errorf("invalid role: %s", role)
	}

	return s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("role", role).Error
}
