package services

import (
	"errors"
	"fmt"

	"github.com/av1ctor/metamob-sub003/internal/models"

	"gorm.io/gorm"
)

type AuthService struct {
	db *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db}
}

// LoginWithPrincipal finds or creates the user for a wallet principal.
// The principal itself is opaque here; the identity provider already
// authenticated it.
func (s *AuthService) LoginWithPrincipal(principal string, name string) (*models.User, error) {
	if principal == "" {
		return nil, errors.New("principal is required")
	}

	var user models.User
	err := s.db.Where("principal = ?", principal).First(&user).Error
	if err == nil {
		if user.Banned {
			return nil, errors.New("user is banned")
		}
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if name == "" {
		name = "anonymous"
	}

	user = models.User{
		PubID:     models.NewPubID(),
		Principal: principal,
		Name:      name,
		Role:      models.UserRoleUser,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}
