package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/av1ctor/metamob-sub003/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RewardService keeps the MMT ledger for report rewards. Entries are
// ledger lines only; actual token movement happens elsewhere.
type RewardService struct {
	db     *gorm.DB
	amount decimal.Decimal
}

func NewRewardService(db *gorm.DB, amount string) *RewardService {
	value, err := decimal.NewFromString(amount)
	if err != nil {
		value = decimal.NewFromInt(1)
	}
	return &RewardService{db: db, amount: value}
}

// Credit records the report reward inside the caller's transaction.
func (s *RewardService) Credit(tx *gorm.DB, userID uint, reportID uint) error {
	entry := &models.RewardEntry{
		UserID:   userID,
		ReportID: reportID,
		Amount:   s.amount,
		Status:   models.RewardStatusCredited,
	}
	if err := tx.Create(entry).Error; err != nil {
		return fmt.Errorf("failed to credit reward: %w", err)
	}
	return nil
}

// Revoke marks the reward for a report as revoked. Missing entries are
// ignored: a revert of a moderation whose report was never rewarded is
// not an error.
func (s *RewardService) Revoke(tx *gorm.DB, reportID uint) error {
	var entry models.RewardEntry
	err := tx.Where("report_id = ?", reportID).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	now := time.Now()
	entry.Status = models.RewardStatusRevoked
	entry.RevokedAt = &now
	return tx.Save(&entry).Error
}

// Balance sums the credited, non-revoked rewards of a user.
func (s *RewardService) Balance(ctx context.Context, userID uint) (decimal.Decimal, error) {
	var entries []models.RewardEntry
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, models.RewardStatusCredited).
		Find(&entries).Error
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, entry := range entries {
		total = total.Add(entry.Amount)
	}
	return total, nil
}

// Entries lists a user's reward ledger lines, newest first.
func (s *RewardService) Entries(ctx context.Context, userID uint, limit, offset int) ([]models.RewardEntry, bool, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var entries []models.RewardEntry
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&entries).Error
	if err != nil {
		return nil, false, err
	}
	return entries, len(entries) == limit, nil
}
