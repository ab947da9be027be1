package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type RewardStatus string

const (
	RewardStatusCredited RewardStatus = "CREDITED"
	RewardStatusRevoked  RewardStatus = "REVOKED"
)

// RewardEntry is a ledger line crediting MMT to a reporter whose report
// led to a moderation. The entry is revoked if the moderation is
// reverted by a judge.
type RewardEntry struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	UserID    uint            `gorm:"not null;index" json:"user_id"`
	User      *User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	ReportID  uint            `gorm:"uniqueIndex;not null" json:"report_id"`
	Amount    decimal.Decimal `gorm:"type:decimal(18,8);not null" json:"amount"`
	Status    RewardStatus    `gorm:"size:20;not null;default:CREDITED;index" json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	RevokedAt *time.Time      `json:"revoked_at,omitempty"`
}

func (RewardEntry) TableName() string {
	return "reward_entries"
}
