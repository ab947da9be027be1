package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Poap is a proof-of-attendance token configuration attached to a campaign.
type Poap struct {
	ID         uint             `gorm:"primaryKey" json:"id"`
	PubID      string           `gorm:"uniqueIndex;size:64;not null" json:"pub_id"`
	CampaignID uint             `gorm:"not null;index" json:"campaign_id"`
	Name       string           `gorm:"size:64;not null" json:"name"`
	Symbol     string           `gorm:"size:8;not null" json:"symbol"`
	Logo       string           `gorm:"type:text" json:"logo"`
	Price      decimal.Decimal  `gorm:"type:decimal(18,8);default:0" json:"price"`
	MaxSupply  *int32           `json:"max_supply"`
	Minted     int32            `gorm:"default:0" json:"minted"`
	Moderated  ModerationReason `gorm:"default:0" json:"moderated"`
	CreatedBy  uint             `gorm:"not null;index" json:"created_by"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

func (Poap) TableName() string {
	return "poaps"
}

func (p *Poap) EntityID() uint      { return p.ID }
func (p *Poap) EntityPubID() string { return p.PubID }
func (p *Poap) AuthorID() uint      { return p.CreatedBy }

func (p *Poap) Snapshot() JSONB {
	return JSONB{
		"name":   p.Name,
		"symbol": p.Symbol,
		"logo":   p.Logo,
	}
}

func (p *Poap) ApplyModeration(action ModerationAction, reason ModerationReason, patch JSONB) {
	p.Moderated |= reason
	if action != ModerationActionRedacted {
		return
	}
	if v, ok := patch.String("name"); ok {
		p.Name = v
	}
	if v, ok := patch.String("symbol"); ok {
		p.Symbol = v
	}
	if v, ok := patch.String("logo"); ok {
		p.Logo = v
	}
}

func (p *Poap) RestoreFrom(snapshot JSONB) {
	p.Moderated = ReasonNone
	if v, ok := snapshot.String("name"); ok {
		p.Name = v
	}
	if v, ok := snapshot.String("symbol"); ok {
		p.Symbol = v
	}
	if v, ok := snapshot.String("logo"); ok {
		p.Logo = v
	}
}
