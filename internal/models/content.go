package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Signature is a user's endorsement of a signatures campaign.
type Signature struct {
	ID         uint             `gorm:"primaryKey" json:"id"`
	PubID      string           `gorm:"uniqueIndex;size:64;not null" json:"pub_id"`
	CampaignID uint             `gorm:"not null;uniqueIndex:idx_signatures_campaign_user" json:"campaign_id"`
	Body       string           `gorm:"type:text" json:"body"`
	Moderated  ModerationReason `gorm:"default:0" json:"moderated"`
	CreatedBy  uint             `gorm:"not null;uniqueIndex:idx_signatures_campaign_user" json:"created_by"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

func (Signature) TableName() string {
	return "signatures"
}

func (s *Signature) EntityID() uint      { return s.ID }
func (s *Signature) EntityPubID() string { return s.PubID }
func (s *Signature) AuthorID() uint      { return s.CreatedBy }

func (s *Signature) Snapshot() JSONB {
	return JSONB{"body": s.Body}
}

func (s *Signature) ApplyModeration(action ModerationAction, reason ModerationReason, patch JSONB) {
	s.Moderated |= reason
	if action != ModerationActionRedacted {
		return
	}
	if v, ok := patch.String("body"); ok {
		s.Body = v
	}
}

func (s *Signature) RestoreFrom(snapshot JSONB) {
	s.Moderated = ReasonNone
	if v, ok := snapshot.String("body"); ok {
		s.Body = v
	}
}

// Vote is a pro/against vote on a votes campaign.
type Vote struct {
	ID         uint             `gorm:"primaryKey" json:"id"`
	PubID      string           `gorm:"uniqueIndex;size:64;not null" json:"pub_id"`
	CampaignID uint             `gorm:"not null;index" json:"campaign_id"`
	Pro        bool             `gorm:"not null" json:"pro"`
	Body       string           `gorm:"type:text" json:"body"`
	Moderated  ModerationReason `gorm:"default:0" json:"moderated"`
	CreatedBy  uint             `gorm:"not null;index" json:"created_by"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

func (Vote) TableName() string {
	return "votes"
}

func (v *Vote) EntityID() uint      { return v.ID }
func (v *Vote) EntityPubID() string { return v.PubID }
func (v *Vote) AuthorID() uint      { return v.CreatedBy }

func (v *Vote) Snapshot() JSONB {
	return JSONB{"body": v.Body}
}

func (v *Vote) ApplyModeration(action ModerationAction, reason ModerationReason, patch JSONB) {
	v.Moderated |= reason
	if action != ModerationActionRedacted {
		return
	}
	if s, ok := patch.String("body"); ok {
		v.Body = s
	}
}

func (v *Vote) RestoreFrom(snapshot JSONB) {
	v.Moderated = ReasonNone
	if s, ok := snapshot.String("body"); ok {
		v.Body = s
	}
}

// Donation is a one-off contribution to a donations campaign.
type Donation struct {
	ID         uint             `gorm:"primaryKey" json:"id"`
	PubID      string           `gorm:"uniqueIndex;size:64;not null" json:"pub_id"`
	CampaignID uint             `gorm:"not null;index" json:"campaign_id"`
	Value      decimal.Decimal  `gorm:"type:decimal(18,8);not null" json:"value"`
	Anonymous  bool             `gorm:"default:false" json:"anonymous"`
	Body       string           `gorm:"type:text" json:"body"`
	Moderated  ModerationReason `gorm:"default:0" json:"moderated"`
	CreatedBy  uint             `gorm:"not null;index" json:"created_by"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

func (Donation) TableName() string {
	return "donations"
}

func (d *Donation) EntityID() uint      { return d.ID }
func (d *Donation) EntityPubID() string { return d.PubID }
func (d *Donation) AuthorID() uint      { return d.CreatedBy }

func (d *Donation) Snapshot() JSONB {
	return JSONB{"body": d.Body}
}

func (d *Donation) ApplyModeration(action ModerationAction, reason ModerationReason, patch JSONB) {
	d.Moderated |= reason
	if action != ModerationActionRedacted {
		return
	}
	if s, ok := patch.String("body"); ok {
		d.Body = s
	}
}

func (d *Donation) RestoreFrom(snapshot JSONB) {
	d.Moderated = ReasonNone
	if s, ok := snapshot.String("body"); ok {
		d.Body = s
	}
}

// Funding is a tiered pledge to a fundings campaign.
type Funding struct {
	ID         uint             `gorm:"primaryKey" json:"id"`
	PubID      string           `gorm:"uniqueIndex;size:64;not null" json:"pub_id"`
	CampaignID uint             `gorm:"not null;index" json:"campaign_id"`
	Tier       int16            `gorm:"not null" json:"tier"`
	Amount     int32            `gorm:"not null" json:"amount"`
	Value      decimal.Decimal  `gorm:"type:decimal(18,8);not null" json:"value"`
	Body       string           `gorm:"type:text" json:"body"`
	Moderated  ModerationReason `gorm:"default:0" json:"moderated"`
	CreatedBy  uint             `gorm:"not null;index" json:"created_by"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

func (Funding) TableName() string {
	return "fundings"
}

func (f *Funding) EntityID() uint      { return f.ID }
func (f *Funding) EntityPubID() string { return f.PubID }
func (f *Funding) AuthorID() uint      { return f.CreatedBy }

func (f *Funding) Snapshot() JSONB {
	return JSONB{"body": f.Body}
}

func (f *Funding) ApplyModeration(action ModerationAction, reason ModerationReason, patch JSONB) {
	f.Moderated |= reason
	if action != ModerationActionRedacted {
		return
	}
	if s, ok := patch.String("body"); ok {
		f.Body = s
	}
}

func (f *Funding) RestoreFrom(snapshot JSONB) {
	f.Moderated = ReasonNone
	if s, ok := snapshot.String("body"); ok {
		f.Body = s
	}
}

// CampaignUpdate is a progress update posted by the campaign owner.
type CampaignUpdate struct {
	ID         uint             `gorm:"primaryKey" json:"id"`
	PubID      string           `gorm:"uniqueIndex;size:64;not null" json:"pub_id"`
	CampaignID uint             `gorm:"not null;index" json:"campaign_id"`
	Body       string           `gorm:"type:text;not null" json:"body"`
	Moderated  ModerationReason `gorm:"default:0" json:"moderated"`
	CreatedBy  uint             `gorm:"not null;index" json:"created_by"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

func (CampaignUpdate) TableName() string {
	return "campaign_updates"
}

func (u *CampaignUpdate) EntityID() uint      { return u.ID }
func (u *CampaignUpdate) EntityPubID() string { return u.PubID }
func (u *CampaignUpdate) AuthorID() uint      { return u.CreatedBy }

func (u *CampaignUpdate) Snapshot() JSONB {
	return JSONB{"body": u.Body}
}

func (u *CampaignUpdate) ApplyModeration(action ModerationAction, reason ModerationReason, patch JSONB) {
	u.Moderated |= reason
	if action != ModerationActionRedacted {
		return
	}
	if s, ok := patch.String("body"); ok {
		u.Body = s
	}
}

func (u *CampaignUpdate) RestoreFrom(snapshot JSONB) {
	u.Moderated = ReasonNone
	if s, ok := snapshot.String("body"); ok {
		u.Body = s
	}
}
