package models

import (
	"time"
)

type CampaignKind string

const (
	CampaignKindSignatures CampaignKind = "SIGNATURES"
	CampaignKindVotes      CampaignKind = "VOTES"
	CampaignKindDonations  CampaignKind = "DONATIONS"
	CampaignKindFundings   CampaignKind = "FUNDINGS"
)

type CampaignState string

const (
	CampaignStateCreated   CampaignState = "CREATED"
	CampaignStatePublished CampaignState = "PUBLISHED"
	CampaignStateFinished  CampaignState = "FINISHED"
	CampaignStateCancelled CampaignState = "CANCELLED"
)

// Campaign is a mobilization campaign collecting signatures, votes,
// donations or fundings against a target.
type Campaign struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	PubID     string           `gorm:"uniqueIndex;size:64;not null" json:"pub_id"`
	Kind      CampaignKind     `gorm:"size:20;not null;index" json:"kind"`
	Title     string           `gorm:"size:255;not null" json:"title"`
	Target    string           `gorm:"size:255;not null" json:"target"`
	Body      string           `gorm:"type:text;not null" json:"body"`
	Cover     *string          `gorm:"size:500" json:"cover,omitempty"`
	State     CampaignState    `gorm:"size:20;not null;default:CREATED;index" json:"state"`
	PlaceID   *uint            `gorm:"index" json:"place_id"`
	Place     *Place           `gorm:"foreignKey:PlaceID" json:"place,omitempty"`
	Total     int64            `gorm:"default:0" json:"total"`
	Moderated ModerationReason `gorm:"default:0" json:"moderated"`
	CreatedBy uint             `gorm:"not null;index" json:"created_by"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

func (Campaign) TableName() string {
	return "campaigns"
}

func (c *Campaign) EntityID() uint      { return c.ID }
func (c *Campaign) EntityPubID() string { return c.PubID }
func (c *Campaign) AuthorID() uint      { return c.CreatedBy }

func (c *Campaign) Snapshot() JSONB {
	return JSONB{
		"title":  c.Title,
		"target": c.Target,
		"body":   c.Body,
		"cover":  strOrEmpty(c.Cover),
	}
}

func (c *Campaign) ApplyModeration(action ModerationAction, reason ModerationReason, patch JSONB) {
	c.Moderated |= reason
	if action != ModerationActionRedacted {
		return
	}
	if v, ok := patch.String("title"); ok {
		c.Title = v
	}
	if v, ok := patch.String("target"); ok {
		c.Target = v
	}
	if v, ok := patch.String("body"); ok {
		c.Body = v
	}
	if v, ok := patch.String("cover"); ok {
		c.Cover = &v
	}
}

func (c *Campaign) RestoreFrom(snapshot JSONB) {
	c.Moderated = ReasonNone
	if v, ok := snapshot.String("title"); ok {
		c.Title = v
	}
	if v, ok := snapshot.String("target"); ok {
		c.Target = v
	}
	if v, ok := snapshot.String("body"); ok {
		c.Body = v
	}
	if v, ok := snapshot.String("cover"); ok && v != "" {
		c.Cover = &v
	}
}

// CreateCampaignRequest creates a new campaign.
type CreateCampaignRequest struct {
	Kind    CampaignKind `json:"kind" binding:"required"`
	Title   string       `json:"title" binding:"required,min=10,max=255"`
	Target  string       `json:"target" binding:"required,max=255"`
	Body    string       `json:"body" binding:"required,min=10"`
	Cover   *string      `json:"cover"`
	PlaceID *uint        `json:"place_id"`
}

// UpdateCampaignRequest edits a campaign's mutable fields.
type UpdateCampaignRequest struct {
	Title  string  `json:"title" binding:"required,min=10,max=255"`
	Target string  `json:"target" binding:"required,max=255"`
	Body   string  `json:"body" binding:"required,min=10"`
	Cover  *string `json:"cover"`
}
