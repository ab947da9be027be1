package models

import (
	"time"
)

type PlaceKind string

const (
	PlaceKindPlanet  PlaceKind = "PLANET"
	PlaceKindCountry PlaceKind = "COUNTRY"
	PlaceKindState   PlaceKind = "STATE"
	PlaceKindCity    PlaceKind = "CITY"
	PlaceKindOther   PlaceKind = "OTHER"
)

// Place is a geographic scope campaigns can be attached to.
type Place struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	PubID       string           `gorm:"uniqueIndex;size:64;not null" json:"pub_id"`
	ParentID    *uint            `gorm:"index" json:"parent_id"`
	Kind        PlaceKind        `gorm:"size:20;not null;index" json:"kind"`
	Name        string           `gorm:"size:255;not null" json:"name"`
	Description string           `gorm:"type:text" json:"description"`
	Lat         float64          `gorm:"type:decimal(10,7)" json:"lat"`
	Lng         float64          `gorm:"type:decimal(10,7)" json:"lng"`
	Moderated   ModerationReason `gorm:"default:0" json:"moderated"`
	CreatedBy   uint             `gorm:"not null;index" json:"created_by"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

func (Place) TableName() string {
	return "places"
}

func (p *Place) EntityID() uint      { return p.ID }
func (p *Place) EntityPubID() string { return p.PubID }
func (p *Place) AuthorID() uint      { return p.CreatedBy }

func (p *Place) Snapshot() JSONB {
	return JSONB{
		"name":        p.Name,
		"description": p.Description,
	}
}

func (p *Place) ApplyModeration(action ModerationAction, reason ModerationReason, patch JSONB) {
	p.Moderated |= reason
	if action != ModerationActionRedacted {
		return
	}
	if v, ok := patch.String("name"); ok {
		p.Name = v
	}
	if v, ok := patch.String("description"); ok {
		p.Description = v
	}
}

func (p *Place) RestoreFrom(snapshot JSONB) {
	p.Moderated = ReasonNone
	if v, ok := snapshot.String("name"); ok {
		p.Name = v
	}
	if v, ok := snapshot.String("description"); ok {
		p.Description = v
	}
}
