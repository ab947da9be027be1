package models

import (
	"time"
)

// ReportKind is the reason a user gave when flagging an entity.
type ReportKind int16

const (
	ReportKindFake         ReportKind = 0
	ReportKindNudity       ReportKind = 1
	ReportKindHate         ReportKind = 2
	ReportKindSpam         ReportKind = 3
	ReportKindConfidential ReportKind = 4
	ReportKindCopyright    ReportKind = 5
	ReportKindOffensive    ReportKind = 6
	ReportKindOther        ReportKind = 99
)

func (k ReportKind) IsValid() bool {
	switch k {
	case ReportKindFake, ReportKindNudity, ReportKindHate, ReportKindSpam,
		ReportKindConfidential, ReportKindCopyright, ReportKindOffensive, ReportKindOther:
		return true
	}
	return false
}

type ReportState string

const (
	ReportStatePending   ReportState = "PENDING"
	ReportStateModerated ReportState = "MODERATED"
	ReportStateIgnored   ReportState = "IGNORED"
)

// Report is a user-submitted flag on an entity, opening a pending
// moderation case. The same user may report a given entity only once.
type Report struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	PubID       string      `gorm:"uniqueIndex;size:64;not null" json:"pub_id"`
	EntityType  EntityType  `gorm:"size:20;not null;uniqueIndex:idx_reports_entity_user" json:"entity_type"`
	EntityID    uint        `gorm:"not null;uniqueIndex:idx_reports_entity_user" json:"entity_id"`
	EntityPubID string      `gorm:"size:64;not null" json:"entity_pub_id"`
	Kind        ReportKind  `gorm:"not null" json:"kind"`
	Description string      `gorm:"type:text;not null" json:"description"`
	State       ReportState `gorm:"size:20;not null;default:PENDING;index" json:"state"`
	CreatedBy   uint        `gorm:"not null;uniqueIndex:idx_reports_entity_user" json:"created_by"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

func (Report) TableName() string {
	return "reports"
}

// CreateReportRequest is the report-intake payload.
type CreateReportRequest struct {
	EntityType  EntityType `json:"entity_type" binding:"required"`
	EntityPubID string     `json:"entity_pub_id" binding:"required"`
	Kind        ReportKind `json:"kind"`
	Description string     `json:"description" binding:"required,min=10,max=4096"`
}

func (r *CreateReportRequest) Validate() []FieldError {
	var errs []FieldError
	if r.Kind < 0 || !r.Kind.IsValid() {
		errs = append(errs, FieldError{Field: "kind", Message: "invalid report kind"})
	}
	if len(r.Description) < 10 || len(r.Description) > 4096 {
		errs = append(errs, FieldError{Field: "description", Message: "description must be between 10 and 4096 characters"})
	}
	if r.EntityPubID == "" {
		errs = append(errs, FieldError{Field: "entity_pub_id", Message: "entity public id is required"})
	}
	return errs
}
