package models

import (
	"time"
)

// ModerationReason is a bitmask of the reasons a moderator selected.
type ModerationReason uint32

const (
	ReasonNone         ModerationReason = 0
	ReasonFake         ModerationReason = 1 << 0
	ReasonNudity       ModerationReason = 1 << 1
	ReasonHate         ModerationReason = 1 << 2
	ReasonSpam         ModerationReason = 1 << 3
	ReasonConfidential ModerationReason = 1 << 4
	ReasonCopyright    ModerationReason = 1 << 5
	ReasonOffensive    ModerationReason = 1 << 6
	ReasonOther        ModerationReason = 1 << 7
)

type ModerationAction string

const (
	ModerationActionFlagged  ModerationAction = "FLAGGED"
	ModerationActionRedacted ModerationAction = "REDACTED"
)

type ModerationState string

const (
	ModerationStateCreated    ModerationState = "CREATED"
	ModerationStateChallenged ModerationState = "CHALLENGED"
	ModerationStateConfirmed  ModerationState = "CONFIRMED"
	ModerationStateReverted   ModerationState = "REVERTED"
)

// IsTerminal reports whether no further challenge or vote may change the state.
func (s ModerationState) IsTerminal() bool {
	return s == ModerationStateConfirmed || s == ModerationStateReverted
}

// Moderation records a moderator's decision on a reported entity.
// EntityOrg snapshots the original entity fields so a reverting judge
// can restore them and auditors can diff what was changed.
type Moderation struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	PubID       string           `gorm:"uniqueIndex;size:64;not null" json:"pub_id"`
	ReportID    uint             `gorm:"not null;index" json:"report_id"`
	Report      *Report          `gorm:"foreignKey:ReportID" json:"report,omitempty"`
	EntityType  EntityType       `gorm:"size:20;not null;index:idx_moderations_entity" json:"entity_type"`
	EntityID    uint             `gorm:"not null;index:idx_moderations_entity" json:"entity_id"`
	EntityPubID string           `gorm:"size:64;not null" json:"entity_pub_id"`
	Reason      ModerationReason `gorm:"not null" json:"reason"`
	Action      ModerationAction `gorm:"size:20;not null" json:"action"`
	Body        string           `gorm:"type:text;not null" json:"body"`
	EntityOrg   JSONB            `gorm:"type:jsonb" json:"entity_org"`
	State       ModerationState  `gorm:"size:20;not null;default:CREATED;index" json:"state"`
	CreatedBy   uint             `gorm:"not null;index" json:"created_by"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

func (Moderation) TableName() string {
	return "moderations"
}

// ModerationRequest is the combined entity-moderate request: the decision
// plus the redaction patch, applied atomically by the backend.
type ModerationRequest struct {
	ReportID uint             `json:"report_id" binding:"required"`
	Reason   ModerationReason `json:"reason" binding:"required"`
	Action   ModerationAction `json:"action" binding:"required"`
	Body     string           `json:"body" binding:"required,min=10,max=4096"`
	Patch    JSONB            `json:"patch"`
}

const validReasonMask = ReasonFake | ReasonNudity | ReasonHate | ReasonSpam |
	ReasonConfidential | ReasonCopyright | ReasonOffensive | ReasonOther

// Validate collects field-level validation errors. Validation happens
// before any persistence is attempted.
func (r *ModerationRequest) Validate() []FieldError {
	var errs []FieldError
	if r.ReportID == 0 {
		errs = append(errs, FieldError{Field: "report_id", Message: "report id is required"})
	}
	if r.Reason == ReasonNone || r.Reason&^validReasonMask != 0 {
		errs = append(errs, FieldError{Field: "reason", Message: "invalid moderation reason"})
	}
	if r.Action != ModerationActionFlagged && r.Action != ModerationActionRedacted {
		errs = append(errs, FieldError{Field: "action", Message: "invalid moderation action"})
	}
	if len(r.Body) < 10 || len(r.Body) > 4096 {
		errs = append(errs, FieldError{Field: "body", Message: "body must be between 10 and 4096 characters"})
	}
	return errs
}

// RequestFor rebuilds the request a moderation was created from, so a
// form repopulated from an existing decision round-trips exactly.
func (m *Moderation) RequestFor() ModerationRequest {
	return ModerationRequest{
		ReportID: m.ReportID,
		Reason:   m.Reason,
		Action:   m.Action,
		Body:     m.Body,
	}
}

// FieldError is a typed, per-field validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}
