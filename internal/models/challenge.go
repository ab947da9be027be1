package models

import (
	"time"
)

type ChallengeStatus string

const (
	ChallengeStatusOpen   ChallengeStatus = "OPEN"
	ChallengeStatusClosed ChallengeStatus = "CLOSED"
)

type ChallengeResult string

const (
	ChallengeResultNone     ChallengeResult = "NONE"
	ChallengeResultAccepted ChallengeResult = "ACCEPTED" // judge sided with the challenger, moderation reverted
	ChallengeResultRejected ChallengeResult = "REJECTED" // moderation upheld
)

// Challenge is the original author's dispute of a moderation decision.
// A moderation has at most one non-closed challenge at a time.
type Challenge struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	PubID        string          `gorm:"uniqueIndex;size:64;not null" json:"pub_id"`
	ModerationID uint            `gorm:"not null;index" json:"moderation_id"`
	Moderation   *Moderation     `gorm:"foreignKey:ModerationID" json:"moderation,omitempty"`
	Description  string          `gorm:"type:text;not null" json:"description"`
	Status       ChallengeStatus `gorm:"size:20;not null;default:OPEN;index" json:"status"`
	Result       ChallengeResult `gorm:"size:20;not null;default:NONE" json:"result"`
	JudgeID      *uint           `gorm:"index" json:"judge_id"`
	Judge        *User           `gorm:"foreignKey:JudgeID" json:"judge,omitempty"`
	CreatedBy    uint            `gorm:"not null;index" json:"created_by"`
	CreatedAt    time.Time       `json:"created_at"`
	ClosedAt     *time.Time      `json:"closed_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func (Challenge) TableName() string {
	return "challenges"
}

// ChallengeVote is the judge's decision on a challenge. Pro means the
// judge sides with the challenger: the moderation is reverted.
type ChallengeVote struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ChallengeID uint      `gorm:"not null;index" json:"challenge_id"`
	JudgeID     uint      `gorm:"not null;index" json:"judge_id"`
	Pro         bool      `gorm:"not null" json:"pro"`
	Reason      string    `gorm:"type:text;not null" json:"reason"`
	CreatedAt   time.Time `json:"created_at"`
}

func (ChallengeVote) TableName() string {
	return "challenge_votes"
}

// CreateChallengeRequest opens a dispute against a moderation.
type CreateChallengeRequest struct {
	ModerationID uint   `json:"moderation_id" binding:"required"`
	Description  string `json:"description" binding:"required,min=10,max=2048"`
}

func (r *CreateChallengeRequest) Validate() []FieldError {
	var errs []FieldError
	if r.ModerationID == 0 {
		errs = append(errs, FieldError{Field: "moderation_id", Message: "moderation id is required"})
	}
	if len(r.Description) < 10 || len(r.Description) > 2048 {
		errs = append(errs, FieldError{Field: "description", Message: "description must be between 10 and 2048 characters"})
	}
	return errs
}

// ChallengeVoteRequest carries the judge's verdict.
type ChallengeVoteRequest struct {
	Reason string `json:"reason" binding:"required,min=10,max=2048"`
	Pro    bool   `json:"pro"`
}

func (r *ChallengeVoteRequest) Validate() []FieldError {
	var errs []FieldError
	if len(r.Reason) < 10 || len(r.Reason) > 2048 {
		errs = append(errs, FieldError{Field: "reason", Message: "reason must be between 10 and 2048 characters"})
	}
	return errs
}
