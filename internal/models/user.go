package models

import (
	"time"
)

type UserRole string

const (
	UserRoleUser      UserRole = "USER"
	UserRoleModerator UserRole = "MODERATOR"
	UserRoleJudge     UserRole = "JUDGE"
	UserRoleAdmin     UserRole = "ADMIN"
)

// User represents a user in the system. Users are themselves moderable
// entities (profile name, email and avatar can be redacted).
type User struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	PubID     string           `gorm:"uniqueIndex;size:64;not null" json:"pub_id"`
	Principal string           `gorm:"uniqueIndex;not null" json:"principal"`
	Name      string           `gorm:"size:255;not null" json:"name"`
	Email     string           `gorm:"size:255" json:"email,omitempty"`
	AvatarURL *string          `gorm:"size:500" json:"avatar_url,omitempty"`
	Role      UserRole         `gorm:"size:20;not null;default:USER;index" json:"role"`
	Banned    bool             `gorm:"default:false" json:"banned"`
	Moderated ModerationReason `gorm:"default:0" json:"moderated"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// TableName specifies the table name for User model
func (User) TableName() string {
	return "users"
}

func (u *User) EntityID() uint      { return u.ID }
func (u *User) EntityPubID() string { return u.PubID }
func (u *User) AuthorID() uint      { return u.ID }

func (u *User) Snapshot() JSONB {
	return JSONB{
		"name":   u.Name,
		"email":  u.Email,
		"avatar": strOrEmpty(u.AvatarURL),
	}
}

func (u *User) ApplyModeration(action ModerationAction, reason ModerationReason, patch JSONB) {
	u.Moderated |= reason
	if action != ModerationActionRedacted {
		return
	}
	if v, ok := patch.String("name"); ok {
		u.Name = v
	}
	if v, ok := patch.String("email"); ok {
		u.Email = v
	}
	if v, ok := patch.String("avatar"); ok {
		u.AvatarURL = &v
	}
}

func (u *User) RestoreFrom(snapshot JSONB) {
	u.Moderated = ReasonNone
	if v, ok := snapshot.String("name"); ok {
		u.Name = v
	}
	if v, ok := snapshot.String("email"); ok {
		u.Email = v
	}
	if v, ok := snapshot.String("avatar"); ok && v != "" {
		u.AvatarURL = &v
	}
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
