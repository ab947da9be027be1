package auth

import (
	"github.com/av1ctor/metamob-sub003/internal/models"
)

// Authorization predicates. Every role check in the codebase goes
// through here so policy changes happen in one place.

// CanModerate reports whether the role may issue moderation decisions.
func CanModerate(role models.UserRole) bool {
	return role == models.UserRoleModerator || role == models.UserRoleAdmin
}

// CanJudge reports whether the role may adjudicate challenges.
func CanJudge(role models.UserRole) bool {
	return role == models.UserRoleJudge || role == models.UserRoleAdmin
}

// IsAdmin reports whether the role has full administrative access.
func IsAdmin(role models.UserRole) bool {
	return role == models.UserRoleAdmin
}

// CanChallenge reports whether the given user may open a challenge
// against a moderation of the given entity author.
func CanChallenge(user *models.User, entityAuthorID uint) bool {
	if user == nil || user.Banned {
		return false
	}
	return user.ID == entityAuthorID
}

// EligibleJudge reports whether a user may be assigned as the arbiter
// of a challenge: judge role, not the challenger and not the moderator
// whose decision is disputed.
func EligibleJudge(user *models.User, challengerID, moderatorID uint) bool {
	if user == nil || user.Banned {
		return false
	}
	if !CanJudge(user.Role) {
		return false
	}
	return user.ID != challengerID && user.ID != moderatorID
}
