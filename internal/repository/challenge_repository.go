package repository

import (
	"context"
	"errors"

	"github.com/av1ctor/metamob-sub003/internal/models"

	"gorm.io/gorm"
)

// GetChallengeByID retrieves a challenge by ID
func (r *Repository) GetChallengeByID(ctx context.Context, id uint) (*models.Challenge, error) {
	var challenge models.Challenge
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&challenge).Error
	if err != nil {
		return nil, err
	}
	return &challenge, nil
}

// GetChallengeByPubID retrieves a challenge by public ID
func (r *Repository) GetChallengeByPubID(ctx context.Context, pubID string) (*models.Challenge, error) {
	var challenge models.Challenge
	err := r.db.WithContext(ctx).Where("pub_id = ?", pubID).First(&challenge).Error
	if err != nil {
		return nil, err
	}
	return &challenge, nil
}

// FindOpenChallengeByModeration returns the non-closed challenge against
// a moderation, or nil when there is none.
func (r *Repository) FindOpenChallengeByModeration(ctx context.Context, moderationID uint) (*models.Challenge, error) {
	var challenge models.Challenge
	err := r.db.WithContext(ctx).
		Where("moderation_id = ? AND status != ?", moderationID, models.ChallengeStatusClosed).
		First(&challenge).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &challenge, nil
}

// ListChallengesByJudge retrieves challenges assigned to a judge.
func (r *Repository) ListChallengesByJudge(
	ctx context.Context,
	judgeID uint,
	status models.ChallengeStatus,
	limit, offset int,
) ([]*models.Challenge, bool, error) {
	limit, offset = clampPage(limit, offset)

	query := r.db.WithContext(ctx).Where("judge_id = ?", judgeID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var challenges []*models.Challenge
	err := query.
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&challenges).Error
	if err != nil {
		return nil, false, err
	}

	return challenges, len(challenges) == limit, nil
}

// ListChallengesByUser retrieves challenges opened by a user.
func (r *Repository) ListChallengesByUser(
	ctx context.Context,
	userID uint,
	limit, offset int,
) ([]*models.Challenge, bool, error) {
	limit, offset = clampPage(limit, offset)

	var challenges []*models.Challenge
	err := r.db.WithContext(ctx).
		Where("created_by = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&challenges).Error
	if err != nil {
		return nil, false, err
	}

	return challenges, len(challenges) == limit, nil
}

// ListUnassignedOpenChallenges retrieves open challenges waiting for a judge.
func (r *Repository) ListUnassignedOpenChallenges(ctx context.Context, limit int) ([]*models.Challenge, error) {
	if limit <= 0 {
		limit = 100
	}

	var challenges []*models.Challenge
	err := r.db.WithContext(ctx).
		Where("status = ? AND judge_id IS NULL", models.ChallengeStatusOpen).
		Order("created_at ASC").
		Limit(limit).
		Find(&challenges).Error
	if err != nil {
		return nil, err
	}

	return challenges, nil
}

// FindEligibleJudge picks the judge with the fewest open assignments,
// excluding the challenger and the moderator being disputed.
func (r *Repository) FindEligibleJudge(ctx context.Context, excluded ...uint) (*models.User, error) {
	query := r.db.WithContext(ctx).
		Where("role IN ? AND banned = ?", []models.UserRole{models.UserRoleJudge, models.UserRoleAdmin}, false)
	if len(excluded) > 0 {
		query = query.Where("id NOT IN ?", excluded)
	}

	var judge models.User
	err := query.
		Order("(SELECT COUNT(*) FROM challenges WHERE challenges.judge_id = users.id AND challenges.status = 'OPEN') ASC").
		First(&judge).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &judge, nil
}

// ListChallengeVotes retrieves the votes cast on a challenge.
func (r *Repository) ListChallengeVotes(ctx context.Context, challengeID uint) ([]*models.ChallengeVote, error) {
	var votes []*models.ChallengeVote
	err := r.db.WithContext(ctx).
		Where("challenge_id = ?", challengeID).
		Order("created_at ASC").
		Find(&votes).Error
	if err != nil {
		return nil, err
	}
	return votes, nil
}
