package services

import (
	"context"
	"fmt"
	"time"

	"github.com/av1ctor/metamob-sub003/internal/auth"
	"github.com/av1ctor/metamob-sub003/internal/entities"
	"github.com/av1ctor/metamob-sub003/internal/logging"
	"github.com/av1ctor/metamob-sub003/internal/models"
	"github.com/av1ctor/metamob-sub003/internal/repository"

	"gorm.io/gorm"
)

type ChallengeService struct {
	db     *gorm.DB
	repo   *repository.Repository
	reward *RewardService
	audit  *AuditService
}

func NewChallengeService(
	db *gorm.DB,
	repo *repository.Repository,
	reward *RewardService,
	audit *AuditService,
) *ChallengeService {
	return &ChallengeService{
		db:     db,
		repo:   repo,
		reward: reward,
		audit:  audit,
	}
}

// CreateChallenge lets the moderated entity's author dispute a
// moderation. The moderation moves to CHALLENGED; terminal moderations
// and moderations with an open challenge are rejected.
func (s *ChallengeService) CreateChallenge(
	ctx context.Context,
	userID uint,
	req *models.CreateChallengeRequest,
) (*models.Challenge, error) {
	if err := validationError(req.Validate()); err != nil {
		return nil, err
	}

	moderation, err := s.repo.GetModerationByID(ctx, req.ModerationID)
	if err != nil {
		return nil, fmt.Errorf("moderation not found: %w", err)
	}

	if moderation.State.IsTerminal() {
		return nil, ErrTerminalState
	}
	if moderation.State == models.ModerationStateChallenged {
		return nil, ErrAlreadyChallenged
	}

	open, err := s.repo.FindOpenChallengeByModeration(ctx, moderation.ID)
	if err != nil {
		return nil, err
	}
	if open != nil {
		return nil, ErrAlreadyChallenged
	}

	entity, err := entities.FetchByID(ctx, s.db, moderation.EntityType, moderation.EntityID)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !auth.CanChallenge(user, entity.AuthorID()) {
		return nil, ErrForbidden
	}

	var challenge *models.Challenge

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		challenge = &models.Challenge{
			PubID:        models.NewPubID(),
			ModerationID: moderation.ID,
			Description:  req.Description,
			Status:       models.ChallengeStatusOpen,
			Result:       models.ChallengeResultNone,
			CreatedBy:    userID,
		}
		if err := tx.Create(challenge).Error; err != nil {
			return fmt.Errorf("failed to create challenge: %w", err)
		}

		moderation.State = models.ModerationStateChallenged
		return tx.Save(moderation).Error
	})
	if err != nil {
		return nil, err
	}

	logging.WithUser(userID).Infof("challenge %s opened against moderation %s", challenge.PubID, moderation.PubID)

	return challenge, nil
}

// AssignJudge sets the arbiter of an open challenge. The judge must be
// eligible: judge role, not the challenger, not the disputed moderator.
func (s *ChallengeService) AssignJudge(ctx context.Context, challengeID uint, judgeID uint) error {
	challenge, err := s.repo.GetChallengeByID(ctx, challengeID)
	if err != nil {
		return err
	}
	if challenge.Status == models.ChallengeStatusClosed {
		return ErrChallengeClosed
	}

	moderation, err := s.repo.GetModerationByID(ctx, challenge.ModerationID)
	if err != nil {
		return err
	}

	judge, err := s.repo.GetUserByID(ctx, judgeID)
	if err != nil {
		return err
	}
	if !auth.EligibleJudge(judge, challenge.CreatedBy, moderation.CreatedBy) {
		return ErrForbidden
	}

	challenge.JudgeID = &judge.ID
	if err := s.db.WithContext(ctx).Save(challenge).Error; err != nil {
		return fmt.Errorf("failed to assign judge: %w", err)
	}

	s.audit.Log(judge.ID, "ASSIGN_JUDGE", "CHALLENGE", &challenge.ID, nil)
	logging.Infof("judge %d assigned to challenge %s", judge.ID, challenge.PubID)

	return nil
}

// AssignPendingJudges assigns an eligible judge to every open challenge
// that has none yet. Returns the number of assignments made.
func (s *ChallengeService) AssignPendingJudges(ctx context.Context) (int, error) {
	pending, err := s.repo.ListUnassignedOpenChallenges(ctx, 100)
	if err != nil {
		return 0, err
	}

	assigned := 0
	for _, challenge := range pending {
		moderation, err := s.repo.GetModerationByID(ctx, challenge.ModerationID)
		if err != nil {
			logging.Error(err, "failed to load moderation for challenge")
			continue
		}

		judge, err := s.repo.FindEligibleJudge(ctx, challenge.CreatedBy, moderation.CreatedBy)
		if err != nil {
			logging.Error(err, "failed to find eligible judge")
			continue
		}
		if judge == nil {
			// No judge available; the challenge stays queued.
			continue
		}

		challenge.JudgeID = &judge.ID
		if err := s.db.WithContext(ctx).Save(challenge).Error; err != nil {
			logging.Error(err, "failed to assign judge")
			continue
		}
		assigned++
	}

	return assigned, nil
}

// Vote is the assigned judge's verdict and closes the challenge.
// Pro sides with the challenger: the moderation is reverted and the
// entity's original fields are restored from the audit snapshot; the
// report reward is revoked. Against upholds the moderation.
func (s *ChallengeService) Vote(
	ctx context.Context,
	judgeID uint,
	challengePubID string,
	req *models.ChallengeVoteRequest,
) (*models.Challenge, error) {
	if err := validationError(req.Validate()); err != nil {
		return nil, err
	}

	challenge, err := s.repo.GetChallengeByPubID(ctx, challengePubID)
	if err != nil {
		return nil, fmt.Errorf("challenge not found: %w", err)
	}

	if challenge.Status == models.ChallengeStatusClosed {
		return nil, ErrChallengeClosed
	}
	if challenge.JudgeID == nil || *challenge.JudgeID != judgeID {
		return nil, ErrForbidden
	}

	moderation, err := s.repo.GetModerationByID(ctx, challenge.ModerationID)
	if err != nil {
		return nil, err
	}
	if moderation.State.IsTerminal() {
		return nil, ErrTerminalState
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		vote := &models.ChallengeVote{
			ChallengeID: challenge.ID,
			JudgeID:     judgeID,
			Pro:         req.Pro,
			Reason:      req.Reason,
		}
		if err := tx.Create(vote).Error; err != nil {
			return fmt.Errorf("failed to record vote: %w", err)
		}

		now := time.Now()
		challenge.Status = models.ChallengeStatusClosed
		challenge.ClosedAt = &now

		if req.Pro {
			challenge.Result = models.ChallengeResultAccepted
			moderation.State = models.ModerationStateReverted

			entity, err := entities.FetchByID(ctx, tx, moderation.EntityType, moderation.EntityID)
			if err != nil {
				return err
			}
			entity.RestoreFrom(moderation.EntityOrg)
			if err := tx.Save(entity).Error; err != nil {
				return fmt.Errorf("failed to restore entity: %w", err)
			}

			// The report no longer counts as accepted.
			var report models.Report
			if err := tx.Where("id = ?", moderation.ReportID).First(&report).Error; err == nil {
				report.State = models.ReportStateIgnored
				if err := tx.Save(&report).Error; err != nil {
					return err
				}
			}
			if err := s.reward.Revoke(tx, moderation.ReportID); err != nil {
				return err
			}
		} else {
			challenge.Result = models.ChallengeResultRejected
			moderation.State = models.ModerationStateConfirmed
		}

		if err := tx.Save(challenge).Error; err != nil {
			return fmt.Errorf("failed to close challenge: %w", err)
		}
		return tx.Save(moderation).Error
	})
	if err != nil {
		return nil, err
	}

	s.audit.Log(judgeID, "VOTE_CHALLENGE", "CHALLENGE", &challenge.ID,
		map[string]interface{}{
			"pro":    req.Pro,
			"result": challenge.Result,
		})

	logging.WithUser(judgeID).Infof("challenge %s closed: %s, moderation %s",
		challenge.PubID, challenge.Result, moderation.State)

	return challenge, nil
}

// GetChallenge retrieves a challenge by public ID
func (s *ChallengeService) GetChallenge(ctx context.Context, pubID string) (*models.Challenge, error) {
	return s.repo.GetChallengeByPubID(ctx, pubID)
}

// ListByJudge retrieves the challenges assigned to a judge.
func (s *ChallengeService) ListByJudge(
	ctx context.Context,
	judgeID uint,
	status models.ChallengeStatus,
	limit, offset int,
) ([]*models.Challenge, bool, error) {
	return s.repo.ListChallengesByJudge(ctx, judgeID, status, limit, offset)
}

// ListByUser retrieves the challenges a user opened.
func (s *ChallengeService) ListByUser(
	ctx context.Context,
	userID uint,
	limit, offset int,
) ([]*models.Challenge, bool, error) {
	return s.repo.ListChallengesByUser(ctx, userID, limit, offset)
}

// Votes lists the votes cast on a challenge.
func (s *ChallengeService) Votes(ctx context.Context, challengeID uint) ([]*models.ChallengeVote, error) {
	return s.repo.ListChallengeVotes(ctx, challengeID)
}
