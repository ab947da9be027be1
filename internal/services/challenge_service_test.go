package services

import (
	"context"
	"errors"
	"testing"

	"github.com/av1ctor/metamob-sub003/internal/models"
	"github.com/av1ctor/metamob-sub003/internal/repository"
)

type challengeFixture struct {
	repo       *repository.Repository
	moderation *ModerationService
	challenge  *ChallengeService
	reward     *RewardService

	owner     *models.User
	reporter  *models.User
	moderator *models.User
	judge     *models.User
	campaign  *models.Campaign
	decision  *models.Moderation
}

// setupChallengeFixture moderates a reported campaign so tests start
// from a CREATED moderation.
func setupChallengeFixture(t *testing.T) (*challengeFixture, func() *models.Challenge) {
	db := setupTestDB(t)
	repo := repository.NewRepository(db)
	reward := NewRewardService(db, "1")
	audit := NewAuditService(db)

	f := &challengeFixture{
		repo:       repo,
		moderation: NewModerationService(db, repo, reward, audit),
		challenge:  NewChallengeService(db, repo, reward, audit),
		reward:     reward,
		owner:      createTestUser(t, db, "owner", models.UserRoleUser),
		reporter:   createTestUser(t, db, "reporter", models.UserRoleUser),
		moderator:  createTestUser(t, db, "moderator", models.UserRoleModerator),
		judge:      createTestUser(t, db, "judge", models.UserRoleJudge),
	}
	f.campaign = createTestCampaign(t, db, f.owner)
	report := createTestReport(t, db, f.campaign, f.reporter)

	decision, err := f.moderation.Moderate(context.Background(), f.moderator.ID, &models.ModerationRequest{
		ReportID: report.ID,
		Reason:   models.ReasonOffensive,
		Action:   models.ModerationActionRedacted,
		Body:     "Offensive wording removed from the body.",
		Patch:    models.JSONB{"body": "[redacted]"},
	})
	if err != nil {
		t.Fatalf("Moderate failed: %v", err)
	}
	f.decision = decision

	openChallenge := func() *models.Challenge {
		challenge, err := f.challenge.CreateChallenge(context.Background(), f.owner.ID, &models.CreateChallengeRequest{
			ModerationID: decision.ID,
			Description:  "The wording was a quote, not an attack.",
		})
		if err != nil {
			t.Fatalf("CreateChallenge failed: %v", err)
		}
		if err := f.challenge.AssignJudge(context.Background(), challenge.ID, f.judge.ID); err != nil {
			t.Fatalf("AssignJudge failed: %v", err)
		}
		return challenge
	}

	return f, openChallenge
}

func TestCreateChallenge(t *testing.T) {
	f, _ := setupChallengeFixture(t)

	challenge, err := f.challenge.CreateChallenge(context.Background(), f.owner.ID, &models.CreateChallengeRequest{
		ModerationID: f.decision.ID,
		Description:  "The wording was a quote, not an attack.",
	})
	if err != nil {
		t.Fatalf("CreateChallenge failed: %v", err)
	}
	if challenge.Status != models.ChallengeStatusOpen {
		t.Errorf("expected status OPEN, got %s", challenge.Status)
	}

	reloaded, err := f.repo.GetModerationByID(context.Background(), f.decision.ID)
	if err != nil {
		t.Fatalf("failed to reload moderation: %v", err)
	}
	if reloaded.State != models.ModerationStateChallenged {
		t.Errorf("expected moderation CHALLENGED, got %s", reloaded.State)
	}

	// A second challenge against the same moderation is rejected.
	_, err = f.challenge.CreateChallenge(context.Background(), f.owner.ID, &models.CreateChallengeRequest{
		ModerationID: f.decision.ID,
		Description:  "Trying to dispute this a second time.",
	})
	if !errors.Is(err, ErrAlreadyChallenged) {
		t.Errorf("expected ErrAlreadyChallenged, got %v", err)
	}
}

func TestCreateChallengeOnlyAuthor(t *testing.T) {
	f, _ := setupChallengeFixture(t)

	_, err := f.challenge.CreateChallenge(context.Background(), f.reporter.ID, &models.CreateChallengeRequest{
		ModerationID: f.decision.ID,
		Description:  "I am not the author but I object anyway.",
	})
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}

func TestCreateChallengeValidationBeforeLookup(t *testing.T) {
	f, _ := setupChallengeFixture(t)

	// Short description fails validation even though the moderation id
	// does not exist; no lookup happens.
	_, err := f.challenge.CreateChallenge(context.Background(), f.owner.ID, &models.CreateChallengeRequest{
		ModerationID: 9999,
		Description:  "short",
	})
	var validation *ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestVoteProRevertsModeration(t *testing.T) {
	f, open := setupChallengeFixture(t)
	challenge := open()

	closed, err := f.challenge.Vote(context.Background(), f.judge.ID, challenge.PubID, &models.ChallengeVoteRequest{
		Reason: "The redaction was unjustified, original restored.",
		Pro:    true,
	})
	if err != nil {
		t.Fatalf("Vote failed: %v", err)
	}

	if closed.Status != models.ChallengeStatusClosed {
		t.Errorf("expected status CLOSED, got %s", closed.Status)
	}
	if closed.Result != models.ChallengeResultAccepted {
		t.Errorf("expected result ACCEPTED, got %s", closed.Result)
	}
	if closed.ClosedAt == nil {
		t.Error("expected closed_at to be set")
	}

	moderation, _ := f.repo.GetModerationByID(context.Background(), f.decision.ID)
	if moderation.State != models.ModerationStateReverted {
		t.Errorf("expected moderation REVERTED, got %s", moderation.State)
	}

	// The entity's original fields are restored and the flag cleared.
	var campaign models.Campaign
	f.repo.DB().First(&campaign, f.campaign.ID)
	if campaign.Body != f.campaign.Body {
		t.Errorf("expected original body restored, got %q", campaign.Body)
	}
	if campaign.Moderated != models.ReasonNone {
		t.Errorf("expected moderation flags cleared, got %d", campaign.Moderated)
	}

	// The report no longer counts and its reward is revoked.
	var report models.Report
	f.repo.DB().First(&report, f.decision.ReportID)
	if report.State != models.ReportStateIgnored {
		t.Errorf("expected report IGNORED, got %s", report.State)
	}
	balance, _ := f.reward.Balance(context.Background(), f.reporter.ID)
	if !balance.IsZero() {
		t.Errorf("expected reward revoked, balance %s", balance)
	}
}

func TestVoteAgainstConfirmsModeration(t *testing.T) {
	f, open := setupChallengeFixture(t)
	challenge := open()

	closed, err := f.challenge.Vote(context.Background(), f.judge.ID, challenge.PubID, &models.ChallengeVoteRequest{
		Reason: "The moderation was correct and stays in force.",
		Pro:    false,
	})
	if err != nil {
		t.Fatalf("Vote failed: %v", err)
	}
	if closed.Result != models.ChallengeResultRejected {
		t.Errorf("expected result REJECTED, got %s", closed.Result)
	}

	moderation, _ := f.repo.GetModerationByID(context.Background(), f.decision.ID)
	if moderation.State != models.ModerationStateConfirmed {
		t.Errorf("expected moderation CONFIRMED, got %s", moderation.State)
	}

	// The redaction stays and the reporter keeps the reward.
	var campaign models.Campaign
	f.repo.DB().First(&campaign, f.campaign.ID)
	if campaign.Body != "[redacted]" {
		t.Errorf("expected redaction kept, got %q", campaign.Body)
	}
	balance, _ := f.reward.Balance(context.Background(), f.reporter.ID)
	if balance.IsZero() {
		t.Error("expected reporter to keep the reward")
	}

	// Terminal moderations cannot be challenged again.
	_, err = f.challenge.CreateChallenge(context.Background(), f.owner.ID, &models.CreateChallengeRequest{
		ModerationID: f.decision.ID,
		Description:  "Disputing the confirmed moderation again.",
	})
	if !errors.Is(err, ErrTerminalState) {
		t.Errorf("expected ErrTerminalState, got %v", err)
	}
}

func TestVoteOnlyAssignedJudge(t *testing.T) {
	f, open := setupChallengeFixture(t)
	challenge := open()

	other := createTestUser(t, f.repo.DB(), "other-judge", models.UserRoleJudge)
	_, err := f.challenge.Vote(context.Background(), other.ID, challenge.PubID, &models.ChallengeVoteRequest{
		Reason: "I was never assigned to this dispute.",
		Pro:    true,
	})
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}

func TestVoteClosedChallenge(t *testing.T) {
	f, open := setupChallengeFixture(t)
	challenge := open()

	if _, err := f.challenge.Vote(context.Background(), f.judge.ID, challenge.PubID, &models.ChallengeVoteRequest{
		Reason: "The moderation was correct and stays in force.",
		Pro:    false,
	}); err != nil {
		t.Fatalf("Vote failed: %v", err)
	}

	_, err := f.challenge.Vote(context.Background(), f.judge.ID, challenge.PubID, &models.ChallengeVoteRequest{
		Reason: "Changing my mind after the fact.",
		Pro:    true,
	})
	if !errors.Is(err, ErrChallengeClosed) {
		t.Errorf("expected ErrChallengeClosed, got %v", err)
	}
}

func TestAssignJudgeEligibility(t *testing.T) {
	f, _ := setupChallengeFixture(t)

	challenge, err := f.challenge.CreateChallenge(context.Background(), f.owner.ID, &models.CreateChallengeRequest{
		ModerationID: f.decision.ID,
		Description:  "The wording was a quote, not an attack.",
	})
	if err != nil {
		t.Fatalf("CreateChallenge failed: %v", err)
	}

	// Neither a plain user, nor the challenger, nor the moderator may judge.
	if err := f.challenge.AssignJudge(context.Background(), challenge.ID, f.reporter.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("plain user: expected ErrForbidden, got %v", err)
	}
	if err := f.challenge.AssignJudge(context.Background(), challenge.ID, f.owner.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("challenger: expected ErrForbidden, got %v", err)
	}
	if err := f.challenge.AssignJudge(context.Background(), challenge.ID, f.moderator.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("moderator: expected ErrForbidden, got %v", err)
	}

	if err := f.challenge.AssignJudge(context.Background(), challenge.ID, f.judge.ID); err != nil {
		t.Errorf("eligible judge rejected: %v", err)
	}
}

func TestAssignPendingJudges(t *testing.T) {
	f, _ := setupChallengeFixture(t)

	challenge, err := f.challenge.CreateChallenge(context.Background(), f.owner.ID, &models.CreateChallengeRequest{
		ModerationID: f.decision.ID,
		Description:  "The wording was a quote, not an attack.",
	})
	if err != nil {
		t.Fatalf("CreateChallenge failed: %v", err)
	}

	assigned, err := f.challenge.AssignPendingJudges(context.Background())
	if err != nil {
		t.Fatalf("AssignPendingJudges failed: %v", err)
	}
	if assigned != 1 {
		t.Errorf("expected 1 assignment, got %d", assigned)
	}

	reloaded, _ := f.challenge.GetChallenge(context.Background(), challenge.PubID)
	if reloaded.JudgeID == nil || *reloaded.JudgeID != f.judge.ID {
		t.Errorf("expected judge %d assigned, got %v", f.judge.ID, reloaded.JudgeID)
	}
}
