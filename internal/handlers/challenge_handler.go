package handlers

import (
	"net/http"
	"strconv"

	"github.com/av1ctor/metamob-sub003/internal/auth"
	"github.com/av1ctor/metamob-sub003/internal/models"
	"github.com/av1ctor/metamob-sub003/internal/services"

	"github.com/gin-gonic/gin"
)

type ChallengeHandler struct {
	challengeService *services.ChallengeService
}

func NewChallengeHandler(challengeService *services.ChallengeService) *ChallengeHandler {
	return &ChallengeHandler{challengeService: challengeService}
}

// CreateChallenge disputes a moderation
// POST /api/challenges
func (h *ChallengeHandler) CreateChallenge(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req models.CreateChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	challenge, err := h.challengeService.CreateChallenge(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": challenge})
}

// GetChallenge retrieves a challenge by public ID
// GET /api/challenges/:pubId
func (h *ChallengeHandler) GetChallenge(c *gin.Context) {
	challenge, err := h.challengeService.GetChallenge(c.Request.Context(), c.Param("pubId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "challenge not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": challenge})
}

// Vote records the assigned judge's verdict and closes the challenge
// POST /api/judge/challenges/:pubId/vote
func (h *ChallengeHandler) Vote(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req models.ChallengeVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	challenge, err := h.challengeService.Vote(c.Request.Context(), userID, c.Param("pubId"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": challenge})
}

// ListVotes lists the votes cast on a challenge
// GET /api/challenges/:pubId/votes
func (h *ChallengeHandler) ListVotes(c *gin.Context) {
	challenge, err := h.challengeService.GetChallenge(c.Request.Context(), c.Param("pubId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "challenge not found"})
		return
	}

	votes, err := h.challengeService.Votes(c.Request.Context(), challenge.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list votes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": votes})
}

// ListAssigned lists the challenges assigned to the calling judge
// GET /api/judge/challenges?status=OPEN
func (h *ChallengeHandler) ListAssigned(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	limit, offset := pageParams(c)
	status := models.ChallengeStatus(c.Query("status"))

	challenges, hasMore, err := h.challengeService.ListByJudge(c.Request.Context(), userID, status, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list challenges"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":     challenges,
		"has_more": hasMore,
	})
}

// ListMine lists the challenges the calling user opened
// GET /api/challenges/mine
func (h *ChallengeHandler) ListMine(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	limit, offset := pageParams(c)
	challenges, hasMore, err := h.challengeService.ListByUser(c.Request.Context(), userID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list challenges"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":     challenges,
		"has_more": hasMore,
	})
}

// AssignJudge manually assigns an eligible judge to an open challenge
// POST /api/admin/challenges/:id/judge
func (h *ChallengeHandler) AssignJudge(c *gin.Context) {
	challengeID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid challenge id"})
		return
	}

	var req struct {
		JudgeID uint `json:"judge_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.challengeService.AssignJudge(c.Request.Context(), uint(challengeID), req.JudgeID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "judge assigned"})
}
