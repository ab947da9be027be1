package handlers

import (
	"net/http"

	"github.com/av1ctor/metamob-sub003/internal/auth"
	"github.com/av1ctor/metamob-sub003/internal/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService   *services.UserService
	rewardService *services.RewardService
}

func NewUserHandler(userService *services.UserService, rewardService *services.RewardService) *UserHandler {
	return &UserHandler{userService: userService, rewardService: rewardService}
}

// GetRewardBalance returns the caller's credited MMT total
// GET /api/users/rewards/balance
func (h *UserHandler) GetRewardBalance(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	balance, err := h.rewardService.Balance(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute balance"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"balance": balance})
}

// ListRewards lists the caller's reward ledger entries
// GET /api/users/rewards
func (h *UserHandler) ListRewards(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	limit, offset := pageParams(c)
	entries, hasMore, err := h.rewardService.Entries(c.Request.Context(), userID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list rewards"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":     entries,
		"has_more": hasMore,
	})
}
