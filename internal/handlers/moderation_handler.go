package handlers

import (
	"net/http"
	"strconv"

	"github.com/av1ctor/metamob-sub003/internal/auth"
	"github.com/av1ctor/metamob-sub003/internal/models"
	"github.com/av1ctor/metamob-sub003/internal/services"

	"github.com/gin-gonic/gin"
)

type ModerationHandler struct {
	moderationService *services.ModerationService
}

func NewModerationHandler(moderationService *services.ModerationService) *ModerationHandler {
	return &ModerationHandler{moderationService: moderationService}
}

// Moderate applies a decision on a pending report
// POST /api/moderation/moderations
func (h *ModerationHandler) Moderate(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req models.ModerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	moderation, err := h.moderationService.Moderate(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": moderation})
}

// IgnoreReport dismisses a pending report without touching the entity
// POST /api/moderation/reports/:id/ignore
func (h *ModerationHandler) IgnoreReport(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	reportID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid report id"})
		return
	}

	if err := h.moderationService.IgnoreReport(c.Request.Context(), userID, uint(reportID)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "report ignored"})
}

// GetModeration retrieves a moderation by public ID
// GET /api/moderations/:pubId
func (h *ModerationHandler) GetModeration(c *gin.Context) {
	moderation, err := h.moderationService.GetModeration(c.Request.Context(), c.Param("pubId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "moderation not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": moderation})
}

// GetByReport returns the moderation issued for a report, if any
// GET /api/moderation/reports/:id/moderation
func (h *ModerationHandler) GetByReport(c *gin.Context) {
	reportID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid report id"})
		return
	}

	moderation, err := h.moderationService.FindByReport(c.Request.Context(), uint(reportID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load moderation"})
		return
	}
	if moderation == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "report has no moderation"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": moderation})
}

// ListByEntity lists the moderations attached to an entity, so clients
// can render the flagged banner and its details.
// GET /api/moderations/entity/:type/:id
func (h *ModerationHandler) ListByEntity(c *gin.Context) {
	entityID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entity id"})
		return
	}

	limit, offset := pageParams(c)
	moderations, hasMore, err := h.moderationService.FindByEntity(
		c.Request.Context(),
		models.EntityType(c.Param("type")),
		uint(entityID),
		limit, offset,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list moderations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":     moderations,
		"has_more": hasMore,
	})
}
