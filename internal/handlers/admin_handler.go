package handlers

import (
	"net/http"
	"strconv"

	"github.com/av1ctor/metamob-sub003/internal/auth"
	"github.com/av1ctor/metamob-sub003/internal/models"
	"github.com/av1ctor/metamob-sub003/internal/services"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	userService  *services.UserService
	auditService *services.AuditService
}

func NewAdminHandler(userService *services.UserService, auditService *services.AuditService) *AdminHandler {
	return &AdminHandler{userService: userService, auditService: auditService}
}

// SetUserRole changes a user's role
// PUT /api/admin/users/:id/role
func (h *AdminHandler) SetUserRole(c *gin.Context) {
	actorID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	var req struct {
		Role models.UserRole `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.userService.SetRole(c.Request.Context(), uint(userID), req.Role); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	target := uint(userID)
	h.auditService.Log(actorID, "SET_ROLE", "USER", &target,
		map[string]interface{}{"role": req.Role})

	c.JSON(http.StatusOK, gin.H{"message": "role updated"})
}

// ListAuditLogs lists moderator and judge actions, newest first
// GET /api/admin/audit
func (h *AdminHandler) ListAuditLogs(c *gin.Context) {
	limit, offset := pageParams(c)

	logs, hasMore, err := h.auditService.List(limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list audit logs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":     logs,
		"has_more": hasMore,
	})
}
