package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/av1ctor/metamob-sub003/internal/auth"
	"github.com/av1ctor/metamob-sub003/internal/models"
	"github.com/av1ctor/metamob-sub003/internal/services"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportService *services.ReportService
}

func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// CreateReport flags an entity
// POST /api/reports
func (h *ReportHandler) CreateReport(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req models.CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.reportService.CreateReport(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"data":    report,
		"message": "report submitted; a reward may follow if it is accepted",
	})
}

// GetReport retrieves a report by public ID
// GET /api/reports/:pubId
func (h *ReportHandler) GetReport(c *gin.Context) {
	report, err := h.reportService.GetReport(c.Request.Context(), c.Param("pubId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": report})
}

// ListReports returns the moderation queue
// GET /api/moderation/reports?state=PENDING
func (h *ReportHandler) ListReports(c *gin.Context) {
	limit, offset := pageParams(c)
	state := models.ReportState(c.Query("state"))

	reports, hasMore, err := h.reportService.ListReports(c.Request.Context(), state, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list reports"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":     reports,
		"has_more": hasMore,
	})
}

// ListReportsByEntity returns the reports filed against one entity
// GET /api/moderation/reports/entity/:type/:id
func (h *ReportHandler) ListReportsByEntity(c *gin.Context) {
	entityID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entity id"})
		return
	}

	limit, offset := pageParams(c)
	reports, hasMore, err := h.reportService.ListReportsByEntity(
		c.Request.Context(),
		models.EntityType(c.Param("type")),
		uint(entityID),
		limit, offset,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list reports"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":     reports,
		"has_more": hasMore,
	})
}

func atoiQuery(c *gin.Context, name string) (int, error) {
	value := c.Query(name)
	if value == "" {
		return 0, errors.New("empty")
	}
	return strconv.Atoi(value)
}
