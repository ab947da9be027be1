package handlers

import (
	"errors"
	"net/http"

	"github.com/av1ctor/metamob-sub003/internal/auth"
	"github.com/av1ctor/metamob-sub003/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CampaignHandler struct {
	db *gorm.DB
}

func NewCampaignHandler(db *gorm.DB) *CampaignHandler {
	return &CampaignHandler{db: db}
}

// CreateCampaign creates a new campaign
// POST /api/campaigns
func (h *CampaignHandler) CreateCampaign(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req models.CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	switch req.Kind {
	case models.CampaignKindSignatures, models.CampaignKindVotes,
		models.CampaignKindDonations, models.CampaignKindFundings:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid campaign kind"})
		return
	}

	campaign := models.Campaign{
		PubID:     models.NewPubID(),
		Kind:      req.Kind,
		Title:     req.Title,
		Target:    req.Target,
		Body:      req.Body,
		Cover:     req.Cover,
		State:     models.CampaignStateCreated,
		PlaceID:   req.PlaceID,
		CreatedBy: userID,
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&campaign).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create campaign"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": campaign})
}

// ListCampaigns lists campaigns, optionally filtered by kind, state or place
// GET /api/campaigns?kind=SIGNATURES&state=PUBLISHED&place_id=3
func (h *CampaignHandler) ListCampaigns(c *gin.Context) {
	limit, offset := pageParams(c)

	query := h.db.WithContext(c.Request.Context()).Model(&models.Campaign{})
	if kind := c.Query("kind"); kind != "" {
		query = query.Where("kind = ?", kind)
	}
	if state := c.Query("state"); state != "" {
		query = query.Where("state = ?", state)
	}
	if placeID := c.Query("place_id"); placeID != "" {
		query = query.Where("place_id = ?", placeID)
	}

	var campaigns []models.Campaign
	err := query.
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&campaigns).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list campaigns"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":     campaigns,
		"has_more": len(campaigns) == limit,
	})
}

// GetCampaign retrieves a campaign by public ID
// GET /api/campaigns/:pubId
func (h *CampaignHandler) GetCampaign(c *gin.Context) {
	var campaign models.Campaign
	err := h.db.WithContext(c.Request.Context()).
		Preload("Place").
		Where("pub_id = ?", c.Param("pubId")).
		First(&campaign).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "campaign not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": campaign})
}

// UpdateCampaign edits a campaign; only the owner may edit
// PUT /api/campaigns/:pubId
func (h *CampaignHandler) UpdateCampaign(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req models.UpdateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var campaign models.Campaign
	err := h.db.WithContext(c.Request.Context()).
		Where("pub_id = ?", c.Param("pubId")).
		First(&campaign).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "campaign not found"})
		return
	}

	if campaign.CreatedBy != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "only the owner can edit a campaign"})
		return
	}
	if campaign.State == models.CampaignStateFinished || campaign.State == models.CampaignStateCancelled {
		c.JSON(http.StatusConflict, gin.H{"error": "campaign is closed"})
		return
	}

	campaign.Title = req.Title
	campaign.Target = req.Target
	campaign.Body = req.Body
	if req.Cover != nil {
		campaign.Cover = req.Cover
	}
	if err := h.db.WithContext(c.Request.Context()).Save(&campaign).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update campaign"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": campaign})
}

// PublishCampaign moves a campaign from CREATED to PUBLISHED
// POST /api/campaigns/:pubId/publish
func (h *CampaignHandler) PublishCampaign(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var campaign models.Campaign
	err := h.db.WithContext(c.Request.Context()).
		Where("pub_id = ?", c.Param("pubId")).
		First(&campaign).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "campaign not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load campaign"})
		return
	}

	if campaign.CreatedBy != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "only the owner can publish a campaign"})
		return
	}
	if campaign.State != models.CampaignStateCreated {
		c.JSON(http.StatusConflict, gin.H{"error": "campaign cannot be published"})
		return
	}

	campaign.State = models.CampaignStatePublished
	if err := h.db.WithContext(c.Request.Context()).Save(&campaign).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to publish campaign"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": campaign})
}
