package handlers

import (
	"errors"
	"net/http"

	"github.com/av1ctor/metamob-sub003/internal/auth"
	"github.com/av1ctor/metamob-sub003/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ContentHandler serves the campaign children: signatures, votes,
// donations, fundings, updates and poaps.
type ContentHandler struct {
	db *gorm.DB
}

func NewContentHandler(db *gorm.DB) *ContentHandler {
	return &ContentHandler{db: db}
}

func (h *ContentHandler) loadPublishedCampaign(c *gin.Context) (*models.Campaign, bool) {
	var campaign models.Campaign
	err := h.db.WithContext(c.Request.Context()).
		Where("pub_id = ?", c.Param("pubId")).
		First(&campaign).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "campaign not found"})
		return nil, false
	}
	if campaign.State != models.CampaignStatePublished {
		c.JSON(http.StatusConflict, gin.H{"error": "campaign is not open for participation"})
		return nil, false
	}
	return &campaign, true
}

// CreateSignature signs a signatures campaign; one signature per user
// POST /api/campaigns/:pubId/signatures
func (h *ContentHandler) CreateSignature(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	campaign, ok := h.loadPublishedCampaign(c)
	if !ok {
		return
	}
	if campaign.Kind != models.CampaignKindSignatures {
		c.JSON(http.StatusBadRequest, gin.H{"error": "campaign does not collect signatures"})
		return
	}

	var req struct {
		Body string `json:"body"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	signature := models.Signature{
		PubID:      models.NewPubID(),
		CampaignID: campaign.ID,
		Body:       req.Body,
		CreatedBy:  userID,
	}

	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&signature).Error; err != nil {
			return err
		}
		return tx.Model(campaign).Update("total", gorm.Expr("total + 1")).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "campaign already signed"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to sign campaign"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": signature})
}

// CreateVote votes on a votes campaign
// POST /api/campaigns/:pubId/votes
func (h *ContentHandler) CreateVote(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	campaign, ok := h.loadPublishedCampaign(c)
	if !ok {
		return
	}
	if campaign.Kind != models.CampaignKindVotes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "campaign does not collect votes"})
		return
	}

	var req struct {
		Pro  bool   `json:"pro"`
		Body string `json:"body"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	vote := models.Vote{
		PubID:      models.NewPubID(),
		CampaignID: campaign.ID,
		Pro:        req.Pro,
		Body:       req.Body,
		CreatedBy:  userID,
	}

	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&vote).Error; err != nil {
			return err
		}
		return tx.Model(campaign).Update("total", gorm.Expr("total + 1")).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to vote"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": vote})
}

// CreateDonation donates to a donations campaign
// POST /api/campaigns/:pubId/donations
func (h *ContentHandler) CreateDonation(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	campaign, ok := h.loadPublishedCampaign(c)
	if !ok {
		return
	}
	if campaign.Kind != models.CampaignKindDonations {
		c.JSON(http.StatusBadRequest, gin.H{"error": "campaign does not collect donations"})
		return
	}

	var req struct {
		Value     decimal.Decimal `json:"value" binding:"required"`
		Anonymous bool            `json:"anonymous"`
		Body      string          `json:"body"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Value.LessThanOrEqual(decimal.Zero) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "value must be positive"})
		return
	}

	donation := models.Donation{
		PubID:      models.NewPubID(),
		CampaignID: campaign.ID,
		Value:      req.Value,
		Anonymous:  req.Anonymous,
		Body:       req.Body,
		CreatedBy:  userID,
	}

	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&donation).Error; err != nil {
			return err
		}
		return tx.Model(campaign).Update("total", gorm.Expr("total + 1")).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to donate"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": donation})
}

// CreateFunding pledges a tier on a fundings campaign
// POST /api/campaigns/:pubId/fundings
func (h *ContentHandler) CreateFunding(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	campaign, ok := h.loadPublishedCampaign(c)
	if !ok {
		return
	}
	if campaign.Kind != models.CampaignKindFundings {
		c.JSON(http.StatusBadRequest, gin.H{"error": "campaign does not collect fundings"})
		return
	}

	var req struct {
		Tier   int16           `json:"tier"`
		Amount int32           `json:"amount" binding:"required,min=1"`
		Value  decimal.Decimal `json:"value" binding:"required"`
		Body   string          `json:"body"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Value.LessThanOrEqual(decimal.Zero) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "value must be positive"})
		return
	}

	funding := models.Funding{
		PubID:      models.NewPubID(),
		CampaignID: campaign.ID,
		Tier:       req.Tier,
		Amount:     req.Amount,
		Value:      req.Value,
		Body:       req.Body,
		CreatedBy:  userID,
	}

	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&funding).Error; err != nil {
			return err
		}
		return tx.Model(campaign).Update("total", gorm.Expr("total + 1")).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fund"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": funding})
}

// CreateUpdate posts a progress update; only the campaign owner may post
// POST /api/campaigns/:pubId/updates
func (h *ContentHandler) CreateUpdate(c *gin.Context) {
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
		c.JSON(http.StatusNotFound, gin.H{"error": "campaign not found"})
		return
	}
	if campaign.CreatedBy != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "only the owner can post updates"})
		return
	}

	var req struct {
		Body string `json:"body" binding:"required,min=10"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update := models.CampaignUpdate{
		PubID:      models.NewPubID(),
		CampaignID: campaign.ID,
		Body:       req.Body,
		CreatedBy:  userID,
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&update).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to post update"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": update})
}

// CreatePoap attaches a proof-of-attendance token to a campaign
// POST /api/campaigns/:pubId/poaps
func (h *ContentHandler) CreatePoap(c *gin.Context) {
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
		c.JSON(http.StatusNotFound, gin.H{"error": "campaign not found"})
		return
	}
	if campaign.CreatedBy != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "only the owner can attach a poap"})
		return
	}

	var req struct {
		Name      string          `json:"name" binding:"required,max=64"`
		Symbol    string          `json:"symbol" binding:"required,max=8"`
		Logo      string          `json:"logo"`
		Price     decimal.Decimal `json:"price"`
		MaxSupply *int32          `json:"max_supply"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	poap := models.Poap{
		PubID:      models.NewPubID(),
		CampaignID: campaign.ID,
		Name:       req.Name,
		Symbol:     req.Symbol,
		Logo:       req.Logo,
		Price:      req.Price,
		MaxSupply:  req.MaxSupply,
		CreatedBy:  userID,
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&poap).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create poap"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": poap})
}

// ListChildren lists one kind of campaign child, newest first
// GET /api/campaigns/:pubId/signatures (votes, donations, fundings, updates, poaps)
func (h *ContentHandler) ListChildren(kind models.EntityType) gin.HandlerFunc {
	return func(c *gin.Context) {
		var campaign models.Campaign
		err := h.db.WithContext(c.Request.Context()).
			Where("pub_id = ?", c.Param("pubId")).
			First(&campaign).Error
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "campaign not found"})
			return
		}

		limit, offset := pageParams(c)

		var rows interface{}
		switch kind {
		case models.EntityTypeSignatures:
			rows = &[]models.Signature{}
		case models.EntityTypeVotes:
			rows = &[]models.Vote{}
		case models.EntityTypeDonations:
			rows = &[]models.Donation{}
		case models.EntityTypeFundings:
			rows = &[]models.Funding{}
		case models.EntityTypeUpdates:
			rows = &[]models.CampaignUpdate{}
		case models.EntityTypePoaps:
			rows = &[]models.Poap{}
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid child kind"})
			return
		}

		err = h.db.WithContext(c.Request.Context()).
			Where("campaign_id = ?", campaign.ID).
			Order("created_at DESC, id DESC").
			Limit(limit).
			Offset(offset).
			Find(rows).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": rows})
	}
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
