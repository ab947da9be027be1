package handlers

import (
	"net/http"

	"github.com/av1ctor/metamob-sub003/internal/auth"
	"github.com/av1ctor/metamob-sub003/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PlaceHandler struct {
	db *gorm.DB
}

func NewPlaceHandler(db *gorm.DB) *PlaceHandler {
	return &PlaceHandler{db: db}
}

// CreatePlace registers a geographic scope
// POST /api/places
func (h *PlaceHandler) CreatePlace(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req struct {
		ParentID    *uint            `json:"parent_id"`
		Kind        models.PlaceKind `json:"kind" binding:"required"`
		Name        string           `json:"name" binding:"required,max=255"`
		Description string           `json:"description"`
		Lat         float64          `json:"lat"`
		Lng         float64          `json:"lng"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	switch req.Kind {
	case models.PlaceKindPlanet, models.PlaceKindCountry, models.PlaceKindState,
		models.PlaceKindCity, models.PlaceKindOther:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid place kind"})
		return
	}

	place := models.Place{
		PubID:       models.NewPubID(),
		ParentID:    req.ParentID,
		Kind:        req.Kind,
		Name:        req.Name,
		Description: req.Description,
		Lat:         req.Lat,
		Lng:         req.Lng,
		CreatedBy:   userID,
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&place).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create place"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": place})
}

// ListPlaces lists places, optionally filtered by kind or parent
// GET /api/places?kind=CITY&parent_id=2
func (h *PlaceHandler) ListPlaces(c *gin.Context) {
	limit, offset := pageParams(c)

	query := h.db.WithContext(c.Request.Context()).Model(&models.Place{})
	if kind := c.Query("kind"); kind != "" {
		query = query.Where("kind = ?", kind)
	}
	if parentID := c.Query("parent_id"); parentID != "" {
		query = query.Where("parent_id = ?", parentID)
	}

	var places []models.Place
	err := query.
		Order("name ASC, id ASC").
		Limit(limit).
		Offset(offset).
		Find(&places).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list places"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":     places,
		"has_more": len(places) == limit,
	})
}

// GetPlace retrieves a place by public ID
// GET /api/places/:pubId
func (h *PlaceHandler) GetPlace(c *gin.Context) {
	var place models.Place
	err := h.db.WithContext(c.Request.Context()).
		Where("pub_id = ?", c.Param("pubId")).
		First(&place).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "place not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": place})
}
