package handlers

import (
	"net/http"

	"github.com/av1ctor/metamob-sub003/internal/entities"
	"github.com/av1ctor/metamob-sub003/internal/models"
	"github.com/av1ctor/metamob-sub003/internal/services"

	"github.com/gin-gonic/gin"
)

// EntityHandler exposes the resolver: any registered entity kind can be
// previewed by type tag and public id, e.g. for the report dialog.
type EntityHandler struct {
	entityService *services.EntityService
}

func NewEntityHandler(entityService *services.EntityService) *EntityHandler {
	return &EntityHandler{entityService: entityService}
}

// Kinds lists the entity type tags the resolver knows
// GET /api/entities
func (h *EntityHandler) Kinds(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": entities.Kinds()})
}

// Preview resolves an entity by type tag and public ID
// GET /api/entities/:type/:pubId
func (h *EntityHandler) Preview(c *gin.Context) {
	entity, err := h.entityService.Resolve(
		c.Request.Context(),
		models.EntityType(c.Param("type")),
		c.Param("pubId"),
	)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": entity})
}
