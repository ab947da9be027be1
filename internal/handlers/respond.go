package handlers

import (
	"errors"
	"net/http"

	"github.com/av1ctor/metamob-sub003/internal/entities"
	"github.com/av1ctor/metamob-sub003/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// respondError maps service errors onto HTTP statuses. Validation
// failures carry their field list; everything else surfaces verbatim.
func respondError(c *gin.Context, err error) {
	var validation *services.ValidationError
	if errors.As(err, &validation) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "validation failed",
			"fields": validation.Fields,
		})
		return
	}

	switch {
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, gorm.ErrRecordNotFound),
		errors.Is(err, entities.ErrEntityNotFound),
		errors.Is(err, entities.ErrUnknownEntityType):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrDuplicateReport),
		errors.Is(err, services.ErrAlreadyChallenged),
		errors.Is(err, services.ErrChallengeClosed),
		errors.Is(err, services.ErrTerminalState):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}

// pageParams parses the limit/offset query pair every list endpoint uses.
func pageParams(c *gin.Context) (int, int) {
	limit := 20
	offset := 0

	if l, err := atoiQuery(c, "limit"); err == nil && l > 0 && l <= 100 {
		limit = l
	}
	if o, err := atoiQuery(c, "offset"); err == nil && o >= 0 {
		offset = o
	}
	return limit, offset
}
