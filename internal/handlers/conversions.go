// conversions.go serves the conversion history.
//
// GET /api/v1/conversions      List the caller's conversions
// GET /api/v1/conversions/:id  Get one conversion
package handlers

import (
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/Shimizu-Technology/cv-formatter-api/internal/database"
	"github.com/Shimizu-Technology/cv-formatter-api/internal/models"
)

// ListConversions returns a paginated list of the caller's conversions.
// GET /api/v1/conversions?page=1&per_page=20&status=failed&format=datamatics
func (h *Handler) ListConversions(c *gin.Context) {
	// Go Pattern: ShouldBindQuery reads query parameters into a struct
	// using the `form` tags.
	var params models.ConversionListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respond(c, http.StatusBadRequest, "invalid_params", "Invalid query parameters: "+err.Error())
		return
	}

	o := owner(c)
	params.APIKeyID, params.UserID = o.APIKeyID, o.UserID

	conversions, total, err := h.DB.ListConversions(c.Request.Context(), params)
	if err != nil {
		log.Error().Err(err).Msg("failed to list conversions")
		respond(c, http.StatusInternalServerError, "database_error", "Failed to list conversions")
		return
	}

	// Ensure we return an empty array, not null
	if conversions == nil {
		conversions = []models.Conversion{}
	}

	perPage := params.PerPage
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	page := params.Page
	if page < 1 {
		page = 1
	}

	c.JSON(http.StatusOK, models.PaginatedResponse[models.Conversion]{
		Data:       conversions,
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: int(math.Ceil(float64(total) / float64(perPage))),
	})
}

// GetConversion retrieves one conversion. Rows owned by someone else are
// reported as not found.
// GET /api/v1/conversions/:id
func (h *Handler) GetConversion(c *gin.Context) {
	conv, err := h.DB.GetConversion(c.Request.Context(), c.Param("id"))
	if err != nil {
		if !errors.Is(err, database.ErrNotFound) {
			log.Error().Err(err).Str("conversion_id", c.Param("id")).Msg("failed to load conversion")
		}
		respond(c, http.StatusNotFound, "not_found", "Conversion not found")
		return
	}

	if !owns(owner(c).APIKeyID, conv.APIKeyID) && !owns(owner(c).UserID, conv.UserID) {
		respond(c, http.StatusNotFound, "not_found", "Conversion not found")
		return
	}
	c.JSON(http.StatusOK, conv)
}

func owns(caller, recorded *string) bool {
	return caller != nil && recorded != nil && *caller == *recorded
}
