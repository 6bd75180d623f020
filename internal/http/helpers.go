// Package http exposes the catalog over a JSON API: CRUD controllers for
// books, authors and subjects plus the dashboard and report endpoints.
package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/bibliotek/catalog/internal/dto"
	"github.com/bibliotek/catalog/internal/services"
)

const defaultPerPage = 15

// respondError translates the service error taxonomy into HTTP statuses. The
// services have already logged the failure; this only shapes the response.
func respondError(c *gin.Context, err error) {
	var notFound *services.NotFoundError
	var unique *services.UniquenessError
	var format *dto.FormatError
	var validation validator.ValidationErrors

	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
	case errors.As(err, &unique):
		c.JSON(http.StatusConflict, gin.H{"error": unique.Error()})
	case errors.As(err, &format), errors.As(err, &validation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// idParam parses the :id path segment.
func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

// queryInt reads an integer query parameter, falling back when absent or
// malformed.
func queryInt(c *gin.Context, key string, fallback int) int {
	raw, ok := c.GetQuery(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// collectFilters picks the known filter keys off the query string.
func collectFilters(c *gin.Context, keys ...string) map[string]string {
	filters := map[string]string{}
	for _, key := range keys {
		if v, ok := c.GetQuery(key); ok {
			filters[key] = v
		}
	}
	return filters
}

// bindFields decodes the request body into the raw field mapping the DTO
// layer normalizes.
func bindFields(c *gin.Context) (map[string]any, bool) {
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return nil, false
	}
	return fields, true
}
