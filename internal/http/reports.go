package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bibliotek/catalog/internal/services"
)

// ReportsController exposes the author report, its PDF download and the
// flat report view with statistics.
type ReportsController struct {
	service *services.ReportService
}

// NewReportsController creates a new reports controller.
func NewReportsController(service *services.ReportService) *ReportsController {
	return &ReportsController{service: service}
}

// ByAuthors returns the nested author→books→subjects report tree.
func (ctrl *ReportsController) ByAuthors(c *gin.Context) {
	report, err := ctrl.service.ByAuthors()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"authors": report})
}

// Download renders the author report as a PDF attachment.
func (ctrl *ReportsController) Download(c *gin.Context) {
	report, err := ctrl.service.ByAuthors()
	if err != nil {
		respondError(c, err)
		return
	}

	filename, payload, err := ctrl.service.Download(report)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", payload)
}

// Rows returns one page of the flat report view. Sorting is controlled with
// the sort and dir query parameters.
func (ctrl *ReportsController) Rows(c *gin.Context) {
	filters := collectFilters(c,
		"author_name", "book_title", "publisher", "publication_year", "subjects")
	page := queryInt(c, "page", 1)
	perPage := queryInt(c, "per_page", defaultPerPage)

	result, err := ctrl.service.Rows(filters, c.Query("sort"), c.Query("dir"), page, perPage)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Statistics returns the report view aggregates.
func (ctrl *ReportsController) Statistics(c *gin.Context) {
	stats, err := ctrl.service.Statistics()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// TopAuthors returns the authors with the most books.
func (ctrl *ReportsController) TopAuthors(c *gin.Context) {
	limit := queryInt(c, "limit", 10)
	rows, err := ctrl.service.TopAuthors(limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"authors": rows})
}
