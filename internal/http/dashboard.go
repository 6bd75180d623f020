package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bibliotek/catalog/internal/services"
)

// DashboardController exposes the dashboard summary.
type DashboardController struct {
	service *services.DashboardService
}

// NewDashboardController creates a new dashboard controller.
func NewDashboardController(service *services.DashboardService) *DashboardController {
	return &DashboardController{service: service}
}

// Summary returns entity counts, recent books and top subjects.
func (ctrl *DashboardController) Summary(c *gin.Context) {
	summary, err := ctrl.service.GetSummary()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
