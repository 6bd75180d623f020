package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bibliotek/catalog/internal/logging"
)

// Controllers bundles everything the router mounts.
type Controllers struct {
	Books     *BooksController
	Authors   *AuthorsController
	Subjects  *SubjectsController
	Dashboard *DashboardController
	Reports   *ReportsController
}

// RouterConfig carries the middleware knobs.
type RouterConfig struct {
	Logger         logging.Logger
	RateLimitRPS   float64
	RateLimitBurst int
}

// NewRouter mounts the JSON API under /api/v1.
func NewRouter(controllers Controllers, cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(cfg.Logger))
	if cfg.RateLimitRPS > 0 {
		router.Use(RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")

	books := api.Group("/books")
	books.GET("", controllers.Books.List)
	books.POST("", controllers.Books.Create)
	books.GET("/:id", controllers.Books.Get)
	books.PUT("/:id", controllers.Books.Update)
	books.DELETE("/:id", controllers.Books.Delete)

	authors := api.Group("/authors")
	authors.GET("", controllers.Authors.List)
	authors.POST("", controllers.Authors.Create)
	authors.GET("/:id", controllers.Authors.Get)
	authors.PUT("/:id", controllers.Authors.Update)
	authors.DELETE("/:id", controllers.Authors.Delete)

	subjects := api.Group("/subjects")
	subjects.GET("", controllers.Subjects.List)
	subjects.POST("", controllers.Subjects.Create)
	subjects.GET("/:id", controllers.Subjects.Get)
	subjects.PUT("/:id", controllers.Subjects.Update)
	subjects.DELETE("/:id", controllers.Subjects.Delete)

	api.GET("/dashboard", controllers.Dashboard.Summary)

	reports := api.Group("/reports")
	reports.GET("/authors", controllers.Reports.ByAuthors)
	reports.GET("/authors/download", controllers.Reports.Download)
	reports.GET("/rows", controllers.Reports.Rows)
	reports.GET("/statistics", controllers.Reports.Statistics)
	reports.GET("/top-authors", controllers.Reports.TopAuthors)

	return router
}
