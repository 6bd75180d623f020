// Package entrypoint assembles the application graph and runs the HTTP
// server with graceful shutdown.
package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/bibliotek/catalog/internal/config"
	"github.com/bibliotek/catalog/internal/database"
	"github.com/bibliotek/catalog/internal/database/authors"
	"github.com/bibliotek/catalog/internal/database/books"
	"github.com/bibliotek/catalog/internal/database/reports"
	"github.com/bibliotek/catalog/internal/database/subjects"
	catalogHTTP "github.com/bibliotek/catalog/internal/http"
	"github.com/bibliotek/catalog/internal/logging"
	"github.com/bibliotek/catalog/internal/pdf"
	"github.com/bibliotek/catalog/internal/services"
)

// Run wires the repositories, services and controllers together and serves
// the API until interrupted.
func Run(cfg *config.Config) {
	logger, err := logging.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}

	db, err := database.New(cfg.Database.Path)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	logger.Info("database initialized", zap.String("path", cfg.Database.Path))

	bookRepo := books.NewRepository(db.DB)
	authorRepo := authors.NewRepository(db.DB)
	subjectRepo := subjects.NewRepository(db.DB)
	reportRepo := reports.NewRepository(db.DB)

	bookService := services.NewBookService(bookRepo, logger)
	authorService := services.NewAuthorService(authorRepo, logger)
	subjectService := services.NewSubjectService(subjectRepo, logger)
	dashboardService := services.NewDashboardService(bookRepo, authorRepo, subjectRepo, logger)
	reportService := services.NewReportService(reportRepo, pdf.NewAuthorReportRenderer(), logger)

	router := catalogHTTP.NewRouter(catalogHTTP.Controllers{
		Books:     catalogHTTP.NewBooksController(bookService),
		Authors:   catalogHTTP.NewAuthorsController(authorService),
		Subjects:  catalogHTTP.NewSubjectsController(subjectService),
		Dashboard: catalogHTTP.NewDashboardController(dashboardService),
		Reports:   catalogHTTP.NewReportsController(reportService),
	}, catalogHTTP.RouterConfig{
		Logger:         logger,
		RateLimitRPS:   cfg.RateLimit.RPS,
		RateLimitBurst: cfg.RateLimit.Burst,
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		logger.Info("starting server",
			zap.String("host", cfg.HTTP.Host), zap.Int32("port", cfg.HTTP.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s", err)
		}
	}()

	// Wait for an interrupt, then drain in-flight requests.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	logger.Info("server exited")
}
