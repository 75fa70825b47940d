package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/job-radar/internal/api"
	"github.com/job-radar/internal/config"
	"github.com/job-radar/internal/middleware"
	"github.com/job-radar/internal/scheduler"
	"github.com/job-radar/internal/scraper"
	"github.com/job-radar/internal/storage"

	_ "github.com/job-radar/docs" // swagger docs
)

// @title Job Radar API
// @version 1.0
// @description Job board scraping service: schedule saved searches against job boards, collect deduplicated and relevance-scored postings, and browse them over a REST API.

// @contact.name API Support
// @contact.email support@example.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter your JWT token with the `Bearer ` prefix, e.g. "Bearer eyJhbGci..."

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
// @description Enter your API key

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	log.Println("Connecting to database...")
	db, err := storage.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	log.Println("Running migrations...")
	if err := db.RunMigrations(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	userRepo := storage.NewUserRepository(db)
	jobRepo := storage.NewJobRepository(db)
	searchRepo := storage.NewSearchRepository(db)
	runRepo := storage.NewRunRepository(db)

	ctx := context.Background()

	// Runs left in "running" state by a previous process are dead.
	if stale, err := runRepo.MarkStaleRunning(ctx); err != nil {
		log.Printf("Warning: failed to clean up stale runs: %v", err)
	} else if stale > 0 {
		log.Printf("Marked %d interrupted runs as failed", stale)
	}

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminEmail != "" && adminPassword != "" {
		admin, err := userRepo.CreateAdmin(ctx, adminEmail, adminPassword, "Admin")
		if err != nil {
			log.Printf("Warning: Failed to create admin user: %v", err)
		} else {
			log.Printf("Admin user ready: %s", admin.Email)
		}
	}

	registry := scraper.NewRegistry()
	log.Printf("Available scraper sources: %v", registry.Available())

	scrapeCfg := scraper.Config{
		MaxPages:             cfg.Scraper.MaxPages,
		DelayBetweenRequests: cfg.Scraper.DelayBetweenRequests,
		RequestTimeout:       cfg.Scraper.RequestTimeout,
		MaxRetries:           cfg.Scraper.MaxRetries,
		RatePerMinute:        cfg.Scraper.RateLimitPerMinute,
		RespectRobots:        cfg.Scraper.RespectRobots,
		ProxyURL:             cfg.Scraper.ProxyURL,
		UserAgent:            cfg.Scraper.UserAgent,
		FetchDetails:         cfg.Scraper.FetchDetails,
	}

	runner := scheduler.NewSearchRunner(searchRepo, jobRepo, runRepo, registry, scrapeCfg)
	sched := scheduler.NewScheduler(searchRepo, runner)

	log.Println("Starting scheduler...")
	if err := sched.Start(ctx); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT, userRepo)

	handler := api.NewHandler(userRepo, jobRepo, searchRepo, runRepo, sched, authMiddleware, registry.Available())
	router := api.NewRouter(handler, authMiddleware)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Printf("Server starting on %s:%d", cfg.Server.Host, cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")

	sched.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}
