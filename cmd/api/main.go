package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/contentloom/contentloom/docs"
	"github.com/contentloom/contentloom/internal/api/handlers"
	"github.com/contentloom/contentloom/internal/api/router"
	"github.com/contentloom/contentloom/internal/config"
	"github.com/contentloom/contentloom/internal/pkg/logger"
	"github.com/contentloom/contentloom/internal/pkg/validator"
	"github.com/contentloom/contentloom/internal/repository/postgres"
	"github.com/contentloom/contentloom/internal/services"
	"github.com/contentloom/contentloom/internal/worker"
)

// @title ContentLoom API
// @version 1.0
// @description Subscription, quota and usage accounting API for the ContentLoom platform.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	logger.Init(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	log.Infof("Starting ContentLoom API (env=%s)", cfg.Server.Environment)

	db, err := postgres.New(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Repositories
	planRepo := postgres.NewPlanRepository(db)
	teamRepo := postgres.NewTeamRepository(db)
	subRepo := postgres.NewSubscriptionRepository(db)
	sessionRepo := postgres.NewSessionRepository(db)
	assetRepo := postgres.NewAssetRepository(db)
	userRepo := postgres.NewUserRepository(db)
	counter := postgres.NewResourceCounter(assetRepo, userRepo)

	// Services
	catalog := services.NewPlanCatalogService(planRepo, log)
	resolver := services.NewSubscriptionResolverService(teamRepo, subRepo, catalog, log)
	guard := services.NewQuotaGuardService(resolver, counter, log)
	ledger := services.NewCreditLedgerService(teamRepo, log)
	sessions := services.NewSessionService(sessionRepo, log)
	authService := services.NewAuthService(userRepo, teamRepo, catalog, resolver, cfg.Auth, log)
	contentService := services.NewContentService(guard, ledger, teamRepo, catalog, cfg.AI, log)
	billingService := services.NewBillingService(catalog, teamRepo, subRepo, resolver, cfg.Billing, log)
	assetService := services.NewAssetService(assetRepo, guard, log)

	val := validator.New()

	h := &router.Handlers{
		Health:       handlers.NewHealthHandler(db, log),
		Auth:         handlers.NewAuthHandler(authService, cfg, log, val),
		Subscription: handlers.NewSubscriptionHandler(resolver, log),
		Billing:      handlers.NewBillingHandler(billingService, log, val),
		Asset:        handlers.NewAssetHandler(assetService, log, val),
		Team:         handlers.NewTeamHandler(authService, userRepo, guard, log, val),
		Content:      handlers.NewContentHandler(contentService, log, val),
		Session:      handlers.NewSessionHandler(sessions, log, val),
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.New(cfg, log, h),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Background workers
	scanner := worker.NewTrialScanner(subRepo, resolver, cfg.Usage.TrialScanSchedule, log)
	if err := scanner.Start(); err != nil {
		log.Fatalf("Failed to start trial scanner: %v", err)
	}
	reaper := worker.NewSessionReaper(sessionRepo, sessions, cfg.Usage, log)
	if err := reaper.Start(); err != nil {
		log.Fatalf("Failed to start session reaper: %v", err)
	}

	go func() {
		log.Infof("HTTP server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")

	scanner.Stop()
	reaper.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}

	log.Info("Server exited")
}
