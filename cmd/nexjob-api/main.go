package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/nexjob/nexjob-api/api/swagger"
	"github.com/nexjob/nexjob-api/internal/handler"
	"github.com/nexjob/nexjob-api/internal/models"
	"github.com/nexjob/nexjob-api/internal/repository"
	"github.com/nexjob/nexjob-api/internal/scheduler"
	"github.com/nexjob/nexjob-api/internal/service"
	"github.com/nexjob/nexjob-api/internal/wp"
	"github.com/nexjob/nexjob-api/pkg/cache"
	"github.com/nexjob/nexjob-api/pkg/config"
	"github.com/nexjob/nexjob-api/pkg/database"
	"github.com/nexjob/nexjob-api/pkg/logger"
)

// @title Nexjob API
// @version 1.0.0
// @description Settings, SEO metadata and sitemap backend for the Nexjob job board
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("postgres connection failed", "error", err)
	}
	defer db.Close()

	// The public connection is a degraded-read fallback; the service runs
	// without it.
	publicDB, err := database.NewPublicPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Warnw("public postgres connection unavailable", "error", err)
	} else {
		defer publicDB.Close()
	}

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	settingsRepo := repository.NewSettingsRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	var publicSettingsRepo service.SettingsReader
	if publicDB != nil {
		publicSettingsRepo = repository.NewSettingsRepository(publicDB)
	}

	metrics := service.NewMetricsService()
	authSvc := service.NewAuthService(adminRepo, auditRepo, cfg.JWT, logr)

	defaults := func() *models.SiteSettings {
		return service.DefaultSettings(cfg.Site, cfg.WP)
	}
	settingsSvc := service.NewSettingsService(
		settingsRepo,
		publicSettingsRepo,
		service.NewSettingsCache(cfg.Settings.CacheTTL),
		authSvc,
		auditRepo,
		metrics,
		cfg.Settings,
		defaults,
		logr,
	)

	cacheSvc := service.NewCacheService(cacheRepo, metrics, logr)

	wpClient := wp.NewClient(cfg.WP.Timeout, logr)
	seoSvc := service.NewSEOService(settingsSvc, wpClient, cacheSvc, metrics, cfg.Filters, logr)
	adsSvc := service.NewAdvertisementService(settingsSvc, logr)
	sitemapSvc := service.NewSitemapService(settingsSvc, settingsSvc, wpClient, cacheSvc, logr)

	if cfg.Sitemap.Enabled {
		sched := scheduler.New(sitemapSvc, cfg.Sitemap, logr)
		if err := sched.Start(ctx); err != nil {
			logr.Sugar().Fatalw("scheduler start failed", "error", err)
		}
		defer sched.Stop()
	}

	router := handler.NewRouter(handler.RouterDeps{
		Config:   cfg,
		Logger:   logr,
		Metrics:  metrics,
		Auth:     authSvc,
		AuthH:    handler.NewAuthHandler(authSvc, logr),
		Settings: handler.NewSettingsHandler(settingsSvc, logr),
		SEO:      handler.NewSEOHandler(seoSvc, logr),
		Ads:      handler.NewAdsHandler(adsSvc, logr),
		Sitemaps: handler.NewSitemapHandler(sitemapSvc, settingsSvc, logr),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", server.Addr, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
}
