package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/fanalytics/sportsbot/internal/agent"
	"github.com/fanalytics/sportsbot/internal/api"
	"github.com/fanalytics/sportsbot/internal/api/middleware"
	"github.com/fanalytics/sportsbot/internal/providers"
	"github.com/fanalytics/sportsbot/internal/services"
	"github.com/fanalytics/sportsbot/internal/sports"
	"github.com/fanalytics/sportsbot/pkg/config"
	"github.com/fanalytics/sportsbot/pkg/database"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	logger := logrus.StandardLogger()

	// Setup logging
	if cfg.IsDevelopment() {
		logrus.SetLevel(logrus.DebugLevel)
		gin.SetMode(gin.DebugMode)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
		logrus.SetFormatter(&logrus.JSONFormatter{})
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database. The service degrades without one: chat still
	// answers, history and insights persistence switch off.
	var db *database.DB
	if cfg.DatabaseURL != "" {
		db, err = database.NewConnection(cfg.DatabaseURL, cfg.IsDevelopment())
		if err != nil {
			logrus.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()
		if err := db.Migrate(); err != nil {
			logrus.Fatalf("Failed to run migrations: %v", err)
		}
	} else {
		logrus.Warn("DATABASE_URL not set; history persistence disabled")
	}

	// Connect to Redis
	var cacheService *services.CacheService
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logrus.Fatalf("Failed to parse Redis URL: %v", err)
		}
		redisClient := redis.NewClient(opt)
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logrus.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		cacheService = services.NewCacheService(redisClient)
	} else {
		logrus.Warn("REDIS_URL not set; response caching disabled")
	}

	// Data providers
	var cache providers.CacheProvider
	if cacheService != nil {
		cache = cacheService
	}
	espnClient := providers.NewESPNClient(cache, logger, cfg.ESPNRateLimit)
	oddsClient := providers.NewOddsClient(cfg.OddsAPIKey, cache, logger)
	scraper := services.NewReferenceScraper(cfg.ScraperScript, cfg.ScraperTimeout, logger)
	authService := services.NewAuthService(cfg.SupabaseURL, cfg.SupabaseAnonKey, logger)

	// Model orchestration
	llmClient := agent.NewLLMClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, logger)
	toolset := &agent.Toolset{ESPN: espnClient, Odds: oddsClient, Scraper: scraper, Logger: logger}
	orchestrator := agent.NewOrchestrator(llmClient, toolset, logger)
	insights := agent.NewInsightGenerator(llmClient, toolset, logger)

	// Live score fan-out
	hub := services.NewScoresHub(logger)
	defer hub.Close()

	var refreshKeys []sports.SportKey
	for _, raw := range cfg.RefreshSports {
		if key, ok := sports.ParseSportKey(raw); ok {
			refreshKeys = append(refreshKeys, key)
		} else {
			logrus.Warnf("Ignoring unknown refresh sport %q", raw)
		}
	}
	refresher := services.NewScoreboardRefresher(espnClient, hub, logger, refreshKeys, cfg.RefreshSchedule)
	if len(refreshKeys) > 0 {
		if err := refresher.Start(); err != nil {
			logrus.Errorf("Failed to start scoreboard refresher: %v", err)
		} else {
			defer refresher.Stop()
		}
	}

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS(cfg.CorsOrigins))

	deps := api.Dependencies{
		DB:           db,
		ESPN:         espnClient,
		Odds:         oddsClient,
		Scraper:      scraper,
		Auth:         authService,
		Hub:          hub,
		Orchestrator: orchestrator,
		Insights:     insights,
		Config:       cfg,
		Logger:       logger,
	}

	api.SetupRootRoutes(router, deps)
	apiV1 := router.Group("/api/v1")
	api.SetupRoutes(apiV1, deps)

	// Setup server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 180 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logrus.Infof("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exited")
}
