package api

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/fanalytics/sportsbot/internal/agent"
	"github.com/fanalytics/sportsbot/internal/api/handlers"
	"github.com/fanalytics/sportsbot/internal/api/middleware"
	"github.com/fanalytics/sportsbot/internal/providers"
	"github.com/fanalytics/sportsbot/internal/services"
	"github.com/fanalytics/sportsbot/pkg/config"
	"github.com/fanalytics/sportsbot/pkg/database"
)

// Dependencies carries the constructed services the routes need.
type Dependencies struct {
	DB           *database.DB
	ESPN         *providers.ESPNClient
	Odds         *providers.OddsClient
	Scraper      *services.ReferenceScraper
	Auth         *services.AuthService
	Hub          *services.ScoresHub
	Orchestrator *agent.Orchestrator
	Insights     *agent.InsightGenerator
	Config       *config.Config
	Logger       *logrus.Logger
}

// SetupRoutes configures all API routes on the given router group
func SetupRoutes(group *gin.RouterGroup, deps Dependencies) {
	authMW := middleware.NewSupabaseAuthMiddleware(deps.Config.SupabaseJWTSecret)

	chatHandler := handlers.NewChatHandler(deps.Orchestrator, deps.DB, deps.Logger)
	insightsHandler := handlers.NewInsightsHandler(deps.Insights, deps.DB, deps.Logger)
	scoresHandler := handlers.NewScoresHandler(deps.ESPN, deps.Logger)
	oddsHandler := handlers.NewOddsHandler(deps.Odds, deps.Logger)
	referenceHandler := handlers.NewReferenceHandler(deps.Scraper, deps.Logger)
	authHandler := handlers.NewAuthHandler(deps.Auth, deps.Logger)

	// Chat endpoints. Auth is optional so anonymous questions work; a
	// valid token attributes history to the user.
	group.POST("/chat", authMW.AuthOptional(), chatHandler.Chat)
	group.GET("/chat/history", authMW.AuthRequired(), chatHandler.History)

	// Insight endpoints
	group.POST("/insights", authMW.AuthOptional(), insightsHandler.Compare)

	// Direct data endpoints
	group.GET("/scores/:sport", scoresHandler.GetScores)
	group.GET("/teams/:sport", scoresHandler.GetTeams)
	group.GET("/news/:sport", scoresHandler.GetNews)
	group.GET("/rankings/:sport", scoresHandler.GetRankings)
	group.GET("/odds/:sport", oddsHandler.GetOdds)
	group.POST("/reference", referenceHandler.Fetch)

	// Auth endpoints
	group.POST("/auth/signup", authHandler.SignUp)
	group.POST("/auth/login", authHandler.Login)
	group.GET("/auth/session", authHandler.Session)
}

// SetupRootRoutes configures routes outside the versioned API group.
func SetupRootRoutes(router *gin.Engine, deps Dependencies) {
	healthHandler := handlers.NewHealthHandler(deps.DB)
	router.GET("/health", healthHandler.GetHealth)
	router.GET("/ready", healthHandler.GetReady)

	wsHandler := handlers.NewWSHandler(deps.Hub, deps.Config.CorsOrigins, deps.Logger)
	router.GET("/ws", wsHandler.Subscribe)
}
