package handlers

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	"github.com/fanalytics/sportsbot/internal/agent"
	"github.com/fanalytics/sportsbot/internal/api/middleware"
	"github.com/fanalytics/sportsbot/internal/models"
	"github.com/fanalytics/sportsbot/pkg/database"
	"github.com/fanalytics/sportsbot/pkg/utils"
)

// InsightsHandler serves generated player comparisons.
type InsightsHandler struct {
	generator *agent.InsightGenerator
	db        *database.DB
	logger    *logrus.Logger
}

// InsightRequest asks for a player or team comparison. Stats are
// optional for players; omitted stats are fetched from the current
// season.
type InsightRequest struct {
	Sport      string                 `json:"sport"`
	Type       string                 `json:"type"`
	Selection1 string                 `json:"selection1" binding:"required"`
	Selection2 string                 `json:"selection2" binding:"required"`
	Stats1     map[string]interface{} `json:"stats1"`
	Stats2     map[string]interface{} `json:"stats2"`
}

func NewInsightsHandler(generator *agent.InsightGenerator, db *database.DB, logger *logrus.Logger) *InsightsHandler {
	return &InsightsHandler{
		generator: generator,
		db:        db,
		logger:    logger,
	}
}

// Compare generates an analysis of two players or teams. NFL player
// comparisons include fantasy scoring.
// POST /api/v1/insights
func (h *InsightsHandler) Compare(c *gin.Context) {
	var req InsightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	result, err := h.generator.Generate(c.Request.Context(), agent.InsightInput{
		Sport:      req.Sport,
		Kind:       req.Type,
		Selection1: req.Selection1,
		Selection2: req.Selection2,
		Stats1:     req.Stats1,
		Stats2:     req.Stats2,
	})
	if err != nil {
		h.logger.WithError(err).Error("Insight generation failed")
		utils.SendUpstreamError(c, "Failed to generate comparison", err.Error())
		return
	}

	h.persistInsight(c, result)
	utils.SendSuccess(c, result)
}

func (h *InsightsHandler) persistInsight(c *gin.Context, result *agent.InsightResult) {
	if h.db == nil {
		return
	}

	var userID *string
	if uid, err := middleware.GetUserIDFromContext(c); err == nil {
		userID = &uid
	}

	inputs, err := json.Marshal(result.Comparison)
	if err != nil {
		h.logger.WithError(err).Warn("Failed to serialize insight inputs")
		inputs = nil
	}

	record := &models.InsightRecord{
		UserID:   userID,
		Sport:    result.Sport,
		Subject:  result.Subject,
		Analysis: result.Analysis,
		Inputs:   datatypes.JSON(inputs),
		Fallback: result.Fallback,
	}
	if err := h.db.Create(record).Error; err != nil {
		h.logger.WithError(err).Warn("Failed to persist insight")
	}
}
