package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/fanalytics/sportsbot/internal/services"
	"github.com/fanalytics/sportsbot/pkg/utils"
)

// ReferenceHandler serves historical stats from the reference archive.
type ReferenceHandler struct {
	scraper *services.ReferenceScraper
	logger  *logrus.Logger
}

// ReferenceRequest names one historical stat table.
type ReferenceRequest struct {
	Sport    string `json:"sport" binding:"required"`
	Year     int    `json:"year" binding:"required"`
	StatType string `json:"stat_type"`
}

func NewReferenceHandler(scraper *services.ReferenceScraper, logger *logrus.Logger) *ReferenceHandler {
	return &ReferenceHandler{scraper: scraper, logger: logger}
}

// Fetch runs the scraper for one season table.
// POST /api/v1/reference
func (h *ReferenceHandler) Fetch(c *gin.Context) {
	if !h.scraper.Enabled() {
		utils.SendNotFound(c, "Historical stats are not enabled")
		return
	}

	var req ReferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}
	if req.StatType == "" {
		req.StatType = "per_game"
	}

	table, err := h.scraper.FetchHistorical(c.Request.Context(), req.Sport, req.Year, req.StatType)
	if err != nil {
		h.logger.WithError(err).Warn("Reference fetch failed")
		utils.SendUpstreamError(c, "Failed to fetch historical stats", err.Error())
		return
	}

	utils.SendSuccess(c, gin.H{
		"sport":     req.Sport,
		"year":      req.Year,
		"stat_type": req.StatType,
		"table":     table,
	})
}
