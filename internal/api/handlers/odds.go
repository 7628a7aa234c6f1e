package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/fanalytics/sportsbot/internal/providers"
	"github.com/fanalytics/sportsbot/pkg/utils"
)

// OddsHandler serves betting lines.
type OddsHandler struct {
	odds   *providers.OddsClient
	logger *logrus.Logger
}

func NewOddsHandler(odds *providers.OddsClient, logger *logrus.Logger) *OddsHandler {
	return &OddsHandler{odds: odds, logger: logger}
}

// GetOdds returns current lines for a sport.
// GET /api/v1/odds/:sport
func (h *OddsHandler) GetOdds(c *gin.Context) {
	sport, ok := sportParam(c)
	if !ok {
		return
	}

	odds, err := h.odds.GetOdds(c.Request.Context(), sport)
	if err != nil {
		h.logger.WithError(err).Warn("Odds request failed")
		utils.SendUpstreamError(c, "Odds provider unavailable", err.Error())
		return
	}

	utils.SendSuccess(c, gin.H{
		"sport":     sport,
		"games":     odds,
		"formatted": providers.FormatOdds(odds),
	})
}
