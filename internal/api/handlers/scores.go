package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/fanalytics/sportsbot/internal/providers"
	"github.com/fanalytics/sportsbot/internal/sports"
	"github.com/fanalytics/sportsbot/pkg/utils"
)

// ScoresHandler serves the direct (non-chat) sports data endpoints.
type ScoresHandler struct {
	espn   *providers.ESPNClient
	logger *logrus.Logger
}

func NewScoresHandler(espn *providers.ESPNClient, logger *logrus.Logger) *ScoresHandler {
	return &ScoresHandler{espn: espn, logger: logger}
}

func sportParam(c *gin.Context) (sports.SportKey, bool) {
	key, ok := sports.ParseSportKey(c.Param("sport"))
	if !ok {
		utils.SendValidationError(c, "Unknown sport", "expected one of nba, nfl, mlb, nhl, mcb, cfb")
		return "", false
	}
	return key, true
}

// sendProviderError maps upstream failures to API errors.
func (h *ScoresHandler) sendProviderError(c *gin.Context, err error) {
	var statusErr *providers.StatusError
	if errors.As(err, &statusErr) && statusErr.StatusCode == 404 {
		utils.SendNotFound(c, "No data available")
		return
	}
	h.logger.WithError(err).Warn("Provider request failed")
	utils.SendUpstreamError(c, "Sports data provider unavailable", err.Error())
}

// GetScores returns the scoreboard for a sport.
// GET /api/v1/scores/:sport?date=<expression>
func (h *ScoresHandler) GetScores(c *gin.Context) {
	sport, ok := sportParam(c)
	if !ok {
		return
	}

	date := ""
	if expr := c.Query("date"); expr != "" {
		resolved, ok := sports.ResolveDate(expr, time.Now())
		if !ok {
			utils.SendValidationError(c, "Unrecognized date", expr)
			return
		}
		date = resolved
	}

	games, err := h.espn.GetScoreboard(c.Request.Context(), sport, date)
	if err != nil {
		h.sendProviderError(c, err)
		return
	}
	utils.SendSuccess(c, gin.H{"sport": sport, "date": date, "games": games})
}

// GetTeams lists a league's teams.
// GET /api/v1/teams/:sport
func (h *ScoresHandler) GetTeams(c *gin.Context) {
	sport, ok := sportParam(c)
	if !ok {
		return
	}
	teams, err := h.espn.GetTeams(c.Request.Context(), sport)
	if err != nil {
		h.sendProviderError(c, err)
		return
	}
	utils.SendSuccess(c, gin.H{"sport": sport, "teams": teams})
}

// GetNews returns league headlines.
// GET /api/v1/news/:sport
func (h *ScoresHandler) GetNews(c *gin.Context) {
	sport, ok := sportParam(c)
	if !ok {
		return
	}
	limit := 10
	if n, ok := intQuery(c, "limit"); ok && n > 0 && n <= 50 {
		limit = n
	}
	news, err := h.espn.GetNews(c.Request.Context(), sport, limit)
	if err != nil {
		h.sendProviderError(c, err)
		return
	}
	utils.SendSuccess(c, gin.H{"sport": sport, "articles": news})
}

// GetRankings returns poll rankings for college sports.
// GET /api/v1/rankings/:sport
func (h *ScoresHandler) GetRankings(c *gin.Context) {
	sport, ok := sportParam(c)
	if !ok {
		return
	}
	polls, err := h.espn.GetRankings(c.Request.Context(), sport)
	if err != nil {
		h.sendProviderError(c, err)
		return
	}
	utils.SendSuccess(c, gin.H{"sport": sport, "polls": polls})
}
