package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/fanalytics/sportsbot/internal/agent"
	"github.com/fanalytics/sportsbot/internal/api/middleware"
	"github.com/fanalytics/sportsbot/internal/models"
	"github.com/fanalytics/sportsbot/pkg/database"
	"github.com/fanalytics/sportsbot/pkg/utils"
)

// ChatHandler serves the tool-calling chat endpoint and its history.
type ChatHandler struct {
	orchestrator *agent.Orchestrator
	db           *database.DB
	logger       *logrus.Logger
}

// ChatRequest is the chat endpoint's request body.
type ChatRequest struct {
	Query string `json:"query" binding:"required"`
}

func NewChatHandler(orchestrator *agent.Orchestrator, db *database.DB, logger *logrus.Logger) *ChatHandler {
	return &ChatHandler{
		orchestrator: orchestrator,
		db:           db,
		logger:       logger,
	}
}

// Chat answers a sports question with live data.
// POST /api/v1/chat
func (h *ChatHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	start := time.Now()
	result, err := h.orchestrator.RunChat(c.Request.Context(), req.Query, time.Now())
	if err != nil {
		h.logger.WithError(err).Error("Chat turn failed")
		utils.SendUpstreamError(c, "Failed to answer question", err.Error())
		return
	}

	h.persistExchange(c, req.Query, result, time.Since(start))
	utils.SendSuccess(c, result)
}

// persistExchange records the turn. History is best effort; a database
// outage never fails a chat that already produced an answer.
func (h *ChatHandler) persistExchange(c *gin.Context, question string, result *agent.ChatResult, latency time.Duration) {
	if h.db == nil {
		return
	}

	var userID *string
	if uid, err := middleware.GetUserIDFromContext(c); err == nil {
		userID = &uid
	}

	exchange, err := agent.HistoryExchange(c.GetString(middleware.RequestIDKey), question, userID, result, latency)
	if err != nil {
		h.logger.WithError(err).Warn("Failed to build chat history record")
		return
	}
	if err := h.db.Create(exchange).Error; err != nil {
		h.logger.WithError(err).Warn("Failed to persist chat exchange")
	}
}

// History lists the authenticated user's past exchanges, newest first.
// GET /api/v1/chat/history
func (h *ChatHandler) History(c *gin.Context) {
	if h.db == nil {
		utils.SendNotFound(c, "Chat history is not enabled")
		return
	}

	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		utils.SendUnauthorized(c, "Authentication required")
		return
	}

	page := 1
	perPage := 20
	if p, ok := intQuery(c, "page"); ok && p > 0 {
		page = p
	}
	if pp, ok := intQuery(c, "per_page"); ok && pp > 0 && pp <= 100 {
		perPage = pp
	}

	var total int64
	if err := h.db.Model(&models.ChatExchange{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		utils.SendInternalError(c, "Failed to load chat history")
		return
	}

	var exchanges []models.ChatExchange
	err = h.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&exchanges).Error
	if err != nil {
		utils.SendInternalError(c, "Failed to load chat history")
		return
	}

	utils.SendSuccessWithMeta(c, exchanges, &utils.Meta{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: int((total + int64(perPage) - 1) / int64(perPage)),
	})
}

func intQuery(c *gin.Context, key string) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return 0, false
	}
	n := 0
	for _, r := range raw {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}
