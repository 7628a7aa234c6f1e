package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/fanalytics/sportsbot/internal/agent"
)

// stubLLM answers every completion with fixed text and no tool support,
// so chat requests resolve without any upstream.
type stubLLM struct {
	answer string
}

func (s *stubLLM) CreateCompletion(ctx context.Context, req agent.ChatRequest) (*agent.ChatResponse, error) {
	var resp agent.ChatResponse
	resp.Choices = []struct {
		Message      agent.ChatMessage `json:"message"`
		FinishReason string            `json:"finish_reason"`
	}{{Message: agent.ChatMessage{Role: "assistant", Content: s.answer}, FinishReason: "stop"}}
	return &resp, nil
}

func (s *stubLLM) SupportsToolCalling(ctx context.Context) bool { return false }

func (s *stubLLM) Model() string { return "stub-model" }

func newChatTestRouter(answer string) *gin.Engine {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	orchestrator := agent.NewOrchestrator(&stubLLM{answer: answer}, &agent.Toolset{Logger: logger}, logger)
	handler := NewChatHandler(orchestrator, nil, logger)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/chat", handler.Chat)
	return router
}

func TestChatBindsQueryField(t *testing.T) {
	router := newChatTestRouter("The Hawks lost by six.")

	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"query": "How did the Hawks do?"}`))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "The Hawks lost by six.")
}

func TestChatRejectsMissingQuery(t *testing.T) {
	router := newChatTestRouter("unused")

	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"question": "wrong field"}`))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
