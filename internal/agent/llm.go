package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// ChatMessage is one turn in a model conversation.
type ChatMessage struct {
	Role       string     `json:"role"`
	Content    string     `json:"content"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
	Name       string     `json:"name,omitempty"`
}

// ToolCall is a model's request to invoke one tool.
type ToolCall struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Function struct {
		Name      string `json:"name"`
		Arguments string `json:"arguments"`
	} `json:"function"`
}

// ToolDefinition describes a callable tool in the provider's schema.
type ToolDefinition struct {
	Type     string `json:"type"`
	Function struct {
		Name        string      `json:"name"`
		Description string      `json:"description"`
		Parameters  interface{} `json:"parameters"`
	} `json:"function"`
}

// NewToolDefinition builds a function tool entry.
func NewToolDefinition(name, description string, parameters interface{}) ToolDefinition {
	var def ToolDefinition
	def.Type = "function"
	def.Function.Name = name
	def.Function.Description = description
	def.Function.Parameters = parameters
	return def
}

// ChatRequest is the provider-facing completion request.
type ChatRequest struct {
	Model       string           `json:"model"`
	Messages    []ChatMessage    `json:"messages"`
	Tools       []ToolDefinition `json:"tools,omitempty"`
	MaxTokens   int              `json:"max_tokens,omitempty"`
	Temperature float64          `json:"temperature,omitempty"`
}

// ChatResponse is the decoded completion response.
type ChatResponse struct {
	Choices []struct {
		Message      ChatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Message returns the first choice's message.
func (r *ChatResponse) Message() (ChatMessage, bool) {
	if len(r.Choices) == 0 {
		return ChatMessage{}, false
	}
	return r.Choices[0].Message, true
}

// CompletionClient abstracts the model provider so the orchestrator can be
// tested against a scripted fake.
type CompletionClient interface {
	CreateCompletion(ctx context.Context, req ChatRequest) (*ChatResponse, error)
	SupportsToolCalling(ctx context.Context) bool
	Model() string
}

// LLMClient talks to an OpenAI-compatible chat completions endpoint.
type LLMClient struct {
	httpClient *http.Client
	logger     *logrus.Logger
	baseURL    string
	apiKey     string
	model      string

	// Tool-calling support is probed once per process and memoized; the
	// answer does not change for a fixed endpoint and model.
	probeOnce   sync.Once
	probeResult bool
}

func NewLLMClient(baseURL, apiKey, model string, logger *logrus.Logger) *LLMClient {
	return &LLMClient{
		httpClient: &http.Client{Timeout: 120 * time.Second},
		logger:     logger,
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      model,
	}
}

func (c *LLMClient) Model() string {
	return c.model
}

// CreateCompletion posts one completion request.
func (c *LLMClient) CreateCompletion(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	if req.Model == "" {
		req.Model = c.model
	}

	data, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("completion request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var chatResp ChatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return nil, fmt.Errorf("decode completion: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if chatResp.Error != nil && chatResp.Error.Message != "" {
			return nil, fmt.Errorf("model provider: %s", chatResp.Error.Message)
		}
		return nil, fmt.Errorf("model provider returned status %d", resp.StatusCode)
	}
	return &chatResp, nil
}

// SupportsToolCalling probes whether the endpoint accepts a tools array.
// A provider that understands the field returns 200 or a 400 about the
// trivial request; one that rejects the schema outright fails differently.
func (c *LLMClient) SupportsToolCalling(ctx context.Context) bool {
	c.probeOnce.Do(func() {
		c.probeResult = c.probeToolSupport(ctx)
		c.logger.WithFields(logrus.Fields{
			"model":        c.model,
			"tool_calling": c.probeResult,
		}).Info("Model capability probe complete")
	})
	return c.probeResult
}

func (c *LLMClient) probeToolSupport(ctx context.Context) bool {
	probe := ChatRequest{
		Model:     c.model,
		Messages:  []ChatMessage{{Role: "user", Content: "ping"}},
		Tools:     []ToolDefinition{},
		MaxTokens: 1,
	}
	data, err := json.Marshal(probe)
	if err != nil {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(data))
	if err != nil {
		return false
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	return resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusBadRequest
}
