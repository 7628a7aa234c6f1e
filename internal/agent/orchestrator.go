package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fanalytics/sportsbot/internal/sports"
)

// MaxToolIterations bounds the tool-calling loop. A model that keeps
// asking for tools past this gets the degraded closing answer instead of
// looping forever.
const MaxToolIterations = 5

// DegradedAnswer closes a conversation that hit the iteration cap without
// a final text answer.
const DegradedAnswer = "Analysis completed with available data."

const systemPrompt = `You are a sports statistics assistant. Use the provided tools to fetch
real data before answering; never invent scores or statistics. When a tool
fails, work with what the other tools returned and say what is missing.
Answer concisely with the concrete numbers the user asked about.`

// ToolTraceEntry records one executed tool call for persistence and
// debugging.
type ToolTraceEntry struct {
	Tool      string `json:"tool"`
	Arguments string `json:"arguments"`
	OK        bool   `json:"ok"`
	Note      string `json:"note,omitempty"`
}

// ChatResult is the outcome of one orchestrated chat turn.
type ChatResult struct {
	Answer    string           `json:"answer"`
	ToolTrace []ToolTraceEntry `json:"tool_trace,omitempty"`
	Degraded  bool             `json:"degraded,omitempty"`
	Model     string           `json:"model,omitempty"`
}

// Orchestrator runs the tool-calling conversation loop between the model
// and the sports data tools.
type Orchestrator struct {
	llm     CompletionClient
	toolset *Toolset
	logger  *logrus.Logger
}

func NewOrchestrator(llm CompletionClient, toolset *Toolset, logger *logrus.Logger) *Orchestrator {
	return &Orchestrator{llm: llm, toolset: toolset, logger: logger}
}

// RunChat answers one user question. now anchors relative dates for the
// whole turn so "yesterday" means the same date in every tool call.
func (o *Orchestrator) RunChat(ctx context.Context, question string, now time.Time) (*ChatResult, error) {
	if question == "" {
		return nil, fmt.Errorf("question is empty")
	}
	if now.IsZero() {
		now = time.Now()
	}

	if !o.llm.SupportsToolCalling(ctx) {
		return o.runPlain(ctx, question)
	}

	// A date mentioned in the question becomes the fallback for every
	// tool call whose date argument the model leaves out.
	dateHint, _ := sports.ResolveDate(question, now)
	registry := o.toolset.Registry(now, dateHint)
	messages := []ChatMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: question},
	}

	result := &ChatResult{Model: o.llm.Model()}

	for iteration := 0; iteration < MaxToolIterations; iteration++ {
		resp, err := o.llm.CreateCompletion(ctx, ChatRequest{
			Messages: messages,
			Tools:    registry.Definitions(),
		})
		if err != nil {
			return nil, err
		}

		msg, ok := resp.Message()
		if !ok {
			return nil, fmt.Errorf("model returned no choices")
		}

		if len(msg.ToolCalls) == 0 {
			result.Answer = msg.Content
			return result, nil
		}

		messages = append(messages, msg)

		// Every requested call executes, in order. Skipping any of them
		// leaves dangling tool_call_ids the provider rejects on the next
		// request.
		for _, call := range msg.ToolCalls {
			toolResult := registry.Execute(ctx, call.Function.Name, json.RawMessage(call.Function.Arguments))
			result.ToolTrace = append(result.ToolTrace, ToolTraceEntry{
				Tool:      call.Function.Name,
				Arguments: call.Function.Arguments,
				OK:        toolResult.OK,
				Note:      toolResult.Note,
			})
			o.logger.WithFields(logrus.Fields{
				"tool":      call.Function.Name,
				"ok":        toolResult.OK,
				"iteration": iteration,
			}).Debug("Executed tool call")

			messages = append(messages, ChatMessage{
				Role:       "tool",
				ToolCallID: call.ID,
				Name:       call.Function.Name,
				Content:    toolResult.JSON(),
			})
		}
	}

	result.Answer = DegradedAnswer
	result.Degraded = true
	return result, nil
}

// runPlain answers without tools for providers that cannot call them.
func (o *Orchestrator) runPlain(ctx context.Context, question string) (*ChatResult, error) {
	resp, err := o.llm.CreateCompletion(ctx, ChatRequest{
		Messages: []ChatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: question},
		},
	})
	if err != nil {
		return nil, err
	}
	msg, ok := resp.Message()
	if !ok {
		return nil, fmt.Errorf("model returned no choices")
	}
	return &ChatResult{Answer: msg.Content, Model: o.llm.Model()}, nil
}
