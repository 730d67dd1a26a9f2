// Package ai wraps the LLM collaborator that generates example
// sentences and phrase explanations. Every outward-facing response is
// fail-closed: an upstream error becomes {success:false} with a
// message, never a 5xx surprise for the client.
package ai

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/packages/param"

	"github.com/kotoba-learn/backend/internal/config"
)

// LLMClient is the interface both client implementations satisfy.
type LLMClient interface {
	Generate(ctx context.Context, systemPrompt string, userPrompt string) (*LLMResponse, error)
}

// LLMResponse holds the raw response content and token usage.
type LLMResponse struct {
	Content      string
	PromptTokens int
	OutputTokens int
}

// NewClient picks the configured client implementation.
func NewClient(cfg config.AIConfig) LLMClient {
	if cfg.Mock {
		log.Println("[ai] using mock client")
		return NewMockClient()
	}
	log.Println("[ai] using Anthropic API:", cfg.Model)
	return NewAPIClient(cfg.Model, cfg.APIKey)
}

// ── APIClient — Anthropic SDK (Production) ─────────────────

type APIClient struct {
	client *anthropic.Client
	model  string
}

func NewAPIClient(model, apiKey string) *APIClient {
	client := anthropic.NewClient(
		option.WithAPIKey(apiKey),
	)
	return &APIClient{client: &client, model: model}
}

func (c *APIClient) Generate(ctx context.Context, systemPrompt string, userPrompt string) (*LLMResponse, error) {
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   2048,
		Temperature: param.NewOpt(0.7),
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	}

	message, err := c.callWithRetry(ctx, params)
	if err != nil {
		return nil, err
	}

	var responseText string
	for _, block := range message.Content {
		if block.Type == "text" {
			responseText = block.Text
			break
		}
	}

	if responseText == "" {
		return nil, fmt.Errorf("no text content in API response")
	}

	return &LLMResponse{
		Content:      responseText,
		PromptTokens: int(message.Usage.InputTokens),
		OutputTokens: int(message.Usage.OutputTokens),
	}, nil
}

func (c *APIClient) callWithRetry(ctx context.Context, params anthropic.MessageNewParams) (*anthropic.Message, error) {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			sleepDuration := time.Duration(1<<uint(attempt)) * time.Second
			log.Printf("[ai] retrying Anthropic API call in %v (attempt %d)", sleepDuration, attempt+1)
			time.Sleep(sleepDuration)
		}

		message, err := c.client.Messages.New(ctx, params)
		if err == nil {
			return message, nil
		}
		lastErr = err
		log.Printf("[ai] Anthropic API attempt %d failed: %v", attempt+1, err)
	}
	return nil, fmt.Errorf("anthropic API failed after retries: %w", lastErr)
}

// ── MockClient — Local Development ─────────────────────────

type MockClient struct{}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) Generate(ctx context.Context, systemPrompt string, userPrompt string) (*LLMResponse, error) {
	return &LLMResponse{
		Content:      mockContentFor(userPrompt),
		PromptTokens: 300,
		OutputTokens: 600,
	}, nil
}

func mockContentFor(userPrompt string) string {
	// The explanation prompt always asks for a "simple" field; use that
	// to pick which mock shape to return.
	if containsExplanationMarker(userPrompt) {
		return `{
  "simple": "A short, plain explanation of the phrase.",
  "detailed": "A longer explanation covering nuance and register.",
  "history": "A note on where the phrase comes from.",
  "related_phrases": ["related phrase one", "related phrase two"],
  "usage_tips": ["Use it in encouraging contexts.", "Avoid it in formal writing."]
}`
	}
	return `{
  "examples": [
    {"sentence": "First mock example sentence.", "situation": "At home", "difficulty": "easy"},
    {"sentence": "Second mock example sentence.", "situation": "At school", "difficulty": "medium"},
    {"sentence": "Third mock example sentence.", "situation": "At work", "difficulty": "hard"}
  ]
}`
}
