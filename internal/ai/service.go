package ai

import (
	"context"
	"log"
	"time"

	"github.com/kotoba-learn/backend/internal/config"
	"github.com/kotoba-learn/backend/internal/models"
)

const defaultExampleCount = 3

// Service fronts the LLM with caching, timeouts, and fail-closed
// responses. Cache hits never touch the LLM; cache misses that fail
// return success=false and cache nothing.
type Service struct {
	llm     LLMClient
	cache   *ExampleCache
	timeout time.Duration
}

func NewService(llm LLMClient, cfg config.AIConfig) *Service {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Service{
		llm:     llm,
		cache:   NewExampleCache(),
		timeout: timeout,
	}
}

// GenerateExamples returns example sentences for a phrase, from cache
// when possible.
func (s *Service) GenerateExamples(ctx context.Context, req models.GenerateExamplesRequest) models.GenerateExamplesResponse {
	count := req.Count
	if count <= 0 {
		count = defaultExampleCount
	}

	if examples, ok := s.cache.Get(req.ItemID, req.UserLevel, count); ok {
		return models.GenerateExamplesResponse{
			Success:   true,
			Examples:  examples,
			FromCache: true,
		}
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.llm.Generate(ctx,
		ExamplesSystemPrompt(),
		BuildExamplesPrompt(req.Phrase, req.Meaning, req.UserLevel, count, req.Context))
	if err != nil {
		log.Printf("[ai] example generation failed for item %d: %v", req.ItemID, err)
		return models.GenerateExamplesResponse{
			Success: false,
			Error:   "example generation is temporarily unavailable",
		}
	}

	examples, err := ParseExamples(resp.Content)
	if err != nil {
		log.Printf("[ai] example parse failed for item %d: %v", req.ItemID, err)
		return models.GenerateExamplesResponse{
			Success: false,
			Error:   "example generation returned an unusable response",
		}
	}

	s.cache.Put(req.ItemID, req.UserLevel, count, examples)
	return models.GenerateExamplesResponse{
		Success:  true,
		Examples: examples,
	}
}

// ExplainPhrase returns a layered explanation of a phrase. Explanations
// are not cached: the history/related flags make the keyspace wide and
// the call is rare.
func (s *Service) ExplainPhrase(ctx context.Context, req models.ExplainPhraseRequest) models.ExplainPhraseResponse {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.llm.Generate(ctx,
		ExplanationSystemPrompt(),
		BuildExplanationPrompt(req.Phrase, req.UserLevel, req.IncludeHistory, req.IncludeRelated))
	if err != nil {
		log.Printf("[ai] explanation failed for %q: %v", req.Phrase, err)
		return models.ExplainPhraseResponse{
			Success: false,
			Error:   "explanations are temporarily unavailable",
		}
	}

	explanation, err := ParseExplanation(resp.Content)
	if err != nil {
		log.Printf("[ai] explanation parse failed for %q: %v", req.Phrase, err)
		return models.ExplainPhraseResponse{
			Success: false,
			Error:   "explanation returned an unusable response",
		}
	}

	return models.ExplainPhraseResponse{
		Success:     true,
		Explanation: explanation,
	}
}
