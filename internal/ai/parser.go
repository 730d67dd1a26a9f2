package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kotoba-learn/backend/internal/models"
)

// ParseError reports an LLM response that could not be turned into the
// expected shape.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unparseable LLM response: %s", e.Reason)
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimSpace(s)
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSpace(s)
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSuffix(s, "```")
		s = strings.TrimSpace(s)
	}
	return s
}

// ParseExamples decodes an examples response and validates it has
// usable content.
func ParseExamples(responseBody string) ([]models.GeneratedExample, error) {
	cleaned := stripCodeFences(responseBody)

	var payload struct {
		Examples []models.GeneratedExample `json:"examples"`
	}
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, &ParseError{Reason: err.Error()}
	}
	if len(payload.Examples) == 0 {
		return nil, &ParseError{Reason: "no examples in response"}
	}
	for i, ex := range payload.Examples {
		if strings.TrimSpace(ex.Sentence) == "" {
			return nil, &ParseError{Reason: fmt.Sprintf("example %d has an empty sentence", i)}
		}
	}
	return payload.Examples, nil
}

// ParseExplanation decodes an explanation response.
func ParseExplanation(responseBody string) (models.PhraseExplanation, error) {
	cleaned := stripCodeFences(responseBody)

	var explanation models.PhraseExplanation
	if err := json.Unmarshal([]byte(cleaned), &explanation); err != nil {
		return models.PhraseExplanation{}, &ParseError{Reason: err.Error()}
	}
	if strings.TrimSpace(explanation.Simple) == "" {
		return models.PhraseExplanation{}, &ParseError{Reason: "missing simple explanation"}
	}
	return explanation, nil
}
