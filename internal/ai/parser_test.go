package ai

import (
	"errors"
	"testing"
)

const validExamplesJSON = `{
  "examples": [
    {"sentence": "猫がソファで寝ています。", "situation": "At home", "difficulty": "easy"},
    {"sentence": "七転び八起きの精神で頑張ろう。", "situation": "Encouraging a friend", "difficulty": "medium"}
  ]
}`

func TestParseExamples_Valid(t *testing.T) {
	examples, err := ParseExamples(validExamplesJSON)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(examples) != 2 {
		t.Fatalf("expected 2 examples, got %d", len(examples))
	}
	if examples[0].Difficulty != "easy" {
		t.Errorf("expected easy, got %s", examples[0].Difficulty)
	}
}

func TestParseExamples_MarkdownFences(t *testing.T) {
	if _, err := ParseExamples("```json\n" + validExamplesJSON + "\n```"); err != nil {
		t.Errorf("expected fences stripped, got: %v", err)
	}
	if _, err := ParseExamples("```\n" + validExamplesJSON + "\n```"); err != nil {
		t.Errorf("expected bare fences stripped, got: %v", err)
	}
}

func TestParseExamples_BadJSON(t *testing.T) {
	_, err := ParseExamples("the model wrote prose instead")
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Errorf("expected ParseError, got: %v", err)
	}
}

func TestParseExamples_EmptyList(t *testing.T) {
	if _, err := ParseExamples(`{"examples": []}`); err == nil {
		t.Error("expected error for empty examples")
	}
}

func TestParseExamples_BlankSentence(t *testing.T) {
	if _, err := ParseExamples(`{"examples": [{"sentence": "  ", "situation": "x"}]}`); err == nil {
		t.Error("expected error for blank sentence")
	}
}

func TestParseExplanation_Valid(t *testing.T) {
	input := `{
  "simple": "It means keep trying.",
  "detailed": "A proverb about persistence through failure.",
  "usage_tips": ["Use when encouraging someone."]
}`
	explanation, err := ParseExplanation(input)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if explanation.Simple == "" || len(explanation.UsageTips) != 1 {
		t.Errorf("unexpected explanation: %+v", explanation)
	}
}

func TestParseExplanation_MissingSimple(t *testing.T) {
	if _, err := ParseExplanation(`{"detailed": "only detail"}`); err == nil {
		t.Error("expected error when simple explanation is missing")
	}
}
