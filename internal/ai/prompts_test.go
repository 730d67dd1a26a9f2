package ai

import (
	"strings"
	"testing"
)

func TestLearnerDescription_Bands(t *testing.T) {
	cases := []struct {
		level int
		want  string
	}{
		{1, "complete beginner"},
		{9, "complete beginner"},
		{10, "early learner"},
		{24, "early learner"},
		{25, "intermediate"},
		{49, "intermediate"},
		{50, "advanced"},
		{120, "advanced"},
	}
	for _, c := range cases {
		if got := learnerDescription(c.level); !strings.Contains(got, c.want) {
			t.Errorf("learnerDescription(%d) = %q, want it to mention %q", c.level, got, c.want)
		}
	}
}

func TestBuildExamplesPrompt_Contents(t *testing.T) {
	prompt := BuildExamplesPrompt("七転び八起き", "fall seven times, stand up eight", 12, 3, "sports")

	for _, want := range []string{"七転び八起き", "3 Japanese example sentences", "sports", `"examples"`} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	if containsExplanationMarker(prompt) {
		t.Error("examples prompt should not look like an explanation prompt")
	}
}

func TestBuildExamplesPrompt_NoContext(t *testing.T) {
	prompt := BuildExamplesPrompt("猫", "cat", 1, 2, "")
	if strings.Contains(prompt, "Preferred situation") {
		t.Error("expected no situation line without context")
	}
}

func TestBuildExplanationPrompt_OptionalSections(t *testing.T) {
	full := BuildExplanationPrompt("井の中の蛙", 30, true, true)
	if !strings.Contains(full, `"history"`) || !strings.Contains(full, `"related_phrases"`) {
		t.Error("expected history and related sections when requested")
	}
	if !containsExplanationMarker(full) {
		t.Error("explanation prompt should carry the simple field marker")
	}

	bare := BuildExplanationPrompt("井の中の蛙", 30, false, false)
	if strings.Contains(bare, `"history"`) || strings.Contains(bare, `"related_phrases"`) {
		t.Error("expected optional sections omitted")
	}
}
