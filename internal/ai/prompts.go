package ai

import (
	"fmt"
	"strings"
)

// learnerDescription bands a numeric level into the proficiency wording
// the prompts use.
func learnerDescription(level int) string {
	switch {
	case level < 10:
		return "a complete beginner who knows only basic everyday words"
	case level < 25:
		return "an early learner comfortable with simple sentences"
	case level < 50:
		return "an intermediate learner who can read everyday Japanese"
	default:
		return "an advanced learner working toward native-level nuance"
	}
}

func containsExplanationMarker(prompt string) bool {
	return strings.Contains(prompt, `"simple"`)
}

// ExamplesSystemPrompt frames the model as a Japanese tutor that must
// answer with bare JSON.
func ExamplesSystemPrompt() string {
	return `You are a Japanese language tutor creating example sentences for vocabulary practice.
Always respond with a single JSON object and nothing else: no prose, no markdown fences.
Every example sentence must be natural Japanese that actually uses the given word or phrase.`
}

// BuildExamplesPrompt asks for count example sentences using a phrase,
// pitched at the learner's level.
func BuildExamplesPrompt(phrase, meaning string, userLevel, count int, context string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create %d Japanese example sentences using the phrase %q (%s).\n", count, phrase, meaning)
	fmt.Fprintf(&b, "The learner is %s; keep the surrounding vocabulary at their level.\n", learnerDescription(userLevel))
	if context != "" {
		fmt.Fprintf(&b, "Preferred situation or theme: %s.\n", context)
	}
	b.WriteString(`
Respond with this JSON shape:
{
  "examples": [
    {"sentence": "...", "situation": "...", "difficulty": "easy|medium|hard"}
  ]
}
"sentence" is the Japanese sentence, "situation" is a one-line English note on when you would say it.
Order the examples from easiest to hardest.`)
	return b.String()
}

// ExplanationSystemPrompt frames the model as a cultural guide.
func ExplanationSystemPrompt() string {
	return `You are a Japanese language and culture guide explaining words and proverbs to learners.
Always respond with a single JSON object and nothing else: no prose, no markdown fences.
Explanations are written in English; the phrase itself stays in Japanese.`
}

// BuildExplanationPrompt asks for a layered explanation of a phrase.
func BuildExplanationPrompt(phrase string, userLevel int, includeHistory, includeRelated bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Explain the Japanese phrase %q to %s.\n", phrase, learnerDescription(userLevel))
	b.WriteString(`
Respond with this JSON shape:
{
  "simple": "one or two plain sentences a beginner can follow",
  "detailed": "a fuller explanation with nuance and register",`)
	if includeHistory {
		b.WriteString("\n  \"history\": \"where the phrase comes from\",")
	}
	if includeRelated {
		b.WriteString("\n  \"related_phrases\": [\"two or three related Japanese phrases\"],")
	}
	b.WriteString(`
  "usage_tips": ["two or three short tips on when to use or avoid it"]
}`)
	return b.String()
}
