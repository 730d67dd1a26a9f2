package models

// ── AI Collaborator Types ─────────────────────────────────

// GenerateExamplesRequest asks the LLM for example sentences using a
// phrase. ItemID keys the response cache; Count defaults to 3.
type GenerateExamplesRequest struct {
	ItemID    int    `json:"item_id"`
	Phrase    string `json:"phrase"`
	Meaning   string `json:"meaning"`
	UserLevel int    `json:"user_level"`
	Context   string `json:"context,omitempty"`
	Count     int    `json:"count,omitempty"`
}

type GeneratedExample struct {
	Sentence   string `json:"sentence"`
	Situation  string `json:"situation"`
	Difficulty string `json:"difficulty"` // easy | medium | hard
}

type GenerateExamplesResponse struct {
	Success   bool               `json:"success"`
	Examples  []GeneratedExample `json:"examples"`
	FromCache bool               `json:"from_cache,omitempty"`
	Error     string             `json:"error,omitempty"`
}

type ExplainPhraseRequest struct {
	Phrase         string `json:"phrase"`
	UserLevel      int    `json:"user_level"`
	IncludeHistory bool   `json:"include_history,omitempty"`
	IncludeRelated bool   `json:"include_related,omitempty"`
}

type PhraseExplanation struct {
	Simple         string   `json:"simple"`
	Detailed       string   `json:"detailed"`
	History        string   `json:"history,omitempty"`
	RelatedPhrases []string `json:"related_phrases,omitempty"`
	UsageTips      []string `json:"usage_tips"`
}

type ExplainPhraseResponse struct {
	Success     bool              `json:"success"`
	Explanation PhraseExplanation `json:"explanation"`
	Error       string            `json:"error,omitempty"`
}
