package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
)

// VocabularyItem is one learnable entry. Rank ties it to the quiz
// ladder; Tags feed tag-mastery achievements and tag missions.
type VocabularyItem struct {
	ID         int      `json:"id"`
	Word       string   `json:"word"`
	Reading    string   `json:"reading"`
	Meaning    string   `json:"meaning"`
	Image      string   `json:"image"`
	Category   string   `json:"category"`
	Rank       int      `json:"rank"`
	Level      int      `json:"level"`
	Difficulty int      `json:"difficulty"`
	Tags       []string `json:"tags,omitempty"`
}

// Rank is one step of the unlock ladder. RequiredScore is the quiz
// percentage needed to unlock the next rank.
type Rank struct {
	Level         int    `json:"level"`
	Name          string `json:"name"`
	Theme         string `json:"theme"`
	RequiredScore int    `json:"required_score"`
}

var Ranks = []Rank{
	{Level: 1, Name: "Rank 1", Theme: "furniture", RequiredScore: 70},
	{Level: 2, Name: "Rank 2", Theme: "food", RequiredScore: 70},
	{Level: 3, Name: "Rank 3", Theme: "animals", RequiredScore: 75},
	{Level: 4, Name: "Rank 4", Theme: "clothes", RequiredScore: 75},
	{Level: 5, Name: "Rank 5", Theme: "body", RequiredScore: 80},
	{Level: 6, Name: "Rank 6", Theme: "kitchen", RequiredScore: 80},
	{Level: 7, Name: "Rank 7", Theme: "nature", RequiredScore: 80},
	{Level: 8, Name: "Rank 8", Theme: "transport", RequiredScore: 85},
	{Level: 9, Name: "Rank 9", Theme: "buildings", RequiredScore: 85},
	{Level: 10, Name: "Rank 10", Theme: "proverbs", RequiredScore: 80},
}

// MaxRank is the top of the unlock ladder.
const MaxRank = 10

//go:embed data/vocabulary.json
var vocabularyJSON []byte

var (
	vocabulary []VocabularyItem
	itemsByID  map[int]VocabularyItem
	byRank     map[int][]VocabularyItem
)

func init() {
	if err := json.Unmarshal(vocabularyJSON, &vocabulary); err != nil {
		panic(fmt.Sprintf("catalog: bad embedded vocabulary: %v", err))
	}
	itemsByID = make(map[int]VocabularyItem, len(vocabulary))
	byRank = make(map[int][]VocabularyItem)
	for _, it := range vocabulary {
		itemsByID[it.ID] = it
		byRank[it.Rank] = append(byRank[it.Rank], it)
	}
	for r := range byRank {
		sort.Slice(byRank[r], func(i, j int) bool { return byRank[r][i].ID < byRank[r][j].ID })
	}
}

// AllItems returns the full vocabulary in ID order.
func AllItems() []VocabularyItem {
	out := make([]VocabularyItem, len(vocabulary))
	copy(out, vocabulary)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ItemByID looks up a vocabulary item.
func ItemByID(id int) (VocabularyItem, bool) {
	it, ok := itemsByID[id]
	return it, ok
}

// ItemsByRank returns the items of one rank, in ID order.
func ItemsByRank(rank int) []VocabularyItem {
	items := byRank[rank]
	out := make([]VocabularyItem, len(items))
	copy(out, items)
	return out
}

// RankByLevel returns the rank entry for a ladder level.
func RankByLevel(level int) (Rank, bool) {
	for _, r := range Ranks {
		if r.Level == level {
			return r, true
		}
	}
	return Rank{}, false
}

// AccessibleItems filters the vocabulary for a learner level. Learners
// below level 25 do not see difficulty-3+ entries.
func AccessibleItems(userLevel int) []VocabularyItem {
	all := AllItems()
	if userLevel >= 25 {
		return all
	}
	out := all[:0]
	for _, it := range all {
		if it.Difficulty <= 2 {
			out = append(out, it)
		}
	}
	return out
}

// ItemsWithTag returns the items carrying a tag, in ID order.
func ItemsWithTag(tag string) []VocabularyItem {
	var out []VocabularyItem
	for _, it := range AllItems() {
		for _, t := range it.Tags {
			if t == tag {
				out = append(out, it)
				break
			}
		}
	}
	return out
}
