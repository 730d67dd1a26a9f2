package ai

import (
	"sync"

	"github.com/kotoba-learn/backend/internal/models"
)

// exampleKey identifies one cacheable examples request. Two learners at
// the same level asking for the same item get the same examples.
type exampleKey struct {
	ItemID int
	Level  int
	Count  int
}

// ExampleCache memoizes generated examples. It is a plain grow-only map
// behind a mutex: the keyspace is bounded by catalog size times level
// bands, small enough that eviction is not worth the machinery.
type ExampleCache struct {
	mu      sync.RWMutex
	entries map[exampleKey][]models.GeneratedExample
}

func NewExampleCache() *ExampleCache {
	return &ExampleCache{
		entries: make(map[exampleKey][]models.GeneratedExample),
	}
}

// levelBand folds a raw level into the prompt's proficiency bands so
// the cache hits across nearby levels.
func levelBand(level int) int {
	switch {
	case level < 10:
		return 0
	case level < 25:
		return 1
	case level < 50:
		return 2
	default:
		return 3
	}
}

func (c *ExampleCache) Get(itemID, level, count int) ([]models.GeneratedExample, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	examples, ok := c.entries[exampleKey{ItemID: itemID, Level: levelBand(level), Count: count}]
	return examples, ok
}

func (c *ExampleCache) Put(itemID, level, count int, examples []models.GeneratedExample) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[exampleKey{ItemID: itemID, Level: levelBand(level), Count: count}] = examples
}

// Len reports how many entries are cached.
func (c *ExampleCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
