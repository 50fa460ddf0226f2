package mock

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/tmc/langchaingo/schema"

	"github.com/poiesic/campusmate/ai"
)

var _ ai.Ranker = (*MockRanker)(nil)

// MockRanker is a deterministic test double for ai.Ranker.
//
// By default it scores each snippet by the number of whitespace-separated
// query tokens it contains and returns the top k, ties broken by input order.
type MockRanker struct {
	// RankFunc is called by Rank if set.
	RankFunc func(ctx context.Context, snippets []string, query string, k int) ([]schema.Document, error)

	mu           sync.Mutex
	callCount    int
	lastSnippets []string
	lastK        int
}

// NewMockRanker creates a mock ranker with default deterministic behavior.
func NewMockRanker() *MockRanker {
	return &MockRanker{}
}

// Rank records the call and ranks snippets.
func (m *MockRanker) Rank(ctx context.Context, snippets []string, query string, k int) ([]schema.Document, error) {
	m.mu.Lock()
	m.callCount++
	m.lastSnippets = append([]string(nil), snippets...)
	m.lastK = k
	m.mu.Unlock()

	if m.RankFunc != nil {
		return m.RankFunc(ctx, snippets, query, k)
	}

	tokens := strings.Fields(query)
	docs := make([]schema.Document, len(snippets))
	for i, snippet := range snippets {
		var score float32
		for _, tok := range tokens {
			if strings.Contains(snippet, tok) {
				score++
			}
		}
		docs[i] = schema.Document{PageContent: snippet, Score: score}
	}
	slices.SortStableFunc(docs, func(a, b schema.Document) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		}
		return 0
	})
	if k < len(docs) {
		docs = docs[:max(k, 0)]
	}
	return docs, nil
}

// CallCount returns the number of Rank calls.
func (m *MockRanker) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// LastSnippets returns the snippets passed to the most recent Rank call.
func (m *MockRanker) LastSnippets() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastSnippets
}

// LastK returns k from the most recent Rank call.
func (m *MockRanker) LastK() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastK
}

// Reset clears recorded calls and injected behavior.
func (m *MockRanker) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.lastSnippets = nil
	m.lastK = 0
	m.RankFunc = nil
}
