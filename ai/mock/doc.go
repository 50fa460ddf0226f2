// Package mock provides test double implementations of AI services.
//
// This package contains mock implementations of ai.Embedder, ai.Ranker and
// ai.AIProvider for unit tests that must not reach a real model.
//
// # Usage
//
//	mockEmbedder := mock.NewMockEmbedder()
//	mockEmbedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
//	    return []float32{0.1, 0.2, 0.3}, nil
//	}
//
//	ranker := mock.NewMockRanker()
//	docs, err := ranker.Rank(ctx, snippets, "10시 스터디", 5)
//	count := ranker.CallCount()
//
// # Default Behavior
//
//   - MockEmbedder: Returns deterministic unit vectors based on text hash
//   - MockRanker: Scores snippets by query token overlap, stable top-k
//   - MockProvider: Wraps a mock embedder with the model name "mock-embedding"
package mock
