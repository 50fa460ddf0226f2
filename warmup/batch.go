package warmup

import (
	"context"
	"fmt"
	"time"

	"github.com/poiesic/campusmate/ai"
	"github.com/poiesic/campusmate/core"
	"github.com/poiesic/campusmate/storage"
)

// BatchProcessor embeds batches of snippets that are missing from the cache.
type BatchProcessor struct {
	cache    storage.EmbeddingCache
	embedder ai.Embedder
}

// NewBatchProcessor creates a new batch processor.
// Transient embedding failures are retried by the embedder itself.
func NewBatchProcessor(cache storage.EmbeddingCache, embedder ai.Embedder) *BatchProcessor {
	return &BatchProcessor{
		cache:    cache,
		embedder: embedder,
	}
}

// Process embeds the snippets of one batch that are not cached yet and
// stores them. It returns how many snippets were newly embedded.
func (bp *BatchProcessor) Process(ctx context.Context, snippets []string) (int, error) {
	if len(snippets) == 0 {
		return 0, nil
	}

	ids := make([]core.ID, len(snippets))
	for i, snippet := range snippets {
		ids[i] = core.IDFromContent(snippet)
	}

	cached, err := bp.cache.GetEmbeddings(ctx, ids...)
	if err != nil {
		return 0, fmt.Errorf("failed to read cache: %w", err)
	}

	var texts []string
	var missing []core.ID
	for i, id := range ids {
		if _, ok := cached[id]; ok {
			continue
		}
		texts = append(texts, snippets[i])
		missing = append(missing, id)
	}
	if len(texts) == 0 {
		return 0, nil
	}

	vectors, err := bp.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("failed to generate embeddings: %w", err)
	}

	if len(vectors) != len(texts) {
		return 0, fmt.Errorf("%w: expected %d, got %d", ai.ErrEmbeddingCountMismatch, len(texts), len(vectors))
	}

	now := time.Now().UTC()
	embeddings := make([]*core.Embedding, len(vectors))
	for i := range vectors {
		embeddings[i] = &core.Embedding{
			Id:         missing[i],
			Model:      bp.cache.Model(),
			Vector:     vectors[i],
			InsertedAt: now,
		}
	}

	if err := bp.cache.PutEmbeddings(ctx, embeddings...); err != nil {
		return 0, fmt.Errorf("failed to store embeddings: %w", err)
	}

	return len(embeddings), nil
}
