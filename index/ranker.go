package index

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/tmc/langchaingo/schema"

	"github.com/poiesic/campusmate/ai"
	"github.com/poiesic/campusmate/core"
	"github.com/poiesic/campusmate/storage"
)

// Ranker ranks snippets by cosine similarity of their embeddings to the query.
// Safe for concurrent use when the embedder and cache are.
type Ranker struct {
	embedder ai.Embedder
	cache    storage.EmbeddingCache
	logger   *slog.Logger
}

var _ ai.Ranker = (*Ranker)(nil)

// Option configures a Ranker.
type Option func(*Ranker) error

// WithCache stores snippet embeddings in cache so repeated queries over the
// same rows only embed the query.
func WithCache(cache storage.EmbeddingCache) Option {
	return func(r *Ranker) error {
		if cache != nil && cache.Model() == "" {
			return ErrModelRequired
		}
		r.cache = cache
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Ranker) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewRanker creates a ranker backed by embedder.
func NewRanker(embedder ai.Embedder, opts ...Option) (*Ranker, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	r := &Ranker{
		embedder: embedder,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	r.logger = r.logger.With("component", "ranker")
	return r, nil
}

// Rank returns up to k snippets ordered by similarity to query, best first.
// Ties keep input order. k is clamped to len(snippets).
func (r *Ranker) Rank(ctx context.Context, snippets []string, query string, k int) ([]schema.Document, error) {
	if len(snippets) == 0 || k <= 0 {
		return nil, nil
	}
	k = min(k, len(snippets))

	vectors, err := r.snippetVectors(ctx, snippets)
	if err != nil {
		return nil, err
	}

	queryVector, err := r.embedder.EmbedText(ctx, query)
	if err != nil {
		r.logger.Error("error generating embedding for query", "query", query, "err", err)
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	docs := make([]schema.Document, len(snippets))
	for i, snippet := range snippets {
		docs[i] = schema.Document{
			PageContent: snippet,
			Score:       ai.CosineSimilarity(queryVector, vectors[i]),
		}
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

	return docs[:k], nil
}

// snippetVectors returns one vector per snippet, in input order.
func (r *Ranker) snippetVectors(ctx context.Context, snippets []string) ([][]float32, error) {
	ids := make([]core.ID, len(snippets))
	for i, snippet := range snippets {
		ids[i] = core.IDFromContent(snippet)
	}

	cached := map[core.ID]*core.Embedding{}
	if r.cache != nil {
		found, err := r.cache.GetEmbeddings(ctx, ids...)
		if err != nil {
			// Fall back to embedding everything.
			r.logger.Warn("error reading embedding cache", "err", err)
		} else {
			cached = found
		}
	}

	vectors := make([][]float32, len(snippets))
	var missing []int
	for i, id := range ids {
		if embedding, ok := cached[id]; ok {
			vectors[i] = embedding.Vector
			continue
		}
		missing = append(missing, i)
	}

	r.logger.Debug("resolved snippet embeddings", "snippets", len(snippets), "cached", len(snippets)-len(missing))
	if len(missing) == 0 {
		return vectors, nil
	}

	texts := make([]string, len(missing))
	for j, i := range missing {
		texts[j] = snippets[i]
	}

	embedded, err := r.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		r.logger.Error("error generating snippet embeddings", "snippets", len(texts), "err", err)
		return nil, fmt.Errorf("embedding snippets: %w", err)
	}
	if len(embedded) != len(texts) {
		return nil, fmt.Errorf("%w: expected %d, received %d", ai.ErrEmbeddingCountMismatch, len(texts), len(embedded))
	}

	fresh := make([]*core.Embedding, 0, len(missing))
	seen := make(map[core.ID]bool, len(missing))
	now := time.Now().UTC()
	for j, i := range missing {
		vectors[i] = embedded[j]
		if r.cache == nil || seen[ids[i]] {
			continue
		}
		seen[ids[i]] = true
		fresh = append(fresh, &core.Embedding{
			Id:         ids[i],
			Model:      r.cache.Model(),
			Vector:     embedded[j],
			InsertedAt: now,
		})
	}

	if len(fresh) > 0 {
		if err := r.cache.PutEmbeddings(ctx, fresh...); err != nil {
			r.logger.Warn("error writing embedding cache", "embeddings", len(fresh), "err", err)
		}
	}

	return vectors, nil
}
