package warmup

import (
	"context"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/poiesic/campusmate/ai"
	"github.com/poiesic/campusmate/core"
	"github.com/poiesic/campusmate/search"
	"github.com/poiesic/campusmate/storage"
)

// DefaultBatchSize is the default number of snippets embedded per call.
const DefaultBatchSize = 64

// Config holds configuration for a warm-up run.
type Config struct {
	// BatchSize is the number of snippets embedded in each call
	BatchSize int

	// ReportInterval is how often to report progress (number of snippets)
	ReportInterval int
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      DefaultBatchSize,
		ReportInterval: DefaultBatchSize,
	}
}

// Stats summarizes a warm-up run.
type Stats struct {
	Snippets int // distinct snippets across both tables
	Embedded int // snippets newly written to the cache
}

// Warmer pre-embeds table snippets into an embedding cache.
type Warmer struct {
	cache     storage.EmbeddingCache
	config    *Config
	progress  io.Writer
	processor *BatchProcessor
}

// NewWarmer creates a new warmer.
// progress: where to write progress output (typically os.Stderr); nil discards it
func NewWarmer(cache storage.EmbeddingCache, embedder ai.Embedder, config *Config, progress io.Writer) (*Warmer, error) {
	if cache == nil {
		return nil, ErrCacheRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if config == nil {
		config = DefaultConfig()
	}
	if config.BatchSize <= 0 {
		config.BatchSize = DefaultBatchSize
	}
	if config.ReportInterval <= 0 {
		config.ReportInterval = config.BatchSize
	}
	if progress == nil {
		progress = io.Discard
	}

	return &Warmer{
		cache:     cache,
		config:    config,
		progress:  progress,
		processor: NewBatchProcessor(cache, embedder),
	}, nil
}

// Snippets returns the distinct ranker snippets of both tables in table order.
func Snippets(schedule []core.ScheduleItem, announcements []core.AnnouncementItem) []string {
	snippets := make([]string, 0, len(schedule)+len(announcements))
	for _, row := range schedule {
		snippets = append(snippets, search.ScheduleSnippet(row))
	}
	for _, row := range announcements {
		snippets = append(snippets, search.AnnouncementSnippet(row))
	}

	seen := make(map[string]bool, len(snippets))
	return slices.DeleteFunc(snippets, func(s string) bool {
		if seen[s] {
			return true
		}
		seen[s] = true
		return false
	})
}

// Run embeds every snippet of the given tables that is not cached yet.
// Progress is reported to the configured writer. Context cancellation is
// checked between batches.
func (w *Warmer) Run(ctx context.Context, schedule []core.ScheduleItem, announcements []core.AnnouncementItem) (Stats, error) {
	snippets := Snippets(schedule, announcements)
	stats := Stats{Snippets: len(snippets)}
	if len(snippets) == 0 {
		fmt.Fprintf(w.progress, "No snippets to warm (0 rows)\n")
		return stats, nil
	}

	fmt.Fprintf(w.progress, "Warming %d snippets for model %s (batch size: %d)\n",
		len(snippets), w.cache.Model(), w.config.BatchSize)

	tracker := NewProgressTracker(w.progress, len(snippets), w.config.ReportInterval)
	tracker.Start()

	for batch := range slices.Chunk(snippets, w.config.BatchSize) {
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		default:
		}

		embedded, err := w.processor.Process(ctx, batch)
		if err != nil {
			return stats, fmt.Errorf("failed to process batch: %w", err)
		}
		stats.Embedded += embedded
		tracker.Increment(len(batch))
	}

	tracker.Finish()

	elapsed := tracker.Elapsed()
	fmt.Fprintf(w.progress, "Warm-up complete. Embedded %d of %d snippets in %v\n",
		stats.Embedded, stats.Snippets, elapsed.Round(time.Millisecond))

	return stats, nil
}
