// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package campusmate

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/poiesic/campusmate/ai"
	"github.com/poiesic/campusmate/ai/openai"
	"github.com/poiesic/campusmate/batch"
	"github.com/poiesic/campusmate/config"
	"github.com/poiesic/campusmate/core"
	"github.com/poiesic/campusmate/index"
	"github.com/poiesic/campusmate/search"
	"github.com/poiesic/campusmate/storage"
	"github.com/poiesic/campusmate/storage/badger"
	"github.com/poiesic/campusmate/table"
	"github.com/poiesic/campusmate/warmup"
)

var _ batch.Answerer = (*Assistant)(nil)

// ErrCacheDisabled is returned by operations that need the embedding cache
// when the assistant was created without one.
var ErrCacheDisabled = errors.New("embedding cache disabled")

// Assistant answers questions about a schedule table and an announcement
// table. The tables are fixed at construction and never modified.
type Assistant struct {
	schedule      []core.ScheduleItem
	announcements []core.AnnouncementItem
	backend       *badger.Backend
	cache         storage.EmbeddingCache
	provider      ai.AIProvider
	ownsProvider  bool
	searcher      *search.Searcher
	logger        *slog.Logger
}

// AssistantOption configures an Assistant.
type AssistantOption func(*assistantOptions)

type assistantOptions struct {
	aiConfig      *ai.Config
	provider      ai.AIProvider
	cachePath     string
	cacheDisabled bool
	searchOpts    []search.Option
	logger        *slog.Logger
}

// WithAIConfig sets the embedding service configuration.
// Ignored when WithProvider is used.
func WithAIConfig(config *ai.Config) AssistantOption {
	return func(o *assistantOptions) {
		o.aiConfig = config
	}
}

// WithProvider uses provider instead of connecting to the configured
// embedding service. The caller keeps ownership: Close does not close it.
func WithProvider(provider ai.AIProvider) AssistantOption {
	return func(o *assistantOptions) {
		o.provider = provider
	}
}

// WithCachePath stores snippet embeddings in a badger directory at path.
// Default is an in-memory cache that lives as long as the assistant.
func WithCachePath(path string) AssistantOption {
	return func(o *assistantOptions) {
		o.cachePath = path
	}
}

// WithoutCache embeds snippets on every semantic query.
func WithoutCache() AssistantOption {
	return func(o *assistantOptions) {
		o.cacheDisabled = true
	}
}

// WithSearchOptions passes options through to the searcher.
func WithSearchOptions(opts ...search.Option) AssistantOption {
	return func(o *assistantOptions) {
		o.searchOpts = append(o.searchOpts, opts...)
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) AssistantOption {
	return func(o *assistantOptions) {
		o.logger = logger
	}
}

// NewAssistant creates an assistant over the given tables.
func NewAssistant(schedule []core.ScheduleItem, announcements []core.AnnouncementItem, opts ...AssistantOption) (*Assistant, error) {
	options := &assistantOptions{
		aiConfig: ai.DefaultConfig(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}
	if options.logger == nil {
		options.logger = slog.Default()
	}

	a := &Assistant{
		schedule:      schedule,
		announcements: announcements,
		logger:        options.logger,
	}

	provider := options.provider
	if provider == nil {
		var err error
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			return nil, err
		}
		a.ownsProvider = true
	}
	a.provider = provider

	rankerOpts := []index.Option{index.WithLogger(options.logger)}
	if !options.cacheDisabled {
		backend, err := badger.OpenBackend(options.cachePath, options.cachePath == "")
		if err != nil {
			a.Close()
			return nil, err
		}
		a.backend = backend

		cache, err := badger.NewEmbeddingCache(backend, provider.Model())
		if err != nil {
			a.Close()
			return nil, err
		}
		a.cache = cache
		rankerOpts = append(rankerOpts, index.WithCache(cache))
	}

	ranker, err := index.NewRanker(provider.Embedder(), rankerOpts...)
	if err != nil {
		a.Close()
		return nil, err
	}

	searchOpts := append([]search.Option{search.WithLogger(options.logger)}, options.searchOpts...)
	searcher, err := search.NewSearcher(ranker, searchOpts...)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.searcher = searcher

	a.logger.Info("assistant ready",
		"scheduleRows", len(schedule),
		"announcementRows", len(announcements),
		"model", provider.Model(),
		"cache", a.cache != nil)

	return a, nil
}

// OpenAssistant loads the tables named in cfg and creates an assistant
// configured from it. Extra options are applied after the configured ones.
func OpenAssistant(cfg *config.Config, opts ...AssistantOption) (*Assistant, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	schedule, err := table.LoadSchedule(cfg.Data.Schedule)
	if err != nil {
		return nil, err
	}
	announcements, err := table.LoadAnnouncements(cfg.Data.Announcements)
	if err != nil {
		return nil, err
	}

	configured := []AssistantOption{
		WithAIConfig(cfg.EmbeddingConfig()),
		WithCachePath(cfg.Cache.Path),
		WithSearchOptions(
			search.WithMaxMatches(cfg.Search.MaxMatches),
			search.WithDegradeOnRankFailure(cfg.Search.DegradeOnRankFailure),
		),
	}
	if cfg.Cache.Disabled {
		configured = append(configured, WithoutCache())
	}

	return NewAssistant(schedule, announcements, append(configured, opts...)...)
}

// AnswerSchedule answers a question about the schedule table.
func (a *Assistant) AnswerSchedule(ctx context.Context, query string) (core.MatchResult[core.ScheduleResult], error) {
	return a.searcher.AnswerSchedule(ctx, query, a.schedule)
}

// AnswerAnnouncements answers a question about the announcement table.
func (a *Assistant) AnswerAnnouncements(ctx context.Context, query string) (core.MatchResult[core.AnnouncementResult], error) {
	return a.searcher.AnswerAnnouncements(ctx, query, a.announcements)
}

// Schedule returns the schedule table. Callers must not modify it.
func (a *Assistant) Schedule() []core.ScheduleItem {
	return a.schedule
}

// Announcements returns the announcement table. Callers must not modify it.
func (a *Assistant) Announcements() []core.AnnouncementItem {
	return a.announcements
}

// Searcher returns the underlying searcher.
func (a *Assistant) Searcher() *search.Searcher {
	return a.searcher
}

// NewWarmer creates a warmer that fills the assistant's embedding cache.
func (a *Assistant) NewWarmer(config *warmup.Config, progress io.Writer) (*warmup.Warmer, error) {
	if a.cache == nil {
		return nil, ErrCacheDisabled
	}
	return warmup.NewWarmer(a.cache, a.provider.Embedder(), config, progress)
}

// Warm embeds every table snippet that is not cached yet.
func (a *Assistant) Warm(ctx context.Context, config *warmup.Config, progress io.Writer) (warmup.Stats, error) {
	warmer, err := a.NewWarmer(config, progress)
	if err != nil {
		return warmup.Stats{}, err
	}
	return warmer.Run(ctx, a.schedule, a.announcements)
}

// NewBatchRunner creates a runner that answers queries against this
// assistant concurrently. Release the runner when done.
func (a *Assistant) NewBatchRunner(opts ...batch.Option) (*batch.Runner, error) {
	return batch.NewRunner(a, append([]batch.Option{batch.WithLogger(a.logger)}, opts...)...)
}

// Close releases the embedding cache, and the embedding provider when the
// assistant created it.
func (a *Assistant) Close() error {
	if a.provider != nil && a.ownsProvider {
		if err := a.provider.Close(); err != nil {
			a.logger.Error("error closing AI provider", "err", err)
		}
	}

	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Error("error closing embedding cache", "err", err)
			return err
		}
	}

	if a.backend != nil {
		if err := a.backend.Close(); err != nil {
			a.logger.Error("error closing backend storage", "err", err)
			return err
		}
	}
	return nil
}
