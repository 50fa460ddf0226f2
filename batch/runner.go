package batch

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/campusmate/core"
	"github.com/poiesic/campusmate/search"
)

// Answerer answers queries against tables it already holds.
type Answerer interface {
	AnswerSchedule(ctx context.Context, query string) (core.MatchResult[core.ScheduleResult], error)
	AnswerAnnouncements(ctx context.Context, query string) (core.MatchResult[core.AnnouncementResult], error)
}

// Query is one question addressed to one table.
type Query struct {
	Dataset search.Dataset
	Text    string
}

// Result is the answer to one Query. Exactly one of Schedule and
// Announcements is set when Err is nil.
type Result struct {
	Query         Query
	Schedule      *core.MatchResult[core.ScheduleResult]
	Announcements *core.MatchResult[core.AnnouncementResult]
	Err           error
}

// Runner answers queries on a worker pool.
type Runner struct {
	answerer Answerer
	pool     *ants.Pool
	logger   *slog.Logger
}

// Option configures a Runner.
type Option func(*Runner) error

// WithPoolSize sets the worker pool size.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(r *Runner) error {
		if size < 1 {
			size = 1
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		if r.pool != nil {
			r.pool.Release()
		}
		r.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewRunner creates a new batch runner.
// Call Release when done to free the worker pool.
func NewRunner(answerer Answerer, opts ...Option) (*Runner, error) {
	if answerer == nil {
		return nil, ErrAnswererRequired
	}

	poolSize := max(runtime.NumCPU()/2, 1)
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	r := &Runner{
		answerer: answerer,
		pool:     pool,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(r); optErr != nil {
			r.Release()
			return nil, optErr
		}
	}
	r.logger = r.logger.With("component", "batch")

	return r, nil
}

// Run answers every query and returns the results in input order.
// A failing query is reported in its Result and does not stop the others.
func (r *Runner) Run(ctx context.Context, queries []Query) []Result {
	results := make([]Result, len(queries))
	r.logger.Info("answering queries", "queries", len(queries), "workers", r.pool.Cap())

	var wg sync.WaitGroup
	for i, q := range queries {
		results[i].Query = q
		wg.Add(1)
		err := r.pool.Submit(func() {
			defer wg.Done()
			r.answer(ctx, &results[i])
		})
		if err != nil {
			wg.Done()
			results[i].Err = fmt.Errorf("submitting query: %w", err)
		}
	}
	wg.Wait()

	return results
}

func (r *Runner) answer(ctx context.Context, result *Result) {
	if err := ctx.Err(); err != nil {
		result.Err = err
		return
	}

	switch result.Query.Dataset {
	case search.DatasetSchedule:
		answer, err := r.answerer.AnswerSchedule(ctx, result.Query.Text)
		if err == nil {
			result.Schedule = &answer
		}
		result.Err = err
	case search.DatasetAnnouncements:
		answer, err := r.answerer.AnswerAnnouncements(ctx, result.Query.Text)
		if err == nil {
			result.Announcements = &answer
		}
		result.Err = err
	default:
		result.Err = fmt.Errorf("%w: %q", ErrUnknownDataset, result.Query.Dataset)
	}

	if result.Err != nil {
		r.logger.Warn("query failed", "query", result.Query.Text, "err", result.Err)
	}
}

// Release frees the worker pool. The runner must not be used afterwards.
func (r *Runner) Release() {
	if r.pool != nil {
		r.pool.Release()
	}
}
