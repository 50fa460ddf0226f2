package search

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tmc/langchaingo/schema"

	"github.com/poiesic/campusmate/ai"
	"github.com/poiesic/campusmate/core"
	"github.com/poiesic/campusmate/filter"
	"github.com/poiesic/campusmate/query"
)

// DefaultMaxMatches is the number of matches requested from the ranker.
const DefaultMaxMatches = 5

// Searcher answers schedule and announcement queries against in-memory tables.
// Safe for concurrent use when the ranker is.
type Searcher struct {
	ranker     ai.Ranker
	parser     *query.Parser
	maxMatches int
	degrade    bool
	logger     *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithParser sets the query parser. Default is query.DefaultParser.
func WithParser(parser *query.Parser) Option {
	return func(s *Searcher) error {
		if parser == nil {
			parser = query.DefaultParser
		}
		s.parser = parser
		return nil
	}
}

// WithMaxMatches sets how many matches are requested from the ranker.
// Default is DefaultMaxMatches.
func WithMaxMatches(n int) Option {
	return func(s *Searcher) error {
		if n < 1 {
			return ErrInvalidMaxMatches
		}
		s.maxMatches = n
		return nil
	}
}

// WithDegradeOnRankFailure makes ranker failures fall back to the filtered
// rows instead of failing the query.
func WithDegradeOnRankFailure(degrade bool) Option {
	return func(s *Searcher) error {
		s.degrade = degrade
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(ranker ai.Ranker, opts ...Option) (*Searcher, error) {
	if ranker == nil {
		return nil, ErrRankerRequired
	}

	s := &Searcher{
		ranker:     ranker,
		parser:     query.DefaultParser,
		maxMatches: DefaultMaxMatches,
		logger:     slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	s.logger = s.logger.With("component", "searcher")

	return s, nil
}

// AnswerSchedule answers a schedule query against rows.
func (s *Searcher) AnswerSchedule(ctx context.Context, text string, rows []core.ScheduleItem) (core.MatchResult[core.ScheduleResult], error) {
	return s.AnswerScheduleWithMonitor(ctx, text, rows, nil)
}

// AnswerScheduleWithMonitor answers a schedule query with monitoring.
// The monitor receives callbacks at each stage of the search process.
func (s *Searcher) AnswerScheduleWithMonitor(ctx context.Context, text string, rows []core.ScheduleItem, monitor SearchMonitor) (core.MatchResult[core.ScheduleResult], error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	monitor.Start(text)

	pred := s.parser.ParseTodo(text)
	monitor.AfterParse(ParsedQuery{Dataset: DatasetSchedule, Date: pred.Date, Hour: pred.Hour, Keyword: pred.Keyword})

	filtered := filter.Schedule(rows, pred)
	monitor.AfterFilter(len(filtered))

	semantic := len(filtered) > 0 && ScheduleNeedsRanking(pred)
	s.logger.Info("schedule query",
		"query", text,
		"date", pred.Date,
		"hour", hourAttr(pred.Hour),
		"keyword", pred.Keyword,
		"filteredRows", len(filtered),
		"semantic", semantic)

	matched := filtered
	if semantic {
		snippets := make([]string, len(filtered))
		for i, row := range filtered {
			snippets[i] = ScheduleSnippet(row)
		}

		docs, err := s.rank(ctx, snippets, text, monitor)
		switch {
		case err == nil:
			matched = matchScheduleRows(docs, filtered)
		case s.degrade:
			s.logger.Warn("ranking failed, returning filtered rows", "query", text, "err", err)
		default:
			return core.MatchResult[core.ScheduleResult]{}, err
		}
	}

	result := AssembleSchedule(matched)
	monitor.Finish(len(result.Records), result.IsNoResult())
	return result, nil
}

// AnswerAnnouncements answers an announcement query against rows.
func (s *Searcher) AnswerAnnouncements(ctx context.Context, text string, rows []core.AnnouncementItem) (core.MatchResult[core.AnnouncementResult], error) {
	return s.AnswerAnnouncementsWithMonitor(ctx, text, rows, nil)
}

// AnswerAnnouncementsWithMonitor answers an announcement query with monitoring.
// The monitor receives callbacks at each stage of the search process.
func (s *Searcher) AnswerAnnouncementsWithMonitor(ctx context.Context, text string, rows []core.AnnouncementItem, monitor SearchMonitor) (core.MatchResult[core.AnnouncementResult], error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	monitor.Start(text)

	pred := s.parser.ParseAnnouncement(text)
	monitor.AfterParse(ParsedQuery{Dataset: DatasetAnnouncements, Date: pred.Date, Keyword: pred.Keyword})

	filtered := filter.Announcements(rows, pred)
	monitor.AfterFilter(len(filtered))

	semantic := len(filtered) > 0 && AnnouncementsNeedRanking(text, pred, len(filtered))
	s.logger.Info("announcement query",
		"query", text,
		"date", pred.Date,
		"keyword", pred.Keyword,
		"filteredRows", len(filtered),
		"semantic", semantic)

	matched := filtered
	if semantic {
		snippets := make([]string, len(filtered))
		for i, row := range filtered {
			snippets[i] = AnnouncementSnippet(row)
		}

		docs, err := s.rank(ctx, snippets, text, monitor)
		switch {
		case err == nil:
			matched = matchAnnouncementRows(docs, filtered)
		case s.degrade:
			s.logger.Warn("ranking failed, returning filtered rows", "query", text, "err", err)
		default:
			return core.MatchResult[core.AnnouncementResult]{}, err
		}
	}

	result := AssembleAnnouncements(matched)
	monitor.Finish(len(result.Records), result.IsNoResult())
	return result, nil
}

// rank asks the ranker for up to min(maxMatches, len(snippets)) matches.
func (s *Searcher) rank(ctx context.Context, snippets []string, text string, monitor SearchMonitor) ([]schema.Document, error) {
	k := min(s.maxMatches, len(snippets))
	monitor.BeforeSemanticSearch(snippets, k)

	docs, err := s.ranker.Rank(ctx, snippets, text, k)
	if err != nil {
		s.logger.Error("error ranking snippets", "snippets", len(snippets), "err", err)
		return nil, fmt.Errorf("%w: %w", ErrRankingFailed, err)
	}
	if len(docs) > k {
		docs = docs[:k]
	}
	monitor.AfterSemanticSearch(docs)
	return docs, nil
}

func hourAttr(hour *int) any {
	if hour == nil {
		return nil
	}
	return *hour
}
