package search

import (
	"strings"

	"github.com/tmc/langchaingo/schema"

	"github.com/poiesic/campusmate/core"
	"github.com/poiesic/campusmate/query"
)

// directRowLimit is the filtered announcement count at or below which ranking is skipped.
const directRowLimit = 5

// shortQueryTokens is the token count at or below which an undated
// announcement query is answered without ranking.
const shortQueryTokens = 3

// ScheduleNeedsRanking reports whether a non-empty filtered schedule set is
// routed through the ranker. Only queries with both a keyword and an hour are.
func ScheduleNeedsRanking(pred core.TodoPredicate) bool {
	if pred.Keyword == "" {
		return false
	}
	if pred.Hour == nil {
		return false
	}
	return true
}

// AnnouncementsNeedRanking reports whether a non-empty filtered announcement
// set of size rows is routed through the ranker.
func AnnouncementsNeedRanking(text string, pred core.AnnouncementPredicate, rows int) bool {
	switch {
	case rows <= directRowLimit:
		return false
	case query.IsSimpleCategory(pred.Keyword):
		return false
	case tokenCount(text) <= shortQueryTokens && pred.Date == "":
		return false
	}
	return true
}

// matchScheduleRows maps ranked snippets back to rows. Each document selects
// the first not yet selected row whose snippet it contains.
func matchScheduleRows(docs []schema.Document, rows []core.ScheduleItem) []core.ScheduleItem {
	snippets := make([]string, len(rows))
	for i, row := range rows {
		snippets[i] = ScheduleSnippet(row)
	}

	seen := make(map[core.ScheduleKey]bool, len(docs))
	matched := make([]core.ScheduleItem, 0, len(docs))
	for _, doc := range docs {
		for i, row := range rows {
			if !strings.Contains(doc.PageContent, snippets[i]) || seen[row.Key()] {
				continue
			}
			seen[row.Key()] = true
			matched = append(matched, row)
			break
		}
	}
	return matched
}

// matchAnnouncementRows maps ranked snippets back to rows by title
// containment. Each document selects the first not yet selected row.
func matchAnnouncementRows(docs []schema.Document, rows []core.AnnouncementItem) []core.AnnouncementItem {
	seen := make(map[core.AnnouncementKey]bool, len(docs))
	matched := make([]core.AnnouncementItem, 0, len(docs))
	for _, doc := range docs {
		for _, row := range rows {
			if !strings.Contains(doc.PageContent, row.Title) || seen[row.Key()] {
				continue
			}
			seen[row.Key()] = true
			matched = append(matched, row)
			break
		}
	}
	return matched
}
