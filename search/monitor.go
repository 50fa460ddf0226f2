package search

import (
	"github.com/tmc/langchaingo/schema"
)

// Dataset names the table a query runs against.
type Dataset string

const (
	DatasetSchedule      Dataset = "schedule"
	DatasetAnnouncements Dataset = "announcements"
)

// ParsedQuery is the predicate extracted from a query, flattened for monitors.
type ParsedQuery struct {
	Dataset Dataset
	Date    string
	Hour    *int
	Keyword string
}

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during search.
// Hooks are called in declaration order; the semantic hooks only fire when
// the arbiter routes the query through the ranker.
type SearchMonitor interface {
	Start(query string)
	AfterParse(parsed ParsedQuery)
	AfterFilter(rows int)
	BeforeSemanticSearch(snippets []string, k int)
	AfterSemanticSearch(docs []schema.Document)
	Finish(records int, noResult bool)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                          {}
func (n *noopMonitor) AfterParse(_ ParsedQuery)                {}
func (n *noopMonitor) AfterFilter(_ int)                       {}
func (n *noopMonitor) BeforeSemanticSearch(_ []string, _ int)  {}
func (n *noopMonitor) AfterSemanticSearch(_ []schema.Document) {}
func (n *noopMonitor) Finish(_ int, _ bool)                    {}
