package query

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/poiesic/campusmate/core"
)

var (
	// "2025-08-02", "2025/8/2", "2025.8.2", "2025년 8월 2일"
	fullDatePattern = regexp.MustCompile(`(20\d{2})[- /.년]+(\d{1,2})[- /.월]+(\d{1,2})`)
	// "8월 2일", "8.2", "8/2", "8-2"
	monthDayPattern = regexp.MustCompile(`(\d{1,2})[월./\- ]+(\d{1,2})일?`)
	// "10시", "10시 30분"
	hourMarkerPattern = regexp.MustCompile(`(\d{1,2})시`)
	// "14:00"
	clockPattern = regexp.MustCompile(`(\d{1,2}):\d{2}`)
)

// Parser extracts predicates from queries.
// The zero value is ready to use and resolves month-day dates against the
// current year.
type Parser struct {
	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// DefaultParser is the parser used by the package-level functions.
var DefaultParser = &Parser{}

// ParseTodo parses a schedule query using DefaultParser.
func ParseTodo(query string) core.TodoPredicate {
	return DefaultParser.ParseTodo(query)
}

// ParseAnnouncement parses an announcement query using DefaultParser.
func ParseAnnouncement(query string) core.AnnouncementPredicate {
	return DefaultParser.ParseAnnouncement(query)
}

// ParseTodo extracts the date, hour and topic keyword of a schedule query.
func (p *Parser) ParseTodo(query string) core.TodoPredicate {
	return core.TodoPredicate{
		Date:    p.extractDate(query),
		Hour:    extractHour(query),
		Keyword: firstKeyword(query, TodoKeywords),
	}
}

// ParseAnnouncement extracts the category keyword and date of an announcement query.
func (p *Parser) ParseAnnouncement(query string) core.AnnouncementPredicate {
	return core.AnnouncementPredicate{
		Keyword: firstKeyword(query, CategoryKeywords),
		Date:    p.extractDate(query),
	}
}

func (p *Parser) now() time.Time {
	if p == nil || p.Now == nil {
		return time.Now()
	}
	return p.Now()
}

// extractDate returns a zero-padded YYYY-MM-DD date, or "" when the query has
// none or the matched numbers do not form a calendar date.
// Month-day dates take the current year.
func (p *Parser) extractDate(query string) string {
	var date string
	if m := fullDatePattern.FindStringSubmatch(query); m != nil {
		date = formatDate(atoi(m[1]), atoi(m[2]), atoi(m[3]))
	} else if m := monthDayPattern.FindStringSubmatch(query); m != nil {
		date = formatDate(p.now().Year(), atoi(m[1]), atoi(m[2]))
	}
	if !core.IsISODate(date) {
		return ""
	}
	return date
}

// extractHour returns the hour named in the query, or nil when there is none
// or it falls outside 0-23.
func extractHour(query string) *int {
	m := hourMarkerPattern.FindStringSubmatch(query)
	if m == nil {
		m = clockPattern.FindStringSubmatch(query)
	}
	if m == nil {
		return nil
	}
	hour, err := strconv.Atoi(m[1])
	if err != nil || hour < 0 || hour > 23 {
		return nil
	}
	return &hour
}

func firstKeyword(query string, vocabulary []string) string {
	for _, keyword := range vocabulary {
		if strings.Contains(query, keyword) {
			return keyword
		}
	}
	return ""
}

func formatDate(year, month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}

// atoi is only called on regexp digit groups.
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
