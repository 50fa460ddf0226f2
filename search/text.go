package search

import (
	"fmt"
	"strings"

	"github.com/poiesic/campusmate/core"
)

// tokenCount returns the number of whitespace-separated tokens in text.
func tokenCount(text string) int {
	return len(strings.Fields(text))
}

// ScheduleSnippet renders a schedule row as the text handed to the ranker.
func ScheduleSnippet(item core.ScheduleItem) string {
	return fmt.Sprintf("%s %s | %s | %s | %s", item.Date, item.Time, item.Title, item.Description, item.Location)
}

// AnnouncementSnippet renders an announcement row as the text handed to the ranker.
func AnnouncementSnippet(item core.AnnouncementItem) string {
	return fmt.Sprintf("%s | %s | %s", item.Category, item.Title, item.URL)
}

// ScheduleNotice returns the banner shown above a date-only schedule answer,
// or "" when the query is not date-only.
func ScheduleNotice(pred core.TodoPredicate) string {
	if pred.Date == "" || pred.Keyword != "" {
		return ""
	}
	return fmt.Sprintf("📅 %s에 등록된 모든 일정을 보여드릴게요!", pred.Date)
}
