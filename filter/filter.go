package filter

import (
	"strings"
	"time"

	"github.com/poiesic/campusmate/core"
)

// Schedule returns the schedule rows matching every present field of pred.
//
//   - Date: exact string equality with the row date
//   - Keyword: substring of the title or the description (case-sensitive)
//   - Hour: hour component of the row time; rows with a malformed time never match
func Schedule(rows []core.ScheduleItem, pred core.TodoPredicate) []core.ScheduleItem {
	if pred.IsEmpty() {
		return rows
	}

	result := make([]core.ScheduleItem, 0, len(rows))
	for _, row := range rows {
		if pred.Date != "" && row.Date != pred.Date {
			continue
		}
		if pred.Keyword != "" && !containsAny(pred.Keyword, row.Title, row.Description) {
			continue
		}
		if pred.Hour != nil {
			h, ok := core.ParseHour(row.Time)
			if !ok || h != *pred.Hour {
				continue
			}
		}
		result = append(result, row)
	}
	return result
}

// Announcements returns the announcement rows matching every present field of pred.
//
//   - Keyword: case-insensitive substring of the title or the category
//   - Date: start <= date <= end, inclusive; a date that is not a real calendar
//     date matches nothing
func Announcements(rows []core.AnnouncementItem, pred core.AnnouncementPredicate) []core.AnnouncementItem {
	if pred.IsEmpty() {
		return rows
	}

	var date time.Time
	if pred.Date != "" {
		d, err := time.Parse(core.DateLayout, pred.Date)
		if err != nil {
			return []core.AnnouncementItem{}
		}
		date = d
	}

	keyword := strings.ToLower(pred.Keyword)
	result := make([]core.AnnouncementItem, 0, len(rows))
	for _, row := range rows {
		if keyword != "" && !containsAny(keyword, strings.ToLower(row.Title), strings.ToLower(row.Category)) {
			continue
		}
		if pred.Date != "" && !inRange(date, row.StartDate, row.EndDate) {
			continue
		}
		result = append(result, row)
	}
	return result
}

func containsAny(needle string, haystacks ...string) bool {
	for _, h := range haystacks {
		if h != "" && strings.Contains(h, needle) {
			return true
		}
	}
	return false
}

// inRange compares calendar dates only. Rows with a missing bound never match.
func inRange(date, start, end time.Time) bool {
	if start.IsZero() || end.IsZero() {
		return false
	}
	return !date.Before(civil(start)) && !date.After(civil(end))
}

func civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
