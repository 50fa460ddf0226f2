package search

import (
	"github.com/poiesic/campusmate/core"
)

// AssembleSchedule converts rows into result records, keeping the first row
// for each (title, date, time) key. No rows yields the sentinel.
func AssembleSchedule(rows []core.ScheduleItem) core.MatchResult[core.ScheduleResult] {
	seen := make(map[core.ScheduleKey]bool, len(rows))
	records := make([]core.ScheduleResult, 0, len(rows))
	for _, row := range rows {
		key := row.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		records = append(records, core.ScheduleResult{
			Date:        row.Date,
			Time:        row.Time,
			Title:       row.Title,
			Description: row.Description,
			Location:    row.Location,
		})
	}
	if len(records) == 0 {
		return core.NewNoResult[core.ScheduleResult]()
	}
	return core.MatchResult[core.ScheduleResult]{Records: records}
}

// AssembleAnnouncements converts rows into result records, keeping the first
// row for each (title, start, end) key. No rows yields the sentinel.
func AssembleAnnouncements(rows []core.AnnouncementItem) core.MatchResult[core.AnnouncementResult] {
	seen := make(map[core.AnnouncementKey]bool, len(rows))
	records := make([]core.AnnouncementResult, 0, len(rows))
	for _, row := range rows {
		key := row.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		records = append(records, core.AnnouncementResult{
			Title:     row.Title,
			URL:       row.URL,
			Category:  row.Category,
			DateRange: row.DateRange(),
		})
	}
	if len(records) == 0 {
		return core.NewNoResult[core.AnnouncementResult]()
	}
	return core.MatchResult[core.AnnouncementResult]{Records: records}
}
