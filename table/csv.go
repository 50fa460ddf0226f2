package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/poiesic/campusmate/core"
)

// ScheduleColumns are the required columns of the schedule table.
var ScheduleColumns = []string{"date", "time", "title", "description", "location"}

// AnnouncementColumns are the required columns of the announcement table.
var AnnouncementColumns = []string{"title", "url", "category", "start_date", "end_date"}

const utf8BOM = "\ufeff"

// LoadSchedule reads the schedule table from a CSV file.
func LoadSchedule(path string) ([]core.ScheduleItem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := LoadScheduleFrom(f)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return rows, nil
}

// LoadScheduleFrom reads the schedule table from CSV data.
func LoadScheduleFrom(r io.Reader) ([]core.ScheduleItem, error) {
	var rows []core.ScheduleItem
	err := readRecords(r, ScheduleColumns, func(line int, cell func(string) string) error {
		rows = append(rows, core.ScheduleItem{
			Date:        cell("date"),
			Time:        cell("time"),
			Title:       cell("title"),
			Description: cell("description"),
			Location:    cell("location"),
		})
		return nil
	})
	return rows, err
}

// LoadAnnouncements reads the announcement table from a CSV file.
func LoadAnnouncements(path string) ([]core.AnnouncementItem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := LoadAnnouncementsFrom(f)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return rows, nil
}

// LoadAnnouncementsFrom reads the announcement table from CSV data.
// An empty date cell loads as the zero time; such rows never match a date.
func LoadAnnouncementsFrom(r io.Reader) ([]core.AnnouncementItem, error) {
	var rows []core.AnnouncementItem
	err := readRecords(r, AnnouncementColumns, func(line int, cell func(string) string) error {
		start, err := optionalDate(cell("start_date"))
		if err != nil {
			return fmt.Errorf("line %d: start_date: %w", line, err)
		}
		end, err := optionalDate(cell("end_date"))
		if err != nil {
			return fmt.Errorf("line %d: end_date: %w", line, err)
		}
		rows = append(rows, core.AnnouncementItem{
			Title:     cell("title"),
			URL:       cell("url"),
			Category:  cell("category"),
			StartDate: start,
			EndDate:   end,
		})
		return nil
	})
	return rows, err
}

// readRecords parses CSV with a header row and calls fn once per data row.
// cell returns the trimmed value of the named column.
func readRecords(r io.Reader, required []string, fn func(line int, cell func(string) string) error) error {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyTable
		}
		return err
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}
		name = strings.TrimSpace(name)
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}
	for _, name := range required {
		if _, ok := index[name]; !ok {
			return fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if isBlank(record) {
			continue
		}

		line, _ := reader.FieldPos(0)
		cell := func(name string) string {
			i := index[name]
			if i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}
		if err := fn(line, cell); err != nil {
			return err
		}
	}
}

func optionalDate(s string) (t time.Time, err error) {
	if s == "" {
		return t, nil
	}
	return core.ParseDate(s)
}

func isBlank(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}
