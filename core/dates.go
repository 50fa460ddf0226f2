package core

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the canonical ISO calendar date layout.
const DateLayout = "2006-01-02"

// Layouts accepted when reading dates from source tables.
var dateLayouts = []string{
	DateLayout,
	"2006-1-2",
	"2006/01/02",
	"2006/1/2",
	"2006.01.02",
	"2006.1.2",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// ParseDate parses a calendar date and returns it as UTC midnight.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// FormatDate renders t as YYYY-MM-DD. The zero time renders as "".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// IsISODate reports whether s is a real calendar date in YYYY-MM-DD form.
func IsISODate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// ParseHour extracts the hour component of an "H:MM" or "HH:MM" time string.
// Anything else, including hours outside 0-23, yields ok == false.
func ParseHour(t string) (hour int, ok bool) {
	h, rest, found := strings.Cut(strings.TrimSpace(t), ":")
	if !found {
		return 0, false
	}
	minutes, _, _ := strings.Cut(rest, ":")
	if len(minutes) != 2 || !isDigits(minutes) {
		return 0, false
	}
	m, err := strconv.Atoi(minutes)
	if err != nil || m < 0 || m > 59 {
		return 0, false
	}
	if len(h) == 0 || len(h) > 2 || !isDigits(h) {
		return 0, false
	}
	hour, err = strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 23 {
		return 0, false
	}
	return hour, true
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
