// Package format renders answers as width-aligned markdown tables.
package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/poiesic/campusmate/core"
)

// minColumnWidth matches the shortest markdown separator "---".
const minColumnWidth = 3

var (
	scheduleHeaders     = []string{"#", "날짜", "시간", "제목", "설명", "장소"}
	announcementHeaders = []string{"#", "카테고리", "기간", "제목", "URL"}
)

// Schedule writes a schedule answer to w. The "no result" sentinel is
// written as its message.
func Schedule(w io.Writer, result core.MatchResult[core.ScheduleResult]) error {
	if result.IsNoResult() {
		_, err := fmt.Fprintln(w, result.NoResult.Message)
		return err
	}

	rows := make([][]string, len(result.Records))
	for i, r := range result.Records {
		rows[i] = []string{fmt.Sprint(i + 1), r.Date, r.Time, r.Title, r.Description, r.Location}
	}
	return Table(w, scheduleHeaders, rows)
}

// Announcements writes an announcement answer to w. The "no result"
// sentinel is written as its message.
func Announcements(w io.Writer, result core.MatchResult[core.AnnouncementResult]) error {
	if result.IsNoResult() {
		_, err := fmt.Fprintln(w, result.NoResult.Message)
		return err
	}

	rows := make([][]string, len(result.Records))
	for i, r := range result.Records {
		rows[i] = []string{fmt.Sprint(i + 1), r.Category, r.DateRange, r.Title, r.URL}
	}
	return Table(w, announcementHeaders, rows)
}

// Table writes a markdown table whose columns are padded to the display
// width of their widest cell, so Hangul and other wide runes line up in a
// terminal. Pipes inside cells are escaped and newlines flattened.
func Table(w io.Writer, headers []string, rows [][]string) error {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = max(runewidth.StringWidth(h), minColumnWidth)
	}

	cleaned := make([][]string, len(rows))
	for r, row := range rows {
		cleaned[r] = make([]string, len(headers))
		for i := range headers {
			if i < len(row) {
				cleaned[r][i] = cleanCell(row[i])
			}
			widths[i] = max(widths[i], runewidth.StringWidth(cleaned[r][i]))
		}
	}

	var b strings.Builder
	writeRow(&b, headers, widths)
	separator := make([]string, len(widths))
	for i, width := range widths {
		separator[i] = strings.Repeat("-", width)
	}
	writeRow(&b, separator, widths)
	for _, row := range cleaned {
		writeRow(&b, row, widths)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeRow(b *strings.Builder, cells []string, widths []int) {
	b.WriteString("|")
	for i, cell := range cells {
		b.WriteString(" ")
		b.WriteString(runewidth.FillRight(cell, widths[i]))
		b.WriteString(" |")
	}
	b.WriteString("\n")
}

func cleanCell(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "|", "\\|")
}
