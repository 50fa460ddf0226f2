package format

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/campusmate/core"
)

func TestTable_AlignsWideRunes(t *testing.T) {
	var buf bytes.Buffer
	err := Table(&buf, []string{"제목", "n"}, [][]string{
		{"스터디", "1"},
		{"ab", "22"},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "| 제목   | n   |", lines[0])
	assert.Equal(t, "| ------ | --- |", lines[1])
	assert.Equal(t, "| 스터디 | 1   |", lines[2])
	assert.Equal(t, "| ab     | 22  |", lines[3])

	width := runewidth.StringWidth(lines[0])
	for _, line := range lines[1:] {
		assert.Equal(t, width, runewidth.StringWidth(line))
	}
}

func TestTable_EscapesCells(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Table(&buf, []string{"a"}, [][]string{{"x|y\nz"}, {}}))

	assert.Contains(t, buf.String(), `x\|y z`)
	assert.Equal(t, 4, strings.Count(buf.String(), "\n"), "short rows are padded, not dropped")
}

func TestSchedule(t *testing.T) {
	var buf bytes.Buffer
	err := Schedule(&buf, core.MatchResult[core.ScheduleResult]{Records: []core.ScheduleResult{
		{Date: "2025-08-02", Time: "10:00", Title: "스터디", Description: "알고리즘 스터디", Location: "도서관"},
	}})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "날짜")
	assert.Contains(t, out, "2025-08-02")
	assert.Contains(t, out, "알고리즘 스터디")
}

func TestAnnouncements(t *testing.T) {
	var buf bytes.Buffer
	err := Announcements(&buf, core.MatchResult[core.AnnouncementResult]{Records: []core.AnnouncementResult{
		{Title: "국가장학금 신청", URL: "https://example.ac.kr/1", Category: "장학", DateRange: "2025-03-01 ~ 2025-03-20"},
	}})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "카테고리")
	assert.Contains(t, out, "2025-03-01 ~ 2025-03-20")
	assert.Contains(t, out, "https://example.ac.kr/1")
}

func TestNoResult(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Schedule(&buf, core.NewNoResult[core.ScheduleResult]()))
	assert.Equal(t, core.NoResultMessage+"\n", buf.String())

	buf.Reset()
	require.NoError(t, Announcements(&buf, core.NewNoResult[core.AnnouncementResult]()))
	assert.Equal(t, core.NoResultMessage+"\n", buf.String())
}
