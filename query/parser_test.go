package query

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/campusmate/core"
)

func fixedParser() *Parser {
	return &Parser{Now: func() time.Time {
		return time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	}}
}

func hour(h int) *int {
	return &h
}

func TestParseTodo(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  core.TodoPredicate
	}{
		{
			name:  "full korean date without keyword",
			query: "2025년 8월 2일 일정 뭐 있어?",
			want:  core.TodoPredicate{Date: "2025-08-02"},
		},
		{
			name:  "keyword only",
			query: "운동 있는 날은 언제야?",
			want:  core.TodoPredicate{Keyword: "운동"},
		},
		{
			name:  "month-day takes current year",
			query: "8월 2일에 뭐 있어?",
			want:  core.TodoPredicate{Date: "2026-08-02"},
		},
		{
			name:  "hour marker with keyword",
			query: "10시에 회의 있어?",
			want:  core.TodoPredicate{Hour: hour(10), Keyword: "회의"},
		},
		{
			name:  "clock time",
			query: "14:30 세미나 어디야?",
			want:  core.TodoPredicate{Hour: hour(14), Keyword: "세미나"},
		},
		{
			name:  "date hour and keyword",
			query: "12월 25일 3시 약속",
			want:  core.TodoPredicate{Date: "2026-12-25", Hour: hour(3), Keyword: "약속"},
		},
		{
			name:  "hour out of range",
			query: "25시 운동",
			want:  core.TodoPredicate{Keyword: "운동"},
		},
		{
			name:  "clock hour out of range",
			query: "99:00 운동",
			want:  core.TodoPredicate{Keyword: "운동"},
		},
		{
			name:  "midnight hour is kept",
			query: "0시 과제 마감",
			want:  core.TodoPredicate{Hour: hour(0), Keyword: "과제"},
		},
		{
			name:  "vocabulary order breaks ties",
			query: "시험공부 스터디",
			want:  core.TodoPredicate{Keyword: "스터디"},
		},
		{
			name:  "earlier entry wins over longer later entry",
			query: "시험공부 언제 해?",
			want:  core.TodoPredicate{Keyword: "시험"},
		},
		{
			name:  "keyword is case sensitive",
			query: "ai 공부",
			want:  core.TodoPredicate{},
		},
		{
			name:  "empty query",
			query: "",
			want:  core.TodoPredicate{},
		},
		{
			name:  "whitespace only",
			query: "   \t ",
			want:  core.TodoPredicate{},
		},
	}

	p := fixedParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.ParseTodo(tt.query)
			assert.Equal(t, tt.want.Date, got.Date)
			assert.Equal(t, tt.want.Keyword, got.Keyword)
			if tt.want.Hour == nil {
				assert.Nil(t, got.Hour)
			} else {
				require.NotNil(t, got.Hour)
				assert.Equal(t, *tt.want.Hour, *got.Hour)
			}
		})
	}
}

func TestParseTodo_SeparatorStyles(t *testing.T) {
	p := fixedParser()
	for _, q := range []string{
		"2025-08-02 일정",
		"2025/8/2 일정",
		"2025.08.02 일정",
		"2025 8 2 일정",
		"2025년 8월 2일 일정",
		"2025년8월2일",
	} {
		assert.Equal(t, "2025-08-02", p.ParseTodo(q).Date, q)
		assert.Equal(t, "2025-08-02", p.ParseAnnouncement(q).Date, q)
	}
}

func TestParse_MonthDayIsZeroPadded(t *testing.T) {
	p := fixedParser()
	for month := 1; month <= 12; month++ {
		q := fmt.Sprintf("%d월 %d일", month, month)
		want := fmt.Sprintf("2026-%02d-%02d", month, month)
		assert.Equal(t, want, p.ParseTodo(q).Date, q)
		assert.Equal(t, want, p.ParseAnnouncement(q).Date, q)
	}
	assert.Equal(t, "2026-03-01", p.ParseTodo("3.1 일정").Date)
	assert.Equal(t, "2026-12-05", p.ParseAnnouncement("12/5 마감").Date)
}

func TestParse_HourTokensOutsideRange(t *testing.T) {
	p := fixedParser()
	for h := 24; h <= 99; h++ {
		assert.Nil(t, p.ParseTodo(fmt.Sprintf("%d시 운동", h)).Hour)
		assert.Nil(t, p.ParseTodo(fmt.Sprintf("%d:00 운동", h)).Hour)
	}
}

func TestParse_ImpossibleDatesAreAbsent(t *testing.T) {
	p := fixedParser()
	tests := []struct {
		query   string
		keyword string
	}{
		{query: "2025 8월 운동", keyword: "운동"},
		{query: "13월 40일 세미나"},
		{query: "2025-02-30 일정"},
		{query: "2월 30일"},
		{query: "0월 0일"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			todo := p.ParseTodo(tt.query)
			assert.Empty(t, todo.Date)
			if tt.keyword != "" {
				assert.Equal(t, tt.keyword, todo.Keyword)
			}
			assert.Empty(t, p.ParseAnnouncement(tt.query).Date)
		})
	}
	assert.Equal(t, "2024-02-29", p.ParseTodo("2024-02-29 일정").Date)
}

func TestParseAnnouncement(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  core.AnnouncementPredicate
	}{
		{
			name:  "scholarship",
			query: "장학금 관련 공지 알려줘",
			want:  core.AnnouncementPredicate{Keyword: "장학"},
		},
		{
			name:  "semester phrase is not a date",
			query: "2025년도 2학기 복학 신청 일정 언제야?",
			want:  core.AnnouncementPredicate{Keyword: "복학"},
		},
		{
			name:  "recruiting with no date",
			query: "현재 모집하는 행사는 어떤게 있어?",
			want:  core.AnnouncementPredicate{Keyword: "모집"},
		},
		{
			name:  "AI precedes 세미나",
			query: "AI 세미나 언제야",
			want:  core.AnnouncementPredicate{Keyword: "AI"},
		},
		{
			name:  "keyword and month-day date",
			query: "9월 1일 기준 계절학기 공지",
			want:  core.AnnouncementPredicate{Keyword: "계절학기", Date: "2026-09-01"},
		},
		{
			name:  "no vocabulary hit",
			query: "합격자 발표 나온거 있어?",
			want:  core.AnnouncementPredicate{},
		},
		{
			name:  "empty",
			query: "",
			want:  core.AnnouncementPredicate{},
		},
	}

	p := fixedParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.ParseAnnouncement(tt.query))
		})
	}
}

func TestPackageLevelParsersUseCurrentYear(t *testing.T) {
	year := time.Now().Year()
	assert.Equal(t, fmt.Sprintf("%d-08-02", year), ParseTodo("8월 2일").Date)
	assert.Equal(t, fmt.Sprintf("%d-08-02", year), ParseAnnouncement("8/2").Date)
}

func TestIsSimpleCategory(t *testing.T) {
	assert.True(t, IsSimpleCategory("장학"))
	assert.True(t, IsSimpleCategory("현장실습"))
	assert.False(t, IsSimpleCategory("행사"))
	assert.False(t, IsSimpleCategory(""))
}
