package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIDFromContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "snippet", content: "2025-08-02 10:00 | 스터디 | 알고리즘 스터디 | 도서관"},
		{name: "empty string", content: ""},
		{name: "announcement snippet", content: "장학 | 2025-2학기 국가장학금 신청 안내 | https://example.ac.kr/1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, IDFromContent(tt.content), IDFromContent(tt.content))
		})
	}
}

func TestIDFromContent_Different(t *testing.T) {
	assert.NotEqual(t, IDFromContent("content1"), IDFromContent("content2"))
}

func TestScheduleItem_Key(t *testing.T) {
	item := ScheduleItem{Date: "2025-08-02", Time: "10:00", Title: "스터디", Description: "a", Location: "b"}
	other := ScheduleItem{Date: "2025-08-02", Time: "10:00", Title: "스터디", Description: "c", Location: "d"}

	assert.Equal(t, ScheduleKey{Title: "스터디", Date: "2025-08-02", Time: "10:00"}, item.Key())
	assert.Equal(t, item.Key(), other.Key(), "description and location are not part of the key")
}

func TestAnnouncementItem_KeyAndDateRange(t *testing.T) {
	item := AnnouncementItem{
		Title:     "국가장학금 신청",
		StartDate: time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC),
	}

	assert.Equal(t, AnnouncementKey{Title: "국가장학금 신청", StartDate: "2025-08-01", EndDate: "2025-08-15"}, item.Key())
	assert.Equal(t, "2025-08-01 ~ 2025-08-15", item.DateRange())
}

func TestPredicates_IsEmpty(t *testing.T) {
	hour := 0
	assert.True(t, TodoPredicate{}.IsEmpty())
	assert.False(t, TodoPredicate{Hour: &hour}.IsEmpty(), "hour 0 is a constraint")
	assert.False(t, TodoPredicate{Keyword: "운동"}.IsEmpty())
	assert.True(t, AnnouncementPredicate{}.IsEmpty())
	assert.False(t, AnnouncementPredicate{Date: "2025-08-02"}.IsEmpty())
}

func TestMatchResult(t *testing.T) {
	t.Run("sentinel", func(t *testing.T) {
		res := NewNoResult[ScheduleResult]()
		assert.True(t, res.IsNoResult())
		assert.Equal(t, 1, res.Len())
		assert.Empty(t, res.Records)
		assert.Equal(t, NoResultMessage, res.NoResult.Message)
	})

	t.Run("populated", func(t *testing.T) {
		res := MatchResult[AnnouncementResult]{Records: []AnnouncementResult{{Title: "a"}, {Title: "b"}}}
		assert.False(t, res.IsNoResult())
		assert.Equal(t, 2, res.Len())
	})
}
