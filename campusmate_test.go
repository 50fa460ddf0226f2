package campusmate

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/campusmate/ai/mock"
	"github.com/poiesic/campusmate/batch"
	"github.com/poiesic/campusmate/config"
	"github.com/poiesic/campusmate/core"
	"github.com/poiesic/campusmate/search"
	"github.com/poiesic/campusmate/warmup"
)

func testSchedule() []core.ScheduleItem {
	return []core.ScheduleItem{
		{Date: "2025-08-02", Time: "10:00", Title: "스터디", Description: "알고리즘 스터디", Location: "도서관"},
		{Date: "2025-08-03", Time: "10:30", Title: "스터디", Description: "영어 스터디", Location: "카페"},
		{Date: "2025-08-04", Time: "12:00", Title: "점심", Description: "친구와 점심 약속", Location: "학식"},
	}
}

func testAnnouncements() []core.AnnouncementItem {
	day := func(m time.Month, d int) time.Time { return time.Date(2025, m, d, 0, 0, 0, 0, time.UTC) }
	return []core.AnnouncementItem{
		{Title: "2025 국가장학금 신청", URL: "https://example.ac.kr/1", Category: "장학", StartDate: day(3, 1), EndDate: day(3, 20)},
		{Title: "2학기 복학 신청 안내", URL: "https://example.ac.kr/2", Category: "복학", StartDate: day(7, 1), EndDate: day(7, 31)},
	}
}

func newTestAssistant(t *testing.T, opts ...AssistantOption) (*Assistant, *mock.MockEmbedder) {
	t.Helper()
	embedder := mock.NewMockEmbedder()
	opts = append([]AssistantOption{WithProvider(mock.NewMockProviderWithEmbedder(embedder))}, opts...)
	a, err := NewAssistant(testSchedule(), testAnnouncements(), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return a, embedder
}

func TestNewAssistant(t *testing.T) {
	a, _ := newTestAssistant(t)

	assert.Len(t, a.Schedule(), 3)
	assert.Len(t, a.Announcements(), 2)
	assert.NotNil(t, a.Searcher())
	assert.NotNil(t, a.cache, "in-memory cache by default")
	assert.Equal(t, "mock-embedding", a.cache.Model())
}

func TestNewAssistant_CachePath(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	a, _ := newTestAssistant(t, WithCachePath(dir))
	require.NotNil(t, a.cache)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestNewAssistant_InvalidCachePath(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not_a_dir")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	provider := mock.NewMockProvider()
	a, err := NewAssistant(nil, nil, WithProvider(provider), WithCachePath(file))
	assert.Error(t, err)
	assert.Nil(t, a)
	assert.False(t, provider.(*mock.MockProvider).Closed(), "injected provider belongs to the caller")
}

func TestAssistant_CloseLeavesInjectedProviderOpen(t *testing.T) {
	provider := mock.NewMockProvider()
	a, err := NewAssistant(testSchedule(), testAnnouncements(), WithProvider(provider))
	require.NoError(t, err)
	require.NoError(t, a.Close())
	assert.False(t, provider.(*mock.MockProvider).Closed())

	require.NoError(t, provider.Close())
	assert.True(t, provider.(*mock.MockProvider).Closed())
}

func TestAssistant_ClosesOwnProvider(t *testing.T) {
	a, err := NewAssistant(nil, nil, WithoutCache())
	require.NoError(t, err)
	require.True(t, a.ownsProvider)
	assert.NoError(t, a.Close())
}

func TestAssistant_AnswerSchedule(t *testing.T) {
	a, embedder := newTestAssistant(t)
	ctx := context.Background()

	result, err := a.AnswerSchedule(ctx, "2025년 8월 2일 일정 뭐 있어?")
	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	assert.Equal(t, "알고리즘 스터디", result.Records[0].Description)
	assert.Zero(t, embedder.CallCount(), "date-only queries never embed")

	result, err = a.AnswerSchedule(ctx, "운동 있는 날은 언제야?")
	require.NoError(t, err)
	assert.True(t, result.IsNoResult())
}

func TestAssistant_AnswerScheduleSemantic(t *testing.T) {
	a, embedder := newTestAssistant(t)

	result, err := a.AnswerSchedule(context.Background(), "10시 스터디 뭐였지?")
	require.NoError(t, err)
	require.Len(t, result.Records, 2)
	assert.Positive(t, embedder.CallCount())

	dates := []string{result.Records[0].Date, result.Records[1].Date}
	assert.ElementsMatch(t, []string{"2025-08-02", "2025-08-03"}, dates)
}

func TestAssistant_AnswerAnnouncements(t *testing.T) {
	a, _ := newTestAssistant(t)

	result, err := a.AnswerAnnouncements(context.Background(), "장학금 관련 공지 알려줘")
	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	assert.Equal(t, core.AnnouncementResult{
		Title:     "2025 국가장학금 신청",
		URL:       "https://example.ac.kr/1",
		Category:  "장학",
		DateRange: "2025-03-01 ~ 2025-03-20",
	}, result.Records[0])
}

func TestAssistant_Warm(t *testing.T) {
	a, embedder := newTestAssistant(t)
	ctx := context.Background()

	var out bytes.Buffer
	stats, err := a.Warm(ctx, &warmup.Config{BatchSize: 2}, &out)
	require.NoError(t, err)
	assert.Equal(t, warmup.Stats{Snippets: 5, Embedded: 5}, stats)

	embedder.Reset()
	_, err = a.AnswerSchedule(ctx, "10시 스터디 뭐였지?")
	require.NoError(t, err)
	assert.Equal(t, 1, embedder.EmbeddedTexts(), "warm cache leaves only the query to embed")
}

func TestAssistant_WithoutCache(t *testing.T) {
	a, _ := newTestAssistant(t, WithoutCache())
	assert.Nil(t, a.cache)

	_, err := a.NewWarmer(nil, nil)
	assert.ErrorIs(t, err, ErrCacheDisabled)

	result, err := a.AnswerSchedule(context.Background(), "10시 스터디 뭐였지?")
	require.NoError(t, err)
	assert.Len(t, result.Records, 2)
}

func TestAssistant_BatchRunner(t *testing.T) {
	a, _ := newTestAssistant(t)

	runner, err := a.NewBatchRunner(batch.WithPoolSize(2))
	require.NoError(t, err)
	defer runner.Release()

	results := runner.Run(context.Background(), []batch.Query{
		{Dataset: search.DatasetSchedule, Text: "2025년 8월 4일 일정"},
		{Dataset: search.DatasetAnnouncements, Text: "복학 신청 언제야?"},
	})
	require.Len(t, results, 2)
	require.NoError(t, results[0].Err)
	assert.Equal(t, "점심", results[0].Schedule.Records[0].Title)
	require.NoError(t, results[1].Err)
	assert.Equal(t, "2학기 복학 신청 안내", results[1].Announcements.Records[0].Title)
}

func TestOpenAssistant(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Data.Schedule = filepath.Join(dir, "todo.csv")
	cfg.Data.Announcements = filepath.Join(dir, "snowe_article.csv")
	cfg.Cache.Disabled = true

	require.NoError(t, os.WriteFile(cfg.Data.Schedule,
		[]byte("date,time,title,description,location\n2025-08-02,10:00,스터디,알고리즘 스터디,도서관\n"), 0644))
	require.NoError(t, os.WriteFile(cfg.Data.Announcements,
		[]byte("title,url,category,start_date,end_date\n국가장학금 신청,https://example.ac.kr/1,장학,2025-03-01,2025-03-20\n"), 0644))

	a, err := OpenAssistant(cfg, WithProvider(mock.NewMockProvider()))
	require.NoError(t, err)
	defer a.Close()

	assert.Len(t, a.Schedule(), 1)
	assert.Len(t, a.Announcements(), 1)
	assert.Nil(t, a.cache)

	t.Run("missing table", func(t *testing.T) {
		bad := *cfg
		bad.Data.Schedule = filepath.Join(dir, "missing.csv")
		_, err := OpenAssistant(&bad, WithProvider(mock.NewMockProvider()))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("invalid config", func(t *testing.T) {
		bad := *cfg
		bad.Search.MaxMatches = 0
		_, err := OpenAssistant(&bad, WithProvider(mock.NewMockProvider()))
		assert.ErrorIs(t, err, config.ErrInvalidMaxMatches)
	})
}
