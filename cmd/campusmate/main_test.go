package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/campusmate"
	"github.com/poiesic/campusmate/config"
	"github.com/poiesic/campusmate/core"
	"github.com/poiesic/campusmate/query"
)

// writeTables creates small schedule and announcement CSVs and returns the
// global flags that point at them.
func writeTables(t *testing.T) []string {
	t.Helper()
	dir := t.TempDir()
	schedule := filepath.Join(dir, "todo.csv")
	announcements := filepath.Join(dir, "snowe_article.csv")

	require.NoError(t, os.WriteFile(schedule, []byte(
		"date,time,title,description,location\n"+
			"2025-08-02,10:00,스터디,알고리즘 스터디,도서관\n"+
			"2025-08-03,12:00,점심,친구와 점심 약속,학식\n"), 0644))
	require.NoError(t, os.WriteFile(announcements, []byte(
		"title,url,category,start_date,end_date\n"+
			"2025 국가장학금 신청,https://example.ac.kr/1,장학,2025-03-01,2025-03-20\n"+
			"2학기 복학 신청 안내,https://example.ac.kr/2,복학,2025-07-01,2025-07-31\n"), 0644))

	return []string{"--log-level", "error", "--schedule", schedule, "--announcements", announcements, "--no-cache"}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	err := app.Run(append([]string{"campusmate"}, args...))
	return out.String(), err
}

func TestExamples(t *testing.T) {
	out, err := run(t, "schedule", "--examples")
	require.NoError(t, err)
	for _, example := range query.ScheduleExamples {
		assert.Contains(t, out, example)
	}

	out, err = run(t, "announcements", "--examples")
	require.NoError(t, err)
	for _, example := range query.AnnouncementExamples {
		assert.Contains(t, out, example)
	}
}

func TestInvalidLogLevel(t *testing.T) {
	_, err := run(t, "--log-level", "verbose", "schedule", "--examples")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.level")
}

func TestScheduleCommand(t *testing.T) {
	flags := writeTables(t)

	t.Run("requires a query", func(t *testing.T) {
		_, err := run(t, append(flags, "schedule")...)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "query is required")
	})

	t.Run("date query", func(t *testing.T) {
		out, err := run(t, append(flags, "schedule", "2025년 8월 2일 일정 뭐 있어?")...)
		require.NoError(t, err)
		assert.Contains(t, out, "📅 2025-08-02에 등록된 모든 일정을 보여드릴게요!")
		assert.Contains(t, out, "알고리즘 스터디")
		assert.NotContains(t, out, "점심")
	})

	t.Run("no result", func(t *testing.T) {
		out, err := run(t, append(flags, "schedule", "운동 있는 날은 언제야?")...)
		require.NoError(t, err)
		assert.Contains(t, out, core.NoResultMessage)
	})

	t.Run("json", func(t *testing.T) {
		out, err := run(t, append(flags, "schedule", "--json", "2025년 8월 3일")...)
		require.NoError(t, err)

		var records []core.ScheduleResult
		require.NoError(t, json.Unmarshal([]byte(out), &records))
		require.Len(t, records, 1)
		assert.Equal(t, "점심", records[0].Title)
	})
}

func TestAnnouncementsCommand(t *testing.T) {
	flags := writeTables(t)

	out, err := run(t, append(flags, "announcements", "--json", "장학금 관련 공지 알려줘")...)
	require.NoError(t, err)

	var records []map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 1)
	assert.Equal(t, "2025 국가장학금 신청", records[0]["title"])
	assert.Equal(t, "2025-03-01 ~ 2025-03-20", records[0]["date_range"])

	out, err = run(t, append(flags, "announcements", "--json", "졸업 공지")...)
	require.NoError(t, err)
	var sentinel []map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &sentinel))
	require.Len(t, sentinel, 1)
	assert.Equal(t, core.NoResultMessage, sentinel[0]["no_result"])
}

func TestBatchCommand(t *testing.T) {
	flags := writeTables(t)
	queries := filepath.Join(t.TempDir(), "queries.txt")
	require.NoError(t, os.WriteFile(queries, []byte(
		"2025년 8월 2일 일정\n"+
			"announcements: 복학 신청 언제야?\n"), 0644))

	t.Run("answers every line", func(t *testing.T) {
		out, err := run(t, append(flags, "batch", "--file", queries, "--workers", "2")...)
		require.NoError(t, err)
		assert.Contains(t, out, "## 1. [schedule] 2025년 8월 2일 일정")
		assert.Contains(t, out, "알고리즘 스터디")
		assert.Contains(t, out, "## 2. [announcements] 복학 신청 언제야?")
		assert.Contains(t, out, "2학기 복학 신청 안내")
	})

	t.Run("rejects unknown dataset", func(t *testing.T) {
		_, err := run(t, append(flags, "batch", "--file", queries, "--dataset", "weather")...)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "dataset must be")
	})

	t.Run("file is required", func(t *testing.T) {
		_, err := run(t, append(flags, "batch")...)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "file")
	})
}

func TestWarmCommand_RequiresCache(t *testing.T) {
	flags := writeTables(t)

	_, err := run(t, append(flags, "warm")...)
	assert.ErrorIs(t, err, campusmate.ErrCacheDisabled)
}

func TestConfigFile(t *testing.T) {
	flags := writeTables(t)
	// flags: --log-level error --schedule S --announcements A --no-cache
	schedule, announcements := flags[3], flags[5]

	path := filepath.Join(t.TempDir(), "campusmate.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"data:\n"+
			"  schedule: "+schedule+"\n"+
			"  announcements: /does/not/exist.csv\n"+
			"cache:\n"+
			"  disabled: true\n"), 0644))

	_, err := run(t, "--log-level", "error", "--config", path, "schedule", "2025년 8월 2일")
	assert.ErrorIs(t, err, os.ErrNotExist, "file values are used")

	out, err := run(t, "--log-level", "error", "--config", path, "--announcements", announcements, "schedule", "2025년 8월 2일")
	require.NoError(t, err, "flags override file values")
	assert.Contains(t, out, "도서관")
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "campusmate.yaml")

	out, err := run(t, "--embedding-model", "bge-m3", "--degrade", "config", "init", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "bge-m3", cfg.AI.Model)
	assert.True(t, cfg.Search.DegradeOnRankFailure)
	assert.Equal(t, config.Default().Data, cfg.Data)

	_, err = run(t, "config", "init", path)
	assert.ErrorContains(t, err, "already exists")

	_, err = run(t, "config", "init", "--force", path)
	require.NoError(t, err)
	cfg, err = config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default().AI.Model, cfg.AI.Model)
}
