package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for cached entities.
// It is generated using content-based hashing.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// ScheduleItem is a single row of the personal schedule table.
type ScheduleItem struct {
	Date        string // ISO date as loaded, e.g. "2025-08-02"
	Time        string // "HH:MM"; may be malformed in source data
	Title       string
	Description string
	Location    string
}

// Key returns the deduplication key of the item.
func (s ScheduleItem) Key() ScheduleKey {
	return ScheduleKey{Title: s.Title, Date: s.Date, Time: s.Time}
}

// AnnouncementItem is a single row of the university announcement table.
type AnnouncementItem struct {
	Title     string
	URL       string
	Category  string
	StartDate time.Time // civil date, UTC midnight
	EndDate   time.Time // civil date, UTC midnight
}

// Key returns the deduplication key of the item.
func (a AnnouncementItem) Key() AnnouncementKey {
	return AnnouncementKey{
		Title:     a.Title,
		StartDate: FormatDate(a.StartDate),
		EndDate:   FormatDate(a.EndDate),
	}
}

// DateRange renders the announcement period as "start ~ end".
func (a AnnouncementItem) DateRange() string {
	return FormatDate(a.StartDate) + " ~ " + FormatDate(a.EndDate)
}

// ScheduleKey identifies a logically unique schedule result within one query.
type ScheduleKey struct {
	Title string
	Date  string
	Time  string
}

// AnnouncementKey identifies a logically unique announcement result within one query.
type AnnouncementKey struct {
	Title     string
	StartDate string
	EndDate   string
}

// TodoPredicate is the structured form of a schedule query.
// Every field is independently optional: the zero value of a field means
// "no constraint".
type TodoPredicate struct {
	Date    string // YYYY-MM-DD
	Hour    *int   // 0-23
	Keyword string
}

// IsEmpty reports whether the predicate carries no constraint at all.
func (p TodoPredicate) IsEmpty() bool {
	return p.Date == "" && p.Hour == nil && p.Keyword == ""
}

// AnnouncementPredicate is the structured form of an announcement query.
type AnnouncementPredicate struct {
	Keyword string
	Date    string // YYYY-MM-DD
}

// IsEmpty reports whether the predicate carries no constraint at all.
func (p AnnouncementPredicate) IsEmpty() bool {
	return p.Keyword == "" && p.Date == ""
}

// ScheduleResult is the output record for a matched schedule item.
type ScheduleResult struct {
	Date        string `json:"date"`
	Time        string `json:"time"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
}

// AnnouncementResult is the output record for a matched announcement.
type AnnouncementResult struct {
	Title     string `json:"title"`
	URL       string `json:"url"`
	Category  string `json:"category"`
	DateRange string `json:"date_range"`
}

// NoResultMessage is the message carried by the "no result" sentinel.
const NoResultMessage = "🔎 조건에 맞는 일정이 없습니다."

// NoResult is the sentinel record returned when nothing matched a query.
type NoResult struct {
	Message string `json:"no_result"`
}

// MatchResult is the outcome of one retrieval call: either a non-empty list
// of records or the single NoResult sentinel, never an empty list.
type MatchResult[T any] struct {
	Records  []T
	NoResult *NoResult
}

// NewNoResult returns the sentinel result.
func NewNoResult[T any]() MatchResult[T] {
	return MatchResult[T]{NoResult: &NoResult{Message: NoResultMessage}}
}

// IsNoResult reports whether the result is the "no result" sentinel.
func (m MatchResult[T]) IsNoResult() bool {
	return m.NoResult != nil
}

// Len returns the number of output records. The sentinel counts as one.
func (m MatchResult[T]) Len() int {
	if m.NoResult != nil {
		return 1
	}
	return len(m.Records)
}

// Embedding is a cached embedding vector for a piece of snippet text.
type Embedding struct {
	Id         ID
	Model      string
	Vector     []float32
	InsertedAt time.Time
}
