package quiz

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/allofdaniel/yessirpanda-dashboard-sub000/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubWrongWords struct {
	mu       sync.Mutex
	existing map[string]models.WrongWordEntry
	upserted []models.WrongWordEntry
	fetchErr error
}

func (s *stubWrongWords) GetByEmailAndWords(email string, words []string) (map[string]models.WrongWordEntry, error) {
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	out := make(map[string]models.WrongWordEntry)
	for _, w := range words {
		if e, ok := s.existing[w]; ok {
			out[w] = e
		}
	}
	return out, nil
}

func (s *stubWrongWords) BulkUpsert(entries []models.WrongWordEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.upserted = append(s.upserted, entries...)
	return nil
}

type stubResults struct {
	mu        sync.Mutex
	created   []*models.QuizResult
	legacy    []*models.QuizResult
	createErr error
}

func (s *stubResults) Create(result *models.QuizResult) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.created = append(s.created, result)
	return nil
}

func (s *stubResults) BulkInsertLegacy(result *models.QuizResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.legacy = append(s.legacy, result)
	return nil
}

type stubAttendance struct {
	mu      sync.Mutex
	upserts []models.AttendanceRecord
}

func (s *stubAttendance) Upsert(rec models.AttendanceRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.upserts = append(s.upserts, rec)
	return nil
}

var submitClock = time.Date(2026, 3, 2, 12, 10, 0, 0, time.UTC)

func newTestProcessor(ww *stubWrongWords, res *stubResults, att *stubAttendance) *Processor {
	p := NewProcessor(ww, res, att, time.UTC)
	p.now = func() time.Time { return submitClock }
	return p
}

func TestSubmitRejectsEmpty(t *testing.T) {
	p := newTestProcessor(&stubWrongWords{}, &stubResults{}, &stubAttendance{})

	_, err := p.Submit(context.Background(), "a@x.com", 3, models.QuizLunch, nil)
	require.ErrorIs(t, err, ErrNoAnswers)
}

func TestSubmitScoresAndTracksMisses(t *testing.T) {
	ww := &stubWrongWords{}
	res := &stubResults{}
	att := &stubAttendance{}
	p := newTestProcessor(ww, res, att)

	out, err := p.Submit(context.Background(), "a@x.com", 3, models.QuizLunch, []models.QuizAnswer{
		{Word: "apple", Meaning: "사과", Memorized: true},
		{Word: "banana", Meaning: "바나나", Memorized: false},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, out.Score)
	assert.Equal(t, 2, out.Total)

	// Only the missed word produces a wrong-word row; the correct word with
	// no history creates nothing.
	require.Len(t, ww.upserted, 1)
	entry := ww.upserted[0]
	assert.Equal(t, "banana", entry.Word)
	assert.Equal(t, 1, entry.WrongCount)
	assert.False(t, entry.Mastered)
	assert.Equal(t, submitClock.AddDate(0, 0, 3), entry.NextReview)

	require.Len(t, res.created, 1)
	assert.Equal(t, 1, res.created[0].Score)
	require.Len(t, res.legacy, 1)

	require.Len(t, att.upserts, 1)
	assert.Equal(t, models.QuizLunch, att.upserts[0].Type)
	assert.Equal(t, "2026-03-02", att.upserts[0].Date)
	assert.True(t, att.upserts[0].Completed)
}

func TestSubmitMasteryFreezesWrongCount(t *testing.T) {
	ww := &stubWrongWords{
		existing: map[string]models.WrongWordEntry{
			"apple": {Email: "a@x.com", Word: "apple", Meaning: "사과", WrongCount: 2},
		},
	}
	p := newTestProcessor(ww, &stubResults{}, &stubAttendance{})

	_, err := p.Submit(context.Background(), "a@x.com", 3, models.QuizMorning, []models.QuizAnswer{
		{Word: "apple", Meaning: "사과", Memorized: true},
	})
	require.NoError(t, err)

	require.Len(t, ww.upserted, 1)
	assert.True(t, ww.upserted[0].Mastered)
	assert.Equal(t, 2, ww.upserted[0].WrongCount, "mastery freezes the count")
}

func TestSubmitMissAfterMasteryReopens(t *testing.T) {
	ww := &stubWrongWords{
		existing: map[string]models.WrongWordEntry{
			"apple": {Email: "a@x.com", Word: "apple", WrongCount: 2, Mastered: true},
		},
	}
	p := newTestProcessor(ww, &stubResults{}, &stubAttendance{})

	_, err := p.Submit(context.Background(), "a@x.com", 3, models.QuizMorning, []models.QuizAnswer{
		{Word: "apple", Meaning: "사과", Memorized: false},
	})
	require.NoError(t, err)

	require.Len(t, ww.upserted, 1)
	entry := ww.upserted[0]
	assert.False(t, entry.Mastered)
	assert.Equal(t, 3, entry.WrongCount)
	// Three misses and more come back the next day
	assert.Equal(t, submitClock.AddDate(0, 0, 1), entry.NextReview)
}

func TestSubmitMasteredStaysMastered(t *testing.T) {
	ww := &stubWrongWords{
		existing: map[string]models.WrongWordEntry{
			"apple": {Email: "a@x.com", Word: "apple", WrongCount: 4, Mastered: true},
		},
	}
	p := newTestProcessor(ww, &stubResults{}, &stubAttendance{})

	_, err := p.Submit(context.Background(), "a@x.com", 3, models.QuizMorning, []models.QuizAnswer{
		{Word: "apple", Meaning: "사과", Memorized: true},
	})
	require.NoError(t, err)

	assert.Empty(t, ww.upserted, "an already-mastered correct answer changes nothing")
}

func TestSubmitDuplicateWordsLastWins(t *testing.T) {
	ww := &stubWrongWords{}
	res := &stubResults{}
	p := newTestProcessor(ww, res, &stubAttendance{})

	out, err := p.Submit(context.Background(), "a@x.com", 3, models.QuizLunch, []models.QuizAnswer{
		{Word: "apple", Meaning: "사과", Memorized: false},
		{Word: "apple", Meaning: "사과", Memorized: true},
	})
	require.NoError(t, err)

	// The tracker sees one logical answer; the audit row keeps both.
	assert.Empty(t, ww.upserted)
	assert.Equal(t, 1, out.Score, "score counts raw answers")
	assert.Equal(t, 2, out.Total)
	require.Len(t, res.created, 1)
	assert.Len(t, res.created[0].Answers, 2)
}

func TestSubmitResultWriteFailureIsFatal(t *testing.T) {
	res := &stubResults{createErr: errors.New("disk full")}
	p := newTestProcessor(&stubWrongWords{}, res, &stubAttendance{})

	_, err := p.Submit(context.Background(), "a@x.com", 3, models.QuizLunch, []models.QuizAnswer{
		{Word: "apple", Meaning: "사과", Memorized: true},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save quiz result")
}

func TestSubmitFetchFailureWritesNothing(t *testing.T) {
	ww := &stubWrongWords{fetchErr: errors.New("connection reset")}
	res := &stubResults{}
	p := newTestProcessor(ww, res, &stubAttendance{})

	_, err := p.Submit(context.Background(), "a@x.com", 3, models.QuizLunch, []models.QuizAnswer{
		{Word: "apple", Meaning: "사과", Memorized: false},
	})
	require.Error(t, err)
	assert.Empty(t, res.created)
	assert.Empty(t, ww.upserted)
}

func TestNextReviewDays(t *testing.T) {
	assert.Equal(t, 3, nextReviewDays(1))
	assert.Equal(t, 2, nextReviewDays(2))
	assert.Equal(t, 1, nextReviewDays(3))
	assert.Equal(t, 1, nextReviewDays(9))
}
