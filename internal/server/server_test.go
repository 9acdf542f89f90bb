package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/allofdaniel/yessirpanda-dashboard-sub000/internal/dispatch"
	"github.com/allofdaniel/yessirpanda-dashboard-sub000/internal/notify"
	"github.com/allofdaniel/yessirpanda-dashboard-sub000/internal/quiz"
	"github.com/allofdaniel/yessirpanda-dashboard-sub000/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Minimal in-memory stores backing a full router under test

type memSubscribers struct{ subs []models.Subscriber }

func (m *memSubscribers) GetActive() ([]models.Subscriber, error) { return m.subs, nil }
func (m *memSubscribers) AdvanceDay(string, int) (int, bool, error) {
	return 0, false, nil
}

type memSettings struct{}

func (memSettings) GetAll() (map[string]models.NotificationSettings, error) {
	return map[string]models.NotificationSettings{}, nil
}

type memWords struct{}

func (memWords) GetByDays([]int) (map[int][]models.Word, error) {
	return map[int][]models.Word{}, nil
}

type memAttendance struct{ upserts []models.AttendanceRecord }

func (m *memAttendance) MarkedEmails(string, string) (map[string]bool, error) {
	return map[string]bool{}, nil
}
func (m *memAttendance) Upsert(rec models.AttendanceRecord) error {
	m.upserts = append(m.upserts, rec)
	return nil
}

type memConfig struct{}

func (memConfig) TotalDays() (int, error) { return 30, nil }

type memSender struct{}

func (memSender) Send(context.Context, models.NotificationSettings, notify.Message) notify.SendResult {
	return notify.SendResult{notify.ChannelEmail: true}
}

type memWrongWords struct{ upserted []models.WrongWordEntry }

func (m *memWrongWords) GetByEmailAndWords(string, []string) (map[string]models.WrongWordEntry, error) {
	return map[string]models.WrongWordEntry{}, nil
}
func (m *memWrongWords) BulkUpsert(entries []models.WrongWordEntry) error {
	m.upserted = append(m.upserted, entries...)
	return nil
}

type memResults struct{ created []*models.QuizResult }

func (m *memResults) Create(r *models.QuizResult) error           { m.created = append(m.created, r); return nil }
func (m *memResults) BulkInsertLegacy(*models.QuizResult) error   { return nil }

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	d := dispatch.New(dispatch.Config{
		Subscribers: &memSubscribers{},
		Settings:    memSettings{},
		Words:       memWords{},
		Attendance:  &memAttendance{},
		AppConfig:   memConfig{},
		Sender:      memSender{},
		Location:    time.UTC,
	})
	p := quiz.NewProcessor(&memWrongWords{}, &memResults{}, &memAttendance{}, time.UTC)
	srv := New(d, p, nil, nil, nil)
	return srv.Router()
}

func TestHealthz(t *testing.T) {
	rec := httptest.NewRecorder()
	testRouter(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDispatchUnknownType(t *testing.T) {
	rec := httptest.NewRecorder()
	testRouter(t).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/dispatch/midnight", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestDispatchEmptyBatch(t *testing.T) {
	rec := httptest.NewRecorder()
	testRouter(t).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/dispatch/morning_words", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var summary dispatch.Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, dispatch.TypeMorningWords, summary.Type)
	assert.Equal(t, 0, summary.Sent)
	assert.NotEmpty(t, summary.InvocationID)
}

func TestQuizSubmit(t *testing.T) {
	body, _ := json.Marshal(quizSubmitRequest{
		Email:    "a@x.com",
		Day:      3,
		QuizType: models.QuizLunch,
		Answers: []models.QuizAnswer{
			{Word: "apple", Meaning: "사과", Memorized: true},
			{Word: "banana", Meaning: "바나나", Memorized: false},
		},
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/quiz/submit", bytes.NewReader(body))
	testRouter(t).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var out quiz.SubmitResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, 1, out.Score)
	assert.Equal(t, 2, out.Total)
}

func TestQuizSubmitEmptyAnswers(t *testing.T) {
	body, _ := json.Marshal(quizSubmitRequest{Email: "a@x.com", Day: 3, QuizType: models.QuizLunch})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/quiz/submit", bytes.NewReader(body))
	testRouter(t).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestQuizSubmitMalformedBody(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/quiz/submit", bytes.NewReader([]byte("{not json")))
	testRouter(t).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
