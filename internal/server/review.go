package server

import (
	"log"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/allofdaniel/yessirpanda-dashboard-sub000/internal/database"
	"github.com/allofdaniel/yessirpanda-dashboard-sub000/internal/quiz"
	"github.com/allofdaniel/yessirpanda-dashboard-sub000/pkg/models"
)

const defaultAttendanceLimit = 60

// ReviewHandler serves the weighted review queue and the attendance history
type ReviewHandler struct {
	wrongWords  *database.WrongWordRepository
	subscribers *database.SubscriberRepository
	words       *database.WordRepository
	attendance  *database.AttendanceRepository
}

// NewReviewHandler creates a review handler
func NewReviewHandler(wrongWords *database.WrongWordRepository, subscribers *database.SubscriberRepository, words *database.WordRepository, attendance *database.AttendanceRepository) *ReviewHandler {
	return &ReviewHandler{
		wrongWords:  wrongWords,
		subscribers: subscribers,
		words:       words,
		attendance:  attendance,
	}
}

// Queue returns the shuffled review queue for a subscriber: unmastered wrong
// words weighted by miss count plus the words of any postponed days.
func (h *ReviewHandler) Queue(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "email is required"})
		return
	}

	entries, err := h.wrongWords.ListUnmastered(email)
	if err != nil {
		log.Printf("server: failed to load wrong words for %s: %v", email, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load review words"})
		return
	}

	var postponed []models.Word
	sub, err := h.subscribers.GetByEmail(email)
	if err != nil {
		log.Printf("server: failed to load subscriber %s: %v", email, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load subscriber"})
		return
	}
	if sub != nil && len(sub.PostponedDays) > 0 {
		byDay, err := h.words.GetByDays(sub.PostponedDays)
		if err != nil {
			log.Printf("server: failed to load postponed words for %s: %v", email, err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load postponed words"})
			return
		}
		for _, day := range sub.PostponedDays {
			postponed = append(postponed, byDay[day]...)
		}
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	queue := quiz.BuildReviewQueue(entries, postponed, rng)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"email": email,
		"count": len(queue),
		"queue": queue,
	})
}

// Attendance returns the recent attendance rows for a subscriber,
// newest first.
func (h *ReviewHandler) Attendance(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "email is required"})
		return
	}

	limit := defaultAttendanceLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	records, err := h.attendance.ListByEmail(email, limit)
	if err != nil {
		log.Printf("server: failed to load attendance for %s: %v", email, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load attendance"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"email":   email,
		"records": records,
	})
}
