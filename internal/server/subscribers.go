package server

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/allofdaniel/yessirpanda-dashboard-sub000/internal/database"
	"github.com/allofdaniel/yessirpanda-dashboard-sub000/pkg/models"
)

// SubscriberHandler covers signup, pause/resume, per-subscriber settings
// and the dashboard read endpoints (words of a day, quiz history, wrong
// words, catalog meta).
type SubscriberHandler struct {
	subscribers *database.SubscriberRepository
	settings    *database.SettingsRepository
	words       *database.WordRepository
	quizResults *database.QuizResultRepository
	wrongWords  *database.WrongWordRepository
	appConfig   *database.ConfigRepository
}

// NewSubscriberHandler creates the handler
func NewSubscriberHandler(
	subscribers *database.SubscriberRepository,
	settings *database.SettingsRepository,
	words *database.WordRepository,
	quizResults *database.QuizResultRepository,
	wrongWords *database.WrongWordRepository,
	appConfig *database.ConfigRepository,
) *SubscriberHandler {
	return &SubscriberHandler{
		subscribers: subscribers,
		settings:    settings,
		words:       words,
		quizResults: quizResults,
		wrongWords:  wrongWords,
		appConfig:   appConfig,
	}
}

type signupRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Signup registers a subscriber, or refreshes the name for an existing one.
// Progression is never reset by re-signing up.
func (h *SubscriberHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "email is required"})
		return
	}

	sub := &models.Subscriber{Email: req.Email, Name: req.Name}
	if err := h.subscribers.Upsert(sub); err != nil {
		log.Printf("server: signup failed for %s: %v", req.Email, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to register subscriber"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"email": req.Email, "status": sub.Status})
}

type statusRequest struct {
	Email  string `json:"email"`
	Status string `json:"status"`
}

// SetStatus pauses or resumes a subscriber. Paused subscribers keep their
// history and settings; they just stop being eligible for dispatch.
func (h *SubscriberHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "email is required"})
		return
	}

	if err := h.subscribers.UpdateStatus(req.Email, req.Status); err != nil {
		if req.Status != models.StatusActive && req.Status != models.StatusPaused {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		log.Printf("server: status update failed for %s: %v", req.Email, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update status"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"email": req.Email, "status": req.Status})
}

// GetSettings returns a subscriber's notification settings, resolved
// against defaults; a subscriber without a row gets the defaults.
func (h *SubscriberHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "email is required"})
		return
	}

	settings, err := h.settings.GetByEmail(email)
	if err != nil {
		log.Printf("server: failed to load settings for %s: %v", email, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load settings"})
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// SaveSettings upserts a subscriber's notification settings. Webhook
// validation happens in the repository so stored rows are always sendable.
func (h *SubscriberHandler) SaveSettings(w http.ResponseWriter, r *http.Request) {
	var settings models.NotificationSettings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil || settings.Email == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "email is required"})
		return
	}

	if err := h.settings.Upsert(settings); err != nil {
		if !models.ValidWebhook(settings.GoogleChatWebhook) && settings.GoogleChatEnabled {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		log.Printf("server: failed to save settings for %s: %v", settings.Email, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to save settings"})
		return
	}
	writeJSON(w, http.StatusOK, settings.Resolved())
}

// Words returns the catalog words for one day, for the dashboard quiz page
func (h *SubscriberHandler) Words(w http.ResponseWriter, r *http.Request) {
	day, err := strconv.Atoi(r.URL.Query().Get("day"))
	if err != nil || day < 1 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "a day >= 1 is required"})
		return
	}

	words, err := h.words.GetByDay(day)
	if err != nil {
		log.Printf("server: failed to load words for day %d: %v", day, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load words"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"day": day, "words": words})
}

type createWordRequest struct {
	Day     int    `json:"day"`
	Word    string `json:"word"`
	Meaning string `json:"meaning"`
}

// CreateWord adds a single catalog entry, the admin complement to the bulk
// workbook import.
func (h *SubscriberHandler) CreateWord(w http.ResponseWriter, r *http.Request) {
	var req createWordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Day < 1 || req.Word == "" || req.Meaning == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "day, word and meaning are required"})
		return
	}

	word := &models.Word{Day: req.Day, Word: req.Word, Meaning: req.Meaning}
	if err := h.words.Create(word); err != nil {
		log.Printf("server: failed to create word %q: %v", req.Word, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create word"})
		return
	}
	writeJSON(w, http.StatusOK, word)
}

// QuizHistory returns a subscriber's submission history, newest first
func (h *SubscriberHandler) QuizHistory(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "email is required"})
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	results, err := h.quizResults.ListByEmail(email, limit)
	if err != nil {
		log.Printf("server: failed to load quiz history for %s: %v", email, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load quiz history"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"email": email, "results": results})
}

// WrongWords returns the full wrong-word history including mastered entries
func (h *SubscriberHandler) WrongWords(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "email is required"})
		return
	}

	entries, err := h.wrongWords.ListByEmail(email)
	if err != nil {
		log.Printf("server: failed to load wrong words for %s: %v", email, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load wrong words"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"email": email, "words": entries})
}

// Meta reports the progression ceiling and how many days the catalog
// actually covers, so the dashboard can warn when the two disagree.
func (h *SubscriberHandler) Meta(w http.ResponseWriter, _ *http.Request) {
	totalDays, err := h.appConfig.TotalDays()
	if err != nil {
		log.Printf("server: failed to load total days: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load config"})
		return
	}

	catalogDays, err := h.words.TotalDayCount()
	if err != nil {
		log.Printf("server: failed to count catalog days: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load catalog"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{
		"total_days":   totalDays,
		"catalog_days": catalogDays,
	})
}

type totalDaysRequest struct {
	TotalDays int `json:"total_days"`
}

// SetTotalDays overrides the global progression ceiling
func (h *SubscriberHandler) SetTotalDays(w http.ResponseWriter, r *http.Request) {
	var req totalDaysRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.TotalDays < 1 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "total_days >= 1 is required"})
		return
	}

	if err := h.appConfig.Set("total_days", strconv.Itoa(req.TotalDays)); err != nil {
		log.Printf("server: failed to set total days: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to set total days"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"total_days": req.TotalDays})
}
