package server

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/allofdaniel/yessirpanda-dashboard-sub000/internal/database"
	"github.com/allofdaniel/yessirpanda-dashboard-sub000/pkg/models"
)

// ProgressHandler covers the manual progression endpoints. These are the
// admin/override path; the automatic day advancement lives in the evening
// dispatch.
type ProgressHandler struct {
	subscribers *database.SubscriberRepository
	attendance  *database.AttendanceRepository
	appConfig   *database.ConfigRepository
	loc         *time.Location
}

// NewProgressHandler creates the handler
func NewProgressHandler(subscribers *database.SubscriberRepository, attendance *database.AttendanceRepository, appConfig *database.ConfigRepository, loc *time.Location) *ProgressHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &ProgressHandler{
		subscribers: subscribers,
		attendance:  attendance,
		appConfig:   appConfig,
		loc:         loc,
	}
}

type progressRequest struct {
	Email string `json:"email"`
	Day   int    `json:"day,omitempty"`
}

// Advance bumps current_day by one, still bounded by the global ceiling
func (h *ProgressHandler) Advance(w http.ResponseWriter, r *http.Request) {
	var req progressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "email is required"})
		return
	}

	totalDays, err := h.appConfig.TotalDays()
	if err != nil {
		log.Printf("server: failed to load total days: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load config"})
		return
	}

	day, advanced, err := h.subscribers.AdvanceDay(req.Email, totalDays)
	if err != nil {
		log.Printf("server: manual advance failed for %s: %v", req.Email, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to advance day"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"current_day": day, "advanced": advanced})
}

// Set overrides current_day directly, bypassing monotonicity
func (h *ProgressHandler) Set(w http.ResponseWriter, r *http.Request) {
	var req progressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Day < 1 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "email and a day >= 1 are required"})
		return
	}

	if err := h.subscribers.SetDay(req.Email, req.Day); err != nil {
		log.Printf("server: set day failed for %s: %v", req.Email, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to set day"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"current_day": req.Day})
}

type postponeRequest struct {
	Email  string `json:"email"`
	Day    int    `json:"day"`
	Cancel bool   `json:"cancel,omitempty"`
}

// Postpone adds or removes a day from the postponed list. Postponing never
// touches current_day; postponed words only gain a flat weight in the
// review queue.
func (h *ProgressHandler) Postpone(w http.ResponseWriter, r *http.Request) {
	var req postponeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Day < 1 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "email and a day >= 1 are required"})
		return
	}

	sub, err := h.subscribers.GetByEmail(req.Email)
	if err != nil {
		log.Printf("server: postpone lookup failed for %s: %v", req.Email, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load subscriber"})
		return
	}
	if sub == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "subscriber not found"})
		return
	}

	days := make(models.IntList, 0, len(sub.PostponedDays)+1)
	for _, d := range sub.PostponedDays {
		if req.Cancel && d == req.Day {
			continue
		}
		days = append(days, d)
	}
	if !req.Cancel && !days.Contains(req.Day) {
		days = append(days, req.Day)
	}

	if err := h.subscribers.UpdatePostponedDays(req.Email, days); err != nil {
		log.Printf("server: postpone update failed for %s: %v", req.Email, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update postponed days"})
		return
	}

	if !req.Cancel {
		rec := models.AttendanceRecord{
			Email:     sub.Email,
			Date:      time.Now().In(h.loc).Format("2006-01-02"),
			Type:      models.AttendancePostponed,
			Completed: true,
			Day:       &req.Day,
		}
		if err := h.attendance.Upsert(rec); err != nil {
			log.Printf("server: postpone attendance failed for %s: %v", req.Email, err)
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"postponed_days": days})
}
