// Package server exposes the REST surface consumed by the dashboard and by
// the external dispatch trigger.
package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/allofdaniel/yessirpanda-dashboard-sub000/internal/dispatch"
	"github.com/allofdaniel/yessirpanda-dashboard-sub000/internal/quiz"
	"github.com/allofdaniel/yessirpanda-dashboard-sub000/pkg/models"
	"github.com/gorilla/mux"
)

// Server wires the HTTP handlers to the core
type Server struct {
	dispatcher  *dispatch.Dispatcher
	processor   *quiz.Processor
	progress    *ProgressHandler
	review      *ReviewHandler
	subscribers *SubscriberHandler
}

// New creates a server
func New(dispatcher *dispatch.Dispatcher, processor *quiz.Processor, progress *ProgressHandler, review *ReviewHandler, subscribers *SubscriberHandler) *Server {
	return &Server{
		dispatcher:  dispatcher,
		processor:   processor,
		progress:    progress,
		review:      review,
		subscribers: subscribers,
	}
}

// Router builds the route table
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/api/dispatch/{type}", s.handleDispatch).Methods(http.MethodPost)
	r.HandleFunc("/api/quiz/submit", s.handleQuizSubmit).Methods(http.MethodPost)

	r.HandleFunc("/api/progress/advance", s.progress.Advance).Methods(http.MethodPost)
	r.HandleFunc("/api/progress/set", s.progress.Set).Methods(http.MethodPost)
	r.HandleFunc("/api/postpone", s.progress.Postpone).Methods(http.MethodPost)

	r.HandleFunc("/api/review", s.review.Queue).Methods(http.MethodGet)
	r.HandleFunc("/api/attendance", s.review.Attendance).Methods(http.MethodGet)

	r.HandleFunc("/api/subscribers", s.subscribers.Signup).Methods(http.MethodPost)
	r.HandleFunc("/api/subscribers/status", s.subscribers.SetStatus).Methods(http.MethodPost)
	r.HandleFunc("/api/settings", s.subscribers.GetSettings).Methods(http.MethodGet)
	r.HandleFunc("/api/settings", s.subscribers.SaveSettings).Methods(http.MethodPost)
	r.HandleFunc("/api/words", s.subscribers.Words).Methods(http.MethodGet)
	r.HandleFunc("/api/words", s.subscribers.CreateWord).Methods(http.MethodPost)
	r.HandleFunc("/api/quiz/history", s.subscribers.QuizHistory).Methods(http.MethodGet)
	r.HandleFunc("/api/wrong-words", s.subscribers.WrongWords).Methods(http.MethodGet)
	r.HandleFunc("/api/meta", s.subscribers.Meta).Methods(http.MethodGet)
	r.HandleFunc("/api/config/total-days", s.subscribers.SetTotalDays).Methods(http.MethodPost)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleDispatch runs one dispatch function and returns its batch summary.
// Partial failures live inside the summary; only a pre-loop failure maps to
// a 5xx, which tells the external trigger to retry.
func (s *Server) handleDispatch(w http.ResponseWriter, r *http.Request) {
	dispatchType := mux.Vars(r)["type"]

	summary, err := s.dispatcher.Run(r.Context(), dispatchType)
	if err != nil {
		log.Printf("server: dispatch %s failed: %v", dispatchType, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

type quizSubmitRequest struct {
	Email    string              `json:"email"`
	Day      int                 `json:"day"`
	QuizType string              `json:"quiz_type"`
	Answers  []models.QuizAnswer `json:"answers"`
}

// handleQuizSubmit is the thin wrapper over the quiz processor
func (s *Server) handleQuizSubmit(w http.ResponseWriter, r *http.Request) {
	var req quizSubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Email == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "email is required"})
		return
	}

	result, err := s.processor.Submit(r.Context(), req.Email, req.Day, req.QuizType, req.Answers)
	if err != nil {
		if err == quiz.ErrNoAnswers {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		log.Printf("server: quiz submit failed for %s: %v", req.Email, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to save quiz result"})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// writeJSON writes a JSON response with the given status
func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("server: failed to encode response: %v", err)
	}
}
