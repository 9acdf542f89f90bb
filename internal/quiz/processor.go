// Package quiz processes quiz submissions and maintains the wrong-word
// learning history behind the review queue.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/allofdaniel/yessirpanda-dashboard-sub000/pkg/models"
)

// ErrNoAnswers is returned when a submission carries an empty answer list.
// Rejected before any write happens.
var ErrNoAnswers = errors.New("quiz submission has no answers")

// WrongWordStore is the slice of the wrong-word repository the processor needs
type WrongWordStore interface {
	GetByEmailAndWords(email string, words []string) (map[string]models.WrongWordEntry, error)
	BulkUpsert(entries []models.WrongWordEntry) error
}

// ResultStore persists the aggregate and legacy result rows
type ResultStore interface {
	Create(result *models.QuizResult) error
	BulkInsertLegacy(result *models.QuizResult) error
}

// AttendanceWriter stamps the completion marker for the quiz slot
type AttendanceWriter interface {
	Upsert(rec models.AttendanceRecord) error
}

// Processor handles quiz submissions
type Processor struct {
	wrongWords WrongWordStore
	results    ResultStore
	attendance AttendanceWriter
	loc        *time.Location
	now        func() time.Time
}

// NewProcessor creates a processor. loc is the organizational timezone used
// for attendance dates.
func NewProcessor(wrongWords WrongWordStore, results ResultStore, attendance AttendanceWriter, loc *time.Location) *Processor {
	if loc == nil {
		loc = time.UTC
	}
	return &Processor{
		wrongWords: wrongWords,
		results:    results,
		attendance: attendance,
		loc:        loc,
		now:        time.Now,
	}
}

// SubmitResult is the caller-facing outcome of one submission
type SubmitResult struct {
	Score int `json:"score"`
	Total int `json:"total"`
}

// Submit records one quiz submission. The wrong-word entries for the
// submitted word set are fetched in a single query, changes are computed in
// memory, and the four persistence writes go out concurrently: the
// aggregate result row is the only fatal one, the rest are best-effort.
func (p *Processor) Submit(ctx context.Context, email string, day int, quizType string, answers []models.QuizAnswer) (*SubmitResult, error) {
	if len(answers) == 0 {
		return nil, ErrNoAnswers
	}

	// Duplicate words within one submission: last occurrence wins
	unique := make(map[string]models.QuizAnswer, len(answers))
	order := make([]string, 0, len(answers))
	for _, a := range answers {
		if _, seen := unique[a.Word]; !seen {
			order = append(order, a.Word)
		}
		unique[a.Word] = a
	}

	existing, err := p.wrongWords.GetByEmailAndWords(email, order)
	if err != nil {
		return nil, fmt.Errorf("failed to load wrong words: %v", err)
	}

	now := p.now().In(p.loc)
	var changes []models.WrongWordEntry
	for _, word := range order {
		a := unique[word]
		entry, found := existing[word]

		if a.Memorized {
			// Mastery freezes wrong_count at its last value. A word
			// answered correctly with no history creates nothing.
			if found && !entry.Mastered {
				entry.Mastered = true
				entry.LastWrong = now
				entry.UpdatedAt = now
				changes = append(changes, entry)
			}
			continue
		}

		if !found {
			entry = models.WrongWordEntry{
				Email:   email,
				Word:    a.Word,
				Meaning: a.Meaning,
			}
		}
		entry.Meaning = a.Meaning
		entry.WrongCount++
		entry.Mastered = false
		entry.LastWrong = now
		entry.NextReview = now.AddDate(0, 0, nextReviewDays(entry.WrongCount))
		entry.UpdatedAt = now
		changes = append(changes, entry)
	}

	score := 0
	for _, a := range answers {
		if a.Memorized {
			score++
		}
	}

	result := &models.QuizResult{
		Email:     email,
		Day:       day,
		QuizType:  quizType,
		Score:     score,
		Total:     len(answers),
		Answers:   answers,
		CreatedAt: now,
	}

	attendanceRec := models.AttendanceRecord{
		Email:     email,
		Date:      now.Format("2006-01-02"),
		Type:      quizType,
		Completed: true,
		Day:       &day,
	}

	// Four independent writes, one round-trip each. Only the aggregate
	// result write can fail the request.
	var wg sync.WaitGroup
	var resultErr error

	wg.Add(4)
	go func() {
		defer wg.Done()
		resultErr = p.results.Create(result)
	}()
	go func() {
		defer wg.Done()
		if err := p.wrongWords.BulkUpsert(changes); err != nil {
			log.Printf("quiz: wrong-word upsert failed for %s: %v", email, err)
		}
	}()
	go func() {
		defer wg.Done()
		if err := p.results.BulkInsertLegacy(result); err != nil {
			log.Printf("quiz: legacy result insert failed for %s: %v", email, err)
		}
	}()
	go func() {
		defer wg.Done()
		if err := p.attendance.Upsert(attendanceRec); err != nil {
			log.Printf("quiz: attendance upsert failed for %s: %v", email, err)
		}
	}()
	wg.Wait()

	if resultErr != nil {
		return nil, fmt.Errorf("failed to save quiz result: %v", resultErr)
	}

	return &SubmitResult{Score: score, Total: len(answers)}, nil
}

// nextReviewDays returns how soon a missed word should come back. Words
// missed repeatedly come back sooner, floored at one day.
func nextReviewDays(wrongCount int) int {
	switch {
	case wrongCount <= 1:
		return 3
	case wrongCount == 2:
		return 2
	default:
		return 1
	}
}
