package database

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/allofdaniel/yessirpanda-dashboard-sub000/pkg/models"
)

// QuizResultRepository handles database operations for quiz results
type QuizResultRepository struct{}

// NewQuizResultRepository creates a new repository instance
func NewQuizResultRepository() *QuizResultRepository {
	return &QuizResultRepository{}
}

// Create inserts one aggregate result row for a submission. This is the
// primary write of the quiz path; its failure fails the request.
func (r *QuizResultRepository) Create(result *models.QuizResult) error {
	answers, err := json.Marshal(result.Answers)
	if err != nil {
		return fmt.Errorf("failed to marshal answers: %v", err)
	}
	if result.CreatedAt.IsZero() {
		result.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO quiz_results (email, day, quiz_type, score, total, answers, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = DB.Exec(query,
		result.Email, result.Day, result.QuizType,
		result.Score, result.Total, string(answers), result.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create quiz result: %v", err)
	}
	return nil
}

// legacyRow mirrors the historical per-word results table
type legacyRow struct {
	Email     string `db:"email"`
	Day       int    `db:"day"`
	QuizType  string `db:"quiz_type"`
	Word      string `db:"word"`
	Meaning   string `db:"meaning"`
	Memorized bool   `db:"memorized"`
}

// BulkInsertLegacy writes the per-word rows kept for historical
// compatibility, one statement for the whole submission
func (r *QuizResultRepository) BulkInsertLegacy(result *models.QuizResult) error {
	if len(result.Answers) == 0 {
		return nil
	}

	rows := make([]legacyRow, 0, len(result.Answers))
	for _, a := range result.Answers {
		rows = append(rows, legacyRow{
			Email:     result.Email,
			Day:       result.Day,
			QuizType:  result.QuizType,
			Word:      a.Word,
			Meaning:   a.Meaning,
			Memorized: a.Memorized,
		})
	}

	query := `
		INSERT INTO quiz_word_results (email, day, quiz_type, word, meaning, memorized)
		VALUES (:email, :day, :quiz_type, :word, :meaning, :memorized)
	`
	if _, err := DB.NamedExec(query, rows); err != nil {
		return fmt.Errorf("failed to insert legacy quiz rows: %v", err)
	}
	return nil
}

// ListByEmail returns a subscriber's submission history, newest first
func (r *QuizResultRepository) ListByEmail(email string, limit int) ([]models.QuizResult, error) {
	if limit <= 0 {
		limit = 30
	}

	rows, err := DB.Queryx(
		"SELECT id, email, day, quiz_type, score, total, answers, created_at FROM quiz_results WHERE email = $1 ORDER BY created_at DESC LIMIT $2",
		email, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list quiz results: %v", err)
	}
	defer rows.Close()

	var results []models.QuizResult
	for rows.Next() {
		var res models.QuizResult
		var answers string
		if err := rows.Scan(&res.ID, &res.Email, &res.Day, &res.QuizType,
			&res.Score, &res.Total, &answers, &res.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan quiz result: %v", err)
		}
		if answers != "" {
			if err := json.Unmarshal([]byte(answers), &res.Answers); err != nil {
				return nil, fmt.Errorf("failed to parse answers: %v", err)
			}
		}
		results = append(results, res)
	}
	return results, nil
}
