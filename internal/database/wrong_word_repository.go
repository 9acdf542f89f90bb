package database

import (
	"fmt"

	"github.com/allofdaniel/yessirpanda-dashboard-sub000/pkg/models"
	"github.com/jmoiron/sqlx"
)

// WrongWordRepository handles database operations for wrong-word entries
type WrongWordRepository struct{}

// NewWrongWordRepository creates a new repository instance
func NewWrongWordRepository() *WrongWordRepository {
	return &WrongWordRepository{}
}

// GetByEmailAndWords returns the existing entries for the submitted word
// set in one query, keyed by word
func (r *WrongWordRepository) GetByEmailAndWords(email string, words []string) (map[string]models.WrongWordEntry, error) {
	out := make(map[string]models.WrongWordEntry)
	if len(words) == 0 {
		return out, nil
	}

	query, args, err := sqlx.In("SELECT * FROM wrong_words WHERE email = ? AND word IN (?)", email, words)
	if err != nil {
		return nil, fmt.Errorf("failed to build wrong words query: %v", err)
	}
	query = DB.Rebind(query)

	var entries []models.WrongWordEntry
	if err := DB.Select(&entries, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get wrong words: %v", err)
	}

	for _, e := range entries {
		out[e.Word] = e
	}
	return out, nil
}

// BulkUpsert writes all changed entries in a single round-trip
func (r *WrongWordRepository) BulkUpsert(entries []models.WrongWordEntry) error {
	if len(entries) == 0 {
		return nil
	}

	query := `
		INSERT INTO wrong_words (email, word, meaning, wrong_count, last_wrong, next_review, mastered, updated_at)
		VALUES (:email, :word, :meaning, :wrong_count, :last_wrong, :next_review, :mastered, :updated_at)
		ON CONFLICT (email, word) DO UPDATE SET
			meaning = EXCLUDED.meaning,
			wrong_count = EXCLUDED.wrong_count,
			last_wrong = EXCLUDED.last_wrong,
			next_review = EXCLUDED.next_review,
			mastered = EXCLUDED.mastered,
			updated_at = EXCLUDED.updated_at
	`
	if _, err := DB.NamedExec(query, entries); err != nil {
		return fmt.Errorf("failed to bulk upsert wrong words: %v", err)
	}
	return nil
}

// ListByEmail returns every tracked word for a subscriber, hardest first
func (r *WrongWordRepository) ListByEmail(email string) ([]models.WrongWordEntry, error) {
	var entries []models.WrongWordEntry
	err := DB.Select(&entries,
		"SELECT * FROM wrong_words WHERE email = $1 ORDER BY wrong_count DESC, word", email)
	if err != nil {
		return nil, fmt.Errorf("failed to list wrong words: %v", err)
	}
	return entries, nil
}

// ListUnmastered returns the entries still in review rotation
func (r *WrongWordRepository) ListUnmastered(email string) ([]models.WrongWordEntry, error) {
	var entries []models.WrongWordEntry
	err := DB.Select(&entries,
		"SELECT * FROM wrong_words WHERE email = $1 AND mastered = false ORDER BY wrong_count DESC, word",
		email)
	if err != nil {
		return nil, fmt.Errorf("failed to list unmastered words: %v", err)
	}
	return entries, nil
}
