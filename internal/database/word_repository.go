package database

import (
	"fmt"

	"github.com/allofdaniel/yessirpanda-dashboard-sub000/pkg/models"
	"github.com/jmoiron/sqlx"
)

// WordRepository handles database operations for the word catalog
type WordRepository struct{}

// NewWordRepository creates a new repository instance
func NewWordRepository() *WordRepository {
	return &WordRepository{}
}

// GetByDay returns the words for a single day in insertion order
func (r *WordRepository) GetByDay(day int) ([]models.Word, error) {
	var words []models.Word
	err := DB.Select(&words, "SELECT * FROM words WHERE day = $1 ORDER BY id", day)
	if err != nil {
		return nil, fmt.Errorf("failed to get words for day %d: %v", day, err)
	}
	return words, nil
}

// GetByDays returns words for every requested day in a single query,
// grouped by day. Days without catalog words are simply absent from the
// result map.
func (r *WordRepository) GetByDays(days []int) (map[int][]models.Word, error) {
	grouped := make(map[int][]models.Word)
	if len(days) == 0 {
		return grouped, nil
	}

	query, args, err := sqlx.In("SELECT * FROM words WHERE day IN (?) ORDER BY day, id", days)
	if err != nil {
		return nil, fmt.Errorf("failed to build words query: %v", err)
	}
	query = DB.Rebind(query)

	var words []models.Word
	if err := DB.Select(&words, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get words for days: %v", err)
	}

	for _, w := range words {
		grouped[w.Day] = append(grouped[w.Day], w)
	}
	return grouped, nil
}

// Create inserts a single catalog word
func (r *WordRepository) Create(word *models.Word) error {
	query := `
		INSERT INTO words (day, word, meaning)
		VALUES ($1, $2, $3)
		ON CONFLICT (day, word) DO UPDATE SET meaning = EXCLUDED.meaning
	`
	_, err := DB.Exec(query, word.Day, word.Word, word.Meaning)
	if err != nil {
		return fmt.Errorf("failed to create word: %v", err)
	}
	return nil
}

// BulkInsert writes a batch of catalog words in one statement. Used by the
// workbook importer.
func (r *WordRepository) BulkInsert(words []models.Word) error {
	if len(words) == 0 {
		return nil
	}

	query := `
		INSERT INTO words (day, word, meaning)
		VALUES (:day, :word, :meaning)
		ON CONFLICT (day, word) DO UPDATE SET meaning = EXCLUDED.meaning
	`
	if _, err := DB.NamedExec(query, words); err != nil {
		return fmt.Errorf("failed to bulk insert words: %v", err)
	}
	return nil
}

// TotalDayCount returns the highest day number present in the catalog
func (r *WordRepository) TotalDayCount() (int, error) {
	var max int
	err := DB.Get(&max, "SELECT COALESCE(MAX(day), 0) FROM words")
	if err != nil {
		return 0, fmt.Errorf("failed to get day count: %v", err)
	}
	return max, nil
}
