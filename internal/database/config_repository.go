package database

import (
	"database/sql"
	"fmt"
	"strconv"
)

// DefaultTotalDays is the progression ceiling used when the config table
// has no total_days row yet.
const DefaultTotalDays = 30

// ConfigRepository handles the key-value application config table
type ConfigRepository struct{}

// NewConfigRepository creates a new repository instance
func NewConfigRepository() *ConfigRepository {
	return &ConfigRepository{}
}

// Get returns a raw config value, empty string when absent
func (r *ConfigRepository) Get(key string) (string, error) {
	var value string
	err := DB.Get(&value, "SELECT value FROM app_config WHERE key = $1", key)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get config %s: %v", key, err)
	}
	return value, nil
}

// Set writes a config value
func (r *ConfigRepository) Set(key, value string) error {
	query := `
		INSERT INTO app_config (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
	`
	if _, err := DB.Exec(query, key, value); err != nil {
		return fmt.Errorf("failed to set config %s: %v", key, err)
	}
	return nil
}

// TotalDays returns the global progression ceiling
func (r *ConfigRepository) TotalDays() (int, error) {
	value, err := r.Get("total_days")
	if err != nil {
		return 0, err
	}
	if value == "" {
		return DefaultTotalDays, nil
	}
	days, err := strconv.Atoi(value)
	if err != nil || days < 1 {
		return DefaultTotalDays, nil
	}
	return days, nil
}
