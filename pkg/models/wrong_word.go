package models

import "time"

// WrongWordEntry tracks one word a subscriber has missed, keyed by
// (email, word). Entries are long-lived learning history and never deleted.
// Once mastered, wrong_count is frozen until the word is missed again.
type WrongWordEntry struct {
	ID         int       `json:"id" db:"id"`
	Email      string    `json:"email" db:"email"`
	Word       string    `json:"word" db:"word"`
	Meaning    string    `json:"meaning" db:"meaning"`
	WrongCount int       `json:"wrong_count" db:"wrong_count"`
	LastWrong  time.Time `json:"last_wrong" db:"last_wrong"`
	NextReview time.Time `json:"next_review" db:"next_review"`
	Mastered   bool      `json:"mastered" db:"mastered"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}
