package models

import "time"

// Word is one catalog entry. The catalog is immutable from the dispatch
// perspective; ordering within a day is insertion order.
type Word struct {
	ID        int       `json:"id" db:"id"`
	Day       int       `json:"day" db:"day"`
	Word      string    `json:"word" db:"word"`
	Meaning   string    `json:"meaning" db:"meaning"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
