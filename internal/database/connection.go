package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// DB is the global database connection
var DB *sqlx.DB

// Connect establishes a connection to the database. DB_TYPE selects the
// driver: "postgres" (DATABASE_URL) or "sqlite" (local file). Postgres is
// the default for production compatibility.
func Connect() error {
	dbType := os.Getenv("DB_TYPE")
	if dbType == "" {
		dbType = "postgres"
	}

	var db *sqlx.DB
	var err error

	if dbType == "sqlite" {
		// Create data directory if it doesn't exist
		dataDir := "data"
		if mkErr := os.MkdirAll(dataDir, 0755); mkErr != nil {
			return fmt.Errorf("failed to create data directory: %v", mkErr)
		}
		dbPath := filepath.Join(dataDir, "dashboard.db")
		db, err = sqlx.Connect("sqlite3", dbPath)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %v", err)
		}
		if _, err = db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			return fmt.Errorf("failed to enable foreign keys: %v", err)
		}
		// SQLite doesn't support multiple writers
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	} else {
		dsn := os.Getenv("DATABASE_URL")
		if dsn == "" {
			return fmt.Errorf("DATABASE_URL environment variable is not set")
		}
		db, err = sqlx.Connect("postgres", dsn)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %v", err)
		}
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
	}

	DB = db

	// Initialize schema
	return initializeSchema()
}

// Close closes the database connection
func Close() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}

// initializeSchema creates necessary tables if they don't exist. All array
// columns are JSON text and all timestamps are written from Go, so the same
// statements run on both postgres and sqlite; only the auto-increment key
// spelling differs between the two.
func initializeSchema() error {
	pk := "SERIAL PRIMARY KEY"
	if DB.DriverName() == "sqlite3" {
		pk = "INTEGER PRIMARY KEY AUTOINCREMENT"
	}

	statements := []string{
		`CREATE TABLE IF NOT EXISTS subscribers (
			email TEXT PRIMARY KEY,
			name TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'active',
			current_day INTEGER NOT NULL DEFAULT 1,
			postponed_days TEXT NOT NULL DEFAULT '[]',
			last_lesson_at TIMESTAMP,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS notification_settings (
			email TEXT PRIMARY KEY,
			email_enabled BOOLEAN NOT NULL DEFAULT true,
			telegram_enabled BOOLEAN NOT NULL DEFAULT false,
			telegram_chat_id TEXT NOT NULL DEFAULT '',
			google_chat_enabled BOOLEAN NOT NULL DEFAULT false,
			google_chat_webhook TEXT NOT NULL DEFAULT '',
			morning_time TEXT NOT NULL DEFAULT '07:30',
			lunch_time TEXT NOT NULL DEFAULT '12:00',
			evening_time TEXT NOT NULL DEFAULT '16:00',
			active_days TEXT NOT NULL DEFAULT '[1,2,3,4,5]'
		)`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS words (
			id %s,
			day INTEGER NOT NULL,
			word TEXT NOT NULL,
			meaning TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(day, word)
		)`, pk),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS attendance (
			id %s,
			email TEXT NOT NULL,
			date TEXT NOT NULL,
			type TEXT NOT NULL,
			completed BOOLEAN NOT NULL DEFAULT true,
			day INTEGER,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(email, date, type)
		)`, pk),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS wrong_words (
			id %s,
			email TEXT NOT NULL,
			word TEXT NOT NULL,
			meaning TEXT NOT NULL DEFAULT '',
			wrong_count INTEGER NOT NULL DEFAULT 0,
			last_wrong TIMESTAMP,
			next_review TIMESTAMP,
			mastered BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(email, word)
		)`, pk),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS quiz_results (
			id %s,
			email TEXT NOT NULL,
			day INTEGER NOT NULL,
			quiz_type TEXT NOT NULL,
			score INTEGER NOT NULL,
			total INTEGER NOT NULL,
			answers TEXT NOT NULL DEFAULT '[]',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`, pk),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS quiz_word_results (
			id %s,
			email TEXT NOT NULL,
			day INTEGER NOT NULL,
			quiz_type TEXT NOT NULL,
			word TEXT NOT NULL,
			meaning TEXT NOT NULL DEFAULT '',
			memorized BOOLEAN NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`, pk),
		`CREATE TABLE IF NOT EXISTS app_config (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
	}

	for _, stmt := range statements {
		if _, err := DB.Exec(stmt); err != nil {
			return fmt.Errorf("failed to initialize schema: %v", err)
		}
	}

	return nil
}
