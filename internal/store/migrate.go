package store

import (
	"database/sql"
	"fmt"
)

// SchemaVersion is the latest schema version the migrator produces.
const SchemaVersion = 1

// Migrate ensures the schema exists and is at SchemaVersion.
func Migrate(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (version INTEGER PRIMARY KEY)`)
	if err != nil {
		return fmt.Errorf("migrate: create schema_migrations: %w", err)
	}

	var current int
	err = db.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&current)
	if err != nil {
		return fmt.Errorf("migrate: read current version: %w", err)
	}
	if current >= SchemaVersion {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("migrate: begin: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS openings (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			moves_san TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS study_cards (
			opening_id INTEGER PRIMARY KEY,
			ease REAL NOT NULL DEFAULT 2.5,
			interval_days INTEGER NOT NULL DEFAULT 0,
			due_date TEXT NOT NULL,
			reps INTEGER NOT NULL DEFAULT 0,
			lapses INTEGER NOT NULL DEFAULT 0,
			last_grade INTEGER,
			last_reviewed_at TEXT,
			created_at TEXT NOT NULL,
			FOREIGN KEY(opening_id) REFERENCES openings(id) ON DELETE CASCADE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_study_cards_due_date ON study_cards(due_date)`,
		`CREATE TABLE IF NOT EXISTS study_reviews (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			opening_id INTEGER NOT NULL,
			session_id TEXT,
			reviewed_at TEXT NOT NULL,
			grade INTEGER NOT NULL,
			prompt_mode TEXT NOT NULL,
			prompt TEXT,
			typed_moves TEXT,
			correct_tokens INTEGER,
			target_tokens INTEGER,
			FOREIGN KEY(opening_id) REFERENCES openings(id) ON DELETE CASCADE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_study_reviews_opening_id ON study_reviews(opening_id)`,
		`CREATE TABLE IF NOT EXISTS evaluations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			opening_id INTEGER NOT NULL,
			depth INTEGER NOT NULL,
			score_cp INTEGER,
			mate_in INTEGER,
			bestmove_uci TEXT,
			analyzed_at TEXT NOT NULL,
			FOREIGN KEY(opening_id) REFERENCES openings(id) ON DELETE CASCADE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_evaluations_opening_id ON evaluations(opening_id)`,
		`CREATE TABLE IF NOT EXISTS opening_notes (
			opening_id INTEGER PRIMARY KEY,
			notes TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			FOREIGN KEY(opening_id) REFERENCES openings(id) ON DELETE CASCADE
		)`,
	}
	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	if _, err := tx.Exec(`INSERT INTO schema_migrations (version) VALUES (?)`, SchemaVersion); err != nil {
		return fmt.Errorf("migrate: record version: %w", err)
	}
	return tx.Commit()
}
