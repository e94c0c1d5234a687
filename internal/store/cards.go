package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/abhisek/chessbook/internal/srs"
)

// Compile-time check: Store satisfies the scheduler's persistence contract.
var _ srs.CardStore = (*Store)(nil)

// GetOrCreate returns the card for an opening, inserting the initial
// state first if none exists. The insert-or-ignore makes it a single
// idempotent operation, safe against a concurrent create.
func (s *Store) GetOrCreate(ctx context.Context, openingID int64, today time.Time) (srs.CardState, error) {
	if err := s.insertCardIgnore(ctx, s.db, openingID, today); err != nil {
		return srs.CardState{}, err
	}
	return s.cardByOpening(ctx, s.db, openingID)
}

// Apply runs the read-modify-write for one graded review as a single
// transaction: load (or lazily create) the card, run update, persist
// the new state, and append the review-log entry. Nothing is written
// when update fails.
func (s *Store) Apply(ctx context.Context, openingID int64, today time.Time,
	update func(srs.CardState) (srs.CardState, error), entry srs.ReviewEntry) (srs.CardState, error) {

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return srs.CardState{}, fmt.Errorf("apply grade: begin: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := s.insertCardIgnore(ctx, tx, openingID, today); err != nil {
		return srs.CardState{}, err
	}
	card, err := s.cardByOpening(ctx, tx, openingID)
	if err != nil {
		return srs.CardState{}, err
	}

	next, err := update(card)
	if err != nil {
		return srs.CardState{}, err
	}

	var lastGrade any
	if next.LastGrade != nil {
		lastGrade = int(*next.LastGrade)
	}
	var lastReviewedAt any
	if next.LastReviewedAt != nil {
		lastReviewedAt = next.LastReviewedAt.UTC().Format(time.RFC3339)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE study_cards
		 SET ease = ?, interval_days = ?, reps = ?, lapses = ?,
		     due_date = ?, last_grade = ?, last_reviewed_at = ?
		 WHERE opening_id = ?`,
		next.Ease, next.IntervalDays, next.Reps, next.Lapses,
		next.Due.Format(time.DateOnly), lastGrade, lastReviewedAt, openingID)
	if err != nil {
		return srs.CardState{}, fmt.Errorf("apply grade: update card: %w", err)
	}

	if err := appendReview(ctx, tx, entry); err != nil {
		return srs.CardState{}, err
	}

	if err := tx.Commit(); err != nil {
		return srs.CardState{}, fmt.Errorf("apply grade: commit: %w", err)
	}
	return next, nil
}

// EnsureForPrefix creates missing cards for every opening under prefix.
func (s *Store) EnsureForPrefix(ctx context.Context, prefix string, today time.Time) (int, error) {
	initial := srs.NewCardState(today)
	res, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO study_cards (opening_id, ease, due_date, created_at)
		 SELECT id, ?, ?, ? FROM openings WHERE name LIKE ?`,
		initial.Ease, initial.Due.Format(time.DateOnly),
		today.UTC().Format(time.RFC3339), likePrefix(prefix))
	if err != nil {
		return 0, fmt.Errorf("ensure cards: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("ensure cards: rows affected: %w", err)
	}
	return int(n), nil
}

// Due lists openings due on or before asOf, ordered by (due date, name).
func (s *Store) Due(ctx context.Context, prefix string, asOf time.Time, limit int) ([]srs.DueOpening, error) {
	return s.queryDue(ctx,
		`SELECT o.id, o.name, o.moves_san, c.due_date
		 FROM openings o JOIN study_cards c ON c.opening_id = o.id
		 WHERE c.due_date <= ? AND o.name LIKE ?
		 ORDER BY c.due_date ASC, o.name ASC LIMIT ?`,
		srs.DateOf(asOf).Format(time.DateOnly), likePrefix(prefix), limit)
}

// Soonest lists openings by soonest due date regardless of today.
func (s *Store) Soonest(ctx context.Context, prefix string, limit int) ([]srs.DueOpening, error) {
	return s.queryDue(ctx,
		`SELECT o.id, o.name, o.moves_san, c.due_date
		 FROM openings o JOIN study_cards c ON c.opening_id = o.id
		 WHERE o.name LIKE ?
		 ORDER BY c.due_date ASC, o.name ASC LIMIT ?`,
		likePrefix(prefix), limit)
}

func (s *Store) queryDue(ctx context.Context, query string, args ...any) ([]srs.DueOpening, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query due cards: %w", err)
	}
	defer rows.Close()

	var out []srs.DueOpening
	for rows.Next() {
		var d srs.DueOpening
		var due string
		if err := rows.Scan(&d.ID, &d.Name, &d.MovesSAN, &due); err != nil {
			return nil, fmt.Errorf("query due cards: scan: %w", err)
		}
		d.Due, err = time.Parse(time.DateOnly, due)
		if err != nil {
			return nil, fmt.Errorf("query due cards: bad due date %q: %w", due, err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query due cards: %w", err)
	}
	return out, nil
}

// querier covers both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *Store) insertCardIgnore(ctx context.Context, q querier, openingID int64, today time.Time) error {
	initial := srs.NewCardState(today)
	_, err := q.ExecContext(ctx,
		`INSERT OR IGNORE INTO study_cards (opening_id, ease, due_date, created_at)
		 VALUES (?, ?, ?, ?)`,
		openingID, initial.Ease, initial.Due.Format(time.DateOnly),
		today.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("create card for opening %d: %w", openingID, err)
	}
	return nil
}

func (s *Store) cardByOpening(ctx context.Context, q querier, openingID int64) (srs.CardState, error) {
	row := q.QueryRowContext(ctx,
		`SELECT ease, interval_days, reps, lapses, due_date, last_grade, last_reviewed_at
		 FROM study_cards WHERE opening_id = ?`, openingID)

	var card srs.CardState
	var due string
	var lastGrade sql.NullInt64
	var lastReviewedAt sql.NullString
	err := row.Scan(&card.Ease, &card.IntervalDays, &card.Reps, &card.Lapses,
		&due, &lastGrade, &lastReviewedAt)
	if err != nil {
		return srs.CardState{}, fmt.Errorf("load card for opening %d: %w", openingID, err)
	}

	card.Due, err = time.Parse(time.DateOnly, due)
	if err != nil {
		return srs.CardState{}, fmt.Errorf("load card for opening %d: bad due date %q: %w", openingID, due, err)
	}
	if lastGrade.Valid {
		g := srs.Grade(lastGrade.Int64)
		card.LastGrade = &g
	}
	if lastReviewedAt.Valid {
		t, err := time.Parse(time.RFC3339, lastReviewedAt.String)
		if err != nil {
			return srs.CardState{}, fmt.Errorf("load card for opening %d: bad reviewed_at %q: %w", openingID, lastReviewedAt.String, err)
		}
		card.LastReviewedAt = &t
	}
	return card, nil
}

func appendReview(ctx context.Context, q querier, entry srs.ReviewEntry) error {
	var correct, target any
	if entry.CorrectTokens != nil {
		correct = *entry.CorrectTokens
	}
	if entry.TargetTokens != nil {
		target = *entry.TargetTokens
	}
	_, err := q.ExecContext(ctx,
		`INSERT INTO study_reviews
		 (opening_id, session_id, reviewed_at, grade, prompt_mode, prompt, typed_moves, correct_tokens, target_tokens)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.OpeningID, nullIfEmpty(entry.SessionID),
		entry.ReviewedAt.UTC().Format(time.RFC3339), int(entry.Grade),
		entry.PromptMode, nullIfEmpty(entry.Prompt), nullIfEmpty(entry.TypedMoves),
		correct, target)
	if err != nil {
		return fmt.Errorf("append review for opening %d: %w", entry.OpeningID, err)
	}
	return nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
