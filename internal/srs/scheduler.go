package srs

import (
	"context"
	"fmt"
	"time"
)

// ReviewEntry is one append-only review-log record. Entries are written
// alongside every card update and never mutated.
type ReviewEntry struct {
	OpeningID  int64
	SessionID  string
	ReviewedAt time.Time
	Grade      Grade
	PromptMode string
	Prompt     string
	TypedMoves string

	// Quiz scoring, when the review came from a typed quiz.
	CorrectTokens *int
	TargetTokens  *int
}

// DueOpening is an opening joined with its card's due date, as returned
// by the due/soonest queries.
type DueOpening struct {
	ID       int64
	Name     string
	MovesSAN string
	Due      time.Time
}

// CardStore is the persistence contract the scheduler runs against.
// Apply must execute the read, the update callback, the write, and the
// review-log append as a single transaction: two concurrent grades for
// the same opening must not interleave.
type CardStore interface {
	// GetOrCreate returns the card for an opening, inserting the initial
	// state first if none exists. Idempotent.
	GetOrCreate(ctx context.Context, openingID int64, today time.Time) (CardState, error)

	// Apply atomically loads the card (creating it if missing), runs
	// update, persists the result, and appends entry. If update returns
	// an error nothing is written.
	Apply(ctx context.Context, openingID int64, today time.Time,
		update func(CardState) (CardState, error), entry ReviewEntry) (CardState, error)

	// EnsureForPrefix creates missing cards for every opening whose name
	// starts with prefix, returning how many were created.
	EnsureForPrefix(ctx context.Context, prefix string, today time.Time) (int, error)

	// Due lists openings with due date on or before asOf, ordered by
	// (due date, name), capped at limit.
	Due(ctx context.Context, prefix string, asOf time.Time, limit int) ([]DueOpening, error)

	// Soonest lists openings by soonest due date regardless of asOf,
	// same ordering and cap as Due.
	Soonest(ctx context.Context, prefix string, limit int) ([]DueOpening, error)
}

// Scheduler drives spaced-repetition review scheduling over a CardStore.
type Scheduler struct {
	cards CardStore
}

// NewScheduler creates a Scheduler backed by the given store.
func NewScheduler(cards CardStore) *Scheduler {
	return &Scheduler{cards: cards}
}

// ApplyGrade records one graded review for entry.OpeningID: the SM-2
// update plus the review-log append, in one transaction. An invalid
// grade is rejected before the store is touched, so state, due date,
// and log remain unchanged.
func (s *Scheduler) ApplyGrade(ctx context.Context, now time.Time, entry ReviewEntry) (CardState, error) {
	if !entry.Grade.IsValid() {
		return CardState{}, fmt.Errorf("%w: got %d", ErrInvalidGrade, int(entry.Grade))
	}
	if entry.ReviewedAt.IsZero() {
		entry.ReviewedAt = now
	}
	return s.cards.Apply(ctx, entry.OpeningID, now, func(c CardState) (CardState, error) {
		return Update(c, entry.Grade, now)
	}, entry)
}

// EnsureCards lazily creates card state for every opening under prefix.
// Callers run this before PickDue; PickDue itself never creates state.
func (s *Scheduler) EnsureCards(ctx context.Context, prefix string, now time.Time) (int, error) {
	return s.cards.EnsureForPrefix(ctx, prefix, now)
}

// PickDue returns up to limit openings due on or before asOf, ordered by
// (due date, name). If nothing is due it falls back to the soonest-due
// openings, so a caller always gets candidates as long as any card exists.
func (s *Scheduler) PickDue(ctx context.Context, prefix string, asOf time.Time, limit int) ([]DueOpening, error) {
	due, err := s.cards.Due(ctx, prefix, DateOf(asOf), limit)
	if err != nil {
		return nil, err
	}
	if len(due) > 0 {
		return due, nil
	}
	return s.cards.Soonest(ctx, prefix, limit)
}
