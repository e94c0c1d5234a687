package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Notes returns the free-form notes attached to an opening, or "" when
// none are set.
func (s *Store) Notes(ctx context.Context, openingID int64) (string, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT notes FROM opening_notes WHERE opening_id = ?`, openingID)
	var notes string
	if err := row.Scan(&notes); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("notes for opening %d: %w", openingID, err)
	}
	return notes, nil
}

// SetNotes upserts the notes for an opening.
func (s *Store) SetNotes(ctx context.Context, openingID int64, notes string, now time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO opening_notes (opening_id, notes, updated_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT(opening_id) DO UPDATE SET
		   notes = excluded.notes,
		   updated_at = excluded.updated_at`,
		openingID, notes, now.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("set notes for opening %d: %w", openingID, err)
	}
	return nil
}
