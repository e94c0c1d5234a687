package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/chessbook/internal/opening"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("store: not found")

// AddOpening inserts a new opening. Move legality is the caller's
// responsibility; the store treats moves_san as opaque text.
func (s *Store) AddOpening(ctx context.Context, name, movesSAN string, now time.Time) (opening.Line, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO openings (name, moves_san, created_at) VALUES (?, ?, ?)`,
		name, movesSAN, now.UTC().Format(time.RFC3339))
	if err != nil {
		return opening.Line{}, fmt.Errorf("add opening %q: %w", name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return opening.Line{}, fmt.Errorf("add opening %q: last insert id: %w", name, err)
	}
	return opening.Line{ID: id, Name: name, MovesSAN: movesSAN}, nil
}

// OpeningByName looks an opening up by its unique name.
func (s *Store) OpeningByName(ctx context.Context, name string) (opening.Line, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, moves_san FROM openings WHERE name = ?`, name)
	var ln opening.Line
	if err := row.Scan(&ln.ID, &ln.Name, &ln.MovesSAN); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return opening.Line{}, fmt.Errorf("opening %q: %w", name, ErrNotFound)
		}
		return opening.Line{}, fmt.Errorf("opening %q: %w", name, err)
	}
	return ln, nil
}

// OpeningByID looks an opening up by id.
func (s *Store) OpeningByID(ctx context.Context, id int64) (opening.Line, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, moves_san FROM openings WHERE id = ?`, id)
	var ln opening.Line
	if err := row.Scan(&ln.ID, &ln.Name, &ln.MovesSAN); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return opening.Line{}, fmt.Errorf("opening %d: %w", id, ErrNotFound)
		}
		return opening.Line{}, fmt.Errorf("opening %d: %w", id, err)
	}
	return ln, nil
}

// OpeningsByPrefix lists openings whose name starts with prefix,
// ordered by name. An empty prefix matches everything. limit <= 0
// means no cap.
func (s *Store) OpeningsByPrefix(ctx context.Context, prefix string, limit int) ([]opening.Line, error) {
	q := `SELECT id, name, moves_san FROM openings WHERE name LIKE ? ORDER BY name ASC`
	args := []any{likePrefix(prefix)}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list openings: %w", err)
	}
	defer rows.Close()

	var out []opening.Line
	for rows.Next() {
		var ln opening.Line
		if err := rows.Scan(&ln.ID, &ln.Name, &ln.MovesSAN); err != nil {
			return nil, fmt.Errorf("list openings: scan: %w", err)
		}
		out = append(out, ln)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list openings: %w", err)
	}
	return out, nil
}

// likePrefix builds a LIKE pattern anchored at the start of the name.
func likePrefix(prefix string) string {
	return prefix + "%"
}
