package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// StoredEval is one persisted engine evaluation of an opening's final
// position, side-to-move POV.
type StoredEval struct {
	ID          int64
	OpeningID   int64
	Depth       int
	ScoreCP     *int
	MateIn      *int
	BestMoveUCI string
	AnalyzedAt  time.Time
}

// SaveEval persists one evaluation result.
func (s *Store) SaveEval(ctx context.Context, ev StoredEval) (StoredEval, error) {
	var scoreCP, mateIn any
	if ev.ScoreCP != nil {
		scoreCP = *ev.ScoreCP
	}
	if ev.MateIn != nil {
		mateIn = *ev.MateIn
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO evaluations (opening_id, depth, score_cp, mate_in, bestmove_uci, analyzed_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		ev.OpeningID, ev.Depth, scoreCP, mateIn,
		nullIfEmpty(ev.BestMoveUCI), ev.AnalyzedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return StoredEval{}, fmt.Errorf("save evaluation: %w", err)
	}
	ev.ID, err = res.LastInsertId()
	if err != nil {
		return StoredEval{}, fmt.Errorf("save evaluation: last insert id: %w", err)
	}
	return ev, nil
}

// LatestEval returns the most recent evaluation for an opening, or
// ErrNotFound if none is stored.
func (s *Store) LatestEval(ctx context.Context, openingID int64) (StoredEval, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, opening_id, depth, score_cp, mate_in, bestmove_uci, analyzed_at
		 FROM evaluations WHERE opening_id = ?
		 ORDER BY analyzed_at DESC, id DESC LIMIT 1`, openingID)

	var ev StoredEval
	var scoreCP, mateIn sql.NullInt64
	var bestMove sql.NullString
	var analyzedAt string
	err := row.Scan(&ev.ID, &ev.OpeningID, &ev.Depth, &scoreCP, &mateIn, &bestMove, &analyzedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return StoredEval{}, fmt.Errorf("evaluation for opening %d: %w", openingID, ErrNotFound)
		}
		return StoredEval{}, fmt.Errorf("latest evaluation: %w", err)
	}

	if scoreCP.Valid {
		cp := int(scoreCP.Int64)
		ev.ScoreCP = &cp
	}
	if mateIn.Valid {
		m := int(mateIn.Int64)
		ev.MateIn = &m
	}
	ev.BestMoveUCI = bestMove.String
	ev.AnalyzedAt, err = time.Parse(time.RFC3339, analyzedAt)
	if err != nil {
		return StoredEval{}, fmt.Errorf("latest evaluation: bad analyzed_at %q: %w", analyzedAt, err)
	}
	return ev, nil
}
