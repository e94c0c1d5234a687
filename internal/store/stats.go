package store

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/chessbook/internal/srs"
)

// StudyStats aggregates card and review-log state for a name prefix.
type StudyStats struct {
	TotalOpenings int
	TotalCards    int
	CardsDue      int
	AvgEase       float64
	AvgInterval   float64
	TotalLapses   int
	TotalReviews  int

	// Accuracy is the fraction of logged reviews graded 3 or above.
	// Zero when no reviews exist.
	Accuracy float64
}

// Stats computes study aggregates for openings under prefix, with due
// counts relative to asOf's calendar date.
func (s *Store) Stats(ctx context.Context, prefix string, asOf time.Time) (StudyStats, error) {
	var st StudyStats
	pattern := likePrefix(prefix)

	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM openings WHERE name LIKE ?`, pattern).Scan(&st.TotalOpenings)
	if err != nil {
		return StudyStats{}, fmt.Errorf("stats: count openings: %w", err)
	}

	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN c.due_date <= ? THEN 1 ELSE 0 END), 0),
		        COALESCE(AVG(c.ease), 0),
		        COALESCE(AVG(c.interval_days), 0),
		        COALESCE(SUM(c.lapses), 0)
		 FROM study_cards c JOIN openings o ON o.id = c.opening_id
		 WHERE o.name LIKE ?`,
		srs.DateOf(asOf).Format(time.DateOnly), pattern).
		Scan(&st.TotalCards, &st.CardsDue, &st.AvgEase, &st.AvgInterval, &st.TotalLapses)
	if err != nil {
		return StudyStats{}, fmt.Errorf("stats: card aggregates: %w", err)
	}

	var successes int
	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(CASE WHEN r.grade >= 3 THEN 1 ELSE 0 END), 0)
		 FROM study_reviews r JOIN openings o ON o.id = r.opening_id
		 WHERE o.name LIKE ?`, pattern).Scan(&st.TotalReviews, &successes)
	if err != nil {
		return StudyStats{}, fmt.Errorf("stats: review aggregates: %w", err)
	}
	if st.TotalReviews > 0 {
		st.Accuracy = float64(successes) / float64(st.TotalReviews)
	}
	return st, nil
}
