package store

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"kpiboard/internal/domain"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// RecordScore inserts the score and moves the indicator's current value to
// it in the same transaction, so the dashboard always reflects the latest
// entry.
func (s *Store) RecordScore(ctx context.Context, input ScoreInput) (domain.Score, error) {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return domain.Score{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var score domain.Score
	row := tx.QueryRow(ctx, `
		INSERT INTO scores (indicator_id, period_id, customer_id, value, note)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, indicator_id, period_id, customer_id, value, note, recorded_at`,
		input.IndicatorID, input.PeriodID, input.CustomerID, input.Value, input.Note)
	if err := row.Scan(&score.ID, &score.IndicatorID, &score.PeriodID, &score.CustomerID, &score.Value, &score.Note, &score.RecordedAt); err != nil {
		return domain.Score{}, err
	}

	tag, err := tx.Exec(ctx, `
		UPDATE indicators
		SET current_value=$1, updated_at=NOW()
		WHERE id=$2`, input.Value, input.IndicatorID)
	if err != nil {
		return domain.Score{}, err
	}
	if tag.RowsAffected() == 0 {
		return domain.Score{}, ErrNotFound
	}
	return score, tx.Commit(ctx)
}

func (s *Store) ListScores(ctx context.Context, filter ScoreFilter) ([]domain.Score, error) {
	builder := psql.
		Select("id", "indicator_id", "period_id", "customer_id", "value", "note", "recorded_at").
		From("scores").
		OrderBy("recorded_at DESC", "id DESC")
	if filter.IndicatorID != 0 {
		builder = builder.Where(sq.Eq{"indicator_id": filter.IndicatorID})
	}
	if filter.PeriodID != 0 {
		builder = builder.Where(sq.Eq{"period_id": filter.PeriodID})
	}
	if filter.CustomerID != 0 {
		builder = builder.Where(sq.Eq{"customer_id": filter.CustomerID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	scores := make([]domain.Score, 0)
	for rows.Next() {
		var score domain.Score
		if err := rows.Scan(&score.ID, &score.IndicatorID, &score.PeriodID, &score.CustomerID, &score.Value, &score.Note, &score.RecordedAt); err != nil {
			return nil, err
		}
		scores = append(scores, score)
	}
	return scores, rows.Err()
}

// ListScoredIndicatorIDs returns the indicators with at least one score in
// the period, used to restrict breakdowns to a reporting window.
func (s *Store) ListScoredIndicatorIDs(ctx context.Context, periodID int64) ([]int64, error) {
	rows, err := s.DB.Query(ctx, `
		SELECT DISTINCT indicator_id
		FROM scores
		WHERE period_id=$1
		ORDER BY indicator_id`, periodID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *Store) CountCustomerScoredIndicators(ctx context.Context, customerID, periodID int64) (int, error) {
	var count int
	err := s.DB.QueryRow(ctx, `
		SELECT COUNT(DISTINCT indicator_id)
		FROM scores
		WHERE customer_id=$1 AND period_id=$2`, customerID, periodID).Scan(&count)
	return count, err
}
