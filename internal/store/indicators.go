package store

import (
	"context"

	"kpiboard/internal/domain"
)

func (s *Store) ListIndicators(ctx context.Context) ([]domain.Indicator, error) {
	rows, err := s.DB.Query(ctx, `
		SELECT id, key_result_id, name, unit, weight, current_value, target_value, created_at, updated_at
		FROM indicators
		ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	indicators := make([]domain.Indicator, 0)
	for rows.Next() {
		var ind domain.Indicator
		if err := rows.Scan(&ind.ID, &ind.KeyResultID, &ind.Name, &ind.Unit, &ind.Weight, &ind.CurrentValue, &ind.TargetValue, &ind.CreatedAt, &ind.UpdatedAt); err != nil {
			return nil, err
		}
		indicators = append(indicators, ind)
	}
	return indicators, rows.Err()
}

func (s *Store) GetIndicator(ctx context.Context, id int64) (domain.Indicator, error) {
	var ind domain.Indicator
	row := s.DB.QueryRow(ctx, `
		SELECT id, key_result_id, name, unit, weight, current_value, target_value, created_at, updated_at
		FROM indicators
		WHERE id=$1`, id)
	if err := row.Scan(&ind.ID, &ind.KeyResultID, &ind.Name, &ind.Unit, &ind.Weight, &ind.CurrentValue, &ind.TargetValue, &ind.CreatedAt, &ind.UpdatedAt); err != nil {
		return domain.Indicator{}, notFound(err)
	}
	return ind, nil
}

func (s *Store) CreateIndicator(ctx context.Context, input IndicatorInput) (int64, error) {
	var id int64
	err := s.DB.QueryRow(ctx, `
		INSERT INTO indicators (key_result_id, name, unit, weight, current_value, target_value)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		input.KeyResultID, input.Name, input.Unit, input.Weight, input.CurrentValue, input.TargetValue,
	).Scan(&id)
	return id, err
}

// UpdateIndicatorCurrent sets or clears the measured value. A nil value
// makes the indicator not-set again.
func (s *Store) UpdateIndicatorCurrent(ctx context.Context, id int64, value *float64) error {
	tag, err := s.DB.Exec(ctx, `
		UPDATE indicators
		SET current_value=$1, updated_at=NOW()
		WHERE id=$2`, value, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) UpdateIndicatorTarget(ctx context.Context, id int64, value *float64) error {
	tag, err := s.DB.Exec(ctx, `
		UPDATE indicators
		SET target_value=$1, updated_at=NOW()
		WHERE id=$2`, value, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
