package store

import (
	"context"

	"kpiboard/internal/domain"
)

func (s *Store) ListPeriods(ctx context.Context) ([]domain.Period, error) {
	rows, err := s.DB.Query(ctx, `
		SELECT id, name, starts_on, ends_on, created_at, updated_at
		FROM periods
		ORDER BY starts_on, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	periods := make([]domain.Period, 0)
	for rows.Next() {
		var period domain.Period
		if err := rows.Scan(&period.ID, &period.Name, &period.StartsOn, &period.EndsOn, &period.CreatedAt, &period.UpdatedAt); err != nil {
			return nil, err
		}
		periods = append(periods, period)
	}
	return periods, rows.Err()
}

func (s *Store) GetPeriod(ctx context.Context, periodID int64) (domain.Period, error) {
	var period domain.Period
	row := s.DB.QueryRow(ctx, `
		SELECT id, name, starts_on, ends_on, created_at, updated_at
		FROM periods
		WHERE id=$1`, periodID)
	if err := row.Scan(&period.ID, &period.Name, &period.StartsOn, &period.EndsOn, &period.CreatedAt, &period.UpdatedAt); err != nil {
		return domain.Period{}, notFound(err)
	}
	return period, nil
}

func (s *Store) CreatePeriod(ctx context.Context, input PeriodInput) (int64, error) {
	var id int64
	row := s.DB.QueryRow(ctx, `
		INSERT INTO periods (name, starts_on, ends_on)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE SET starts_on=EXCLUDED.starts_on, ends_on=EXCLUDED.ends_on, updated_at=NOW()
		RETURNING id`, input.Name, input.StartsOn, input.EndsOn)
	if err := row.Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}
