package store

import (
	"context"

	"kpiboard/internal/domain"
)

func (s *Store) ListKeyResults(ctx context.Context) ([]domain.KeyResult, error) {
	rows, err := s.DB.Query(ctx, `
		SELECT id, functional_objective_id, name, formula, weight, created_at, updated_at
		FROM key_results
		ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]domain.KeyResult, 0)
	for rows.Next() {
		var kr domain.KeyResult
		if err := rows.Scan(&kr.ID, &kr.FunctionalObjectiveID, &kr.Name, &kr.Formula, &kr.Weight, &kr.CreatedAt, &kr.UpdatedAt); err != nil {
			return nil, err
		}
		results = append(results, kr)
	}
	return results, rows.Err()
}

func (s *Store) CreateKeyResult(ctx context.Context, functionalObjectiveID int64, name, formula string, weight int) (int64, error) {
	var id int64
	err := s.DB.QueryRow(ctx, `
		INSERT INTO key_results (functional_objective_id, name, formula, weight)
		VALUES ($1, $2, $3, $4)
		RETURNING id`, functionalObjectiveID, name, formula, weight).Scan(&id)
	return id, err
}

func (s *Store) SetKeyResultFormula(ctx context.Context, id int64, formula string) error {
	tag, err := s.DB.Exec(ctx, `
		UPDATE key_results
		SET formula=$1, updated_at=NOW()
		WHERE id=$2`, formula, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
