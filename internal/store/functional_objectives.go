package store

import (
	"context"

	"kpiboard/internal/domain"
)

func (s *Store) ListFunctionalObjectives(ctx context.Context) ([]domain.FunctionalObjective, error) {
	rows, err := s.DB.Query(ctx, `
		SELECT id, department_id, name, formula, created_at, updated_at
		FROM functional_objectives
		ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	objectives := make([]domain.FunctionalObjective, 0)
	for rows.Next() {
		var fo domain.FunctionalObjective
		if err := rows.Scan(&fo.ID, &fo.DepartmentID, &fo.Name, &fo.Formula, &fo.CreatedAt, &fo.UpdatedAt); err != nil {
			return nil, err
		}
		objectives = append(objectives, fo)
	}
	return objectives, rows.Err()
}

func (s *Store) CreateFunctionalObjective(ctx context.Context, departmentID int64, name, formula string) (int64, error) {
	var id int64
	err := s.DB.QueryRow(ctx, `
		INSERT INTO functional_objectives (department_id, name, formula)
		VALUES ($1, $2, $3)
		RETURNING id`, departmentID, name, formula).Scan(&id)
	return id, err
}

func (s *Store) SetFunctionalObjectiveFormula(ctx context.Context, id int64, formula string) error {
	tag, err := s.DB.Exec(ctx, `
		UPDATE functional_objectives
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
