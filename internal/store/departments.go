package store

import (
	"context"

	"kpiboard/internal/domain"
)

func (s *Store) ListDepartments(ctx context.Context) ([]domain.Department, error) {
	rows, err := s.DB.Query(ctx, `
		SELECT id, org_objective_id, name, color, created_at, updated_at
		FROM departments
		ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	departments := make([]domain.Department, 0)
	for rows.Next() {
		var dept domain.Department
		if err := rows.Scan(&dept.ID, &dept.OrgObjectiveID, &dept.Name, &dept.Color, &dept.CreatedAt, &dept.UpdatedAt); err != nil {
			return nil, err
		}
		departments = append(departments, dept)
	}
	return departments, rows.Err()
}

func (s *Store) CreateDepartment(ctx context.Context, orgObjectiveID int64, name, color string) (int64, error) {
	var id int64
	err := s.DB.QueryRow(ctx, `
		INSERT INTO departments (org_objective_id, name, color)
		VALUES ($1, $2, $3)
		RETURNING id`, orgObjectiveID, name, color).Scan(&id)
	return id, err
}
