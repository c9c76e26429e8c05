package store

import (
	"context"

	"kpiboard/internal/domain"
)

func (s *Store) ListOrgObjectives(ctx context.Context) ([]domain.OrgObjective, error) {
	rows, err := s.DB.Query(ctx, `
		SELECT id, name, color, classification, created_at, updated_at
		FROM org_objectives
		ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	objectives := make([]domain.OrgObjective, 0)
	for rows.Next() {
		var obj domain.OrgObjective
		if err := rows.Scan(&obj.ID, &obj.Name, &obj.Color, &obj.Classification, &obj.CreatedAt, &obj.UpdatedAt); err != nil {
			return nil, err
		}
		objectives = append(objectives, obj)
	}
	return objectives, rows.Err()
}

func (s *Store) CreateOrgObjective(ctx context.Context, name, color string, classification domain.Classification) (int64, error) {
	var id int64
	err := s.DB.QueryRow(ctx, `
		INSERT INTO org_objectives (name, color, classification)
		VALUES ($1, $2, $3)
		RETURNING id`, name, color, classification).Scan(&id)
	return id, err
}
