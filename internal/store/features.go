package store

import (
	"context"

	"kpiboard/internal/domain"
)

func (s *Store) ListFeatures(ctx context.Context) ([]domain.Feature, error) {
	rows, err := s.DB.Query(ctx, `
		SELECT id, name, created_at, updated_at
		FROM features
		ORDER BY name, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	features := make([]domain.Feature, 0)
	for rows.Next() {
		var f domain.Feature
		if err := rows.Scan(&f.ID, &f.Name, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, err
		}
		features = append(features, f)
	}
	return features, rows.Err()
}

func (s *Store) CreateFeature(ctx context.Context, name string) (int64, error) {
	var id int64
	err := s.DB.QueryRow(ctx, `
		INSERT INTO features (name) VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name=EXCLUDED.name
		RETURNING id`, name).Scan(&id)
	return id, err
}

func (s *Store) LinkIndicatorFeature(ctx context.Context, indicatorID, featureID int64) error {
	_, err := s.DB.Exec(ctx, `
		INSERT INTO indicator_features (indicator_id, feature_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`, indicatorID, featureID)
	return err
}

func (s *Store) ListIndicatorFeatures(ctx context.Context) ([]domain.IndicatorFeature, error) {
	rows, err := s.DB.Query(ctx, `
		SELECT indicator_id, feature_id
		FROM indicator_features
		ORDER BY indicator_id, feature_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	links := make([]domain.IndicatorFeature, 0)
	for rows.Next() {
		var link domain.IndicatorFeature
		if err := rows.Scan(&link.IndicatorID, &link.FeatureID); err != nil {
			return nil, err
		}
		links = append(links, link)
	}
	return links, rows.Err()
}
