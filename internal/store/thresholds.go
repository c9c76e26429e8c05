package store

import (
	"context"

	"kpiboard/internal/domain"
)

// GetThresholds reads the singleton RAG band row. ErrNotFound means the row
// was never seeded; callers fall back to the built-in defaults.
func (s *Store) GetThresholds(ctx context.Context) (domain.Thresholds, error) {
	var t domain.Thresholds
	row := s.DB.QueryRow(ctx, `SELECT green_min, amber_min FROM rag_thresholds WHERE id=1`)
	if err := row.Scan(&t.GreenMin, &t.AmberMin); err != nil {
		return domain.Thresholds{}, notFound(err)
	}
	return t, nil
}

func (s *Store) SaveThresholds(ctx context.Context, t domain.Thresholds) error {
	_, err := s.DB.Exec(ctx, `
		INSERT INTO rag_thresholds (id, green_min, amber_min)
		VALUES (1, $1, $2)
		ON CONFLICT (id) DO UPDATE SET green_min=EXCLUDED.green_min, amber_min=EXCLUDED.amber_min, updated_at=NOW()`,
		t.GreenMin, t.AmberMin)
	return err
}
