package store

import (
	"context"

	"github.com/google/uuid"

	"kpiboard/internal/domain"
)

func (s *Store) AppendActivity(ctx context.Context, input ActivityInput) error {
	_, err := s.DB.Exec(ctx, `
		INSERT INTO activity_log (id, entity_type, entity_id, action, detail)
		VALUES ($1, $2, $3, $4, $5)`,
		uuid.NewString(), input.EntityType, input.EntityID, input.Action, input.Detail)
	return err
}

func (s *Store) ListRecentActivity(ctx context.Context, limit int) ([]domain.ActivityEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.DB.Query(ctx, `
		SELECT id, entity_type, entity_id, action, detail, created_at
		FROM activity_log
		ORDER BY created_at DESC, id
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]domain.ActivityEntry, 0)
	for rows.Next() {
		var entry domain.ActivityEntry
		if err := rows.Scan(&entry.ID, &entry.EntityType, &entry.EntityID, &entry.Action, &entry.Detail, &entry.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
