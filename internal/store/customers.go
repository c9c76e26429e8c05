package store

import (
	"context"

	"kpiboard/internal/domain"
)

func (s *Store) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	rows, err := s.DB.Query(ctx, `
		SELECT id, name, created_at, updated_at
		FROM customers
		ORDER BY name, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	customers := make([]domain.Customer, 0)
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (s *Store) GetCustomer(ctx context.Context, id int64) (domain.Customer, error) {
	var c domain.Customer
	row := s.DB.QueryRow(ctx, `
		SELECT id, name, created_at, updated_at
		FROM customers
		WHERE id=$1`, id)
	if err := row.Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return domain.Customer{}, notFound(err)
	}
	return c, nil
}

func (s *Store) CreateCustomer(ctx context.Context, name string) (int64, error) {
	var id int64
	err := s.DB.QueryRow(ctx, `
		INSERT INTO customers (name) VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name=EXCLUDED.name
		RETURNING id`, name).Scan(&id)
	return id, err
}

func (s *Store) AssignCustomerFeature(ctx context.Context, customerID, featureID int64) error {
	_, err := s.DB.Exec(ctx, `
		INSERT INTO customer_features (customer_id, feature_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`, customerID, featureID)
	return err
}

// ListCustomerFeatureIDs returns the features assigned to one customer,
// used to resolve a customer filter into a feature set.
func (s *Store) ListCustomerFeatureIDs(ctx context.Context, customerID int64) ([]int64, error) {
	rows, err := s.DB.Query(ctx, `
		SELECT feature_id
		FROM customer_features
		WHERE customer_id=$1
		ORDER BY feature_id`, customerID)
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

// CountCustomerIndicatorLinks counts the indicator-feature links across the
// customer's assigned features: the number of score slots the customer is
// expected to fill each period.
func (s *Store) CountCustomerIndicatorLinks(ctx context.Context, customerID int64) (int, error) {
	var count int
	err := s.DB.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM indicator_features inf
		JOIN customer_features cf ON cf.feature_id = inf.feature_id
		WHERE cf.customer_id=$1`, customerID).Scan(&count)
	return count, err
}
