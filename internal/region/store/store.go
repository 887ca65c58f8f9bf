package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/kasayonetim/kasa/internal/region"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) ListRegions(ctx context.Context) ([]*region.Region, error) {
	query := `SELECT id, name, created_at FROM regions ORDER BY name ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing regions: %w", err)
	}
	defer rows.Close()

	var regions []*region.Region

	for rows.Next() {
		var r region.Region
		if err := rows.Scan(&r.ID, &r.Name, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning region: %w", err)
		}

		regions = append(regions, &r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating region rows: %w", err)
	}

	return regions, nil
}

func (s *Store) CreateRegion(ctx context.Context, r *region.Region) error {
	query := `
		INSERT INTO regions (name, created_at)
		VALUES ($1, NOW())
		RETURNING id, created_at
	`

	if err := s.db.QueryRowContext(ctx, query, r.Name).Scan(&r.ID, &r.CreatedAt); err != nil {
		return fmt.Errorf("creating region: %w", err)
	}

	return nil
}

func (s *Store) DeleteRegion(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM regions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting region: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return region.ErrNotFound
	}

	return nil
}
