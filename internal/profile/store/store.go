package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/kasayonetim/kasa/internal/profile"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

// Expected column order: id, full_name, role, region_id, region_name, created_at
func scanProfile(s scanner) (*profile.Profile, error) {
	var p profile.Profile

	var roleStr string

	var regionName sql.NullString

	if err := s.Scan(&p.ID, &p.FullName, &roleStr, &p.RegionID, &regionName, &p.CreatedAt); err != nil {
		return nil, err
	}

	role, err := profile.ParseRole(roleStr)
	if err != nil {
		return nil, err
	}

	p.Role = role
	p.RegionName = regionName.String

	return &p, nil
}

const selectProfileColumns = `
	p.id, p.full_name, p.role, p.region_id, r.name AS region_name, p.created_at
`

func (s *Store) GetProfile(ctx context.Context, id uuid.UUID) (*profile.Profile, error) {
	query := `SELECT ` + selectProfileColumns + `
		FROM profiles p
		LEFT JOIN regions r ON p.region_id = r.id
		WHERE p.id = $1`

	p, err := scanProfile(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, profile.ErrNotFound
		}

		return nil, fmt.Errorf("getting profile: %w", err)
	}

	return p, nil
}

func (s *Store) ListProfiles(ctx context.Context) ([]*profile.Profile, error) {
	query := `SELECT ` + selectProfileColumns + `
		FROM profiles p
		LEFT JOIN regions r ON p.region_id = r.id
		ORDER BY p.full_name ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*profile.Profile

	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning profile: %w", err)
		}

		profiles = append(profiles, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating profile rows: %w", err)
	}

	return profiles, nil
}

func (s *Store) CreateProfile(ctx context.Context, p *profile.Profile) error {
	query := `
		INSERT INTO profiles (id, full_name, role, region_id, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING created_at
	`

	err := s.db.QueryRowContext(ctx, query, p.ID, p.FullName, p.Role, p.RegionID).
		Scan(&p.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating profile: %w", err)
	}

	return nil
}

func (s *Store) UpdateProfile(ctx context.Context, p *profile.Profile) error {
	query := `
		UPDATE profiles
		SET full_name = $1, role = $2, region_id = $3
		WHERE id = $4
	`

	_, err := s.db.ExecContext(ctx, query, p.FullName, p.Role, p.RegionID, p.ID)
	if err != nil {
		return fmt.Errorf("updating profile: %w", err)
	}

	return nil
}

func (s *Store) DeleteProfile(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM profiles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting profile: %w", err)
	}

	return nil
}
