// Package user implements admin-side account management: auth identities live
// on the platform, profile rows live in our database, and the two must not
// drift apart.
package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/kasayonetim/kasa/internal/platform/auth"
	"github.com/kasayonetim/kasa/internal/profile"
)

var (
	ErrForbidden     = errors.New("bu işlemi yapmaya yetkiniz yok")
	ErrMissingFields = errors.New("tüm zorunlu alanlar doldurulmalıdır")
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=user
type AuthAdmin interface {
	CreateUser(ctx context.Context, params auth.CreateUserParams) (*auth.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

type ProfileRepository interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*profile.Profile, error)
	ListProfiles(ctx context.Context) ([]*profile.Profile, error)
	CreateProfile(ctx context.Context, p *profile.Profile) error
	UpdateProfile(ctx context.Context, p *profile.Profile) error
	DeleteProfile(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	authAdmin AuthAdmin
	profiles  ProfileRepository
}

func NewService(authAdmin AuthAdmin, profiles ProfileRepository) *Service {
	return &Service{authAdmin: authAdmin, profiles: profiles}
}

type CreateParams struct {
	FullName string
	Email    string
	Password string
	Role     profile.Role
	RegionID *uuid.UUID
}

// Create provisions the auth identity first, then the profile row. If the
// profile insert fails the auth user is deleted again so no orphaned account
// can log in without a profile.
func (s *Service) Create(ctx context.Context, actor *profile.Profile, params CreateParams) (*profile.Profile, error) {
	if !actor.Role.IsAdmin() {
		return nil, ErrForbidden
	}

	if params.FullName == "" || params.Email == "" || params.Password == "" || params.Role == "" {
		return nil, ErrMissingFields
	}

	authUser, err := s.authAdmin.CreateUser(ctx, auth.CreateUserParams{
		Email:    params.Email,
		Password: params.Password,
		FullName: params.FullName,
	})
	if err != nil {
		return nil, fmt.Errorf("kullanıcı oluşturma hatası: %w", err)
	}

	p := &profile.Profile{
		ID:       authUser.ID,
		FullName: params.FullName,
		Role:     params.Role,
		RegionID: params.RegionID,
	}

	if err := s.profiles.CreateProfile(ctx, p); err != nil {
		if delErr := s.authAdmin.DeleteUser(ctx, authUser.ID); delErr != nil {
			slog.Error("failed to roll back auth user after profile insert failure",
				"user_id", authUser.ID, "error", delErr)
		}

		return nil, fmt.Errorf("profil oluşturma hatası: %w", err)
	}

	return p, nil
}

type UpdateParams struct {
	FullName string
	Role     profile.Role
	RegionID *uuid.UUID
}

func (s *Service) Update(ctx context.Context, actor *profile.Profile, id uuid.UUID, params UpdateParams) (*profile.Profile, error) {
	if !actor.Role.IsAdmin() {
		return nil, ErrForbidden
	}

	if params.FullName == "" || params.Role == "" {
		return nil, ErrMissingFields
	}

	p, err := s.profiles.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}

	p.FullName = params.FullName
	p.Role = params.Role
	p.RegionID = params.RegionID

	if err := s.profiles.UpdateProfile(ctx, p); err != nil {
		return nil, fmt.Errorf("kullanıcı güncellenemedi: %w", err)
	}

	return p, nil
}

// Delete removes the auth identity; the profile row is removed explicitly as
// well so the database does not depend on the platform's cascade behavior.
func (s *Service) Delete(ctx context.Context, actor *profile.Profile, id uuid.UUID) error {
	if !actor.Role.IsAdmin() {
		return ErrForbidden
	}

	if err := s.authAdmin.DeleteUser(ctx, id); err != nil {
		return fmt.Errorf("kullanıcı silinemedi: %w", err)
	}

	return s.profiles.DeleteProfile(ctx, id)
}

func (s *Service) List(ctx context.Context, actor *profile.Profile) ([]*profile.Profile, error) {
	if !actor.Role.IsAdmin() {
		return nil, ErrForbidden
	}

	return s.profiles.ListProfiles(ctx)
}
