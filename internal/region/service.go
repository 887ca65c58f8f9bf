package region

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/kasayonetim/kasa/internal/profile"
)

// ErrForbidden is returned before any store call when the actor lacks the role.
var ErrForbidden = errors.New("bu işlemi yapmaya yetkiniz yok")

var ErrEmptyName = errors.New("bölge adı boş olamaz")

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=region
type Repository interface {
	ListRegions(ctx context.Context) ([]*Region, error)
	CreateRegion(ctx context.Context, r *Region) error
	DeleteRegion(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]*Region, error) {
	return s.repo.ListRegions(ctx)
}

func (s *Service) Create(ctx context.Context, actor profile.Role, name string) (*Region, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	r := &Region{Name: name}
	if err := s.repo.CreateRegion(ctx, r); err != nil {
		return nil, err
	}

	return r, nil
}

// Delete removes the region. Transactions and profiles keep their rows; the
// foreign keys null out, which the stats breakdown reports as unassigned.
func (s *Service) Delete(ctx context.Context, actor profile.Role, id uuid.UUID) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}

	return s.repo.DeleteRegion(ctx, id)
}
