package notification

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/kasayonetim/kasa/internal/profile"
)

var ErrForbidden = errors.New("bu işlemi yapmaya yetkiniz yok")

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=notification
type Repository interface {
	CreateNotification(ctx context.Context, n *Notification) error
	ListNotifications(ctx context.Context) ([]*Notification, error)
	ListActiveForUser(ctx context.Context, userID uuid.UUID) ([]*Notification, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	Dismiss(ctx context.Context, id, userID uuid.UUID) error
	StatusReport(ctx context.Context, id uuid.UUID) (*StatusReport, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Broadcast publishes a message to every user. Admin only.
func (s *Service) Broadcast(ctx context.Context, actor *profile.Profile, message string) (*Notification, error) {
	if !actor.Role.IsAdmin() {
		return nil, ErrForbidden
	}

	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrEmptyMessage
	}

	n := &Notification{
		Message:   message,
		CreatedBy: &actor.ID,
		IsActive:  true,
	}

	if err := s.repo.CreateNotification(ctx, n); err != nil {
		return nil, err
	}

	return n, nil
}

// ListAll returns every notification, newest first. Admin only.
func (s *Service) ListAll(ctx context.Context, actor *profile.Profile) ([]*Notification, error) {
	if !actor.Role.IsAdmin() {
		return nil, ErrForbidden
	}

	return s.repo.ListNotifications(ctx)
}

// ListActive returns the broadcasts the user has not yet dismissed.
func (s *Service) ListActive(ctx context.Context, userID uuid.UUID) ([]*Notification, error) {
	return s.repo.ListActiveForUser(ctx, userID)
}

func (s *Service) Deactivate(ctx context.Context, actor *profile.Profile, id uuid.UUID) error {
	if !actor.Role.IsAdmin() {
		return ErrForbidden
	}

	return s.repo.Deactivate(ctx, id)
}

// Dismiss records that the user acknowledged the broadcast.
func (s *Service) Dismiss(ctx context.Context, userID, id uuid.UUID) error {
	return s.repo.Dismiss(ctx, id, userID)
}

// Status reports who has and hasn't dismissed a broadcast. Admin only.
func (s *Service) Status(ctx context.Context, actor *profile.Profile, id uuid.UUID) (*StatusReport, error) {
	if !actor.Role.IsAdmin() {
		return nil, ErrForbidden
	}

	return s.repo.StatusReport(ctx, id)
}
