package notification

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound     = errors.New("bildirim bulunamadı")
	ErrEmptyMessage = errors.New("mesaj boş olamaz")
)

// Notification is a broadcast message shown to every user until they dismiss
// it or an admin deactivates it.
type Notification struct {
	ID          uuid.UUID
	Message     string
	CreatedBy   *uuid.UUID
	CreatorName string // loaded via JOIN
	IsActive    bool
	CreatedAt   time.Time
}

// UserStatus is one user's dismissal state for a notification.
type UserStatus struct {
	UserID      uuid.UUID
	FullName    string
	Dismissed   bool
	DismissedAt *time.Time
}

// StatusReport splits the user base by whether they acknowledged a broadcast.
type StatusReport struct {
	Dismissed    []UserStatus
	NotDismissed []UserStatus
}
