package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/kasayonetim/kasa/internal/notification"
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

// Expected column order: id, message, created_by, creator_name, is_active, created_at
func scanNotification(s scanner) (*notification.Notification, error) {
	var n notification.Notification

	var creatorName sql.NullString

	if err := s.Scan(&n.ID, &n.Message, &n.CreatedBy, &creatorName, &n.IsActive, &n.CreatedAt); err != nil {
		return nil, err
	}

	n.CreatorName = creatorName.String

	return &n, nil
}

const selectNotificationColumns = `
	n.id, n.message, n.created_by, p.full_name AS creator_name, n.is_active, n.created_at
`

func (s *Store) CreateNotification(ctx context.Context, n *notification.Notification) error {
	query := `
		INSERT INTO notifications (message, created_by, is_active, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, created_at
	`

	if err := s.db.QueryRowContext(ctx, query, n.Message, n.CreatedBy, n.IsActive).
		Scan(&n.ID, &n.CreatedAt); err != nil {
		return fmt.Errorf("creating notification: %w", err)
	}

	return nil
}

func (s *Store) ListNotifications(ctx context.Context) ([]*notification.Notification, error) {
	query := `SELECT ` + selectNotificationColumns + `
		FROM notifications n
		LEFT JOIN profiles p ON n.created_by = p.id
		ORDER BY n.created_at DESC`

	return s.queryNotifications(ctx, query)
}

// ListActiveForUser returns active broadcasts the user has not dismissed yet.
func (s *Store) ListActiveForUser(ctx context.Context, userID uuid.UUID) ([]*notification.Notification, error) {
	query := `SELECT ` + selectNotificationColumns + `
		FROM notifications n
		LEFT JOIN profiles p ON n.created_by = p.id
		LEFT JOIN user_notification_status uns
			ON uns.notification_id = n.id AND uns.user_id = $1
		WHERE n.is_active AND COALESCE(uns.dismissed, false) = false
		ORDER BY n.created_at DESC`

	return s.queryNotifications(ctx, query, userID)
}

func (s *Store) queryNotifications(ctx context.Context, query string, args ...any) ([]*notification.Notification, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*notification.Notification

	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning notification: %w", err)
		}

		notifications = append(notifications, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating notification rows: %w", err)
	}

	return notifications, nil
}

func (s *Store) Deactivate(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE notifications SET is_active = false WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivating notification: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return notification.ErrNotFound
	}

	return nil
}

func (s *Store) Dismiss(ctx context.Context, id, userID uuid.UUID) error {
	query := `
		INSERT INTO user_notification_status (notification_id, user_id, dismissed, dismissed_at)
		VALUES ($1, $2, true, NOW())
		ON CONFLICT (notification_id, user_id)
			DO UPDATE SET dismissed = true, dismissed_at = NOW()
	`

	if _, err := s.db.ExecContext(ctx, query, id, userID); err != nil {
		return fmt.Errorf("dismissing notification: %w", err)
	}

	return nil
}

// StatusReport lists every profile with its dismissal state for one broadcast.
func (s *Store) StatusReport(ctx context.Context, id uuid.UUID) (*notification.StatusReport, error) {
	query := `
		SELECT p.id, p.full_name, COALESCE(uns.dismissed, false), uns.dismissed_at
		FROM profiles p
		LEFT JOIN user_notification_status uns
			ON uns.notification_id = $1 AND uns.user_id = p.id
		ORDER BY p.full_name ASC
	`

	rows, err := s.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("loading notification status: %w", err)
	}
	defer rows.Close()

	report := &notification.StatusReport{}

	for rows.Next() {
		var st notification.UserStatus
		if err := rows.Scan(&st.UserID, &st.FullName, &st.Dismissed, &st.DismissedAt); err != nil {
			return nil, fmt.Errorf("scanning notification status: %w", err)
		}

		if st.Dismissed {
			report.Dismissed = append(report.Dismissed, st)
		} else {
			report.NotDismissed = append(report.NotDismissed, st)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating status rows: %w", err)
	}

	return report, nil
}
