package notification_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/kasayonetim/kasa/internal/notification"
	"github.com/kasayonetim/kasa/internal/profile"
)

func admin() *profile.Profile {
	return &profile.Profile{ID: uuid.New(), Role: profile.RoleAdmin}
}

func baseUser() *profile.Profile {
	return &profile.Profile{ID: uuid.New(), Role: profile.RoleBase}
}

func TestService_Broadcast(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		actor := admin()

		repo := notification.NewMockRepository(ctrl)
		repo.EXPECT().
			CreateNotification(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, n *notification.Notification) error {
				n.ID = uuid.New()
				return nil
			})

		svc := notification.NewService(repo)
		got, err := svc.Broadcast(context.Background(), actor, "  Sistem bakımı var ")

		require.NoError(t, err)
		assert.Equal(t, "Sistem bakımı var", got.Message)
		assert.True(t, got.IsActive)
		require.NotNil(t, got.CreatedBy)
		assert.Equal(t, actor.ID, *got.CreatedBy)
	})

	t.Run("ForbiddenForNonAdmin", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc := notification.NewService(notification.NewMockRepository(ctrl))

		got, err := svc.Broadcast(context.Background(), baseUser(), "Duyuru")
		assert.ErrorIs(t, err, notification.ErrForbidden)
		assert.Nil(t, got)
	})

	t.Run("EmptyMessage", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc := notification.NewService(notification.NewMockRepository(ctrl))

		got, err := svc.Broadcast(context.Background(), admin(), "   ")
		assert.ErrorIs(t, err, notification.ErrEmptyMessage)
		assert.Nil(t, got)
	})
}

func TestService_AdminGates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No repo expectations: every admin-only call must fail before the store.
	svc := notification.NewService(notification.NewMockRepository(ctrl))
	actor := baseUser()
	id := uuid.New()

	_, err := svc.ListAll(context.Background(), actor)
	assert.ErrorIs(t, err, notification.ErrForbidden)

	err = svc.Deactivate(context.Background(), actor, id)
	assert.ErrorIs(t, err, notification.ErrForbidden)

	_, err = svc.Status(context.Background(), actor, id)
	assert.ErrorIs(t, err, notification.ErrForbidden)
}

func TestService_ListActive(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()

	repo := notification.NewMockRepository(ctrl)
	repo.EXPECT().
		ListActiveForUser(gomock.Any(), userID).
		Return([]*notification.Notification{{ID: uuid.New(), Message: "Duyuru"}}, nil)

	svc := notification.NewService(repo)
	got, err := svc.ListActive(context.Background(), userID)

	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestService_Dismiss(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	notifID := uuid.New()

	repo := notification.NewMockRepository(ctrl)
	repo.EXPECT().Dismiss(gomock.Any(), notifID, userID).Return(nil)

	svc := notification.NewService(repo)
	assert.NoError(t, svc.Dismiss(context.Background(), userID, notifID))
}

func TestService_Status(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	notifID := uuid.New()

	report := &notification.StatusReport{
		Dismissed:    []notification.UserStatus{{UserID: uuid.New(), FullName: "Ayşe Yılmaz"}},
		NotDismissed: []notification.UserStatus{{UserID: uuid.New(), FullName: "Mehmet Kaya"}},
	}

	repo := notification.NewMockRepository(ctrl)
	repo.EXPECT().StatusReport(gomock.Any(), notifID).Return(report, nil)

	svc := notification.NewService(repo)
	got, err := svc.Status(context.Background(), admin(), notifID)

	require.NoError(t, err)
	assert.Len(t, got.Dismissed, 1)
	assert.Len(t, got.NotDismissed, 1)
}
