package region_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/kasayonetim/kasa/internal/profile"
	"github.com/kasayonetim/kasa/internal/region"
)

func TestService_Create(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := region.NewMockRepository(ctrl)
		repo.EXPECT().
			CreateRegion(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, r *region.Region) error {
				r.ID = uuid.New()
				return nil
			})

		svc := region.NewService(repo)
		got, err := svc.Create(context.Background(), profile.RoleAdmin, "  Ankara ")

		require.NoError(t, err)
		assert.NotEmpty(t, got.ID)
		assert.Equal(t, "Ankara", got.Name)
	})

	t.Run("ForbiddenForNonAdmin", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc := region.NewService(region.NewMockRepository(ctrl))

		for _, role := range []profile.Role{profile.RoleBase, profile.RoleRegionEditor} {
			got, err := svc.Create(context.Background(), role, "Ankara")
			assert.ErrorIs(t, err, region.ErrForbidden)
			assert.Nil(t, got)
		}
	})

	t.Run("EmptyName", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc := region.NewService(region.NewMockRepository(ctrl))

		got, err := svc.Create(context.Background(), profile.RoleAdmin, "   ")
		assert.ErrorIs(t, err, region.ErrEmptyName)
		assert.Nil(t, got)
	})
}

func TestService_Delete(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		id := uuid.New()

		repo := region.NewMockRepository(ctrl)
		repo.EXPECT().DeleteRegion(gomock.Any(), id).Return(nil)

		svc := region.NewService(repo)
		assert.NoError(t, svc.Delete(context.Background(), profile.RoleAdmin, id))
	})

	t.Run("ForbiddenForNonAdmin", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc := region.NewService(region.NewMockRepository(ctrl))

		err := svc.Delete(context.Background(), profile.RoleRegionEditor, uuid.New())
		assert.ErrorIs(t, err, region.ErrForbidden)
	})
}

func TestService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := region.NewMockRepository(ctrl)
	repo.EXPECT().
		ListRegions(gomock.Any()).
		Return([]*region.Region{{ID: uuid.New(), Name: "Ankara"}}, nil)

	svc := region.NewService(repo)
	got, err := svc.List(context.Background())

	require.NoError(t, err)
	assert.Len(t, got, 1)
}
