package user_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/kasayonetim/kasa/internal/platform/auth"
	"github.com/kasayonetim/kasa/internal/profile"
	"github.com/kasayonetim/kasa/internal/user"
)

func admin() *profile.Profile {
	return &profile.Profile{ID: uuid.New(), Role: profile.RoleAdmin}
}

func validParams() user.CreateParams {
	return user.CreateParams{
		FullName: "Ayşe Yılmaz",
		Email:    "ayse@example.com",
		Password: "gizli-sifre",
		Role:     profile.RoleBase,
	}
}

func TestService_Create(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		authID := uuid.New()

		authAdmin := user.NewMockAuthAdmin(ctrl)
		authAdmin.EXPECT().
			CreateUser(gomock.Any(), auth.CreateUserParams{
				Email:    "ayse@example.com",
				Password: "gizli-sifre",
				FullName: "Ayşe Yılmaz",
			}).
			Return(&auth.User{ID: authID, Email: "ayse@example.com"}, nil)

		profiles := user.NewMockProfileRepository(ctrl)
		profiles.EXPECT().
			CreateProfile(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, p *profile.Profile) error {
				assert.Equal(t, authID, p.ID)
				assert.Equal(t, profile.RoleBase, p.Role)
				return nil
			})

		svc := user.NewService(authAdmin, profiles)
		got, err := svc.Create(context.Background(), admin(), validParams())

		require.NoError(t, err)
		assert.Equal(t, authID, got.ID)
		assert.Equal(t, "Ayşe Yılmaz", got.FullName)
	})

	t.Run("ForbiddenForNonAdmin", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// No expectations: nothing may be provisioned for a rejected actor.
		authAdmin := user.NewMockAuthAdmin(ctrl)
		profiles := user.NewMockProfileRepository(ctrl)

		svc := user.NewService(authAdmin, profiles)

		for _, role := range []profile.Role{profile.RoleBase, profile.RoleRegionEditor} {
			actor := &profile.Profile{ID: uuid.New(), Role: role}

			got, err := svc.Create(context.Background(), actor, validParams())
			assert.ErrorIs(t, err, user.ErrForbidden)
			assert.Nil(t, got)
		}
	})

	t.Run("MissingFields", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc := user.NewService(user.NewMockAuthAdmin(ctrl), user.NewMockProfileRepository(ctrl))

		params := validParams()
		params.Email = ""

		got, err := svc.Create(context.Background(), admin(), params)
		assert.ErrorIs(t, err, user.ErrMissingFields)
		assert.Nil(t, got)
	})

	t.Run("RollsBackAuthUserWhenProfileInsertFails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		authID := uuid.New()

		authAdmin := user.NewMockAuthAdmin(ctrl)
		authAdmin.EXPECT().
			CreateUser(gomock.Any(), gomock.Any()).
			Return(&auth.User{ID: authID}, nil)
		authAdmin.EXPECT().
			DeleteUser(gomock.Any(), authID).
			Return(nil)

		profiles := user.NewMockProfileRepository(ctrl)
		profiles.EXPECT().
			CreateProfile(gomock.Any(), gomock.Any()).
			Return(errors.New("duplicate key"))

		svc := user.NewService(authAdmin, profiles)
		got, err := svc.Create(context.Background(), admin(), validParams())

		assert.Error(t, err)
		assert.Nil(t, got)
	})
}

func TestService_Update(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		id := uuid.New()
		regionID := uuid.New()

		profiles := user.NewMockProfileRepository(ctrl)
		profiles.EXPECT().
			GetProfile(gomock.Any(), id).
			Return(&profile.Profile{ID: id, FullName: "Eski Ad", Role: profile.RoleBase}, nil)
		profiles.EXPECT().
			UpdateProfile(gomock.Any(), gomock.Any()).
			Return(nil)

		svc := user.NewService(user.NewMockAuthAdmin(ctrl), profiles)
		got, err := svc.Update(context.Background(), admin(), id, user.UpdateParams{
			FullName: "Yeni Ad",
			Role:     profile.RoleRegionEditor,
			RegionID: &regionID,
		})

		require.NoError(t, err)
		assert.Equal(t, "Yeni Ad", got.FullName)
		assert.Equal(t, profile.RoleRegionEditor, got.Role)
		require.NotNil(t, got.RegionID)
		assert.Equal(t, regionID, *got.RegionID)
	})

	t.Run("ForbiddenForNonAdmin", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc := user.NewService(user.NewMockAuthAdmin(ctrl), user.NewMockProfileRepository(ctrl))

		actor := &profile.Profile{ID: uuid.New(), Role: profile.RoleRegionEditor}
		_, err := svc.Update(context.Background(), actor, uuid.New(), user.UpdateParams{
			FullName: "Yeni Ad",
			Role:     profile.RoleBase,
		})

		assert.ErrorIs(t, err, user.ErrForbidden)
	})
}

func TestService_Delete(t *testing.T) {
	t.Run("RemovesAuthThenProfile", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		id := uuid.New()

		authAdmin := user.NewMockAuthAdmin(ctrl)
		profiles := user.NewMockProfileRepository(ctrl)

		gomock.InOrder(
			authAdmin.EXPECT().DeleteUser(gomock.Any(), id).Return(nil),
			profiles.EXPECT().DeleteProfile(gomock.Any(), id).Return(nil),
		)

		svc := user.NewService(authAdmin, profiles)
		assert.NoError(t, svc.Delete(context.Background(), admin(), id))
	})

	t.Run("KeepsProfileWhenAuthDeleteFails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		id := uuid.New()

		authAdmin := user.NewMockAuthAdmin(ctrl)
		authAdmin.EXPECT().
			DeleteUser(gomock.Any(), id).
			Return(errors.New("platform unavailable"))

		svc := user.NewService(authAdmin, user.NewMockProfileRepository(ctrl))
		assert.Error(t, svc.Delete(context.Background(), admin(), id))
	})
}

func TestService_List(t *testing.T) {
	t.Run("ForbiddenForNonAdmin", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc := user.NewService(user.NewMockAuthAdmin(ctrl), user.NewMockProfileRepository(ctrl))

		actor := &profile.Profile{ID: uuid.New(), Role: profile.RoleBase}
		_, err := svc.List(context.Background(), actor)

		assert.ErrorIs(t, err, user.ErrForbidden)
	})

	t.Run("ReturnsAllProfiles", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		profiles := user.NewMockProfileRepository(ctrl)
		profiles.EXPECT().
			ListProfiles(gomock.Any()).
			Return([]*profile.Profile{{ID: uuid.New()}, {ID: uuid.New()}}, nil)

		svc := user.NewService(user.NewMockAuthAdmin(ctrl), profiles)
		got, err := svc.List(context.Background(), admin())

		require.NoError(t, err)
		assert.Len(t, got, 2)
	})
}
