package transaction_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/kasayonetim/kasa/internal/profile"
	"github.com/kasayonetim/kasa/internal/transaction"
)

func adminViewer() *profile.Profile {
	return &profile.Profile{ID: uuid.New(), Role: profile.RoleAdmin}
}

func regionViewer(regionID uuid.UUID, role profile.Role) *profile.Profile {
	return &profile.Profile{ID: uuid.New(), Role: role, RegionID: &regionID}
}

func TestService_Create(t *testing.T) {
	regionID := uuid.New()
	otherRegion := uuid.New()

	type testCase struct {
		name      string
		viewer    *profile.Profile
		params    transaction.CreateParams
		setupMock func(m *transaction.MockRepository)
		check     func(t *testing.T, got *transaction.Transaction)
		wantErr   error
	}

	tests := []testCase{
		{
			name:   "Success",
			viewer: adminViewer(),
			params: transaction.CreateParams{
				Title:         "Kira ödemesi",
				Amount:        decimal.NewFromInt(1000),
				Type:          transaction.TypeExpense,
				PaymentMethod: transaction.PaymentCreditCard,
				Date:          time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
			},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					CreateTransaction(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, tx *transaction.Transaction) error {
						tx.ID = uuid.New()
						tx.CreatedAt = time.Now()
						return nil
					})
			},
			check: func(t *testing.T, got *transaction.Transaction) {
				assert.NotEmpty(t, got.ID)
				assert.Equal(t, transaction.PaymentCreditCard, got.PaymentMethod)
			},
		},
		{
			name:   "IncomeNormalized",
			viewer: adminViewer(),
			params: transaction.CreateParams{
				Title:             "Günlük tahsilat",
				Amount:            decimal.NewFromInt(250),
				Type:              transaction.TypeIncome,
				PaymentMethod:     transaction.PaymentCreditCard,
				InvoiceKind:       transaction.InvoiceKindInvoice,
				ExpenseRegionNote: "Merkez",
			},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					CreateTransaction(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			check: func(t *testing.T, got *transaction.Transaction) {
				assert.Equal(t, transaction.PaymentCash, got.PaymentMethod)
				assert.Equal(t, transaction.InvoiceKindNone, got.InvoiceKind)
				assert.Empty(t, got.ExpenseRegionNote)
			},
		},
		{
			name:   "RegionPinnedForBaseRole",
			viewer: regionViewer(regionID, profile.RoleBase),
			params: transaction.CreateParams{
				Title:    "Market alışverişi",
				Amount:   decimal.NewFromInt(80),
				Type:     transaction.TypeExpense,
				RegionID: &otherRegion,
			},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					CreateTransaction(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			check: func(t *testing.T, got *transaction.Transaction) {
				require.NotNil(t, got.RegionID)
				assert.Equal(t, regionID, *got.RegionID)
			},
		},
		{
			name:   "EmptyTitle",
			viewer: adminViewer(),
			params: transaction.CreateParams{
				Amount: decimal.NewFromInt(100),
				Type:   transaction.TypeExpense,
			},
			wantErr: transaction.ErrEmptyTitle,
		},
		{
			name:   "NegativeAmount",
			viewer: adminViewer(),
			params: transaction.CreateParams{
				Title:  "Hatalı kayıt",
				Amount: decimal.NewFromInt(-5),
				Type:   transaction.TypeExpense,
			},
			wantErr: transaction.ErrInvalidAmount,
		},
		{
			name:   "RepoError",
			viewer: adminViewer(),
			params: transaction.CreateParams{
				Title:  "Kira ödemesi",
				Amount: decimal.NewFromInt(1000),
				Type:   transaction.TypeExpense,
			},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					CreateTransaction(gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
			wantErr: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := transaction.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := transaction.NewService(repo)
			got, err := svc.Create(context.Background(), tt.viewer, tt.params)

			if tt.wantErr != nil {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)

			// Creator is always the session user.
			require.NotNil(t, got.UserID)
			assert.Equal(t, tt.viewer.ID, *got.UserID)

			if tt.check != nil {
				tt.check(t, got)
			}
		})
	}
}

func TestService_ListForViewer_Scoping(t *testing.T) {
	regionID := uuid.New()
	otherRegion := uuid.New()
	someUser := uuid.New()
	note := "Merkez"

	type testCase struct {
		name       string
		viewer     *profile.Profile
		filter     transaction.ListFilter
		wantFilter transaction.ListFilter
	}

	tests := []testCase{
		{
			name:   "AdminKeepsFilter",
			viewer: adminViewer(),
			filter: transaction.ListFilter{
				RegionID:          &otherRegion,
				UserID:            &someUser,
				ExpenseRegionNote: &note,
			},
			wantFilter: transaction.ListFilter{
				RegionID:          &otherRegion,
				UserID:            &someUser,
				ExpenseRegionNote: &note,
			},
		},
		{
			name:   "BaseRolePinnedToOwnRegion",
			viewer: regionViewer(regionID, profile.RoleBase),
			filter: transaction.ListFilter{
				RegionID:          &otherRegion,
				UserID:            &someUser,
				ExpenseRegionNote: &note,
			},
			wantFilter: transaction.ListFilter{
				RegionID: &regionID,
			},
		},
		{
			name:   "RegionEditorPinnedToOwnRegion",
			viewer: regionViewer(regionID, profile.RoleRegionEditor),
			filter: transaction.ListFilter{
				RegionID: &otherRegion,
			},
			wantFilter: transaction.ListFilter{
				RegionID: &regionID,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := transaction.NewMockRepository(ctrl)
			repo.EXPECT().
				ListTransactions(gomock.Any(), tt.wantFilter).
				Return([]*transaction.Transaction{}, nil)

			svc := transaction.NewService(repo)
			_, err := svc.ListForViewer(context.Background(), tt.viewer, tt.filter)

			assert.NoError(t, err)
		})
	}
}

func TestService_Get_HidesOtherRegions(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	regionID := uuid.New()
	otherRegion := uuid.New()
	txID := uuid.New()

	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().
		GetTransaction(gomock.Any(), txID).
		Return(&transaction.Transaction{ID: txID, RegionID: &otherRegion}, nil)

	svc := transaction.NewService(repo)
	got, err := svc.Get(context.Background(), regionViewer(regionID, profile.RoleBase), txID)

	assert.ErrorIs(t, err, transaction.ErrNotFound)
	assert.Nil(t, got)
}

func TestService_Update(t *testing.T) {
	regionID := uuid.New()

	t.Run("ForbiddenBelowModifyRole", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// No repo expectations: the role check must reject before any call.
		repo := transaction.NewMockRepository(ctrl)
		svc := transaction.NewService(repo)

		for _, role := range []profile.Role{profile.RoleBase, profile.RoleRegionEditor} {
			_, err := svc.Update(context.Background(), regionViewer(regionID, role), uuid.New(), transaction.UpdateParams{})
			assert.ErrorIs(t, err, transaction.ErrForbidden)
		}
	})

	t.Run("AppliesPartialUpdate", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		txID := uuid.New()
		existing := &transaction.Transaction{
			ID:            txID,
			Title:         "Eski başlık",
			Amount:        decimal.NewFromInt(100),
			Type:          transaction.TypeExpense,
			PaymentMethod: transaction.PaymentCash,
		}

		repo := transaction.NewMockRepository(ctrl)
		repo.EXPECT().GetTransaction(gomock.Any(), txID).Return(existing, nil)
		repo.EXPECT().UpdateTransaction(gomock.Any(), gomock.Any()).Return(nil)

		newTitle := "Yeni başlık"
		newAmount := decimal.NewFromInt(150)

		svc := transaction.NewService(repo)
		got, err := svc.Update(context.Background(), adminViewer(), txID, transaction.UpdateParams{
			Title:  &newTitle,
			Amount: &newAmount,
		})

		require.NoError(t, err)
		assert.Equal(t, "Yeni başlık", got.Title)
		assert.True(t, got.Amount.Equal(decimal.NewFromInt(150)))
		assert.Equal(t, transaction.TypeExpense, got.Type)
	})

	t.Run("SwitchToIncomeNormalizes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		txID := uuid.New()
		existing := &transaction.Transaction{
			ID:            txID,
			Title:         "Tahsilat",
			Amount:        decimal.NewFromInt(100),
			Type:          transaction.TypeExpense,
			PaymentMethod: transaction.PaymentCreditCard,
			InvoiceKind:   transaction.InvoiceKindReceipt,
		}

		repo := transaction.NewMockRepository(ctrl)
		repo.EXPECT().GetTransaction(gomock.Any(), txID).Return(existing, nil)
		repo.EXPECT().UpdateTransaction(gomock.Any(), gomock.Any()).Return(nil)

		newType := transaction.TypeIncome

		svc := transaction.NewService(repo)
		got, err := svc.Update(context.Background(), adminViewer(), txID, transaction.UpdateParams{
			Type: &newType,
		})

		require.NoError(t, err)
		assert.Equal(t, transaction.PaymentCash, got.PaymentMethod)
		assert.Equal(t, transaction.InvoiceKindNone, got.InvoiceKind)
	})
}

func TestService_Delete(t *testing.T) {
	regionID := uuid.New()

	t.Run("ForbiddenBelowModifyRole", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := transaction.NewMockRepository(ctrl)
		svc := transaction.NewService(repo)

		err := svc.Delete(context.Background(), regionViewer(regionID, profile.RoleRegionEditor), uuid.New())
		assert.ErrorIs(t, err, transaction.ErrForbidden)
	})

	t.Run("AdminDeletes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		txID := uuid.New()

		repo := transaction.NewMockRepository(ctrl)
		repo.EXPECT().DeleteTransaction(gomock.Any(), txID).Return(nil)

		svc := transaction.NewService(repo)
		assert.NoError(t, svc.Delete(context.Background(), adminViewer(), txID))
	})
}
