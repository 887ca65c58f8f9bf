package transaction

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kasayonetim/kasa/internal/profile"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	CreateTransaction(ctx context.Context, tx *Transaction) error
	GetTransaction(ctx context.Context, id uuid.UUID) (*Transaction, error)
	UpdateTransaction(ctx context.Context, tx *Transaction) error
	DeleteTransaction(ctx context.Context, id uuid.UUID) error
	ListTransactions(ctx context.Context, filter ListFilter) ([]*Transaction, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Title             string
	Amount            decimal.Decimal
	Type              Type
	PaymentMethod     PaymentMethod
	InvoiceKind       InvoiceKind
	Date              time.Time
	Description       string
	RegionID          *uuid.UUID
	ExpenseRegionNote string
	ImagePath         string
}

type UpdateParams struct {
	Title         *string
	Amount        *decimal.Decimal
	Type          *Type
	PaymentMethod *PaymentMethod
	InvoiceKind   *InvoiceKind
	Date          *time.Time
	Description   *string
}

type ListFilter struct {
	StartDate     *time.Time
	EndDate       *time.Time
	Type          *Type
	PaymentMethod *PaymentMethod
	// InvoiceKind filters the document type; InvoiceKindNone matches rows
	// without one (the "YOK" option in the old UI).
	InvoiceKind       *InvoiceKind
	RegionID          *uuid.UUID
	UserID            *uuid.UUID
	ExpenseRegionNote *string
	Search            string
	SortBy            SortField
	SortDesc          bool
	Limit             int
}

// scope narrows a filter to what the viewer may see. Region-bound roles are
// pinned to their own region and lose the admin-only filters.
func scope(viewer *profile.Profile, filter ListFilter) ListFilter {
	if viewer.Role.IsAdmin() {
		return filter
	}

	filter.UserID = nil
	filter.ExpenseRegionNote = nil

	if viewer.RegionID != nil {
		filter.RegionID = viewer.RegionID
	}

	return filter
}

func (s *Service) ListForViewer(ctx context.Context, viewer *profile.Profile, filter ListFilter) ([]*Transaction, error) {
	return s.repo.ListTransactions(ctx, scope(viewer, filter))
}

func (s *Service) Get(ctx context.Context, viewer *profile.Profile, id uuid.UUID) (*Transaction, error) {
	tx, err := s.repo.GetTransaction(ctx, id)
	if err != nil {
		return nil, err
	}

	if !viewer.Role.IsAdmin() && viewer.RegionID != nil {
		if tx.RegionID == nil || *tx.RegionID != *viewer.RegionID {
			return nil, ErrNotFound
		}
	}

	return tx, nil
}

func (s *Service) Create(ctx context.Context, viewer *profile.Profile, params CreateParams) (*Transaction, error) {
	if params.Title == "" {
		return nil, ErrEmptyTitle
	}

	if params.Amount.IsNegative() {
		return nil, ErrInvalidAmount
	}

	if !viewer.Role.CanChooseRegion() {
		params.RegionID = viewer.RegionID
	}

	// Income never carries an expense document or a card; the old edit form
	// normalized it the same way.
	if params.Type == TypeIncome {
		params.PaymentMethod = PaymentCash
		params.InvoiceKind = InvoiceKindNone
		params.ExpenseRegionNote = ""
	}

	if params.PaymentMethod == "" {
		params.PaymentMethod = PaymentCash
	}

	tx := &Transaction{
		Title:             params.Title,
		Amount:            params.Amount,
		Type:              params.Type,
		PaymentMethod:     params.PaymentMethod,
		InvoiceKind:       params.InvoiceKind,
		Date:              params.Date,
		Description:       params.Description,
		RegionID:          params.RegionID,
		ExpenseRegionNote: params.ExpenseRegionNote,
		ImagePath:         params.ImagePath,
		UserID:            &viewer.ID,
	}

	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

func (s *Service) Update(ctx context.Context, viewer *profile.Profile, id uuid.UUID, params UpdateParams) (*Transaction, error) {
	if !viewer.Role.CanModifyTransactions() {
		return nil, ErrForbidden
	}

	tx, err := s.repo.GetTransaction(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Title != nil {
		if *params.Title == "" {
			return nil, ErrEmptyTitle
		}

		tx.Title = *params.Title
	}

	if params.Amount != nil {
		if params.Amount.IsNegative() {
			return nil, ErrInvalidAmount
		}

		tx.Amount = *params.Amount
	}

	if params.Type != nil {
		tx.Type = *params.Type
	}

	if params.PaymentMethod != nil {
		tx.PaymentMethod = *params.PaymentMethod
	}

	if params.InvoiceKind != nil {
		tx.InvoiceKind = *params.InvoiceKind
	}

	if params.Date != nil {
		tx.Date = *params.Date
	}

	if params.Description != nil {
		tx.Description = *params.Description
	}

	if tx.Type == TypeIncome {
		tx.PaymentMethod = PaymentCash
		tx.InvoiceKind = InvoiceKindNone
	}

	if err := s.repo.UpdateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

func (s *Service) Delete(ctx context.Context, viewer *profile.Profile, id uuid.UUID) error {
	if !viewer.Role.CanModifyTransactions() {
		return ErrForbidden
	}

	return s.repo.DeleteTransaction(ctx, id)
}
