package transaction

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kasayonetim/kasa/internal/transaction"
)

type transactionResponse struct {
	ID                uuid.UUID                 `json:"id"`
	Title             string                    `json:"title"`
	Amount            decimal.Decimal           `json:"amount"`
	Type              transaction.Type          `json:"type"`
	PaymentMethod     transaction.PaymentMethod `json:"payment_method"`
	InvoiceKind       transaction.InvoiceKind   `json:"invoice_kind,omitempty"`
	Date              string                    `json:"transaction_date"`
	Description       string                    `json:"description,omitempty"`
	RegionID          *uuid.UUID                `json:"region_id,omitempty"`
	RegionName        string                    `json:"region_name,omitempty"`
	ExpenseRegionNote string                    `json:"expense_region_note,omitempty"`
	ImagePath         string                    `json:"image_path,omitempty"`
	ImageURL          string                    `json:"image_url,omitempty"`
	UserID            *uuid.UUID                `json:"user_id,omitempty"`
	UserName          string                    `json:"user_name,omitempty"`
	CreatedAt         time.Time                 `json:"created_at"`
	UpdatedAt         *time.Time                `json:"updated_at,omitempty"`
}

func toResponse(tx *transaction.Transaction) transactionResponse {
	return transactionResponse{
		ID:                tx.ID,
		Title:             tx.Title,
		Amount:            tx.Amount,
		Type:              tx.Type,
		PaymentMethod:     tx.PaymentMethod,
		InvoiceKind:       tx.InvoiceKind,
		Date:              tx.Date.Format(time.DateOnly),
		Description:       tx.Description,
		RegionID:          tx.RegionID,
		RegionName:        tx.RegionName,
		ExpenseRegionNote: tx.ExpenseRegionNote,
		ImagePath:         tx.ImagePath,
		UserID:            tx.UserID,
		UserName:          tx.UserName,
		CreatedAt:         tx.CreatedAt,
		UpdatedAt:         tx.UpdatedAt,
	}
}

func toResponseList(txs []*transaction.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}
