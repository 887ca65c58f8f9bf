package transaction

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound      = errors.New("işlem bulunamadı")
	ErrForbidden     = errors.New("bu işlemi yapmaya yetkiniz yok")
	ErrEmptyTitle    = errors.New("başlık boş olamaz")
	ErrInvalidAmount = errors.New("tutar negatif olamaz")
)

// Type tells whether money came in or went out. Wire values are the Turkish
// labels already stored in the platform's rows.
type Type string

const (
	TypeIncome  Type = "GİRDİ"
	TypeExpense Type = "ÇIKTI"
)

// PaymentMethod splits expenses into the cash and credit-card buckets.
// Income is always recorded as cash.
type PaymentMethod string

const (
	PaymentCash       PaymentMethod = "NAKİT"
	PaymentCreditCard PaymentMethod = "KREDI_KARTI"
)

// InvoiceKind is the document type backing an expense. Empty means none.
type InvoiceKind string

const (
	InvoiceKindNone     InvoiceKind = ""
	InvoiceKindInvoice  InvoiceKind = "FATURA"
	InvoiceKindEInvoice InvoiceKind = "E_FATURA"
	InvoiceKindReceipt  InvoiceKind = "KASA_FISI"
)

// Transaction represents a single income or expense record.
type Transaction struct {
	ID                uuid.UUID
	Title             string
	Amount            decimal.Decimal
	Type              Type
	PaymentMethod     PaymentMethod
	InvoiceKind       InvoiceKind
	Date              time.Time
	Description       string
	RegionID          *uuid.UUID
	RegionName        string // loaded via JOIN, empty when the region is gone
	ExpenseRegionNote string // free-text note naming the region an expense was made for
	ImagePath         string // object-storage key of the uploaded receipt image
	UserID            *uuid.UUID
	UserName          string // loaded via JOIN
	CreatedAt         time.Time
	UpdatedAt         *time.Time
}

// SortField is a whitelisted ORDER BY column.
type SortField string

const (
	SortByDate      SortField = "transaction_date"
	SortByCreatedAt SortField = "created_at"
)
