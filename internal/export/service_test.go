package export_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/kasayonetim/kasa/internal/export"
	"github.com/kasayonetim/kasa/internal/transaction"
)

func TestService_Filename(t *testing.T) {
	svc := export.NewService()

	now := time.Date(2026, 9, 1, 14, 30, 0, 0, time.UTC)
	assert.Equal(t, "islem_kayitlari_01_09_2026.xlsx", svc.Filename(now))
}

func TestService_Write(t *testing.T) {
	regionID := uuid.New()
	userID := uuid.New()

	txs := []*transaction.Transaction{
		{
			ID:            uuid.New(),
			Title:         "Kira ödemesi",
			Amount:        decimal.NewFromFloat(1250.50),
			Type:          transaction.TypeExpense,
			PaymentMethod: transaction.PaymentCreditCard,
			InvoiceKind:   transaction.InvoiceKindEInvoice,
			Date:          time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC),
			Description:   "Ağustos kirası",
			RegionID:      &regionID,
			RegionName:    "Ankara",
			UserID:        &userID,
			UserName:      "Ayşe Yılmaz",
			CreatedAt:     time.Date(2026, 8, 15, 9, 30, 0, 0, time.UTC),
		},
		{
			ID:            uuid.New(),
			Title:         "Günlük tahsilat",
			Amount:        decimal.NewFromInt(300),
			Type:          transaction.TypeIncome,
			PaymentMethod: transaction.PaymentCash,
			Date:          time.Date(2026, 8, 16, 0, 0, 0, 0, time.UTC),
			CreatedAt:     time.Date(2026, 8, 16, 10, 0, 0, 0, time.UTC),
		},
	}

	var buf bytes.Buffer

	svc := export.NewService()
	require.NoError(t, svc.Write(&buf, txs))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("İşlemler")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "İşlem Tarihi", rows[0][1])
	assert.Equal(t, "Ödeme Şekli", rows[0][5])

	assert.Equal(t, "15.08.2026", rows[1][1])
	assert.Equal(t, "Kira ödemesi", rows[1][2])
	assert.Equal(t, "Kredi Kartı", rows[1][5])
	assert.Equal(t, "E-Fatura", rows[1][6])
	assert.Equal(t, "Ankara", rows[1][8])

	// Missing optional fields fall back to labels instead of blanks.
	assert.Equal(t, "Nakit", rows[2][5])
	assert.Equal(t, "Yok", rows[2][6])
	assert.Equal(t, "Bilinmiyor", rows[2][8])
	assert.Equal(t, "Yok", rows[2][9])
	assert.Equal(t, "Bilinmiyor", rows[2][10])
}
