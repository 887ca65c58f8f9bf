// Package export renders a filtered transaction list as an .xlsx workbook for
// download, matching the column set of the old in-browser export.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/kasayonetim/kasa/internal/transaction"
)

const sheetName = "İşlemler"

var headers = []string{
	"ID", "İşlem Tarihi", "Başlık", "Miktar", "Tip", "Ödeme Şekli",
	"Fatura Tipi", "Açıklama", "Bölge", "Gider Bölge Detayı",
	"İşlemi Yapan", "Kayıt Tarihi",
}

type Service struct{}

func NewService() *Service {
	return &Service{}
}

// Filename names the download after the export date, e.g.
// islem_kayitlari_02_09_2026.xlsx.
func (s *Service) Filename(now time.Time) string {
	return fmt.Sprintf("islem_kayitlari_%s.xlsx", now.Format("02_01_2006"))
}

// Write builds the workbook and streams it to w.
func (s *Service) Write(w io.Writer, txs []*transaction.Transaction) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("addressing header cell: %w", err)
		}

		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, tx := range txs {
		amount, _ := tx.Amount.Float64()

		values := []any{
			tx.ID.String(),
			tx.Date.Format("02.01.2006"),
			tx.Title,
			amount,
			string(tx.Type),
			paymentLabel(tx.PaymentMethod),
			invoiceLabel(tx.InvoiceKind),
			tx.Description,
			orFallback(tx.RegionName, "Bilinmiyor"),
			orFallback(tx.ExpenseRegionNote, "Yok"),
			orFallback(tx.UserName, "Bilinmiyor"),
			tx.CreatedAt.Format("02.01.2006 15:04:05"),
		}

		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return fmt.Errorf("addressing cell: %w", err)
			}

			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return fmt.Errorf("writing row %d: %w", i+1, err)
			}
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}

	return nil
}

func paymentLabel(m transaction.PaymentMethod) string {
	switch m {
	case transaction.PaymentCash:
		return "Nakit"
	case transaction.PaymentCreditCard:
		return "Kredi Kartı"
	}

	return "Belirtilmemiş"
}

func invoiceLabel(k transaction.InvoiceKind) string {
	switch k {
	case transaction.InvoiceKindInvoice:
		return "Fatura"
	case transaction.InvoiceKindEInvoice:
		return "E-Fatura"
	case transaction.InvoiceKindReceipt:
		return "Kasa Fişi"
	case transaction.InvoiceKindNone:
		return "Yok"
	}

	return string(k)
}

func orFallback(s, fallback string) string {
	if s == "" {
		return fallback
	}

	return s
}
