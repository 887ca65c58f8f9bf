// Package stats turns a flat transaction list into the summary figures the
// dashboards display. Everything here is pure computation over in-memory data.
package stats

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kasayonetim/kasa/internal/region"
	"github.com/kasayonetim/kasa/internal/transaction"
)

// Summary holds the four figures shown on every dashboard. CashBalance is
// income minus cash expenses only; card expenses are tracked separately and
// never reduce the cash drawer.
type Summary struct {
	TotalIncome  decimal.Decimal `json:"total_income"`
	CashExpenses decimal.Decimal `json:"cash_expenses"`
	CardExpenses decimal.Decimal `json:"card_expenses"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	CashBalance  decimal.Decimal `json:"cash_balance"`
}

// RegionSummary is one region's slice of the breakdown.
type RegionSummary struct {
	RegionID uuid.UUID `json:"region_id"`
	Name     string    `json:"name"`
	Summary
}

// Breakdown is the cross-region view shown to admins. Regions with no
// transactions still appear, zeroed. Transactions whose region is missing or
// was deleted land in Unassigned, so the region buckets plus Unassigned
// always reconcile with Totals.
type Breakdown struct {
	Totals     Summary         `json:"totals"`
	Regions    []RegionSummary `json:"regions"`
	Unassigned Summary         `json:"unassigned"`
}

func zeroSummary() Summary {
	return Summary{
		TotalIncome:  decimal.Zero,
		CashExpenses: decimal.Zero,
		CardExpenses: decimal.Zero,
		TotalExpense: decimal.Zero,
		CashBalance:  decimal.Zero,
	}
}

func (s *Summary) add(tx *transaction.Transaction) {
	switch {
	case tx.Type == transaction.TypeIncome:
		s.TotalIncome = s.TotalIncome.Add(tx.Amount)
	case tx.PaymentMethod == transaction.PaymentCreditCard:
		s.CardExpenses = s.CardExpenses.Add(tx.Amount)
	default:
		s.CashExpenses = s.CashExpenses.Add(tx.Amount)
	}
}

func (s *Summary) finish() {
	s.TotalExpense = s.CashExpenses.Add(s.CardExpenses)
	s.CashBalance = s.TotalIncome.Sub(s.CashExpenses)
}

// Summarize accumulates the global figures in a single pass.
func Summarize(txs []*transaction.Transaction) Summary {
	s := zeroSummary()
	for _, tx := range txs {
		s.add(tx)
	}

	s.finish()

	return s
}

// SummarizeByRegion computes the global figures plus a per-region breakdown
// seeded with a zero entry for every known region.
func SummarizeByRegion(txs []*transaction.Transaction, regions []*region.Region) Breakdown {
	b := Breakdown{
		Totals:     zeroSummary(),
		Unassigned: zeroSummary(),
	}

	byRegion := make(map[uuid.UUID]*RegionSummary, len(regions))
	for _, r := range regions {
		byRegion[r.ID] = &RegionSummary{RegionID: r.ID, Name: r.Name, Summary: zeroSummary()}
	}

	for _, tx := range txs {
		b.Totals.add(tx)

		bucket := &b.Unassigned
		if tx.RegionID != nil {
			if rs, ok := byRegion[*tx.RegionID]; ok {
				bucket = &rs.Summary
			}
		}

		bucket.add(tx)
	}

	b.Totals.finish()
	b.Unassigned.finish()

	b.Regions = make([]RegionSummary, 0, len(byRegion))

	for _, rs := range byRegion {
		rs.finish()
		b.Regions = append(b.Regions, *rs)
	}

	sort.Slice(b.Regions, func(i, j int) bool {
		return b.Regions[i].Name < b.Regions[j].Name
	})

	return b
}
