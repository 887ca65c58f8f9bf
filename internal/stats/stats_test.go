package stats_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kasayonetim/kasa/internal/region"
	"github.com/kasayonetim/kasa/internal/stats"
	"github.com/kasayonetim/kasa/internal/transaction"
)

func income(amount int64, regionID *uuid.UUID) *transaction.Transaction {
	return &transaction.Transaction{
		Amount:        decimal.NewFromInt(amount),
		Type:          transaction.TypeIncome,
		PaymentMethod: transaction.PaymentCash,
		RegionID:      regionID,
	}
}

func expense(amount int64, method transaction.PaymentMethod, regionID *uuid.UUID) *transaction.Transaction {
	return &transaction.Transaction{
		Amount:        decimal.NewFromInt(amount),
		Type:          transaction.TypeExpense,
		PaymentMethod: method,
		RegionID:      regionID,
	}
}

func assertAmount(t *testing.T, want int64, got decimal.Decimal) {
	t.Helper()
	assert.True(t, got.Equal(decimal.NewFromInt(want)), "want %d, got %s", want, got)
}

func TestSummarize(t *testing.T) {
	t.Run("WorkedExample", func(t *testing.T) {
		// 100 income, 40 cash expense, 25 card expense.
		s := stats.Summarize([]*transaction.Transaction{
			income(100, nil),
			expense(40, transaction.PaymentCash, nil),
			expense(25, transaction.PaymentCreditCard, nil),
		})

		assertAmount(t, 100, s.TotalIncome)
		assertAmount(t, 40, s.CashExpenses)
		assertAmount(t, 25, s.CardExpenses)
		assertAmount(t, 65, s.TotalExpense)
		assertAmount(t, 60, s.CashBalance)
	})

	t.Run("Empty", func(t *testing.T) {
		s := stats.Summarize(nil)

		assertAmount(t, 0, s.TotalIncome)
		assertAmount(t, 0, s.CashExpenses)
		assertAmount(t, 0, s.CardExpenses)
		assertAmount(t, 0, s.TotalExpense)
		assertAmount(t, 0, s.CashBalance)
	})

	t.Run("CardExpensesDoNotTouchCashBalance", func(t *testing.T) {
		s := stats.Summarize([]*transaction.Transaction{
			income(500, nil),
			expense(999, transaction.PaymentCreditCard, nil),
		})

		assertAmount(t, 500, s.CashBalance)
		assertAmount(t, 999, s.CardExpenses)
	})

	t.Run("ExpenseWithoutMethodCountsAsCash", func(t *testing.T) {
		// Legacy rows may carry an empty payment method; anything that is not
		// explicitly a card expense comes out of the cash drawer.
		s := stats.Summarize([]*transaction.Transaction{
			income(100, nil),
			{Amount: decimal.NewFromInt(30), Type: transaction.TypeExpense},
		})

		assertAmount(t, 30, s.CashExpenses)
		assertAmount(t, 70, s.CashBalance)
	})
}

func TestSummarizeByRegion(t *testing.T) {
	regionA := &region.Region{ID: uuid.New(), Name: "Ankara"}
	regionB := &region.Region{ID: uuid.New(), Name: "İzmir"}
	regions := []*region.Region{regionB, regionA}

	t.Run("SplitsByRegion", func(t *testing.T) {
		b := stats.SummarizeByRegion([]*transaction.Transaction{
			income(100, &regionA.ID),
			expense(40, transaction.PaymentCash, &regionA.ID),
			income(200, &regionB.ID),
		}, regions)

		require.Len(t, b.Regions, 2)

		// Sorted by name.
		assert.Equal(t, "Ankara", b.Regions[0].Name)
		assert.Equal(t, "İzmir", b.Regions[1].Name)

		assertAmount(t, 100, b.Regions[0].TotalIncome)
		assertAmount(t, 60, b.Regions[0].CashBalance)
		assertAmount(t, 200, b.Regions[1].TotalIncome)

		assertAmount(t, 300, b.Totals.TotalIncome)
		assertAmount(t, 40, b.Totals.TotalExpense)
	})

	t.Run("ZeroSeedsEmptyRegions", func(t *testing.T) {
		b := stats.SummarizeByRegion(nil, regions)

		require.Len(t, b.Regions, 2)
		for _, rs := range b.Regions {
			assertAmount(t, 0, rs.TotalIncome)
			assertAmount(t, 0, rs.TotalExpense)
			assertAmount(t, 0, rs.CashBalance)
		}
	})

	t.Run("DanglingRegionGoesToUnassigned", func(t *testing.T) {
		deleted := uuid.New()

		b := stats.SummarizeByRegion([]*transaction.Transaction{
			income(50, nil),
			income(70, &deleted),
		}, regions)

		assertAmount(t, 120, b.Unassigned.TotalIncome)
		assertAmount(t, 120, b.Totals.TotalIncome)
	})

	t.Run("BucketsReconcileWithTotals", func(t *testing.T) {
		deleted := uuid.New()

		b := stats.SummarizeByRegion([]*transaction.Transaction{
			income(100, &regionA.ID),
			expense(10, transaction.PaymentCash, &regionB.ID),
			expense(20, transaction.PaymentCreditCard, &deleted),
			income(5, nil),
		}, regions)

		sumIncome := b.Unassigned.TotalIncome
		sumExpense := b.Unassigned.TotalExpense
		for _, rs := range b.Regions {
			sumIncome = sumIncome.Add(rs.TotalIncome)
			sumExpense = sumExpense.Add(rs.TotalExpense)
		}

		assert.True(t, sumIncome.Equal(b.Totals.TotalIncome))
		assert.True(t, sumExpense.Equal(b.Totals.TotalExpense))
	})
}
