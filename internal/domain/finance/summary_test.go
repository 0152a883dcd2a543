package finance_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pdv-api/internal/domain/entity"
	"github.com/jhoicas/pdv-api/internal/domain/finance"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertDecimal(t *testing.T, expected string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, d(expected).Equal(got), "esperado %s, obtenido %s", expected, got.String())
}

func sale(method entity.PaymentMethod, subtotal, discount, fee, cost string, qty int) *entity.Sale {
	return &entity.Sale{
		Items: []entity.BatchSaleItem{{Quantity: qty, Subtotal: d(subtotal), ProportionalCost: d(cost)}},
		SellingResume: entity.SellingResume{
			PaymentMethod:  method,
			Subtotal:       d(subtotal),
			DiscountAmount: d(discount),
			Fees:           d(fee),
		},
	}
}

func TestSummarize_Totales(t *testing.T) {
	sales := []*entity.Sale{
		sale(entity.PaymentCash, "100", "10", "0", "30", 4),
		sale(entity.PaymentCredit, "60", "0", "3", "20", 2),
	}
	s := finance.Summarize(sales, finance.Settings{FixedCosts: d("50"), VariableCostPercent: d("5")})

	assert.Equal(t, 2, s.SalesCount)
	assert.Equal(t, 6, s.UnitsSold)
	assertDecimal(t, "160", s.GrossSales)
	assertDecimal(t, "150", s.TotalRevenue)
	assertDecimal(t, "50", s.ProductCost)
	assertDecimal(t, "3", s.TotalFees)
	// 50 + 3 + 5% de 150
	assertDecimal(t, "60.5", s.TotalVariableCost)
	assertDecimal(t, "89.5", s.GrossProfit)
	assertDecimal(t, "39.5", s.NetProfit)
	assertDecimal(t, "26.33", s.Margin)
	assertDecimal(t, "75", s.AverageTicket)

	require.True(t, s.BreakEvenReachable)
	require.NotNil(t, s.BreakEven)
	// 50 / (89.5/150)
	assertDecimal(t, "83.8", s.BreakEven.Round(1))
	require.NotNil(t, s.BreakEvenUnits)
	// 50 / (89.5/6) = 3.35 -> 4
	assert.Equal(t, int64(4), *s.BreakEvenUnits)

	require.Len(t, s.ByMethod, 2)
	assert.Equal(t, entity.PaymentCash, s.ByMethod[0].Method)
	assertDecimal(t, "90", s.ByMethod[0].Revenue)
	assertDecimal(t, "3", s.ByMethod[1].Fees)
}

func TestSummarize_SinVentas(t *testing.T) {
	s := finance.Summarize(nil, finance.Settings{FixedCosts: d("100")})

	assert.Zero(t, s.SalesCount)
	assertDecimal(t, "0", s.Margin)
	assertDecimal(t, "-100", s.NetProfit)
	assert.False(t, s.BreakEvenReachable)
	assert.Nil(t, s.BreakEven)
	assert.Nil(t, s.BreakEvenUnits)
}

// Con contribución negativa el punto de equilibrio es indefinido (sin Inf ni NaN).
func TestSummarize_ContribucionNegativa(t *testing.T) {
	sales := []*entity.Sale{sale(entity.PaymentDebit, "10", "0", "0.2", "15", 1)}
	s := finance.Summarize(sales, finance.Settings{FixedCosts: d("20")})

	assert.True(t, s.GrossProfit.IsNegative())
	assert.False(t, s.BreakEvenReachable)
	assert.Nil(t, s.BreakEven)
}

func TestSummarize_SinCostosFijos(t *testing.T) {
	sales := []*entity.Sale{sale(entity.PaymentCash, "10", "0", "0", "4", 1)}
	s := finance.Summarize(sales, finance.Settings{})

	require.NotNil(t, s.BreakEven)
	assertDecimal(t, "0", *s.BreakEven)
	assert.Equal(t, int64(0), *s.BreakEvenUnits)
}
