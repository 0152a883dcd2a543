package sales_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/pdv-api/internal/domain/entity"
	"github.com/jhoicas/pdv-api/internal/domain/sales"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertDecimal(t *testing.T, expected string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, d(expected).Equal(got), "esperado %s, obtenido %s", expected, got.String())
}

var fees = entity.FeeTable{
	entity.PaymentCash:     d("0"),
	entity.PaymentDebit:    d("2"),
	entity.PaymentCredit:   d("5"),
	entity.PaymentDelivery: d("12"),
}

func items(subtotals ...string) []entity.BatchSaleItem {
	out := make([]entity.BatchSaleItem, 0, len(subtotals))
	for _, s := range subtotals {
		out = append(out, entity.BatchSaleItem{Quantity: 1, Subtotal: d(s), ProportionalCost: d(s).Div(d("4"))})
	}
	return out
}

func TestSellingResume_PorcentajeYComisionSobreBaseConDescuento(t *testing.T) {
	r := sales.CalculateSellingResume(items("60", "40"), entity.PaymentCredit,
		entity.Discount{Type: entity.DiscountPercentage, Value: d("10")}, fees)

	assertDecimal(t, "100", r.Subtotal)
	assertDecimal(t, "10", r.DiscountAmount)
	assertDecimal(t, "5", r.FeePercentage)
	assertDecimal(t, "4.5", r.Fees)
	assertDecimal(t, "94.5", r.TotalValue)
	assertDecimal(t, "25", r.TotalCost)
	assertDecimal(t, "65", r.Profit)
	assert.Equal(t, entity.PaymentCredit, r.PaymentMethod)
}

func TestSellingResume_DescuentoFijo(t *testing.T) {
	r := sales.CalculateSellingResume(items("50"), entity.PaymentDebit,
		entity.Discount{Type: entity.DiscountFixed, Value: d("5")}, fees)

	assertDecimal(t, "5", r.DiscountAmount)
	assertDecimal(t, "0.9", r.Fees)
	assertDecimal(t, "45.9", r.TotalValue)
}

// Un descuento mayor al subtotal se acota: el total nunca es negativo.
func TestSellingResume_DescuentoFijoMayorAlSubtotal(t *testing.T) {
	r := sales.CalculateSellingResume(items("30"), entity.PaymentCredit,
		entity.Discount{Type: entity.DiscountFixed, Value: d("45")}, fees)

	assertDecimal(t, "30", r.DiscountAmount)
	assertDecimal(t, "0", r.Fees)
	assertDecimal(t, "0", r.TotalValue)

	r = sales.CalculateSellingResume(items("30"), entity.PaymentCash,
		entity.Discount{Type: entity.DiscountPercentage, Value: d("150")}, fees)
	assertDecimal(t, "0", r.TotalValue)
}

func TestSellingResume_DescuentoNegativoSeIgnora(t *testing.T) {
	r := sales.CalculateSellingResume(items("30"), entity.PaymentCash,
		entity.Discount{Type: entity.DiscountFixed, Value: d("-10")}, fees)

	assertDecimal(t, "0", r.DiscountAmount)
	assertDecimal(t, "30", r.TotalValue)
}

func TestSellingResume_MedioSinComision(t *testing.T) {
	r := sales.CalculateSellingResume(items("30"), entity.PaymentMethod("pix"), entity.Discount{}, fees)
	assertDecimal(t, "0", r.Fees)

	r = sales.CalculateSellingResume(items("30"), entity.PaymentCredit, entity.Discount{}, nil)
	assertDecimal(t, "30", r.TotalValue)
}

func TestSellingResume_RedondeoACentavos(t *testing.T) {
	r := sales.CalculateSellingResume(items("33.33"), entity.PaymentDelivery,
		entity.Discount{Type: entity.DiscountPercentage, Value: d("7")}, fees)

	// 7% de 33.33 = 2.3331 -> 2.33; base 31.00; 12% = 3.72
	assertDecimal(t, "2.33", r.DiscountAmount)
	assertDecimal(t, "3.72", r.Fees)
	assertDecimal(t, "34.72", r.TotalValue)
}

func TestSellingResume_Determinista(t *testing.T) {
	in := items("12.5", "7.25", "1")
	disc := entity.Discount{Type: entity.DiscountPercentage, Value: d("3")}

	a := sales.CalculateSellingResume(in, entity.PaymentDebit, disc, fees)
	b := sales.CalculateSellingResume(in, entity.PaymentDebit, disc, fees)
	assert.True(t, a.TotalValue.Equal(b.TotalValue))
	assert.True(t, a.Fees.Equal(b.Fees))
}

func TestSellingResume_SinItems(t *testing.T) {
	r := sales.CalculateSellingResume(nil, entity.PaymentCash, entity.Discount{Type: entity.DiscountFixed, Value: d("5")}, fees)
	assertDecimal(t, "0", r.Subtotal)
	assertDecimal(t, "0", r.DiscountAmount)
	assertDecimal(t, "0", r.TotalValue)
}
