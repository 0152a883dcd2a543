// Package sales calcula el resumen monetario de una venta (descuento, comisión y total).
package sales

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pdv-api/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// CalculateSellingResume calcula subtotal, descuento, comisión y total de la venta.
//
//   - Subtotal = Σ item.Subtotal
//   - Descuento porcentual = Subtotal * valor / 100; fijo = valor. Se acota a [0, Subtotal],
//     por lo que el total nunca es negativo.
//   - Comisión = fees[method] % sobre la base con descuento (Subtotal - Descuento).
//   - Total = Subtotal - Descuento + Comisión
//
// Descuento y comisión se redondean a 2 decimales. Función pura.
func CalculateSellingResume(
	items []entity.BatchSaleItem,
	method entity.PaymentMethod,
	discount entity.Discount,
	fees entity.FeeTable,
) entity.SellingResume {
	subtotal := decimal.Zero
	cost := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.Subtotal)
		cost = cost.Add(it.ProportionalCost)
	}

	discountAmount := DiscountAmount(subtotal, discount)
	base := subtotal.Sub(discountAmount)

	feePct := decimal.Zero
	if fees != nil {
		if f, ok := fees[method]; ok && f.IsPositive() {
			feePct = f
		}
	}
	fee := base.Mul(feePct).Div(hundred).Round(2)

	return entity.SellingResume{
		PaymentMethod:  method,
		Subtotal:       subtotal,
		DiscountType:   discount.Type,
		DiscountValue:  discount.Value,
		DiscountAmount: discountAmount,
		FeePercentage:  feePct,
		Fees:           fee,
		TotalValue:     base.Add(fee),
		TotalCost:      cost,
		Profit:         base.Sub(cost),
	}
}

// DiscountAmount monto de descuento acotado a [0, subtotal] y redondeado a centavos.
func DiscountAmount(subtotal decimal.Decimal, d entity.Discount) decimal.Decimal {
	if !d.Value.IsPositive() || !subtotal.IsPositive() {
		return decimal.Zero
	}
	var amount decimal.Decimal
	switch d.Type {
	case entity.DiscountPercentage:
		amount = subtotal.Mul(d.Value).Div(hundred)
	case entity.DiscountFixed:
		amount = d.Value
	default:
		return decimal.Zero
	}
	amount = amount.Round(2)
	if amount.GreaterThan(subtotal) {
		return subtotal
	}
	return amount
}
