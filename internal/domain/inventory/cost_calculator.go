package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pdv-api/internal/domain/entity"
)

// WeightedAverageUnitPrice precio unitario promedio tras sumar una compra al stock:
// (stockQty*stockPrice + purchaseQty*purchasePrice) / (stockQty + purchaseQty).
// Sin cantidad total devuelve 0.
func WeightedAverageUnitPrice(stockQty, stockPrice, purchaseQty, purchasePrice decimal.Decimal) decimal.Decimal {
	total := stockQty.Add(purchaseQty)
	if !total.IsPositive() {
		return decimal.Zero
	}
	return stockQty.Mul(stockPrice).Add(purchaseQty.Mul(purchasePrice)).Div(total)
}

// ProjectedAverageUnitPrice promedio que tendría ing al recibir batch. No modifica ing.
func ProjectedAverageUnitPrice(ing *entity.Ingredient, batch entity.PurchaseBatch) decimal.Decimal {
	if ing == nil {
		return batch.UnitPrice
	}
	return WeightedAverageUnitPrice(ing.TotalQuantity(), ing.AverageUnitPrice(), batch.OriginalQuantity, batch.UnitPrice)
}
