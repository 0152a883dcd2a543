package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pdv-api/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// SnapshotRequirement congela el requerimiento de qty (unidad base) del insumo al precio promedio actual.
func SnapshotRequirement(ing *entity.Ingredient, qty decimal.Decimal) entity.IngredientRequirement {
	avg := ing.AverageUnitPrice()
	return entity.IngredientRequirement{
		IngredientID:     ing.ID,
		Name:             ing.Name,
		Unit:             ing.Unit,
		Quantity:         qty,
		AverageUnitPrice: avg,
		TotalValue:       qty.Mul(avg),
	}
}

// CalculateProductionCosts arma los datos de costo y precio del producto.
// Individual: price es el precio unitario. Lote: price es el precio unitario y
// SellingPrice = price * rendimiento; UnitCost = TotalCost / rendimiento (0 si rendimiento <= 0).
func CalculateProductionCosts(reqs []entity.IngredientRequirement, mode entity.ProductionMode, yield int, price decimal.Decimal) entity.Production {
	total := decimal.Zero
	for _, r := range reqs {
		total = total.Add(r.TotalValue)
	}
	prod := entity.Production{
		Mode:             mode,
		TotalCost:        total,
		UnitSellingPrice: price,
	}
	if mode == entity.ModeBatch {
		prod.YieldQuantity = yield
		if yield > 0 {
			prod.UnitCost = total.Div(decimal.NewFromInt(int64(yield)))
			prod.SellingPrice = price.Mul(decimal.NewFromInt(int64(yield)))
		}
	} else {
		prod.YieldQuantity = 1
		prod.UnitCost = total
		prod.SellingPrice = price
	}
	prod.UnitMargin = price.Sub(prod.UnitCost)
	if price.IsPositive() {
		prod.ProfitMargin = prod.UnitMargin.Div(price).Mul(hundred).Round(2)
	}
	return prod
}
