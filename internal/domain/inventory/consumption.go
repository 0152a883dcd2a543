package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pdv-api/internal/domain/entity"
)

// IngredientConsumption cantidad de un insumo atribuida o a descontar.
type IngredientConsumption struct {
	IngredientID string
	Name         string
	Quantity     decimal.Decimal
}

// ProportionalIngredientConsumption atribución de insumos a soldQuantity unidades vendidas.
// Individual: requerimiento * vendidas. Lote: requerimiento * (vendidas / rendimiento).
// Es solo una consulta de costo: para mutar stock usar PlanStockConsumption.
func ProportionalIngredientConsumption(p *entity.Product, soldQuantity int) []IngredientConsumption {
	if p == nil || soldQuantity <= 0 {
		return nil
	}
	factor := decimal.NewFromInt(int64(soldQuantity))
	if p.IsBatch() {
		factor = factor.Div(decimal.NewFromInt(int64(p.Production.YieldQuantity)))
	}
	out := make([]IngredientConsumption, 0, len(p.Requirements))
	for _, req := range p.Requirements {
		out = append(out, IngredientConsumption{
			IngredientID: req.IngredientID,
			Name:         req.Name,
			Quantity:     req.Quantity.Mul(factor),
		})
	}
	return out
}

// ConsumptionPlan lo que una venta confirmada debe descontar.
// Ingredients solo se llena en modo individual; ProducedDecrement solo en lote.
type ConsumptionPlan struct {
	Ingredients       []IngredientConsumption
	ProducedDecrement int
}

// PlanStockConsumption plan de mutación de stock para vender soldQuantity unidades.
// Los productos por lote nunca tocan el stock de insumos (se consumió al producir).
func PlanStockConsumption(p *entity.Product, soldQuantity int) ConsumptionPlan {
	if p == nil || soldQuantity <= 0 {
		return ConsumptionPlan{}
	}
	if p.IsBatch() {
		return ConsumptionPlan{ProducedDecrement: soldQuantity}
	}
	return ConsumptionPlan{Ingredients: ProportionalIngredientConsumption(p, soldQuantity)}
}

// ProportionalIngredientCost costo de soldQuantity unidades usando el costo unitario ya
// calculado del producto (semántica de foto: no se recalcula desde los lotes).
func ProportionalIngredientCost(p *entity.Product, soldQuantity int) decimal.Decimal {
	if p == nil || soldQuantity <= 0 {
		return decimal.Zero
	}
	return p.Production.UnitCost.Mul(decimal.NewFromInt(int64(soldQuantity)))
}

// ConvertToBatchSaleItem arma la línea de venta final. El subtotal siempre se recalcula
// como UnitSellingPrice * cantidad, sin importar lo que traiga item.
// soldQuantity opcional sobrescribe item.Quantity en productos por lote.
func ConvertToBatchSaleItem(item entity.SaleItem, soldQuantity *int) entity.BatchSaleItem {
	p := item.Product
	if p == nil {
		return entity.BatchSaleItem{Quantity: item.Quantity, Subtotal: item.Subtotal}
	}
	qty := item.Quantity
	out := entity.BatchSaleItem{
		ProductID:   p.ID,
		ProductName: p.Name,
		UnitPrice:   p.Production.UnitSellingPrice,
	}
	if p.IsBatch() {
		if soldQuantity != nil {
			qty = *soldQuantity
		}
		out.IsBatchSale = true
		out.BatchYieldQuantity = p.Production.YieldQuantity
		out.BatchSoldQuantity = qty
		out.BatchRemainingQuantity = max(0, p.Production.YieldQuantity-qty)
	}
	out.Quantity = qty
	out.Subtotal = p.Production.UnitSellingPrice.Mul(decimal.NewFromInt(int64(qty)))
	out.ProportionalCost = ProportionalIngredientCost(p, qty)
	return out
}

// ReduceProducedQuantity descuenta unidades producidas de un producto por lote.
// Devuelve una copia; clamped indica que se tuvo que recortar en cero (sobreventa).
// Para productos individuales devuelve el mismo producto sin cambios.
func ReduceProducedQuantity(p *entity.Product, soldQuantity int) (out *entity.Product, clamped bool) {
	if p == nil || !p.IsBatch() {
		return p, false
	}
	out = p.Clone()
	next := p.Production.ProducedQuantity - soldQuantity
	if next < 0 {
		next = 0
		clamped = true
	}
	out.Production.ProducedQuantity = next
	return out, clamped
}
