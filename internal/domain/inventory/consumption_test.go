package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pdv-api/internal/domain/entity"
	"github.com/jhoicas/pdv-api/internal/domain/inventory"
)

func TestProportionalConsumption_IndividualPorUnidad(t *testing.T) {
	p := individualProduct("10", "2", req("flour", "Harina", "200"), req("egg", "Huevo", "1"))

	out := inventory.ProportionalIngredientConsumption(p, 3)
	require.Len(t, out, 2)
	assert.Equal(t, "flour", out[0].IngredientID)
	assertDecimal(t, "600", out[0].Quantity)
	assertDecimal(t, "3", out[1].Quantity)
}

func TestProportionalConsumption_LoteProporcionalAlRendimiento(t *testing.T) {
	p := batchProduct(10, 10, "5", "2", req("flour", "Harina", "1000"))

	out := inventory.ProportionalIngredientConsumption(p, 4)
	require.Len(t, out, 1)
	assertDecimal(t, "400", out[0].Quantity)
}

func TestPlanStockConsumption_LoteNoTocaInsumos(t *testing.T) {
	p := batchProduct(10, 10, "5", "2", req("flour", "Harina", "1000"))

	plan := inventory.PlanStockConsumption(p, 4)
	assert.Empty(t, plan.Ingredients, "el lote consume insumos al producir, no al vender")
	assert.Equal(t, 4, plan.ProducedDecrement)
}

func TestPlanStockConsumption_Individual(t *testing.T) {
	p := individualProduct("10", "2", req("flour", "Harina", "200"))

	plan := inventory.PlanStockConsumption(p, 2)
	assert.Zero(t, plan.ProducedDecrement)
	require.Len(t, plan.Ingredients, 1)
	assertDecimal(t, "400", plan.Ingredients[0].Quantity)

	assert.Empty(t, inventory.PlanStockConsumption(p, 0).Ingredients)
}

func TestProportionalIngredientCost_UsaCostoUnitarioDelProducto(t *testing.T) {
	p := individualProduct("10", "2.35", req("flour", "Harina", "200"))
	p.Requirements[0].AverageUnitPrice = d("99") // la foto de precios no se re-deriva

	assertDecimal(t, "7.05", inventory.ProportionalIngredientCost(p, 3))
	assertDecimal(t, "0", inventory.ProportionalIngredientCost(p, 0))
}

// ──────────────────────────────────────────────────────────────────────────────
// ConvertToBatchSaleItem
// ──────────────────────────────────────────────────────────────────────────────

func TestConvertToBatchSaleItem_Individual(t *testing.T) {
	p := individualProduct("12.5", "4")
	item := inventory.ConvertToBatchSaleItem(entity.SaleItem{Product: p, Quantity: 2, Subtotal: d("999")}, nil)

	assert.False(t, item.IsBatchSale)
	assert.Equal(t, 2, item.Quantity)
	assertDecimal(t, "25", item.Subtotal)
	assertDecimal(t, "8", item.ProportionalCost)
	assert.Zero(t, item.BatchYieldQuantity)
}

func TestConvertToBatchSaleItem_LoteUsaPrecioUnitario(t *testing.T) {
	p := batchProduct(12, 12, "3.5", "1.2")
	// El llamador pasó el precio del lote completo: se corrige.
	item := inventory.ConvertToBatchSaleItem(entity.SaleItem{Product: p, Quantity: 5, Subtotal: d("42")}, nil)

	assert.True(t, item.IsBatchSale)
	assertDecimal(t, "17.5", item.Subtotal)
	assert.Equal(t, 12, item.BatchYieldQuantity)
	assert.Equal(t, 5, item.BatchSoldQuantity)
	assert.Equal(t, 7, item.BatchRemainingQuantity)
	assertDecimal(t, "6", item.ProportionalCost)
}

func TestConvertToBatchSaleItem_CantidadExplicita(t *testing.T) {
	p := batchProduct(10, 10, "2", "1")
	sold := 15
	item := inventory.ConvertToBatchSaleItem(entity.SaleItem{Product: p, Quantity: 1}, &sold)

	assert.Equal(t, 15, item.Quantity)
	assert.Equal(t, 0, item.BatchRemainingQuantity, "el restante nunca es negativo")
	assertDecimal(t, "30", item.Subtotal)
}

func TestConvertToBatchSaleItem_InvariantesDePrecioYRestante(t *testing.T) {
	for yield := 1; yield <= 12; yield++ {
		for sold := 1; sold <= yield; sold++ {
			p := batchProduct(yield, yield, "1.75", "0.4")
			item := inventory.ConvertToBatchSaleItem(entity.SaleItem{Product: p, Quantity: sold}, nil)

			expected := p.Production.UnitSellingPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
			assert.True(t, expected.Equal(item.Subtotal), "subtotal = precio unitario * cantidad")
			assert.Equal(t, item.BatchYieldQuantity, item.BatchSoldQuantity+item.BatchRemainingQuantity)
		}
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// ReduceProducedQuantity
// ──────────────────────────────────────────────────────────────────────────────

func TestReduceProducedQuantity(t *testing.T) {
	p := batchProduct(10, 4, "5", "2")

	out, clamped := inventory.ReduceProducedQuantity(p, 4)
	assert.False(t, clamped)
	assert.Equal(t, 0, out.Production.ProducedQuantity)
	assert.Equal(t, 4, p.Production.ProducedQuantity, "el original no se muta")
}

func TestReduceProducedQuantity_RecortaEnCero(t *testing.T) {
	out, clamped := inventory.ReduceProducedQuantity(batchProduct(10, 2, "5", "2"), 5)
	assert.True(t, clamped)
	assert.Equal(t, 0, out.Production.ProducedQuantity)
}

func TestReduceProducedQuantity_IndividualSinCambios(t *testing.T) {
	p := individualProduct("10", "2")
	out, clamped := inventory.ReduceProducedQuantity(p, 3)
	assert.False(t, clamped)
	assert.Same(t, p, out)
}
