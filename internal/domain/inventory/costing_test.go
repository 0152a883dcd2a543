package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/pdv-api/internal/domain/entity"
	"github.com/jhoicas/pdv-api/internal/domain/inventory"
)

func TestWeightedAverageUnitPrice(t *testing.T) {
	// (1000*0.01 + 500*0.02) / 1500
	got := inventory.WeightedAverageUnitPrice(d("1000"), d("0.01"), d("500"), d("0.02"))
	assertDecimal(t, "0.013333", got.Round(6))

	assertDecimal(t, "0", inventory.WeightedAverageUnitPrice(d("0"), d("1"), d("0"), d("1")))
	assertDecimal(t, "0.02", inventory.WeightedAverageUnitPrice(d("0"), d("0.01"), d("500"), d("0.02")))
}

func TestProjectedAverageUnitPrice(t *testing.T) {
	ing := ingredient("flour", "Harina", "1000", "0.01")
	batch := entity.PurchaseBatch{OriginalQuantity: d("500"), CurrentQuantity: d("500"), UnitPrice: d("0.02")}

	assertDecimal(t, "0.013333", inventory.ProjectedAverageUnitPrice(ing, batch).Round(6))
	assert.Len(t, ing.Batches, 1)
	assertDecimal(t, "0.02", inventory.ProjectedAverageUnitPrice(nil, batch))
}

func TestSnapshotRequirement(t *testing.T) {
	ing := ingredient("flour", "Harina", "1000", "0.012")
	r := inventory.SnapshotRequirement(ing, d("250"))

	assert.Equal(t, "flour", r.IngredientID)
	assert.Equal(t, "Harina", r.Name)
	assertDecimal(t, "0.012", r.AverageUnitPrice)
	assertDecimal(t, "3", r.TotalValue)
}

func TestCalculateProductionCosts_Individual(t *testing.T) {
	reqs := []entity.IngredientRequirement{{TotalValue: d("3")}, {TotalValue: d("1")}}
	prod := inventory.CalculateProductionCosts(reqs, entity.ModeIndividual, 0, d("10"))

	assert.Equal(t, 1, prod.YieldQuantity)
	assertDecimal(t, "4", prod.TotalCost)
	assertDecimal(t, "4", prod.UnitCost)
	assertDecimal(t, "10", prod.SellingPrice)
	assertDecimal(t, "10", prod.UnitSellingPrice)
	assertDecimal(t, "6", prod.UnitMargin)
	assertDecimal(t, "60", prod.ProfitMargin)
}

func TestCalculateProductionCosts_Lote(t *testing.T) {
	reqs := []entity.IngredientRequirement{{TotalValue: d("18")}}
	prod := inventory.CalculateProductionCosts(reqs, entity.ModeBatch, 12, d("4"))

	assertDecimal(t, "1.5", prod.UnitCost)
	assertDecimal(t, "48", prod.SellingPrice) // unitario * rendimiento
	assertDecimal(t, "2.5", prod.UnitMargin)
	assertDecimal(t, "62.5", prod.ProfitMargin)

	sinRendimiento := inventory.CalculateProductionCosts(reqs, entity.ModeBatch, 0, d("4"))
	assertDecimal(t, "0", sinRendimiento.UnitCost)

	sinPrecio := inventory.CalculateProductionCosts(reqs, entity.ModeIndividual, 1, d("0"))
	assertDecimal(t, "0", sinPrecio.ProfitMargin)
}
