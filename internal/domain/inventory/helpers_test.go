package inventory_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/pdv-api/internal/domain/entity"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertDecimal(t *testing.T, expected string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, d(expected).Equal(got), "esperado %s, obtenido %s", expected, got.String())
}

// ingredient crea un insumo con un solo lote de qty unidades base a unitPrice.
func ingredient(id, name, qty, unitPrice string) *entity.Ingredient {
	return &entity.Ingredient{
		ID:   id,
		Name: name,
		Unit: entity.UnitGram,
		Batches: []entity.PurchaseBatch{{
			ID:               id + "-b1",
			PurchaseDate:     time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			BuyPrice:         d(qty).Mul(d(unitPrice)),
			OriginalQuantity: d(qty),
			CurrentQuantity:  d(qty),
			UnitPrice:        d(unitPrice),
		}},
	}
}

func req(id, name, qty string) entity.IngredientRequirement {
	return entity.IngredientRequirement{IngredientID: id, Name: name, Unit: entity.UnitGram, Quantity: d(qty)}
}

func individualProduct(price, unitCost string, reqs ...entity.IngredientRequirement) *entity.Product {
	return &entity.Product{
		ID:           "p-ind",
		Name:         "Pan",
		Requirements: reqs,
		Production: entity.Production{
			Mode:             entity.ModeIndividual,
			UnitCost:         d(unitCost),
			SellingPrice:     d(price),
			UnitSellingPrice: d(price),
			YieldQuantity:    1,
		},
	}
}

func batchProduct(yield, produced int, unitPrice, unitCost string, reqs ...entity.IngredientRequirement) *entity.Product {
	return &entity.Product{
		ID:           "p-lote",
		Name:         "Brownie",
		Requirements: reqs,
		Production: entity.Production{
			Mode:             entity.ModeBatch,
			UnitCost:         d(unitCost),
			UnitSellingPrice: d(unitPrice),
			SellingPrice:     d(unitPrice).Mul(decimal.NewFromInt(int64(yield))),
			YieldQuantity:    yield,
			ProducedQuantity: produced,
		},
	}
}
