package sales_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pdv-api/internal/application/sales"
	"github.com/jhoicas/pdv-api/internal/domain/entity"
	"github.com/jhoicas/pdv-api/internal/infrastructure/memory"
	"github.com/jhoicas/pdv-api/pkg/logger"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertDecimal(t *testing.T, expected string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, d(expected).Equal(got), "esperado %s, obtenido %s", expected, got.String())
}

type fixture struct {
	store   *memory.Store
	confirm *sales.ConfirmSaleUseCase
	cart    *sales.CartUseCase
	query   *sales.QueryUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	fees := entity.FeeTable{
		entity.PaymentCash:   decimal.Zero,
		entity.PaymentDebit:  d("2"),
		entity.PaymentCredit: d("5"),
	}
	confirm := sales.NewConfirmSaleUseCase(store.TxRunner(), &sync.Mutex{}, fees, logger.NewNop())
	return &fixture{
		store:   store,
		confirm: confirm,
		cart:    sales.NewCartUseCase(store.Products(), store.Ingredients(), confirm),
		query:   sales.NewQueryUseCase(store.Products(), store.Ingredients(), store.Sales(), fees),
	}
}

// addIngredient registra un insumo en gramos con un solo lote de qty a unitPrice.
func (f *fixture) addIngredient(t *testing.T, id, name, qty, unitPrice string) {
	t.Helper()
	ing := &entity.Ingredient{
		ID:          id,
		Name:        name,
		Unit:        entity.UnitGram,
		MaxQuantity: d(qty),
		Batches: []entity.PurchaseBatch{{
			ID:               id + "-b1",
			PurchaseDate:     time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			BuyPrice:         d(qty).Mul(d(unitPrice)),
			OriginalQuantity: d(qty),
			CurrentQuantity:  d(qty),
			UnitPrice:        d(unitPrice),
		}},
	}
	require.NoError(t, f.store.Ingredients().Create(context.Background(), ing))
}

func req(id, name, qty string) entity.IngredientRequirement {
	return entity.IngredientRequirement{IngredientID: id, Name: name, Unit: entity.UnitGram, Quantity: d(qty)}
}

func (f *fixture) addIndividual(t *testing.T, id, name, price, unitCost string, reqs ...entity.IngredientRequirement) {
	t.Helper()
	p := &entity.Product{
		ID:           id,
		Name:         name,
		Requirements: reqs,
		Production: entity.Production{
			Mode:             entity.ModeIndividual,
			UnitCost:         d(unitCost),
			SellingPrice:     d(price),
			UnitSellingPrice: d(price),
			YieldQuantity:    1,
		},
	}
	require.NoError(t, f.store.Products().Create(context.Background(), p))
}

func (f *fixture) addBatch(t *testing.T, id, name string, yield, produced int, unitPrice, unitCost string, reqs ...entity.IngredientRequirement) {
	t.Helper()
	p := &entity.Product{
		ID:           id,
		Name:         name,
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
	require.NoError(t, f.store.Products().Create(context.Background(), p))
}

func (f *fixture) stockOf(t *testing.T, id string) decimal.Decimal {
	t.Helper()
	ing, err := f.store.Ingredients().GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, ing)
	return ing.TotalQuantity()
}

func (f *fixture) producedOf(t *testing.T, id string) int {
	t.Helper()
	p, err := f.store.Products().GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Production.ProducedQuantity
}

func (f *fixture) salesCount(t *testing.T) int {
	t.Helper()
	list, err := f.store.Sales().List(context.Background(), nil, nil)
	require.NoError(t, err)
	return len(list)
}
