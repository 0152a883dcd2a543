package inventory_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pdv-api/internal/application/dto"
	"github.com/jhoicas/pdv-api/internal/application/inventory"
	"github.com/jhoicas/pdv-api/internal/application/usecase"
	"github.com/jhoicas/pdv-api/internal/domain"
	"github.com/jhoicas/pdv-api/internal/infrastructure/memory"
	"github.com/jhoicas/pdv-api/pkg/logger"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertDecimal(t *testing.T, expected string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, d(expected).Equal(got), "esperado %s, obtenido %s", expected, got.String())
}

type env struct {
	ingredients   *inventory.IngredientUseCase
	products      *usecase.ProductUseCase
	availability  *inventory.AvailabilityUseCase
	production    *inventory.ProductionUseCase
	replenishment *inventory.ReplenishmentUseCase
}

func newEnv() *env {
	store := memory.NewStore()
	return &env{
		ingredients:   inventory.NewIngredientUseCase(store.TxRunner(), store.Ingredients()),
		products:      usecase.NewProductUseCase(store.Products(), store.Ingredients()),
		availability:  inventory.NewAvailabilityUseCase(store.Products(), store.Ingredients()),
		production:    inventory.NewProductionUseCase(store.TxRunner(), &sync.Mutex{}, logger.NewNop()),
		replenishment: inventory.NewReplenishmentUseCase(store.Ingredients(), store.Products()),
	}
}

// createIngredient alta en kg con una compra inicial de qtyKg a price.
func (e *env) createIngredient(t *testing.T, name, maxKg, qtyKg, price string) *dto.IngredientResponse {
	t.Helper()
	out, err := e.ingredients.Create(context.Background(), dto.CreateIngredientRequest{
		Name:            name,
		Unit:            "kg",
		MaxQuantity:     d(maxKg),
		InitialPurchase: &dto.PurchaseRequest{Quantity: d(qtyKg), BuyPrice: d(price)},
	})
	require.NoError(t, err)
	return out
}

func (e *env) createProduct(t *testing.T, name, mode string, yield int, price string, reqs ...dto.RequirementRequest) *dto.ProductResponse {
	t.Helper()
	out, err := e.products.Create(context.Background(), dto.CreateProductRequest{
		Name:             name,
		Mode:             mode,
		YieldQuantity:    yield,
		UnitSellingPrice: d(price),
		Ingredients:      reqs,
	})
	require.NoError(t, err)
	return out
}

func grams(ingredientID, qty string) dto.RequirementRequest {
	return dto.RequirementRequest{IngredientID: ingredientID, Quantity: d(qty), Unit: "g"}
}

func TestIngredient_CreateNormalizaAUnidadBase(t *testing.T) {
	e := newEnv()
	out := e.createIngredient(t, "  Harina ", "2", "1", "2000")

	assert.Equal(t, "Harina", out.Name)
	assert.Equal(t, "g", out.Unit)
	assertDecimal(t, "2000", out.MaxQuantity)
	assertDecimal(t, "1000", out.TotalQuantity)
	assertDecimal(t, "2", out.AverageUnitPrice)
	assertDecimal(t, "50", out.StockLevel)
	require.Len(t, out.Batches, 1)
}

func TestIngredient_CreateRechazaEntradas(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	_, err := e.ingredients.Create(ctx, dto.CreateIngredientRequest{Name: "", Unit: "kg"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = e.ingredients.Create(ctx, dto.CreateIngredientRequest{Name: "Sal", Unit: "taza"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = e.ingredients.Create(ctx, dto.CreateIngredientRequest{Name: "Sal", Unit: "g", MaxQuantity: d("-1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = e.ingredients.Create(ctx, dto.CreateIngredientRequest{
		Name:            "Leche",
		Unit:            "l",
		InitialPurchase: &dto.PurchaseRequest{Quantity: d("1"), Unit: "kg", BuyPrice: d("10")},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestIngredient_AddPurchaseProyectaPromedioPonderado(t *testing.T) {
	e := newEnv()
	harina := e.createIngredient(t, "Harina", "2", "1", "2000")

	out, err := e.ingredients.AddPurchase(context.Background(), harina.ID, dto.PurchaseRequest{
		Quantity: d("500"),
		Unit:     "g",
		BuyPrice: d("2000"),
	})
	require.NoError(t, err)
	assertDecimal(t, "2", out.PreviousAverageUnitPrice)
	// (1000*2 + 500*4) / 1500
	assertDecimal(t, "2.6667", out.ProjectedAverageUnitPrice.Round(4))
	assertDecimal(t, "1500", out.Ingredient.TotalQuantity)
	assertDecimal(t, "4", out.Batch.UnitPrice)
	assert.Len(t, out.Ingredient.Batches, 2)

	_, err = e.ingredients.AddPurchase(context.Background(), "no-existe", dto.PurchaseRequest{Quantity: d("1"), BuyPrice: d("1")})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = e.ingredients.AddPurchase(context.Background(), harina.ID, dto.PurchaseRequest{Quantity: d("0"), BuyPrice: d("1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := e.ingredients.GetByID(context.Background(), harina.ID)
	require.NoError(t, err)
	assertDecimal(t, "1500", got.TotalQuantity)
}

func TestIngredient_LowStock(t *testing.T) {
	e := newEnv()
	e.createIngredient(t, "Harina", "2", "1", "2000")
	e.createIngredient(t, "Azúcar", "1", "0.1", "300")
	_, err := e.ingredients.Create(context.Background(), dto.CreateIngredientRequest{Name: "Sal", Unit: "g"})
	require.NoError(t, err)

	out, err := e.ingredients.LowStock(context.Background(), d("20"))
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Azúcar", out[0].Name)
	assertDecimal(t, "10", out[0].StockLevel)

	out, err = e.ingredients.LowStock(context.Background(), d("5"))
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestProduct_CreateCongelaRequerimientos(t *testing.T) {
	e := newEnv()
	harina := e.createIngredient(t, "Harina", "2", "1", "2000")
	pan := e.createProduct(t, "Pan", "individual", 0, "1500", grams(harina.ID, "200"))

	require.Len(t, pan.Ingredients, 1)
	assertDecimal(t, "2", pan.Ingredients[0].AverageUnitPrice)
	assertDecimal(t, "400", pan.Production.UnitCost)

	// Una compra más cara no cambia el costo del producto ya definido.
	_, err := e.ingredients.AddPurchase(context.Background(), harina.ID, dto.PurchaseRequest{Quantity: d("1"), Unit: "kg", BuyPrice: d("8000")})
	require.NoError(t, err)
	got, err := e.products.GetByID(context.Background(), pan.ID)
	require.NoError(t, err)
	assertDecimal(t, "400", got.Production.UnitCost)

	_, err = e.products.Create(context.Background(), dto.CreateProductRequest{
		Name: "pan", Mode: "individual", UnitSellingPrice: d("1"), Ingredients: []dto.RequirementRequest{grams(harina.ID, "1")},
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = e.products.Create(context.Background(), dto.CreateProductRequest{
		Name: "Torta", Mode: "lote", YieldQuantity: 0, UnitSellingPrice: d("1"), Ingredients: []dto.RequirementRequest{grams(harina.ID, "1")},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAvailability_Individual(t *testing.T) {
	e := newEnv()
	harina := e.createIngredient(t, "Harina", "1", "0.5", "1000")
	pan := e.createProduct(t, "Pan", "individual", 0, "1500", grams(harina.ID, "200"))

	out, err := e.availability.Check(context.Background(), pan.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, out.MaxSellableQuantity)
	assert.True(t, out.IsValid)
	assert.Empty(t, out.MissingIngredients)

	out, err = e.availability.Check(context.Background(), pan.ID, 3)
	require.NoError(t, err)
	assert.False(t, out.IsValid)
	assert.Equal(t, []string{"Harina"}, out.MissingIngredients)

	_, err = e.availability.Check(context.Background(), "no-existe", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProduction_LoteConsumeInsumosYSumaUnidades(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	cacao := e.createIngredient(t, "Cacao", "2", "1", "5000")
	brownie := e.createProduct(t, "Brownie", "lote", 12, "800", grams(cacao.ID, "400"))

	avail, err := e.availability.Check(ctx, brownie.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, avail.MaxSellableQuantity)
	assert.Equal(t, 2, avail.MaxProducibleBatches)

	out, err := e.production.Produce(ctx, brownie.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 24, out.ProducedIncrement)
	assert.Equal(t, 24, out.Product.Production.ProducedQuantity)
	require.NotNil(t, out.Product.Production.LastProductionDate)
	require.Len(t, out.Consumptions, 1)
	assertDecimal(t, "800", out.Consumptions[0].Quantity)

	got, err := e.ingredients.GetByID(ctx, cacao.ID)
	require.NoError(t, err)
	assertDecimal(t, "200", got.TotalQuantity)

	_, err = e.production.Produce(ctx, brownie.ID, 1)
	var verr *domain.SaleValidationError
	require.True(t, errors.As(err, &verr))
	assert.True(t, verr.IsBatch)
	assert.Equal(t, []string{"Cacao"}, verr.Missing)

	got, err = e.ingredients.GetByID(ctx, cacao.ID)
	require.NoError(t, err)
	assertDecimal(t, "200", got.TotalQuantity)
}

func TestProduction_Errores(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	harina := e.createIngredient(t, "Harina", "1", "1", "1000")
	pan := e.createProduct(t, "Pan", "individual", 0, "1500", grams(harina.ID, "200"))

	_, err := e.production.Produce(ctx, pan.ID, 1)
	assert.ErrorIs(t, err, domain.ErrNotBatchProduct)
	_, err = e.production.Produce(ctx, "no-existe", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = e.production.Produce(ctx, pan.ID, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReplenishment_PriorizaInsumosQueBloqueanProductos(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	harina := e.createIngredient(t, "Harina", "2", "0.1", "200")
	azucar := e.createIngredient(t, "Azúcar", "1", "0.05", "100")
	e.createIngredient(t, "Sal", "1", "1", "100")
	e.createProduct(t, "Pan", "individual", 0, "1500", grams(harina.ID, "200"))
	e.createProduct(t, "Galleta", "individual", 0, "900", grams(harina.ID, "50"), grams(azucar.ID, "20"))

	out, err := e.replenishment.GenerateReplenishmentList(ctx, d("20"))
	require.NoError(t, err)
	require.Len(t, out, 2)

	// Harina: Pan no alcanza (100 < 200), Galleta sí.
	assert.Equal(t, harina.ID, out[0].IngredientID)
	assert.Equal(t, 1, out[0].Priority)
	assert.Equal(t, 2, out[0].DependentProducts)
	assert.Equal(t, 1, out[0].BlockedProducts)
	assertDecimal(t, "1900", out[0].SuggestedQuantity)
	assertDecimal(t, "3800", out[0].EstimatedCost)

	assert.Equal(t, azucar.ID, out[1].IngredientID)
	assert.Equal(t, 2, out[1].Priority)
	assert.Equal(t, 0, out[1].BlockedProducts)
	assertDecimal(t, "950", out[1].SuggestedQuantity)
	assertDecimal(t, "1900", out[1].EstimatedCost)
}
