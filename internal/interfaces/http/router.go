package http

import (
	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/jhoicas/pdv-api/internal/application/analytics"
	"github.com/jhoicas/pdv-api/internal/application/inventory"
	"github.com/jhoicas/pdv-api/internal/application/sales"
	"github.com/jhoicas/pdv-api/internal/application/usecase"
	"github.com/shopspring/decimal"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	IngredientUC      *inventory.IngredientUseCase
	ReplenishmentUC   *inventory.ReplenishmentUseCase
	ProductUC         *usecase.ProductUseCase
	AvailabilityUC    *inventory.AvailabilityUseCase
	ProductionUC      *inventory.ProductionUseCase
	CartUC            *sales.CartUseCase
	ConfirmSaleUC     *sales.ConfirmSaleUseCase
	SaleQueryUC       *sales.QueryUseCase
	ReceiptUC         *sales.ReceiptUseCase
	FinanceUC         *appanalytics.FinanceUseCase
	LowStockThreshold decimal.Decimal
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	v := NewRequestValidator()

	// Insumos y compras (lotes)
	ingredients := api.Group("/ingredients")
	ingredientHandler := NewIngredientHandler(deps.IngredientUC, deps.ReplenishmentUC, v, deps.LowStockThreshold)
	ingredients.Post("/", ingredientHandler.Create)
	ingredients.Get("/", ingredientHandler.List)
	ingredients.Get("/low-stock", ingredientHandler.LowStock)
	ingredients.Get("/replenishment", ingredientHandler.Replenishment)
	ingredients.Get("/:id", ingredientHandler.GetByID)
	ingredients.Post("/:id/purchases", ingredientHandler.AddPurchase)

	// Productos, disponibilidad y producción por lote
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.AvailabilityUC, deps.ProductionUC, v)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Get("/:id/availability", productHandler.Availability)
	products.Post("/:id/production", productHandler.Produce)

	// Carrito del punto de venta
	cart := api.Group("/cart")
	cartHandler := NewCartHandler(deps.CartUC, v)
	cart.Get("/", cartHandler.View)
	cart.Delete("/", cartHandler.Clear)
	cart.Post("/items", cartHandler.AddItem)
	cart.Put("/items/:productId", cartHandler.SetQuantity)
	cart.Delete("/items/:productId", cartHandler.RemoveItem)

	// Ventas
	salesGroup := api.Group("/sales")
	saleHandler := NewSaleHandler(deps.ConfirmSaleUC, deps.CartUC, deps.SaleQueryUC, deps.ReceiptUC, v)
	salesGroup.Post("/preview", saleHandler.Preview)
	salesGroup.Post("/checkout", saleHandler.Checkout)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Get("/:id/receipt", saleHandler.Receipt)

	// Finanzas
	financeGroup := api.Group("/finance")
	financeHandler := NewFinanceHandler(deps.FinanceUC)
	financeGroup.Get("/summary", financeHandler.GetSummary)
	financeGroup.Get("/dashboard", financeHandler.GetDashboard)
}
