package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseRequest compra de un lote. Unit vacío usa la unidad del insumo.
type PurchaseRequest struct {
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit" validate:"omitempty,oneof=g kg ml l un"`
	BuyPrice     decimal.Decimal `json:"buy_price"`
	PurchaseDate *time.Time      `json:"purchase_date"`
}

// CreateIngredientRequest alta de un insumo, opcionalmente con su primera compra.
type CreateIngredientRequest struct {
	Name            string           `json:"name" validate:"required,min=1,max=120"`
	Unit            string           `json:"unit" validate:"required,oneof=g kg ml l un"`
	MaxQuantity     decimal.Decimal  `json:"max_quantity"`
	InitialPurchase *PurchaseRequest `json:"initial_purchase" validate:"omitempty"`
}

// BatchResponse lote de compra.
type BatchResponse struct {
	ID               string          `json:"id"`
	PurchaseDate     time.Time       `json:"purchase_date"`
	BuyPrice         decimal.Decimal `json:"buy_price"`
	OriginalQuantity decimal.Decimal `json:"original_quantity"`
	CurrentQuantity  decimal.Decimal `json:"current_quantity"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
}

// IngredientResponse insumo con sus valores derivados.
type IngredientResponse struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Unit             string          `json:"unit"`
	TotalQuantity    decimal.Decimal `json:"total_quantity"`
	AverageUnitPrice decimal.Decimal `json:"average_unit_price"`
	TotalValue       decimal.Decimal `json:"total_value"`
	MaxQuantity      decimal.Decimal `json:"max_quantity"`
	StockLevel       decimal.Decimal `json:"stock_level"`
	Batches          []BatchResponse `json:"batches"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// PurchaseResponse resultado de reponer un insumo.
// ProjectedAverageUnitPrice es el costo promedio ponderado estimado antes de aplicar la compra.
type PurchaseResponse struct {
	Ingredient                IngredientResponse `json:"ingredient"`
	Batch                     BatchResponse      `json:"batch"`
	PreviousAverageUnitPrice  decimal.Decimal    `json:"previous_average_unit_price"`
	ProjectedAverageUnitPrice decimal.Decimal    `json:"projected_average_unit_price"`
}

// LowStockItem insumo por debajo del umbral configurado.
type LowStockItem struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	TotalQuantity decimal.Decimal `json:"total_quantity"`
	MaxQuantity   decimal.Decimal `json:"max_quantity"`
	StockLevel    decimal.Decimal `json:"stock_level"`
}

// ReplenishmentSuggestion insumo a reponer con la cantidad sugerida para volver al máximo.
// DependentProducts cuenta los productos cuya receta usa el insumo; BlockedProducts los que ya no se pueden vender.
type ReplenishmentSuggestion struct {
	IngredientID      string          `json:"ingredient_id"`
	Name              string          `json:"name"`
	Unit              string          `json:"unit"`
	TotalQuantity     decimal.Decimal `json:"total_quantity"`
	MaxQuantity       decimal.Decimal `json:"max_quantity"`
	StockLevel        decimal.Decimal `json:"stock_level"`
	SuggestedQuantity decimal.Decimal `json:"suggested_quantity"`
	UnitCost          decimal.Decimal `json:"unit_cost"`
	EstimatedCost     decimal.Decimal `json:"estimated_cost"`
	DependentProducts int             `json:"dependent_products"`
	BlockedProducts   int             `json:"blocked_products"`
	Priority          int             `json:"priority"`
}
