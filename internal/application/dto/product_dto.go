package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RequirementRequest cantidad de un insumo por unidad (individual) o por lote completo (lote).
// Unit vacío usa la unidad del insumo.
type RequirementRequest struct {
	IngredientID string          `json:"ingredient_id" validate:"required"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit" validate:"omitempty,oneof=g kg ml l un"`
}

// CreateProductRequest entrada para crear un producto.
// UnitSellingPrice es siempre el precio de una unidad; en lote el precio del lote se deriva.
type CreateProductRequest struct {
	Name             string               `json:"name" validate:"required,min=1,max=200"`
	Category         string               `json:"category" validate:"max=100"`
	Mode             string               `json:"mode" validate:"required,oneof=individual lote"`
	YieldQuantity    int                  `json:"yield_quantity" validate:"min=0"`
	UnitSellingPrice decimal.Decimal      `json:"unit_selling_price"`
	Ingredients      []RequirementRequest `json:"ingredients" validate:"required,min=1,dive"`
}

// RequirementResponse foto del requerimiento de un insumo.
type RequirementResponse struct {
	IngredientID     string          `json:"ingredient_id"`
	Name             string          `json:"name"`
	Unit             string          `json:"unit"`
	Quantity         decimal.Decimal `json:"quantity"`
	AverageUnitPrice decimal.Decimal `json:"average_unit_price"`
	TotalValue       decimal.Decimal `json:"total_value"`
}

// ProductionResponse costos, precios y producción del producto.
type ProductionResponse struct {
	Mode               string          `json:"mode"`
	TotalCost          decimal.Decimal `json:"total_cost"`
	UnitCost           decimal.Decimal `json:"unit_cost"`
	SellingPrice       decimal.Decimal `json:"selling_price"`
	UnitSellingPrice   decimal.Decimal `json:"unit_selling_price"`
	UnitMargin         decimal.Decimal `json:"unit_margin"`
	ProfitMargin       decimal.Decimal `json:"profit_margin"`
	YieldQuantity      int             `json:"yield_quantity"`
	ProducedQuantity   int             `json:"produced_quantity"`
	LastProductionDate *time.Time      `json:"last_production_date,omitempty"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string                `json:"id"`
	Name        string                `json:"name"`
	Category    string                `json:"category"`
	Ingredients []RequirementResponse `json:"ingredients"`
	Production  ProductionResponse    `json:"production"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
}

// AvailabilityResponse consulta de disponibilidad (orientativa, no reserva stock).
type AvailabilityResponse struct {
	ProductID            string   `json:"product_id"`
	Mode                 string   `json:"mode"`
	MaxSellableQuantity  int      `json:"max_sellable_quantity"`
	RequestedQuantity    int      `json:"requested_quantity"`
	IsValid              bool     `json:"is_valid"`
	MissingIngredients   []string `json:"missing_ingredients"`
	MaxProducibleBatches int      `json:"max_producible_batches"`
}

// ProduceBatchRequest cantidad de lotes a producir.
type ProduceBatchRequest struct {
	Batches int `json:"batches" validate:"required,min=1"`
}

// ConsumptionResponse insumo descontado por una producción.
type ConsumptionResponse struct {
	IngredientID string          `json:"ingredient_id"`
	Name         string          `json:"name"`
	Quantity     decimal.Decimal `json:"quantity"`
}

// ProduceBatchResponse resultado de producir lotes.
type ProduceBatchResponse struct {
	Product           ProductResponse       `json:"product"`
	Batches           int                   `json:"batches"`
	ProducedIncrement int                   `json:"produced_increment"`
	Consumptions      []ConsumptionResponse `json:"consumptions"`
}
