package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AddCartItemRequest suma unidades de un producto al carrito.
type AddCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"min=1,max=100000"`
}

// SetCartItemRequest fija la cantidad de un producto; 0 lo quita.
type SetCartItemRequest struct {
	Quantity int `json:"quantity" validate:"min=0,max=100000"`
}

// CartLineResponse línea del carrito con precio y disponibilidad orientativa.
type CartLineResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	MaxSellable int             `json:"max_sellable"`
}

// CartResponse estado del carrito. Capped indica que la última operación se recortó al máximo vendible.
type CartResponse struct {
	Lines     []CartLineResponse `json:"lines"`
	Subtotal  decimal.Decimal    `json:"subtotal"`
	Capped    bool               `json:"capped"`
	UpdatedAt time.Time          `json:"updated_at"`
}
