package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleLineRequest línea de venta explícita.
type SaleLineRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"min=1,max=100000"`
}

// DiscountRequest descuento; Type vacío equivale a sin descuento.
type DiscountRequest struct {
	Type  string          `json:"type" validate:"omitempty,oneof=percentage fixed"`
	Value decimal.Decimal `json:"value"`
}

// CheckoutRequest confirma el carrito en curso.
type CheckoutRequest struct {
	PaymentMethod string          `json:"payment_method" validate:"required,oneof=cash debit credit delivery"`
	Discount      DiscountRequest `json:"discount"`
}

// CreateSaleRequest confirma una venta con líneas explícitas (clientes sin carrito).
type CreateSaleRequest struct {
	Items         []SaleLineRequest `json:"items" validate:"dive"`
	PaymentMethod string            `json:"payment_method" validate:"required,oneof=cash debit credit delivery"`
	Discount      DiscountRequest   `json:"discount"`
}

// PreviewRequest calcula el resumen sin confirmar. Items vacío usa el carrito en curso.
type PreviewRequest struct {
	Items         []SaleLineRequest `json:"items" validate:"dive"`
	PaymentMethod string            `json:"payment_method" validate:"required,oneof=cash debit credit delivery"`
	Discount      DiscountRequest   `json:"discount"`
}

// SaleItemResponse línea de venta con metadatos de lote.
type SaleItemResponse struct {
	ProductID              string          `json:"product_id"`
	ProductName            string          `json:"product_name"`
	Quantity               int             `json:"quantity"`
	UnitPrice              decimal.Decimal `json:"unit_price"`
	Subtotal               decimal.Decimal `json:"subtotal"`
	IsBatchSale            bool            `json:"is_batch_sale"`
	BatchYieldQuantity     int             `json:"batch_yield_quantity,omitempty"`
	BatchSoldQuantity      int             `json:"batch_sold_quantity,omitempty"`
	BatchRemainingQuantity int             `json:"batch_remaining_quantity,omitempty"`
	ProportionalCost       decimal.Decimal `json:"proportional_cost"`
}

// SellingResumeResponse resumen monetario.
type SellingResumeResponse struct {
	PaymentMethod  string          `json:"payment_method"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountType   string          `json:"discount_type,omitempty"`
	DiscountValue  decimal.Decimal `json:"discount_value"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	FeePercentage  decimal.Decimal `json:"fee_percentage"`
	Fees           decimal.Decimal `json:"fees"`
	TotalValue     decimal.Decimal `json:"total_value"`
	TotalCost      decimal.Decimal `json:"total_cost"`
	Profit         decimal.Decimal `json:"profit"`
}

// SaleResponse venta registrada.
type SaleResponse struct {
	ID            string                `json:"id"`
	Date          time.Time             `json:"date"`
	Items         []SaleItemResponse    `json:"items"`
	SellingResume SellingResumeResponse `json:"selling_resume"`
}

// SaleNotice aviso de confirmación por línea. Kind: "batch_sale" o "sale".
type SaleNotice struct {
	Kind          string `json:"kind"`
	ProductID     string `json:"product_id"`
	ProductName   string `json:"product_name"`
	Quantity      int    `json:"quantity"`
	YieldQuantity int    `json:"yield_quantity,omitempty"`
	Message       string `json:"message"`
}

// SaleConfirmationResponse venta confirmada con sus avisos.
type SaleConfirmationResponse struct {
	Sale    SaleResponse `json:"sale"`
	Notices []SaleNotice `json:"notices"`
}

// SalePreviewResponse resumen calculado sin mutar nada. Warnings son avisos orientativos de stock.
type SalePreviewResponse struct {
	Items         []SaleItemResponse    `json:"items"`
	SellingResume SellingResumeResponse `json:"selling_resume"`
	Warnings      []string              `json:"warnings"`
}

// SaleListResponse historial de ventas.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Total int            `json:"total"`
}
