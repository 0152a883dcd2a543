package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItem línea de venta simple.
type SaleItem struct {
	Product  *Product
	Quantity int
	Subtotal decimal.Decimal
}

// BatchSaleItem línea de venta con metadatos de lote (solo significativos si IsBatchSale).
type BatchSaleItem struct {
	ProductID              string
	ProductName            string
	Quantity               int
	UnitPrice              decimal.Decimal
	Subtotal               decimal.Decimal
	IsBatchSale            bool
	BatchYieldQuantity     int
	BatchSoldQuantity      int
	BatchRemainingQuantity int
	ProportionalCost       decimal.Decimal
}

// SellingResume resumen monetario de la venta.
type SellingResume struct {
	PaymentMethod  PaymentMethod
	Subtotal       decimal.Decimal
	DiscountType   DiscountType
	DiscountValue  decimal.Decimal // valor configurado (porcentaje o monto)
	DiscountAmount decimal.Decimal
	FeePercentage  decimal.Decimal
	Fees           decimal.Decimal
	TotalValue     decimal.Decimal // Subtotal - DiscountAmount + Fees
	TotalCost      decimal.Decimal // Σ costo proporcional de los ítems
	Profit         decimal.Decimal // Subtotal - DiscountAmount - TotalCost
}

// Sale venta confirmada. Inmutable una vez registrada.
type Sale struct {
	ID            string
	Date          time.Time
	Items         []BatchSaleItem
	SellingResume SellingResume
}

// UnitsSold suma de unidades vendidas en la venta.
func (s *Sale) UnitsSold() int {
	n := 0
	for _, it := range s.Items {
		n += it.Quantity
	}
	return n
}
