package entity

import "github.com/shopspring/decimal"

// PaymentMethod medio de pago (conjunto cerrado).
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentDebit    PaymentMethod = "debit"
	PaymentCredit   PaymentMethod = "credit"
	PaymentDelivery PaymentMethod = "delivery" // canal de delivery de terceros
)

// PaymentMethods lista ordenada de medios soportados.
var PaymentMethods = []PaymentMethod{PaymentCash, PaymentDebit, PaymentCredit, PaymentDelivery}

// Valid indica si el medio de pago es conocido.
func (m PaymentMethod) Valid() bool {
	for _, pm := range PaymentMethods {
		if pm == m {
			return true
		}
	}
	return false
}

// DiscountType tipo de descuento.
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// Discount descuento aplicado al subtotal de la venta.
type Discount struct {
	Type  DiscountType
	Value decimal.Decimal
}

// FeeTable porcentaje de comisión (0-100) por medio de pago.
type FeeTable map[PaymentMethod]decimal.Decimal

// PaymentConfig medio, descuento y comisiones de una venta.
type PaymentConfig struct {
	Method   PaymentMethod
	Discount Discount
	Fees     FeeTable
}
