package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseBatch lote de compra de un insumo. Cantidades en unidad base.
type PurchaseBatch struct {
	ID               string
	PurchaseDate     time.Time
	BuyPrice         decimal.Decimal // precio pagado por el lote completo
	OriginalQuantity decimal.Decimal
	CurrentQuantity  decimal.Decimal
	UnitPrice        decimal.Decimal // BuyPrice / OriginalQuantity
}

// Ingredient insumo con stock vivo, compuesto por lotes de compra.
// TotalQuantity y AverageUnitPrice se derivan de los lotes.
type Ingredient struct {
	ID          string
	Name        string
	Unit        Unit // siempre unidad base
	Batches     []PurchaseBatch
	MaxQuantity decimal.Decimal // techo para indicadores de nivel; no se impone
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TotalQuantity suma la cantidad actual de todos los lotes.
func (i *Ingredient) TotalQuantity() decimal.Decimal {
	total := decimal.Zero
	for _, b := range i.Batches {
		total = total.Add(b.CurrentQuantity)
	}
	return total
}

// TotalValue valor del stock: Σ(cantidad actual * precio unitario).
func (i *Ingredient) TotalValue() decimal.Decimal {
	total := decimal.Zero
	for _, b := range i.Batches {
		total = total.Add(b.CurrentQuantity.Mul(b.UnitPrice))
	}
	return total
}

// AverageUnitPrice precio unitario promedio ponderado por cantidad actual.
// Sin stock devuelve el precio del lote más reciente (0 si no hay lotes).
func (i *Ingredient) AverageUnitPrice() decimal.Decimal {
	qty := i.TotalQuantity()
	if qty.LessThanOrEqual(decimal.Zero) {
		if n := len(i.Batches); n > 0 {
			return i.Batches[n-1].UnitPrice
		}
		return decimal.Zero
	}
	return i.TotalValue().Div(qty)
}

// Consume descuenta qty de los lotes, del más antiguo al más reciente.
// Nunca deja cantidades negativas: devuelve lo efectivamente consumido.
func (i *Ingredient) Consume(qty decimal.Decimal) decimal.Decimal {
	if !qty.IsPositive() {
		return decimal.Zero
	}
	remaining := qty
	for idx := range i.Batches {
		if !remaining.IsPositive() {
			break
		}
		b := &i.Batches[idx]
		if !b.CurrentQuantity.IsPositive() {
			continue
		}
		used := decimal.Min(remaining, b.CurrentQuantity)
		b.CurrentQuantity = b.CurrentQuantity.Sub(used)
		remaining = remaining.Sub(used)
	}
	return qty.Sub(remaining)
}

// StockLevel porcentaje de TotalQuantity respecto a MaxQuantity (0 si no hay techo).
func (i *Ingredient) StockLevel() decimal.Decimal {
	if !i.MaxQuantity.IsPositive() {
		return decimal.Zero
	}
	return i.TotalQuantity().Div(i.MaxQuantity).Mul(decimal.NewFromInt(100))
}

// Clone copia profunda (los lotes se copian).
func (i *Ingredient) Clone() *Ingredient {
	if i == nil {
		return nil
	}
	c := *i
	c.Batches = append([]PurchaseBatch(nil), i.Batches...)
	return &c
}

// AddPurchase agrega un lote nuevo con baseQty (unidad base) pagado a buyPrice.
// El precio unitario del lote es buyPrice / baseQty. Devuelve false si la cantidad
// no es positiva o el precio es negativo (no se agrega nada).
func (i *Ingredient) AddPurchase(id string, at time.Time, buyPrice, baseQty decimal.Decimal) (PurchaseBatch, bool) {
	if !baseQty.IsPositive() || buyPrice.IsNegative() {
		return PurchaseBatch{}, false
	}
	b := PurchaseBatch{
		ID:               id,
		PurchaseDate:     at,
		BuyPrice:         buyPrice,
		OriginalQuantity: baseQty,
		CurrentQuantity:  baseQty,
		UnitPrice:        buyPrice.Div(baseQty),
	}
	i.Batches = append(i.Batches, b)
	i.UpdatedAt = at
	return b, true
}
