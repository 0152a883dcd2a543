package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductionMode modo de producción de un producto.
type ProductionMode string

const (
	// ModeIndividual los insumos se consumen por unidad vendida.
	ModeIndividual ProductionMode = "individual"
	// ModeBatch ("lote") los insumos se consumen al producir; la venta descuenta unidades producidas.
	ModeBatch ProductionMode = "lote"
)

// Valid indica si el modo es conocido.
func (m ProductionMode) Valid() bool {
	return m == ModeIndividual || m == ModeBatch
}

// IngredientRequirement foto del requerimiento de un insumo al definir el producto.
// En modo individual Quantity es por unidad; en modo lote es por lote completo (YieldQuantity unidades).
// Es independiente del Ingredient vivo: cambios de precio posteriores no la afectan.
type IngredientRequirement struct {
	IngredientID     string
	Name             string
	Unit             Unit
	Quantity         decimal.Decimal
	AverageUnitPrice decimal.Decimal
	TotalValue       decimal.Decimal // Quantity * AverageUnitPrice
}

// Production datos de costo/precio y producción del producto.
type Production struct {
	Mode               ProductionMode
	TotalCost          decimal.Decimal
	UnitCost           decimal.Decimal
	SellingPrice       decimal.Decimal // en lote: precio del lote completo
	UnitSellingPrice   decimal.Decimal
	UnitMargin         decimal.Decimal
	ProfitMargin       decimal.Decimal // % sobre UnitSellingPrice
	YieldQuantity      int
	ProducedQuantity   int // unidades producidas disponibles (solo lote)
	LastProductionDate *time.Time
}

// Product producto vendible compuesto por insumos.
type Product struct {
	ID           string
	Name         string
	Category     string
	Requirements []IngredientRequirement
	Production   Production
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsBatch indica si el producto se vende desde un contador de unidades producidas.
// Un rendimiento no positivo se trata como no-lote.
func (p *Product) IsBatch() bool {
	return p.Production.Mode == ModeBatch && p.Production.YieldQuantity > 0
}

// Clone copia profunda del producto.
func (p *Product) Clone() *Product {
	if p == nil {
		return nil
	}
	c := *p
	c.Requirements = append([]IngredientRequirement(nil), p.Requirements...)
	if p.Production.LastProductionDate != nil {
		t := *p.Production.LastProductionDate
		c.Production.LastProductionDate = &t
	}
	return &c
}
