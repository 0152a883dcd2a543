package entity

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Unit unidad de medida de un insumo.
type Unit string

// Unidades soportadas. Las cantidades se guardan siempre en la unidad base (g, ml, un).
const (
	UnitGram       Unit = "g"
	UnitKilogram   Unit = "kg"
	UnitMilliliter Unit = "ml"
	UnitLiter      Unit = "l"
	UnitPiece      Unit = "un"
)

// UnitCategory categoría física de la unidad.
type UnitCategory string

const (
	CategoryMass   UnitCategory = "mass"
	CategoryVolume UnitCategory = "volume"
	CategoryCount  UnitCategory = "count"
)

var thousand = decimal.NewFromInt(1000)

// ParseUnit normaliza el texto recibido ("KG", " l ") a una Unit conocida.
func ParseUnit(s string) (Unit, bool) {
	u := Unit(strings.ToLower(strings.TrimSpace(s)))
	switch u {
	case UnitGram, UnitKilogram, UnitMilliliter, UnitLiter, UnitPiece:
		return u, true
	}
	return "", false
}

// Category devuelve la categoría de la unidad.
func (u Unit) Category() UnitCategory {
	switch u {
	case UnitGram, UnitKilogram:
		return CategoryMass
	case UnitMilliliter, UnitLiter:
		return CategoryVolume
	default:
		return CategoryCount
	}
}

// Base devuelve la unidad base de la categoría.
func (u Unit) Base() Unit {
	switch u.Category() {
	case CategoryMass:
		return UnitGram
	case CategoryVolume:
		return UnitMilliliter
	default:
		return UnitPiece
	}
}

// NormalizeQuantity convierte qty expresada en u a la unidad base.
func (u Unit) NormalizeQuantity(qty decimal.Decimal) decimal.Decimal {
	switch u {
	case UnitKilogram, UnitLiter:
		return qty.Mul(thousand)
	default:
		return qty
	}
}
