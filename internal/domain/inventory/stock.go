// Package inventory contiene el motor de disponibilidad, consumo proporcional
// y producción por lote. Todas las funciones son puras: no mutan sus argumentos.
package inventory

import "github.com/jhoicas/pdv-api/internal/domain/entity"

// Stock vista del stock vivo de insumos indexada por ID.
type Stock map[string]*entity.Ingredient

// NewStock indexa una lista de insumos por ID.
func NewStock(ingredients []*entity.Ingredient) Stock {
	s := make(Stock, len(ingredients))
	for _, ing := range ingredients {
		if ing != nil {
			s[ing.ID] = ing
		}
	}
	return s
}

// ValidationResult resultado de validar una venta o producción.
type ValidationResult struct {
	IsValid            bool
	MissingIngredients []string
}

func valid() ValidationResult { return ValidationResult{IsValid: true} }

func invalid(missing ...string) ValidationResult {
	return ValidationResult{IsValid: false, MissingIngredients: missing}
}
