package inventory

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pdv-api/internal/domain/entity"
)

// MaxSellableQuantity cantidad máxima vendible del producto con el stock actual.
// Lote: las unidades ya producidas. Individual: el mínimo de floor(stock / requerimiento)
// entre los insumos; 0 si falta algún insumo, si no tiene stock o si el producto no tiene insumos.
func MaxSellableQuantity(p *entity.Product, stock Stock) int {
	if p == nil {
		return 0
	}
	if p.IsBatch() {
		if p.Production.ProducedQuantity < 0 {
			return 0
		}
		return p.Production.ProducedQuantity
	}
	return capacity(p.Requirements, stock)
}

// ValidateBatchSale valida si se pueden vender requested unidades del producto.
// En lote el mensaje incluye disponibles/solicitadas; en individual lista todos los insumos faltantes.
func ValidateBatchSale(p *entity.Product, requested int, stock Stock) ValidationResult {
	if p == nil {
		return invalid("producto inexistente")
	}
	if requested <= 0 {
		return invalid(fmt.Sprintf("%s: cantidad inválida %d", p.Name, requested))
	}
	if p.IsBatch() {
		produced := p.Production.ProducedQuantity
		if produced >= requested {
			return valid()
		}
		return invalid(fmt.Sprintf("%s: disponibles %d, solicitadas %d", p.Name, max(produced, 0), requested))
	}
	if len(p.Requirements) == 0 {
		return invalid(fmt.Sprintf("%s: sin insumos definidos", p.Name))
	}
	missing := shortages(p.Requirements, decimal.NewFromInt(int64(requested)), stock)
	if len(missing) > 0 {
		return invalid(missing...)
	}
	return valid()
}

// capacity cuántas veces alcanzan los requerimientos con el stock (restricción más fuerte).
func capacity(reqs []entity.IngredientRequirement, stock Stock) int {
	if len(reqs) == 0 {
		return 0
	}
	result := -1
	for _, req := range reqs {
		ing, ok := stock[req.IngredientID]
		if !ok || ing == nil || !req.Quantity.IsPositive() {
			return 0
		}
		available := ing.TotalQuantity()
		if !available.IsPositive() {
			return 0
		}
		n := timesCovered(available, req.Quantity)
		if result < 0 || n < result {
			result = n
		}
	}
	if result < 0 {
		return 0
	}
	return result
}

// timesCovered floor(available / need), corregido para que need*n <= available siempre.
func timesCovered(available, need decimal.Decimal) int {
	n := available.Div(need).Floor()
	if need.Mul(n).GreaterThan(available) {
		n = n.Sub(decimal.NewFromInt(1))
	}
	if n.IsNegative() {
		return 0
	}
	return int(n.IntPart())
}

// shortages nombres de los insumos que no cubren requerimiento*multiplier.
func shortages(reqs []entity.IngredientRequirement, multiplier decimal.Decimal, stock Stock) []string {
	var missing []string
	for _, req := range reqs {
		ing, ok := stock[req.IngredientID]
		if !ok || ing == nil || !req.Quantity.IsPositive() {
			missing = append(missing, req.Name)
			continue
		}
		if ing.TotalQuantity().LessThan(req.Quantity.Mul(multiplier)) {
			missing = append(missing, req.Name)
		}
	}
	return missing
}
