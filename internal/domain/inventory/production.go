package inventory

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pdv-api/internal/domain/entity"
)

// BatchProduction resultado de producir lotes: insumos a descontar y unidades a sumar.
type BatchProduction struct {
	Consumptions      []IngredientConsumption
	ProducedIncrement int
}

// MaxProducibleBatches cuántos lotes completos se pueden producir con el stock actual.
func MaxProducibleBatches(p *entity.Product, stock Stock) int {
	if p == nil || !p.IsBatch() {
		return 0
	}
	return capacity(p.Requirements, stock)
}

// ValidateBatchProduction valida la producción de batches lotes.
func ValidateBatchProduction(p *entity.Product, batches int, stock Stock) ValidationResult {
	if p == nil {
		return invalid("producto inexistente")
	}
	if !p.IsBatch() {
		return invalid(fmt.Sprintf("%s: no se produce por lote", p.Name))
	}
	if batches <= 0 {
		return invalid(fmt.Sprintf("%s: cantidad de lotes inválida (%d)", p.Name, batches))
	}
	if len(p.Requirements) == 0 {
		return invalid(fmt.Sprintf("%s: sin insumos definidos", p.Name))
	}
	missing := shortages(p.Requirements, decimal.NewFromInt(int64(batches)), stock)
	if len(missing) > 0 {
		return invalid(missing...)
	}
	return valid()
}

// ProduceBatch calcula los insumos a descontar y las unidades producidas por batches lotes.
// Si la validación falla devuelve un BatchProduction vacío junto con el resultado.
func ProduceBatch(p *entity.Product, batches int, stock Stock) (BatchProduction, ValidationResult) {
	res := ValidateBatchProduction(p, batches, stock)
	if !res.IsValid {
		return BatchProduction{}, res
	}
	factor := decimal.NewFromInt(int64(batches))
	out := BatchProduction{
		Consumptions:      make([]IngredientConsumption, 0, len(p.Requirements)),
		ProducedIncrement: p.Production.YieldQuantity * batches,
	}
	for _, req := range p.Requirements {
		out.Consumptions = append(out.Consumptions, IngredientConsumption{
			IngredientID: req.IngredientID,
			Name:         req.Name,
			Quantity:     req.Quantity.Mul(factor),
		})
	}
	return out, res
}

// UpdateProducedQuantity devuelve una copia con added unidades producidas más y la fecha de producción.
func UpdateProducedQuantity(p *entity.Product, added int, at time.Time) *entity.Product {
	if p == nil {
		return nil
	}
	out := p.Clone()
	out.Production.ProducedQuantity = max(0, p.Production.ProducedQuantity) + max(0, added)
	out.Production.LastProductionDate = &at
	out.UpdatedAt = at
	return out
}
