package inventory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pdv-api/internal/application/dto"
	domaininv "github.com/jhoicas/pdv-api/internal/domain/inventory"
	"github.com/jhoicas/pdv-api/internal/domain/repository"
)

// ReplenishmentUseCase genera la lista de compras de insumos bajo el umbral de stock.
// Prioriza los insumos de los que dependen más productos.
type ReplenishmentUseCase struct {
	ingredientRepo repository.IngredientRepository
	productRepo    repository.ProductRepository
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(
	ingredientRepo repository.IngredientRepository,
	productRepo repository.ProductRepository,
) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{
		ingredientRepo: ingredientRepo,
		productRepo:    productRepo,
	}
}

// GenerateReplenishmentList devuelve los insumos con nivel <= thresholdPct, la cantidad
// sugerida (hasta MaxQuantity) y su costo estimado al precio promedio vigente.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(
	ctx context.Context,
	thresholdPct decimal.Decimal,
) ([]dto.ReplenishmentSuggestion, error) {

	// 1. Stock actual de todos los insumos
	ingredients, err := uc.ingredientRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	stock := make(domaininv.Stock, len(ingredients))
	for _, ing := range ingredients {
		stock[ing.ID] = ing
	}

	// 2. Productos que usan cada insumo y cuántos ya no alcanzan ni una unidad (o un lote)
	products, err := uc.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	dependents := make(map[string]int)
	blocked := make(map[string]int)
	for _, p := range products {
		sellable := domaininv.MaxSellableQuantity(p, stock) > 0
		if p.IsBatch() {
			sellable = domaininv.MaxProducibleBatches(p, stock) > 0
		}
		for _, r := range p.Requirements {
			dependents[r.IngredientID]++
			if !sellable {
				blocked[r.IngredientID]++
			}
		}
	}

	// 3. Sugerencias para los insumos bajo el umbral
	suggestions := make([]dto.ReplenishmentSuggestion, 0)
	for _, ing := range ingredients {
		if !ing.MaxQuantity.IsPositive() {
			continue
		}
		level := ing.StockLevel()
		if level.GreaterThan(thresholdPct) {
			continue
		}
		total := ing.TotalQuantity()
		suggested := ing.MaxQuantity.Sub(total)
		if suggested.IsNegative() {
			suggested = decimal.Zero
		}
		unitCost := ing.AverageUnitPrice()
		suggestions = append(suggestions, dto.ReplenishmentSuggestion{
			IngredientID:      ing.ID,
			Name:              ing.Name,
			Unit:              string(ing.Unit),
			TotalQuantity:     total,
			MaxQuantity:       ing.MaxQuantity,
			StockLevel:        level.Round(2),
			SuggestedQuantity: suggested,
			UnitCost:          unitCost,
			EstimatedCost:     suggested.Mul(unitCost).Round(2),
			DependentProducts: dependents[ing.ID],
			BlockedProducts:   blocked[ing.ID],
		})
	}

	// 4. Ordenar: más productos bloqueados, más productos dependientes, menor nivel, nombre.
	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if a.BlockedProducts != b.BlockedProducts {
			return a.BlockedProducts > b.BlockedProducts
		}
		if a.DependentProducts != b.DependentProducts {
			return a.DependentProducts > b.DependentProducts
		}
		if !a.StockLevel.Equal(b.StockLevel) {
			return a.StockLevel.LessThan(b.StockLevel)
		}
		return a.Name < b.Name
	})

	// 5. Asignar prioridad (1 = más urgente)
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}

	return suggestions, nil
}
