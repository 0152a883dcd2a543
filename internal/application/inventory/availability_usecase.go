package inventory

import (
	"context"

	"github.com/jhoicas/pdv-api/internal/application/dto"
	"github.com/jhoicas/pdv-api/internal/domain"
	domaininv "github.com/jhoicas/pdv-api/internal/domain/inventory"
	"github.com/jhoicas/pdv-api/internal/domain/repository"
)

// AvailabilityUseCase consultas de disponibilidad sin bloqueo. El resultado es orientativo:
// la confirmación de la venta vuelve a validar.
type AvailabilityUseCase struct {
	productRepo    repository.ProductRepository
	ingredientRepo repository.IngredientRepository
}

// NewAvailabilityUseCase construye el caso de uso.
func NewAvailabilityUseCase(productRepo repository.ProductRepository, ingredientRepo repository.IngredientRepository) *AvailabilityUseCase {
	return &AvailabilityUseCase{productRepo: productRepo, ingredientRepo: ingredientRepo}
}

// Check máximo vendible del producto y validación de requested unidades (requested <= 0 solo consulta el máximo).
func (uc *AvailabilityUseCase) Check(ctx context.Context, productID string, requested int) (*dto.AvailabilityResponse, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	stock, err := LoadStock(ctx, uc.ingredientRepo)
	if err != nil {
		return nil, err
	}
	out := &dto.AvailabilityResponse{
		ProductID:            product.ID,
		Mode:                 string(product.Production.Mode),
		MaxSellableQuantity:  domaininv.MaxSellableQuantity(product, stock),
		RequestedQuantity:    requested,
		IsValid:              true,
		MissingIngredients:   []string{},
		MaxProducibleBatches: domaininv.MaxProducibleBatches(product, stock),
	}
	if requested > 0 {
		res := domaininv.ValidateBatchSale(product, requested, stock)
		out.IsValid = res.IsValid
		if len(res.MissingIngredients) > 0 {
			out.MissingIngredients = res.MissingIngredients
		}
	}
	return out, nil
}
