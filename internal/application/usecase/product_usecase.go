package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/pdv-api/internal/application/dto"
	"github.com/jhoicas/pdv-api/internal/application/inventory"
	"github.com/jhoicas/pdv-api/internal/domain"
	"github.com/jhoicas/pdv-api/internal/domain/entity"
	domaininv "github.com/jhoicas/pdv-api/internal/domain/inventory"
	"github.com/jhoicas/pdv-api/internal/domain/repository"
)

// ProductUseCase alta y consulta de productos. Los requerimientos se congelan al crear;
// después solo cambia ProducedQuantity (vía producción y ventas).
type ProductUseCase struct {
	repo           repository.ProductRepository
	ingredientRepo repository.IngredientRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, ingredientRepo repository.IngredientRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, ingredientRepo: ingredientRepo}
}

// Create crea un producto tomando una foto de los insumos al precio promedio actual.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	mode := entity.ProductionMode(in.Mode)
	if name == "" || !mode.Valid() || in.UnitSellingPrice.IsNegative() || len(in.Ingredients) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if mode == entity.ModeBatch && in.YieldQuantity < 1 {
		return nil, fmt.Errorf("%w: un producto por lote requiere rendimiento >= 1", domain.ErrInvalidInput)
	}

	existing, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range existing {
		if strings.EqualFold(p.Name, name) {
			return nil, domain.ErrDuplicate
		}
	}

	reqs := make([]entity.IngredientRequirement, 0, len(in.Ingredients))
	seen := make(map[string]struct{}, len(in.Ingredients))
	for _, r := range in.Ingredients {
		if _, dup := seen[r.IngredientID]; dup {
			return nil, fmt.Errorf("%w: insumo %s repetido", domain.ErrInvalidInput, r.IngredientID)
		}
		seen[r.IngredientID] = struct{}{}
		if !r.Quantity.IsPositive() {
			return nil, fmt.Errorf("%w: cantidad de insumo debe ser positiva", domain.ErrInvalidInput)
		}
		ing, err := uc.ingredientRepo.GetByID(ctx, r.IngredientID)
		if err != nil {
			return nil, err
		}
		if ing == nil {
			return nil, fmt.Errorf("insumo %s: %w", r.IngredientID, domain.ErrNotFound)
		}
		qty := r.Quantity
		if r.Unit != "" {
			u, ok := entity.ParseUnit(r.Unit)
			if !ok || u.Category() != ing.Unit.Category() {
				return nil, fmt.Errorf("%w: unidad %q no compatible con %s", domain.ErrInvalidInput, r.Unit, ing.Unit)
			}
			qty = u.NormalizeQuantity(qty)
		}
		reqs = append(reqs, domaininv.SnapshotRequirement(ing, qty))
	}

	now := time.Now()
	product := &entity.Product{
		ID:           uuid.New().String(),
		Name:         name,
		Category:     strings.TrimSpace(in.Category),
		Requirements: reqs,
		Production:   domaininv.CalculateProductionCosts(reqs, mode, in.YieldQuantity, in.UnitSellingPrice),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return inventory.ToProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return inventory.ToProductResponse(product), nil
}

// List lista todos los productos.
func (uc *ProductUseCase) List(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *inventory.ToProductResponse(p))
	}
	return out, nil
}
