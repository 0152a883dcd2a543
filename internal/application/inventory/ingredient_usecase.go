package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pdv-api/internal/application/dto"
	"github.com/jhoicas/pdv-api/internal/domain"
	"github.com/jhoicas/pdv-api/internal/domain/entity"
	domaininv "github.com/jhoicas/pdv-api/internal/domain/inventory"
	"github.com/jhoicas/pdv-api/internal/domain/repository"
)

// IngredientUseCase alta, reposición y consulta de insumos.
type IngredientUseCase struct {
	txRunner       TxRunner
	ingredientRepo repository.IngredientRepository
}

// NewIngredientUseCase construye el caso de uso.
func NewIngredientUseCase(txRunner TxRunner, ingredientRepo repository.IngredientRepository) *IngredientUseCase {
	return &IngredientUseCase{txRunner: txRunner, ingredientRepo: ingredientRepo}
}

// Create registra un insumo. Las cantidades se guardan en la unidad base (kg -> g, l -> ml).
func (uc *IngredientUseCase) Create(ctx context.Context, in dto.CreateIngredientRequest) (*dto.IngredientResponse, error) {
	name := strings.TrimSpace(in.Name)
	unit, ok := entity.ParseUnit(in.Unit)
	if name == "" || !ok || in.MaxQuantity.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	ing := &entity.Ingredient{
		ID:          uuid.New().String(),
		Name:        name,
		Unit:        unit.Base(),
		MaxQuantity: unit.NormalizeQuantity(in.MaxQuantity),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.InitialPurchase != nil {
		purchase := *in.InitialPurchase
		if purchase.Unit == "" {
			purchase.Unit = string(unit)
		}
		if _, err := addPurchase(ing, purchase, now); err != nil {
			return nil, err
		}
	}
	if err := uc.ingredientRepo.Create(ctx, ing); err != nil {
		return nil, err
	}
	return toIngredientResponse(ing), nil
}

// AddPurchase repone un insumo agregando un lote nuevo (SELECT FOR UPDATE + Commit/Rollback).
// El promedio ponderado proyectado se calcula antes de aplicar la compra.
func (uc *IngredientUseCase) AddPurchase(ctx context.Context, ingredientID string, in dto.PurchaseRequest) (*dto.PurchaseResponse, error) {
	var out *dto.PurchaseResponse
	err := uc.txRunner.Run(ctx, func(
		ingredientRepo repository.IngredientRepository,
		_ repository.ProductRepository,
		_ repository.SaleRepository,
	) error {
		ing, err := ingredientRepo.GetForUpdate(ctx, ingredientID)
		if err != nil {
			return err
		}
		if ing == nil {
			return domain.ErrNotFound
		}
		before := ing.Clone()

		batch, err := addPurchase(ing, in, time.Now())
		if err != nil {
			return err
		}
		prevAvg := before.AverageUnitPrice()
		projected := domaininv.ProjectedAverageUnitPrice(before, batch)

		if err := ingredientRepo.Update(ctx, ing); err != nil {
			return err
		}
		out = &dto.PurchaseResponse{
			Ingredient:                *toIngredientResponse(ing),
			Batch:                     toBatchResponse(batch),
			PreviousAverageUnitPrice:  prevAvg,
			ProjectedAverageUnitPrice: projected,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID obtiene un insumo por ID.
func (uc *IngredientUseCase) GetByID(ctx context.Context, id string) (*dto.IngredientResponse, error) {
	ing, err := uc.ingredientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ing == nil {
		return nil, nil
	}
	return toIngredientResponse(ing), nil
}

// List lista todos los insumos.
func (uc *IngredientUseCase) List(ctx context.Context) ([]dto.IngredientResponse, error) {
	list, err := uc.ingredientRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.IngredientResponse, 0, len(list))
	for _, ing := range list {
		out = append(out, *toIngredientResponse(ing))
	}
	return out, nil
}

// LowStock insumos con nivel de stock (% de MaxQuantity) menor o igual a thresholdPct.
// Los insumos sin techo configurado no se reportan.
func (uc *IngredientUseCase) LowStock(ctx context.Context, thresholdPct decimal.Decimal) ([]dto.LowStockItem, error) {
	list, err := uc.ingredientRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := []dto.LowStockItem{}
	for _, ing := range list {
		if !ing.MaxQuantity.IsPositive() {
			continue
		}
		level := ing.StockLevel()
		if level.GreaterThan(thresholdPct) {
			continue
		}
		out = append(out, dto.LowStockItem{
			ID:            ing.ID,
			Name:          ing.Name,
			TotalQuantity: ing.TotalQuantity(),
			MaxQuantity:   ing.MaxQuantity,
			StockLevel:    level.Round(2),
		})
	}
	return out, nil
}

// addPurchase normaliza la compra a la unidad base del insumo y agrega el lote.
// La unidad de la compra debe ser de la misma categoría (masa, volumen o conteo).
func addPurchase(ing *entity.Ingredient, in dto.PurchaseRequest, now time.Time) (entity.PurchaseBatch, error) {
	unit := ing.Unit
	if in.Unit != "" {
		u, ok := entity.ParseUnit(in.Unit)
		if !ok || u.Category() != ing.Unit.Category() {
			return entity.PurchaseBatch{}, fmt.Errorf("%w: unidad %q no compatible con %s", domain.ErrInvalidInput, in.Unit, ing.Unit)
		}
		unit = u
	}
	date := now
	if in.PurchaseDate != nil {
		date = *in.PurchaseDate
	}
	batch, ok := ing.AddPurchase(uuid.New().String(), date, in.BuyPrice, unit.NormalizeQuantity(in.Quantity))
	if !ok {
		return entity.PurchaseBatch{}, fmt.Errorf("%w: cantidad o precio de compra inválidos", domain.ErrInvalidInput)
	}
	ing.UpdatedAt = now
	return batch, nil
}

func toBatchResponse(b entity.PurchaseBatch) dto.BatchResponse {
	return dto.BatchResponse{
		ID:               b.ID,
		PurchaseDate:     b.PurchaseDate,
		BuyPrice:         b.BuyPrice,
		OriginalQuantity: b.OriginalQuantity,
		CurrentQuantity:  b.CurrentQuantity,
		UnitPrice:        b.UnitPrice,
	}
}

func toIngredientResponse(ing *entity.Ingredient) *dto.IngredientResponse {
	batches := make([]dto.BatchResponse, 0, len(ing.Batches))
	for _, b := range ing.Batches {
		batches = append(batches, toBatchResponse(b))
	}
	return &dto.IngredientResponse{
		ID:               ing.ID,
		Name:             ing.Name,
		Unit:             string(ing.Unit),
		TotalQuantity:    ing.TotalQuantity(),
		AverageUnitPrice: ing.AverageUnitPrice(),
		TotalValue:       ing.TotalValue(),
		MaxQuantity:      ing.MaxQuantity,
		StockLevel:       ing.StockLevel().Round(2),
		Batches:          batches,
		CreatedAt:        ing.CreatedAt,
		UpdatedAt:        ing.UpdatedAt,
	}
}
