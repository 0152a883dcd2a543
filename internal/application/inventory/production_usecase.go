package inventory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/pdv-api/internal/application/dto"
	"github.com/jhoicas/pdv-api/internal/domain"
	"github.com/jhoicas/pdv-api/internal/domain/entity"
	domaininv "github.com/jhoicas/pdv-api/internal/domain/inventory"
	"github.com/jhoicas/pdv-api/internal/domain/repository"
	"github.com/jhoicas/pdv-api/pkg/logger"
)

// ProductionUseCase produce lotes de un producto: descuenta insumos (FIFO) y suma unidades producidas.
// Comparte el mutex con la confirmación de ventas para no intercalarse con ellas.
type ProductionUseCase struct {
	txRunner TxRunner
	mu       sync.Locker
	log      *logger.Logger
}

// NewProductionUseCase construye el caso de uso.
func NewProductionUseCase(txRunner TxRunner, mu sync.Locker, log *logger.Logger) *ProductionUseCase {
	return &ProductionUseCase{txRunner: txRunner, mu: mu, log: log.Named("production")}
}

// Produce valida y produce batches lotes del producto. Todo o nada.
func (uc *ProductionUseCase) Produce(ctx context.Context, productID string, batches int) (*dto.ProduceBatchResponse, error) {
	if batches <= 0 {
		return nil, fmt.Errorf("%w: cantidad de lotes inválida", domain.ErrInvalidInput)
	}
	uc.mu.Lock()
	defer uc.mu.Unlock()

	var out *dto.ProduceBatchResponse
	err := uc.txRunner.Run(ctx, func(
		ingredientRepo repository.IngredientRepository,
		productRepo repository.ProductRepository,
		_ repository.SaleRepository,
	) error {
		product, err := productRepo.GetForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if !product.IsBatch() {
			return domain.ErrNotBatchProduct
		}
		stock, err := LoadStockForUpdate(ctx, ingredientRepo, product)
		if err != nil {
			return err
		}
		plan, res := domaininv.ProduceBatch(product, batches, stock)
		if !res.IsValid {
			return &domain.SaleValidationError{
				ProductID:   product.ID,
				ProductName: product.Name,
				Requested:   batches,
				IsBatch:     true,
				Missing:     res.MissingIngredients,
			}
		}

		for _, c := range plan.Consumptions {
			ing := stock[c.IngredientID]
			if used := ing.Consume(c.Quantity); used.LessThan(c.Quantity) {
				uc.log.Warn().
					Str("ingredient_id", ing.ID).
					Str("requested", c.Quantity.String()).
					Str("consumed", used.String()).
					Msg("consumo de insumo recortado en cero")
			}
			if err := ingredientRepo.Update(ctx, ing); err != nil {
				return err
			}
		}

		updated := domaininv.UpdateProducedQuantity(product, plan.ProducedIncrement, time.Now())
		if err := productRepo.UpdateProducedQuantity(ctx, updated.ID, updated.Production.ProducedQuantity, updated.Production.LastProductionDate); err != nil {
			return err
		}

		out = &dto.ProduceBatchResponse{
			Product:           *ToProductResponse(updated),
			Batches:           batches,
			ProducedIncrement: plan.ProducedIncrement,
			Consumptions:      toConsumptionResponses(plan.Consumptions),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("product_id", productID).
		Int("batches", batches).
		Int("produced_increment", out.ProducedIncrement).
		Msg("lote producido")
	return out, nil
}

func toConsumptionResponses(list []domaininv.IngredientConsumption) []dto.ConsumptionResponse {
	out := make([]dto.ConsumptionResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.ConsumptionResponse{IngredientID: c.IngredientID, Name: c.Name, Quantity: c.Quantity})
	}
	return out
}

// ToProductResponse mapea un producto a su DTO.
func ToProductResponse(p *entity.Product) *dto.ProductResponse {
	reqs := make([]dto.RequirementResponse, 0, len(p.Requirements))
	for _, r := range p.Requirements {
		reqs = append(reqs, dto.RequirementResponse{
			IngredientID:     r.IngredientID,
			Name:             r.Name,
			Unit:             string(r.Unit),
			Quantity:         r.Quantity,
			AverageUnitPrice: r.AverageUnitPrice,
			TotalValue:       r.TotalValue,
		})
	}
	pr := p.Production
	return &dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Category:    p.Category,
		Ingredients: reqs,
		Production: dto.ProductionResponse{
			Mode:               string(pr.Mode),
			TotalCost:          pr.TotalCost,
			UnitCost:           pr.UnitCost,
			SellingPrice:       pr.SellingPrice,
			UnitSellingPrice:   pr.UnitSellingPrice,
			UnitMargin:         pr.UnitMargin,
			ProfitMargin:       pr.ProfitMargin,
			YieldQuantity:      pr.YieldQuantity,
			ProducedQuantity:   pr.ProducedQuantity,
			LastProductionDate: pr.LastProductionDate,
		},
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
