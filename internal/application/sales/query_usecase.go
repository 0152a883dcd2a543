package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/pdv-api/internal/application/dto"
	"github.com/jhoicas/pdv-api/internal/application/inventory"
	"github.com/jhoicas/pdv-api/internal/domain"
	"github.com/jhoicas/pdv-api/internal/domain/entity"
	domaininv "github.com/jhoicas/pdv-api/internal/domain/inventory"
	"github.com/jhoicas/pdv-api/internal/domain/repository"
	domainsales "github.com/jhoicas/pdv-api/internal/domain/sales"
)

// QueryUseCase lecturas sin efectos: previsualización del resumen e historial de ventas.
type QueryUseCase struct {
	productRepo    repository.ProductRepository
	ingredientRepo repository.IngredientRepository
	saleRepo       repository.SaleRepository
	fees           entity.FeeTable
}

// NewQueryUseCase construye el caso de uso.
func NewQueryUseCase(
	productRepo repository.ProductRepository,
	ingredientRepo repository.IngredientRepository,
	saleRepo repository.SaleRepository,
	fees entity.FeeTable,
) *QueryUseCase {
	return &QueryUseCase{productRepo: productRepo, ingredientRepo: ingredientRepo, saleRepo: saleRepo, fees: fees}
}

// Preview calcula ítems y resumen sin tocar stock. Las líneas que superan el máximo
// vendible actual generan un aviso, no un error (la confirmación es la que valida).
func (uc *QueryUseCase) Preview(ctx context.Context, in dto.PreviewRequest) (*dto.SalePreviewResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrEmptyCart
	}
	lines, err := aggregateLines(in.Items)
	if err != nil {
		return nil, err
	}
	method, discount, err := parsePayment(in.PaymentMethod, in.Discount)
	if err != nil {
		return nil, err
	}
	stock, err := inventory.LoadStock(ctx, uc.ingredientRepo)
	if err != nil {
		return nil, err
	}

	items := make([]entity.BatchSaleItem, 0, len(lines))
	warnings := []string{}
	for _, l := range lines {
		p, err := uc.productRepo.GetByID(ctx, l.productID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, fmt.Errorf("producto %s: %w", l.productID, domain.ErrNotFound)
		}
		if res := domaininv.ValidateBatchSale(p, l.quantity, stock); !res.IsValid {
			warnings = append(warnings, fmt.Sprintf("%s: stock insuficiente (máximo %d)", p.Name, domaininv.MaxSellableQuantity(p, stock)))
		}
		items = append(items, domaininv.ConvertToBatchSaleItem(entity.SaleItem{Product: p, Quantity: l.quantity}, nil))
	}
	resume := domainsales.CalculateSellingResume(items, method, discount, uc.fees)
	return &dto.SalePreviewResponse{
		Items:         toItemResponses(items),
		SellingResume: toResumeResponse(resume),
		Warnings:      warnings,
	}, nil
}

// GetByID obtiene una venta por ID.
func (uc *QueryUseCase) GetByID(ctx context.Context, id string) (*dto.SaleResponse, error) {
	s, err := uc.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, nil
	}
	return ToSaleResponse(s), nil
}

// List historial de ventas en el rango [from, to] (nil no filtra).
func (uc *QueryUseCase) List(ctx context.Context, from, to *time.Time) (*dto.SaleListResponse, error) {
	list, err := uc.saleRepo.List(ctx, from, to)
	if err != nil {
		return nil, err
	}
	out := &dto.SaleListResponse{Items: make([]dto.SaleResponse, 0, len(list)), Total: len(list)}
	for _, s := range list {
		out.Items = append(out.Items, *ToSaleResponse(s))
	}
	return out, nil
}
