// Package sales orquesta la confirmación de ventas: validación atómica del carrito,
// descuento de stock (insumos o unidades producidas), cálculo del resumen y registro de la venta.
package sales

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pdv-api/internal/application/dto"
	"github.com/jhoicas/pdv-api/internal/application/inventory"
	"github.com/jhoicas/pdv-api/internal/domain"
	"github.com/jhoicas/pdv-api/internal/domain/entity"
	domaininv "github.com/jhoicas/pdv-api/internal/domain/inventory"
	"github.com/jhoicas/pdv-api/internal/domain/repository"
	domainsales "github.com/jhoicas/pdv-api/internal/domain/sales"
	"github.com/jhoicas/pdv-api/pkg/logger"
)

// Tipos de aviso de confirmación.
const (
	NoticeBatchSale = "batch_sale"
	NoticeSale      = "sale"
)

// ConfirmSaleUseCase confirma ventas. Todas las confirmaciones (y las producciones) comparten mu,
// y la escritura ocurre dentro de una única transacción.
type ConfirmSaleUseCase struct {
	txRunner inventory.TxRunner
	mu       sync.Locker
	fees     entity.FeeTable
	log      *logger.Logger
}

// NewConfirmSaleUseCase construye el caso de uso.
func NewConfirmSaleUseCase(txRunner inventory.TxRunner, mu sync.Locker, fees entity.FeeTable, log *logger.Logger) *ConfirmSaleUseCase {
	return &ConfirmSaleUseCase{txRunner: txRunner, mu: mu, fees: fees, log: log.Named("sales")}
}

// line línea de venta ya agregada por producto.
type line struct {
	productID string
	quantity  int
}

// Confirm valida todas las líneas antes de mutar nada. Si alguna falla devuelve
// *domain.SaleValidationError (primera línea que falla) y el stock queda intacto.
func (uc *ConfirmSaleUseCase) Confirm(ctx context.Context, in dto.CreateSaleRequest) (*dto.SaleConfirmationResponse, error) {
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

	uc.mu.Lock()
	defer uc.mu.Unlock()

	var sale *entity.Sale
	var notices []dto.SaleNotice
	err = uc.txRunner.Run(ctx, func(
		ingredientRepo repository.IngredientRepository,
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error {
		products, err := lockProducts(ctx, productRepo, lines)
		if err != nil {
			return err
		}
		ordered := make([]*entity.Product, 0, len(lines))
		for _, l := range lines {
			ordered = append(ordered, products[l.productID])
		}
		stock, err := inventory.LoadStockForUpdate(ctx, ingredientRepo, ordered...)
		if err != nil {
			return err
		}

		// Validación acumulada sobre copias: dos líneas que comparten un insumo no pueden sobrevenderlo.
		working := make(domaininv.Stock, len(stock))
		for id, ing := range stock {
			working[id] = ing.Clone()
		}
		touchedIngredients := make(map[string]struct{})
		updatedProducts := make(map[string]*entity.Product)

		for _, l := range lines {
			p := products[l.productID]
			if cur, ok := updatedProducts[p.ID]; ok {
				p = cur
			}
			if res := domaininv.ValidateBatchSale(p, l.quantity, working); !res.IsValid {
				return &domain.SaleValidationError{
					ProductID:   p.ID,
					ProductName: p.Name,
					Requested:   l.quantity,
					IsBatch:     p.IsBatch(),
					Missing:     res.MissingIngredients,
				}
			}
			plan := domaininv.PlanStockConsumption(p, l.quantity)
			if p.IsBatch() {
				reduced, clamped := domaininv.ReduceProducedQuantity(p, plan.ProducedDecrement)
				if clamped {
					uc.log.Warn().Str("product_id", p.ID).Int("sold", l.quantity).
						Msg("unidades producidas recortadas en cero")
				}
				updatedProducts[p.ID] = reduced
				continue
			}
			for _, c := range plan.Ingredients {
				ing := working[c.IngredientID]
				if used := ing.Consume(c.Quantity); used.LessThan(c.Quantity) {
					uc.log.Warn().Str("ingredient_id", ing.ID).Str("product_id", p.ID).
						Str("requested", c.Quantity.String()).Str("consumed", used.String()).
						Msg("consumo de insumo recortado en cero")
				}
				touchedIngredients[c.IngredientID] = struct{}{}
			}
		}

		// Escritura: solo se llega aquí si todas las líneas validaron.
		for _, id := range sortedKeys(touchedIngredients) {
			if err := ingredientRepo.Update(ctx, working[id]); err != nil {
				return err
			}
		}
		for _, id := range sortedKeys(updatedProducts) {
			p := updatedProducts[id]
			if err := productRepo.UpdateProducedQuantity(ctx, p.ID, p.Production.ProducedQuantity, p.Production.LastProductionDate); err != nil {
				return err
			}
		}

		items := make([]entity.BatchSaleItem, 0, len(lines))
		for _, l := range lines {
			items = append(items, domaininv.ConvertToBatchSaleItem(entity.SaleItem{Product: products[l.productID], Quantity: l.quantity}, nil))
		}
		sale = &entity.Sale{
			ID:            uuid.New().String(),
			Date:          time.Now(),
			Items:         items,
			SellingResume: domainsales.CalculateSellingResume(items, method, discount, uc.fees),
		}
		if err := saleRepo.Create(ctx, sale); err != nil {
			return fmt.Errorf("registrar venta: %w", err)
		}
		notices = buildNotices(items)
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("sale_id", sale.ID).
		Int("items", len(sale.Items)).
		Str("payment_method", string(method)).
		Str("total", sale.SellingResume.TotalValue.String()).
		Msg("venta confirmada")

	return &dto.SaleConfirmationResponse{Sale: *ToSaleResponse(sale), Notices: notices}, nil
}

// aggregateLines valida cantidades y agrupa líneas repetidas del mismo producto (orden de primera aparición).
func aggregateLines(items []dto.SaleLineRequest) ([]line, error) {
	index := make(map[string]int, len(items))
	var out []line
	for _, it := range items {
		if it.ProductID == "" {
			return nil, fmt.Errorf("%w: producto requerido", domain.ErrInvalidInput)
		}
		if it.Quantity <= 0 {
			return nil, fmt.Errorf("%w: cantidad inválida para %s", domain.ErrInvalidInput, it.ProductID)
		}
		if i, ok := index[it.ProductID]; ok {
			if out[i].quantity > math.MaxInt-it.Quantity {
				return nil, fmt.Errorf("%w: cantidad total excesiva para %s", domain.ErrInvalidInput, it.ProductID)
			}
			out[i].quantity += it.Quantity
			continue
		}
		index[it.ProductID] = len(out)
		out = append(out, line{productID: it.ProductID, quantity: it.Quantity})
	}
	return out, nil
}

// parsePayment valida medio de pago y descuento. Tipo vacío = sin descuento.
func parsePayment(method string, d dto.DiscountRequest) (entity.PaymentMethod, entity.Discount, error) {
	pm := entity.PaymentMethod(method)
	if !pm.Valid() {
		return "", entity.Discount{}, fmt.Errorf("%w: medio de pago %q", domain.ErrInvalidInput, method)
	}
	discount := entity.Discount{Type: entity.DiscountType(d.Type), Value: d.Value}
	switch discount.Type {
	case "":
		discount.Value = decimal.Zero
	case entity.DiscountPercentage, entity.DiscountFixed:
		if d.Value.IsNegative() {
			return "", entity.Discount{}, fmt.Errorf("%w: descuento negativo", domain.ErrInvalidInput)
		}
	default:
		return "", entity.Discount{}, fmt.Errorf("%w: tipo de descuento %q", domain.ErrInvalidInput, d.Type)
	}
	return pm, discount, nil
}

// lockProducts bloquea los productos en orden de ID. Un producto inexistente aborta con ErrNotFound.
func lockProducts(ctx context.Context, repo repository.ProductRepository, lines []line) (map[string]*entity.Product, error) {
	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.productID)
	}
	sort.Strings(ids)
	out := make(map[string]*entity.Product, len(ids))
	for _, id := range ids {
		p, err := repo.GetForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, fmt.Errorf("producto %s: %w", id, domain.ErrNotFound)
		}
		out[id] = p
	}
	return out, nil
}

func buildNotices(items []entity.BatchSaleItem) []dto.SaleNotice {
	out := make([]dto.SaleNotice, 0, len(items))
	for _, it := range items {
		n := dto.SaleNotice{
			Kind:        NoticeSale,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			Message:     fmt.Sprintf("Venta registrada: %d x %s", it.Quantity, it.ProductName),
		}
		if it.IsBatchSale {
			n.Kind = NoticeBatchSale
			n.YieldQuantity = it.BatchYieldQuantity
			n.Message = fmt.Sprintf("Venta por lote registrada: %s, %d de %d unidades", it.ProductName, it.BatchSoldQuantity, it.BatchYieldQuantity)
		}
		out = append(out, n)
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
