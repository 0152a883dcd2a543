package sales

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pdv-api/internal/application/dto"
	"github.com/jhoicas/pdv-api/internal/application/inventory"
	"github.com/jhoicas/pdv-api/internal/domain"
	"github.com/jhoicas/pdv-api/internal/domain/entity"
	domaininv "github.com/jhoicas/pdv-api/internal/domain/inventory"
	"github.com/jhoicas/pdv-api/internal/domain/repository"
)

// SaleConfirmer confirma una venta con líneas explícitas.
type SaleConfirmer interface {
	Confirm(ctx context.Context, in dto.CreateSaleRequest) (*dto.SaleConfirmationResponse, error)
}

// CartUseCase carrito único del punto de venta. Los topes contra el máximo vendible
// son orientativos; la confirmación vuelve a validar todo.
type CartUseCase struct {
	mu             sync.Mutex
	cart           entity.Cart
	productRepo    repository.ProductRepository
	ingredientRepo repository.IngredientRepository
	confirmer      SaleConfirmer
}

// NewCartUseCase construye el caso de uso con un carrito vacío.
func NewCartUseCase(productRepo repository.ProductRepository, ingredientRepo repository.IngredientRepository, confirmer SaleConfirmer) *CartUseCase {
	return &CartUseCase{productRepo: productRepo, ingredientRepo: ingredientRepo, confirmer: confirmer}
}

// AddItem suma quantity unidades del producto, recortando al máximo vendible actual.
func (uc *CartUseCase) AddItem(ctx context.Context, in dto.AddCartItemRequest) (*dto.CartResponse, error) {
	if in.ProductID == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	uc.mu.Lock()
	defer uc.mu.Unlock()
	current := uc.cart.QuantityOf(in.ProductID)
	if current > math.MaxInt-in.Quantity {
		return nil, fmt.Errorf("%w: cantidad total excesiva para %s", domain.ErrInvalidInput, in.ProductID)
	}
	return uc.set(ctx, in.ProductID, current+in.Quantity)
}

// SetQuantity fija la cantidad del producto; 0 lo quita del carrito.
func (uc *CartUseCase) SetQuantity(ctx context.Context, productID string, in dto.SetCartItemRequest) (*dto.CartResponse, error) {
	if productID == "" || in.Quantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if in.Quantity == 0 {
		uc.cart.Remove(productID)
		uc.cart.UpdatedAt = time.Now()
		return uc.view(ctx, false)
	}
	return uc.set(ctx, productID, in.Quantity)
}

// RemoveItem quita el producto del carrito. ErrNotFound si no estaba.
func (uc *CartUseCase) RemoveItem(ctx context.Context, productID string) (*dto.CartResponse, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if !uc.cart.Remove(productID) {
		return nil, domain.ErrNotFound
	}
	uc.cart.UpdatedAt = time.Now()
	return uc.view(ctx, false)
}

// Clear vacía el carrito.
func (uc *CartUseCase) Clear() {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.cart.Clear()
	uc.cart.UpdatedAt = time.Now()
}

// View estado actual del carrito.
func (uc *CartUseCase) View(ctx context.Context) (*dto.CartResponse, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.view(ctx, false)
}

// Lines líneas actuales en formato de venta explícita.
func (uc *CartUseCase) Lines() []dto.SaleLineRequest {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.lines()
}

// Checkout confirma el contenido del carrito y lo vacía solo si la venta se registró.
func (uc *CartUseCase) Checkout(ctx context.Context, in dto.CheckoutRequest) (*dto.SaleConfirmationResponse, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.cart.IsEmpty() {
		return nil, domain.ErrEmptyCart
	}
	out, err := uc.confirmer.Confirm(ctx, dto.CreateSaleRequest{
		Items:         uc.lines(),
		PaymentMethod: in.PaymentMethod,
		Discount:      in.Discount,
	})
	if err != nil {
		return nil, err
	}
	uc.cart.Clear()
	uc.cart.UpdatedAt = time.Now()
	return out, nil
}

func (uc *CartUseCase) lines() []dto.SaleLineRequest {
	out := make([]dto.SaleLineRequest, 0, len(uc.cart.Lines))
	for _, l := range uc.cart.Lines {
		out = append(out, dto.SaleLineRequest{ProductID: l.ProductID, Quantity: l.Quantity})
	}
	return out
}

// set fija desired unidades con tope en el máximo vendible. Sin stock devuelve el detalle de faltantes.
func (uc *CartUseCase) set(ctx context.Context, productID string, desired int) (*dto.CartResponse, error) {
	p, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	stock, err := inventory.LoadStock(ctx, uc.ingredientRepo)
	if err != nil {
		return nil, err
	}
	maxQty := domaininv.MaxSellableQuantity(p, stock)
	if maxQty == 0 {
		res := domaininv.ValidateBatchSale(p, desired, stock)
		return nil, &domain.SaleValidationError{
			ProductID:   p.ID,
			ProductName: p.Name,
			Requested:   desired,
			IsBatch:     p.IsBatch(),
			Missing:     res.MissingIngredients,
		}
	}
	capped := false
	if desired > maxQty {
		desired = maxQty
		capped = true
	}
	uc.cart.Set(productID, desired)
	uc.cart.UpdatedAt = time.Now()
	return uc.view(ctx, capped)
}

func (uc *CartUseCase) view(ctx context.Context, capped bool) (*dto.CartResponse, error) {
	stock, err := inventory.LoadStock(ctx, uc.ingredientRepo)
	if err != nil {
		return nil, err
	}
	out := &dto.CartResponse{
		Lines:     make([]dto.CartLineResponse, 0, len(uc.cart.Lines)),
		Subtotal:  decimal.Zero,
		Capped:    capped,
		UpdatedAt: uc.cart.UpdatedAt,
	}
	for _, l := range uc.cart.Lines {
		p, err := uc.productRepo.GetByID(ctx, l.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			continue
		}
		sub := p.Production.UnitSellingPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
		out.Lines = append(out.Lines, dto.CartLineResponse{
			ProductID:   p.ID,
			ProductName: p.Name,
			Quantity:    l.Quantity,
			UnitPrice:   p.Production.UnitSellingPrice,
			Subtotal:    sub,
			MaxSellable: domaininv.MaxSellableQuantity(p, stock),
		})
		out.Subtotal = out.Subtotal.Add(sub)
	}
	return out, nil
}
