package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrEmptyCart         = errors.New("el carrito está vacío")
	ErrNotBatchProduct   = errors.New("el producto no se produce por lote")
)

// SaleValidationError detalle de una validación de stock fallida para un producto.
// En productos individuales Missing lista los nombres de los insumos faltantes;
// en productos por lote contiene un mensaje con disponibles/solicitadas.
type SaleValidationError struct {
	ProductID   string
	ProductName string
	Requested   int
	IsBatch     bool
	Missing     []string
}

func (e *SaleValidationError) Error() string {
	return fmt.Sprintf("stock insuficiente para %s (%d): %s", e.ProductName, e.Requested, strings.Join(e.Missing, ", "))
}

// Unwrap permite errors.Is(err, ErrInsufficientStock).
func (e *SaleValidationError) Unwrap() error { return ErrInsufficientStock }
