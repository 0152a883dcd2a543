package repository

import (
	"context"
	"time"

	"github.com/jhoicas/pdv-api/internal/domain/entity"
)

// SaleRepository historial de ventas (solo se agrega).
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	// List ventas ordenadas por fecha; from/to nil no filtran (rango inclusivo).
	List(ctx context.Context, from, to *time.Time) ([]*entity.Sale, error)
}
