package repository

import (
	"context"
	"time"

	"github.com/jhoicas/pdv-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID y GetForUpdate devuelven (nil, nil) si el producto no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate bloquea el producto hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context) ([]*entity.Product, error)
	// UpdateProducedQuantity único campo que el motor de ventas/producción muta.
	UpdateProducedQuantity(ctx context.Context, id string, produced int, lastProduction *time.Time) error
}
