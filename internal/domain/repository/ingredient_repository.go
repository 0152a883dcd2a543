package repository

import (
	"context"

	"github.com/jhoicas/pdv-api/internal/domain/entity"
)

// IngredientRepository define el puerto de persistencia para insumos y sus lotes de compra.
// GetByID y GetForUpdate devuelven (nil, nil) si el insumo no existe.
type IngredientRepository interface {
	Create(ctx context.Context, ingredient *entity.Ingredient) error
	GetByID(ctx context.Context, id string) (*entity.Ingredient, error)
	// GetForUpdate bloquea el insumo y sus lotes hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Ingredient, error)
	List(ctx context.Context) ([]*entity.Ingredient, error)
	// Update persiste nombre, techo y el estado de todos los lotes (los nuevos se insertan).
	Update(ctx context.Context, ingredient *entity.Ingredient) error
}
