package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/pdv-api/internal/domain"
	"github.com/jhoicas/pdv-api/internal/domain/entity"
	"github.com/jhoicas/pdv-api/internal/domain/repository"
)

var _ repository.IngredientRepository = (*IngredientRepository)(nil)

// IngredientRepository implementa repository.IngredientRepository en memoria.
type IngredientRepository struct {
	acc access
}

// Create guarda una copia del insumo. ErrDuplicate si el ID ya existe.
func (r *IngredientRepository) Create(_ context.Context, ing *entity.Ingredient) error {
	return r.acc.write(func(st *state) error {
		if _, ok := st.ingredients[ing.ID]; ok {
			return domain.ErrDuplicate
		}
		st.ingredients[ing.ID] = ing.Clone()
		return nil
	})
}

// GetByID devuelve una copia o (nil, nil) si no existe.
func (r *IngredientRepository) GetByID(_ context.Context, id string) (*entity.Ingredient, error) {
	var out *entity.Ingredient
	r.acc.read(func(st *state) {
		out = st.ingredients[id].Clone()
	})
	return out, nil
}

// GetForUpdate igual que GetByID: dentro de una tx el Store ya está bloqueado.
func (r *IngredientRepository) GetForUpdate(ctx context.Context, id string) (*entity.Ingredient, error) {
	return r.GetByID(ctx, id)
}

// List insumos ordenados por nombre.
func (r *IngredientRepository) List(_ context.Context) ([]*entity.Ingredient, error) {
	var out []*entity.Ingredient
	r.acc.read(func(st *state) {
		out = make([]*entity.Ingredient, 0, len(st.ingredients))
		for _, ing := range st.ingredients {
			out = append(out, ing.Clone())
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Update reemplaza el insumo. ErrNotFound si no existe.
func (r *IngredientRepository) Update(_ context.Context, ing *entity.Ingredient) error {
	return r.acc.write(func(st *state) error {
		if _, ok := st.ingredients[ing.ID]; !ok {
			return domain.ErrNotFound
		}
		st.ingredients[ing.ID] = ing.Clone()
		return nil
	})
}
