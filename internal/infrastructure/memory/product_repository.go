package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/pdv-api/internal/domain"
	"github.com/jhoicas/pdv-api/internal/domain/entity"
	"github.com/jhoicas/pdv-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepository)(nil)

// ProductRepository implementa repository.ProductRepository en memoria.
type ProductRepository struct {
	acc access
}

// Create guarda una copia del producto. ErrDuplicate si el ID ya existe.
func (r *ProductRepository) Create(_ context.Context, p *entity.Product) error {
	return r.acc.write(func(st *state) error {
		if _, ok := st.products[p.ID]; ok {
			return domain.ErrDuplicate
		}
		st.products[p.ID] = p.Clone()
		return nil
	})
}

// GetByID devuelve una copia o (nil, nil) si no existe.
func (r *ProductRepository) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	r.acc.read(func(st *state) {
		out = st.products[id].Clone()
	})
	return out, nil
}

// GetForUpdate igual que GetByID: dentro de una tx el Store ya está bloqueado.
func (r *ProductRepository) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

// List productos ordenados por nombre.
func (r *ProductRepository) List(_ context.Context) ([]*entity.Product, error) {
	var out []*entity.Product
	r.acc.read(func(st *state) {
		out = make([]*entity.Product, 0, len(st.products))
		for _, p := range st.products {
			out = append(out, p.Clone())
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

// UpdateProducedQuantity fija unidades producidas y fecha de última producción.
func (r *ProductRepository) UpdateProducedQuantity(_ context.Context, id string, produced int, lastProduction *time.Time) error {
	return r.acc.write(func(st *state) error {
		p, ok := st.products[id]
		if !ok {
			return domain.ErrNotFound
		}
		p.Production.ProducedQuantity = produced
		if lastProduction != nil {
			t := *lastProduction
			p.Production.LastProductionDate = &t
		}
		p.UpdatedAt = time.Now()
		return nil
	})
}
