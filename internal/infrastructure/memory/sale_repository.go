package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/pdv-api/internal/domain"
	"github.com/jhoicas/pdv-api/internal/domain/entity"
	"github.com/jhoicas/pdv-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepository)(nil)

// SaleRepository implementa repository.SaleRepository en memoria (solo se agrega).
type SaleRepository struct {
	acc access
}

func cloneSale(s *entity.Sale) *entity.Sale {
	if s == nil {
		return nil
	}
	c := *s
	c.Items = append([]entity.BatchSaleItem(nil), s.Items...)
	return &c
}

// Create agrega la venta al historial. ErrDuplicate si el ID ya existe.
func (r *SaleRepository) Create(_ context.Context, sale *entity.Sale) error {
	return r.acc.write(func(st *state) error {
		if _, ok := st.saleIndex[sale.ID]; ok {
			return domain.ErrDuplicate
		}
		st.saleIndex[sale.ID] = len(st.sales)
		st.sales = append(st.sales, cloneSale(sale))
		return nil
	})
}

// GetByID devuelve una copia o (nil, nil) si no existe.
func (r *SaleRepository) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	var out *entity.Sale
	r.acc.read(func(st *state) {
		if i, ok := st.saleIndex[id]; ok {
			out = cloneSale(st.sales[i])
		}
	})
	return out, nil
}

// List ventas en [from, to] ordenadas por fecha.
func (r *SaleRepository) List(_ context.Context, from, to *time.Time) ([]*entity.Sale, error) {
	var out []*entity.Sale
	r.acc.read(func(st *state) {
		for _, s := range st.sales {
			if from != nil && s.Date.Before(*from) {
				continue
			}
			if to != nil && s.Date.After(*to) {
				continue
			}
			out = append(out, cloneSale(s))
		}
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}
