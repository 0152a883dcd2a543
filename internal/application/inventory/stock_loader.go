package inventory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/pdv-api/internal/domain/entity"
	domaininv "github.com/jhoicas/pdv-api/internal/domain/inventory"
	"github.com/jhoicas/pdv-api/internal/domain/repository"
)

// LoadStockForUpdate bloquea y carga los insumos requeridos por products.
// Los IDs se recorren ordenados para que dos transacciones tomen los bloqueos en el mismo orden.
// Los insumos inexistentes simplemente no aparecen en el Stock (la validación los reporta).
func LoadStockForUpdate(ctx context.Context, repo repository.IngredientRepository, products ...*entity.Product) (domaininv.Stock, error) {
	seen := make(map[string]struct{})
	var ids []string
	for _, p := range products {
		if p == nil {
			continue
		}
		for _, r := range p.Requirements {
			if _, ok := seen[r.IngredientID]; ok {
				continue
			}
			seen[r.IngredientID] = struct{}{}
			ids = append(ids, r.IngredientID)
		}
	}
	sort.Strings(ids)

	stock := make(domaininv.Stock, len(ids))
	for _, id := range ids {
		ing, err := repo.GetForUpdate(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("bloquear insumo %s: %w", id, err)
		}
		if ing != nil {
			stock[id] = ing
		}
	}
	return stock, nil
}

// LoadStock lectura sin bloqueo de todo el stock (consultas de disponibilidad, advisory).
func LoadStock(ctx context.Context, repo repository.IngredientRepository) (domaininv.Stock, error) {
	list, err := repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return domaininv.NewStock(list), nil
}
