package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pdv-api/internal/domain"
	"github.com/jhoicas/pdv-api/internal/domain/entity"
	"github.com/jhoicas/pdv-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, name, category, mode, total_cost, unit_cost, selling_price, unit_selling_price,
	unit_margin, profit_margin, yield_quantity, produced_quantity, last_production_date, created_at, updated_at`

// Create persiste el producto y la foto de sus requerimientos.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	pr := p.Production
	_, err := r.q.Exec(ctx, `
		INSERT INTO products (`+productColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		p.ID, p.Name, p.Category, string(pr.Mode), pr.TotalCost, pr.UnitCost, pr.SellingPrice, pr.UnitSellingPrice,
		pr.UnitMargin, pr.ProfitMargin, pr.YieldQuantity, pr.ProducedQuantity, pr.LastProductionDate, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	if len(p.Requirements) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for i, req := range p.Requirements {
		batch.Queue(`
			INSERT INTO product_requirements (product_id, position, ingredient_id, name, unit, quantity, average_unit_price, total_value)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			p.ID, i, req.IngredientID, req.Name, string(req.Unit), req.Quantity, req.AverageUnitPrice, req.TotalValue)
	}
	br := r.q.SendBatch(ctx, batch)
	defer br.Close()
	for range p.Requirements {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("insert requirement: %w", err)
		}
	}
	return nil
}

// GetByID obtiene un producto por ID. (nil, nil) si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.get(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// GetForUpdate obtiene el producto y bloquea la fila (SELECT FOR UPDATE).
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.get(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id)
}

func (r *ProductRepo) get(ctx context.Context, query, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	reqs, err := r.requirements(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	p.Requirements = reqs[id]
	return p, nil
}

// List productos ordenados por nombre.
func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	var list []*entity.Product
	var ids []string
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
		ids = append(ids, p.ID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return list, nil
	}
	reqs, err := r.requirements(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, p := range list {
		p.Requirements = reqs[p.ID]
	}
	return list, nil
}

// UpdateProducedQuantity fija unidades producidas y, si se indica, la fecha de última producción.
func (r *ProductRepo) UpdateProducedQuantity(ctx context.Context, id string, produced int, lastProduction *time.Time) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE products
		SET produced_quantity = $2,
		    last_production_date = COALESCE($3, last_production_date),
		    updated_at = now()
		WHERE id = $1`, id, produced, lastProduction)
	if err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("%w: unidades producidas negativas", domain.ErrConflict)
		}
		return fmt.Errorf("update produced quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProductRepo) requirements(ctx context.Context, productIDs []string) (map[string][]entity.IngredientRequirement, error) {
	rows, err := r.q.Query(ctx, `
		SELECT product_id, ingredient_id, name, unit, quantity, average_unit_price, total_value
		FROM product_requirements WHERE product_id = ANY($1) ORDER BY product_id, position`, productIDs)
	if err != nil {
		return nil, fmt.Errorf("get requirements: %w", err)
	}
	defer rows.Close()
	out := make(map[string][]entity.IngredientRequirement, len(productIDs))
	for rows.Next() {
		var productID, unit string
		var req entity.IngredientRequirement
		if err := rows.Scan(&productID, &req.IngredientID, &req.Name, &unit, &req.Quantity, &req.AverageUnitPrice, &req.TotalValue); err != nil {
			return nil, fmt.Errorf("scan requirement: %w", err)
		}
		req.Unit = entity.Unit(unit)
		out[productID] = append(out[productID], req)
	}
	return out, rows.Err()
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var mode string
	pr := &p.Production
	err := row.Scan(
		&p.ID, &p.Name, &p.Category, &mode, &pr.TotalCost, &pr.UnitCost, &pr.SellingPrice, &pr.UnitSellingPrice,
		&pr.UnitMargin, &pr.ProfitMargin, &pr.YieldQuantity, &pr.ProducedQuantity, &pr.LastProductionDate, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	pr.Mode = entity.ProductionMode(mode)
	return &p, nil
}
