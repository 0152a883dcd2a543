package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pdv-api/internal/domain"
	"github.com/jhoicas/pdv-api/internal/domain/entity"
	"github.com/jhoicas/pdv-api/internal/domain/repository"
)

var _ repository.IngredientRepository = (*IngredientRepo)(nil)

// IngredientRepo implementación de IngredientRepository sobre PostgreSQL (usable con pool o tx).
// Los lotes se guardan en purchase_batches; seq conserva el orden FIFO.
type IngredientRepo struct {
	q Querier
}

// NewIngredientRepository construye el adaptador de insumos. Pasar pool o tx (Querier).
func NewIngredientRepository(q Querier) *IngredientRepo {
	return &IngredientRepo{q: q}
}

const ingredientColumns = `id, name, unit, max_quantity, created_at, updated_at`

// Create inserta el insumo y sus lotes iniciales.
func (r *IngredientRepo) Create(ctx context.Context, ing *entity.Ingredient) error {
	query := `
		INSERT INTO ingredients (id, name, unit, max_quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, ing.ID, ing.Name, string(ing.Unit), ing.MaxQuantity, ing.CreatedAt, ing.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert ingredient: %w", err)
	}
	return r.upsertBatches(ctx, ing)
}

// GetByID obtiene el insumo con sus lotes. (nil, nil) si no existe.
func (r *IngredientRepo) GetByID(ctx context.Context, id string) (*entity.Ingredient, error) {
	return r.get(ctx, `SELECT `+ingredientColumns+` FROM ingredients WHERE id = $1`, id, false)
}

// GetForUpdate obtiene el insumo y bloquea su fila y la de sus lotes (SELECT FOR UPDATE).
func (r *IngredientRepo) GetForUpdate(ctx context.Context, id string) (*entity.Ingredient, error) {
	return r.get(ctx, `SELECT `+ingredientColumns+` FROM ingredients WHERE id = $1 FOR UPDATE`, id, true)
}

func (r *IngredientRepo) get(ctx context.Context, query, id string, lock bool) (*entity.Ingredient, error) {
	ing, err := scanIngredient(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ingredient: %w", err)
	}
	batchQuery := `
		SELECT id, purchase_date, buy_price, original_quantity, current_quantity, unit_price
		FROM purchase_batches WHERE ingredient_id = $1 ORDER BY seq`
	if lock {
		batchQuery += ` FOR UPDATE`
	}
	rows, err := r.q.Query(ctx, batchQuery, id)
	if err != nil {
		return nil, fmt.Errorf("get batches: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var b entity.PurchaseBatch
		if err := rows.Scan(&b.ID, &b.PurchaseDate, &b.BuyPrice, &b.OriginalQuantity, &b.CurrentQuantity, &b.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		ing.Batches = append(ing.Batches, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ing, nil
}

// List insumos con sus lotes, ordenados por nombre.
func (r *IngredientRepo) List(ctx context.Context) ([]*entity.Ingredient, error) {
	rows, err := r.q.Query(ctx, `SELECT `+ingredientColumns+` FROM ingredients ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	var list []*entity.Ingredient
	index := make(map[string]*entity.Ingredient)
	for rows.Next() {
		ing, err := scanIngredient(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan ingredient: %w", err)
		}
		list = append(list, ing)
		index[ing.ID] = ing
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	batchRows, err := r.q.Query(ctx, `
		SELECT ingredient_id, id, purchase_date, buy_price, original_quantity, current_quantity, unit_price
		FROM purchase_batches ORDER BY ingredient_id, seq`)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer batchRows.Close()
	for batchRows.Next() {
		var ingredientID string
		var b entity.PurchaseBatch
		if err := batchRows.Scan(&ingredientID, &b.ID, &b.PurchaseDate, &b.BuyPrice, &b.OriginalQuantity, &b.CurrentQuantity, &b.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		if ing, ok := index[ingredientID]; ok {
			ing.Batches = append(ing.Batches, b)
		}
	}
	return list, batchRows.Err()
}

// Update persiste nombre, techo y lotes (los nuevos se insertan, los existentes actualizan su cantidad).
func (r *IngredientRepo) Update(ctx context.Context, ing *entity.Ingredient) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE ingredients SET name = $2, max_quantity = $3, updated_at = now()
		WHERE id = $1`, ing.ID, ing.Name, ing.MaxQuantity)
	if err != nil {
		return fmt.Errorf("update ingredient: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return r.upsertBatches(ctx, ing)
}

func (r *IngredientRepo) upsertBatches(ctx context.Context, ing *entity.Ingredient) error {
	if len(ing.Batches) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, b := range ing.Batches {
		batch.Queue(`
			INSERT INTO purchase_batches (id, ingredient_id, purchase_date, buy_price, original_quantity, current_quantity, unit_price)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (id) DO UPDATE SET current_quantity = EXCLUDED.current_quantity`,
			b.ID, ing.ID, b.PurchaseDate, b.BuyPrice, b.OriginalQuantity, b.CurrentQuantity, b.UnitPrice)
	}
	br := r.q.SendBatch(ctx, batch)
	defer br.Close()
	for range ing.Batches {
		if _, err := br.Exec(); err != nil {
			if isCheckViolation(err) {
				return fmt.Errorf("%w: cantidad de lote inválida", domain.ErrConflict)
			}
			return fmt.Errorf("upsert batch: %w", err)
		}
	}
	return nil
}

func scanIngredient(row pgx.Row) (*entity.Ingredient, error) {
	var ing entity.Ingredient
	var unit string
	if err := row.Scan(&ing.ID, &ing.Name, &unit, &ing.MaxQuantity, &ing.CreatedAt, &ing.UpdatedAt); err != nil {
		return nil, err
	}
	ing.Unit = entity.Unit(unit)
	return &ing, nil
}
