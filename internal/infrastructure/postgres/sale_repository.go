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

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo historial de ventas sobre PostgreSQL (solo inserción y lectura).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de ventas. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleColumns = `id, date, payment_method, subtotal, discount_type, discount_value, discount_amount,
	fee_percentage, fees, total_value, total_cost, profit`

// Create inserta la venta y sus ítems en un solo batch.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	res := s.SellingResume
	batch := &pgx.Batch{}
	batch.Queue(`
		INSERT INTO sales (`+saleColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		s.ID, s.Date, string(res.PaymentMethod), res.Subtotal, string(res.DiscountType), res.DiscountValue, res.DiscountAmount,
		res.FeePercentage, res.Fees, res.TotalValue, res.TotalCost, res.Profit,
	)
	for i, it := range s.Items {
		batch.Queue(`
			INSERT INTO sale_items (sale_id, position, product_id, product_name, quantity, unit_price, subtotal,
				is_batch_sale, batch_yield_quantity, batch_sold_quantity, batch_remaining_quantity, proportional_cost)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
			s.ID, i, it.ProductID, it.ProductName, it.Quantity, it.UnitPrice, it.Subtotal,
			it.IsBatchSale, it.BatchYieldQuantity, it.BatchSoldQuantity, it.BatchRemainingQuantity, it.ProportionalCost,
		)
	}
	br := r.q.SendBatch(ctx, batch)
	defer br.Close()
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			if isUniqueViolation(err) {
				return domain.ErrDuplicate
			}
			return fmt.Errorf("insert sale: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una venta con sus ítems. (nil, nil) si no existe.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	s, err := scanSale(r.q.QueryRow(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	items, err := r.items(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	s.Items = items[id]
	return s, nil
}

// List ventas en [from, to] ordenadas por fecha; nil no filtra.
func (r *SaleRepo) List(ctx context.Context, from, to *time.Time) ([]*entity.Sale, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+saleColumns+` FROM sales
		WHERE ($1::timestamptz IS NULL OR date >= $1)
		  AND ($2::timestamptz IS NULL OR date <= $2)
		ORDER BY date, id`, from, to)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	var list []*entity.Sale
	var ids []string
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, s)
		ids = append(ids, s.ID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return list, nil
	}
	items, err := r.items(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, s := range list {
		s.Items = items[s.ID]
	}
	return list, nil
}

func (r *SaleRepo) items(ctx context.Context, saleIDs []string) (map[string][]entity.BatchSaleItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT sale_id, product_id, product_name, quantity, unit_price, subtotal,
			is_batch_sale, batch_yield_quantity, batch_sold_quantity, batch_remaining_quantity, proportional_cost
		FROM sale_items WHERE sale_id = ANY($1) ORDER BY sale_id, position`, saleIDs)
	if err != nil {
		return nil, fmt.Errorf("get sale items: %w", err)
	}
	defer rows.Close()
	out := make(map[string][]entity.BatchSaleItem, len(saleIDs))
	for rows.Next() {
		var saleID string
		var it entity.BatchSaleItem
		if err := rows.Scan(&saleID, &it.ProductID, &it.ProductName, &it.Quantity, &it.UnitPrice, &it.Subtotal,
			&it.IsBatchSale, &it.BatchYieldQuantity, &it.BatchSoldQuantity, &it.BatchRemainingQuantity, &it.ProportionalCost); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		out[saleID] = append(out[saleID], it)
	}
	return out, rows.Err()
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	var method, discountType string
	res := &s.SellingResume
	err := row.Scan(&s.ID, &s.Date, &method, &res.Subtotal, &discountType, &res.DiscountValue, &res.DiscountAmount,
		&res.FeePercentage, &res.Fees, &res.TotalValue, &res.TotalCost, &res.Profit)
	if err != nil {
		return nil, err
	}
	res.PaymentMethod = entity.PaymentMethod(method)
	res.DiscountType = entity.DiscountType(discountType)
	return &s, nil
}
