package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stockledger-api/internal/domain"
	"github.com/jhoicas/stockledger-api/internal/domain/entity"
	"github.com/jhoicas/stockledger-api/internal/domain/repository"
)

var _ repository.RestockOrderRepository = (*RestockOrderRepo)(nil)

// RestockOrderRepo persistencia de product_restock_orders.
type RestockOrderRepo struct {
	q Querier
}

// NewRestockOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRestockOrderRepository(q Querier) *RestockOrderRepo {
	return &RestockOrderRepo{q: q}
}

const restockDetailSelect = `
	SELECT r.id, r.product_id, r.user_id, r.quantity, r.created_at, r.updated_at,
	       p.product_name, p.quantity, u.name, u.email
	FROM product_restock_orders r
	JOIN products p ON p.id = r.product_id
	JOIN users u ON u.id = r.user_id`

func scanRestockDetail(row pgx.Row) (*entity.RestockOrderDetail, error) {
	var d entity.RestockOrderDetail
	err := row.Scan(&d.ID, &d.ProductID, &d.UserID, &d.Quantity, &d.CreatedAt, &d.UpdatedAt,
		&d.ProductName, &d.ProductQuantity, &d.UserName, &d.UserEmail)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Create inserta la orden y asigna su ID.
func (r *RestockOrderRepo) Create(ctx context.Context, o *entity.RestockOrder) error {
	query := `
		INSERT INTO product_restock_orders (product_id, user_id, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	if err := r.q.QueryRow(ctx, query, o.ProductID, o.UserID, o.Quantity, o.CreatedAt, o.UpdatedAt).Scan(&o.ID); err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert restock order: %w", err)
	}
	return nil
}

// GetByID obtiene la orden sin joins.
func (r *RestockOrderRepo) GetByID(ctx context.Context, id int64) (*entity.RestockOrder, error) {
	query := `SELECT id, product_id, user_id, quantity, created_at, updated_at FROM product_restock_orders WHERE id = $1`
	var o entity.RestockOrder
	err := r.q.QueryRow(ctx, query, id).Scan(&o.ID, &o.ProductID, &o.UserID, &o.Quantity, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get restock order: %w", err)
	}
	return &o, nil
}

// GetDetail obtiene la orden con producto y usuario.
func (r *RestockOrderRepo) GetDetail(ctx context.Context, id int64) (*entity.RestockOrderDetail, error) {
	d, err := scanRestockDetail(r.q.QueryRow(ctx, restockDetailSelect+` WHERE r.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get restock order detail: %w", err)
	}
	return d, nil
}

// Update reemplaza producto, usuario y cantidad.
func (r *RestockOrderRepo) Update(ctx context.Context, o *entity.RestockOrder) error {
	query := `
		UPDATE product_restock_orders SET product_id = $2, user_id = $3, quantity = $4, updated_at = $5
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, o.ID, o.ProductID, o.UserID, o.Quantity, o.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update restock order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la orden.
func (r *RestockOrderRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM product_restock_orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete restock order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List todas las órdenes, más recientes primero.
func (r *RestockOrderRepo) List(ctx context.Context) ([]*entity.RestockOrderDetail, error) {
	return r.list(ctx, restockDetailSelect+` ORDER BY r.created_at DESC, r.id DESC`)
}

// ListByProduct órdenes de un producto, más recientes primero.
func (r *RestockOrderRepo) ListByProduct(ctx context.Context, productID int64) ([]*entity.RestockOrderDetail, error) {
	return r.list(ctx, restockDetailSelect+` WHERE r.product_id = $1 ORDER BY r.created_at DESC, r.id DESC`, productID)
}

func (r *RestockOrderRepo) list(ctx context.Context, query string, args ...any) ([]*entity.RestockOrderDetail, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list restock orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.RestockOrderDetail
	for rows.Next() {
		d, err := scanRestockDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("scan restock order: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// SumQuantityByProduct total reabastecido de un producto.
func (r *RestockOrderRepo) SumQuantityByProduct(ctx context.Context, productID int64) (int, error) {
	var total int
	err := r.q.QueryRow(ctx, `SELECT COALESCE(SUM(quantity), 0) FROM product_restock_orders WHERE product_id = $1`, productID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum restock quantity: %w", err)
	}
	return total, nil
}
