package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stockledger-api/internal/domain"
	"github.com/jhoicas/stockledger-api/internal/domain/entity"
	"github.com/jhoicas/stockledger-api/internal/domain/repository"
)

var (
	_ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)
	_ repository.DeliveryRepository      = (*DeliveryRepo)(nil)
)

// PurchaseOrderRepo persistencia de purchase_orders y product_details.
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Usar con tx: inserta cabecera y líneas.
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

// Create inserta la orden y sus líneas, asignando IDs.
func (r *PurchaseOrderRepo) Create(ctx context.Context, po *entity.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_orders (sale_type_id, customer_name, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	if err := r.q.QueryRow(ctx, query, po.SaleTypeID, po.CustomerName, po.UserID, po.CreatedAt, po.UpdatedAt).Scan(&po.ID); err != nil {
		return fmt.Errorf("insert purchase order: %w", err)
	}
	lineQuery := `
		INSERT INTO product_details (purchase_order_id, product_id, quantity, price)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	for i := range po.Details {
		d := &po.Details[i]
		d.PurchaseOrderID = po.ID
		if err := r.q.QueryRow(ctx, lineQuery, po.ID, d.ProductID, d.Quantity, d.Price).Scan(&d.ID); err != nil {
			if isForeignKeyViolation(err) {
				return fmt.Errorf("producto %d: %w", d.ProductID, domain.ErrNotFound)
			}
			return fmt.Errorf("insert product detail: %w", err)
		}
	}
	return nil
}

// DeliveryRepo persistencia de deliveries y delivery_products.
type DeliveryRepo struct {
	q Querier
}

// NewDeliveryRepository construye el adaptador.
func NewDeliveryRepository(q Querier) *DeliveryRepo {
	return &DeliveryRepo{q: q}
}

// GetForUpdate bloquea la entrega y carga sus líneas.
func (r *DeliveryRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Delivery, error) {
	query := `
		SELECT id, purchase_order_id, status, delivered_at, created_at, updated_at
		FROM deliveries WHERE id = $1 FOR UPDATE`
	var d entity.Delivery
	err := r.q.QueryRow(ctx, query, id).Scan(&d.ID, &d.PurchaseOrderID, &d.Status, &d.DeliveredAt, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get delivery: %w", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT id, delivery_id, product_id, quantity, no_of_damages
		FROM delivery_products WHERE delivery_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("list delivery products: %w", err)
	}
	lines, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.DeliveryProduct, error) {
		var l entity.DeliveryProduct
		err := row.Scan(&l.ID, &l.DeliveryID, &l.ProductID, &l.Quantity, &l.NoOfDamages)
		return l, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan delivery products: %w", err)
	}
	d.Lines = lines
	return &d, nil
}

// UpdateStatus fija estado y delivered_at.
func (r *DeliveryRepo) UpdateStatus(ctx context.Context, id int64, status string, deliveredAt *time.Time) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE deliveries SET status = $2, delivered_at = $3, updated_at = now() WHERE id = $1`,
		id, status, deliveredAt)
	if err != nil {
		return fmt.Errorf("update delivery status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
