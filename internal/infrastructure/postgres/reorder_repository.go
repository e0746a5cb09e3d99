package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stockledger-api/internal/domain/repository"
)

var _ repository.ReorderRepository = (*ReorderRepo)(nil)

// ReorderRepo consumo reciente por producto para el reporte de reorden.
type ReorderRepo struct {
	q Querier
}

// NewReorderRepository construye el adaptador.
func NewReorderRepository(q Querier) *ReorderRepo {
	return &ReorderRepo{q: q}
}

// ListProductUsage suma las líneas de entregas creadas desde since en los estados dados.
// Productos sin entregas aparecen con 0.
func (r *ReorderRepo) ListProductUsage(ctx context.Context, since time.Time, statuses []string) ([]repository.ProductUsage, error) {
	query := `
		SELECT p.id, p.product_name, c.category_name, c.safety_stock, p.quantity,
		       COALESCE(u.delivered, 0)
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		LEFT JOIN (
			SELECT dp.product_id, SUM(dp.quantity) AS delivered
			FROM delivery_products dp
			JOIN deliveries d ON d.id = dp.delivery_id
			WHERE d.created_at >= $1 AND d.status = ANY($2)
			GROUP BY dp.product_id
		) u ON u.product_id = p.id
		ORDER BY p.quantity ASC, p.id ASC`
	rows, err := r.q.Query(ctx, query, since, statuses)
	if err != nil {
		return nil, fmt.Errorf("list product usage: %w", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (repository.ProductUsage, error) {
		var u repository.ProductUsage
		err := row.Scan(&u.ProductID, &u.ProductName, &u.CategoryName, &u.SafetyStock, &u.CurrentQuantity, &u.DeliveredQuantity)
		return u, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan product usage: %w", err)
	}
	return out, nil
}
