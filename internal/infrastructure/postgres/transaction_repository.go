package postgres

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockledger-api/internal/domain/entity"
	"github.com/jhoicas/stockledger-api/internal/domain/repository"
)

var _ repository.TransactionSourceRepository = (*TransactionRepo)(nil)

// TransactionRepo consultas de las tres fuentes del feed. Sin ORDER BY: el orden se aplica tras la fusión.
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador.
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

// whereBuilder acumula condiciones AND con placeholders $n.
type whereBuilder struct {
	conds []string
	args  []any
}

func (w *whereBuilder) arg(v any) string {
	w.args = append(w.args, v)
	return "$" + strconv.Itoa(len(w.args))
}

func (w *whereBuilder) add(cond string) {
	w.conds = append(w.conds, cond)
}

func (w *whereBuilder) sql() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// apply agrega el filtro compartido; dateCol es la fecha de creación propia de la fuente.
func (w *whereBuilder) apply(f repository.TransactionFilter, dateCol string) {
	if f.ProductID != nil {
		w.add("p.id = " + w.arg(*f.ProductID))
	}
	if f.DateFrom != nil {
		w.add(dateCol + " >= " + w.arg(*f.DateFrom))
	}
	if f.DateTo != nil {
		w.add(dateCol + " < " + w.arg(*f.DateTo))
	}
	if len(f.Categories) > 0 {
		w.add("TRIM(c.category_name) = ANY(" + w.arg(f.Categories) + ")")
	}
	if f.Search != "" {
		pattern := w.arg("%" + escapeLike(f.Search) + "%")
		switch f.SearchField {
		case repository.SearchFieldProduct:
			w.add("p.product_name ILIKE " + pattern)
		case repository.SearchFieldCategory:
			w.add("c.category_name ILIKE " + pattern)
		default:
			w.add("(p.product_name ILIKE " + pattern + " OR c.category_name ILIKE " + pattern + ")")
		}
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// lastRestockBefore último reabastecimiento del producto con fecha <= ts (índice product_id, created_at).
func lastRestockBefore(ts string) string {
	return `(SELECT MAX(r2.created_at) FROM product_restock_orders r2
	         WHERE r2.product_id = p.id AND r2.created_at <= ` + ts + `)`
}

// ListRestocks una fila por orden de reabastecimiento; date_in = date_out = created_at.
func (r *TransactionRepo) ListRestocks(ctx context.Context, f repository.TransactionFilter) ([]entity.Transaction, error) {
	var w whereBuilder
	w.apply(f, "r.created_at")
	query := `
		SELECT p.id, p.product_name, TRIM(c.category_name), r.quantity, p.original_price, r.created_at
		FROM product_restock_orders r
		JOIN products p ON p.id = r.product_id
		JOIN categories c ON c.id = p.category_id` + w.sql()

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list restock transactions: %w", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.Transaction, error) {
		t := entity.Transaction{Type: entity.TransactionRestock}
		var at time.Time
		if err := row.Scan(&t.ProductID, &t.ProductName, &t.CategoryName, &t.Quantity, &t.UnitPrice, &at); err != nil {
			return t, err
		}
		t.DateIn, t.DateOut = &at, &at
		return t, nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan restock transactions: %w", err)
	}
	return out, nil
}

// ListDeliveries una fila por línea de entrega liquidada. El precio sale de la línea de la orden
// de compra del mismo producto; si no hay, del precio original del producto.
func (r *TransactionRepo) ListDeliveries(ctx context.Context, f repository.TransactionFilter) ([]entity.Transaction, error) {
	var w whereBuilder
	w.add("d.status = " + w.arg(entity.DeliveryStatusSettled))
	w.apply(f, "d.created_at")
	dateOut := "COALESCE(d.delivered_at, d.created_at)"
	query := `
		SELECT p.id, p.product_name, TRIM(c.category_name), d.id, dp.quantity,
		       COALESCE(pd.price, p.original_price),
		       ` + lastRestockBefore(dateOut) + `,
		       ` + dateOut + `, d.status, dp.no_of_damages
		FROM delivery_products dp
		JOIN deliveries d ON d.id = dp.delivery_id
		JOIN products p ON p.id = dp.product_id
		JOIN categories c ON c.id = p.category_id
		LEFT JOIN LATERAL (
			SELECT pd.price FROM product_details pd
			WHERE pd.purchase_order_id = d.purchase_order_id AND pd.product_id = dp.product_id
			ORDER BY pd.id LIMIT 1
		) pd ON true` + w.sql()

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list delivery transactions: %w", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.Transaction, error) {
		t := entity.Transaction{Type: entity.TransactionDelivery}
		var (
			deliveryID int64
			price      decimal.Decimal
			dateIn     *time.Time
			out        time.Time
			status     string
			damages    int
		)
		if err := row.Scan(&t.ProductID, &t.ProductName, &t.CategoryName, &deliveryID, &t.Quantity,
			&price, &dateIn, &out, &status, &damages); err != nil {
			return t, err
		}
		t.DeliveryID = &deliveryID
		t.UnitPrice = price
		t.DateIn = dateIn
		t.DateOut = &out
		t.DeliveryStatus = &status
		t.TotalDamages = &damages
		return t, nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan delivery transactions: %w", err)
	}
	return out, nil
}

// ListWalkIns una fila por línea de orden de compra walk-in, valorada al precio actual del producto.
func (r *TransactionRepo) ListWalkIns(ctx context.Context, f repository.TransactionFilter) ([]entity.Transaction, error) {
	var w whereBuilder
	w.add("po.sale_type_id = " + w.arg(entity.SaleTypeWalkIn))
	w.apply(f, "po.created_at")
	query := `
		SELECT p.id, p.product_name, TRIM(c.category_name), pd.quantity, p.original_price,
		       ` + lastRestockBefore("po.created_at") + `, po.created_at
		FROM product_details pd
		JOIN purchase_orders po ON po.id = pd.purchase_order_id
		JOIN products p ON p.id = pd.product_id
		JOIN categories c ON c.id = p.category_id` + w.sql()

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list walk-in transactions: %w", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.Transaction, error) {
		t := entity.Transaction{Type: entity.TransactionWalkIn}
		var out time.Time
		if err := row.Scan(&t.ProductID, &t.ProductName, &t.CategoryName, &t.Quantity, &t.UnitPrice, &t.DateIn, &out); err != nil {
			return t, err
		}
		t.DateOut = &out
		return t, nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan walk-in transactions: %w", err)
	}
	return out, nil
}
