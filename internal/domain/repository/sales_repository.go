package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stockledger-api/internal/domain/entity"
)

// PurchaseOrderRepository persistencia de órdenes de compra y sus líneas.
type PurchaseOrderRepository interface {
	Create(ctx context.Context, order *entity.PurchaseOrder) error
}

// DeliveryRepository persistencia de entregas.
type DeliveryRepository interface {
	// GetForUpdate bloquea la entrega y carga sus líneas.
	GetForUpdate(ctx context.Context, id int64) (*entity.Delivery, error)
	UpdateStatus(ctx context.Context, id int64, status string, deliveredAt *time.Time) error
}
