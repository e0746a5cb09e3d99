package memory

import (
	"context"
	"time"

	"github.com/jhoicas/stockledger-api/internal/domain"
	"github.com/jhoicas/stockledger-api/internal/domain/entity"
	"github.com/jhoicas/stockledger-api/internal/domain/repository"
)

var (
	_ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)
	_ repository.DeliveryRepository      = (*DeliveryRepo)(nil)
)

// PurchaseOrderRepo implementación en memoria de repository.PurchaseOrderRepository.
type PurchaseOrderRepo struct {
	h handle
}

func (r *PurchaseOrderRepo) Create(ctx context.Context, po *entity.PurchaseOrder) error {
	return r.h.with(func(st *state) error {
		po.ID = st.nextID()
		if po.CreatedAt.IsZero() {
			po.CreatedAt = time.Now()
		}
		po.UpdatedAt = po.CreatedAt
		for i := range po.Details {
			po.Details[i].ID = st.nextID()
			po.Details[i].PurchaseOrderID = po.ID
		}
		stored := *po
		stored.Details = append([]entity.ProductDetail(nil), po.Details...)
		st.purchaseOrders[po.ID] = stored
		return nil
	})
}

// DeliveryRepo implementación en memoria de repository.DeliveryRepository.
type DeliveryRepo struct {
	h handle
}

func (r *DeliveryRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Delivery, error) {
	var out *entity.Delivery
	err := r.h.with(func(st *state) error {
		if d, ok := st.deliveries[id]; ok {
			d.Lines = append([]entity.DeliveryProduct(nil), d.Lines...)
			out = &d
		}
		return nil
	})
	return out, err
}

func (r *DeliveryRepo) UpdateStatus(ctx context.Context, id int64, status string, deliveredAt *time.Time) error {
	return r.h.with(func(st *state) error {
		d, ok := st.deliveries[id]
		if !ok {
			return domain.ErrNotFound
		}
		d.Status = status
		d.DeliveredAt = deliveredAt
		d.UpdatedAt = time.Now()
		st.deliveries[id] = d
		return nil
	})
}
