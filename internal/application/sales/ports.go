package sales

import (
	"context"

	"github.com/jhoicas/stockledger-api/internal/domain/repository"
)

// TxRunner transacción que agrupa productos, órdenes de compra y entregas.
// Si fn devuelve error no queda ninguna escritura visible.
type TxRunner interface {
	RunSales(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		orderRepo repository.PurchaseOrderRepository,
		deliveryRepo repository.DeliveryRepository,
	) error) error
}
