package repository

import (
	"context"

	"github.com/jhoicas/stockledger-api/internal/domain/entity"
)

// RestockOrderRepository puerto de persistencia de órdenes de reabastecimiento.
// Create, Update y Delete no tocan products.quantity; el caso de uso lo ajusta en la misma tx.
type RestockOrderRepository interface {
	Create(ctx context.Context, order *entity.RestockOrder) error
	GetByID(ctx context.Context, id int64) (*entity.RestockOrder, error)
	GetDetail(ctx context.Context, id int64) (*entity.RestockOrderDetail, error)
	Update(ctx context.Context, order *entity.RestockOrder) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*entity.RestockOrderDetail, error)
	ListByProduct(ctx context.Context, productID int64) ([]*entity.RestockOrderDetail, error)
	SumQuantityByProduct(ctx context.Context, productID int64) (int, error)
}
