package sales

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockledger-api/internal/application/dto"
	"github.com/jhoicas/stockledger-api/internal/application/validation"
	"github.com/jhoicas/stockledger-api/internal/domain"
	"github.com/jhoicas/stockledger-api/internal/domain/entity"
	"github.com/jhoicas/stockledger-api/internal/domain/report"
	"github.com/jhoicas/stockledger-api/internal/domain/repository"
)

// UseCase registra ventas walk-in y liquida entregas. Ambas rutas mueven products.quantity
// dentro de la misma transacción que el cambio que las origina.
type UseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	now         func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner TxRunner, productRepo repository.ProductRepository, userRepo repository.UserRepository) *UseCase {
	return &UseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		userRepo:    userRepo,
		now:         time.Now,
	}
}

// RegisterWalkIn crea la orden de compra (sale_type 2) y descuenta el stock de cada línea.
func (uc *UseCase) RegisterWalkIn(ctx context.Context, tokenUserID int64, in dto.WalkInSaleRequest) (*dto.WalkInSaleResponse, error) {
	if in.UserID == 0 {
		in.UserID = tokenUserID
	}
	ve := domain.NewValidationError()
	validation.Into(ve, in)
	if in.UserID <= 0 {
		ve.Add("user_id", "el campo es obligatorio")
	} else if _, ok := ve.Fields["user_id"]; !ok {
		u, err := uc.userRepo.GetByID(ctx, in.UserID)
		if err != nil {
			return nil, err
		}
		if u == nil {
			ve.Add("user_id", "el usuario seleccionado no existe")
		}
	}
	for i, item := range in.Items {
		if item.ProductID <= 0 {
			continue
		}
		p, err := uc.productRepo.GetByID(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			ve.Add("items["+strconv.Itoa(i)+"].product_id", "el producto seleccionado no existe")
		}
		if item.Price != nil && item.Price.IsNegative() {
			ve.Add("items["+strconv.Itoa(i)+"].price", "debe ser mayor o igual a 0")
		}
	}
	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	customer := in.CustomerName
	if customer == "" {
		customer = "Walk-in"
	}
	now := uc.now()
	order := &entity.PurchaseOrder{
		SaleTypeID:   entity.SaleTypeWalkIn,
		CustomerName: customer,
		UserID:       in.UserID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	needed := map[int64]int{}
	for _, item := range in.Items {
		needed[item.ProductID] += item.Quantity
	}

	total := decimal.Zero
	err := uc.txRunner.RunSales(ctx, func(productRepo repository.ProductRepository, orderRepo repository.PurchaseOrderRepository, _ repository.DeliveryRepository) error {
		products, err := lockProducts(ctx, productRepo, needed)
		if err != nil {
			return err
		}
		for id, qty := range needed {
			if products[id].Quantity < qty {
				return fmt.Errorf("%w: producto %d tiene %d, se requieren %d", domain.ErrInsufficientStock, id, products[id].Quantity, qty)
			}
		}
		order.Details = order.Details[:0]
		total = decimal.Zero
		for _, item := range in.Items {
			price := products[item.ProductID].OriginalPrice
			if item.Price != nil {
				price = *item.Price
			}
			order.Details = append(order.Details, entity.ProductDetail{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Price:     price,
			})
			total = total.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}
		if err := orderRepo.Create(ctx, order); err != nil {
			return err
		}
		for id, qty := range needed {
			if _, err := productRepo.AdjustQuantity(ctx, id, -qty); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto.WalkInSaleResponse{
		PurchaseOrderID: order.ID,
		ItemCount:       len(order.Details),
		TotalValue:      report.FormatMoney(total),
		CreatedAt:       order.CreatedAt,
	}, nil
}

// ChangeDeliveryStatus aplica la transición de estado. Entrar en S descuenta las líneas y fija
// delivered_at; salir de S las repone y lo limpia. Otros cambios no tocan el stock.
func (uc *UseCase) ChangeDeliveryStatus(ctx context.Context, deliveryID int64, in dto.DeliveryStatusRequest) (*dto.DeliveryStatusResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	var out dto.DeliveryStatusResponse
	err := uc.txRunner.RunSales(ctx, func(productRepo repository.ProductRepository, _ repository.PurchaseOrderRepository, deliveryRepo repository.DeliveryRepository) error {
		d, err := deliveryRepo.GetForUpdate(ctx, deliveryID)
		if err != nil {
			return err
		}
		if d == nil {
			return domain.ErrNotFound
		}
		out = dto.DeliveryStatusResponse{
			DeliveryID:     d.ID,
			PreviousStatus: d.Status,
			Status:         in.Status,
			DeliveredAt:    d.DeliveredAt,
		}
		if d.Status == in.Status {
			return nil
		}

		entering := in.Status == entity.DeliveryStatusSettled
		leaving := d.Status == entity.DeliveryStatusSettled
		if entering || leaving {
			needed := map[int64]int{}
			for _, l := range d.Lines {
				needed[l.ProductID] += l.Quantity
			}
			products, err := lockProducts(ctx, productRepo, needed)
			if err != nil {
				return err
			}
			sign := 1
			if entering {
				sign = -1
				for id, qty := range needed {
					if products[id].Quantity < qty {
						return fmt.Errorf("%w: producto %d tiene %d, se requieren %d", domain.ErrInsufficientStock, id, products[id].Quantity, qty)
					}
				}
				now := uc.now()
				out.DeliveredAt = &now
			} else {
				out.DeliveredAt = nil
			}
			for id, qty := range needed {
				if _, err := productRepo.AdjustQuantity(ctx, id, sign*qty); err != nil {
					return err
				}
			}
		}
		return deliveryRepo.UpdateStatus(ctx, d.ID, in.Status, out.DeliveredAt)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// lockProducts bloquea en orden de id ascendente; falta de producto es ErrNotFound.
func lockProducts(ctx context.Context, productRepo repository.ProductRepository, needed map[int64]int) (map[int64]*entity.Product, error) {
	ids := make([]int64, 0, len(needed))
	for id := range needed {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make(map[int64]*entity.Product, len(ids))
	for _, id := range ids {
		p, err := productRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, fmt.Errorf("producto %d: %w", id, domain.ErrNotFound)
		}
		out[id] = p
	}
	return out, nil
}
