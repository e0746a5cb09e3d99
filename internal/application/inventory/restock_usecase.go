package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/stockledger-api/internal/application/dto"
	"github.com/jhoicas/stockledger-api/internal/application/validation"
	"github.com/jhoicas/stockledger-api/internal/domain"
	"github.com/jhoicas/stockledger-api/internal/domain/entity"
	"github.com/jhoicas/stockledger-api/internal/domain/repository"
)

// RestockUseCase CRUD de órdenes de reabastecimiento. Toda escritura ajusta products.quantity
// en la misma transacción que la fila de la orden.
type RestockUseCase struct {
	txRunner     TxRunner
	restockRepo  repository.RestockOrderRepository
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	userRepo     repository.UserRepository
	now          func() time.Time
}

// NewRestockUseCase construye el caso de uso.
func NewRestockUseCase(
	txRunner TxRunner,
	restockRepo repository.RestockOrderRepository,
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	userRepo repository.UserRepository,
) *RestockUseCase {
	return &RestockUseCase{
		txRunner:     txRunner,
		restockRepo:  restockRepo,
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
		now:          time.Now,
	}
}

// validateRequest aplica tags y verifica que usuario y producto existan.
// tokenUserID se usa cuando el body no trae user_id.
func (uc *RestockUseCase) validateRequest(ctx context.Context, in *dto.RestockOrderRequest, tokenUserID int64) error {
	if in.UserID == 0 {
		in.UserID = tokenUserID
	}
	ve := domain.NewValidationError()
	validation.Into(ve, *in)
	if in.UserID <= 0 {
		ve.Add("user_id", "el campo es obligatorio")
	} else if _, ok := ve.Fields["user_id"]; !ok {
		u, err := uc.userRepo.GetByID(ctx, in.UserID)
		if err != nil {
			return err
		}
		if u == nil {
			ve.Add("user_id", "el usuario seleccionado no existe")
		}
	}
	if _, ok := ve.Fields["product_id"]; !ok {
		p, err := uc.productRepo.GetByID(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if p == nil {
			ve.Add("product_id", "el producto seleccionado no existe")
		}
	}
	return ve.OrNil()
}

// Create registra la orden y suma su cantidad al producto (misma transacción).
func (uc *RestockUseCase) Create(ctx context.Context, tokenUserID int64, in dto.RestockOrderRequest) (*dto.CreateRestockOrderResponse, error) {
	if err := uc.validateRequest(ctx, &in, tokenUserID); err != nil {
		return nil, err
	}
	now := uc.now()
	order := &entity.RestockOrder{
		ProductID: in.ProductID,
		UserID:    in.UserID,
		Quantity:  in.Quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}
	var total int
	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, restockRepo repository.RestockOrderRepository) error {
		if err := lockProducts(ctx, productRepo, in.ProductID, in.ProductID); err != nil {
			return err
		}
		if err := restockRepo.Create(ctx, order); err != nil {
			return err
		}
		q, err := productRepo.AdjustQuantity(ctx, in.ProductID, in.Quantity)
		if err != nil {
			return err
		}
		total = q
		return nil
	})
	if err != nil {
		return nil, err
	}

	detail, err := uc.restockRepo.GetDetail(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	out := &dto.CreateRestockOrderResponse{
		RestockID: order.ID,
		Product: dto.RestockProductSummary{
			RestockQuantity: order.Quantity,
			TotalQuantity:   total,
		},
	}
	if detail != nil {
		out.User = dto.UserSummary{ID: detail.UserID, Name: detail.UserName}
		out.Product.Name = detail.ProductName
	}
	return out, nil
}

// Update reemplaza la orden y rebalancea: -cantidad_anterior al producto anterior,
// +cantidad_nueva al producto nuevo (el mismo si no cambia).
func (uc *RestockUseCase) Update(ctx context.Context, id, tokenUserID int64, in dto.RestockOrderRequest) (*dto.RestockOrderResponse, error) {
	if err := uc.validateRequest(ctx, &in, tokenUserID); err != nil {
		return nil, err
	}
	existing, err := uc.restockRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrNotFound
	}

	err = uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, restockRepo repository.RestockOrderRepository) error {
		current, err := restockRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}
		if err := lockProducts(ctx, productRepo, current.ProductID, in.ProductID); err != nil {
			return err
		}
		if _, err := productRepo.AdjustQuantity(ctx, current.ProductID, -current.Quantity); err != nil {
			return err
		}
		updated := *current
		updated.ProductID = in.ProductID
		updated.UserID = in.UserID
		updated.Quantity = in.Quantity
		updated.UpdatedAt = uc.now()
		if err := restockRepo.Update(ctx, &updated); err != nil {
			return err
		}
		_, err = productRepo.AdjustQuantity(ctx, in.ProductID, in.Quantity)
		return err
	})
	if err != nil {
		return nil, err
	}

	detail, err := uc.restockRepo.GetDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, domain.ErrNotFound
	}
	resp := toRestockOrderResponse(detail)
	return &resp, nil
}

// lockProducts bloquea las filas de producto en orden de id para evitar interbloqueos.
func lockProducts(ctx context.Context, productRepo repository.ProductRepository, a, b int64) error {
	ids := []int64{a}
	if b != a {
		if b < a {
			ids = []int64{b, a}
		} else {
			ids = append(ids, b)
		}
	}
	for _, id := range ids {
		p, err := productRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
	}
	return nil
}

// Delete elimina la orden y resta su cantidad del producto (misma transacción).
func (uc *RestockUseCase) Delete(ctx context.Context, id int64) error {
	return uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, restockRepo repository.RestockOrderRepository) error {
		current, err := restockRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}
		if err := lockProducts(ctx, productRepo, current.ProductID, current.ProductID); err != nil {
			return err
		}
		if _, err := productRepo.AdjustQuantity(ctx, current.ProductID, -current.Quantity); err != nil {
			return err
		}
		return restockRepo.Delete(ctx, id)
	})
}

// GetByID devuelve la orden con el total reabastecido y el stock actual del producto.
func (uc *RestockUseCase) GetByID(ctx context.Context, id int64) (*dto.RestockOrderDetailResponse, error) {
	detail, err := uc.restockRepo.GetDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, domain.ErrNotFound
	}
	total, err := uc.restockRepo.SumQuantityByProduct(ctx, detail.ProductID)
	if err != nil {
		return nil, err
	}
	return &dto.RestockOrderDetailResponse{
		RestockID:              detail.ID,
		ProductID:              detail.ProductID,
		ProductName:            detail.ProductName,
		RestockQuantity:        detail.Quantity,
		TotalRestockedQuantity: total,
		TotalStock:             detail.ProductQuantity,
		User:                   dto.UserSummary{ID: detail.UserID, Name: detail.UserName, Email: detail.UserEmail},
	}, nil
}

// List todas las órdenes con producto y usuario.
func (uc *RestockUseCase) List(ctx context.Context) ([]dto.RestockOrderResponse, error) {
	list, err := uc.restockRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toRestockOrderResponses(list), nil
}

// ProductSummary órdenes de un producto con su stock actual y el total reabastecido.
func (uc *RestockUseCase) ProductSummary(ctx context.Context, productID int64) (*dto.ProductRestockSummaryResponse, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	category, err := uc.categoryRepo.GetByID(ctx, product.CategoryID)
	if err != nil {
		return nil, err
	}
	orders, err := uc.restockRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	total := 0
	for _, o := range orders {
		total += o.Quantity
	}
	out := &dto.ProductRestockSummaryResponse{
		ProductID:              product.ID,
		ProductName:            product.Name,
		InStock:                product.Quantity,
		TotalRestockedQuantity: total,
		RestockOrders:          toRestockOrderResponses(orders),
	}
	if category != nil {
		out.CategoryName = &category.Name
	}
	return out, nil
}

func toRestockOrderResponses(list []*entity.RestockOrderDetail) []dto.RestockOrderResponse {
	out := make([]dto.RestockOrderResponse, 0, len(list))
	for _, d := range list {
		out = append(out, toRestockOrderResponse(d))
	}
	return out
}

func toRestockOrderResponse(d *entity.RestockOrderDetail) dto.RestockOrderResponse {
	return dto.RestockOrderResponse{
		ID:          d.ID,
		ProductID:   d.ProductID,
		ProductName: d.ProductName,
		Quantity:    d.Quantity,
		User:        dto.UserSummary{ID: d.UserID, Name: d.UserName, Email: d.UserEmail},
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}
