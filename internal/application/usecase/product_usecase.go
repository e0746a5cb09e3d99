package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jhoicas/stockledger-api/internal/application/dto"
	"github.com/jhoicas/stockledger-api/internal/application/inventory"
	"github.com/jhoicas/stockledger-api/internal/application/validation"
	"github.com/jhoicas/stockledger-api/internal/domain"
	"github.com/jhoicas/stockledger-api/internal/domain/entity"
	"github.com/jhoicas/stockledger-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. La cantidad solo cambia vía reabastecimientos,
// ventas y entregas; aquí solo se fija la inicial.
type ProductUseCase struct {
	txRunner     inventory.TxRunner
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
	userRepo     repository.UserRepository
	now          func() time.Time
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	txRunner inventory.TxRunner,
	repo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	userRepo repository.UserRepository,
) *ProductUseCase {
	return &ProductUseCase{txRunner: txRunner, repo: repo, categoryRepo: categoryRepo, userRepo: userRepo, now: time.Now}
}

// Create crea el producto y su orden de reabastecimiento inicial en la misma transacción.
func (uc *ProductUseCase) Create(ctx context.Context, tokenUserID int64, in dto.CreateProductRequest) (*dto.CreateProductResponse, error) {
	if in.UserID == 0 {
		in.UserID = tokenUserID
	}
	in.ProductName = strings.TrimSpace(in.ProductName)

	ve := domain.NewValidationError()
	validation.Into(ve, in)
	if in.OriginalPrice != nil && in.OriginalPrice.IsNegative() {
		ve.Add("original_price", "debe ser mayor o igual a 0")
	}
	category, err := uc.checkCategory(ctx, ve, in.CategoryID)
	if err != nil {
		return nil, err
	}
	if in.UserID <= 0 {
		ve.Add("user_id", "el campo es obligatorio")
	} else {
		u, err := uc.userRepo.GetByID(ctx, in.UserID)
		if err != nil {
			return nil, err
		}
		if u == nil {
			ve.Add("user_id", "el usuario seleccionado no existe")
		}
	}
	if err := uc.checkNameFree(ctx, ve, in.ProductName, 0); err != nil {
		return nil, err
	}
	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	now := uc.now()
	product := &entity.Product{
		CategoryID:    in.CategoryID,
		Name:          in.ProductName,
		OriginalPrice: *in.OriginalPrice,
		Quantity:      in.Quantity,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	err = uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, restockRepo repository.RestockOrderRepository) error {
		if err := productRepo.Create(ctx, product); err != nil {
			return err
		}
		return restockRepo.Create(ctx, &entity.RestockOrder{
			ProductID: product.ID,
			UserID:    in.UserID,
			Quantity:  in.Quantity,
			CreatedAt: now,
			UpdatedAt: now,
		})
	})
	if errors.Is(err, domain.ErrDuplicate) {
		ve.Add("product_name", "ya existe un producto con ese nombre")
		return nil, ve
	}
	if err != nil {
		return nil, err
	}
	return &dto.CreateProductResponse{
		ProductID:    product.ID,
		ProductName:  product.Name,
		CategoryName: category.Name,
		TotalStock:   product.Quantity,
	}, nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// Update actualización parcial de categoría, nombre y precio.
func (uc *ProductUseCase) Update(ctx context.Context, id int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	ve := domain.NewValidationError()
	validation.Into(ve, in)
	if in.CategoryID != nil {
		if _, err := uc.checkCategory(ctx, ve, *in.CategoryID); err != nil {
			return nil, err
		}
		product.CategoryID = *in.CategoryID
	}
	if in.ProductName != nil {
		name := strings.TrimSpace(*in.ProductName)
		if name == "" {
			ve.Add("product_name", "el campo no puede estar vacío")
		} else if err := uc.checkNameFree(ctx, ve, name, id); err != nil {
			return nil, err
		}
		product.Name = name
	}
	if in.OriginalPrice != nil {
		if in.OriginalPrice.IsNegative() {
			ve.Add("original_price", "debe ser mayor o igual a 0")
		}
		product.OriginalPrice = *in.OriginalPrice
	}
	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	product.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, product); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			ve.Add("product_name", "ya existe un producto con ese nombre")
			return nil, ve
		}
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos con paginación offset/limit.
func (uc *ProductUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete elimina un producto junto con sus órdenes de reabastecimiento.
// Un producto con ventas registradas devuelve domain.ErrConflict.
func (uc *ProductUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}

func (uc *ProductUseCase) checkCategory(ctx context.Context, ve *domain.ValidationError, id int64) (*entity.Category, error) {
	if id <= 0 {
		return nil, nil
	}
	c, err := uc.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		ve.Add("category_id", "la categoría seleccionada no existe")
	}
	return c, nil
}

func (uc *ProductUseCase) checkNameFree(ctx context.Context, ve *domain.ValidationError, name string, selfID int64) error {
	if name == "" {
		return nil
	}
	existing, err := uc.repo.GetByName(ctx, name)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		ve.Add("product_name", "ya existe un producto con ese nombre")
	}
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:            p.ID,
		CategoryID:    p.CategoryID,
		ProductName:   p.Name,
		OriginalPrice: p.OriginalPrice,
		Quantity:      p.Quantity,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
