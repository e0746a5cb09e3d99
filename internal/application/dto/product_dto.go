package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. La cantidad inicial queda registrada
// también como orden de reabastecimiento.
type CreateProductRequest struct {
	CategoryID    int64            `json:"category_id" validate:"required,gt=0"`
	ProductName   string           `json:"product_name" validate:"required,max=255"`
	OriginalPrice *decimal.Decimal `json:"original_price" validate:"required"`
	Quantity      int              `json:"quantity" validate:"required,min=1"`
	UserID        int64            `json:"user_id" validate:"omitempty,gt=0"`
}

// UpdateProductRequest actualización parcial. La cantidad no es editable aquí: se maneja
// con órdenes de reabastecimiento, ventas y entregas.
type UpdateProductRequest struct {
	CategoryID    *int64           `json:"category_id" validate:"omitempty,gt=0"`
	ProductName   *string          `json:"product_name" validate:"omitempty,min=1,max=255"`
	OriginalPrice *decimal.Decimal `json:"original_price"`
}

// CreateProductResponse salida de la creación.
type CreateProductResponse struct {
	ProductID    int64  `json:"product_id"`
	ProductName  string `json:"product_name"`
	CategoryName string `json:"category_name"`
	TotalStock   int    `json:"total_stock"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID            int64           `json:"id"`
	CategoryID    int64           `json:"category_id"`
	ProductName   string          `json:"product_name"`
	OriginalPrice decimal.Decimal `json:"original_price"`
	Quantity      int             `json:"quantity"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
