package dto

import "time"

// RestockOrderRequest body de POST y PUT /api/restock-orders.
// Si UserID es 0 se toma el usuario del token.
type RestockOrderRequest struct {
	UserID    int64 `json:"user_id" validate:"omitempty,gt=0"`
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"required,min=1"`
}

// UserSummary datos mínimos del usuario que registró la orden.
type UserSummary struct {
	ID    int64  `json:"id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// RestockProductSummary producto afectado por una orden recién creada.
type RestockProductSummary struct {
	Name            string `json:"name"`
	RestockQuantity int    `json:"restock_quantity"`
	TotalQuantity   int    `json:"total_quantity"`
}

// CreateRestockOrderResponse salida de la creación.
type CreateRestockOrderResponse struct {
	RestockID int64                 `json:"restock_id"`
	User      UserSummary           `json:"user"`
	Product   RestockProductSummary `json:"product"`
}

// RestockOrderResponse orden con producto y usuario.
type RestockOrderResponse struct {
	ID          int64       `json:"id"`
	ProductID   int64       `json:"product_id"`
	ProductName string      `json:"product_name"`
	Quantity    int         `json:"quantity"`
	User        UserSummary `json:"user"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// RestockOrderDetailResponse GET /api/restock-orders/:id.
type RestockOrderDetailResponse struct {
	RestockID              int64       `json:"restock_id"`
	ProductID              int64       `json:"product_id"`
	ProductName            string      `json:"product_name"`
	RestockQuantity        int         `json:"restock_quantity"`
	TotalRestockedQuantity int         `json:"total_restocked_quantity"`
	TotalStock             int         `json:"total_stock"`
	User                   UserSummary `json:"user"`
}

// ProductRestockSummaryResponse GET /api/products/:id/restock-orders.
type ProductRestockSummaryResponse struct {
	ProductID              int64                  `json:"product_id"`
	ProductName            string                 `json:"product_name"`
	CategoryName           *string                `json:"category_name"`
	InStock                int                    `json:"in_stock"`
	TotalRestockedQuantity int                    `json:"total_restocked_quantity"`
	RestockOrders          []RestockOrderResponse `json:"restock_orders"`
}
