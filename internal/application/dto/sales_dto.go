package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// WalkInLineRequest línea de una venta walk-in. Price nil usa el precio actual del producto.
type WalkInLineRequest struct {
	ProductID int64            `json:"product_id" validate:"required,gt=0"`
	Quantity  int              `json:"quantity" validate:"required,min=1"`
	Price     *decimal.Decimal `json:"price"`
}

// WalkInSaleRequest body de POST /api/sales/walk-in.
type WalkInSaleRequest struct {
	CustomerName string              `json:"customer_name" validate:"max=255"`
	UserID       int64               `json:"user_id" validate:"omitempty,gt=0"`
	Items        []WalkInLineRequest `json:"items" validate:"required,min=1,dive"`
}

// WalkInSaleResponse salida del registro.
type WalkInSaleResponse struct {
	PurchaseOrderID int64     `json:"purchase_order_id"`
	ItemCount       int       `json:"item_count"`
	TotalValue      string    `json:"total_value"`
	CreatedAt       time.Time `json:"created_at"`
}

// DeliveryStatusRequest body de PATCH /api/deliveries/:id/status.
type DeliveryStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=SC P OD S F"`
}

// DeliveryStatusResponse salida del cambio de estado.
type DeliveryStatusResponse struct {
	DeliveryID     int64      `json:"delivery_id"`
	PreviousStatus string     `json:"previous_status"`
	Status         string     `json:"status"`
	DeliveredAt    *time.Time `json:"delivered_at"`
}
