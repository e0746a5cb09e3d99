package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de venta de una orden de compra.
const (
	SaleTypeDelivery = 1
	SaleTypeWalkIn   = 2
)

// PurchaseOrder venta walk-in o por entrega, según SaleTypeID.
type PurchaseOrder struct {
	ID           int64
	SaleTypeID   int
	CustomerName string
	UserID       int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Details      []ProductDetail
}

// ProductDetail línea producto-cantidad-precio de una orden de compra.
type ProductDetail struct {
	ID              int64
	PurchaseOrderID int64
	ProductID       int64
	Quantity        int
	Price           decimal.Decimal
}
