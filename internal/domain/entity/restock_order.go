package entity

import "time"

// RestockOrder entrada directa de stock para un producto.
type RestockOrder struct {
	ID        int64
	ProductID int64
	UserID    int64
	Quantity  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RestockOrderDetail orden con los datos de producto y usuario ya resueltos (JOIN).
type RestockOrderDetail struct {
	RestockOrder
	ProductName     string
	ProductQuantity int
	UserName        string
	UserEmail       string
}
