package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del inventario.
// Quantity es un total acumulado: solo lo modifican reabastecimientos, ventas walk-in y
// entregas liquidadas, siempre dentro de la misma transacción que el cambio que lo origina.
type Product struct {
	ID            int64
	CategoryID    int64
	Name          string // único
	OriginalPrice decimal.Decimal
	Quantity      int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
