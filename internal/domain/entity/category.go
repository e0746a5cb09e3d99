package entity

import "time"

// DefaultSafetyStock stock de seguridad cuando la categoría no define uno.
const DefaultSafetyStock = 70

// Category agrupa productos. SafetyStock es opcional.
type Category struct {
	ID          int64
	Name        string
	SafetyStock *int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SafetyStockOr devuelve el stock de seguridad de la categoría o def si no está definido.
func (c *Category) SafetyStockOr(def int) int {
	if c == nil || c.SafetyStock == nil {
		return def
	}
	return *c.SafetyStock
}
