package repository

import (
	"context"
	"time"
)

// ProductUsage fila cruda para el cálculo de nivel de reorden.
type ProductUsage struct {
	ProductID         int64
	ProductName       string
	CategoryName      *string
	SafetyStock       *int
	CurrentQuantity   int
	DeliveredQuantity int
}

// ReorderRepository lectura del consumo reciente por producto.
type ReorderRepository interface {
	// ListProductUsage devuelve todos los productos ordenados por cantidad ascendente,
	// con la suma de líneas entregadas desde since en los estados indicados.
	ListProductUsage(ctx context.Context, since time.Time, statuses []string) ([]ProductUsage, error)
}
