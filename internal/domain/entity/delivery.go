package entity

import "time"

// Estados de entrega. Solo DeliveryStatusSettled cuenta como transacción reportable.
const (
	DeliveryStatusScheduled  = "SC" // programada / enviada
	DeliveryStatusProcessing = "P"
	DeliveryStatusOnDelivery = "OD"
	DeliveryStatusSettled    = "S"
	DeliveryStatusFailed     = "F"
)

// ConsumptionStatuses estados que el negocio cuenta como consumo para el nivel de reorden.
var ConsumptionStatuses = []string{
	DeliveryStatusOnDelivery,
	DeliveryStatusProcessing,
	DeliveryStatusSettled,
}

// IsValidDeliveryStatus indica si s pertenece al conjunto cerrado de estados.
func IsValidDeliveryStatus(s string) bool {
	switch s {
	case DeliveryStatusScheduled, DeliveryStatusProcessing, DeliveryStatusOnDelivery,
		DeliveryStatusSettled, DeliveryStatusFailed:
		return true
	}
	return false
}

// Delivery entrega de una orden de compra a un cliente.
type Delivery struct {
	ID              int64
	PurchaseOrderID int64
	Status          string
	DeliveredAt     *time.Time // se fija al liquidar (S)
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Lines           []DeliveryProduct
}

// DeliveryProduct línea de una entrega.
type DeliveryProduct struct {
	ID          int64
	DeliveryID  int64
	ProductID   int64
	Quantity    int
	NoOfDamages int
}
