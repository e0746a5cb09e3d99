package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType discriminante del registro unificado de transacciones.
type TransactionType string

const (
	TransactionRestock  TransactionType = "Restock"
	TransactionDelivery TransactionType = "Delivery"
	TransactionWalkIn   TransactionType = "Walk-In"
)

// TransactionTypes orden de fusión: reabastecimiento, entrega, walk-in.
var TransactionTypes = []TransactionType{TransactionRestock, TransactionDelivery, TransactionWalkIn}

// Transaction registro normalizado de cualquiera de las tres fuentes. No se persiste.
// DateIn es nil cuando no existe un reabastecimiento previo que pudiera surtir la salida.
type Transaction struct {
	Type           TransactionType
	ProductID      int64
	ProductName    string
	CategoryName   string
	DeliveryID     *int64
	Quantity       int
	UnitPrice      decimal.Decimal
	DateIn         *time.Time
	DateOut        *time.Time
	DeliveryStatus *string
	TotalDamages   *int
}

// TotalValue cantidad × precio unitario aplicable.
func (t Transaction) TotalValue() decimal.Decimal {
	return t.UnitPrice.Mul(decimal.NewFromInt(int64(t.Quantity)))
}
