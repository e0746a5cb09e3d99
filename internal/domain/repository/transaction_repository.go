package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stockledger-api/internal/domain/entity"
)

// Campos admitidos en TransactionFilter.SearchField.
const (
	SearchFieldAny      = ""
	SearchFieldProduct  = "product"
	SearchFieldCategory = "category"
)

// TransactionFilter filtros compartidos por las tres fuentes de transacciones.
// Cada fuente aplica el rango de fechas sobre su propia fecha de creación.
type TransactionFilter struct {
	ProductID   *int64
	DateFrom    *time.Time // inclusivo
	DateTo      *time.Time // exclusivo
	Categories  []string   // coincidencia exacta sobre el nombre recortado
	Search      string     // contiene, sin distinguir mayúsculas
	SearchField string
}

// TransactionSourceRepository consultas de las tres fuentes del feed unificado.
// Los resultados no traen orden garantizado; el orden global se aplica tras la fusión.
type TransactionSourceRepository interface {
	ListRestocks(ctx context.Context, f TransactionFilter) ([]entity.Transaction, error)
	ListDeliveries(ctx context.Context, f TransactionFilter) ([]entity.Transaction, error)
	ListWalkIns(ctx context.Context, f TransactionFilter) ([]entity.Transaction, error)
}
