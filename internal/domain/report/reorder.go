package report

import "github.com/shopspring/decimal"

// ReorderPolicy parámetros del cálculo de nivel de reorden.
type ReorderPolicy struct {
	LeadTimeDays       int
	WindowDays         int
	DefaultSafetyStock int
}

// DefaultReorderPolicy 14 días de entrega, ventana de 30 días, stock de seguridad 70.
func DefaultReorderPolicy() ReorderPolicy {
	return ReorderPolicy{LeadTimeDays: 14, WindowDays: 30, DefaultSafetyStock: 70}
}

// ReorderResult resultado por producto.
type ReorderResult struct {
	AverageDailyUsage decimal.Decimal
	ReorderLevel      decimal.Decimal
	SafetyStock       int
	NeedsReorder      bool
}

// Evaluate calcula:
//
//	uso_diario   = entregado_en_ventana / WindowDays
//	nivel        = uso_diario * LeadTimeDays + stock_seguridad
//	necesita     = cantidad_actual <= nivel
//
// La comparación usa el nivel sin redondear.
func (p ReorderPolicy) Evaluate(delivered int, safetyStock *int, current int) ReorderResult {
	window := p.WindowDays
	if window <= 0 {
		window = 30
	}
	safety := p.DefaultSafetyStock
	if safetyStock != nil {
		safety = *safetyStock
	}
	usage := decimal.NewFromInt(int64(delivered)).Div(decimal.NewFromInt(int64(window)))
	level := usage.Mul(decimal.NewFromInt(int64(p.LeadTimeDays))).Add(decimal.NewFromInt(int64(safety)))
	return ReorderResult{
		AverageDailyUsage: usage,
		ReorderLevel:      level,
		SafetyStock:       safety,
		NeedsReorder:      decimal.NewFromInt(int64(current)).LessThanOrEqual(level),
	}
}
