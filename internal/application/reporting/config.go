// Package reporting arma el feed unificado de transacciones y el reporte de nivel de reorden.
package reporting

import (
	"time"

	"github.com/jhoicas/stockledger-api/internal/domain/report"
)

// Políticas para total_restocked_quantity.
const (
	// TotalPolicyAlways calcula el total aunque Restock no esté seleccionado.
	TotalPolicyAlways = "always"
	// TotalPolicySelected solo calcula el total cuando Restock está seleccionado.
	TotalPolicySelected = "selected"
)

// Config parámetros de presentación y cálculo de los reportes.
type Config struct {
	Location           *time.Location
	RestockTotalPolicy string
	DefaultPerPage     int
	HistoryPerPage     int
}

func (c Config) withDefaults() Config {
	if c.Location == nil {
		c.Location = time.UTC
	}
	if c.RestockTotalPolicy != TotalPolicySelected {
		c.RestockTotalPolicy = TotalPolicyAlways
	}
	if c.DefaultPerPage <= 0 {
		c.DefaultPerPage = report.DefaultPerPage
	}
	if c.HistoryPerPage <= 0 {
		c.HistoryPerPage = 10
	}
	return c
}
