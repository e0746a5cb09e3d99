package report

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// DayRange convierte date_from/date_to (YYYY-MM-DD) en límites [from, toExclusive).
// Ambos extremos son inclusivos por día calendario en loc.
func DayRange(fromStr, toStr string, loc *time.Location) (from, toExclusive *time.Time, err error) {
	if loc == nil {
		loc = time.UTC
	}
	if fromStr != "" {
		t, err := time.ParseInLocation(dateLayout, fromStr, loc)
		if err != nil {
			return nil, nil, fmt.Errorf("date_from inválido: %w", err)
		}
		from = &t
	}
	if toStr != "" {
		t, err := time.ParseInLocation(dateLayout, toStr, loc)
		if err != nil {
			return nil, nil, fmt.Errorf("date_to inválido: %w", err)
		}
		next := t.AddDate(0, 0, 1)
		toExclusive = &next
	}
	if from != nil && toExclusive != nil && !from.Before(*toExclusive) {
		return nil, nil, fmt.Errorf("date_from no puede ser posterior a date_to")
	}
	return from, toExclusive, nil
}

// Periodos relativos del historial por producto.
const (
	Period30Days = "30_days"
	Period60Days = "60_days"
	Period90Days = "90_days"
	PeriodAll    = "all"
)

// PeriodStart devuelve el inicio del periodo relativo a now; nil para "all" o vacío.
func PeriodStart(period string, now time.Time) (*time.Time, error) {
	var days int
	switch period {
	case "", PeriodAll:
		return nil, nil
	case Period30Days:
		days = 30
	case Period60Days:
		days = 60
	case Period90Days:
		days = 90
	default:
		return nil, fmt.Errorf("time_period desconocido: %q", period)
	}
	t := now.AddDate(0, 0, -days)
	return &t, nil
}
