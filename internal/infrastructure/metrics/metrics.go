// Package metrics expone colectores Prometheus del servicio.
package metrics

import (
	"context"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jhoicas/stockledger-api/internal/domain/entity"
	"github.com/jhoicas/stockledger-api/internal/domain/repository"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	TransactionSourceLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "transaction_source_query_seconds",
		Help:    "Latency of each transaction source query",
		Buckets: prometheus.DefBuckets,
	}, []string{"source"})

	TransactionSourceRows = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "transaction_source_rows_total",
		Help: "Rows returned by each transaction source",
	}, []string{"source"})

	TransactionSourceErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "transaction_source_errors_total",
		Help: "Failed transaction source queries",
	}, []string{"source"})
)

// Middleware registra latencia y conteo por método, ruta (patrón) y estado.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else if status < 400 {
				status = fiber.StatusInternalServerError
			}
		}
		path := c.Route().Path
		labels := prometheus.Labels{"method": c.Method(), "path": path, "status": strconv.Itoa(status)}
		HTTPRequestDuration.With(labels).Observe(time.Since(start).Seconds())
		HTTPRequestsTotal.With(labels).Inc()
		return err
	}
}

// InstrumentedSources decora un TransactionSourceRepository midiendo cada fuente.
type InstrumentedSources struct {
	next repository.TransactionSourceRepository
}

var _ repository.TransactionSourceRepository = (*InstrumentedSources)(nil)

// InstrumentSources envuelve next.
func InstrumentSources(next repository.TransactionSourceRepository) *InstrumentedSources {
	return &InstrumentedSources{next: next}
}

func (s *InstrumentedSources) ListRestocks(ctx context.Context, f repository.TransactionFilter) ([]entity.Transaction, error) {
	return observe(entity.TransactionRestock, func() ([]entity.Transaction, error) { return s.next.ListRestocks(ctx, f) })
}

func (s *InstrumentedSources) ListDeliveries(ctx context.Context, f repository.TransactionFilter) ([]entity.Transaction, error) {
	return observe(entity.TransactionDelivery, func() ([]entity.Transaction, error) { return s.next.ListDeliveries(ctx, f) })
}

func (s *InstrumentedSources) ListWalkIns(ctx context.Context, f repository.TransactionFilter) ([]entity.Transaction, error) {
	return observe(entity.TransactionWalkIn, func() ([]entity.Transaction, error) { return s.next.ListWalkIns(ctx, f) })
}

func observe(source entity.TransactionType, fn func() ([]entity.Transaction, error)) ([]entity.Transaction, error) {
	start := time.Now()
	rows, err := fn()
	label := string(source)
	TransactionSourceLatency.WithLabelValues(label).Observe(time.Since(start).Seconds())
	if err != nil {
		TransactionSourceErrors.WithLabelValues(label).Inc()
		return nil, err
	}
	TransactionSourceRows.WithLabelValues(label).Add(float64(len(rows)))
	return rows, nil
}
