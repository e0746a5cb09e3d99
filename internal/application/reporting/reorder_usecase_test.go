package reporting_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockledger-api/internal/application/dto"
	"github.com/jhoicas/stockledger-api/internal/application/reporting"
	"github.com/jhoicas/stockledger-api/internal/domain"
	"github.com/jhoicas/stockledger-api/internal/domain/entity"
	"github.com/jhoicas/stockledger-api/internal/domain/report"
	"github.com/jhoicas/stockledger-api/internal/infrastructure/memory"
)

func TestReorden_EjemploDeReferencia(t *testing.T) {
	s := memory.NewStore()
	now := time.Now()
	cat := s.PutCategory(entity.Category{Name: "Beverages"})
	low := s.PutProduct(entity.Product{CategoryID: cat.ID, Name: "Water", Quantity: 200})
	s.PutProduct(entity.Product{CategoryID: cat.ID, Name: "Juice", Quantity: 5000})
	orphan := s.PutProduct(entity.Product{Name: "Loose Item", Quantity: 3})
	s.PutDelivery(entity.Delivery{
		Status: entity.DeliveryStatusSettled, CreatedAt: now.AddDate(0, 0, -5),
		Lines: []entity.DeliveryProduct{{ProductID: low.ID, Quantity: 400}},
	})
	s.PutDelivery(entity.Delivery{
		Status: entity.DeliveryStatusProcessing, CreatedAt: now.AddDate(0, 0, -1),
		Lines: []entity.DeliveryProduct{{ProductID: low.ID, Quantity: 20}},
	})
	// Fuera de ventana o en estado que no consume: no cuentan.
	s.PutDelivery(entity.Delivery{
		Status: entity.DeliveryStatusSettled, CreatedAt: now.AddDate(0, 0, -45),
		Lines: []entity.DeliveryProduct{{ProductID: low.ID, Quantity: 900}},
	})
	s.PutDelivery(entity.Delivery{
		Status: entity.DeliveryStatusFailed, CreatedAt: now.AddDate(0, 0, -2),
		Lines: []entity.DeliveryProduct{{ProductID: low.ID, Quantity: 900}},
	})

	uc := reporting.NewReorderUseCase(s.Reorder(), report.DefaultReorderPolicy())
	out, err := uc.Evaluate(context.Background(), dto.ReorderQuery{})
	require.NoError(t, err)

	require.Len(t, out.Data, 2)
	assert.Equal(t, 2, out.ReorderCount)
	assert.Equal(t, dto.ReorderPagination{Total: 2, PerPage: 20, CurrentPage: 1, LastPage: 1}, out.Pagination)

	first := out.Data[0]
	assert.Equal(t, orphan.ID, first.ProductID)
	assert.Equal(t, "N/A", first.CategoryName)
	assert.Equal(t, 70, first.SafetyStock)

	water := out.Data[1]
	assert.Equal(t, low.ID, water.ProductID)
	assert.Equal(t, 420, water.DeliveredQuantity)
	assert.InDelta(t, 14.0, water.AverageDailyUsage, 0.001)
	assert.InDelta(t, 266.0, water.ReorderLevel, 0.001)
	assert.True(t, water.NeedsReorder)
}

func TestReorden_PaginacionYValidacion(t *testing.T) {
	s := memory.NewStore()
	for i := 0; i < 3; i++ {
		s.PutProduct(entity.Product{Name: string(rune('A' + i)), Quantity: i})
	}
	uc := reporting.NewReorderUseCase(s.Reorder(), report.DefaultReorderPolicy())

	out, err := uc.Evaluate(context.Background(), dto.ReorderQuery{Page: intPtr(2), Limit: intPtr(2)})
	require.NoError(t, err)
	assert.Len(t, out.Data, 1)
	assert.Equal(t, 3, out.ReorderCount)
	assert.Equal(t, 2, out.Pagination.LastPage)

	_, err = uc.Evaluate(context.Background(), dto.ReorderQuery{Limit: intPtr(0)})
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Fields, "limit")
}
