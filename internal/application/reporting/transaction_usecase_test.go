package reporting_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockledger-api/internal/application/dto"
	"github.com/jhoicas/stockledger-api/internal/application/reporting"
	"github.com/jhoicas/stockledger-api/internal/domain"
	"github.com/jhoicas/stockledger-api/internal/domain/entity"
	"github.com/jhoicas/stockledger-api/internal/domain/repository"
	"github.com/jhoicas/stockledger-api/internal/infrastructure/memory"
)

func intPtr(v int) *int { return &v }

func at(day, hour int) *time.Time {
	t := time.Date(2024, 3, day, hour, 0, 0, 0, time.UTC)
	return &t
}

// fakeSources devuelve filas fijas por fuente y cuenta las llamadas.
type fakeSources struct {
	restocks, deliveries, walkIns []entity.Transaction
	restockCalls                  atomic.Int32
	err                           error
}

func (f *fakeSources) ListRestocks(ctx context.Context, _ repository.TransactionFilter) ([]entity.Transaction, error) {
	f.restockCalls.Add(1)
	return f.restocks, f.err
}

func (f *fakeSources) ListDeliveries(ctx context.Context, _ repository.TransactionFilter) ([]entity.Transaction, error) {
	return f.deliveries, nil
}

func (f *fakeSources) ListWalkIns(ctx context.Context, _ repository.TransactionFilter) ([]entity.Transaction, error) {
	return f.walkIns, nil
}

func sampleSources() *fakeSources {
	price := decimal.RequireFromString("10")
	id := int64(7)
	status := entity.DeliveryStatusSettled
	damages := 0
	return &fakeSources{
		restocks: []entity.Transaction{
			{Type: entity.TransactionRestock, ProductID: 1, ProductName: "A", Quantity: 50, UnitPrice: price, DateIn: at(1, 9), DateOut: at(1, 9)},
			{Type: entity.TransactionRestock, ProductID: 1, ProductName: "A", Quantity: 25, UnitPrice: price, DateIn: at(5, 9), DateOut: at(5, 9)},
		},
		deliveries: []entity.Transaction{
			{Type: entity.TransactionDelivery, ProductID: 1, ProductName: "A", Quantity: 5, UnitPrice: price, DeliveryID: &id,
				DeliveryStatus: &status, TotalDamages: &damages, DateIn: at(1, 9), DateOut: at(5, 9)},
		},
		walkIns: []entity.Transaction{
			{Type: entity.TransactionWalkIn, ProductID: 1, ProductName: "A", Quantity: 2, UnitPrice: price, DateOut: at(3, 9)},
			{Type: entity.TransactionWalkIn, ProductID: 1, ProductName: "A", Quantity: 1, UnitPrice: price},
		},
	}
}

func TestFeed_OrdenGlobalYEmpatesEstables(t *testing.T) {
	uc := reporting.NewTransactionUseCase(sampleSources(), nil, reporting.Config{})

	out, err := uc.ViewTransactions(context.Background(), dto.TransactionQuery{})
	require.NoError(t, err)
	require.Len(t, out.Transactions.Data, 5)

	types := make([]string, 0, 5)
	for _, row := range out.Transactions.Data {
		types = append(types, row.TransactionType)
	}
	// Empate el día 5: el reabastecimiento va antes que la entrega por orden de fusión.
	assert.Equal(t, []string{"Restock", "Delivery", "Walk-In", "Restock", "Walk-In"}, types)
	assert.Nil(t, out.Transactions.Data[4].DateOut)
	assert.Nil(t, out.Transactions.Data[4].DateIn)
	assert.Equal(t, 75, out.TotalRestockedQuantity)
	assert.Equal(t, "500.00", out.Transactions.Data[3].TotalValue)
	assert.Equal(t, "3/5/2024 (9:00 am)", *out.Transactions.Data[0].DateOut)
}

func TestFeed_PoliticaTotalAlways(t *testing.T) {
	src := sampleSources()
	uc := reporting.NewTransactionUseCase(src, nil, reporting.Config{RestockTotalPolicy: reporting.TotalPolicyAlways})

	out, err := uc.ViewTransactions(context.Background(), dto.TransactionQuery{TransactionTypes: []string{"Delivery"}})
	require.NoError(t, err)
	assert.Equal(t, 75, out.TotalRestockedQuantity)
	require.Len(t, out.Transactions.Data, 1)
	assert.Equal(t, "Delivery", out.Transactions.Data[0].TransactionType)
	assert.EqualValues(t, 1, src.restockCalls.Load())
}

func TestFeed_PoliticaTotalSelected(t *testing.T) {
	src := sampleSources()
	uc := reporting.NewTransactionUseCase(src, nil, reporting.Config{RestockTotalPolicy: reporting.TotalPolicySelected})

	out, err := uc.ViewTransactions(context.Background(), dto.TransactionQuery{TransactionTypes: []string{"Delivery", "walk-in"}})
	require.NoError(t, err)
	assert.Equal(t, 0, out.TotalRestockedQuantity)
	assert.Len(t, out.Transactions.Data, 3)
	assert.EqualValues(t, 0, src.restockCalls.Load())
}

func TestFeed_Paginacion(t *testing.T) {
	uc := reporting.NewTransactionUseCase(sampleSources(), nil, reporting.Config{})
	ctx := context.Background()

	out, err := uc.ViewTransactions(ctx, dto.TransactionQuery{Page: intPtr(2), PerPage: intPtr(2)})
	require.NoError(t, err)
	assert.Len(t, out.Transactions.Data, 2)
	assert.Equal(t, dto.FeedPagination{Total: 5, PerPage: 2, CurrentPage: 2, LastPage: 3}, out.Transactions.Pagination)

	out, err = uc.ViewTransactions(ctx, dto.TransactionQuery{Page: intPtr(9), PerPage: intPtr(2)})
	require.NoError(t, err)
	assert.NotNil(t, out.Transactions.Data)
	assert.Empty(t, out.Transactions.Data)
	assert.Equal(t, 5, out.Transactions.Pagination.Total)
	assert.Equal(t, 75, out.TotalRestockedQuantity)
}

func TestFeed_ErroresDeValidacion(t *testing.T) {
	uc := reporting.NewTransactionUseCase(sampleSources(), nil, reporting.Config{})

	_, err := uc.ViewTransactions(context.Background(), dto.TransactionQuery{
		Page:             intPtr(0),
		PerPage:          intPtr(-1),
		SearchType:       "sku",
		TransactionTypes: []string{"Refund"},
		DateFrom:         "2024-03-10",
		DateTo:           "2024-03-01",
	})
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	for _, field := range []string{"page", "per_page", "search_type", "transaction_types", "date_range"} {
		assert.Contains(t, ve.Fields, field)
	}
}

func TestFeed_ErrorDeFuentePropaga(t *testing.T) {
	src := sampleSources()
	src.err = errors.New("conexión perdida")
	uc := reporting.NewTransactionUseCase(src, nil, reporting.Config{})

	_, err := uc.ViewTransactions(context.Background(), dto.TransactionQuery{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "conexión perdida")
}

// seedFeed arma un almacén con reabastecimiento, entrega liquidada y venta walk-in.
func seedFeed(t *testing.T) (*memory.Store, entity.Product, entity.Product) {
	t.Helper()
	s := memory.NewStore()
	bev := s.PutCategory(entity.Category{Name: "Beverages"})
	snk := s.PutCategory(entity.Category{Name: "Snacks"})
	user := s.PutUser(entity.User{Name: "Ana"})
	water := s.PutProduct(entity.Product{CategoryID: bev.ID, Name: "Mineral Water", OriginalPrice: decimal.RequireFromString("12.50"), Quantity: 100, CreatedAt: *at(1, 8)})
	chips := s.PutProduct(entity.Product{CategoryID: snk.ID, Name: "Potato Chips", OriginalPrice: decimal.RequireFromString("35"), Quantity: 50, CreatedAt: *at(1, 8)})

	s.PutRestock(entity.RestockOrder{ProductID: water.ID, UserID: user.ID, Quantity: 120, CreatedAt: *at(2, 10)})
	s.PutRestock(entity.RestockOrder{ProductID: water.ID, UserID: user.ID, Quantity: 30, CreatedAt: *at(20, 10)})

	po := s.PutPurchaseOrder(entity.PurchaseOrder{
		SaleTypeID: entity.SaleTypeDelivery, UserID: user.ID, CreatedAt: *at(9, 10),
		Details: []entity.ProductDetail{
			{ProductID: water.ID, Quantity: 10, Price: decimal.RequireFromString("11")},
			{ProductID: chips.ID, Quantity: 4, Price: decimal.RequireFromString("30")},
		},
	})
	s.PutDelivery(entity.Delivery{
		PurchaseOrderID: po.ID, Status: entity.DeliveryStatusSettled, DeliveredAt: at(10, 15), CreatedAt: *at(9, 10),
		Lines: []entity.DeliveryProduct{
			{ProductID: water.ID, Quantity: 10, NoOfDamages: 2},
			{ProductID: chips.ID, Quantity: 4},
		},
	})
	s.PutDelivery(entity.Delivery{
		PurchaseOrderID: po.ID, Status: entity.DeliveryStatusOnDelivery, CreatedAt: *at(9, 11),
		Lines: []entity.DeliveryProduct{{ProductID: water.ID, Quantity: 99}},
	})
	s.PutPurchaseOrder(entity.PurchaseOrder{
		SaleTypeID: entity.SaleTypeWalkIn, UserID: user.ID, CreatedAt: *at(12, 16),
		Details: []entity.ProductDetail{{ProductID: water.ID, Quantity: 3, Price: decimal.RequireFromString("9")}},
	})
	return s, water, chips
}

func TestFeed_MemoriaFechasDeEntradaYPrecios(t *testing.T) {
	s, water, chips := seedFeed(t)
	uc := reporting.NewTransactionUseCase(s.Transactions(), s.Products(), reporting.Config{})

	out, err := uc.ViewTransactions(context.Background(), dto.TransactionQuery{})
	require.NoError(t, err)
	require.Len(t, out.Transactions.Data, 5)
	assert.Equal(t, 150, out.TotalRestockedQuantity)

	var waterDelivery, chipsDelivery, walkIn *dto.TransactionDTO
	for i := range out.Transactions.Data {
		row := &out.Transactions.Data[i]
		switch {
		case row.TransactionType == "Delivery" && row.ProductID == water.ID:
			waterDelivery = row
		case row.TransactionType == "Delivery" && row.ProductID == chips.ID:
			chipsDelivery = row
		case row.TransactionType == "Walk-In":
			walkIn = row
		}
	}
	require.NotNil(t, waterDelivery)
	require.NotNil(t, chipsDelivery)
	require.NotNil(t, walkIn)

	// Entrega: precio de la línea de la orden, date_out = delivered_at, date_in = último reabastecimiento previo.
	assert.Equal(t, "110.00", waterDelivery.TotalValue)
	assert.Equal(t, "3/10/2024 (3:00 pm)", *waterDelivery.DateOut)
	assert.Equal(t, "3/2/2024 (10:00 am)", *waterDelivery.DateIn)
	require.NotNil(t, waterDelivery.TotalDamages)
	assert.Equal(t, 2, *waterDelivery.TotalDamages)

	// Producto sin reabastecimientos: date_in null.
	assert.Nil(t, chipsDelivery.DateIn)

	// Walk-in: precio actual del producto.
	assert.Equal(t, "37.50", walkIn.TotalValue)
	assert.Nil(t, walkIn.DeliveryID)
}

func TestFeed_MemoriaFiltros(t *testing.T) {
	s, water, _ := seedFeed(t)
	uc := reporting.NewTransactionUseCase(s.Transactions(), s.Products(), reporting.Config{})
	ctx := context.Background()

	out, err := uc.ViewTransactions(ctx, dto.TransactionQuery{Categories: []string{" Snacks "}})
	require.NoError(t, err)
	require.Len(t, out.Transactions.Data, 1)
	assert.Equal(t, "Potato Chips", out.Transactions.Data[0].ProductName)
	assert.Equal(t, 0, out.TotalRestockedQuantity)

	out, err = uc.ViewTransactions(ctx, dto.TransactionQuery{Search: "water", SearchType: "product"})
	require.NoError(t, err)
	assert.Len(t, out.Transactions.Data, 4)

	out, err = uc.ViewTransactions(ctx, dto.TransactionQuery{Search: "water", SearchType: "category"})
	require.NoError(t, err)
	assert.Empty(t, out.Transactions.Data)

	out, err = uc.ViewTransactions(ctx, dto.TransactionQuery{Search: "bever"})
	require.NoError(t, err)
	assert.Len(t, out.Transactions.Data, 4)

	out, err = uc.ViewTransactions(ctx, dto.TransactionQuery{DateFrom: "2024-03-02", DateTo: "2024-03-02"})
	require.NoError(t, err)
	require.Len(t, out.Transactions.Data, 1)
	assert.Equal(t, 120, out.TotalRestockedQuantity)

	out, err = uc.ViewProductTransactions(ctx, water.ID, dto.TransactionQuery{TransactionTypes: []string{"Restock"}})
	require.NoError(t, err)
	assert.Len(t, out.Transactions.Data, 2)

	_, err = uc.ViewProductTransactions(ctx, 9999, dto.TransactionQuery{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFeed_NombreDeCategoriaRecortado(t *testing.T) {
	s := memory.NewStore()
	cat := s.PutCategory(entity.Category{Name: "  Dairy "})
	user := s.PutUser(entity.User{Name: "Ana"})
	p := s.PutProduct(entity.Product{CategoryID: cat.ID, Name: "Milk", Quantity: 10})
	s.PutRestock(entity.RestockOrder{ProductID: p.ID, UserID: user.ID, Quantity: 10, CreatedAt: time.Now()})

	uc := reporting.NewTransactionUseCase(s.Transactions(), s.Products(), reporting.Config{})
	out, err := uc.ViewTransactions(context.Background(), dto.TransactionQuery{Categories: []string{"Dairy"}})
	require.NoError(t, err)
	require.Len(t, out.Transactions.Data, 1)
	assert.Equal(t, "Dairy", out.Transactions.Data[0].CategoryName)
}

func TestHistorial_Producto(t *testing.T) {
	s, water, _ := seedFeed(t)
	uc := reporting.NewTransactionUseCase(s.Transactions(), s.Products(), reporting.Config{})
	ctx := context.Background()

	out, err := uc.ProductHistory(ctx, water.ID, dto.ProductHistoryQuery{})
	require.NoError(t, err)
	assert.Equal(t, "Mineral Water", out.ProductName)
	assert.Equal(t, "03/01/2024", out.ProductCreatedDate)
	assert.Equal(t, 100, out.RemainingQuantity)
	assert.Equal(t, 150, out.TotalRestockedQuantity)
	assert.Len(t, out.Transactions.Data, 4)
	assert.Equal(t, 10, out.Transactions.Pagination.PerPage)

	out, err = uc.ProductHistory(ctx, water.ID, dto.ProductHistoryQuery{TransactionType: "Walk-In"})
	require.NoError(t, err)
	assert.Len(t, out.Transactions.Data, 1)

	_, err = uc.ProductHistory(ctx, water.ID, dto.ProductHistoryQuery{TimePeriod: "7_days"})
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Fields, "time_period")

	_, err = uc.ProductHistory(ctx, 9999, dto.ProductHistoryQuery{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
