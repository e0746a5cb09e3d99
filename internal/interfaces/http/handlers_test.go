package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockledger-api/internal/application/dto"
	"github.com/jhoicas/stockledger-api/internal/application/inventory"
	"github.com/jhoicas/stockledger-api/internal/application/reporting"
	"github.com/jhoicas/stockledger-api/internal/application/sales"
	"github.com/jhoicas/stockledger-api/internal/application/usecase"
	"github.com/jhoicas/stockledger-api/internal/domain/entity"
	"github.com/jhoicas/stockledger-api/internal/domain/report"
	"github.com/jhoicas/stockledger-api/internal/infrastructure/memory"
	"github.com/jhoicas/stockledger-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/stockledger-api/internal/interfaces/http"
)

type fixture struct {
	app     *fiber.App
	store   *memory.Store
	token   string
	cat     entity.Category
	product entity.Product
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := memory.NewStore()
	cat := s.PutCategory(entity.Category{Name: "Beverages"})
	user := s.PutUser(entity.User{Name: "Ana", Email: "ana@example.com"})
	p := s.PutProduct(entity.Product{
		CategoryID: cat.ID, Name: "Water",
		OriginalPrice: decimal.RequireFromString("10.00"), Quantity: 100,
	})

	tx := memory.NewTxRunner(s)
	app := fiber.New()
	app.Use(apphttp.RequestLogger(zerolog.Nop()))
	apphttp.Router(app, apphttp.RouterDeps{
		ProductUC:     usecase.NewProductUseCase(tx, s.Products(), s.Categories(), s.Users()),
		RestockUC:     inventory.NewRestockUseCase(tx, s.Restocks(), s.Products(), s.Categories(), s.Users()),
		TransactionUC: reporting.NewTransactionUseCase(s.Transactions(), s.Products(), reporting.Config{}),
		ReorderUC:     reporting.NewReorderUseCase(s.Reorder(), report.DefaultReorderPolicy()),
		SalesUC:       sales.NewUseCase(tx, s.Products(), s.Users()),
		FeedRenderer:  pdf.NewTransactionReportGenerator(),
		JWTSecret:     testJWTSecret,
	})
	return &fixture{
		app:     app,
		store:   s,
		token:   bearer(t, strconv.FormatInt(user.ID, 10), "admin"),
		cat:     cat,
		product: p,
	}
}

func (f *fixture) do(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Authorization", f.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func (f *fixture) quantity(t *testing.T) int {
	t.Helper()
	p, err := f.store.Products().GetByID(context.Background(), f.product.ID)
	require.NoError(t, err)
	return p.Quantity
}

func TestRutas_RequierenToken(t *testing.T) {
	f := newFixture(t)
	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequestLogger_AsignaRequestID(t *testing.T) {
	f := newFixture(t)
	resp := f.do(t, http.MethodGet, "/api/products", nil)
	assert.NotEmpty(t, resp.Header.Get(apphttp.HeaderRequestID))

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set("Authorization", f.token)
	req.Header.Set(apphttp.HeaderRequestID, "abc-123")
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "abc-123", resp.Header.Get(apphttp.HeaderRequestID))
}

func TestProductos_CrearActualizarEliminar(t *testing.T) {
	f := newFixture(t)

	resp := f.do(t, http.MethodPost, "/api/products", map[string]any{
		"category_id": f.cat.ID, "product_name": "Tea", "original_price": "4.50", "quantity": 5,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created dto.CreateProductResponse
	decode(t, resp, &created)
	assert.Equal(t, "Beverages", created.CategoryName)
	assert.Equal(t, 5, created.TotalStock)

	path := "/api/products/" + strconv.FormatInt(created.ProductID, 10)
	resp = f.do(t, http.MethodPut, path, map[string]any{"product_name": "Green Tea"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated dto.ProductResponse
	decode(t, resp, &updated)
	assert.Equal(t, "Green Tea", updated.ProductName)

	resp = f.do(t, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = f.do(t, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestProductos_CrearInvalidoRetorna400(t *testing.T) {
	f := newFixture(t)
	resp := f.do(t, http.MethodPost, "/api/products", map[string]any{
		"category_id": 999, "product_name": "Water", "original_price": "-1", "quantity": 0,
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body dto.ValidationErrorResponse
	decode(t, resp, &body)
	assert.Equal(t, "VALIDATION", body.Code)
	assert.Contains(t, body.Errors, "quantity")
	assert.Contains(t, body.Errors, "category_id")
}

func TestProductos_ActualizarInvalidoRetorna422(t *testing.T) {
	f := newFixture(t)
	resp := f.do(t, http.MethodPut, "/api/products/"+strconv.FormatInt(f.product.ID, 10), map[string]any{
		"original_price": "-3",
	})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	var body dto.ValidationErrorResponse
	decode(t, resp, &body)
	assert.Contains(t, body.Errors, "original_price")

	resp = f.do(t, http.MethodPut, "/api/products/999", map[string]any{"product_name": "X"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestProductos_IDNoNumericoRetorna400(t *testing.T) {
	f := newFixture(t)
	resp := f.do(t, http.MethodGet, "/api/products/abc", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRestock_CicloHTTP(t *testing.T) {
	f := newFixture(t)

	resp := f.do(t, http.MethodPost, "/api/restock-orders", map[string]any{"product_id": f.product.ID, "quantity": 50})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created dto.CreateRestockOrderResponse
	decode(t, resp, &created)
	assert.Equal(t, 150, created.Product.TotalQuantity)
	assert.Equal(t, "Ana", created.User.Name)

	path := "/api/restock-orders/" + strconv.FormatInt(created.RestockID, 10)
	resp = f.do(t, http.MethodPut, path, map[string]any{"product_id": f.product.ID, "quantity": 30})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 130, f.quantity(t))

	resp = f.do(t, http.MethodGet, "/api/products/"+strconv.FormatInt(f.product.ID, 10)+"/restock-orders", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var summary dto.ProductRestockSummaryResponse
	decode(t, resp, &summary)
	assert.Equal(t, 130, summary.InStock)
	assert.Len(t, summary.RestockOrders, 1)

	resp = f.do(t, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, 100, f.quantity(t))

	resp = f.do(t, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestFeed_RespuestaYPaginacion(t *testing.T) {
	f := newFixture(t)
	resp := f.do(t, http.MethodPost, "/api/restock-orders", map[string]any{"product_id": f.product.ID, "quantity": 25})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/api/inventory/transactions?perPage=5&categories[]=Beverages", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var raw map[string]any
	decode(t, resp, &raw)
	assert.EqualValues(t, 25, raw["total_restocked_quantity"])
	page := raw["transactions"].(map[string]any)["pagination"].(map[string]any)
	assert.EqualValues(t, 5, page["perPage"])
	assert.EqualValues(t, 1, page["total"])
	assert.EqualValues(t, 1, page["lastPage"])
}

func TestFeed_ParametrosInvalidos(t *testing.T) {
	f := newFixture(t)
	cases := map[string]string{
		"/api/inventory/transactions?per_page=0":                              "per_page",
		"/api/inventory/transactions?page=abc":                                "page",
		"/api/inventory/transactions?transaction_types=Gift":                  "transaction_types",
		"/api/inventory/transactions?date_from=2024-05-10&date_to=2024-05-01": "date_range",
	}
	for path, field := range cases {
		resp := f.do(t, http.MethodGet, path, nil)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode, path)
		var body dto.ValidationErrorResponse
		decode(t, resp, &body)
		assert.Contains(t, body.Errors, field, path)
	}
}

func TestFeed_ProductoInexistenteRetorna404(t *testing.T) {
	f := newFixture(t)
	resp := f.do(t, http.MethodGet, "/api/inventory/transactions/product/999", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp = f.do(t, http.MethodGet, "/api/products/999/transactions", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestFeed_ExportaPDF(t *testing.T) {
	f := newFixture(t)
	resp := f.do(t, http.MethodGet, "/api/inventory/transactions/pdf?transaction_types=all", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF")))
}

func TestReorderLevel_NoLaCapturaID(t *testing.T) {
	f := newFixture(t)
	resp := f.do(t, http.MethodGet, "/api/products/reorder-level?limit=10", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.ReorderLevelResponse
	decode(t, resp, &out)
	assert.Equal(t, 10, out.Pagination.PerPage)

	resp = f.do(t, http.MethodGet, "/api/products/reorder-level?limit=0", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestVentas_WalkInYEstadoDeEntrega(t *testing.T) {
	f := newFixture(t)

	resp := f.do(t, http.MethodPost, "/api/sales/walk-in", map[string]any{
		"items": []map[string]any{{"product_id": f.product.ID, "quantity": 10}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, 90, f.quantity(t))

	resp = f.do(t, http.MethodPost, "/api/sales/walk-in", map[string]any{
		"items": []map[string]any{{"product_id": f.product.ID, "quantity": 500}},
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, 90, f.quantity(t))

	d := f.store.PutDelivery(entity.Delivery{
		Status: entity.DeliveryStatusOnDelivery,
		Lines:  []entity.DeliveryProduct{{ProductID: f.product.ID, Quantity: 30}},
	})
	path := "/api/deliveries/" + strconv.FormatInt(d.ID, 10) + "/status"
	resp = f.do(t, http.MethodPatch, path, map[string]any{"status": "S"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 60, f.quantity(t))

	resp = f.do(t, http.MethodPatch, path, map[string]any{"status": "X"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp = f.do(t, http.MethodPatch, "/api/deliveries/999/status", map[string]any{"status": "S"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHistorial_AceptaAliasCamelCase(t *testing.T) {
	f := newFixture(t)
	base := "/api/products/" + strconv.FormatInt(f.product.ID, 10) + "/transactions"

	resp := f.do(t, http.MethodGet, base+"?transactionType=Gift", nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body dto.ValidationErrorResponse
	decode(t, resp, &body)
	assert.Contains(t, body.Errors, "transaction_type")

	resp = f.do(t, http.MethodGet, base+"?timePeriod=7_days", nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var periodBody dto.ValidationErrorResponse
	decode(t, resp, &periodBody)
	assert.Contains(t, periodBody.Errors, "time_period")
	assert.NotContains(t, periodBody.Errors, "transaction_type")

	resp = f.do(t, http.MethodGet, base+"?transactionType=Restock&timePeriod=30_days", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestFeed_PaginaEnormeDevuelveVacio(t *testing.T) {
	f := newFixture(t)
	resp := f.do(t, http.MethodPost, "/api/restock-orders", map[string]any{"product_id": f.product.ID, "quantity": 5})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/api/inventory/transactions?page=4611686018427387905&per_page=4", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.TransactionFeedResponse
	decode(t, resp, &out)
	assert.Empty(t, out.Transactions.Data)
	assert.Equal(t, 1, out.Transactions.Pagination.Total)
	assert.Equal(t, 1, out.Transactions.Pagination.LastPage)
}

func TestRequestLogger_RegistraUsuarioYRol(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New()
	app.Use(apphttp.RequestLogger(zerolog.New(&buf)))
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", bearer(t, "7", "admin"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "7", entry["user_id"])
	assert.Equal(t, "admin", entry["role"])
	assert.EqualValues(t, 204, entry["status"])
}
