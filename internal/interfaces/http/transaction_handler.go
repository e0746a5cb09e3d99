package http

import (
	"context"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockledger-api/internal/application/dto"
	"github.com/jhoicas/stockledger-api/internal/application/reporting"
	"github.com/jhoicas/stockledger-api/internal/domain"
	"github.com/jhoicas/stockledger-api/internal/infrastructure/pdf"
)

// FeedRenderer genera el documento exportable del feed.
type FeedRenderer interface {
	Generate(ctx context.Context, meta pdf.ReportMeta, feed *dto.TransactionFeedResponse) ([]byte, error)
}

// TransactionHandler reportes de transacciones y nivel de reorden.
type TransactionHandler struct {
	uc       *reporting.TransactionUseCase
	reorder  *reporting.ReorderUseCase
	renderer FeedRenderer
	now      func() time.Time
}

// NewTransactionHandler construye el handler.
func NewTransactionHandler(uc *reporting.TransactionUseCase, reorder *reporting.ReorderUseCase, renderer FeedRenderer) *TransactionHandler {
	return &TransactionHandler{uc: uc, reorder: reorder, renderer: renderer, now: time.Now}
}

// parseFeedQuery lee los filtros del feed. Los enteros mal formados quedan en ve.
func parseFeedQuery(c *fiber.Ctx, ve *domain.ValidationError) dto.TransactionQuery {
	return dto.TransactionQuery{
		Page:             optInt(c, ve, "page", "page"),
		PerPage:          optInt(c, ve, "per_page", "per_page", "perPage"),
		DateFrom:         c.Query("date_from"),
		DateTo:           c.Query("date_to"),
		Categories:       multiQuery(c, "categories"),
		Search:           c.Query("search"),
		SearchType:       c.Query("search_type"),
		TransactionTypes: multiQuery(c, "transaction_types"),
	}
}

// ViewTransactions godoc
// @Summary      Feed unificado de transacciones
// @Description  Reabastecimientos, entregas y ventas walk-in ordenados por fecha de salida descendente.
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        page               query  int     false  "Página"  default(1)
// @Param        per_page           query  int     false  "Tamaño de página (alias perPage)"  default(20)
// @Param        date_from          query  string  false  "YYYY-MM-DD"
// @Param        date_to            query  string  false  "YYYY-MM-DD"
// @Param        categories[]       query  []string  false  "Categorías"  collectionFormat(multi)
// @Param        search             query  string  false  "Texto a buscar"
// @Param        search_type        query  string  false  "product | category"
// @Param        transaction_types[]  query  []string  false  "Restock, Delivery, Walk-In o all"  collectionFormat(multi)
// @Success      200  {object}  dto.TransactionFeedResponse
// @Failure      400  {object}  dto.ValidationErrorResponse
// @Router       /api/inventory/transactions [get]
func (h *TransactionHandler) ViewTransactions(c *fiber.Ctx) error {
	ve := domain.NewValidationError()
	q := parseFeedQuery(c, ve)
	if ve.HasErrors() {
		return writeError(c, ve, "")
	}
	out, err := h.uc.ViewTransactions(c.UserContext(), q)
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(out)
}

// ViewProductTransactions godoc
// @Summary      Feed de transacciones de un producto
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.TransactionFeedResponse
// @Failure      400  {object}  dto.ValidationErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/transactions/product/{id} [get]
func (h *TransactionHandler) ViewProductTransactions(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return writeError(c, err, "")
	}
	ve := domain.NewValidationError()
	q := parseFeedQuery(c, ve)
	if ve.HasErrors() {
		return writeError(c, ve, "")
	}
	out, err := h.uc.ViewProductTransactions(c.UserContext(), id, q)
	if err != nil {
		return writeError(c, err, "producto no encontrado")
	}
	return c.JSON(out)
}

// ProductHistory godoc
// @Summary      Historial de un producto
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        id                path   int     true   "ID del producto"
// @Param        transaction_type  query  string  false  "Restock, Delivery, Walk-In o all (alias transactionType)"
// @Param        time_period       query  string  false  "30_days, 60_days, 90_days o all (alias timePeriod)"
// @Param        page              query  int     false  "Página"  default(1)
// @Param        perPage           query  int     false  "Tamaño de página"  default(10)
// @Success      200  {object}  dto.ProductHistoryResponse
// @Failure      400  {object}  dto.ValidationErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/transactions [get]
func (h *TransactionHandler) ProductHistory(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return writeError(c, err, "")
	}
	ve := domain.NewValidationError()
	q := dto.ProductHistoryQuery{
		TransactionType: queryAlias(c, "transaction_type", "transactionType"),
		TimePeriod:      queryAlias(c, "time_period", "timePeriod"),
		Page:            optInt(c, ve, "page", "page"),
		PerPage:         optInt(c, ve, "perPage", "perPage", "per_page"),
	}
	if ve.HasErrors() {
		return writeError(c, ve, "")
	}
	out, err := h.uc.ProductHistory(c.UserContext(), id, q)
	if err != nil {
		return writeError(c, err, "producto no encontrado")
	}
	return c.JSON(out)
}

// ExportPDF godoc
// @Summary      Exportar feed de transacciones en PDF
// @Description  Mismos filtros que el feed; exporta la página solicitada.
// @Tags         transactions
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ValidationErrorResponse
// @Router       /api/inventory/transactions/pdf [get]
func (h *TransactionHandler) ExportPDF(c *fiber.Ctx) error {
	ve := domain.NewValidationError()
	q := parseFeedQuery(c, ve)
	if ve.HasErrors() {
		return writeError(c, ve, "")
	}
	feed, err := h.uc.ViewTransactions(c.UserContext(), q)
	if err != nil {
		return writeError(c, err, "")
	}
	filters, _ := url.QueryUnescape(string(c.Request().URI().QueryString()))
	doc, err := h.renderer.Generate(c.UserContext(), pdf.ReportMeta{
		Title:       "Reporte de transacciones",
		Filters:     filters,
		GeneratedAt: h.now(),
	}, feed)
	if err != nil {
		return writeError(c, err, "")
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="transactions.pdf"`)
	return c.Send(doc)
}

// ReorderLevel godoc
// @Summary      Productos en nivel de reorden
// @Description  Consumo diario promedio de entregas liquidadas, tiempo de entrega y stock de seguridad.
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        page   query  int  false  "Página"  default(1)
// @Param        limit  query  int  false  "Tamaño de página"  default(20)
// @Success      200  {object}  dto.ReorderLevelResponse
// @Failure      400  {object}  dto.ValidationErrorResponse
// @Router       /api/products/reorder-level [get]
func (h *TransactionHandler) ReorderLevel(c *fiber.Ctx) error {
	ve := domain.NewValidationError()
	q := dto.ReorderQuery{
		Page:  optInt(c, ve, "page", "page"),
		Limit: optInt(c, ve, "limit", "limit"),
	}
	if ve.HasErrors() {
		return writeError(c, ve, "")
	}
	out, err := h.reorder.Evaluate(c.UserContext(), q)
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(out)
}
