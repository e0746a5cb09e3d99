package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockledger-api/internal/application/inventory"
	"github.com/jhoicas/stockledger-api/internal/application/reporting"
	"github.com/jhoicas/stockledger-api/internal/application/sales"
	"github.com/jhoicas/stockledger-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC     *usecase.ProductUseCase
	RestockUC     *inventory.RestockUseCase
	TransactionUC *reporting.TransactionUseCase
	ReorderUC     *reporting.ReorderUseCase
	SalesUC       *sales.UseCase
	FeedRenderer  FeedRenderer
	JWTSecret     string
}

// Router registra las rutas de la API. Todas requieren Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	productHandler := NewProductHandler(deps.ProductUC)
	restockHandler := NewRestockHandler(deps.RestockUC)
	txHandler := NewTransactionHandler(deps.TransactionUC, deps.ReorderUC, deps.FeedRenderer)
	salesHandler := NewSalesHandler(deps.SalesUC)

	// Products; reorder-level antes de /:id
	products := api.Group("/products")
	products.Get("/reorder-level", txHandler.ReorderLevel)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
	products.Get("/:id/restock-orders", restockHandler.ProductSummary)
	products.Get("/:id/transactions", txHandler.ProductHistory)

	restocks := api.Group("/restock-orders")
	restocks.Get("/", restockHandler.List)
	restocks.Post("/", restockHandler.Create)
	restocks.Get("/:id", restockHandler.GetByID)
	restocks.Put("/:id", restockHandler.Update)
	restocks.Delete("/:id", restockHandler.Delete)

	txs := api.Group("/inventory/transactions")
	txs.Get("/", txHandler.ViewTransactions)
	txs.Get("/pdf", txHandler.ExportPDF)
	txs.Get("/product/:id", txHandler.ViewProductTransactions)

	api.Post("/sales/walk-in", salesHandler.RegisterWalkIn)
	api.Patch("/deliveries/:id/status", salesHandler.ChangeDeliveryStatus)
}
