package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "github.com/jhoicas/stockledger-api/docs"
	"github.com/jhoicas/stockledger-api/internal/application/inventory"
	"github.com/jhoicas/stockledger-api/internal/application/reporting"
	"github.com/jhoicas/stockledger-api/internal/application/sales"
	"github.com/jhoicas/stockledger-api/internal/application/usecase"
	"github.com/jhoicas/stockledger-api/internal/domain/report"
	"github.com/jhoicas/stockledger-api/internal/domain/repository"
	"github.com/jhoicas/stockledger-api/internal/infrastructure/memory"
	"github.com/jhoicas/stockledger-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/stockledger-api/internal/infrastructure/pdf"
	"github.com/jhoicas/stockledger-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/stockledger-api/internal/interfaces/http"
	"github.com/jhoicas/stockledger-api/pkg/config"
	"github.com/jhoicas/stockledger-api/pkg/logger"
)

// repos agrupa los puertos que consumen los casos de uso, sea Postgres o memoria.
type repos struct {
	tx interface {
		inventory.TxRunner
		sales.TxRunner
	}
	products     repository.ProductRepository
	categories   repository.CategoryRepository
	users        repository.UserRepository
	restocks     repository.RestockOrderRepository
	transactions repository.TransactionSourceRepository
	reorder      repository.ReorderRepository
	close        func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
		App:   cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	loc, err := cfg.App.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("zona horaria")
	}

	ctx := context.Background()
	r, err := openRepos(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer r.close()

	productUC := usecase.NewProductUseCase(r.tx, r.products, r.categories, r.users)
	restockUC := inventory.NewRestockUseCase(r.tx, r.restocks, r.products, r.categories, r.users)
	transactionUC := reporting.NewTransactionUseCase(metrics.InstrumentSources(r.transactions), r.products, reporting.Config{
		Location:           loc,
		RestockTotalPolicy: cfg.Report.RestockTotalPolicy,
		DefaultPerPage:     cfg.Report.DefaultPerPage,
	})
	reorderUC := reporting.NewReorderUseCase(r.reorder, report.ReorderPolicy{
		LeadTimeDays:       cfg.Report.LeadTimeDays,
		WindowDays:         cfg.Report.UsageWindowDays,
		DefaultSafetyStock: cfg.Report.DefaultSafetyStock,
	})
	salesUC := sales.NewUseCase(r.tx, r.products, r.users)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Zerolog()))
	app.Use(metrics.Middleware())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "StockLedger API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:     productUC,
		RestockUC:     restockUC,
		TransactionUC: transactionUC,
		ReorderUC:     reorderUC,
		SalesUC:       salesUC,
		FeedRenderer:  infrapdf.NewTransactionReportGenerator(),
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// openRepos conecta a PostgreSQL (migrando si DB_AUTO_MIGRATE) o, sin base configurada,
// arranca con el almacén en memoria y datos de demostración.
func openRepos(ctx context.Context, cfg *config.Config, log *logger.Logger) (*repos, error) {
	if !cfg.DB.Enabled() {
		log.Warn().Msg("sin base de datos configurada: usando almacén en memoria con datos de demostración")
		s := memory.NewSeeded(time.Now())
		return &repos{
			tx:           memory.NewTxRunner(s),
			products:     s.Products(),
			categories:   s.Categories(),
			users:        s.Users(),
			restocks:     s.Restocks(),
			transactions: s.Transactions(),
			reorder:      s.Reorder(),
			close:        func() {},
		}, nil
	}

	if cfg.DB.AutoMigrate {
		if err := postgres.MigrateUp(cfg.DB.ConnectionString()); err != nil {
			return nil, err
		}
		log.Info().Msg("migraciones aplicadas")
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	return &repos{
		tx:           postgres.NewTxRunner(pool),
		products:     postgres.NewProductRepository(pool),
		categories:   postgres.NewCategoryRepository(pool),
		users:        postgres.NewUserRepository(pool),
		restocks:     postgres.NewRestockOrderRepository(pool),
		transactions: postgres.NewTransactionRepository(pool),
		reorder:      postgres.NewReorderRepository(pool),
		close:        pool.Close,
	}, nil
}
