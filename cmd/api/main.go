package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	appanalytics "github.com/jhoicas/pdv-api/internal/application/analytics"
	"github.com/jhoicas/pdv-api/internal/application/inventory"
	"github.com/jhoicas/pdv-api/internal/application/sales"
	"github.com/jhoicas/pdv-api/internal/application/usecase"
	"github.com/jhoicas/pdv-api/internal/domain/entity"
	"github.com/jhoicas/pdv-api/internal/domain/finance"
	"github.com/jhoicas/pdv-api/internal/domain/repository"
	"github.com/jhoicas/pdv-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/pdv-api/internal/infrastructure/pdf"
	"github.com/jhoicas/pdv-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/pdv-api/internal/interfaces/http"
	"github.com/jhoicas/pdv-api/internal/scheduler"
	"github.com/jhoicas/pdv-api/pkg/config"
	"github.com/jhoicas/pdv-api/pkg/logger"
)

// storage repositorios y TxRunner del backend elegido por STORAGE_DRIVER.
type storage struct {
	ingredients repository.IngredientRepository
	products    repository.ProductRepository
	sales       repository.SaleRepository
	txRunner    inventory.TxRunner
	close       func()
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	if cfg.Storage.Driver != config.StoragePostgres {
		store := memory.NewStore()
		log.Info().Msg("almacenamiento en memoria (un solo puesto, sin persistencia)")
		return &storage{
			ingredients: store.Ingredients(),
			products:    store.Products(),
			sales:       store.Sales(),
			txRunner:    store.TxRunner(),
			close:       func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if err := postgres.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	log.Info().Msg("almacenamiento PostgreSQL listo")
	return &storage{
		ingredients: postgres.NewIngredientRepository(pool),
		products:    postgres.NewProductRepository(pool),
		sales:       postgres.NewSaleRepository(pool),
		txRunner:    postgres.NewTxRunner(pool),
		close:       pool.Close,
	}, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer st.close()

	fees := entity.FeeTable{
		entity.PaymentCash:     cfg.Payments.FeeCash,
		entity.PaymentDebit:    cfg.Payments.FeeDebit,
		entity.PaymentCredit:   cfg.Payments.FeeCredit,
		entity.PaymentDelivery: cfg.Payments.FeeDelivery,
	}
	settings := finance.Settings{
		FixedCosts:          cfg.Finance.FixedCosts,
		VariableCostPercent: cfg.Finance.VariableCostPercent,
	}

	// Confirmación de ventas y producción por lote comparten el mismo candado.
	stockMu := &sync.Mutex{}

	ingredientUC := inventory.NewIngredientUseCase(st.txRunner, st.ingredients)
	replenishmentUC := inventory.NewReplenishmentUseCase(st.ingredients, st.products)
	productUC := usecase.NewProductUseCase(st.products, st.ingredients)
	availabilityUC := inventory.NewAvailabilityUseCase(st.products, st.ingredients)
	productionUC := inventory.NewProductionUseCase(st.txRunner, stockMu, log)
	confirmUC := sales.NewConfirmSaleUseCase(st.txRunner, stockMu, fees, log)
	cartUC := sales.NewCartUseCase(st.products, st.ingredients, confirmUC)
	queryUC := sales.NewQueryUseCase(st.products, st.ingredients, st.sales, fees)
	receiptUC := sales.NewReceiptUseCase(st.sales, infrapdf.NewMarotoReceiptGenerator(cfg.App.Name))
	financeUC := appanalytics.NewFinanceUseCase(st.sales, settings)

	var sched *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		sched = scheduler.NewScheduler(cfg.Scheduler, ingredientUC, financeUC, log.Named("scheduler"))
		if err := sched.Start(); err != nil {
			log.Fatal().Err(err).Msg("iniciar scheduler")
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "PDV API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "storage": cfg.Storage.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		IngredientUC:      ingredientUC,
		ReplenishmentUC:   replenishmentUC,
		ProductUC:         productUC,
		AvailabilityUC:    availabilityUC,
		ProductionUC:      productionUC,
		CartUC:            cartUC,
		ConfirmSaleUC:     confirmUC,
		SaleQueryUC:       queryUC,
		ReceiptUC:         receiptUC,
		FinanceUC:         financeUC,
		LowStockThreshold: cfg.Scheduler.LowStockThresholdPct,
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

	if sched != nil {
		sched.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
