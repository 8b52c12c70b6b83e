package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/pharmaplus/pharmacy-pos/internal/application/auth"
	"github.com/pharmaplus/pharmacy-pos/internal/application/billing"
	"github.com/pharmaplus/pharmacy-pos/internal/application/catalog"
	"github.com/pharmaplus/pharmacy-pos/internal/application/inventory"
	"github.com/pharmaplus/pharmacy-pos/internal/application/purchasing"
	"github.com/pharmaplus/pharmacy-pos/internal/application/reports"
	infrapdf "github.com/pharmaplus/pharmacy-pos/internal/infrastructure/pdf"
	"github.com/pharmaplus/pharmacy-pos/internal/infrastructure/postgres"
	httpRouter "github.com/pharmaplus/pharmacy-pos/internal/interfaces/http"
	"github.com/pharmaplus/pharmacy-pos/pkg/config"
	"github.com/pharmaplus/pharmacy-pos/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("schema migration")
	}

	// Pool-bound repositories for reads outside transactions. Transactional
	// writes get tx-bound repositories from the TxRunner.
	userRepo := postgres.NewUserRepository(pool)
	medicineRepo := postgres.NewMedicineRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	ledgerRepo := postgres.NewStockTransactionRepository(pool)
	billRepo := postgres.NewBillRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	orderRepo := postgres.NewPurchaseOrderRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewUseCase(userRepo, cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiration)
	medicineUC := catalog.NewMedicineUseCase(medicineRepo, stockRepo, ledgerRepo)
	stockUC := inventory.NewStockUseCase(txRunner)
	createBillUC := billing.NewCreateBillUseCase(txRunner, stockUC, billRepo, medicineRepo)
	voidBillUC := billing.NewVoidBillUseCase(txRunner, stockUC)
	receiptUC := billing.NewReceiptUseCase(billRepo, medicineRepo, infrapdf.NewMarotoReceiptGenerator(cfg.App.Name))
	orderUC := purchasing.NewOrderUseCase(txRunner, stockUC, orderRepo, supplierRepo, medicineRepo)
	supplierUC := purchasing.NewSupplierUseCase(supplierRepo)
	reportUC := reports.NewUseCase(reportRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    cfg.App.Name,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		MedicineUC: medicineUC,
		StockUC:    stockUC,
		CreateBill: createBillUC,
		VoidBill:   voidBillUC,
		ReceiptUC:  receiptUC,
		OrderUC:    orderUC,
		SupplierUC: supplierUC,
		ReportUC:   reportUC,
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, closing server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
