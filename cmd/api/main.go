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
	"github.com/jhoicas/mayorista-api/internal/application/auth"
	"github.com/jhoicas/mayorista-api/internal/application/billing"
	"github.com/jhoicas/mayorista-api/internal/application/catalog"
	"github.com/jhoicas/mayorista-api/internal/application/clients"
	"github.com/jhoicas/mayorista-api/internal/application/expense"
	"github.com/jhoicas/mayorista-api/internal/application/ledger"
	"github.com/jhoicas/mayorista-api/internal/application/reports"
	"github.com/jhoicas/mayorista-api/internal/application/stock"
	infrapdf "github.com/jhoicas/mayorista-api/internal/infrastructure/pdf"
	"github.com/jhoicas/mayorista-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/mayorista-api/internal/interfaces/http"
	"github.com/jhoicas/mayorista-api/pkg/config"
	"github.com/jhoicas/mayorista-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	itemRepo := postgres.NewStockItemRepository(pool)
	movRepo := postgres.NewStockMovementRepository(pool)
	ledgerRepo := postgres.NewLedgerRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	expenseRepo := postgres.NewExpenseRepository(pool)
	reportsRepo := postgres.NewReportsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	adjustUC := stock.NewAdjustQuantityUseCase(txRunner, itemRepo, movRepo)
	ledgerUC := ledger.NewLedgerUseCase(txRunner, ledgerRepo)
	clientUC := clients.NewClientUseCase(clientRepo)
	catalogUC := catalog.NewCatalogUseCase(categoryRepo, itemRepo, adjustUC)
	createInvoiceUC := billing.NewCreateInvoiceUseCase(
		txRunner, adjustUC, ledgerUC, clientRepo, itemRepo, invoiceRepo,
	)
	paymentUC := billing.NewRecordPaymentUseCase(txRunner, ledgerUC, clientRepo)
	expenseUC := expense.NewExpenseUseCase(expenseRepo)
	reportsUC := reports.NewReportsUseCase(reportsRepo, log.Zerolog())

	// PDF: representación imprimible de la factura de venta
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.BusinessName)
	invoicePDFUC := billing.NewInvoicePDFUseCase(invoiceRepo, clientRepo, pdfGenerator)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

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
		Title:    "Mayorista API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		ClientUC:      clientUC,
		LedgerUC:      ledgerUC,
		PaymentUC:     paymentUC,
		CatalogUC:     catalogUC,
		StockUC:       adjustUC,
		CreateInvoice: createInvoiceUC,
		InvoicePDF:    invoicePDFUC,
		ExpenseUC:     expenseUC,
		ReportsUC:     reportsUC,
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
