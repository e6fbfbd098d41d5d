package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/mayorista-api/internal/application/auth"
	"github.com/jhoicas/mayorista-api/internal/application/billing"
	"github.com/jhoicas/mayorista-api/internal/application/catalog"
	"github.com/jhoicas/mayorista-api/internal/application/clients"
	"github.com/jhoicas/mayorista-api/internal/application/expense"
	"github.com/jhoicas/mayorista-api/internal/application/ledger"
	"github.com/jhoicas/mayorista-api/internal/application/reports"
	"github.com/jhoicas/mayorista-api/internal/application/stock"
	"github.com/jhoicas/mayorista-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	ClientUC      *clients.ClientUseCase
	LedgerUC      *ledger.LedgerUseCase
	PaymentUC     *billing.RecordPaymentUseCase
	CatalogUC     *catalog.CatalogUseCase
	StockUC       *stock.AdjustQuantityUseCase
	CreateInvoice *billing.CreateInvoiceUseCase
	InvoicePDF    *billing.InvoicePDFUseCase
	ExpenseUC     *expense.ExpenseUseCase
	ReportsUC     *reports.ReportsUseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)

	// Clients + ledger + payments (protegido)
	clientsGroup := protected.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC, deps.LedgerUC, deps.PaymentUC)
	clientsGroup.Post("/", clientHandler.Create)
	clientsGroup.Get("/", clientHandler.List)
	clientsGroup.Get("/:id", clientHandler.GetByID)
	clientsGroup.Put("/:id", clientHandler.Update)
	clientsGroup.Delete("/:id", adminOnly, clientHandler.Delete)
	clientsGroup.Get("/:id/ledger", clientHandler.GetLedger)
	clientsGroup.Post("/:id/ledger", clientHandler.AppendLedgerEntry)
	clientsGroup.Post("/:id/payments", clientHandler.RecordPayment)

	// Categories (protegido)
	categories := protected.Group("/categories")
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	categories.Post("/", catalogHandler.CreateCategory)
	categories.Get("/", catalogHandler.ListCategories)
	categories.Delete("/:id", adminOnly, catalogHandler.DeleteCategory)

	// Stock items + movements (protegido)
	items := protected.Group("/stock-items")
	stockHandler := NewStockHandler(deps.StockUC)
	items.Post("/", catalogHandler.CreateStockItem)
	items.Get("/", catalogHandler.ListStockItems)
	items.Get("/:id", catalogHandler.GetStockItem)
	items.Put("/:id", catalogHandler.UpdateStockItem)
	items.Delete("/:id", adminOnly, catalogHandler.DeleteStockItem)
	items.Post("/:id/movements", stockHandler.RegisterMovement)
	items.Get("/:id/movements", stockHandler.ListMovements)

	// Alertas de stock bajo (protegido)
	protected.Get("/stock/alerts", stockHandler.LowStockAlerts)

	// Invoices (protegido)
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.CreateInvoice, deps.InvoicePDF)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Get("/:id/pdf", invoiceHandler.GetPDF)

	// Expenses (protegido; borrar es solo admin)
	expenses := protected.Group("/expenses")
	expenseHandler := NewExpenseHandler(deps.ExpenseUC)
	expenses.Post("/categories", expenseHandler.CreateCategory)
	expenses.Get("/categories", expenseHandler.ListCategories)
	expenses.Post("/", expenseHandler.Create)
	expenses.Get("/", expenseHandler.List)
	expenses.Delete("/:id", adminOnly, expenseHandler.Delete)

	// Dashboard (protegido)
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.ReportsUC)
	dashboard.Get("/summary", dashboardHandler.GetSummary)
}
