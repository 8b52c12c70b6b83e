package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pharmaplus/pharmacy-pos/internal/application/auth"
	"github.com/pharmaplus/pharmacy-pos/internal/application/billing"
	"github.com/pharmaplus/pharmacy-pos/internal/application/catalog"
	"github.com/pharmaplus/pharmacy-pos/internal/application/inventory"
	"github.com/pharmaplus/pharmacy-pos/internal/application/purchasing"
	"github.com/pharmaplus/pharmacy-pos/internal/application/reports"
	"github.com/pharmaplus/pharmacy-pos/internal/domain/entity"
)

// RouterDeps holds everything the router wires into handlers.
type RouterDeps struct {
	AuthUC     *auth.UseCase
	MedicineUC *catalog.MedicineUseCase
	StockUC    *inventory.StockUseCase
	CreateBill *billing.CreateBillUseCase
	VoidBill   *billing.VoidBillUseCase
	ReceiptUC  *billing.ReceiptUseCase
	OrderUC    *purchasing.OrderUseCase
	SupplierUC *purchasing.SupplierUseCase
	ReportUC   *reports.UseCase
	JWTSecret  string
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Protected routes (Bearer token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	anyStaff := RequireRole(entity.RoleAdmin, entity.RolePharmacist)
	adminOnly := RequireRole(entity.RoleAdmin)

	protected.Get("/auth/me", authHandler.Me)

	// Medicine catalog
	medicines := protected.Group("/medicines", anyStaff)
	medicineHandler := NewMedicineHandler(deps.MedicineUC)
	medicines.Post("/", medicineHandler.Create)
	medicines.Get("/", medicineHandler.List)
	medicines.Get("/:id", medicineHandler.GetByID)
	medicines.Put("/:id", medicineHandler.Update)
	medicines.Delete("/:id", adminOnly, medicineHandler.Delete)
	medicines.Get("/:id/transactions", medicineHandler.ListTransactions)

	// Manual stock movements
	invGroup := protected.Group("/inventory", anyStaff)
	inventoryHandler := NewInventoryHandler(deps.StockUC)
	invGroup.Post("/transactions", inventoryHandler.RecordTransaction)

	// Bills
	bills := protected.Group("/bills", anyStaff)
	billingHandler := NewBillingHandler(deps.CreateBill, deps.VoidBill, deps.ReceiptUC)
	bills.Post("/", billingHandler.Create)
	bills.Get("/", billingHandler.List)
	bills.Get("/:id", billingHandler.GetByID)
	bills.Get("/:id/receipt", billingHandler.Receipt)
	bills.Post("/:id/void", adminOnly, billingHandler.Void)

	// Suppliers
	suppliers := protected.Group("/suppliers", anyStaff)
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)

	// Purchase orders
	orders := protected.Group("/purchase-orders", anyStaff)
	purchasingHandler := NewPurchasingHandler(deps.OrderUC)
	orders.Post("/", purchasingHandler.Create)
	orders.Get("/", purchasingHandler.List)
	orders.Get("/:id", purchasingHandler.GetByID)
	orders.Post("/:id/receive", purchasingHandler.Receive)
	orders.Post("/:id/payments", purchasingHandler.RecordPayment)
	orders.Post("/:id/cancel", adminOnly, purchasingHandler.Cancel)

	// Reports
	reportGroup := protected.Group("/reports", anyStaff)
	reportHandler := NewReportHandler(deps.ReportUC)
	reportGroup.Get("/sales", reportHandler.Sales)
	reportGroup.Get("/low-stock", reportHandler.LowStock)
	reportGroup.Get("/expiring", reportHandler.Expiring)
	reportGroup.Get("/valuation", reportHandler.Valuation)
}
