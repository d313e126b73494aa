package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Stockio-api/internal/application/auth"
	"github.com/jhoicas/Stockio-api/internal/application/counting"
	"github.com/jhoicas/Stockio-api/internal/application/prep"
	"github.com/jhoicas/Stockio-api/internal/application/reports"
	"github.com/jhoicas/Stockio-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	InventoryUC  *usecase.InventoryUseCase
	CycleCountUC *counting.CycleCountUseCase
	PrepUC       *prep.PrepUseCase
	VendorUC     *usecase.VendorUseCase
	OrderUC      *usecase.OrderUseCase
	ScanUC       *usecase.ScanUseCase
	DashboardUC  *usecase.DashboardUseCase
	ReportUC     *reports.ReportUseCase
	AuthUC       *auth.AuthUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// El resto de la API corre tras el middleware de tenant: un Bearer válido
	// delimita las consultas a su organización; sin token no hay scope.
	scoped := api.Group("/", TenantMiddleware(deps.JWTSecret))

	// Items
	items := scoped.Group("/items")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	items.Post("/", inventoryHandler.Create)
	items.Get("/", inventoryHandler.List)
	items.Get("/:id", inventoryHandler.GetByID)
	items.Patch("/:id", inventoryHandler.Update)
	items.Delete("/:id", inventoryHandler.Delete)

	// Cycle counts
	counts := scoped.Group("/cycle-counts")
	countHandler := NewCycleCountHandler(deps.CycleCountUC)
	reportHandler := NewReportHandler(deps.ReportUC)
	counts.Post("/", countHandler.Start)
	counts.Get("/", countHandler.List)
	counts.Get("/:id", countHandler.GetByID)
	counts.Patch("/:id", countHandler.Update)
	counts.Delete("/:id", countHandler.Delete)
	counts.Post("/:id/items/:itemId/count", countHandler.RecordCount)
	counts.Post("/:id/complete", countHandler.Complete)
	counts.Get("/:id/report.pdf", reportHandler.CycleCountReportPDF)

	// Prep tracker
	prepGroup := scoped.Group("/prep-items")
	prepHandler := NewPrepHandler(deps.PrepUC)
	prepGroup.Post("/", prepHandler.Create)
	prepGroup.Get("/", prepHandler.List)
	prepGroup.Post("/reset", prepHandler.ResetLevels)
	prepGroup.Get("/:id", prepHandler.GetByID)
	prepGroup.Patch("/:id", prepHandler.Update)
	prepGroup.Delete("/:id", prepHandler.Delete)
	prepGroup.Post("/:id/prep", prepHandler.RecordPrep)
	prepGroup.Get("/:id/logs", prepHandler.ListLogs)
	scoped.Get("/prep-sheet", prepHandler.PrepSheet)
	scoped.Get("/prep-sheet/pdf", reportHandler.PrepSheetPDF)

	// Vendors
	vendors := scoped.Group("/vendors")
	vendorHandler := NewVendorHandler(deps.VendorUC)
	vendors.Post("/", vendorHandler.Create)
	vendors.Get("/", vendorHandler.List)
	vendors.Get("/:id", vendorHandler.GetByID)
	vendors.Patch("/:id", vendorHandler.Update)
	vendors.Delete("/:id", vendorHandler.Delete)

	// Orders
	orders := scoped.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC)
	orders.Post("/", orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Patch("/:id", orderHandler.Update)
	orders.Delete("/:id", orderHandler.Delete)
	orders.Post("/:id/submit", orderHandler.Submit)
	orders.Post("/:id/receive", orderHandler.Receive)

	// Scan (IA)
	scan := scoped.Group("/scan")
	scanHandler := NewScanHandler(deps.ScanUC)
	scan.Post("/shelf", scanHandler.ScanShelf)
	scan.Post("/invoice", scanHandler.ScanInvoice)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	scoped.Get("/dashboard", dashboardHandler.GetDashboard)
}
