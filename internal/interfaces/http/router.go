package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/repuestos-api/internal/application/auth"
	"github.com/jhoicas/repuestos-api/internal/application/delivery"
	"github.com/jhoicas/repuestos-api/internal/application/document"
	"github.com/jhoicas/repuestos-api/internal/application/inventory"
	"github.com/jhoicas/repuestos-api/internal/application/quote"
	"github.com/jhoicas/repuestos-api/internal/application/report"
	"github.com/jhoicas/repuestos-api/internal/application/usecase"
	"github.com/jhoicas/repuestos-api/internal/domain/policy"
	"github.com/jhoicas/repuestos-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	Access        *usecase.AccessService
	UserUC        *usecase.UserUseCase
	WarehouseUC   *usecase.WarehouseUseCase
	PartUC        *usecase.PartUseCase
	Replenishment *inventory.ReplenishmentUseCase
	QuoteUC       *quote.UseCase
	DeliveryUC    *delivery.UseCase
	DocumentUC    *document.UseCase
	ReportUC      *report.UseCase
	ClientUC      *usecase.ClientUseCase
	SellerUC      *usecase.SellerUseCase
	JWTSecret     string
	Logger        *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	api := app.Group("/api")

	// requireCap usa AccessService si está configurado; si no, los permisos del token.
	requireCap := func(c policy.Capability) fiber.Handler {
		if deps.Access == nil {
			return RequireCapability(c, nil)
		}
		return RequireCapability(c, deps.Access)
	}

	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC, log)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/me", authHandler.Me)

	// Warehouses (cualquier usuario autenticado)
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC, log)
	protected.Get("/warehouses", warehouseHandler.List)
	protected.Get("/warehouses/:id", warehouseHandler.GetByID)

	// Products
	products := protected.Group("/products", requireCap(policy.CapInventory))
	partHandler := NewPartHandler(deps.PartUC, deps.Replenishment, log)
	products.Get("/", partHandler.List)
	products.Post("/", partHandler.Create)
	products.Get("/low-stock", partHandler.LowStock)
	products.Get("/export/excel", partHandler.ExportExcel)
	products.Get("/:id", partHandler.GetByID)
	products.Put("/:id", partHandler.Update)
	products.Delete("/:id", partHandler.Delete)
	products.Get("/:id/movements", partHandler.Movements)

	// Quotes
	quotes := protected.Group("/quotes", requireCap(policy.CapQuotes))
	quoteHandler := NewQuoteHandler(deps.QuoteUC, deps.DocumentUC, log)
	quotes.Get("/", quoteHandler.List)
	quotes.Post("/", quoteHandler.Create)
	quotes.Get("/:id", quoteHandler.GetByID)
	quotes.Put("/:id", quoteHandler.Update)
	quotes.Delete("/:id", quoteHandler.Delete)
	quotes.Post("/:id/approve", quoteHandler.Approve)
	quotes.Post("/:id/return", quoteHandler.Return)
	quotes.Get("/:id/pdf", quoteHandler.PDF)

	// Deliveries
	deliveries := protected.Group("/deliveries", requireCap(policy.CapDeliveries))
	deliveryHandler := NewDeliveryHandler(deps.DeliveryUC, deps.DocumentUC, log)
	deliveries.Get("/", deliveryHandler.List)
	deliveries.Get("/:id", deliveryHandler.GetByID)
	deliveries.Delete("/:id", deliveryHandler.Delete)
	deliveries.Post("/:id/return", deliveryHandler.Return)
	deliveries.Get("/:id/pdf", deliveryHandler.PDF)

	// Reports
	reports := protected.Group("/reports", requireCap(policy.CapReports))
	reportHandler := NewReportHandler(deps.ReportUC, log)
	reports.Get("/approved-quotes", reportHandler.ApprovedQuotes)
	reports.Get("/deliveries", reportHandler.Deliveries)
	reports.Get("/sales-by-warehouse", reportHandler.SalesByWarehouse)
	reports.Get("/detailed-sales", reportHandler.DetailedSales)
	reports.Get("/sales-by-seller", reportHandler.SalesBySeller)
	reports.Get("/returns", reportHandler.Returns)
	reports.Get("/:report/export", reportHandler.Export)

	// Clients
	clients := protected.Group("/clients", requireCap(policy.CapClients))
	clientHandler := NewClientHandler(deps.ClientUC, log)
	clients.Get("/", clientHandler.List)
	clients.Post("/", clientHandler.Create)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Put("/:id", clientHandler.Update)
	clients.Delete("/:id", clientHandler.Delete)

	// Sellers
	sellers := protected.Group("/sellers", requireCap(policy.CapSellers))
	sellerHandler := NewSellerHandler(deps.SellerUC, log)
	sellers.Get("/", sellerHandler.List)
	sellers.Post("/", sellerHandler.Create)
	sellers.Get("/:id", sellerHandler.GetByID)
	sellers.Put("/:id", sellerHandler.Update)
	sellers.Delete("/:id", sellerHandler.Delete)

	// Users
	users := protected.Group("/users", requireCap(policy.CapUsers))
	userHandler := NewUserHandler(deps.UserUC, log)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)
}
