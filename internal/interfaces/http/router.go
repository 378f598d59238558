package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-management-api/internal/application/auth"
	"github.com/jhoicas/inventory-management-api/internal/application/inventory"
	"github.com/jhoicas/inventory-management-api/internal/application/reports"
	"github.com/jhoicas/inventory-management-api/internal/application/usecase"
	"github.com/jhoicas/inventory-management-api/internal/domain/entity"
)

// AppConfig configuración de Fiber compartida por cmd/api y los tests de handlers.
// Immutable: los parámetros de ruta se guardan en entidades y no pueden apuntar al
// buffer que fasthttp reutiliza entre peticiones.
func AppConfig(appName string) fiber.Config {
	return fiber.Config{
		AppName:      appName,
		Immutable:    true,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    20 * 1024 * 1024, // adjuntos de la organización
		ErrorHandler: ErrorHandler,
	}
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	UserUC         *usecase.UserUseCase
	ProductUC      *usecase.ProductUseCase
	CategoryUC     *usecase.CategoryUseCase
	CustomerUC     *usecase.CustomerUseCase
	OrganizationUC *usecase.OrganizationUseCase
	StockHistoryUC *usecase.StockHistoryUseCase
	ExportUC       *usecase.ExportUseCase
	OrderUC        *inventory.OrderUseCase
	TransferUC     *inventory.TransferUseCase
	ReportsUC      *reports.UseCase

	ServiceName        string
	JWTSecret          string
	CookieSecure       bool
	LoginRatePerMinute int
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})

	authMW := AuthMiddleware(deps.JWTSecret)
	adminOnly := RequirePrivileges(entity.PrivilegeAdmin)
	approvers := RequirePrivileges(entity.PrivilegeWorker, entity.PrivilegeAdmin)

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.CookieSecure)
	authGroup := app.Group("/auth")
	authGroup.Post("/signup", authHandler.Signup)
	authGroup.Post("/login", LoginRateLimiter(deps.LoginRatePerMinute), authHandler.Login)
	authGroup.Post("/refresh", authHandler.Refresh)
	authGroup.Post("/logout", authHandler.Logout)

	// Users
	userHandler := NewUserHandler(deps.UserUC)
	users := app.Group("/users", authMW)
	users.Get("/", adminOnly, userHandler.List)
	users.Get("/me", userHandler.Me)
	users.Post("/change-password", userHandler.ChangePassword)

	// Products: lecturas públicas; las rutas fijas van antes de /:id
	productHandler := NewProductHandler(deps.ProductUC, deps.StockHistoryUC, deps.ExportUC)
	products := app.Group("/products")
	products.Get("/", productHandler.List)
	products.Get("/export", authMW, productHandler.Export)
	products.Get("/detailed/:id", productHandler.GetByID)
	products.Get("/by-category/:category_id", productHandler.ListByCategory)
	products.Get("/:id/history", authMW, productHandler.History)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", authMW, productHandler.Create)
	products.Put("/:id", authMW, productHandler.Update)
	products.Delete("/:id", authMW, productHandler.Delete)

	// Categories
	categoryHandler := NewCategoryHandler(deps.CategoryUC, deps.ProductUC)
	categories := app.Group("/categories")
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Post("/", authMW, categoryHandler.Create)
	categories.Put("/:id", authMW, categoryHandler.Update)
	categories.Delete("/:id", authMW, categoryHandler.Delete)
	categories.Post("/:id/products", authMW, categoryHandler.CreateProduct)
	categories.Put("/:id/products/:product_id", authMW, categoryHandler.UpdateProduct)
	categories.Delete("/:id/products/:product_id", authMW, categoryHandler.DeleteProduct)

	// Organization: mutaciones solo admin
	orgHandler := NewOrganizationHandler(deps.OrganizationUC)
	org := app.Group("/organization", authMW)
	org.Get("/", orgHandler.List)
	org.Get("/:id/attachment", orgHandler.Attachment)
	org.Post("/", adminOnly, orgHandler.Upsert)
	org.Post("/:id/sub-inventory", adminOnly, orgHandler.CreateSubInventory)
	org.Put("/:id/sub-inventory/:sid", adminOnly, orgHandler.UpdateSubInventory)
	org.Delete("/:id/sub-inventory/:sid", adminOnly, orgHandler.DeleteSubInventory)
	org.Post("/:id/sub-inventory/:sid/locator", adminOnly, orgHandler.CreateLocator)
	org.Put("/:id/sub-inventory/:sid/locator/:lid", adminOnly, orgHandler.UpdateLocator)
	org.Delete("/:id/sub-inventory/:sid/locator/:lid", adminOnly, orgHandler.DeleteLocator)

	// Customers
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers := app.Group("/customers", authMW)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)

	// Orders
	orderHandler := NewOrderHandler(deps.OrderUC, deps.ReportsUC)
	orders := app.Group("/orders", authMW)
	orders.Post("/", orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id/report", orderHandler.Report)
	orders.Put("/:id/status", orderHandler.UpdateStatus)
	orders.Put("/:id/approve", approvers, orderHandler.Approve)
	orders.Put("/:id/reject", approvers, orderHandler.Reject)
	orders.Delete("/:id", orderHandler.Delete)

	// Stock transfers
	transferHandler := NewStockTransferHandler(deps.TransferUC, deps.ReportsUC, deps.ExportUC)
	transfers := app.Group("/stock-transfers", authMW)
	transfers.Post("/", transferHandler.Create)
	transfers.Get("/", transferHandler.List)
	transfers.Get("/export", transferHandler.Export)
	transfers.Get("/:id", transferHandler.Get)
	transfers.Get("/:id/report", transferHandler.Report)
	transfers.Put("/:id/approve", transferHandler.Approve)
	transfers.Put("/:id/complete", transferHandler.Complete)
	transfers.Put("/:id/cancel", transferHandler.Cancel)

	// Stock history
	historyHandler := NewStockHistoryHandler(deps.StockHistoryUC)
	app.Get("/stock-history", authMW, historyHandler.List)
}
