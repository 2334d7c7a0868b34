package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/HARD953/supply-chain/internal/application/auth"
	"github.com/HARD953/supply-chain/internal/application/ledger"
	"github.com/HARD953/supply-chain/internal/application/query"
	"github.com/HARD953/supply-chain/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	SupplierUC     *usecase.SupplierUseCase
	CategoryUC     *usecase.CategoryUseCase
	ProductUC      *usecase.ProductUseCase
	RecordMovement *ledger.RecordMovementUseCase
	StockQueries   *query.StockQueryUseCase
	JWTSecret      string
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

	// Suppliers (protegido)
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", supplierHandler.Delete)

	// Categories (protegido)
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	stockHandler := NewStockHandler(deps.RecordMovement, deps.StockQueries)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
	products.Get("/:id/movements", stockHandler.MovementHistory)

	// Stock (protegido): el único punto de mutación de stock
	stockGroup := protected.Group("/stock")
	stockGroup.Post("/movements", stockHandler.RegisterMovement)
	stockGroup.Get("/low", stockHandler.LowStock)

	// Stats (protegido)
	stats := protected.Group("/stats")
	stats.Get("/suppliers", stockHandler.SupplierStats)
	stats.Get("/status", stockHandler.StatusStats)
}
