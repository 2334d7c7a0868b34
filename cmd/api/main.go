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

	"github.com/HARD953/supply-chain/internal/application/auth"
	"github.com/HARD953/supply-chain/internal/application/ledger"
	"github.com/HARD953/supply-chain/internal/application/query"
	"github.com/HARD953/supply-chain/internal/application/usecase"
	"github.com/HARD953/supply-chain/internal/infrastructure/postgres"
	httpRouter "github.com/HARD953/supply-chain/internal/interfaces/http"
	"github.com/HARD953/supply-chain/pkg/config"
	"github.com/HARD953/supply-chain/pkg/logger"
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
	supplierRepo := postgres.NewSupplierRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	statsRepo := postgres.NewStatsRepository(pool)

	// TxRunner: unidad atómica del motor de stock. Dentro de la transacción
	// los repositorios operan sobre pgx.Tx, fuera sobre el pool.
	txRunner := postgres.NewTxRunner(pool, cfg.Ledger.LockTimeout())

	recordMovementUC := ledger.NewRecordMovementUseCase(txRunner, productRepo, cfg.Ledger.LockTimeout())
	stockQueryUC := query.NewStockQueryUseCase(
		productRepo, movementRepo, userRepo, statsRepo,
		cfg.Ledger.LowStockThreshold,
	)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo, productRepo)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	productUC := usecase.NewProductUseCase(productRepo, supplierRepo, categoryRepo)
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
		Title:    "Supply Chain API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		SupplierUC:     supplierUC,
		CategoryUC:     categoryUC,
		ProductUC:      productUC,
		RecordMovement: recordMovementUC,
		StockQueries:   stockQueryUC,
		JWTSecret:      cfg.JWT.Secret,
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
