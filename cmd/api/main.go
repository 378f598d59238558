package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/inventory-management-api/internal/application/auth"
	"github.com/jhoicas/inventory-management-api/internal/application/inventory"
	"github.com/jhoicas/inventory-management-api/internal/application/ports"
	"github.com/jhoicas/inventory-management-api/internal/application/reports"
	"github.com/jhoicas/inventory-management-api/internal/application/usecase"
	"github.com/jhoicas/inventory-management-api/internal/infrastructure/cache"
	"github.com/jhoicas/inventory-management-api/internal/infrastructure/export"
	infrapdf "github.com/jhoicas/inventory-management-api/internal/infrastructure/pdf"
	"github.com/jhoicas/inventory-management-api/internal/infrastructure/postgres"
	"github.com/jhoicas/inventory-management-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/inventory-management-api/internal/interfaces/http"
	"github.com/jhoicas/inventory-management-api/pkg/config"
	"github.com/jhoicas/inventory-management-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

// @title                       Inventory Management API
// @version                     1.0
// @description                 Inventario con órdenes, transferencias entre localizadores y reportes PDF.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()

	if cfg.DB.AutoMigrate {
		migrator, err := postgres.NewMigrator(cfg.DB.ConnectionString(), log.Named("migrate"))
		if err != nil {
			log.Fatal().Err(err).Msg("inicializar migraciones")
		}
		if err := migrator.Up(); err != nil {
			log.Fatal().Err(err).Msg("aplicar migraciones")
		}
		_ = migrator.Close()
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Caché de reportes: sin REDIS_ADDR, o si Redis no responde, se generan siempre.
	var reportCache ports.ReportCache = cache.Noop{}
	if cfg.Redis.Addr != "" {
		client, err := cache.Connect(ctx, cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis no disponible, caché de reportes desactivada")
		} else {
			defer client.Close()
			reportCache = cache.NewRedisCache(client, cfg.Redis.ReportCacheTTL)
		}
	}

	files, err := storage.New(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Storage.Driver).Msg("almacenamiento de adjuntos")
	}

	repos := postgres.NewTxRepos(pool)
	txRunner := postgres.NewTxRunner(pool)
	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	transferRepo := postgres.NewStockTransferRepository(pool)
	orgRepo := postgres.NewOrganizationRepository(pool)
	subRepo := postgres.NewSubInventoryRepository(pool)
	locatorRepo := postgres.NewLocatorRepository(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:        cfg.JWT.Secret,
		RefreshSecret: cfg.JWT.RefreshSecret,
		Issuer:        cfg.JWT.Issuer,
		AccessTTL:     cfg.JWT.AccessTTL(),
		RefreshTTL:    cfg.JWT.RefreshTTL(),
	})
	orderUC := inventory.NewOrderUseCase(repos, txRunner, log)
	transferUC := inventory.NewTransferUseCase(repos, txRunner, log)
	exportUC := usecase.NewExportUseCase(productRepo, categoryRepo, transferRepo, export.NewXLSXExporter())
	reportsUC := reports.NewUseCase(orderUC, transferUC, repos, infrapdf.NewMarotoReportGenerator(cfg.App.Name), reportCache, log)

	app := fiber.New(httpRouter.AppConfig(cfg.App.Name))
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.HTTP.CORSOrigins, ","),
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
	}))

	// Swagger UI en local: http://localhost:<port>/docs (el JSON lo genera swag init)
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Inventory Management API",
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("swagger.json no encontrado, /docs desactivado")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:             authUC,
		UserUC:             usecase.NewUserUseCase(userRepo),
		ProductUC:          usecase.NewProductUseCase(productRepo, categoryRepo),
		CategoryUC:         usecase.NewCategoryUseCase(categoryRepo, productRepo, subRepo, locatorRepo),
		CustomerUC:         usecase.NewCustomerUseCase(customerRepo),
		OrganizationUC:     usecase.NewOrganizationUseCase(orgRepo, subRepo, locatorRepo, txRunner, files, log),
		StockHistoryUC:     usecase.NewStockHistoryUseCase(transferRepo, productRepo, locatorRepo),
		ExportUC:           exportUC,
		OrderUC:            orderUC,
		TransferUC:         transferUC,
		ReportsUC:          reportsUC,
		ServiceName:        cfg.App.Name,
		JWTSecret:          cfg.JWT.Secret,
		CookieSecure:       cfg.JWT.CookieSecure,
		LoginRatePerMinute: cfg.HTTP.LoginRatePerMinute,
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
