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

	"github.com/jhoicas/Stockio-api/internal/application/auth"
	"github.com/jhoicas/Stockio-api/internal/application/counting"
	"github.com/jhoicas/Stockio-api/internal/application/prep"
	"github.com/jhoicas/Stockio-api/internal/application/reports"
	"github.com/jhoicas/Stockio-api/internal/application/usecase"
	infraai "github.com/jhoicas/Stockio-api/internal/infrastructure/ai"
	infrapdf "github.com/jhoicas/Stockio-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Stockio-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Stockio-api/internal/interfaces/http"
	"github.com/jhoicas/Stockio-api/pkg/config"
	"github.com/jhoicas/Stockio-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	invRepo := postgres.NewInventoryRepository(pool)
	countRepo := postgres.NewCycleCountRepository(pool)
	prepRepo := postgres.NewPrepRepository(pool)
	vendorRepo := postgres.NewVendorRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	orgRepo := postgres.NewOrganizationRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	inventoryUC := usecase.NewInventoryUseCase(invRepo)
	cycleCountUC := counting.NewCycleCountUseCase(txRunner, countRepo, invRepo)
	prepUC := prep.NewPrepUseCase(txRunner, prepRepo)
	vendorUC := usecase.NewVendorUseCase(vendorRepo)
	orderUC := usecase.NewOrderUseCase(txRunner, orderRepo, vendorRepo)
	dashboardUC := usecase.NewDashboardUseCase(analyticsRepo)

	// Escaneo por foto: sin API key los endpoints de /api/scan responden 503.
	var scanUC *usecase.ScanUseCase
	if cfg.AI.AnthropicAPIKey != "" {
		anthropicSvc := infraai.NewAnthropicService(cfg.AI.AnthropicAPIKey, cfg.AI.AnthropicModel)
		scanUC = usecase.NewScanUseCase(anthropicSvc, orderUC, vendorUC)
	} else {
		log.Warn().Msg("ANTHROPIC_API_KEY no configurado; escaneo por foto deshabilitado")
	}

	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	reportUC := reports.NewReportUseCase(prepUC, cycleCountUC, pdfGenerator)

	authUC := auth.NewAuthUseCase(userRepo, orgRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    20 * 1024 * 1024, // fotos de estantería y factura en base64
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Stockio API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		InventoryUC:  inventoryUC,
		CycleCountUC: cycleCountUC,
		PrepUC:       prepUC,
		VendorUC:     vendorUC,
		OrderUC:      orderUC,
		ScanUC:       scanUC,
		DashboardUC:  dashboardUC,
		ReportUC:     reportUC,
		AuthUC:       authUC,
		JWTSecret:    cfg.JWT.Secret,
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
