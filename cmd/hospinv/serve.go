package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	appanalytics "github.com/jhoicas/hospital-inventory/internal/application/analytics"
	"github.com/jhoicas/hospital-inventory/internal/application/auth"
	"github.com/jhoicas/hospital-inventory/internal/application/authz"
	"github.com/jhoicas/hospital-inventory/internal/application/inventory"
	"github.com/jhoicas/hospital-inventory/internal/application/report"
	"github.com/jhoicas/hospital-inventory/internal/application/usecase"
	"github.com/jhoicas/hospital-inventory/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/hospital-inventory/internal/infrastructure/pdf"
	"github.com/jhoicas/hospital-inventory/internal/infrastructure/postgres"
	infrareport "github.com/jhoicas/hospital-inventory/internal/infrastructure/report"
	httpRouter "github.com/jhoicas/hospital-inventory/internal/interfaces/http"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Inicia la API HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context())
		},
	}
}

func serve(ctx context.Context) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("conexión a PostgreSQL")
		return err
	}
	defer pool.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.New(reg)

	userRepo := postgres.NewUserRepository(pool)
	roleRepo := postgres.NewRoleRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)
	movRepo := postgres.NewInventoryMovementRepository(pool)
	typeRepo := postgres.NewMovementTypeRepository(pool)
	catalogRepo := postgres.NewCatalogRepository(pool)
	statsRepo := postgres.NewStatisticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	ledgerUC := inventory.NewLedgerUseCase(
		txRunner, itemRepo, typeRepo, userRepo, movRepo,
		collector, log, cfg.Ledger.DefaultListLimit,
	)
	replenishmentUC := inventory.NewReplenishmentUseCase(statsRepo)
	abilityUC := authz.NewAbilityUseCase(userRepo, roleRepo, collector, log)
	authUC := auth.NewAuthUseCase(userRepo, roleRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log)
	itemUC := usecase.NewItemUseCase(itemRepo, catalogRepo, userRepo, ledgerUC, log)
	userUC := usecase.NewUserUseCase(userRepo, roleRepo, catalogRepo, movRepo, log)
	catalogUC := usecase.NewCatalogUseCase(catalogRepo, log)
	dashboardUC := appanalytics.NewDashboardUseCase(statsRepo, movRepo)
	statisticsUC := appanalytics.NewStatisticsUseCase(statsRepo)
	reportUC := report.NewReportUseCase(
		ledgerUC, replenishmentUC,
		infrareport.NewMovementsXLSX(), infrapdf.NewMarotoPDFGenerator(cfg.App.Name),
		log,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogging(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Hospital Inventory API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	if cfg.Metrics.Enabled {
		app.Get(cfg.Metrics.Path, adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		Abilities:     abilityUC,
		Ledger:        ledgerUC,
		Replenishment: replenishmentUC,
		ItemUC:        itemUC,
		UserUC:        userUC,
		CatalogUC:     catalogUC,
		DashboardUC:   dashboardUC,
		StatisticsUC:  statisticsUC,
		ReportUC:      reportUC,
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
	return nil
}
