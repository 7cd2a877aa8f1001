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
	"github.com/waopos/fedo-reportes-api/internal/application/analytics"
	"github.com/waopos/fedo-reportes-api/internal/application/auth"
	"github.com/waopos/fedo-reportes-api/internal/application/personal"
	"github.com/waopos/fedo-reportes-api/internal/application/reportes"
	"github.com/waopos/fedo-reportes-api/internal/application/tareas"
	"github.com/waopos/fedo-reportes-api/internal/infrastructure/export"
	"github.com/waopos/fedo-reportes-api/internal/infrastructure/gateway"
	"github.com/waopos/fedo-reportes-api/internal/infrastructure/sqlite"
	httpRouter "github.com/waopos/fedo-reportes-api/internal/interfaces/http"
	"github.com/waopos/fedo-reportes-api/pkg/config"
	"github.com/waopos/fedo-reportes-api/pkg/logger"
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

	db, err := sqlite.Open(cfg.Store.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir base local SQLite")
	}
	defer db.Close()

	sesionRepo := sqlite.NewSesionRepository(db)
	ticketRepo := sqlite.NewTicketRepository(db)
	miembroRepo := sqlite.NewMiembroRepository(db)

	gw := gateway.NewClient(cfg.Gateway.BaseURL, cfg.Gateway.TicketWebhook, cfg.Gateway.Timeout)
	rnc := gateway.NewRNCClient(cfg.RNC.BaseURL, cfg.RNC.LookupID, cfg.Gateway.Timeout)
	exportSvc := export.NewService()

	authUC := auth.NewUseCase(gw, sesionRepo, cfg.JWT, cfg.Session, log)
	reportesUC := reportes.NewUseCase(gw, exportSvc, log)
	dashboardUC := analytics.NewUseCase(reportesUC, log)
	personalUC := personal.NewUseCase(gw, miembroRepo, log)
	tareasUC := tareas.NewUseCase(gw, rnc, ticketRepo, log)

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
		Title:    "FEDO Reportes API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ReportesUC:  reportesUC,
		DashboardUC: dashboardUC,
		PersonalUC:  personalUC,
		TareasUC:    tareasUC,
		JWTSecret:   cfg.JWT.Secret,
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
