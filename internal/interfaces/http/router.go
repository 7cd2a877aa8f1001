package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/waopos/fedo-reportes-api/internal/application/analytics"
	"github.com/waopos/fedo-reportes-api/internal/application/auth"
	"github.com/waopos/fedo-reportes-api/internal/application/personal"
	"github.com/waopos/fedo-reportes-api/internal/application/reportes"
	"github.com/waopos/fedo-reportes-api/internal/application/tareas"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.UseCase
	ReportesUC  *reportes.UseCase
	DashboardUC *analytics.UseCase
	PersonalUC  *personal.UseCase
	TareasUC    *tareas.UseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api/v1")

	// Auth (público salvo logout)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/verificar", authHandler.Verificar)
	authGroup.Post("/reenviar", authHandler.Reenviar)

	// Rutas protegidas (Bearer Token + sesión viva)
	protected := api.Group("/", SessionMiddleware(deps.JWTSecret, deps.AuthUC))
	protected.Post("/auth/logout", authHandler.Logout)

	// Reportes
	reportesHandler := NewReportesHandler(deps.ReportesUC)
	reportesGroup := protected.Group("/reportes")
	reportesGroup.Get("/implementaciones", reportesHandler.Implementaciones)
	reportesGroup.Get("/implementaciones/export", reportesHandler.ExportarImplementaciones)
	reportesGroup.Get("/certificaciones", reportesHandler.Certificaciones)
	reportesGroup.Get("/certificaciones/export", reportesHandler.ExportarCertificaciones)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", dashboardHandler.Dashboard)
	protected.Get("/dashboard/detalle", dashboardHandler.Detalle)

	// Personal
	personalHandler := NewPersonalHandler(deps.PersonalUC)
	personalGroup := protected.Group("/personal")
	personalGroup.Get("/", personalHandler.Listar)
	personalGroup.Post("/", personalHandler.Crear)
	personalGroup.Post("/sincronizar", personalHandler.Sincronizar)
	personalGroup.Get("/opciones/:rol", personalHandler.Opciones)
	personalGroup.Put("/:id", personalHandler.Actualizar)

	// Tareas y tickets
	tareasHandler := NewTareasHandler(deps.TareasUC)
	protected.Post("/tareas", tareasHandler.CrearTarea)
	protected.Get("/tareas/rnc/:rnc", tareasHandler.BuscarRNC)
	tickets := protected.Group("/tickets")
	tickets.Get("/", tareasHandler.ListarTickets)
	tickets.Post("/", tareasHandler.CrearTicket)
	tickets.Put("/:id/estado", tareasHandler.CambiarEstadoTicket)
	tickets.Delete("/:id", tareasHandler.EliminarTicket)
}
