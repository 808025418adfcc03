package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Empleados-api/internal/application/auth"
	"github.com/jhoicas/Empleados-api/internal/application/roster"
	"github.com/jhoicas/Empleados-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC   *auth.AuthUseCase
	RosterUC *roster.RosterUseCase
	Log      *logger.Logger
	AppName  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	log = log.Component("http")

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})

	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, log)
	authGroup.Post("/signup", authHandler.SignUp)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token de una sesión activa)
	requireSession := AuthMiddleware(deps.AuthUC)
	authGroup.Post("/logout", requireSession, authHandler.Logout)
	authGroup.Get("/me", requireSession, authHandler.Me)

	employees := api.Group("/employees", requireSession)
	employeeHandler := NewEmployeeHandler(deps.RosterUC, log)
	// Exportaciones antes de /:id para que no las capture el parámetro.
	employees.Get("/export.csv", employeeHandler.ExportCSV)
	employees.Get("/export.pdf", employeeHandler.ExportPDF)
	employees.Get("/", employeeHandler.List)
	employees.Post("/", employeeHandler.Create)
	employees.Get("/:id", employeeHandler.GetByID)
	employees.Put("/:id", employeeHandler.Update)
	employees.Delete("/:id", employeeHandler.Delete)
	employees.Patch("/:id/absent-days", employeeHandler.UpdateAbsentDays)
	employees.Get("/:id/salary", employeeHandler.Salary)
}
