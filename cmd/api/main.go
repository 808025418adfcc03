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

	"github.com/jhoicas/Empleados-api/internal/application/auth"
	"github.com/jhoicas/Empleados-api/internal/application/roster"
	"github.com/jhoicas/Empleados-api/internal/domain/credential"
	infrapdf "github.com/jhoicas/Empleados-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Empleados-api/internal/infrastructure/scheduler"
	"github.com/jhoicas/Empleados-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/Empleados-api/internal/interfaces/http"
	"github.com/jhoicas/Empleados-api/pkg/config"
	"github.com/jhoicas/Empleados-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es requerido")
	}

	ctx := context.Background()
	store, err := storage.Open(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacén")
	}
	defer store.Close()

	hasher, err := credential.NewHasher(credential.Config{
		Scheme:     cfg.Credential.Scheme,
		Iterations: cfg.Credential.Iterations,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("configurar hasher de credenciales")
	}

	authUC := auth.NewAuthUseCase(store.Users, store.Sessions, store.Tx, hasher, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log)

	// PDF: reporte de nómina
	pdfReport := infrapdf.NewMarotoPayrollReport(cfg.App.Name)
	rosterUC := roster.NewRosterUseCase(store.Employees, store.Tx, pdfReport, cfg.Payroll.DefaultWorkingDays, log)

	// Exportación programada del CSV (EXPORT_CRON vacío = desactivada)
	sched := scheduler.New(log)
	if cfg.Export.Cron != "" {
		job := scheduler.NewPayrollExportJob(rosterUC, nil, cfg.Export.Dir, log)
		if err := sched.Schedule(cfg.Export.Cron, "payroll-csv", job); err != nil {
			log.Fatal().Err(err).Msg("programar exportación")
		}
		sched.Start()
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Empleados API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:   authUC,
		RosterUC: rosterUC,
		Log:      log,
		AppName:  cfg.App.Name,
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

	if err := sched.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("detener scheduler")
	}
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
