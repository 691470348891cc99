package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	apptransfer "github.com/jhoicas/Inventario-transfers/internal/application/transfer"
	"github.com/jhoicas/Inventario-transfers/internal/infrastructure/postgres"
	"github.com/jhoicas/Inventario-transfers/internal/infrastructure/remote"
	httpRouter "github.com/jhoicas/Inventario-transfers/internal/interfaces/http"
	"github.com/jhoicas/Inventario-transfers/pkg/config"
	"github.com/jhoicas/Inventario-transfers/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("remote_api", cfg.Remote.BaseURL).
		Msg("iniciando aplicación")

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("aplicación detenida con error")
	}
	log.Info().Msg("aplicación detenida")
}

// run arma dependencias y sirve HTTP hasta SIGINT/SIGTERM.
// Los errores se devuelven a main; los defer (pool, shutdown) se ejecutan antes de salir.
func run(cfg *config.Config, log *logger.Logger) error {
	ctx := context.Background()
	client := remote.NewClient(cfg.Remote.BaseURL, cfg.Remote.Timeout())

	// Registro local de intentos (opcional). Sin PostgreSQL el flujo funciona igual.
	var recorder apptransfer.AttemptRecorder
	var attemptsUC *apptransfer.AttemptsUseCase
	if cfg.Ledger.Enabled {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		defer pool.Close()
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			return err
		}
		attemptRepo := postgres.NewTransferAttemptRepository(pool)
		recorder = attemptRepo
		attemptsUC = apptransfer.NewAttemptsUseCase(attemptRepo)
		log.Info().Msg("registro de intentos de traslado habilitado")
	}

	transferLog := log.Component("transfer")
	registry := apptransfer.NewRegistry(client, client, recorder, transferLog)
	submitUC := apptransfer.NewSubmitUseCase(registry, client, transferLog)
	listingUC := apptransfer.NewListingUseCase(client, client, log.Component("listing"))
	targetsUC := apptransfer.NewTargetsUseCase(client)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: cfg.Remote.Timeout()*2 + time.Second*5, // venta + traslado en serie
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Inventario Transfers API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "ledger": cfg.Ledger.Enabled})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Submit:    submitUC,
		Listing:   listingUC,
		Targets:   targetsUC,
		Attempts:  attemptsUC,
		JWTSecret: cfg.JWT.Secret,
		JWTIssuer: cfg.JWT.Issuer,
	})

	listenErr := make(chan error, 1)
	go func() {
		listenErr <- app.Listen(cfg.HTTP.Addr())
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-listenErr:
		return fmt.Errorf("servidor HTTP: %w", err)
	case <-quit:
	}

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	return nil
}
