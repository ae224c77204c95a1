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

	"github.com/aupet/petshop-api/internal/application/estoque"
	infrapdf "github.com/aupet/petshop-api/internal/infrastructure/pdf"
	"github.com/aupet/petshop-api/internal/infrastructure/postgres"
	httpRouter "github.com/aupet/petshop-api/internal/interfaces/http"
	"github.com/aupet/petshop-api/pkg/config"
	"github.com/aupet/petshop-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão com PostgreSQL")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	prefsRepo := postgres.NewPreferencesRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	registerMovementUC := estoque.NewRegisterMovementUseCase(txRunner)
	movementsUC := estoque.NewMovementQueryUseCase(movementRepo)
	positionUC := estoque.NewPositionUseCase(productRepo, prefsRepo)
	auditUC := estoque.NewAuditUseCase(txRunner, productRepo)
	preferencesUC := estoque.NewPreferencesUseCase(prefsRepo)

	// PDF: relatório da Posição de Estoque
	reportGenerator := infrapdf.NewPositionReportGenerator()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI em local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "AuPet Estoque API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		RegisterMovement: registerMovementUC,
		Movements:        movementsUC,
		Position:         positionUC,
		Audit:            auditUC,
		Preferences:      preferencesUC,
		PositionReport:   reportGenerator,
		Log:              log,
		JWTSecret:        cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("desligamento do servidor")
	}

	log.Info().Msg("aplicação encerrada")
}
