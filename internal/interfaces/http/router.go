package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aupet/petshop-api/internal/application/estoque"
	"github.com/aupet/petshop-api/pkg/logger"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	RegisterMovement *estoque.RegisterMovementUseCase
	Movements        *estoque.MovementQueryUseCase
	Position         *estoque.PositionUseCase
	Audit            *estoque.AuditUseCase
	Preferences      *estoque.PreferencesUseCase
	PositionReport   ReportGenerator
	Log              *logger.Logger
	JWTSecret        string
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rotas protegidas (exigem Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Estoque (protegido)
	stock := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.Position, deps.Audit, deps.PositionReport, deps.Log)
	stock.Get("/", stockHandler.Position)
	stock.Get("/report", stockHandler.Report)
	stock.Post("/audit", stockHandler.Audit)

	// Movimentações (protegido)
	movementHandler := NewMovementHandler(deps.RegisterMovement, deps.Movements)
	stock.Post("/movements", movementHandler.Register)
	stock.Get("/movements", movementHandler.List)

	// Preferências de estoque (protegido)
	prefsHandler := NewPreferencesHandler(deps.Preferences)
	stock.Get("/preferences", prefsHandler.Get)
	stock.Put("/preferences", prefsHandler.Update)
}
