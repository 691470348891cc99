package http

import (
	"github.com/gofiber/fiber/v2"
	apptransfer "github.com/jhoicas/Inventario-transfers/internal/application/transfer"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Submit    *apptransfer.SubmitUseCase
	Listing   *apptransfer.ListingUseCase
	Targets   *apptransfer.TargetsUseCase
	Attempts  *apptransfer.AttemptsUseCase // nil si el registro está deshabilitado
	JWTSecret string
	JWTIssuer string
}

// Router registra las rutas de la API. Todas requieren Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer))

	transferHandler := NewTransferHandler(deps.Submit, deps.Listing, deps.Targets, deps.Attempts)
	transfers := api.Group("/transfers")
	transfers.Post("/", transferHandler.Create)
	transfers.Get("/", transferHandler.List)
	transfers.Get("/workflow", transferHandler.Workflow)
	transfers.Delete("/workflow", transferHandler.CloseWorkflow)
	transfers.Get("/eligible-companies", transferHandler.EligibleCompanies)
	transfers.Get("/attempts", transferHandler.Attempts)

	companyHandler := NewCompanyHandler(deps.Targets)
	api.Get("/companies/:id/branches", companyHandler.Branches)
}
