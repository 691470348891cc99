package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Inventario-transfers/internal/application/dto"
	apptransfer "github.com/jhoicas/Inventario-transfers/internal/application/transfer"
	"github.com/jhoicas/Inventario-transfers/internal/domain"
)

type publicMessager interface {
	PublicMessage() string
}

// writeError traduce errores de dominio y remotos a respuestas HTTP.
//   - validación → 400 con el mensaje de la primera regla violada
//   - envío en curso → 409
//   - fallo de venta o traslado → 502 con stage y orphan_sale
//   - error de la API remota fuera del flujo → 502
func writeError(c *fiber.Ctx, err error) error {
	var stageErr *domain.StageError
	switch {
	case domain.IsValidation(err):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_INPUT", Message: err.Error()})
	case errors.Is(err, domain.ErrSubmissionInFlight):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "IN_FLIGHT", Message: err.Error()})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.As(err, &stageErr):
		code := "SALE_FAILED"
		if stageErr.Stage == domain.StageTransfer {
			code = "TRANSFER_FAILED"
		}
		return c.Status(fiber.StatusBadGateway).JSON(dto.TransferFailureResponse{
			Code:       code,
			Message:    apptransfer.UserMessage(err),
			Stage:      stageErr.Stage,
			SaleID:     stageErr.SaleID,
			OrphanSale: stageErr.OrphanSale(),
		})
	}
	var pm publicMessager
	if errors.As(err, &pm) {
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "REMOTE_ERROR", Message: apptransfer.UserMessage(err)})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func requireSession(c *fiber.Ctx) bool {
	return GetCompanyID(c) != "" && GetUserID(c) != ""
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
}
