package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrUnauthorized = errors.New("no autorizado")
	ErrConflict     = errors.New("conflicto con el estado actual")
)

// Errores de validación del formulario de traslado. Se reporta solo la primera regla violada.
var (
	ErrSelectCompany      = errors.New("seleccione una empresa destino")
	ErrSelectShop         = errors.New("seleccione una tienda destino")
	ErrReasonRequired     = errors.New("el motivo es obligatorio")
	ErrEmptySelection     = errors.New("seleccione al menos un producto")
	ErrAmountExceedsTotal = errors.New("el monto pagado no puede superar el total")
)

// Errores del flujo de traslado.
var (
	ErrSubmissionInFlight = errors.New("ya hay un traslado en curso")
	ErrSaleCreation       = errors.New("no se pudo registrar la venta del traslado")
	ErrTransferSubmission = errors.New("no se pudo ejecutar el traslado")
)

// IsValidation informa si err es un error de validación local (previo a cualquier llamada remota).
func IsValidation(err error) bool {
	return errors.Is(err, ErrSelectCompany) ||
		errors.Is(err, ErrSelectShop) ||
		errors.Is(err, ErrReasonRequired) ||
		errors.Is(err, ErrEmptySelection) ||
		errors.Is(err, ErrAmountExceedsTotal)
}

// Etapas del flujo en las que puede fallar un traslado.
const (
	StageValidation = "validation"
	StageSale       = "sale"
	StageTransfer   = "transfer"
)

// StageError envuelve el error remoto de una etapa del flujo.
// Con Stage == StageTransfer la venta ya existe en el servidor (SaleID) y no se revierte.
type StageError struct {
	Stage  string
	SaleID string
	Err    error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("traslado fallido en etapa %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// Is permite errors.Is(err, ErrSaleCreation) / errors.Is(err, ErrTransferSubmission).
func (e *StageError) Is(target error) bool {
	switch target {
	case ErrSaleCreation:
		return e.Stage == StageSale
	case ErrTransferSubmission:
		return e.Stage == StageTransfer
	}
	return false
}

// OrphanSale informa si el error dejó una venta registrada sin su traslado.
func (e *StageError) OrphanSale() bool {
	return e.Stage == StageTransfer
}
