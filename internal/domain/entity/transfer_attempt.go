package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Resultados posibles de un intento de traslado.
const (
	AttemptStatusSucceeded  = "succeeded"
	AttemptStatusSaleFailed = "sale_failed"
	AttemptStatusOrphaned   = "orphaned" // venta creada, traslado fallido
)

// TransferAttempt registro local de cada ejecución terminada del flujo venta+traslado.
// Permite localizar ventas huérfanas; no se usa para compensarlas.
type TransferAttempt struct {
	ID              string
	CompanyID       string
	UserID          string
	Mode            TransferMode
	PaymentID       string
	SourceShopID    string
	TargetCompanyID string
	TargetShopID    string
	TotalAmount     decimal.Decimal
	AmountPaidNow   decimal.Decimal
	IsDebt          bool
	Status          string
	FailedStage     string
	SaleID          string
	TransferID      string
	ErrorMessage    string
	CreatedAt       time.Time
}
