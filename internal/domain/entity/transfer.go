package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferMode tipo de traslado.
type TransferMode string

// Modos de traslado (coinciden con transferType de la API remota).
const (
	TransferModeIntra TransferMode = "intra_company" // misma empresa
	TransferModeCross TransferMode = "cross_company" // otra empresa de la misma categoría
)

// Valid informa si el modo es uno de los conocidos.
func (m TransferMode) Valid() bool {
	return m == TransferModeIntra || m == TransferModeCross
}

// Estado final de un traslado en la API remota.
const TransferStatusCompleted = "completed"

// TransferRecord traslado registrado en la API remota. Solo lectura para este servicio:
// se crea remotamente y se observa al volver a consultar el listado.
type TransferRecord struct {
	ID                string          `json:"id,omitempty"`
	LegacyID          string          `json:"_id,omitempty"`
	ProductID         string          `json:"productId,omitempty"`
	ProductName       string          `json:"productName,omitempty"`
	SourceShopID      string          `json:"sourceShopId"`
	DestinationShopID string          `json:"destinationShopId"`
	ToCompanyID       string          `json:"toCompanyId,omitempty"`
	TransferType      TransferMode    `json:"transferType"`
	Quantity          decimal.Decimal `json:"quantity"`
	SourceStockAfter  decimal.Decimal `json:"sourceStockAfter"`
	Status            string          `json:"status"`
	PerformedBy       ActorRef        `json:"performedBy"`
	Reason            string          `json:"reason,omitempty"`
	InitiatedAt       time.Time       `json:"initiatedAt"`
}

// Key devuelve el identificador preferido del traslado.
func (t TransferRecord) Key() string {
	if t.ID != "" {
		return t.ID
	}
	return t.LegacyID
}

// Consistent verifica que transferType sea cross_company si y solo si hay toCompanyId.
func (t TransferRecord) Consistent() bool {
	return (t.TransferType == TransferModeCross) == (t.ToCompanyID != "")
}

// SaleRecord venta creada por la API remota como contrapartida monetaria del traslado.
type SaleRecord struct {
	ID          string          `json:"id,omitempty"`
	LegacyID    string          `json:"_id,omitempty"`
	PaymentID   string          `json:"paymentId,omitempty"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

// Key devuelve el identificador preferido de la venta.
func (s SaleRecord) Key() string {
	if s.ID != "" {
		return s.ID
	}
	return s.LegacyID
}
