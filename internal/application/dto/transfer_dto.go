package dto

import (
	"time"

	domaintransfer "github.com/jhoicas/Inventario-transfers/internal/domain/transfer"
	"github.com/shopspring/decimal"
)

// TransferItemRequest línea seleccionada para trasladar.
type TransferItemRequest struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	CostPrice decimal.Decimal `json:"cost_price"`
}

// CreateTransferRequest body para POST /api/transfers.
type CreateTransferRequest struct {
	Mode            string                `json:"mode"` // intra_company | cross_company
	SourceShopID    string                `json:"source_shop_id"`
	TargetCompanyID string                `json:"target_company_id,omitempty"`
	TargetShopID    string                `json:"target_shop_id"`
	TargetName      string                `json:"target_name,omitempty"` // opcional; si falta se resuelve
	Reason          string                `json:"reason"`
	Notes           string                `json:"notes,omitempty"`
	IsDebt          bool                  `json:"is_debt"`
	AmountPaidNow   decimal.Decimal       `json:"amount_paid_now"`
	Items           []TransferItemRequest `json:"items"`
}

// TransferConfirmationResponse confirmación de un traslado exitoso.
type TransferConfirmationResponse struct {
	TargetName string `json:"target_name"`
	Mode       string `json:"mode"`
	SaleID     string `json:"sale_id,omitempty"`
	TransferID string `json:"transfer_id,omitempty"`
}

// TransferFailureResponse error remoto del flujo.
// OrphanSale indica que la venta quedó registrada sin su traslado.
type TransferFailureResponse struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Stage      string `json:"stage"`
	SaleID     string `json:"sale_id,omitempty"`
	OrphanSale bool   `json:"orphan_sale"`
}

// CompanyResponse empresa destino.
type CompanyResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	CategoryIDs []string `json:"category_ids"`
}

// ShopResponse tienda destino.
type ShopResponse struct {
	ID        string `json:"id"`
	CompanyID string `json:"company_id,omitempty"`
	Name      string `json:"name"`
}

// TransferAttemptResponse registro local de un intento de traslado.
type TransferAttemptResponse struct {
	ID              string          `json:"id"`
	UserID          string          `json:"user_id"`
	Mode            string          `json:"mode"`
	PaymentID       string          `json:"payment_id"`
	SourceShopID    string          `json:"source_shop_id"`
	TargetCompanyID string          `json:"target_company_id,omitempty"`
	TargetShopID    string          `json:"target_shop_id"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	AmountPaidNow   decimal.Decimal `json:"amount_paid_now"`
	IsDebt          bool            `json:"is_debt"`
	Status          string          `json:"status"`
	FailedStage     string          `json:"failed_stage,omitempty"`
	SaleID          string          `json:"sale_id,omitempty"`
	TransferID      string          `json:"transfer_id,omitempty"`
	ErrorMessage    string          `json:"error_message,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// TransferAttemptListResponse lista paginada de intentos.
type TransferAttemptListResponse struct {
	Items []TransferAttemptResponse `json:"items"`
	Page  PageResponse              `json:"page"`
}

// TransferListResponse listado de traslados enriquecido para la vista.
type TransferListResponse struct {
	Items   []domaintransfer.ProjectedTransfer `json:"items"`
	Stats   domaintransfer.Stats               `json:"stats"`
	Filters domaintransfer.Filters             `json:"filters"`
	Page    PageResponse                       `json:"page"`
}
