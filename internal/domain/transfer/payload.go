package transfer

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Inventario-transfers/internal/domain"
	"github.com/jhoicas/Inventario-transfers/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// PaymentMethodTransfer método de pago con el que se registra la venta de un traslado.
const PaymentMethodTransfer = "Transfer"

// BuildInput datos del formulario en el momento de enviar.
type BuildInput struct {
	Selection       *Selection
	Mode            entity.TransferMode
	SourceShopID    string
	TargetCompanyID string // obligatorio solo en cross_company
	TargetShopID    string
	Reason          string
	Notes           string
	IsDebt          bool
	AmountPaidNow   decimal.Decimal
	UserID          string
	Now             time.Time
}

// SaleItem línea de la venta.
type SaleItem struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Quantity  Number `json:"quantity"`
	Price     Number `json:"price"`
	CostPrice Number `json:"costPrice"`
}

// TransferTarget describe el destino del traslado dentro de la venta.
type TransferTarget struct {
	Mode            entity.TransferMode `json:"mode"`
	TargetCompanyID string              `json:"targetCompanyId,omitempty"`
	TargetShopID    string              `json:"targetShopId"`
}

// SalePayload cuerpo de sellProduct. Registra el valor movido por el traslado.
type SalePayload struct {
	ShopID         string         `json:"shopId"`
	Items          []SaleItem     `json:"items"`
	PaymentMethod  string         `json:"paymentMethod"`
	PaymentID      string         `json:"paymentId"`
	TotalAmount    Number         `json:"totalAmount"`
	AmountPaidNow  Number         `json:"amountPaidNow"`
	IsDebt         bool           `json:"isDebt"`
	IsTransfer     bool           `json:"isTransfer"`
	TransferTarget TransferTarget `json:"transferTarget"`
}

// TransferPayload unión etiquetada: IntraCompanyPayload o CrossCompanyPayload.
// El método no exportado impide otras implementaciones fuera del paquete.
type TransferPayload interface {
	Mode() entity.TransferMode
	isTransferPayload()
}

// IntraLine línea de un traslado dentro de la misma empresa.
type IntraLine struct {
	ProductID string `json:"productId"`
	Quantity  Number `json:"quantity"`
}

// PricingOverride precio y costo con los que el producto entra a la empresa destino.
type PricingOverride struct {
	Price     Number `json:"price"`
	CostPrice Number `json:"costPrice"`
}

// CrossLine línea de un traslado entre empresas.
type CrossLine struct {
	ProductID       string          `json:"productId"`
	Quantity        Number          `json:"quantity"`
	PricingOverride PricingOverride `json:"pricingOverride"`
}

// IntraCompanyPayload cuerpo de transferToShop.
type IntraCompanyPayload struct {
	Transfers []IntraLine `json:"transfers"`
	ToShopID  string      `json:"toShopId"`
	Reason    string      `json:"reason"`
	UserID    string      `json:"userId"`
	Notes     string      `json:"notes"`
}

// CrossCompanyPayload cuerpo de transferToCompany.
type CrossCompanyPayload struct {
	Transfers   []CrossLine `json:"transfers"`
	ToCompanyID string      `json:"toCompanyId"`
	ToShopID    string      `json:"toShopId"`
	Reason      string      `json:"reason"`
	UserID      string      `json:"userId"`
}

func (IntraCompanyPayload) Mode() entity.TransferMode { return entity.TransferModeIntra }
func (CrossCompanyPayload) Mode() entity.TransferMode { return entity.TransferModeCross }
func (IntraCompanyPayload) isTransferPayload()         {}
func (CrossCompanyPayload) isTransferPayload()         {}

// Payloads resultado de Build: venta y traslado.
type Payloads struct {
	Sale     SalePayload
	Transfer TransferPayload
}

// Validate aplica las reglas del formulario en orden y devuelve solo la primera violada:
// empresa (cross_company), tienda destino, motivo, selección, monto pagado.
func Validate(in BuildInput) error {
	if in.Mode == entity.TransferModeCross && strings.TrimSpace(in.TargetCompanyID) == "" {
		return domain.ErrSelectCompany
	}
	if strings.TrimSpace(in.TargetShopID) == "" {
		return domain.ErrSelectShop
	}
	if strings.TrimSpace(in.Reason) == "" {
		return domain.ErrReasonRequired
	}
	if in.Selection.Len() == 0 {
		return domain.ErrEmptySelection
	}
	if in.IsDebt {
		total := in.Selection.Total()
		if in.AmountPaidNow.LessThan(decimal.Zero) || in.AmountPaidNow.GreaterThan(total) {
			return domain.ErrAmountExceedsTotal
		}
	}
	return nil
}

// Build valida la entrada y construye los dos cuerpos del flujo.
func Build(in BuildInput) (*Payloads, error) {
	if !in.Mode.Valid() {
		return nil, domain.ErrInvalidInput
	}
	if err := Validate(in); err != nil {
		return nil, err
	}

	items := in.Selection.Items()
	total := in.Selection.Total()
	paid := total
	if in.IsDebt {
		paid = in.AmountPaidNow
	}
	now := in.Now
	if now.IsZero() {
		now = time.Now()
	}

	sale := SalePayload{
		ShopID:        in.SourceShopID,
		Items:         make([]SaleItem, 0, len(items)),
		PaymentMethod: PaymentMethodTransfer,
		PaymentID:     PaymentID(now),
		TotalAmount:   NewNumber(total),
		AmountPaidNow: NewNumber(paid),
		IsDebt:        in.IsDebt,
		IsTransfer:    true,
		TransferTarget: TransferTarget{
			Mode:         in.Mode,
			TargetShopID: in.TargetShopID,
		},
	}
	for _, it := range items {
		sale.Items = append(sale.Items, SaleItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  NewNumber(it.Quantity),
			Price:     NewNumber(it.UnitPrice),
			CostPrice: NewNumber(it.CostPrice),
		})
	}

	reason := strings.TrimSpace(in.Reason)
	var tp TransferPayload
	switch in.Mode {
	case entity.TransferModeCross:
		sale.TransferTarget.TargetCompanyID = in.TargetCompanyID
		lines := make([]CrossLine, 0, len(items))
		for _, it := range items {
			lines = append(lines, CrossLine{
				ProductID: it.ProductID,
				Quantity:  NewNumber(it.Quantity),
				PricingOverride: PricingOverride{
					Price:     NewNumber(it.UnitPrice),
					CostPrice: NewNumber(it.CostPrice),
				},
			})
		}
		tp = CrossCompanyPayload{
			Transfers:   lines,
			ToCompanyID: in.TargetCompanyID,
			ToShopID:    in.TargetShopID,
			Reason:      reason,
			UserID:      in.UserID,
		}
	default:
		lines := make([]IntraLine, 0, len(items))
		for _, it := range items {
			lines = append(lines, IntraLine{ProductID: it.ProductID, Quantity: NewNumber(it.Quantity)})
		}
		tp = IntraCompanyPayload{
			Transfers: lines,
			ToShopID:  in.TargetShopID,
			Reason:    reason,
			UserID:    in.UserID,
			Notes:     strings.TrimSpace(in.Notes),
		}
	}

	return &Payloads{Sale: sale, Transfer: tp}, nil
}

// PaymentID identificador sintético del pago, derivado de la hora (no es clave de idempotencia).
func PaymentID(now time.Time) string {
	return fmt.Sprintf("TRF-%d", now.UnixMilli())
}
