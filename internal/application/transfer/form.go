package transfer

import (
	"strings"
	"time"

	"github.com/jhoicas/Inventario-transfers/internal/domain"
	"github.com/jhoicas/Inventario-transfers/internal/domain/entity"
	domaintransfer "github.com/jhoicas/Inventario-transfers/internal/domain/transfer"
	"github.com/shopspring/decimal"
)

// Form estado del formulario de traslado (la vista que inicia el flujo).
// Es dueño exclusivo de la selección; solo el orquestador la limpia, y solo al terminar con éxito.
type Form struct {
	Selection       *domaintransfer.Selection
	Mode            entity.TransferMode
	SourceShopID    string
	TargetCompanyID string
	TargetShopID    string
	TargetName      string // nombre mostrado en la confirmación
	Reason          string
	Notes           string

	isDebt        bool
	amountPaidNow decimal.Decimal
	dismissed     bool
}

// NewForm crea un formulario vacío en modo intra_company.
func NewForm(sourceShopID string) *Form {
	return &Form{
		Selection:    domaintransfer.NewSelection(),
		Mode:         entity.TransferModeIntra,
		SourceShopID: sourceShopID,
	}
}

// Total total de la selección.
func (f *Form) Total() decimal.Decimal {
	return f.Selection.Total()
}

// SetDebt activa o desactiva el pago parcial. Al activarlo el monto pagado parte en cero.
func (f *Form) SetDebt(isDebt bool) {
	if isDebt && !f.isDebt {
		f.amountPaidNow = decimal.Zero
	}
	f.isDebt = isDebt
}

// IsDebt informa si el traslado queda como deuda.
func (f *Form) IsDebt() bool { return f.isDebt }

// SetAmountPaidNow cambia el monto pagado de una deuda. Un valor negativo o mayor que el total
// se rechaza y el campo conserva su valor anterior.
func (f *Form) SetAmountPaidNow(v decimal.Decimal) error {
	if !f.isDebt {
		return nil
	}
	if v.LessThan(decimal.Zero) || v.GreaterThan(f.Total()) {
		return domain.ErrAmountExceedsTotal
	}
	f.amountPaidNow = v
	return nil
}

// AmountPaidNow monto efectivo: el total si no es deuda.
func (f *Form) AmountPaidNow() decimal.Decimal {
	if !f.isDebt {
		return f.Total()
	}
	return f.amountPaidNow
}

// Dismissed informa si el formulario se cerró tras un traslado exitoso.
func (f *Form) Dismissed() bool { return f.dismissed }

// input arma la entrada del constructor de cuerpos.
func (f *Form) input(sess entity.Session, now time.Time) domaintransfer.BuildInput {
	return domaintransfer.BuildInput{
		Selection:       f.Selection,
		Mode:            f.Mode,
		SourceShopID:    f.SourceShopID,
		TargetCompanyID: strings.TrimSpace(f.TargetCompanyID),
		TargetShopID:    strings.TrimSpace(f.TargetShopID),
		Reason:          f.Reason,
		Notes:           f.Notes,
		IsDebt:          f.isDebt,
		AmountPaidNow:   f.AmountPaidNow(),
		UserID:          sess.UserID,
		Now:             now,
	}
}

// complete limpia la selección y cierra el formulario.
func (f *Form) complete() {
	f.Selection.Clear()
	f.dismissed = true
}
