package transfer

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/Inventario-transfers/internal/application/dto"
	"github.com/jhoicas/Inventario-transfers/internal/domain"
	"github.com/jhoicas/Inventario-transfers/internal/domain/entity"
	domaintransfer "github.com/jhoicas/Inventario-transfers/internal/domain/transfer"
	"github.com/rs/zerolog"
)

// SubmitUseCase adapta la petición HTTP al formulario y la entrega al orquestador del usuario.
type SubmitUseCase struct {
	registry  *Registry
	directory CompanyDirectory
	log       zerolog.Logger
}

// NewSubmitUseCase construye el caso de uso.
// El nombre destino se resuelve dentro del orquestador, después de la guarda y de la validación.
func NewSubmitUseCase(registry *Registry, directory CompanyDirectory, log zerolog.Logger) *SubmitUseCase {
	uc := &SubmitUseCase{registry: registry, directory: directory, log: log}
	registry.SetTargetNamer(uc.resolveTargetName)
	return uc
}

// Submit ejecuta el flujo venta → traslado para la sesión.
// Los errores de validación y de etapa se devuelven tal cual (ver domain.StageError).
func (uc *SubmitUseCase) Submit(ctx context.Context, sess entity.Session, in dto.CreateTransferRequest) (*dto.TransferConfirmationResponse, error) {
	form, err := FormFromRequest(in)
	if err != nil {
		return nil, err
	}

	conf, err := uc.registry.Get(sess).Submit(ctx, sess, form)
	if err != nil {
		return nil, err
	}
	return &dto.TransferConfirmationResponse{
		TargetName: conf.TargetName,
		Mode:       string(conf.Mode),
		SaleID:     conf.SaleID,
		TransferID: conf.TransferID,
	}, nil
}

// Status estado del flujo del usuario; idle si nunca envió.
func (uc *SubmitUseCase) Status(sess entity.Session) Status {
	if o, ok := uc.registry.Peek(sess); ok {
		return o.Status()
	}
	return Status{Phase: PhaseIdle}
}

// Close desacopla la vista del usuario.
func (uc *SubmitUseCase) Close(sess entity.Session) {
	uc.registry.Close(sess)
}

// FormFromRequest arma el formulario a partir del body. El monto pagado se copia sin
// recortar: si excede el total, la validación lo reporta en su turno.
func FormFromRequest(in dto.CreateTransferRequest) (*Form, error) {
	sourceShopID := strings.TrimSpace(in.SourceShopID)
	if sourceShopID == "" {
		return nil, fmt.Errorf("%w: source_shop_id es obligatorio", domain.ErrInvalidInput)
	}
	form := NewForm(sourceShopID)
	if m := strings.TrimSpace(in.Mode); m != "" {
		form.Mode = entity.TransferMode(m)
	}
	if !form.Mode.Valid() {
		return nil, fmt.Errorf("%w: modo %q no soportado", domain.ErrInvalidInput, in.Mode)
	}
	for i, it := range in.Items {
		item := domaintransfer.SelectionItem{
			ProductID: strings.TrimSpace(it.ProductID),
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			CostPrice: it.CostPrice,
		}
		if err := form.Selection.Set(item); err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
	}
	form.TargetCompanyID = in.TargetCompanyID
	form.TargetShopID = in.TargetShopID
	form.TargetName = strings.TrimSpace(in.TargetName)
	form.Reason = in.Reason
	form.Notes = in.Notes
	form.SetDebt(in.IsDebt)
	if in.IsDebt {
		form.amountPaidNow = in.AmountPaidNow
	}
	return form, nil
}

// resolveTargetName busca el nombre de la tienda destino (con el de la empresa en cross_company).
// Si la consulta falla se usa el id de la tienda.
func (uc *SubmitUseCase) resolveTargetName(ctx context.Context, sess entity.Session, form *Form) string {
	shopID := strings.TrimSpace(form.TargetShopID)
	companyID := sess.CompanyID
	if form.Mode == entity.TransferModeCross {
		companyID = strings.TrimSpace(form.TargetCompanyID)
	}

	name := shopID
	shops, err := uc.directory.GetBranches(ctx, sess, companyID)
	if err != nil {
		uc.log.Warn().Err(err).Str("company_id", companyID).Msg("no se pudo resolver la tienda destino")
	}
	for _, s := range shops {
		if s.HasID(shopID) && s.Name != "" {
			name = s.Name
			break
		}
	}

	if form.Mode != entity.TransferModeCross {
		return name
	}
	company, err := uc.directory.GetCompanyDetails(ctx, sess, companyID)
	if err != nil || company == nil || company.Name == "" {
		if err != nil {
			uc.log.Warn().Err(err).Str("company_id", companyID).Msg("no se pudo resolver la empresa destino")
		}
		return name
	}
	return company.Name + " - " + name
}
