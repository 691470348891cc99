package transfer

import (
	"context"

	"github.com/jhoicas/Inventario-transfers/internal/domain/entity"
	domaintransfer "github.com/jhoicas/Inventario-transfers/internal/domain/transfer"
)

// CompanyDirectory datos de referencia de la API remota (empresas, tiendas, empleados).
type CompanyDirectory interface {
	GetCompanyDetails(ctx context.Context, sess entity.Session, companyID string) (*entity.Company, error)
	GetAllCompanies(ctx context.Context, sess entity.Session) ([]entity.Company, error)
	GetBranches(ctx context.Context, sess entity.Session, companyID string) ([]entity.Shop, error)
	GetWorkers(ctx context.Context, sess entity.Session, companyID string) ([]entity.Worker, error)
}

// SaleCreator primera llamada del flujo: registra la venta del traslado (sellProduct).
type SaleCreator interface {
	SellProduct(ctx context.Context, sess entity.Session, p domaintransfer.SalePayload) (*entity.SaleRecord, error)
}

// TransferSubmitter segunda llamada del flujo; cada modo usa una operación remota distinta.
type TransferSubmitter interface {
	TransferToShop(ctx context.Context, sess entity.Session, companyID, sourceShopID string, p domaintransfer.IntraCompanyPayload) (*entity.TransferRecord, error)
	TransferToCompany(ctx context.Context, sess entity.Session, companyID, sourceShopID string, p domaintransfer.CrossCompanyPayload) (*entity.TransferRecord, error)
}

// TransferPage página de getTransfers.
type TransferPage struct {
	Records []entity.TransferRecord
	Total   int
}

// TransferLister listado remoto de traslados (getTransfers).
type TransferLister interface {
	GetTransfers(ctx context.Context, sess entity.Session, companyID string, q domaintransfer.Query) (*TransferPage, error)
}

// AttemptRecorder registra el resultado terminal de cada ejecución del flujo.
// Es opcional: puede ser nil.
type AttemptRecorder interface {
	Create(ctx context.Context, attempt *entity.TransferAttempt) error
}
