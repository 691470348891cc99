package transfer

import (
	"context"
	"fmt"

	"github.com/jhoicas/Inventario-transfers/internal/application/dto"
	"github.com/jhoicas/Inventario-transfers/internal/domain/entity"
	domaintransfer "github.com/jhoicas/Inventario-transfers/internal/domain/transfer"
	"github.com/rs/zerolog"
)

// ListingUseCase listado de traslados con nombres resueltos y estadísticas de la página.
type ListingUseCase struct {
	lister    TransferLister
	directory CompanyDirectory
	log       zerolog.Logger
}

// NewListingUseCase construye el caso de uso.
func NewListingUseCase(lister TransferLister, directory CompanyDirectory, log zerolog.Logger) *ListingUseCase {
	return &ListingUseCase{lister: lister, directory: directory, log: log}
}

// List aplica los filtros (la página vuelve a 1 si cambian) y consulta getTransfers.
// Si una tabla de referencia falla, las filas usan los textos fijos del proyector.
func (uc *ListingUseCase) List(ctx context.Context, sess entity.Session, f domaintransfer.Filters, page, limit int) (*dto.TransferListResponse, error) {
	state := domaintransfer.NewListingState(limit)
	state.ApplyFilters(f)
	state.GoToPage(page)
	q := state.Query()

	res, err := uc.lister.GetTransfers(ctx, sess, sess.CompanyID, q)
	if err != nil {
		return nil, fmt.Errorf("listado de traslados: %w", err)
	}

	shops := uc.branches(ctx, sess, sess.CompanyID)
	seen := map[string]bool{sess.CompanyID: true}
	for _, r := range res.Records {
		if r.ToCompanyID == "" || seen[r.ToCompanyID] {
			continue
		}
		seen[r.ToCompanyID] = true
		shops = append(shops, uc.branches(ctx, sess, r.ToCompanyID)...)
	}

	workers, err := uc.directory.GetWorkers(ctx, sess, sess.CompanyID)
	if err != nil {
		uc.log.Warn().Err(err).Str("company_id", sess.CompanyID).Msg("empleados no disponibles para el listado")
		workers = nil
	}
	companies, err := uc.directory.GetAllCompanies(ctx, sess)
	if err != nil {
		uc.log.Warn().Err(err).Msg("empresas no disponibles para el listado")
		companies = nil
	}

	return &dto.TransferListResponse{
		Items:   domaintransfer.Project(res.Records, shops, workers, companies),
		Stats:   domaintransfer.ComputeStats(res.Records),
		Filters: state.Filters,
		Page:    dto.PageResponse{Page: q.Page, Limit: q.Limit, Total: res.Total},
	}, nil
}

func (uc *ListingUseCase) branches(ctx context.Context, sess entity.Session, companyID string) []entity.Shop {
	shops, err := uc.directory.GetBranches(ctx, sess, companyID)
	if err != nil {
		uc.log.Warn().Err(err).Str("company_id", companyID).Msg("tiendas no disponibles para el listado")
		return nil
	}
	return shops
}
