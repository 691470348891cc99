package transfer

import (
	"context"
	"fmt"

	"github.com/jhoicas/Inventario-transfers/internal/application/dto"
	"github.com/jhoicas/Inventario-transfers/internal/domain"
	"github.com/jhoicas/Inventario-transfers/internal/domain/entity"
	domaintransfer "github.com/jhoicas/Inventario-transfers/internal/domain/transfer"
)

// TargetsUseCase destinos posibles de un traslado: empresas elegibles y sus tiendas.
type TargetsUseCase struct {
	directory CompanyDirectory
}

// NewTargetsUseCase construye el caso de uso.
func NewTargetsUseCase(directory CompanyDirectory) *TargetsUseCase {
	return &TargetsUseCase{directory: directory}
}

// EligibleCompanies empresas de la misma categoría que la empresa de la sesión.
func (uc *TargetsUseCase) EligibleCompanies(ctx context.Context, sess entity.Session) ([]dto.CompanyResponse, error) {
	source, err := uc.directory.GetCompanyDetails(ctx, sess, sess.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("empresa de origen: %w", err)
	}
	if source == nil {
		return nil, domain.ErrNotFound
	}
	all, err := uc.directory.GetAllCompanies(ctx, sess)
	if err != nil {
		return nil, fmt.Errorf("empresas: %w", err)
	}
	eligible := domaintransfer.EligibleCompanies(*source, all)
	out := make([]dto.CompanyResponse, 0, len(eligible))
	for _, c := range eligible {
		ids := c.CategoryIDs
		if ids == nil {
			ids = []string{}
		}
		out = append(out, dto.CompanyResponse{ID: c.Key(), Name: c.Name, CategoryIDs: ids})
	}
	return out, nil
}

// Branches tiendas de una empresa (la propia o la destino).
func (uc *TargetsUseCase) Branches(ctx context.Context, sess entity.Session, companyID string) ([]dto.ShopResponse, error) {
	if companyID == "" {
		return nil, domain.ErrInvalidInput
	}
	shops, err := uc.directory.GetBranches(ctx, sess, companyID)
	if err != nil {
		return nil, fmt.Errorf("tiendas de %s: %w", companyID, err)
	}
	out := make([]dto.ShopResponse, 0, len(shops))
	for _, s := range shops {
		cid := s.CompanyID
		if cid == "" {
			cid = companyID
		}
		out = append(out, dto.ShopResponse{ID: s.Key(), CompanyID: cid, Name: s.Name})
	}
	return out, nil
}
