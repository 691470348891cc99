package remote

import (
	"context"
	"net/http"

	apptransfer "github.com/jhoicas/Inventario-transfers/internal/application/transfer"
	"github.com/jhoicas/Inventario-transfers/internal/domain"
	"github.com/jhoicas/Inventario-transfers/internal/domain/entity"
)

var _ apptransfer.CompanyDirectory = (*Client)(nil)

// GetCompanyDetails GET /companies/{id}.
func (c *Client) GetCompanyDetails(ctx context.Context, sess entity.Session, companyID string) (*entity.Company, error) {
	var company entity.Company
	if err := c.do(ctx, sess, http.MethodGet, companyPath(companyID), nil, nil, &company); err != nil {
		return nil, err
	}
	if company.Key() == "" && company.Name == "" {
		return nil, domain.ErrNotFound
	}
	return &company, nil
}

// GetAllCompanies GET /companies.
func (c *Client) GetAllCompanies(ctx context.Context, sess entity.Session) ([]entity.Company, error) {
	var list []entity.Company
	if err := c.do(ctx, sess, http.MethodGet, "/companies", nil, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// GetBranches GET /companies/{id}/branches.
func (c *Client) GetBranches(ctx context.Context, sess entity.Session, companyID string) ([]entity.Shop, error) {
	var list []entity.Shop
	if err := c.do(ctx, sess, http.MethodGet, companyPath(companyID, "branches"), nil, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// GetWorkers GET /companies/{id}/workers.
func (c *Client) GetWorkers(ctx context.Context, sess entity.Session, companyID string) ([]entity.Worker, error) {
	var list []entity.Worker
	if err := c.do(ctx, sess, http.MethodGet, companyPath(companyID, "workers"), nil, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}
