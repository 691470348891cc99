package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	apptransfer "github.com/jhoicas/Inventario-transfers/internal/application/transfer"
	"github.com/jhoicas/Inventario-transfers/internal/domain/entity"
	domaintransfer "github.com/jhoicas/Inventario-transfers/internal/domain/transfer"
)

var (
	_ apptransfer.SaleCreator       = (*Client)(nil)
	_ apptransfer.TransferSubmitter = (*Client)(nil)
	_ apptransfer.TransferLister    = (*Client)(nil)
)

// SellProduct POST /sales.
func (c *Client) SellProduct(ctx context.Context, sess entity.Session, p domaintransfer.SalePayload) (*entity.SaleRecord, error) {
	var sale entity.SaleRecord
	if err := c.do(ctx, sess, http.MethodPost, "/sales", nil, p, &sale); err != nil {
		return nil, err
	}
	if sale.PaymentID == "" {
		sale.PaymentID = p.PaymentID
	}
	return &sale, nil
}

// TransferToShop POST /companies/{id}/shops/{src}/transfers.
func (c *Client) TransferToShop(ctx context.Context, sess entity.Session, companyID, sourceShopID string, p domaintransfer.IntraCompanyPayload) (*entity.TransferRecord, error) {
	path := companyPath(companyID, "shops", url.PathEscape(sourceShopID), "transfers")
	return c.postTransfer(ctx, sess, path, p)
}

// TransferToCompany POST /companies/{id}/shops/{src}/transfers/company.
func (c *Client) TransferToCompany(ctx context.Context, sess entity.Session, companyID, sourceShopID string, p domaintransfer.CrossCompanyPayload) (*entity.TransferRecord, error) {
	path := companyPath(companyID, "shops", url.PathEscape(sourceShopID), "transfers", "company")
	return c.postTransfer(ctx, sess, path, p)
}

// postTransfer acepta como respuesta un traslado o la lista de traslados creados (uno por línea).
func (c *Client) postTransfer(ctx context.Context, sess entity.Session, path string, p domaintransfer.TransferPayload) (*entity.TransferRecord, error) {
	var raw json.RawMessage
	if err := c.do(ctx, sess, http.MethodPost, path, nil, p, &raw); err != nil {
		return nil, err
	}
	rec := &entity.TransferRecord{TransferType: p.Mode()}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return rec, nil
	}
	if trimmed[0] == '[' {
		var list []entity.TransferRecord
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, fmt.Errorf("remote: deserializar traslados: %w", err)
		}
		if len(list) > 0 {
			*rec = list[0]
		}
		return rec, nil
	}
	if trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, rec); err != nil {
			return nil, fmt.Errorf("remote: deserializar traslado: %w", err)
		}
	}
	return rec, nil
}

type transferListResponse struct {
	Data       []entity.TransferRecord `json:"data"`
	Total      *int                    `json:"total"`
	Pagination struct {
		Total int `json:"total"`
	} `json:"pagination"`
}

// GetTransfers GET /companies/{id}/transfers con los parámetros de la consulta.
func (c *Client) GetTransfers(ctx context.Context, sess entity.Session, companyID string, q domaintransfer.Query) (*apptransfer.TransferPage, error) {
	raw, err := c.send(ctx, sess, http.MethodGet, companyPath(companyID, "transfers"), q.Values(), nil)
	if err != nil {
		return nil, err
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return &apptransfer.TransferPage{}, nil
	}
	if trimmed[0] == '[' {
		// Lista sin sobre ni total.
		var list []entity.TransferRecord
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, fmt.Errorf("remote: deserializar listado de traslados: %w", err)
		}
		return &apptransfer.TransferPage{Records: list, Total: len(list)}, nil
	}

	var res transferListResponse
	if err := json.Unmarshal(trimmed, &res); err != nil {
		return nil, fmt.Errorf("remote: deserializar listado de traslados: %w", err)
	}
	total := res.Pagination.Total
	if res.Total != nil {
		total = *res.Total
	}
	if total == 0 {
		total = len(res.Data)
	}
	return &apptransfer.TransferPage{Records: res.Data, Total: total}, nil
}
