package transfer

import (
	"time"

	"github.com/jhoicas/Inventario-transfers/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Textos usados cuando una referencia no se encuentra en las tablas.
const (
	PlaceholderUnknown = "Unknown"
	PlaceholderNA      = "N/A"
)

// ProjectedTransfer fila del listado de traslados con nombres en lugar de llaves.
type ProjectedTransfer struct {
	ID                  string              `json:"id"`
	ProductID           string              `json:"product_id,omitempty"`
	ProductName         string              `json:"product_name,omitempty"`
	TransferType        entity.TransferMode `json:"transfer_type"`
	Quantity            decimal.Decimal     `json:"quantity"`
	SourceStockAfter    decimal.Decimal     `json:"source_stock_after"`
	Status              string              `json:"status"`
	Reason              string              `json:"reason,omitempty"`
	InitiatedAt         time.Time           `json:"initiated_at"`
	SourceShopID        string              `json:"source_shop_id"`
	SourceShopName      string              `json:"source_shop_name"`
	DestinationShopID   string              `json:"destination_shop_id"`
	DestinationShopName string              `json:"destination_shop_name"`
	ToCompanyID         string              `json:"to_company_id,omitempty"`
	ToCompanyName       string              `json:"to_company_name"`
	PerformedByID       string              `json:"performed_by_id,omitempty"`
	PerformedByName     string              `json:"performed_by_name"`
}

// Project une los traslados con las tablas de tiendas, empleados y empresas.
// La API de listado solo devuelve llaves; una referencia no encontrada se reemplaza
// por el texto fijo ("Unknown" o "N/A") y nunca produce error.
func Project(records []entity.TransferRecord, shops []entity.Shop, workers []entity.Worker, companies []entity.Company) []ProjectedTransfer {
	out := make([]ProjectedTransfer, 0, len(records))
	for _, r := range records {
		performedBy := r.PerformedBy.Resolve()
		out = append(out, ProjectedTransfer{
			ID:                  r.Key(),
			ProductID:           r.ProductID,
			ProductName:         r.ProductName,
			TransferType:        r.TransferType,
			Quantity:            r.Quantity,
			SourceStockAfter:    r.SourceStockAfter,
			Status:              r.Status,
			Reason:              r.Reason,
			InitiatedAt:         r.InitiatedAt,
			SourceShopID:        r.SourceShopID,
			SourceShopName:      shopName(shops, r.SourceShopID),
			DestinationShopID:   r.DestinationShopID,
			DestinationShopName: shopName(shops, r.DestinationShopID),
			ToCompanyID:         r.ToCompanyID,
			ToCompanyName:       companyName(companies, r.ToCompanyID),
			PerformedByID:       performedBy,
			PerformedByName:     workerName(workers, performedBy),
		})
	}
	return out
}

func shopName(shops []entity.Shop, id string) string {
	for _, s := range shops {
		if s.HasID(id) {
			return s.Name
		}
	}
	return PlaceholderUnknown
}

func companyName(companies []entity.Company, id string) string {
	for _, c := range companies {
		if c.HasID(id) {
			return c.Name
		}
	}
	return PlaceholderUnknown
}

func workerName(workers []entity.Worker, id string) string {
	for _, w := range workers {
		if w.HasID(id) {
			if name := w.FullName(); name != "" {
				return name
			}
			return PlaceholderNA
		}
	}
	return PlaceholderNA
}
