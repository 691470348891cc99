package transfer

import (
	"strings"

	"github.com/jhoicas/Inventario-transfers/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Stats resumen de una página de traslados.
type Stats struct {
	Count       int             `json:"count"`
	Completed   int             `json:"completed"`
	QuantitySum decimal.Decimal `json:"quantity_sum"`
}

// ComputeStats cuenta traslados, completados y suma de cantidades.
func ComputeStats(records []entity.TransferRecord) Stats {
	s := Stats{Count: len(records), QuantitySum: decimal.Zero}
	for _, r := range records {
		if strings.EqualFold(r.Status, entity.TransferStatusCompleted) {
			s.Completed++
		}
		s.QuantitySum = s.QuantitySum.Add(r.Quantity)
	}
	return s
}
