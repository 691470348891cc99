package repository

import (
	"context"

	"github.com/jhoicas/Inventario-transfers/internal/domain/entity"
)

// TransferAttemptRepository define el puerto de persistencia para los intentos de traslado (DIP).
// La implementación vive en infrastructure.
type TransferAttemptRepository interface {
	Create(ctx context.Context, attempt *entity.TransferAttempt) error
	// ListByCompany lista intentos de la empresa; status vacío = todos.
	ListByCompany(ctx context.Context, companyID, status string, limit, offset int) ([]*entity.TransferAttempt, error)
	// CountByCompany total de intentos con el mismo filtro, sin paginar.
	CountByCompany(ctx context.Context, companyID, status string) (int, error)
}
