package transfer

import (
	"context"

	"github.com/jhoicas/Inventario-transfers/internal/application/dto"
	"github.com/jhoicas/Inventario-transfers/internal/domain"
	"github.com/jhoicas/Inventario-transfers/internal/domain/entity"
	"github.com/jhoicas/Inventario-transfers/internal/domain/repository"
)

// AttemptsUseCase consulta del registro local de intentos (ventas huérfanas incluidas).
type AttemptsUseCase struct {
	repo repository.TransferAttemptRepository
}

// NewAttemptsUseCase construye el caso de uso.
func NewAttemptsUseCase(repo repository.TransferAttemptRepository) *AttemptsUseCase {
	return &AttemptsUseCase{repo: repo}
}

// List lista intentos de la empresa con paginación; status vacío = todos.
func (uc *AttemptsUseCase) List(ctx context.Context, companyID, status string, limit, offset int) (*dto.TransferAttemptListResponse, error) {
	switch status {
	case "", entity.AttemptStatusSucceeded, entity.AttemptStatusSaleFailed, entity.AttemptStatusOrphaned:
	default:
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.repo.ListByCompany(ctx, companyID, status, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.CountByCompany(ctx, companyID, status)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TransferAttemptResponse, 0, len(list))
	for _, a := range list {
		items = append(items, toAttemptResponse(a))
	}
	return &dto.TransferAttemptListResponse{
		Items: items,
		Page:  dto.PageResponse{Page: offset/limit + 1, Limit: limit, Total: total},
	}, nil
}

func toAttemptResponse(a *entity.TransferAttempt) dto.TransferAttemptResponse {
	return dto.TransferAttemptResponse{
		ID:              a.ID,
		UserID:          a.UserID,
		Mode:            string(a.Mode),
		PaymentID:       a.PaymentID,
		SourceShopID:    a.SourceShopID,
		TargetCompanyID: a.TargetCompanyID,
		TargetShopID:    a.TargetShopID,
		TotalAmount:     a.TotalAmount,
		AmountPaidNow:   a.AmountPaidNow,
		IsDebt:          a.IsDebt,
		Status:          a.Status,
		FailedStage:     a.FailedStage,
		SaleID:          a.SaleID,
		TransferID:      a.TransferID,
		ErrorMessage:    a.ErrorMessage,
		CreatedAt:       a.CreatedAt,
	}
}
