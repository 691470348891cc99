package postgres

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/Inventario-transfers/internal/domain"
	"github.com/jhoicas/Inventario-transfers/internal/domain/entity"
	"github.com/jhoicas/Inventario-transfers/internal/domain/repository"
)

//go:embed schema.sql
var schemaSQL string

// Querier subconjunto de pgxpool.Pool / pgx.Tx usado por los repositorios.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var _ repository.TransferAttemptRepository = (*TransferAttemptRepo)(nil)

// TransferAttemptRepo implementación del puerto TransferAttemptRepository sobre PostgreSQL.
type TransferAttemptRepo struct {
	db Querier
}

// NewTransferAttemptRepository construye el adaptador de persistencia para intentos de traslado.
func NewTransferAttemptRepository(db Querier) *TransferAttemptRepo {
	return &TransferAttemptRepo{db: db}
}

// EnsureSchema crea la tabla e índices si no existen.
func EnsureSchema(ctx context.Context, db Querier) error {
	if _, err := db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("crear esquema transfer_attempts: %w", err)
	}
	return nil
}

// Create persiste un intento. Un id repetido devuelve domain.ErrConflict.
func (r *TransferAttemptRepo) Create(ctx context.Context, a *entity.TransferAttempt) error {
	query := `
		INSERT INTO transfer_attempts (
			id, company_id, user_id, mode, payment_id, source_shop_id,
			target_company_id, target_shop_id, total_amount, amount_paid_now, is_debt,
			status, failed_stage, sale_id, transfer_id, error_message, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.db.Exec(ctx, query,
		a.ID, a.CompanyID, a.UserID, string(a.Mode), a.PaymentID, a.SourceShopID,
		a.TargetCompanyID, a.TargetShopID, a.TotalAmount, a.AmountPaidNow, a.IsDebt,
		a.Status, a.FailedStage, a.SaleID, a.TransferID, a.ErrorMessage, a.CreatedAt,
	)
	if err != nil {
		if isDuplicateAttempt(err) {
			return fmt.Errorf("insert transfer_attempt %s: %w", a.ID, domain.ErrConflict)
		}
		return fmt.Errorf("insert transfer_attempt: %w", err)
	}
	return nil
}

// ListByCompany lista intentos de la empresa, más recientes primero; status vacío = todos.
func (r *TransferAttemptRepo) ListByCompany(ctx context.Context, companyID, status string, limit, offset int) ([]*entity.TransferAttempt, error) {
	query := `
		SELECT id, company_id, user_id, mode, payment_id, source_shop_id,
		       target_company_id, target_shop_id, total_amount, amount_paid_now, is_debt,
		       status, failed_stage, sale_id, transfer_id, error_message, created_at
		FROM transfer_attempts
		WHERE company_id = $1 AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`
	rows, err := r.db.Query(ctx, query, companyID, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list transfer_attempts: %w", err)
	}
	defer rows.Close()

	var list []*entity.TransferAttempt
	for rows.Next() {
		var a entity.TransferAttempt
		var mode string
		if err := rows.Scan(
			&a.ID, &a.CompanyID, &a.UserID, &mode, &a.PaymentID, &a.SourceShopID,
			&a.TargetCompanyID, &a.TargetShopID, &a.TotalAmount, &a.AmountPaidNow, &a.IsDebt,
			&a.Status, &a.FailedStage, &a.SaleID, &a.TransferID, &a.ErrorMessage, &a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan transfer_attempt: %w", err)
		}
		a.Mode = entity.TransferMode(mode)
		list = append(list, &a)
	}
	return list, rows.Err()
}

// CountByCompany cuenta intentos de la empresa con el mismo filtro que ListByCompany.
func (r *TransferAttemptRepo) CountByCompany(ctx context.Context, companyID, status string) (int, error) {
	var total int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM transfer_attempts WHERE company_id = $1 AND ($2 = '' OR status = $2)`,
		companyID, status,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count transfer_attempts: %w", err)
	}
	return total, nil
}
