package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// codeUniqueViolation SQLSTATE de PostgreSQL para unique_violation.
const codeUniqueViolation = "23505"

// isDuplicateAttempt indica que el INSERT en transfer_attempts chocó con la clave
// primaria: el mismo intento se registró dos veces. Create lo traduce a domain.ErrConflict.
// Con poolers que reempaquetan el error solo queda el código en el texto.
func isDuplicateAttempt(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == codeUniqueViolation
	}
	return strings.Contains(err.Error(), codeUniqueViolation)
}
