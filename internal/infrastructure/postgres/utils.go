package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Códigos SQLSTATE usados para mapear errores a errores de dominio.
const (
	codeUniqueViolation = "23505"
	codeCheckViolation  = "23514"
)

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation verifica si un error es una violación de constraint único.
func isUniqueViolation(err error) bool { return pgErrorCode(err) == codeUniqueViolation }

// isCheckViolation verifica si un error es una violación de CHECK (p. ej. cantidades negativas).
func isCheckViolation(err error) bool { return pgErrorCode(err) == codeCheckViolation }
