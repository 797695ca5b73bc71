package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/tu-usuario/aeropartes-api/internal/domain"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// isDeadlock verifica si Postgres abortó la transacción por deadlock (40P01).
func isDeadlock(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40P01" // deadlock_detected
	}
	return false
}

// translateTxError mapea errores de concurrencia de Postgres a errores de dominio.
// Un deadlock (p.ej. dos traslados opuestos tomando los locks de saldo en orden
// inverso) se devuelve como conflicto reintentable, no como error interno.
func translateTxError(err error) error {
	if isDeadlock(err) {
		return domain.ErrConflict
	}
	return err
}
