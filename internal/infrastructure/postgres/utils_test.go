package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/aeropartes-api/internal/domain"
)

func pgError(code string) error {
	return &pgconn.PgError{Code: code, Message: "sqlstate " + code}
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(pgError("23505")))
	assert.True(t, isUniqueViolation(fmt.Errorf("create entry: %w", pgError("23505"))),
		"debe detectarse aunque el error venga envuelto")
	assert.False(t, isUniqueViolation(pgError("23503")), "otra constraint no es violación de unicidad")
	assert.False(t, isUniqueViolation(errors.New("connection refused")))
}

func TestIsDeadlock(t *testing.T) {
	assert.True(t, isDeadlock(pgError("40P01")))
	assert.True(t, isDeadlock(fmt.Errorf("apply balance delta: %w", pgError("40P01"))))
	assert.False(t, isDeadlock(pgError("23505")))
	assert.False(t, isDeadlock(errors.New("context canceled")))
}

// Dos traslados opuestos sobre la misma parte toman los locks de saldo en orden
// inverso; Postgres aborta uno con 40P01. Ese aborto debe llegar al caller como
// conflicto reintentable, no como error interno.
func TestTranslateTxError_DeadlockEsConflicto(t *testing.T) {
	err := translateTxError(fmt.Errorf("commit transaction: %w", pgError("40P01")))
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestTranslateTxError_OtrosErroresPasanIntactos(t *testing.T) {
	assert.ErrorIs(t, translateTxError(domain.ErrInsufficientStock), domain.ErrInsufficientStock)
	plain := errors.New("boom")
	assert.Equal(t, plain, translateTxError(plain))
}
