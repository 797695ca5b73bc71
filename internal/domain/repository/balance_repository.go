package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/aeropartes-api/internal/domain/entity"
)

// BalanceKey clave de saldo materializado. Lote y serie opcionales según el control de la parte.
type BalanceKey struct {
	CompanyID  string
	PartID     string
	LotID      *string
	SerialID   *string
	LocationID string
}

// BalanceRepository puerto para consultar/actualizar los saldos materializados por clave.
// Usado dentro de transacciones para garantizar consistencia con el ledger.
type BalanceRepository interface {
	Get(key BalanceKey) (*entity.OnHandBalance, error)
	// GetForUpdate bloquea la fila del saldo (SELECT FOR UPDATE) antes del check-then-append.
	GetForUpdate(key BalanceKey) (*entity.OnHandBalance, error)
	// ApplyDelta suma el delta firmado al saldo de la clave de forma atómica en la
	// base (creando la fila si no existe). condition vacía conserva la vigente.
	// El adaptador jamás debe escribir una cantidad absoluta calculada fuera de la
	// base: una lectura obsoleta sobrescribiría un commit concurrente.
	ApplyDelta(key BalanceKey, delta decimal.Decimal, condition string, updatedAt time.Time) error
	// ListOnHand lista saldos con cantidad > 0; partID vacío = todas las partes.
	ListOnHand(companyID, partID string, limit, offset int) ([]*entity.OnHandBalance, error)
	// ListAll incluye también saldos en cero (reconciliación).
	ListAll(companyID string) ([]*entity.OnHandBalance, error)
}
