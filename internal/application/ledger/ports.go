package ledger

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/aeropartes-api/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción de BD.
type TxRepos struct {
	Entries     repository.MovementEntryRepository
	Balances    repository.BalanceRepository
	Lots        repository.LotRepository
	Serials     repository.SerialRepository
	Idempotency repository.IdempotencyRepository
	Parts       repository.PartRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para el motor del ledger: o se escriben todos los asientos de la llamada o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(tx TxRepos) error) error
}

// FinanceLedger colaborador contable externo. Un posteo por movimiento aceptado
// (RECEIVE, ISSUE, SCRAP); en replay idempotente no se postea.
// El sistema de referencia pasa la CANTIDAD del movimiento como amount, no un
// valor monetario; se replica esa forma (ver DESIGN.md).
type FinanceLedger interface {
	PostInventoryReceipt(ctx context.Context, amount decimal.Decimal, reference string) error
	PostInventoryIssue(ctx context.Context, amount decimal.Decimal, reference string) error
	PostInventoryScrap(ctx context.Context, amount decimal.Decimal, reference string) error
}
