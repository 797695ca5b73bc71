package ledger

import (
	"github.com/tu-usuario/aeropartes-api/internal/domain"
	"github.com/tu-usuario/aeropartes-api/internal/domain/entity"
	"github.com/tu-usuario/aeropartes-api/internal/domain/movement"
	"github.com/tu-usuario/aeropartes-api/internal/domain/repository"
)

// QueryUseCase responde "cuánto hay y en qué condición" desde los balances
// materializados, y verifica su equivalencia con el replay del ledger.
type QueryUseCase struct {
	balanceRepo repository.BalanceRepository
	entryRepo   repository.MovementEntryRepository
	partRepo    repository.PartRepository
}

// NewQueryUseCase construye el caso de uso de consulta.
func NewQueryUseCase(
	balanceRepo repository.BalanceRepository,
	entryRepo repository.MovementEntryRepository,
	partRepo repository.PartRepository,
) *QueryUseCase {
	return &QueryUseCase{balanceRepo: balanceRepo, entryRepo: entryRepo, partRepo: partRepo}
}

// ListOnHand lista saldos con existencias (> 0). partNumber vacío = todas las partes.
func (uc *QueryUseCase) ListOnHand(companyID, partNumber string, limit, offset int) ([]*entity.OnHandBalance, error) {
	partID := ""
	if partNumber != "" {
		part, err := uc.partRepo.GetByPartNumber(companyID, partNumber)
		if err != nil {
			return nil, err
		}
		if part == nil {
			return nil, domain.ErrNotFound
		}
		partID = part.ID
	}
	return uc.balanceRepo.ListOnHand(companyID, partID, limit, offset)
}

// ListLedger lista el ledger de la empresa paginado, más reciente primero.
func (uc *QueryUseCase) ListLedger(companyID string, limit, offset int) ([]*entity.MovementEntry, error) {
	return uc.entryRepo.ListByCompany(companyID, limit, offset)
}

// Discrepancy diferencia entre balance materializado y replay del ledger para una clave.
type Discrepancy struct {
	Key          movement.Key
	Materialized entity.OnHandBalance
	Replayed     movement.ReplayedBalance
}

// Reconcile pliega el ledger completo de la empresa con la álgebra del proyector
// y compara contra los balances materializados. Una lista vacía confirma que las
// consultas son idénticas a un replay completo.
func (uc *QueryUseCase) Reconcile(companyID string) ([]Discrepancy, error) {
	entries, err := uc.entryRepo.ListAll(companyID)
	if err != nil {
		return nil, err
	}
	replayed := movement.Replay(entries)

	balances, err := uc.balanceRepo.ListAll(companyID)
	if err != nil {
		return nil, err
	}
	materialized := make(map[movement.Key]*entity.OnHandBalance, len(balances))
	for _, b := range balances {
		k := movement.Key{PartID: b.PartID, LocationID: b.LocationID}
		if b.LotID != nil {
			k.LotID = *b.LotID
		}
		if b.SerialID != nil {
			k.SerialID = *b.SerialID
		}
		materialized[k] = b
	}

	var out []Discrepancy
	for k, r := range replayed {
		m := materialized[k]
		if m == nil {
			if !r.Quantity.IsZero() {
				out = append(out, Discrepancy{Key: k, Replayed: r})
			}
			continue
		}
		if !m.Quantity.Equal(r.Quantity) {
			out = append(out, Discrepancy{Key: k, Materialized: *m, Replayed: r})
		}
	}
	for k, m := range materialized {
		if _, ok := replayed[k]; !ok && !m.Quantity.IsZero() {
			out = append(out, Discrepancy{Key: k, Materialized: *m})
		}
	}
	return out, nil
}
