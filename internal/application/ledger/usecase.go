package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/aeropartes-api/internal/domain"
	"github.com/tu-usuario/aeropartes-api/internal/domain/entity"
	"github.com/tu-usuario/aeropartes-api/internal/domain/movement"
	"github.com/tu-usuario/aeropartes-api/internal/domain/repository"
)

// UseCase es el motor del ledger de movimientos: valida referencias e invariantes,
// consulta el guard de idempotencia y escribe asientos inmutables + balances
// materializados en una sola transacción con bloqueo de fila (SELECT FOR UPDATE).
type UseCase struct {
	txRunner     TxRunner
	partRepo     repository.PartRepository
	locationRepo repository.LocationRepository
	finance      FinanceLedger
}

// NewUseCase construye el motor. finance puede ser nil (sin posteos contables).
func NewUseCase(
	txRunner TxRunner,
	partRepo repository.PartRepository,
	locationRepo repository.LocationRepository,
	finance FinanceLedger,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		partRepo:     partRepo,
		locationRepo: locationRepo,
		finance:      finance,
	}
}

// PartDefinition definición completa de una parte para creación perezosa en la primera recepción.
type PartDefinition struct {
	Description     string
	UnitMeasure     string
	IsSerialized    bool
	IsLotControlled bool
}

// MovementResult asientos creados (o reproducidos) por una operación del ledger.
type MovementResult struct {
	Entries  []*entity.MovementEntry
	Replayed bool // true si la idempotency key ya se había usado; sin efectos nuevos
}

// First devuelve el primer asiento del resultado (nil si no hay).
func (r *MovementResult) First() *entity.MovementEntry {
	if r == nil || len(r.Entries) == 0 {
		return nil
	}
	return r.Entries[0]
}

// resolvePart localiza la parte por número; desconocida es ErrNotFound.
func (uc *UseCase) resolvePart(companyID, partNumber string) (*entity.Part, error) {
	if partNumber == "" {
		return nil, domain.ErrInvalidInput
	}
	part, err := uc.partRepo.GetByPartNumber(companyID, partNumber)
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, domain.ErrNotFound
	}
	return part, nil
}

// resolveLocation localiza la ubicación por código; desconocida es ErrNotFound, inactiva inválida.
func (uc *UseCase) resolveLocation(companyID, code string) (*entity.Location, error) {
	if code == "" {
		return nil, domain.ErrInvalidInput
	}
	loc, err := uc.locationRepo.GetByCode(companyID, code)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, domain.ErrNotFound
	}
	if !loc.IsActive {
		return nil, domain.ErrInvalidInput
	}
	return loc, nil
}

// ensureIdentity crea perezosamente lote y/o serie dentro de la transacción.
// La obligatoriedad según los flags de la parte la verifica movement.ValidateEntry.
func ensureIdentity(tx TxRepos, part *entity.Part, lotNumber, serialNumber string, now time.Time) (lotID, serialID *string, err error) {
	if lotNumber != "" {
		lot, err := tx.Lots.Ensure(&entity.Lot{
			ID:        uuid.New().String(),
			CompanyID: part.CompanyID,
			PartID:    part.ID,
			LotNumber: lotNumber,
			CreatedAt: now,
		})
		if err != nil {
			return nil, nil, err
		}
		lotID = &lot.ID
	}
	if serialNumber != "" {
		serial, err := tx.Serials.Ensure(&entity.Serial{
			ID:           uuid.New().String(),
			CompanyID:    part.CompanyID,
			PartID:       part.ID,
			SerialNumber: serialNumber,
			CreatedAt:    now,
		})
		if err != nil {
			return nil, nil, err
		}
		serialID = &serial.ID
	}
	return lotID, serialID, nil
}

// loadReplay consulta el guard de idempotencia. Si la key ya se usó devuelve el
// resultado original (asientos almacenados) sin comparar el payload del request.
func loadReplay(tx TxRepos, companyID, scope, key string) (*MovementResult, error) {
	if key == "" {
		return nil, nil
	}
	rec, err := tx.Idempotency.Get(companyID, scope, key)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}
	entries := make([]*entity.MovementEntry, 0, len(rec.EntryIDs))
	for _, id := range rec.EntryIDs {
		e, err := tx.Entries.GetByID(companyID, id)
		if err != nil {
			return nil, err
		}
		if e != nil {
			entries = append(entries, e)
		}
	}
	return &MovementResult{Entries: entries, Replayed: true}, nil
}

// recordIdempotency almacena la key con los IDs de los asientos creados.
func recordIdempotency(tx TxRepos, companyID, scope, key string, entries []*entity.MovementEntry, now time.Time) error {
	if key == "" {
		return nil
	}
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	return tx.Idempotency.Create(&entity.IdempotencyRecord{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Scope:     scope,
		Key:       key,
		EntryIDs:  ids,
		CreatedAt: now,
	})
}

// replayOnDuplicate resuelve la carrera de dos requests con la misma key nueva:
// ambos pasan el guard sin registro, el primero comitea y el segundo choca con
// la constraint única al registrar la key (ErrDuplicate). Se relee el registro
// en una transacción fresca y se devuelve el resultado original como replay.
func (uc *UseCase) replayOnDuplicate(ctx context.Context, companyID, scope, key string, opErr error) (*MovementResult, error) {
	if key == "" || !errors.Is(opErr, domain.ErrDuplicate) {
		return nil, opErr
	}
	var replay *MovementResult
	err := uc.txRunner.Run(ctx, func(tx TxRepos) error {
		var err error
		replay, err = loadReplay(tx, companyID, scope, key)
		return err
	})
	if err != nil {
		return nil, err
	}
	if replay == nil {
		// El duplicado vino de otra constraint, no del guard de idempotencia.
		return nil, opErr
	}
	return replay, nil
}

// balanceKeyFor clave de saldo para un asiento en una ubicación concreta.
func balanceKeyFor(e *entity.MovementEntry, locationID string) repository.BalanceKey {
	return repository.BalanceKey{
		CompanyID:  e.CompanyID,
		PartID:     e.PartID,
		LotID:      e.LotID,
		SerialID:   e.SerialID,
		LocationID: locationID,
	}
}

// appendAndApply persiste el asiento y aplica sus deltas firmados al balance
// materializado, con la misma álgebra que usa el proyector de replay.
// Los deltas se suman vía ApplyDelta (aritmética en la base): un asiento jamás
// escribe una cantidad absoluta calculada a partir de una lectura previa.
func appendAndApply(tx TxRepos, e *entity.MovementEntry) error {
	if err := tx.Entries.Create(e); err != nil {
		return err
	}
	for _, ef := range movement.Effects(e) {
		if err := tx.Balances.ApplyDelta(balanceKeyFor(e, ef.LocationID), ef.Delta, e.Condition, e.CreatedAt); err != nil {
			return err
		}
	}
	return nil
}

// lockBalance bloquea y devuelve el saldo de la clave del asiento en una ubicación.
func lockBalance(tx TxRepos, e *entity.MovementEntry, locationID string) (*entity.OnHandBalance, error) {
	return tx.Balances.GetForUpdate(balanceKeyFor(e, locationID))
}

// requireQuantity valida que la magnitud sea positiva.
func requireQuantity(q decimal.Decimal) error {
	if !q.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	return nil
}

// newEntry base de asiento con identidad, tiempos y actor.
func newEntry(companyID, userID string, part *entity.Part, movType string, qty decimal.Decimal, uom string, now time.Time) *entity.MovementEntry {
	if uom == "" {
		uom = part.UnitMeasure
	}
	return &entity.MovementEntry{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		PartID:      part.ID,
		Quantity:    qty,
		UnitMeasure: uom,
		Type:        movType,
		OccurredAt:  now,
		CreatedAt:   now,
		CreatedBy:   userID,
	}
}
