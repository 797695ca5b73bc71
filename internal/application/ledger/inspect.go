package ledger

import (
	"context"
	"time"

	"github.com/tu-usuario/aeropartes-api/internal/domain"
	"github.com/tu-usuario/aeropartes-api/internal/domain/entity"
	"github.com/tu-usuario/aeropartes-api/internal/domain/movement"
	"github.com/tu-usuario/aeropartes-api/internal/domain/repository"
)

// InspectInput entrada para una inspección. La idempotency key es opcional aquí:
// la inspección es la única operación de escritura que no la exige.
type InspectInput struct {
	CompanyID      string
	UserID         string
	IdempotencyKey string
	PartNumber     string
	LotNumber      string
	SerialNumber   string
	Location       string
	NewCondition   string
	Notes          string
}

// Inspect cambia la condición de todas las existencias de la clave en la ubicación.
// Escribe un par de asientos INSPECT en la misma transacción: OUT retira la cantidad
// con la condición anterior e IN la restituye con la nueva. Neto de cantidad: cero.
// Sin existencias en la clave no hay nada que inspeccionar (conflicto).
func (uc *UseCase) Inspect(ctx context.Context, in InspectInput) (*MovementResult, error) {
	if !movement.IsValidCondition(in.NewCondition) {
		return nil, domain.ErrInvalidInput
	}
	part, err := uc.resolvePart(in.CompanyID, in.PartNumber)
	if err != nil {
		return nil, err
	}
	loc, err := uc.resolveLocation(in.CompanyID, in.Location)
	if err != nil {
		return nil, err
	}

	var result *MovementResult
	err = uc.txRunner.Run(ctx, func(tx TxRepos) error {
		if replay, err := loadReplay(tx, in.CompanyID, entity.ScopeInspect, in.IdempotencyKey); err != nil || replay != nil {
			result = replay
			return err
		}
		now := time.Now()
		lotID, serialID, err := ensureIdentity(tx, part, in.LotNumber, in.SerialNumber, now)
		if err != nil {
			return err
		}

		bal, err := tx.Balances.GetForUpdate(repository.BalanceKey{
			CompanyID:  in.CompanyID,
			PartID:     part.ID,
			LotID:      lotID,
			SerialID:   serialID,
			LocationID: loc.ID,
		})
		if err != nil {
			return err
		}
		if !bal.IsOnHand() {
			return domain.ErrNothingToInspect
		}
		prior := bal.Condition

		out := newEntry(in.CompanyID, in.UserID, part, entity.MovementTypeINSPECT, bal.Quantity, "", now)
		out.LotID = lotID
		out.SerialID = serialID
		out.Condition = prior
		out.FromLocationID = &loc.ID
		out.RefType = entity.InspectRefOut
		out.Notes = in.Notes

		restore := newEntry(in.CompanyID, in.UserID, part, entity.MovementTypeINSPECT, bal.Quantity, "", now)
		restore.LotID = lotID
		restore.SerialID = serialID
		restore.Condition = in.NewCondition
		restore.ToLocationID = &loc.ID
		restore.RefType = entity.InspectRefIn
		restore.Notes = in.Notes

		if err := movement.ValidateEntry(part, out); err != nil {
			return err
		}
		if err := movement.ValidateEntry(part, restore); err != nil {
			return err
		}
		// Las dos mitades se escriben en la misma transacción: un inspect a medias
		// (solo OUT) jamás es observable.
		if err := appendAndApply(tx, out); err != nil {
			return err
		}
		if err := appendAndApply(tx, restore); err != nil {
			return err
		}
		if err := recordIdempotency(tx, in.CompanyID, entity.ScopeInspect, in.IdempotencyKey, []*entity.MovementEntry{out, restore}, now); err != nil {
			return err
		}
		result = &MovementResult{Entries: []*entity.MovementEntry{out, restore}}
		return nil
	})
	if err != nil {
		return uc.replayOnDuplicate(ctx, in.CompanyID, entity.ScopeInspect, in.IdempotencyKey, err)
	}
	return result, nil
}
