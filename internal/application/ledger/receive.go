package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/aeropartes-api/internal/domain"
	"github.com/tu-usuario/aeropartes-api/internal/domain/entity"
	"github.com/tu-usuario/aeropartes-api/internal/domain/movement"
)

// ReceiveInput entrada para una recepción. PartDefinition permite crear la parte
// en la primera recepción; sin ella, parte desconocida es ErrNotFound.
type ReceiveInput struct {
	CompanyID      string
	UserID         string
	IdempotencyKey string
	PartNumber     string
	Quantity       decimal.Decimal
	UnitMeasure    string
	LotNumber      string
	SerialNumber   string
	ToLocation     string
	Condition      string // default QUARANTINE
	RefType        string
	RefID          string
	Notes          string
	PartDefinition *PartDefinition
}

// Receive registra una entrada de existencias. Sin precondición de saldo.
// La condición por defecto es QUARANTINE: todo lo recibido queda sin verificar
// hasta que una inspección lo libere.
func (uc *UseCase) Receive(ctx context.Context, in ReceiveInput) (*MovementResult, error) {
	if in.IdempotencyKey == "" {
		return nil, domain.ErrMissingIdempotencyKey
	}
	if err := requireQuantity(in.Quantity); err != nil {
		return nil, err
	}
	cond := in.Condition
	if cond == "" {
		cond = entity.ConditionQuarantine
	}
	if !movement.IsValidCondition(cond) {
		return nil, domain.ErrInvalidInput
	}
	loc, err := uc.resolveLocation(in.CompanyID, in.ToLocation)
	if err != nil {
		return nil, err
	}
	if in.PartNumber == "" {
		return nil, domain.ErrInvalidInput
	}
	part, err := uc.partRepo.GetByPartNumber(in.CompanyID, in.PartNumber)
	if err != nil {
		return nil, err
	}
	if part == nil && in.PartDefinition == nil {
		return nil, domain.ErrNotFound
	}

	var result *MovementResult
	err = uc.txRunner.Run(ctx, func(tx TxRepos) error {
		if replay, err := loadReplay(tx, in.CompanyID, entity.ScopeReceive, in.IdempotencyKey); err != nil || replay != nil {
			result = replay
			return err
		}
		now := time.Now()
		if part == nil {
			// Creación perezosa de la parte: re-verificar dentro de la tx por si otra
			// recepción concurrente ya la creó.
			existing, err := tx.Parts.GetByPartNumber(in.CompanyID, in.PartNumber)
			if err != nil {
				return err
			}
			part = existing
			if part == nil {
				def := in.PartDefinition
				part = &entity.Part{
					ID:              uuid.New().String(),
					CompanyID:       in.CompanyID,
					PartNumber:      in.PartNumber,
					Description:     def.Description,
					UnitMeasure:     def.UnitMeasure,
					IsSerialized:    def.IsSerialized,
					IsLotControlled: def.IsLotControlled,
					CreatedAt:       now,
					UpdatedAt:       now,
				}
				if err := tx.Parts.Create(part); err != nil {
					return err
				}
			}
		}
		lotID, serialID, err := ensureIdentity(tx, part, in.LotNumber, in.SerialNumber, now)
		if err != nil {
			return err
		}
		entry := newEntry(in.CompanyID, in.UserID, part, entity.MovementTypeRECEIVE, in.Quantity, in.UnitMeasure, now)
		entry.IdempotencyKey = &in.IdempotencyKey
		entry.LotID = lotID
		entry.SerialID = serialID
		entry.Condition = cond
		entry.ToLocationID = &loc.ID
		entry.RefType = in.RefType
		entry.RefID = in.RefID
		entry.Notes = in.Notes
		if err := movement.ValidateEntry(part, entry); err != nil {
			return err
		}
		if err := appendAndApply(tx, entry); err != nil {
			return err
		}
		if err := recordIdempotency(tx, in.CompanyID, entity.ScopeReceive, in.IdempotencyKey, []*entity.MovementEntry{entry}, now); err != nil {
			return err
		}
		// Posteo contable síncrono dentro de la misma unidad de trabajo.
		if uc.finance != nil {
			if err := uc.finance.PostInventoryReceipt(ctx, entry.Quantity, entry.ID); err != nil {
				return err
			}
		}
		result = &MovementResult{Entries: []*entity.MovementEntry{entry}}
		return nil
	})
	if err != nil {
		return uc.replayOnDuplicate(ctx, in.CompanyID, entity.ScopeReceive, in.IdempotencyKey, err)
	}
	return result, nil
}
