package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/aeropartes-api/internal/domain"
	"github.com/tu-usuario/aeropartes-api/internal/domain/entity"
	"github.com/tu-usuario/aeropartes-api/internal/domain/movement"
)

// IssueInput entrada para una salida a orden de trabajo.
type IssueInput struct {
	CompanyID      string
	UserID         string
	IdempotencyKey string
	PartNumber     string
	Quantity       decimal.Decimal
	FromLocation   string
	LotNumber      string
	SerialNumber   string
	WorkOrderID    string
	TaskCardID     string
	Notes          string
}

// Issue retira existencias para consumo. Exige saldo suficiente y que la condición
// vigente de la clave sea exactamente SERVICEABLE: material en cuarentena o
// rechazado jamás se entrega.
func (uc *UseCase) Issue(ctx context.Context, in IssueInput) (*MovementResult, error) {
	if in.IdempotencyKey == "" {
		return nil, domain.ErrMissingIdempotencyKey
	}
	if err := requireQuantity(in.Quantity); err != nil {
		return nil, err
	}
	part, err := uc.resolvePart(in.CompanyID, in.PartNumber)
	if err != nil {
		return nil, err
	}
	from, err := uc.resolveLocation(in.CompanyID, in.FromLocation)
	if err != nil {
		return nil, err
	}

	var result *MovementResult
	err = uc.txRunner.Run(ctx, func(tx TxRepos) error {
		if replay, err := loadReplay(tx, in.CompanyID, entity.ScopeIssue, in.IdempotencyKey); err != nil || replay != nil {
			result = replay
			return err
		}
		now := time.Now()
		lotID, serialID, err := ensureIdentity(tx, part, in.LotNumber, in.SerialNumber, now)
		if err != nil {
			return err
		}
		entry := newEntry(in.CompanyID, in.UserID, part, entity.MovementTypeISSUE, in.Quantity, "", now)
		entry.IdempotencyKey = &in.IdempotencyKey
		entry.LotID = lotID
		entry.SerialID = serialID
		entry.FromLocationID = &from.ID
		if in.WorkOrderID != "" {
			entry.WorkOrderID = &in.WorkOrderID
		}
		if in.TaskCardID != "" {
			entry.TaskCardID = &in.TaskCardID
		}
		entry.Notes = in.Notes
		if err := movement.ValidateEntry(part, entry); err != nil {
			return err
		}
		bal, err := lockBalance(tx, entry, from.ID)
		if err != nil {
			return err
		}
		if bal.Quantity.LessThan(in.Quantity) {
			return domain.ErrInsufficientStock
		}
		if bal.Condition != entity.ConditionServiceable {
			return domain.ErrConditionNotServiceable
		}
		entry.Condition = entity.ConditionServiceable
		if err := appendAndApply(tx, entry); err != nil {
			return err
		}
		if err := recordIdempotency(tx, in.CompanyID, entity.ScopeIssue, in.IdempotencyKey, []*entity.MovementEntry{entry}, now); err != nil {
			return err
		}
		if uc.finance != nil {
			if err := uc.finance.PostInventoryIssue(ctx, entry.Quantity, entry.ID); err != nil {
				return err
			}
		}
		result = &MovementResult{Entries: []*entity.MovementEntry{entry}}
		return nil
	})
	if err != nil {
		return uc.replayOnDuplicate(ctx, in.CompanyID, entity.ScopeIssue, in.IdempotencyKey, err)
	}
	return result, nil
}
