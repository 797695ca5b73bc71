package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/aeropartes-api/internal/domain"
	"github.com/tu-usuario/aeropartes-api/internal/domain/entity"
	"github.com/tu-usuario/aeropartes-api/internal/domain/movement"
)

// TransferInput entrada para un traslado entre ubicaciones.
type TransferInput struct {
	CompanyID      string
	UserID         string
	IdempotencyKey string
	PartNumber     string
	Quantity       decimal.Decimal
	FromLocation   string
	ToLocation     string
	LotNumber      string
	SerialNumber   string
	Notes          string
}

// Transfer mueve existencias entre ubicaciones. Requiere saldo suficiente en el
// origen; el asiento lleva ambas ubicaciones y copia la condición vigente en el origen.
func (uc *UseCase) Transfer(ctx context.Context, in TransferInput) (*MovementResult, error) {
	if in.IdempotencyKey == "" {
		return nil, domain.ErrMissingIdempotencyKey
	}
	if err := requireQuantity(in.Quantity); err != nil {
		return nil, err
	}
	if in.FromLocation == in.ToLocation {
		return nil, domain.ErrInvalidInput
	}
	part, err := uc.resolvePart(in.CompanyID, in.PartNumber)
	if err != nil {
		return nil, err
	}
	from, err := uc.resolveLocation(in.CompanyID, in.FromLocation)
	if err != nil {
		return nil, err
	}
	to, err := uc.resolveLocation(in.CompanyID, in.ToLocation)
	if err != nil {
		return nil, err
	}

	var result *MovementResult
	err = uc.txRunner.Run(ctx, func(tx TxRepos) error {
		if replay, err := loadReplay(tx, in.CompanyID, entity.ScopeTransfer, in.IdempotencyKey); err != nil || replay != nil {
			result = replay
			return err
		}
		now := time.Now()
		lotID, serialID, err := ensureIdentity(tx, part, in.LotNumber, in.SerialNumber, now)
		if err != nil {
			return err
		}
		entry := newEntry(in.CompanyID, in.UserID, part, entity.MovementTypeTRANSFER, in.Quantity, "", now)
		entry.IdempotencyKey = &in.IdempotencyKey
		entry.LotID = lotID
		entry.SerialID = serialID
		entry.FromLocationID = &from.ID
		entry.ToLocationID = &to.ID
		entry.Notes = in.Notes
		if err := movement.ValidateEntry(part, entry); err != nil {
			return err
		}
		origin, err := lockBalance(tx, entry, from.ID)
		if err != nil {
			return err
		}
		if origin.Quantity.LessThan(in.Quantity) {
			return domain.ErrInsufficientStock
		}
		// La condición viaja con las existencias trasladadas.
		entry.Condition = origin.Condition
		if err := appendAndApply(tx, entry); err != nil {
			return err
		}
		if err := recordIdempotency(tx, in.CompanyID, entity.ScopeTransfer, in.IdempotencyKey, []*entity.MovementEntry{entry}, now); err != nil {
			return err
		}
		result = &MovementResult{Entries: []*entity.MovementEntry{entry}}
		return nil
	})
	if err != nil {
		return uc.replayOnDuplicate(ctx, in.CompanyID, entity.ScopeTransfer, in.IdempotencyKey, err)
	}
	return result, nil
}
