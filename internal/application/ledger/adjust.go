package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/aeropartes-api/internal/domain"
	"github.com/tu-usuario/aeropartes-api/internal/domain/entity"
	"github.com/tu-usuario/aeropartes-api/internal/domain/movement"
)

// AdjustInput entrada para una corrección firmada (ADJUSTMENT o CYCLE_COUNT).
// El signo lo aporta el caller: +1 suma, -1 resta.
type AdjustInput struct {
	CompanyID      string
	UserID         string
	IdempotencyKey string
	PartNumber     string
	Quantity       decimal.Decimal
	Location       string
	Sign           int
	CycleCount     bool // true = CYCLE_COUNT, false = ADJUSTMENT
	LotNumber      string
	SerialNumber   string
	ReasonCode     string
	Notes          string
}

// Adjust registra una corrección pass-through. Una corrección negativa exige
// saldo suficiente (no se permite dejar la clave por debajo de cero).
func (uc *UseCase) Adjust(ctx context.Context, in AdjustInput) (*MovementResult, error) {
	if in.IdempotencyKey == "" {
		return nil, domain.ErrMissingIdempotencyKey
	}
	if err := requireQuantity(in.Quantity); err != nil {
		return nil, err
	}
	if in.Sign != 1 && in.Sign != -1 {
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
	movType := entity.MovementTypeADJUSTMENT
	scope := entity.ScopeAdjust
	if in.CycleCount {
		movType = entity.MovementTypeCYCLECOUNT
	}

	var result *MovementResult
	err = uc.txRunner.Run(ctx, func(tx TxRepos) error {
		if replay, err := loadReplay(tx, in.CompanyID, scope, in.IdempotencyKey); err != nil || replay != nil {
			result = replay
			return err
		}
		now := time.Now()
		lotID, serialID, err := ensureIdentity(tx, part, in.LotNumber, in.SerialNumber, now)
		if err != nil {
			return err
		}
		entry := newEntry(in.CompanyID, in.UserID, part, movType, in.Quantity, "", now)
		entry.IdempotencyKey = &in.IdempotencyKey
		entry.LotID = lotID
		entry.SerialID = serialID
		entry.Sign = in.Sign
		if in.Sign > 0 {
			entry.ToLocationID = &loc.ID
		} else {
			entry.FromLocationID = &loc.ID
		}
		entry.ReasonCode = in.ReasonCode
		entry.Notes = in.Notes
		if err := movement.ValidateEntry(part, entry); err != nil {
			return err
		}
		bal, err := lockBalance(tx, entry, loc.ID)
		if err != nil {
			return err
		}
		if in.Sign < 0 && bal.Quantity.LessThan(in.Quantity) {
			return domain.ErrInsufficientStock
		}
		if bal.Condition != "" {
			entry.Condition = bal.Condition
		} else {
			entry.Condition = entity.ConditionQuarantine
		}
		if err := appendAndApply(tx, entry); err != nil {
			return err
		}
		if err := recordIdempotency(tx, in.CompanyID, scope, in.IdempotencyKey, []*entity.MovementEntry{entry}, now); err != nil {
			return err
		}
		result = &MovementResult{Entries: []*entity.MovementEntry{entry}}
		return nil
	})
	if err != nil {
		return uc.replayOnDuplicate(ctx, in.CompanyID, scope, in.IdempotencyKey, err)
	}
	return result, nil
}
