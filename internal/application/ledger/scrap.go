package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/aeropartes-api/internal/domain"
	"github.com/tu-usuario/aeropartes-api/internal/domain/entity"
	"github.com/tu-usuario/aeropartes-api/internal/domain/movement"
)

// ScrapInput entrada para una baja definitiva.
type ScrapInput struct {
	CompanyID      string
	UserID         string
	IdempotencyKey string
	PartNumber     string
	Quantity       decimal.Decimal
	FromLocation   string
	ReasonCode     string
	LotNumber      string
	SerialNumber   string
	Notes          string
}

// Scrap da de baja existencias de forma definitiva. Requiere saldo suficiente
// y un código de motivo no vacío; la reversa de un scrap es un asiento nuevo.
func (uc *UseCase) Scrap(ctx context.Context, in ScrapInput) (*MovementResult, error) {
	if in.IdempotencyKey == "" {
		return nil, domain.ErrMissingIdempotencyKey
	}
	if err := requireQuantity(in.Quantity); err != nil {
		return nil, err
	}
	if in.ReasonCode == "" {
		return nil, domain.ErrScrapReasonRequired
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
		if replay, err := loadReplay(tx, in.CompanyID, entity.ScopeScrap, in.IdempotencyKey); err != nil || replay != nil {
			result = replay
			return err
		}
		now := time.Now()
		lotID, serialID, err := ensureIdentity(tx, part, in.LotNumber, in.SerialNumber, now)
		if err != nil {
			return err
		}
		entry := newEntry(in.CompanyID, in.UserID, part, entity.MovementTypeSCRAP, in.Quantity, "", now)
		entry.IdempotencyKey = &in.IdempotencyKey
		entry.LotID = lotID
		entry.SerialID = serialID
		entry.FromLocationID = &from.ID
		entry.ReasonCode = in.ReasonCode
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
		entry.Condition = bal.Condition
		if err := appendAndApply(tx, entry); err != nil {
			return err
		}
		if err := recordIdempotency(tx, in.CompanyID, entity.ScopeScrap, in.IdempotencyKey, []*entity.MovementEntry{entry}, now); err != nil {
			return err
		}
		if uc.finance != nil {
			if err := uc.finance.PostInventoryScrap(ctx, entry.Quantity, entry.ID); err != nil {
				return err
			}
		}
		result = &MovementResult{Entries: []*entity.MovementEntry{entry}}
		return nil
	})
	if err != nil {
		return uc.replayOnDuplicate(ctx, in.CompanyID, entity.ScopeScrap, in.IdempotencyKey, err)
	}
	return result, nil
}
