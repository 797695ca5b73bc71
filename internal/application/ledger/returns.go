package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/aeropartes-api/internal/domain"
	"github.com/tu-usuario/aeropartes-api/internal/domain/entity"
	"github.com/tu-usuario/aeropartes-api/internal/domain/movement"
)

// ReturnInput entrada para una devolución desde orden de trabajo.
type ReturnInput struct {
	CompanyID      string
	UserID         string
	IdempotencyKey string
	PartNumber     string
	Quantity       decimal.Decimal
	ToLocation     string
	LotNumber      string
	SerialNumber   string
	WorkOrderID    string
	Notes          string
}

// Return restituye existencias al almacén, etiquetadas SERVICEABLE.
// Las devoluciones suman: no hay precondición de saldo.
func (uc *UseCase) Return(ctx context.Context, in ReturnInput) (*MovementResult, error) {
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
	to, err := uc.resolveLocation(in.CompanyID, in.ToLocation)
	if err != nil {
		return nil, err
	}

	var result *MovementResult
	err = uc.txRunner.Run(ctx, func(tx TxRepos) error {
		if replay, err := loadReplay(tx, in.CompanyID, entity.ScopeReturn, in.IdempotencyKey); err != nil || replay != nil {
			result = replay
			return err
		}
		now := time.Now()
		lotID, serialID, err := ensureIdentity(tx, part, in.LotNumber, in.SerialNumber, now)
		if err != nil {
			return err
		}
		entry := newEntry(in.CompanyID, in.UserID, part, entity.MovementTypeRETURN, in.Quantity, "", now)
		entry.IdempotencyKey = &in.IdempotencyKey
		entry.LotID = lotID
		entry.SerialID = serialID
		entry.Condition = entity.ConditionServiceable
		entry.ToLocationID = &to.ID
		if in.WorkOrderID != "" {
			entry.WorkOrderID = &in.WorkOrderID
		}
		entry.Notes = in.Notes
		if err := movement.ValidateEntry(part, entry); err != nil {
			return err
		}
		if err := appendAndApply(tx, entry); err != nil {
			return err
		}
		if err := recordIdempotency(tx, in.CompanyID, entity.ScopeReturn, in.IdempotencyKey, []*entity.MovementEntry{entry}, now); err != nil {
			return err
		}
		result = &MovementResult{Entries: []*entity.MovementEntry{entry}}
		return nil
	})
	if err != nil {
		return uc.replayOnDuplicate(ctx, in.CompanyID, entity.ScopeReturn, in.IdempotencyKey, err)
	}
	return result, nil
}

// VendorReturnInput entrada para devolución al proveedor.
type VendorReturnInput struct {
	CompanyID      string
	UserID         string
	IdempotencyKey string
	PartNumber     string
	Quantity       decimal.Decimal
	FromLocation   string
	LotNumber      string
	SerialNumber   string
	RefID          string // RMA del proveedor
	Notes          string
}

// VendorReturn retira existencias devueltas al proveedor. Requiere saldo suficiente.
func (uc *UseCase) VendorReturn(ctx context.Context, in VendorReturnInput) (*MovementResult, error) {
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
		if replay, err := loadReplay(tx, in.CompanyID, entity.ScopeVendorReturn, in.IdempotencyKey); err != nil || replay != nil {
			result = replay
			return err
		}
		now := time.Now()
		lotID, serialID, err := ensureIdentity(tx, part, in.LotNumber, in.SerialNumber, now)
		if err != nil {
			return err
		}
		entry := newEntry(in.CompanyID, in.UserID, part, entity.MovementTypeVENDORRETURN, in.Quantity, "", now)
		entry.IdempotencyKey = &in.IdempotencyKey
		entry.LotID = lotID
		entry.SerialID = serialID
		entry.FromLocationID = &from.ID
		if in.RefID != "" {
			entry.RefType = "RMA"
			entry.RefID = in.RefID
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
		entry.Condition = bal.Condition
		if err := appendAndApply(tx, entry); err != nil {
			return err
		}
		if err := recordIdempotency(tx, in.CompanyID, entity.ScopeVendorReturn, in.IdempotencyKey, []*entity.MovementEntry{entry}, now); err != nil {
			return err
		}
		result = &MovementResult{Entries: []*entity.MovementEntry{entry}}
		return nil
	})
	if err != nil {
		return uc.replayOnDuplicate(ctx, in.CompanyID, entity.ScopeVendorReturn, in.IdempotencyKey, err)
	}
	return result, nil
}
