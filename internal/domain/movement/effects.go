package movement

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/aeropartes-api/internal/domain"
	"github.com/tu-usuario/aeropartes-api/internal/domain/entity"
)

// Effect es la contribución firmada de un asiento en una ubicación concreta.
// Un asiento aporta a lo sumo un Effect por ubicación (TRANSFER aporta dos, uno por lado).
type Effect struct {
	LocationID string
	Delta      decimal.Decimal
}

// signOf tabla cerrada tipo → signo base. TRANSFER, INSPECT y los ajustes se
// resuelven aparte porque su signo depende del lado o del caller.
var signOf = map[string]int{
	entity.MovementTypeRECEIVE:      +1,
	entity.MovementTypeRETURN:       +1,
	entity.MovementTypeISSUE:        -1,
	entity.MovementTypeSCRAP:        -1,
	entity.MovementTypeVENDORRETURN: -1,
}

// IsValidType indica si el tipo pertenece al conjunto cerrado de movimientos.
func IsValidType(t string) bool {
	switch t {
	case entity.MovementTypeRECEIVE, entity.MovementTypeINSPECT, entity.MovementTypeTRANSFER,
		entity.MovementTypeISSUE, entity.MovementTypeRETURN, entity.MovementTypeSCRAP,
		entity.MovementTypeVENDORRETURN, entity.MovementTypeADJUSTMENT, entity.MovementTypeCYCLECOUNT:
		return true
	}
	return false
}

// IsValidCondition indica si la condición pertenece al conjunto cerrado.
func IsValidCondition(c string) bool {
	switch c {
	case entity.ConditionQuarantine, entity.ConditionServiceable, entity.ConditionUnserviceable:
		return true
	}
	return false
}

// Effects devuelve los deltas firmados que el asiento aporta, por ubicación.
// Es la única fuente de la álgebra de cantidades: el proyector de replay y la
// actualización de balances materializados usan exactamente esta función.
func Effects(e *entity.MovementEntry) []Effect {
	switch e.Type {
	case entity.MovementTypeRECEIVE, entity.MovementTypeRETURN:
		return []Effect{{LocationID: deref(e.ToLocationID), Delta: e.Quantity}}

	case entity.MovementTypeISSUE, entity.MovementTypeSCRAP, entity.MovementTypeVENDORRETURN:
		return []Effect{{LocationID: deref(e.FromLocationID), Delta: e.Quantity.Neg()}}

	case entity.MovementTypeTRANSFER:
		return []Effect{
			{LocationID: deref(e.FromLocationID), Delta: e.Quantity.Neg()},
			{LocationID: deref(e.ToLocationID), Delta: e.Quantity},
		}

	case entity.MovementTypeINSPECT:
		// El par OUT/IN vive en la misma ubicación; neto cero entre ambos asientos.
		if e.RefType == entity.InspectRefOut {
			return []Effect{{LocationID: deref(e.FromLocationID), Delta: e.Quantity.Neg()}}
		}
		return []Effect{{LocationID: deref(e.ToLocationID), Delta: e.Quantity}}

	case entity.MovementTypeADJUSTMENT, entity.MovementTypeCYCLECOUNT:
		// Signo explícito aportado por el caller en el asiento.
		loc := deref(e.ToLocationID)
		if loc == "" {
			loc = deref(e.FromLocationID)
		}
		delta := e.Quantity
		if e.Sign < 0 {
			delta = delta.Neg()
		}
		return []Effect{{LocationID: loc, Delta: delta}}
	}
	return nil
}

// DeltaAt contribución firmada del asiento en una ubicación dada (cero si no la toca).
func DeltaAt(e *entity.MovementEntry, locationID string) decimal.Decimal {
	total := decimal.Zero
	for _, ef := range Effects(e) {
		if ef.LocationID == locationID {
			total = total.Add(ef.Delta)
		}
	}
	return total
}

// ValidateEntry aplica las invariantes de identidad y de tipo sobre un asiento
// antes de aceptarlo en el ledger:
//  1. parte serializada → cantidad exactamente 1 y serie presente; no serializada → sin serie
//  2. parte controlada por lote → lote presente
//  3. SCRAP → código de motivo no vacío
func ValidateEntry(part *entity.Part, e *entity.MovementEntry) error {
	if !IsValidType(e.Type) {
		return domain.ErrInvalidInput
	}
	if !e.Quantity.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	if part.IsSerialized {
		if e.SerialID == nil || !e.Quantity.Equal(decimal.NewFromInt(1)) {
			return domain.ErrSerialRequired
		}
	} else if e.SerialID != nil {
		return domain.ErrSerialNotAllowed
	}
	if part.IsLotControlled && e.LotID == nil {
		return domain.ErrLotRequired
	}
	if e.Type == entity.MovementTypeSCRAP && e.ReasonCode == "" {
		return domain.ErrScrapReasonRequired
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
