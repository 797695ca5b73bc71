package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OnHandBalance existencias materializadas por clave (empresa, parte, lote/serie, ubicación).
// Derivada del ledger con la misma álgebra firmada; el ledger sigue siendo la fuente de verdad.
// Condition refleja el último asiento que tocó la clave; sin significado cuando Quantity <= 0.
type OnHandBalance struct {
	CompanyID  string
	PartID     string
	LotID      *string
	SerialID   *string
	LocationID string
	Quantity   decimal.Decimal
	Condition  string
	UpdatedAt  time.Time
}

// IsOnHand indica si la clave tiene existencias reales.
func (b *OnHandBalance) IsOnHand() bool {
	return b != nil && b.Quantity.GreaterThan(decimal.Zero)
}
