package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de compra.
const (
	POStatusOpen     = "open"
	POStatusReceived = "received"
	POStatusClosed   = "closed"
)

// PurchaseOrder orden de compra mínima: el orquestador de recepciones la referencia
// al convertir cada línea recibida en un RECEIVE del ledger.
type PurchaseOrder struct {
	ID        string
	CompanyID string
	PONumber  string // único por empresa; duplicado = conflicto
	Vendor    string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
	CreatedBy string
}

// PurchaseOrderLine línea de la orden de compra.
type PurchaseOrderLine struct {
	ID          string
	OrderID     string
	PartNumber  string
	Quantity    decimal.Decimal
	UnitMeasure string
}
