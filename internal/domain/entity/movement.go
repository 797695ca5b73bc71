package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del ledger (conjunto cerrado).
const (
	MovementTypeRECEIVE      = "RECEIVE"       // recepción de compra o ingreso inicial
	MovementTypeINSPECT      = "INSPECT"       // inspección: par OUT/IN que cambia condición
	MovementTypeTRANSFER     = "TRANSFER"      // traslado entre ubicaciones
	MovementTypeISSUE        = "ISSUE"         // salida a orden de trabajo
	MovementTypeRETURN       = "RETURN"        // devolución de orden de trabajo
	MovementTypeSCRAP        = "SCRAP"         // baja definitiva (requiere motivo)
	MovementTypeVENDORRETURN = "VENDOR_RETURN" // devolución al proveedor
	MovementTypeADJUSTMENT   = "ADJUSTMENT"    // corrección firmada por el caller
	MovementTypeCYCLECOUNT   = "CYCLE_COUNT"   // ajuste por conteo cíclico
)

// Condiciones físicas de las existencias.
const (
	ConditionQuarantine    = "QUARANTINE"    // sin verificar
	ConditionServiceable   = "SERVICEABLE"   // apta para uso
	ConditionUnserviceable = "UNSERVICEABLE" // rechazada
)

// Referencias del par de asientos de una inspección.
const (
	InspectRefOut = "OUT" // retira la cantidad con la condición anterior
	InspectRefIn  = "IN"  // la restituye con la condición nueva
)

// Scopes del guard de idempotencia, uno por operación lógica.
const (
	ScopeReceive      = "inventory-receive"
	ScopeInspect      = "inventory-inspect"
	ScopeTransfer     = "inventory-transfer"
	ScopeIssue        = "inventory-issue"
	ScopeReturn       = "inventory-return"
	ScopeVendorReturn = "inventory-vendor-return"
	ScopeAdjust       = "inventory-adjust"
	ScopeScrap        = "inventory-scrap"
)

// MovementEntry es una fila del ledger de movimientos: inmutable una vez escrita.
// Las correcciones son asientos nuevos (ADJUSTMENT, RETURN/SCRAP inverso), nunca updates.
// Quantity es magnitud positiva; el signo lo aporta el tipo de movimiento (ver domain/movement).
type MovementEntry struct {
	ID             string
	Seq            int64 // secuencia asignada por la DB, desempata OccurredAt
	CompanyID      string
	IdempotencyKey *string // único por (empresa, scope) cuando presente
	PartID         string
	LotID          *string
	SerialID       *string
	Quantity       decimal.Decimal
	UnitMeasure    string
	Type           string
	Condition      string // vacío si el tipo no la etiqueta
	FromLocationID *string
	ToLocationID   *string
	WorkOrderID    *string
	TaskCardID     *string
	RefType        string // "OUT"/"IN" en inspecciones, "PO" en recepciones de compra...
	RefID          string
	ReasonCode     string // obligatorio en SCRAP
	Notes          string
	Sign           int // +1/-1, solo ADJUSTMENT y CYCLE_COUNT
	OccurredAt     time.Time
	CreatedAt      time.Time
	CreatedBy      string
}
