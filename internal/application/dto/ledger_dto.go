package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiveRequest body para POST /api/ledger/receive.
// PartDefinition permite crear la parte en la primera recepción; sin ella, parte desconocida es 404.
type ReceiveRequest struct {
	PartNumber     string              `json:"part_number"`
	Quantity       decimal.Decimal     `json:"quantity"`
	UnitMeasure    string              `json:"unit_measure"`
	LotNumber      string              `json:"lot_number,omitempty"`
	SerialNumber   string              `json:"serial_number,omitempty"`
	ToLocation     string              `json:"to_location"`
	Condition      string              `json:"condition,omitempty"` // default QUARANTINE
	RefType        string              `json:"ref_type,omitempty"`
	RefID          string              `json:"ref_id,omitempty"`
	Notes          string              `json:"notes,omitempty"`
	IdempotencyKey string              `json:"idempotency_key,omitempty"` // o header X-Idempotency-Key
	PartDefinition *PartDefinitionDTO  `json:"part_definition,omitempty"`
}

// PartDefinitionDTO definición completa para creación perezosa de la parte.
type PartDefinitionDTO struct {
	Description     string `json:"description"`
	UnitMeasure     string `json:"unit_measure"`
	IsSerialized    bool   `json:"is_serialized"`
	IsLotControlled bool   `json:"is_lot_controlled"`
}

// InspectRequest body para POST /api/ledger/inspect.
type InspectRequest struct {
	PartNumber     string `json:"part_number"`
	LotNumber      string `json:"lot_number,omitempty"`
	SerialNumber   string `json:"serial_number,omitempty"`
	Location       string `json:"location"`
	NewCondition   string `json:"new_condition"`
	Notes          string `json:"notes,omitempty"`
	IdempotencyKey string `json:"idempotency_key,omitempty"` // opcional en inspecciones
}

// TransferRequest body para POST /api/ledger/transfer.
type TransferRequest struct {
	PartNumber     string          `json:"part_number"`
	Quantity       decimal.Decimal `json:"quantity"`
	FromLocation   string          `json:"from_location"`
	ToLocation     string          `json:"to_location"`
	LotNumber      string          `json:"lot_number,omitempty"`
	SerialNumber   string          `json:"serial_number,omitempty"`
	Notes          string          `json:"notes,omitempty"`
	IdempotencyKey string          `json:"idempotency_key,omitempty"`
}

// IssueRequest body para POST /api/ledger/issue.
type IssueRequest struct {
	PartNumber     string          `json:"part_number"`
	Quantity       decimal.Decimal `json:"quantity"`
	FromLocation   string          `json:"from_location"`
	LotNumber      string          `json:"lot_number,omitempty"`
	SerialNumber   string          `json:"serial_number,omitempty"`
	WorkOrderID    string          `json:"work_order_id,omitempty"`
	TaskCardID     string          `json:"task_card_id,omitempty"`
	Notes          string          `json:"notes,omitempty"`
	IdempotencyKey string          `json:"idempotency_key,omitempty"`
}

// ReturnRequest body para POST /api/ledger/return.
type ReturnRequest struct {
	PartNumber     string          `json:"part_number"`
	Quantity       decimal.Decimal `json:"quantity"`
	ToLocation     string          `json:"to_location"`
	LotNumber      string          `json:"lot_number,omitempty"`
	SerialNumber   string          `json:"serial_number,omitempty"`
	WorkOrderID    string          `json:"work_order_id,omitempty"`
	Notes          string          `json:"notes,omitempty"`
	IdempotencyKey string          `json:"idempotency_key,omitempty"`
}

// VendorReturnRequest body para POST /api/ledger/vendor-return.
type VendorReturnRequest struct {
	PartNumber     string          `json:"part_number"`
	Quantity       decimal.Decimal `json:"quantity"`
	FromLocation   string          `json:"from_location"`
	LotNumber      string          `json:"lot_number,omitempty"`
	SerialNumber   string          `json:"serial_number,omitempty"`
	RefID          string          `json:"ref_id,omitempty"` // RMA del proveedor
	Notes          string          `json:"notes,omitempty"`
	IdempotencyKey string          `json:"idempotency_key,omitempty"`
}

// AdjustRequest body para POST /api/ledger/adjust. Sign lo aporta el caller (+1/-1).
type AdjustRequest struct {
	PartNumber     string          `json:"part_number"`
	Quantity       decimal.Decimal `json:"quantity"`
	Location       string          `json:"location"`
	Sign           int             `json:"sign"`
	CycleCount     bool            `json:"cycle_count,omitempty"` // true = CYCLE_COUNT, false = ADJUSTMENT
	LotNumber      string          `json:"lot_number,omitempty"`
	SerialNumber   string          `json:"serial_number,omitempty"`
	ReasonCode     string          `json:"reason_code,omitempty"`
	Notes          string          `json:"notes,omitempty"`
	IdempotencyKey string          `json:"idempotency_key,omitempty"`
}

// ScrapRequest body para POST /api/ledger/scrap.
type ScrapRequest struct {
	PartNumber     string          `json:"part_number"`
	Quantity       decimal.Decimal `json:"quantity"`
	FromLocation   string          `json:"from_location"`
	ReasonCode     string          `json:"reason_code"`
	LotNumber      string          `json:"lot_number,omitempty"`
	SerialNumber   string          `json:"serial_number,omitempty"`
	Notes          string          `json:"notes,omitempty"`
	IdempotencyKey string          `json:"idempotency_key,omitempty"`
}

// MovementEntryDTO asiento del ledger en respuestas.
type MovementEntryDTO struct {
	ID           string          `json:"id"`
	Type         string          `json:"type"`
	PartID       string          `json:"part_id"`
	LotID        *string         `json:"lot_id,omitempty"`
	SerialID     *string         `json:"serial_id,omitempty"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitMeasure  string          `json:"unit_measure"`
	Condition    string          `json:"condition,omitempty"`
	FromLocation *string         `json:"from_location_id,omitempty"`
	ToLocation   *string         `json:"to_location_id,omitempty"`
	RefType      string          `json:"ref_type,omitempty"`
	RefID        string          `json:"ref_id,omitempty"`
	ReasonCode   string          `json:"reason_code,omitempty"`
	OccurredAt   time.Time       `json:"occurred_at"`
	CreatedBy    string          `json:"created_by"`
}

// MovementResponse respuesta de las operaciones de escritura del ledger.
type MovementResponse struct {
	Entries  []MovementEntryDTO `json:"entries"`
	Replayed bool               `json:"replayed"` // true si la idempotency key ya se había usado
}

// OnHandDTO saldo por clave en respuestas de consulta.
type OnHandDTO struct {
	PartID     string          `json:"part_id"`
	LotID      *string         `json:"lot_id,omitempty"`
	SerialID   *string         `json:"serial_id,omitempty"`
	LocationID string          `json:"location_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	Condition  string          `json:"condition,omitempty"`
}

// DiscrepancyDTO diferencia entre el balance materializado y el replay del ledger.
type DiscrepancyDTO struct {
	PartID       string          `json:"part_id"`
	LotID        string          `json:"lot_id,omitempty"`
	SerialID     string          `json:"serial_id,omitempty"`
	LocationID   string          `json:"location_id"`
	Materialized decimal.Decimal `json:"materialized_qty"`
	Replayed     decimal.Decimal `json:"replayed_qty"`
}
