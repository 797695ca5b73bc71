package dto

import "github.com/shopspring/decimal"

// CreatePurchaseOrderRequest body para POST /api/receiving/purchase-orders.
type CreatePurchaseOrderRequest struct {
	PONumber string                `json:"po_number"`
	Vendor   string                `json:"vendor"`
	Lines    []PurchaseOrderLineIn `json:"lines"`
}

// PurchaseOrderLineIn línea de la orden de compra.
type PurchaseOrderLineIn struct {
	PartNumber  string          `json:"part_number"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitMeasure string          `json:"unit_measure"`
}

// GoodsReceiptRequest body para POST /api/receiving/goods-receipts.
// Cada línea se convierte en un RECEIVE del ledger; la idempotency key del
// request se deriva por línea para que un reintento reproduzca línea a línea.
type GoodsReceiptRequest struct {
	PONumber       string             `json:"po_number"`
	Lines          []GoodsReceiptLine `json:"lines"`
	IdempotencyKey string             `json:"idempotency_key,omitempty"`
}

// GoodsReceiptLine línea recibida físicamente.
type GoodsReceiptLine struct {
	PartNumber     string             `json:"part_number"`
	Quantity       decimal.Decimal    `json:"quantity"`
	UnitMeasure    string             `json:"unit_measure"`
	LotNumber      string             `json:"lot_number,omitempty"`
	SerialNumber   string             `json:"serial_number,omitempty"`
	ToLocation     string             `json:"to_location"`
	Condition      string             `json:"condition,omitempty"`
	PartDefinition *PartDefinitionDTO `json:"part_definition,omitempty"`
}

// GoodsReceiptResponse resultado de la recepción: asientos creados por línea.
type GoodsReceiptResponse struct {
	PONumber string             `json:"po_number"`
	Lines    []MovementResponse `json:"lines"`
}
