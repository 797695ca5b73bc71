package entity

import "time"

// Part representa una parte aeronáutica del catálogo maestro (multi-tenant).
// IsSerialized: cada unidad se identifica por número de serie (cantidad siempre 1 por asiento).
// IsLotControlled: las existencias se identifican por lote (batch).
type Part struct {
	ID              string
	CompanyID       string
	PartNumber      string // único por empresa
	Description     string
	UnitMeasure     string // EA, KG, LT...
	IsSerialized    bool
	IsLotControlled bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
