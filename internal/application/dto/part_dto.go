package dto

import "time"

// CreatePartRequest body para POST /api/parts.
type CreatePartRequest struct {
	PartNumber      string `json:"part_number"`
	Description     string `json:"description"`
	UnitMeasure     string `json:"unit_measure"`
	IsSerialized    bool   `json:"is_serialized"`
	IsLotControlled bool   `json:"is_lot_controlled"`
}

// PartResponse parte en respuestas.
type PartResponse struct {
	ID              string    `json:"id"`
	PartNumber      string    `json:"part_number"`
	Description     string    `json:"description"`
	UnitMeasure     string    `json:"unit_measure"`
	IsSerialized    bool      `json:"is_serialized"`
	IsLotControlled bool      `json:"is_lot_controlled"`
	CreatedAt       time.Time `json:"created_at"`
}
