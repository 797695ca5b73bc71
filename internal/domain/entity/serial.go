package entity

import "time"

// Serial identidad de número de serie para partes serializadas. Se crea perezosamente
// la primera vez que un movimiento lo referencia.
type Serial struct {
	ID           string
	CompanyID    string
	PartID       string
	SerialNumber string // único por parte dentro de la empresa
	Notes        string
	CreatedAt    time.Time
}
