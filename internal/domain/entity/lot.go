package entity

import "time"

// Lot identidad de lote para partes controladas por lote. Se crea perezosamente
// la primera vez que un movimiento lo referencia.
type Lot struct {
	ID         string
	CompanyID  string
	PartID     string
	LotNumber  string // único por parte dentro de la empresa
	ExpiresAt  *time.Time
	ReceivedAt *time.Time
	CreatedAt  time.Time
}
