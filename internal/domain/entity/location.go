package entity

import "time"

// Location representa una ubicación de almacenamiento (bodega, estantería, cuarentena) de una empresa.
type Location struct {
	ID        string
	CompanyID string
	Code      string // único por empresa
	Name      string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
