package entity

import "time"

// Company representa una organización/tenant del sistema (taller MRO, aerolínea, distribuidor).
// Todas las claves del inventario están calificadas por CompanyID; dos tenants nunca comparten datos.
type Company struct {
	ID        string
	Name      string
	TaxID     string
	Address   string
	Phone     string
	Email     string
	Status    string // active, suspended, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
