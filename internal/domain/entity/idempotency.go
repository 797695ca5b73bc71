package entity

import "time"

// IdempotencyRecord mapea (empresa, scope de operación, key del caller) al resultado ya calculado.
// En reuso de la key se devuelve el resultado almacenado sin ejecutar efectos de nuevo;
// el payload del request NO se compara contra el original.
type IdempotencyRecord struct {
	ID        string
	CompanyID string
	Scope     string // ej. "inventory-issue"
	Key       string
	EntryIDs  []string // asientos creados por la ejecución original, en orden
	CreatedAt time.Time
}
