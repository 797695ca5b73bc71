package repository

import "github.com/tu-usuario/aeropartes-api/internal/domain/entity"

// MovementEntryRepository puerto de persistencia del ledger de movimientos.
// Solo append y lectura: el ledger nunca se actualiza ni se borra.
type MovementEntryRepository interface {
	Create(entry *entity.MovementEntry) error
	GetByID(companyID, id string) (*entity.MovementEntry, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.MovementEntry, error)
	// ListByKey devuelve los asientos que tocan una clave parte(+lote/serie), en orden de ocurrencia.
	ListByKey(companyID, partID string, lotID, serialID *string) ([]*entity.MovementEntry, error)
	// ListAll devuelve el ledger completo de la empresa en orden de ocurrencia (reconciliación).
	ListAll(companyID string) ([]*entity.MovementEntry, error)
}
