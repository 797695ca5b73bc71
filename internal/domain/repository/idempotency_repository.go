package repository

import "github.com/tu-usuario/aeropartes-api/internal/domain/entity"

// IdempotencyRepository puerto del guard de idempotencia.
// La clave lógica es (companyID, scope, key); única por constraint en DB.
type IdempotencyRepository interface {
	Get(companyID, scope, key string) (*entity.IdempotencyRecord, error)
	Create(record *entity.IdempotencyRecord) error
}
