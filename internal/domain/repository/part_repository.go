package repository

import "github.com/tu-usuario/aeropartes-api/internal/domain/entity"

// PartRepository puerto de persistencia del catálogo de partes.
// Todas las consultas exigen companyID: una clave sin tenant no se puede construir.
type PartRepository interface {
	Create(part *entity.Part) error
	GetByID(companyID, id string) (*entity.Part, error)
	GetByPartNumber(companyID, partNumber string) (*entity.Part, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Part, error)
}
