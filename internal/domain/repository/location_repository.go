package repository

import "github.com/tu-usuario/aeropartes-api/internal/domain/entity"

// LocationRepository puerto de persistencia de ubicaciones de almacenamiento.
type LocationRepository interface {
	Create(location *entity.Location) error
	GetByID(companyID, id string) (*entity.Location, error)
	GetByCode(companyID, code string) (*entity.Location, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Location, error)
}
