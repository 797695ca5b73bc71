package repository

import "github.com/tu-usuario/aeropartes-api/internal/domain/entity"

// SerialRepository puerto del registro de números de serie (creación perezosa vía Ensure).
type SerialRepository interface {
	Ensure(serial *entity.Serial) (*entity.Serial, error)
	GetByNumber(companyID, partID, serialNumber string) (*entity.Serial, error)
}
