package repository

import "github.com/tu-usuario/aeropartes-api/internal/domain/entity"

// LotRepository puerto del registro de lotes. Ensure es la creación perezosa explícita:
// inserta si no existe y devuelve siempre la fila dueña (la constraint única respalda
// primeras referencias concurrentes al mismo lote).
type LotRepository interface {
	Ensure(lot *entity.Lot) (*entity.Lot, error)
	GetByNumber(companyID, partID, lotNumber string) (*entity.Lot, error)
}
