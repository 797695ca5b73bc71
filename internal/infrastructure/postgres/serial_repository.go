package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/aeropartes-api/internal/domain/entity"
	"github.com/tu-usuario/aeropartes-api/internal/domain/repository"
)

var _ repository.SerialRepository = (*SerialRepo)(nil)

// SerialRepo implementación de SerialRepository sobre PostgreSQL (usable con pool o tx).
type SerialRepo struct {
	q Querier
}

// NewSerialRepository construye el adaptador de números de serie. Pasar pool o tx (Querier).
func NewSerialRepository(q Querier) *SerialRepo {
	return &SerialRepo{q: q}
}

// Ensure inserta el número de serie si no existe y devuelve la fila dueña
// (mismo esquema que LotRepo.Ensure).
func (r *SerialRepo) Ensure(serial *entity.Serial) (*entity.Serial, error) {
	query := `
		INSERT INTO serials (id, company_id, part_id, serial_number, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (company_id, part_id, serial_number) DO NOTHING`
	_, err := r.q.Exec(context.Background(), query,
		serial.ID, serial.CompanyID, serial.PartID, serial.SerialNumber, serial.Notes, serial.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("ensure serial: %w", err)
	}
	owned, err := r.GetByNumber(serial.CompanyID, serial.PartID, serial.SerialNumber)
	if err != nil {
		return nil, err
	}
	if owned == nil {
		return nil, fmt.Errorf("ensure serial: fila no encontrada tras insert")
	}
	return owned, nil
}

// GetByNumber obtiene un número de serie dentro de la parte y la empresa.
func (r *SerialRepo) GetByNumber(companyID, partID, serialNumber string) (*entity.Serial, error) {
	query := `
		SELECT id, company_id, part_id, serial_number, notes, created_at
		FROM serials WHERE company_id = $1 AND part_id = $2 AND serial_number = $3`
	var s entity.Serial
	err := r.q.QueryRow(context.Background(), query, companyID, partID, serialNumber).Scan(
		&s.ID, &s.CompanyID, &s.PartID, &s.SerialNumber, &s.Notes, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get serial: %w", err)
	}
	return &s, nil
}
