package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/aeropartes-api/internal/domain/entity"
	"github.com/tu-usuario/aeropartes-api/internal/domain/repository"
)

var _ repository.LotRepository = (*LotRepo)(nil)

// LotRepo implementación de LotRepository sobre PostgreSQL (usable con pool o tx).
type LotRepo struct {
	q Querier
}

// NewLotRepository construye el adaptador de lotes. Pasar pool o tx (Querier).
func NewLotRepository(q Querier) *LotRepo {
	return &LotRepo{q: q}
}

// Ensure inserta el lote si no existe y devuelve la fila dueña. Dos referencias
// concurrentes al mismo lote resuelven por la constraint única: el perdedor
// relee la fila del ganador.
func (r *LotRepo) Ensure(lot *entity.Lot) (*entity.Lot, error) {
	query := `
		INSERT INTO lots (id, company_id, part_id, lot_number, expires_at, received_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (company_id, part_id, lot_number) DO NOTHING`
	_, err := r.q.Exec(context.Background(), query,
		lot.ID, lot.CompanyID, lot.PartID, lot.LotNumber, lot.ExpiresAt, lot.ReceivedAt, lot.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("ensure lot: %w", err)
	}
	owned, err := r.GetByNumber(lot.CompanyID, lot.PartID, lot.LotNumber)
	if err != nil {
		return nil, err
	}
	if owned == nil {
		return nil, fmt.Errorf("ensure lot: fila no encontrada tras insert")
	}
	return owned, nil
}

// GetByNumber obtiene un lote por número dentro de la parte y la empresa.
func (r *LotRepo) GetByNumber(companyID, partID, lotNumber string) (*entity.Lot, error) {
	query := `
		SELECT id, company_id, part_id, lot_number, expires_at, received_at, created_at
		FROM lots WHERE company_id = $1 AND part_id = $2 AND lot_number = $3`
	var l entity.Lot
	err := r.q.QueryRow(context.Background(), query, companyID, partID, lotNumber).Scan(
		&l.ID, &l.CompanyID, &l.PartID, &l.LotNumber, &l.ExpiresAt, &l.ReceivedAt, &l.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lot: %w", err)
	}
	return &l, nil
}
