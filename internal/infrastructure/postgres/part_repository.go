package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/aeropartes-api/internal/domain"
	"github.com/tu-usuario/aeropartes-api/internal/domain/entity"
	"github.com/tu-usuario/aeropartes-api/internal/domain/repository"
)

var _ repository.PartRepository = (*PartRepo)(nil)

// PartRepo implementación del puerto PartRepository sobre PostgreSQL (usable con pool o tx).
type PartRepo struct {
	q Querier
}

// NewPartRepository construye el adaptador del catálogo de partes. Pasar pool o tx (Querier).
func NewPartRepository(q Querier) *PartRepo {
	return &PartRepo{q: q}
}

// Create persiste una nueva parte del catálogo.
func (r *PartRepo) Create(part *entity.Part) error {
	query := `
		INSERT INTO parts (id, company_id, part_number, description, unit_measure, is_serialized, is_lot_controlled, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		part.ID, part.CompanyID, part.PartNumber, part.Description, part.UnitMeasure,
		part.IsSerialized, part.IsLotControlled, part.CreatedAt, part.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert part: %w", err)
	}
	return nil
}

// GetByID obtiene una parte por ID dentro de la empresa.
func (r *PartRepo) GetByID(companyID, id string) (*entity.Part, error) {
	query := `
		SELECT id, company_id, part_number, description, unit_measure, is_serialized, is_lot_controlled, created_at, updated_at
		FROM parts WHERE company_id = $1 AND id = $2`
	var p entity.Part
	err := r.q.QueryRow(context.Background(), query, companyID, id).Scan(
		&p.ID, &p.CompanyID, &p.PartNumber, &p.Description, &p.UnitMeasure,
		&p.IsSerialized, &p.IsLotControlled, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get part: %w", err)
	}
	return &p, nil
}

// GetByPartNumber obtiene una parte por número de parte dentro de la empresa.
func (r *PartRepo) GetByPartNumber(companyID, partNumber string) (*entity.Part, error) {
	query := `
		SELECT id, company_id, part_number, description, unit_measure, is_serialized, is_lot_controlled, created_at, updated_at
		FROM parts WHERE company_id = $1 AND part_number = $2`
	var p entity.Part
	err := r.q.QueryRow(context.Background(), query, companyID, partNumber).Scan(
		&p.ID, &p.CompanyID, &p.PartNumber, &p.Description, &p.UnitMeasure,
		&p.IsSerialized, &p.IsLotControlled, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get part by part number: %w", err)
	}
	return &p, nil
}

// ListByCompany lista partes por empresa con paginación.
func (r *PartRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Part, error) {
	query := `
		SELECT id, company_id, part_number, description, unit_measure, is_serialized, is_lot_controlled, created_at, updated_at
		FROM parts WHERE company_id = $1 ORDER BY part_number LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list parts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Part
	for rows.Next() {
		var p entity.Part
		if err := rows.Scan(&p.ID, &p.CompanyID, &p.PartNumber, &p.Description, &p.UnitMeasure,
			&p.IsSerialized, &p.IsLotControlled, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan part: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
