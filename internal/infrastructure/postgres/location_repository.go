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

var _ repository.LocationRepository = (*LocationRepo)(nil)

// LocationRepo implementación de LocationRepository sobre PostgreSQL (usable con pool o tx).
type LocationRepo struct {
	q Querier
}

// NewLocationRepository construye el adaptador de ubicaciones. Pasar pool o tx (Querier).
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

// Create persiste una nueva ubicación.
func (r *LocationRepo) Create(location *entity.Location) error {
	query := `
		INSERT INTO locations (id, company_id, code, name, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		location.ID, location.CompanyID, location.Code, location.Name,
		location.IsActive, location.CreatedAt, location.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert location: %w", err)
	}
	return nil
}

// GetByID obtiene una ubicación por ID dentro de la empresa.
func (r *LocationRepo) GetByID(companyID, id string) (*entity.Location, error) {
	query := `
		SELECT id, company_id, code, name, is_active, created_at, updated_at
		FROM locations WHERE company_id = $1 AND id = $2`
	var l entity.Location
	err := r.q.QueryRow(context.Background(), query, companyID, id).Scan(
		&l.ID, &l.CompanyID, &l.Code, &l.Name, &l.IsActive, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location: %w", err)
	}
	return &l, nil
}

// GetByCode obtiene una ubicación por código dentro de la empresa.
func (r *LocationRepo) GetByCode(companyID, code string) (*entity.Location, error) {
	query := `
		SELECT id, company_id, code, name, is_active, created_at, updated_at
		FROM locations WHERE company_id = $1 AND code = $2`
	var l entity.Location
	err := r.q.QueryRow(context.Background(), query, companyID, code).Scan(
		&l.ID, &l.CompanyID, &l.Code, &l.Name, &l.IsActive, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location by code: %w", err)
	}
	return &l, nil
}

// ListByCompany lista ubicaciones por empresa con paginación.
func (r *LocationRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Location, error) {
	query := `
		SELECT id, company_id, code, name, is_active, created_at, updated_at
		FROM locations WHERE company_id = $1 ORDER BY code LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Location
	for rows.Next() {
		var l entity.Location
		if err := rows.Scan(&l.ID, &l.CompanyID, &l.Code, &l.Name, &l.IsActive, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
