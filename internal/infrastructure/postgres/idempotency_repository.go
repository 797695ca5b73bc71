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

var _ repository.IdempotencyRepository = (*IdempotencyRepo)(nil)

// IdempotencyRepo implementación del guard de idempotencia sobre PostgreSQL (usable con pool o tx).
// entry_ids se guarda como text[]: el orden de los asientos originales importa en el replay.
type IdempotencyRepo struct {
	q Querier
}

// NewIdempotencyRepository construye el adaptador del guard. Pasar pool o tx (Querier).
func NewIdempotencyRepository(q Querier) *IdempotencyRepo {
	return &IdempotencyRepo{q: q}
}

// Get obtiene el registro de una key usada, o nil si la key es nueva.
func (r *IdempotencyRepo) Get(companyID, scope, key string) (*entity.IdempotencyRecord, error) {
	query := `
		SELECT id, company_id, scope, key, entry_ids, created_at
		FROM idempotency_records WHERE company_id = $1 AND scope = $2 AND key = $3`
	var rec entity.IdempotencyRecord
	err := r.q.QueryRow(context.Background(), query, companyID, scope, key).Scan(
		&rec.ID, &rec.CompanyID, &rec.Scope, &rec.Key, &rec.EntryIDs, &rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get idempotency record: %w", err)
	}
	return &rec, nil
}

// Create persiste el registro. Una key repetida que llegue en carrera pierde
// contra la constraint única (company_id, scope, key) y recibe ErrDuplicate.
func (r *IdempotencyRepo) Create(record *entity.IdempotencyRecord) error {
	query := `
		INSERT INTO idempotency_records (id, company_id, scope, key, entry_ids, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		record.ID, record.CompanyID, record.Scope, record.Key, record.EntryIDs, record.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert idempotency record: %w", err)
	}
	return nil
}
