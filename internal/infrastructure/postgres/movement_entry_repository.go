package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/aeropartes-api/internal/domain"
	"github.com/tu-usuario/aeropartes-api/internal/domain/entity"
	"github.com/tu-usuario/aeropartes-api/internal/domain/repository"
)

var _ repository.MovementEntryRepository = (*MovementEntryRepo)(nil)

const movementEntryColumns = `id, seq, company_id, idempotency_key, part_id, lot_id, serial_id, quantity, unit_measure,
		type, condition, from_location_id, to_location_id, work_order_id, task_card_id,
		ref_type, ref_id, reason_code, notes, sign, occurred_at, created_at, created_by`

// MovementEntryRepo implementación del ledger sobre PostgreSQL (usable con pool o tx).
// La tabla solo recibe INSERT y SELECT; no existe código de UPDATE ni DELETE.
type MovementEntryRepo struct {
	q Querier
}

// NewMovementEntryRepository construye el adaptador del ledger. Pasar pool o tx (Querier).
func NewMovementEntryRepository(q Querier) *MovementEntryRepo {
	return &MovementEntryRepo{q: q}
}

// Create persiste un asiento del ledger. Seq lo asigna la secuencia de la DB
// y se devuelve en el entry (desempata OccurredAt en el replay).
func (r *MovementEntryRepo) Create(entry *entity.MovementEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movement_entries (id, company_id, idempotency_key, part_id, lot_id, serial_id, quantity, unit_measure,
			type, condition, from_location_id, to_location_id, work_order_id, task_card_id,
			ref_type, ref_id, reason_code, notes, sign, occurred_at, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
		RETURNING seq`
	err := r.q.QueryRow(context.Background(), query,
		entry.ID, entry.CompanyID, entry.IdempotencyKey, entry.PartID, entry.LotID, entry.SerialID,
		entry.Quantity, entry.UnitMeasure, entry.Type, entry.Condition,
		entry.FromLocationID, entry.ToLocationID, entry.WorkOrderID, entry.TaskCardID,
		entry.RefType, entry.RefID, entry.ReasonCode, entry.Notes, entry.Sign,
		entry.OccurredAt, entry.CreatedAt, entry.CreatedBy,
	).Scan(&entry.Seq)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert movement entry: %w", err)
	}
	return nil
}

// GetByID obtiene un asiento por ID dentro de la empresa.
func (r *MovementEntryRepo) GetByID(companyID, id string) (*entity.MovementEntry, error) {
	query := `
		SELECT ` + movementEntryColumns + `
		FROM movement_entries WHERE company_id = $1 AND id = $2`
	e, err := scanMovementEntry(r.q.QueryRow(context.Background(), query, companyID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement entry: %w", err)
	}
	return e, nil
}

// ListByCompany lista el ledger de la empresa paginado, más reciente primero.
func (r *MovementEntryRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.MovementEntry, error) {
	query := `
		SELECT ` + movementEntryColumns + `
		FROM movement_entries WHERE company_id = $1
		ORDER BY occurred_at DESC, seq DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movement entries: %w", err)
	}
	return collectMovementEntries(rows)
}

// ListByKey devuelve los asientos que tocan una clave parte(+lote/serie), en orden de ocurrencia.
func (r *MovementEntryRepo) ListByKey(companyID, partID string, lotID, serialID *string) ([]*entity.MovementEntry, error) {
	query := `
		SELECT ` + movementEntryColumns + `
		FROM movement_entries
		WHERE company_id = $1 AND part_id = $2
		  AND lot_id IS NOT DISTINCT FROM $3
		  AND serial_id IS NOT DISTINCT FROM $4
		ORDER BY occurred_at, seq`
	rows, err := r.q.Query(context.Background(), query, companyID, partID, lotID, serialID)
	if err != nil {
		return nil, fmt.Errorf("list movement entries by key: %w", err)
	}
	return collectMovementEntries(rows)
}

// ListAll devuelve el ledger completo de la empresa en orden de ocurrencia (reconciliación).
func (r *MovementEntryRepo) ListAll(companyID string) ([]*entity.MovementEntry, error) {
	query := `
		SELECT ` + movementEntryColumns + `
		FROM movement_entries WHERE company_id = $1
		ORDER BY occurred_at, seq`
	rows, err := r.q.Query(context.Background(), query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list all movement entries: %w", err)
	}
	return collectMovementEntries(rows)
}

func scanMovementEntry(row pgx.Row) (*entity.MovementEntry, error) {
	var e entity.MovementEntry
	err := row.Scan(
		&e.ID, &e.Seq, &e.CompanyID, &e.IdempotencyKey, &e.PartID, &e.LotID, &e.SerialID,
		&e.Quantity, &e.UnitMeasure, &e.Type, &e.Condition,
		&e.FromLocationID, &e.ToLocationID, &e.WorkOrderID, &e.TaskCardID,
		&e.RefType, &e.RefID, &e.ReasonCode, &e.Notes, &e.Sign,
		&e.OccurredAt, &e.CreatedAt, &e.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func collectMovementEntries(rows pgx.Rows) ([]*entity.MovementEntry, error) {
	defer rows.Close()
	var list []*entity.MovementEntry
	for rows.Next() {
		e, err := scanMovementEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement entry: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}
