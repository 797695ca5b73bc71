package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/aeropartes-api/internal/domain/entity"
	"github.com/tu-usuario/aeropartes-api/internal/domain/repository"
)

var _ repository.BalanceRepository = (*BalanceRepo)(nil)

// BalanceRepo implementación de BalanceRepository sobre PostgreSQL (usable con pool o tx).
type BalanceRepo struct {
	q Querier
}

// NewBalanceRepository construye el adaptador de saldos. Pasar pool o tx (Querier).
func NewBalanceRepository(q Querier) *BalanceRepo {
	return &BalanceRepo{q: q}
}

// Get obtiene el saldo de una clave. Sin fila devuelve saldo cero (clave jamás movida).
func (r *BalanceRepo) Get(key repository.BalanceKey) (*entity.OnHandBalance, error) {
	return r.get(key, false)
}

// GetForUpdate obtiene el saldo y bloquea la fila (SELECT FOR UPDATE). Sin fila
// devuelve saldo cero sin bloquear nada: las claves nuevas no dependen de este
// lock porque ApplyDelta hace la aritmética dentro de la base.
func (r *BalanceRepo) GetForUpdate(key repository.BalanceKey) (*entity.OnHandBalance, error) {
	return r.get(key, true)
}

func (r *BalanceRepo) get(key repository.BalanceKey, lock bool) (*entity.OnHandBalance, error) {
	query := `
		SELECT company_id, part_id, lot_id, serial_id, location_id, quantity, condition, updated_at
		FROM on_hand_balances
		WHERE company_id = $1 AND part_id = $2 AND location_id = $3
		  AND lot_id IS NOT DISTINCT FROM $4
		  AND serial_id IS NOT DISTINCT FROM $5`
	if lock {
		query += `
		FOR UPDATE`
	}
	var b entity.OnHandBalance
	err := r.q.QueryRow(context.Background(), query,
		key.CompanyID, key.PartID, key.LocationID, key.LotID, key.SerialID,
	).Scan(&b.CompanyID, &b.PartID, &b.LotID, &b.SerialID, &b.LocationID, &b.Quantity, &b.Condition, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.OnHandBalance{
				CompanyID:  key.CompanyID,
				PartID:     key.PartID,
				LotID:      key.LotID,
				SerialID:   key.SerialID,
				LocationID: key.LocationID,
				Quantity:   decimal.Zero,
			}, nil
		}
		return nil, fmt.Errorf("get balance: %w", err)
	}
	return &b, nil
}

// ApplyDelta suma el delta firmado al saldo de la clave con aritmética en la
// base: el DO UPDATE parte del valor comiteado bajo el lock de fila, nunca de
// una cantidad calculada en Go. Dos primeras escrituras concurrentes de la
// misma clave se serializan en la constraint y ambas quedan sumadas.
// La clave compuesta usa COALESCE en la constraint para tratar NULL como valor.
func (r *BalanceRepo) ApplyDelta(key repository.BalanceKey, delta decimal.Decimal, condition string, updatedAt time.Time) error {
	query := `
		INSERT INTO on_hand_balances (company_id, part_id, lot_id, serial_id, location_id, quantity, condition, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (company_id, part_id, location_id, COALESCE(lot_id, ''), COALESCE(serial_id, ''))
		DO UPDATE SET
			quantity   = on_hand_balances.quantity + EXCLUDED.quantity,
			condition  = CASE WHEN EXCLUDED.condition <> '' THEN EXCLUDED.condition ELSE on_hand_balances.condition END,
			updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		key.CompanyID, key.PartID, key.LotID, key.SerialID, key.LocationID,
		delta, condition, updatedAt,
	)
	if err != nil {
		return fmt.Errorf("apply balance delta: %w", err)
	}
	return nil
}

// ListOnHand lista saldos con cantidad > 0; partID vacío = todas las partes.
func (r *BalanceRepo) ListOnHand(companyID, partID string, limit, offset int) ([]*entity.OnHandBalance, error) {
	query := `
		SELECT company_id, part_id, lot_id, serial_id, location_id, quantity, condition, updated_at
		FROM on_hand_balances
		WHERE company_id = $1 AND quantity > 0`
	args := []any{companyID}
	pos := 2
	if partID != "" {
		query += fmt.Sprintf(" AND part_id = $%d", pos)
		args = append(args, partID)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY part_id, location_id LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list on hand: %w", err)
	}
	return collectBalances(rows)
}

// ListAll incluye también saldos en cero (reconciliación).
func (r *BalanceRepo) ListAll(companyID string) ([]*entity.OnHandBalance, error) {
	query := `
		SELECT company_id, part_id, lot_id, serial_id, location_id, quantity, condition, updated_at
		FROM on_hand_balances WHERE company_id = $1
		ORDER BY part_id, location_id`
	rows, err := r.q.Query(context.Background(), query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list all balances: %w", err)
	}
	return collectBalances(rows)
}

func collectBalances(rows pgx.Rows) ([]*entity.OnHandBalance, error) {
	defer rows.Close()
	var list []*entity.OnHandBalance
	for rows.Next() {
		var b entity.OnHandBalance
		if err := rows.Scan(&b.CompanyID, &b.PartID, &b.LotID, &b.SerialID, &b.LocationID,
			&b.Quantity, &b.Condition, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan balance: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}
