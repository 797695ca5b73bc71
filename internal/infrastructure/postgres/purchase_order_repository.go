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

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo implementación de PurchaseOrderRepository sobre PostgreSQL (usable con pool o tx).
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador de órdenes de compra. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

// Create persiste la orden con sus líneas. PO number duplicado devuelve ErrDuplicate.
func (r *PurchaseOrderRepo) Create(order *entity.PurchaseOrder, lines []*entity.PurchaseOrderLine) error {
	query := `
		INSERT INTO purchase_orders (id, company_id, po_number, vendor, status, created_at, updated_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.CompanyID, order.PONumber, order.Vendor, order.Status,
		order.CreatedAt, order.UpdatedAt, order.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert purchase order: %w", err)
	}
	for _, line := range lines {
		if line.ID == "" {
			line.ID = uuid.New().String()
		}
		line.OrderID = order.ID
		_, err := r.q.Exec(context.Background(), `
			INSERT INTO purchase_order_lines (id, order_id, part_number, quantity, unit_measure)
			VALUES ($1, $2, $3, $4, $5)`,
			line.ID, line.OrderID, line.PartNumber, line.Quantity, line.UnitMeasure,
		)
		if err != nil {
			return fmt.Errorf("insert purchase order line: %w", err)
		}
	}
	return nil
}

// GetByNumber obtiene una orden por número dentro de la empresa.
func (r *PurchaseOrderRepo) GetByNumber(companyID, poNumber string) (*entity.PurchaseOrder, error) {
	query := `
		SELECT id, company_id, po_number, vendor, status, created_at, updated_at, created_by
		FROM purchase_orders WHERE company_id = $1 AND po_number = $2`
	var o entity.PurchaseOrder
	err := r.q.QueryRow(context.Background(), query, companyID, poNumber).Scan(
		&o.ID, &o.CompanyID, &o.PONumber, &o.Vendor, &o.Status, &o.CreatedAt, &o.UpdatedAt, &o.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	return &o, nil
}

// GetLines obtiene las líneas de una orden (valida pertenencia a la empresa vía join).
func (r *PurchaseOrderRepo) GetLines(companyID, orderID string) ([]*entity.PurchaseOrderLine, error) {
	query := `
		SELECT l.id, l.order_id, l.part_number, l.quantity, l.unit_measure
		FROM purchase_order_lines l
		JOIN purchase_orders o ON o.id = l.order_id
		WHERE o.company_id = $1 AND l.order_id = $2
		ORDER BY l.part_number`
	rows, err := r.q.Query(context.Background(), query, companyID, orderID)
	if err != nil {
		return nil, fmt.Errorf("get purchase order lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseOrderLine
	for rows.Next() {
		var l entity.PurchaseOrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.PartNumber, &l.Quantity, &l.UnitMeasure); err != nil {
			return nil, fmt.Errorf("scan purchase order line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// UpdateStatus cambia el estado de la orden (open -> received -> closed).
func (r *PurchaseOrderRepo) UpdateStatus(companyID, orderID, status string) error {
	_, err := r.q.Exec(context.Background(), `
		UPDATE purchase_orders SET status = $3, updated_at = now()
		WHERE company_id = $1 AND id = $2`,
		companyID, orderID, status,
	)
	if err != nil {
		return fmt.Errorf("update purchase order status: %w", err)
	}
	return nil
}
