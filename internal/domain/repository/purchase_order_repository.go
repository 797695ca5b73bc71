package repository

import "github.com/tu-usuario/aeropartes-api/internal/domain/entity"

// PurchaseOrderRepository puerto de persistencia de órdenes de compra.
type PurchaseOrderRepository interface {
	Create(order *entity.PurchaseOrder, lines []*entity.PurchaseOrderLine) error
	GetByNumber(companyID, poNumber string) (*entity.PurchaseOrder, error)
	GetLines(companyID, orderID string) ([]*entity.PurchaseOrderLine, error)
	UpdateStatus(companyID, orderID, status string) error
}
