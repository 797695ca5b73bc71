package receiving

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/aeropartes-api/internal/application/dto"
	appledger "github.com/tu-usuario/aeropartes-api/internal/application/ledger"
	"github.com/tu-usuario/aeropartes-api/internal/domain"
	"github.com/tu-usuario/aeropartes-api/internal/domain/entity"
	"github.com/tu-usuario/aeropartes-api/internal/domain/repository"
)

// UseCase orquesta recepciones de compra: registra órdenes y convierte cada
// línea recibida en un RECEIVE del ledger (referencia PO).
type UseCase struct {
	orderRepo repository.PurchaseOrderRepository
	ledger    *appledger.UseCase
}

// NewUseCase construye el orquestador de recepciones.
func NewUseCase(orderRepo repository.PurchaseOrderRepository, ledgerUC *appledger.UseCase) *UseCase {
	return &UseCase{orderRepo: orderRepo, ledger: ledgerUC}
}

// CreatePurchaseOrder registra una orden de compra con sus líneas.
// PO number duplicado dentro de la empresa es conflicto.
func (uc *UseCase) CreatePurchaseOrder(companyID, userID string, in dto.CreatePurchaseOrderRequest) (*entity.PurchaseOrder, error) {
	if in.PONumber == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	order := &entity.PurchaseOrder{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		PONumber:  in.PONumber,
		Vendor:    in.Vendor,
		Status:    entity.POStatusOpen,
		CreatedAt: now,
		UpdatedAt: now,
		CreatedBy: userID,
	}
	lines := make([]*entity.PurchaseOrderLine, 0, len(in.Lines))
	for _, l := range in.Lines {
		if l.PartNumber == "" || !l.Quantity.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
		lines = append(lines, &entity.PurchaseOrderLine{
			ID:          uuid.New().String(),
			PartNumber:  l.PartNumber,
			Quantity:    l.Quantity,
			UnitMeasure: l.UnitMeasure,
		})
	}
	if err := uc.orderRepo.Create(order, lines); err != nil {
		return nil, err
	}
	return order, nil
}

// GetPurchaseOrder obtiene la orden con sus líneas.
func (uc *UseCase) GetPurchaseOrder(companyID, poNumber string) (*entity.PurchaseOrder, []*entity.PurchaseOrderLine, error) {
	order, err := uc.orderRepo.GetByNumber(companyID, poNumber)
	if err != nil {
		return nil, nil, err
	}
	if order == nil {
		return nil, nil, domain.ErrNotFound
	}
	lines, err := uc.orderRepo.GetLines(companyID, order.ID)
	if err != nil {
		return nil, nil, err
	}
	return order, lines, nil
}

// ReceiveGoods convierte cada línea recibida en un RECEIVE del ledger contra la PO.
// La idempotency key del request se deriva por línea (key-line-N): un reintento
// del receipt completo reproduce línea a línea sin duplicar asientos.
func (uc *UseCase) ReceiveGoods(ctx context.Context, companyID, userID string, in dto.GoodsReceiptRequest) ([]*appledger.MovementResult, error) {
	if in.IdempotencyKey == "" {
		return nil, domain.ErrMissingIdempotencyKey
	}
	if len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	order, err := uc.orderRepo.GetByNumber(companyID, in.PONumber)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}

	results := make([]*appledger.MovementResult, 0, len(in.Lines))
	for i, line := range in.Lines {
		var def *appledger.PartDefinition
		if line.PartDefinition != nil {
			def = &appledger.PartDefinition{
				Description:     line.PartDefinition.Description,
				UnitMeasure:     line.PartDefinition.UnitMeasure,
				IsSerialized:    line.PartDefinition.IsSerialized,
				IsLotControlled: line.PartDefinition.IsLotControlled,
			}
		}
		res, err := uc.ledger.Receive(ctx, appledger.ReceiveInput{
			CompanyID:      companyID,
			UserID:         userID,
			IdempotencyKey: fmt.Sprintf("%s-line-%d", in.IdempotencyKey, i+1),
			PartNumber:     line.PartNumber,
			Quantity:       line.Quantity,
			UnitMeasure:    line.UnitMeasure,
			LotNumber:      line.LotNumber,
			SerialNumber:   line.SerialNumber,
			ToLocation:     line.ToLocation,
			Condition:      line.Condition,
			RefType:        "PO",
			RefID:          order.PONumber,
			PartDefinition: def,
		})
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}

	if order.Status == entity.POStatusOpen {
		if err := uc.orderRepo.UpdateStatus(companyID, order.ID, entity.POStatusReceived); err != nil {
			return nil, err
		}
	}
	return results, nil
}
