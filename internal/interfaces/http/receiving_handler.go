package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/aeropartes-api/internal/application/dto"
	"github.com/tu-usuario/aeropartes-api/internal/application/receiving"
	"github.com/tu-usuario/aeropartes-api/internal/domain"
)

// ReceivingHandler maneja órdenes de compra y recepciones de mercancía (protegido).
type ReceivingHandler struct {
	uc *receiving.UseCase
}

// NewReceivingHandler construye el handler.
func NewReceivingHandler(uc *receiving.UseCase) *ReceivingHandler {
	return &ReceivingHandler{uc: uc}
}

// CreatePurchaseOrder godoc
// @Summary      Crear orden de compra
// @Tags         receiving
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseOrderRequest  true  "po_number, vendor, lines"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/receiving/purchase-orders [post]
func (h *ReceivingHandler) CreatePurchaseOrder(c *fiber.Ctx) error {
	companyID, userID := GetCompanyID(c), GetUserID(c)
	var in dto.CreatePurchaseOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, err := h.uc.CreatePurchaseOrder(companyID, userID, in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "po_number y al menos una línea válida son requeridos"})
		}
		if err == domain.ErrDuplicate {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "el PO number ya existe en esta empresa"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": order.ID, "po_number": order.PONumber, "status": order.Status})
}

// ReceiveGoods godoc
// @Summary      Recepción de mercancía contra una PO
// @Description  Convierte cada línea recibida en un RECEIVE del ledger con referencia PO.
//               La idempotency key se deriva por línea: un reintento reproduce línea a línea.
// @Tags         receiving
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        X-Idempotency-Key  header  string  false  "Idempotency key (alternativa al campo del body)"
// @Param        body  body  dto.GoodsReceiptRequest  true  "po_number, lines"
// @Success      201   {object}  dto.GoodsReceiptResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/receiving/goods-receipts [post]
func (h *ReceivingHandler) ReceiveGoods(c *fiber.Ctx) error {
	companyID, userID := GetCompanyID(c), GetUserID(c)
	var in dto.GoodsReceiptRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	in.IdempotencyKey = idempotencyKey(c, in.IdempotencyKey)
	results, err := h.uc.ReceiveGoods(c.Context(), companyID, userID, in)
	if err != nil {
		return ledgerError(c, err)
	}
	out := dto.GoodsReceiptResponse{PONumber: in.PONumber, Lines: make([]dto.MovementResponse, 0, len(results))}
	for _, res := range results {
		out.Lines = append(out.Lines, toMovementResponse(res))
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
