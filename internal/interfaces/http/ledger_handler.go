package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/aeropartes-api/internal/application/dto"
	"github.com/tu-usuario/aeropartes-api/internal/application/ledger"
	"github.com/tu-usuario/aeropartes-api/internal/domain"
	"github.com/tu-usuario/aeropartes-api/internal/domain/entity"
)

// LedgerHandler maneja las operaciones del ledger de movimientos (protegido).
type LedgerHandler struct {
	uc    *ledger.UseCase
	query *ledger.QueryUseCase
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(uc *ledger.UseCase, query *ledger.QueryUseCase) *LedgerHandler {
	return &LedgerHandler{uc: uc, query: query}
}

// idempotencyKey resuelve la key: campo del body o header X-Idempotency-Key.
func idempotencyKey(c *fiber.Ctx, bodyKey string) string {
	if bodyKey != "" {
		return bodyKey
	}
	return c.Get("X-Idempotency-Key")
}

// ledgerError mapea errores de dominio del ledger a códigos HTTP.
func ledgerError(c *fiber.Ctx, err error) error {
	switch err {
	case domain.ErrMissingIdempotencyKey:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "idempotency key requerida (body o header X-Idempotency-Key)"})
	case domain.ErrInvalidInput, domain.ErrSerialRequired, domain.ErrSerialNotAllowed,
		domain.ErrLotRequired, domain.ErrScrapReasonRequired:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case domain.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "parte o ubicación no encontrada"})
	case domain.ErrInsufficientStock:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "existencias insuficientes"})
	case domain.ErrConditionNotServiceable:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NOT_SERVICEABLE", Message: "la condición actual no permite la salida"})
	case domain.ErrNothingToInspect:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NOTHING_TO_INSPECT", Message: "sin existencias para inspeccionar"})
	case domain.ErrDuplicate, domain.ErrConflict:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func toEntryDTO(e *entity.MovementEntry) dto.MovementEntryDTO {
	return dto.MovementEntryDTO{
		ID:           e.ID,
		Type:         e.Type,
		PartID:       e.PartID,
		LotID:        e.LotID,
		SerialID:     e.SerialID,
		Quantity:     e.Quantity,
		UnitMeasure:  e.UnitMeasure,
		Condition:    e.Condition,
		FromLocation: e.FromLocationID,
		ToLocation:   e.ToLocationID,
		RefType:      e.RefType,
		RefID:        e.RefID,
		ReasonCode:   e.ReasonCode,
		OccurredAt:   e.OccurredAt,
		CreatedBy:    e.CreatedBy,
	}
}

func toMovementResponse(res *ledger.MovementResult) dto.MovementResponse {
	out := dto.MovementResponse{Replayed: res.Replayed, Entries: make([]dto.MovementEntryDTO, 0, len(res.Entries))}
	for _, e := range res.Entries {
		out.Entries = append(out.Entries, toEntryDTO(e))
	}
	return out
}

// movementStatus: asientos nuevos son 201; un replay idempotente devuelve el
// resultado original con 200.
func movementStatus(c *fiber.Ctx, res *ledger.MovementResult) error {
	status := fiber.StatusCreated
	if res.Replayed {
		status = fiber.StatusOK
	}
	return c.Status(status).JSON(toMovementResponse(res))
}

// Receive godoc
// @Summary      Recibir existencias
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        X-Idempotency-Key  header  string  false  "Idempotency key (alternativa al campo del body)"
// @Param        body  body  dto.ReceiveRequest  true  "part_number, quantity, to_location; condition default QUARANTINE"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ledger/receive [post]
func (h *LedgerHandler) Receive(c *fiber.Ctx) error {
	companyID, userID := GetCompanyID(c), GetUserID(c)
	var in dto.ReceiveRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	var def *ledger.PartDefinition
	if in.PartDefinition != nil {
		def = &ledger.PartDefinition{
			Description:     in.PartDefinition.Description,
			UnitMeasure:     in.PartDefinition.UnitMeasure,
			IsSerialized:    in.PartDefinition.IsSerialized,
			IsLotControlled: in.PartDefinition.IsLotControlled,
		}
	}
	res, err := h.uc.Receive(c.Context(), ledger.ReceiveInput{
		CompanyID:      companyID,
		UserID:         userID,
		IdempotencyKey: idempotencyKey(c, in.IdempotencyKey),
		PartNumber:     in.PartNumber,
		Quantity:       in.Quantity,
		UnitMeasure:    in.UnitMeasure,
		LotNumber:      in.LotNumber,
		SerialNumber:   in.SerialNumber,
		ToLocation:     in.ToLocation,
		Condition:      in.Condition,
		RefType:        in.RefType,
		RefID:          in.RefID,
		Notes:          in.Notes,
		PartDefinition: def,
	})
	if err != nil {
		return ledgerError(c, err)
	}
	return movementStatus(c, res)
}

// Inspect godoc
// @Summary      Inspeccionar existencias (cambio de condición)
// @Description  Escribe un par de asientos INSPECT (OUT con la condición anterior,
//               IN con la nueva) sobre todas las existencias de la clave en la ubicación.
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.InspectRequest  true  "part_number, location, new_condition"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ledger/inspect [post]
func (h *LedgerHandler) Inspect(c *fiber.Ctx) error {
	companyID, userID := GetCompanyID(c), GetUserID(c)
	var in dto.InspectRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.uc.Inspect(c.Context(), ledger.InspectInput{
		CompanyID:      companyID,
		UserID:         userID,
		IdempotencyKey: idempotencyKey(c, in.IdempotencyKey),
		PartNumber:     in.PartNumber,
		LotNumber:      in.LotNumber,
		SerialNumber:   in.SerialNumber,
		Location:       in.Location,
		NewCondition:   in.NewCondition,
		Notes:          in.Notes,
	})
	if err != nil {
		return ledgerError(c, err)
	}
	return movementStatus(c, res)
}

// Transfer godoc
// @Summary      Trasladar existencias entre ubicaciones
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferRequest  true  "part_number, quantity, from_location, to_location"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ledger/transfer [post]
func (h *LedgerHandler) Transfer(c *fiber.Ctx) error {
	companyID, userID := GetCompanyID(c), GetUserID(c)
	var in dto.TransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.uc.Transfer(c.Context(), ledger.TransferInput{
		CompanyID:      companyID,
		UserID:         userID,
		IdempotencyKey: idempotencyKey(c, in.IdempotencyKey),
		PartNumber:     in.PartNumber,
		Quantity:       in.Quantity,
		FromLocation:   in.FromLocation,
		ToLocation:     in.ToLocation,
		LotNumber:      in.LotNumber,
		SerialNumber:   in.SerialNumber,
		Notes:          in.Notes,
	})
	if err != nil {
		return ledgerError(c, err)
	}
	return movementStatus(c, res)
}

// Issue godoc
// @Summary      Salida a orden de trabajo
// @Description  Solo material SERVICEABLE puede salir; cuarentena o rechazado es conflicto.
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.IssueRequest  true  "part_number, quantity, from_location, work_order_id"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ledger/issue [post]
func (h *LedgerHandler) Issue(c *fiber.Ctx) error {
	companyID, userID := GetCompanyID(c), GetUserID(c)
	var in dto.IssueRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.uc.Issue(c.Context(), ledger.IssueInput{
		CompanyID:      companyID,
		UserID:         userID,
		IdempotencyKey: idempotencyKey(c, in.IdempotencyKey),
		PartNumber:     in.PartNumber,
		Quantity:       in.Quantity,
		FromLocation:   in.FromLocation,
		LotNumber:      in.LotNumber,
		SerialNumber:   in.SerialNumber,
		WorkOrderID:    in.WorkOrderID,
		TaskCardID:     in.TaskCardID,
		Notes:          in.Notes,
	})
	if err != nil {
		return ledgerError(c, err)
	}
	return movementStatus(c, res)
}

// Return godoc
// @Summary      Devolución desde orden de trabajo
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReturnRequest  true  "part_number, quantity, to_location"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/ledger/return [post]
func (h *LedgerHandler) Return(c *fiber.Ctx) error {
	companyID, userID := GetCompanyID(c), GetUserID(c)
	var in dto.ReturnRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.uc.Return(c.Context(), ledger.ReturnInput{
		CompanyID:      companyID,
		UserID:         userID,
		IdempotencyKey: idempotencyKey(c, in.IdempotencyKey),
		PartNumber:     in.PartNumber,
		Quantity:       in.Quantity,
		ToLocation:     in.ToLocation,
		LotNumber:      in.LotNumber,
		SerialNumber:   in.SerialNumber,
		WorkOrderID:    in.WorkOrderID,
		Notes:          in.Notes,
	})
	if err != nil {
		return ledgerError(c, err)
	}
	return movementStatus(c, res)
}

// VendorReturn godoc
// @Summary      Devolución al proveedor
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.VendorReturnRequest  true  "part_number, quantity, from_location, ref_id (RMA)"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ledger/vendor-return [post]
func (h *LedgerHandler) VendorReturn(c *fiber.Ctx) error {
	companyID, userID := GetCompanyID(c), GetUserID(c)
	var in dto.VendorReturnRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.uc.VendorReturn(c.Context(), ledger.VendorReturnInput{
		CompanyID:      companyID,
		UserID:         userID,
		IdempotencyKey: idempotencyKey(c, in.IdempotencyKey),
		PartNumber:     in.PartNumber,
		Quantity:       in.Quantity,
		FromLocation:   in.FromLocation,
		LotNumber:      in.LotNumber,
		SerialNumber:   in.SerialNumber,
		RefID:          in.RefID,
		Notes:          in.Notes,
	})
	if err != nil {
		return ledgerError(c, err)
	}
	return movementStatus(c, res)
}

// Adjust godoc
// @Summary      Corrección firmada (ADJUSTMENT / CYCLE_COUNT)
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustRequest  true  "part_number, quantity, location, sign (+1/-1)"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ledger/adjust [post]
func (h *LedgerHandler) Adjust(c *fiber.Ctx) error {
	companyID, userID := GetCompanyID(c), GetUserID(c)
	var in dto.AdjustRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.uc.Adjust(c.Context(), ledger.AdjustInput{
		CompanyID:      companyID,
		UserID:         userID,
		IdempotencyKey: idempotencyKey(c, in.IdempotencyKey),
		PartNumber:     in.PartNumber,
		Quantity:       in.Quantity,
		Location:       in.Location,
		Sign:           in.Sign,
		CycleCount:     in.CycleCount,
		LotNumber:      in.LotNumber,
		SerialNumber:   in.SerialNumber,
		ReasonCode:     in.ReasonCode,
		Notes:          in.Notes,
	})
	if err != nil {
		return ledgerError(c, err)
	}
	return movementStatus(c, res)
}

// Scrap godoc
// @Summary      Baja definitiva
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ScrapRequest  true  "part_number, quantity, from_location, reason_code"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ledger/scrap [post]
func (h *LedgerHandler) Scrap(c *fiber.Ctx) error {
	companyID, userID := GetCompanyID(c), GetUserID(c)
	var in dto.ScrapRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.uc.Scrap(c.Context(), ledger.ScrapInput{
		CompanyID:      companyID,
		UserID:         userID,
		IdempotencyKey: idempotencyKey(c, in.IdempotencyKey),
		PartNumber:     in.PartNumber,
		Quantity:       in.Quantity,
		FromLocation:   in.FromLocation,
		ReasonCode:     in.ReasonCode,
		LotNumber:      in.LotNumber,
		SerialNumber:   in.SerialNumber,
		Notes:          in.Notes,
	})
	if err != nil {
		return ledgerError(c, err)
	}
	return movementStatus(c, res)
}

// OnHand godoc
// @Summary      Consultar existencias
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        part_number  query  string  false  "Filtrar por parte. Vacío = todas."
// @Param        limit   query  int  false  "máx resultados (default 20)"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {array}  dto.OnHandDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ledger/on-hand [get]
func (h *LedgerHandler) OnHand(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	page.DefaultPage()
	balances, err := h.query.ListOnHand(companyID, c.Query("part_number"), page.Limit, page.Offset)
	if err != nil {
		return ledgerError(c, err)
	}
	out := make([]dto.OnHandDTO, 0, len(balances))
	for _, b := range balances {
		out = append(out, dto.OnHandDTO{
			PartID:     b.PartID,
			LotID:      b.LotID,
			SerialID:   b.SerialID,
			LocationID: b.LocationID,
			Quantity:   b.Quantity,
			Condition:  b.Condition,
		})
	}
	return c.JSON(out)
}

// Entries godoc
// @Summary      Listar el ledger de movimientos
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "máx resultados (default 20)"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {array}  dto.MovementEntryDTO
// @Router       /api/ledger/entries [get]
func (h *LedgerHandler) Entries(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	page.DefaultPage()
	entries, err := h.query.ListLedger(companyID, page.Limit, page.Offset)
	if err != nil {
		return ledgerError(c, err)
	}
	out := make([]dto.MovementEntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, toEntryDTO(e))
	}
	return c.JSON(out)
}

// Reconcile godoc
// @Summary      Reconciliar balances contra el replay del ledger
// @Description  Pliega el ledger completo con la álgebra del proyector y compara contra
//               los balances materializados. Lista vacía = consistencia total.
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.DiscrepancyDTO
// @Router       /api/ledger/reconciliation [get]
func (h *LedgerHandler) Reconcile(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	discrepancies, err := h.query.Reconcile(companyID)
	if err != nil {
		return ledgerError(c, err)
	}
	out := make([]dto.DiscrepancyDTO, 0, len(discrepancies))
	for _, d := range discrepancies {
		out = append(out, dto.DiscrepancyDTO{
			PartID:       d.Key.PartID,
			LotID:        d.Key.LotID,
			SerialID:     d.Key.SerialID,
			LocationID:   d.Key.LocationID,
			Materialized: d.Materialized.Quantity,
			Replayed:     d.Replayed.Quantity,
		})
	}
	return c.JSON(out)
}
