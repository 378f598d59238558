package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-management-api/internal/application/dto"
	"github.com/jhoicas/inventory-management-api/internal/application/inventory"
	"github.com/jhoicas/inventory-management-api/internal/application/reports"
	"github.com/jhoicas/inventory-management-api/internal/application/usecase"
	"github.com/jhoicas/inventory-management-api/internal/domain"
	"github.com/jhoicas/inventory-management-api/internal/domain/entity"
	"github.com/jhoicas/inventory-management-api/internal/domain/repository"
)

// StockTransferHandler transferencias de stock entre localizadores.
type StockTransferHandler struct {
	uc      *inventory.TransferUseCase
	reports *reports.UseCase
	export  *usecase.ExportUseCase
}

// NewStockTransferHandler construye el handler.
func NewStockTransferHandler(uc *inventory.TransferUseCase, reports *reports.UseCase, export *usecase.ExportUseCase) *StockTransferHandler {
	return &StockTransferHandler{uc: uc, reports: reports, export: export}
}

// Create godoc
// @Summary      Crear transferencia
// @Tags         stock-transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransferRequest  true  "Transferencia"
// @Success      201   {object}  dto.StockTransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /stock-transfers [post]
func (h *StockTransferHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransferRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar transferencias
// @Tags         stock-transfers
// @Security     Bearer
// @Produce      json
// @Param        status      query  string  false  "pending|processing|completed|cancelled"
// @Param        start_date  query  string  false  "ISO-8601"
// @Param        end_date    query  string  false  "ISO-8601"
// @Success      200  {array}   dto.StockTransferResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /stock-transfers [get]
func (h *StockTransferHandler) List(c *fiber.Ctx) error {
	q, from, to, err := parseTransferQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.List(c.UserContext(), q.Status, from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar transferencias a Excel
// @Tags         stock-transfers
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        status      query  string  false  "pending|processing|completed|cancelled"
// @Param        start_date  query  string  false  "ISO-8601"
// @Param        end_date    query  string  false  "ISO-8601"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /stock-transfers/export [get]
func (h *StockTransferHandler) Export(c *fiber.Ctx) error {
	q, from, to, err := parseTransferQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	data, err := h.export.Transfers(c.UserContext(), repository.TransferFilter{Status: q.Status, From: from, To: to})
	if err != nil {
		return respondError(c, err)
	}
	return sendAttachment(c, xlsxContentType, "stock_transfers_"+time.Now().UTC().Format("20060102")+".xlsx", data)
}

// Get godoc
// @Summary      Obtener transferencia
// @Tags         stock-transfers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la transferencia"
// @Success      200  {object}  dto.StockTransferResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /stock-transfers/{id} [get]
func (h *StockTransferHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      PDF de la transferencia
// @Tags         stock-transfers
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la transferencia"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /stock-transfers/{id}/report [get]
func (h *StockTransferHandler) Report(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	data, err := h.reports.Transfer(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return sendAttachment(c, pdfContentType, fmt.Sprintf("transfer_%s.pdf", id), data)
}

// Approve godoc
// @Summary      Aprobar transferencia (pending -> processing)
// @Tags         stock-transfers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la transferencia"
// @Success      200  {object}  dto.StockTransferResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /stock-transfers/{id}/approve [put]
func (h *StockTransferHandler) Approve(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Approve(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Complete godoc
// @Summary      Completar transferencia (processing -> completed)
// @Description  Descuenta del origen y suma al producto destino en una sola transacción.
// @Tags         stock-transfers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la transferencia"
// @Success      200  {object}  dto.StockTransferResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /stock-transfers/{id}/complete [put]
func (h *StockTransferHandler) Complete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Complete(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Cancelar transferencia
// @Tags         stock-transfers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la transferencia"
// @Success      200  {object}  dto.StockTransferResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /stock-transfers/{id}/cancel [put]
func (h *StockTransferHandler) Cancel(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Cancel(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// parseTransferQuery lee y valida status, start_date y end_date.
func parseTransferQuery(c *fiber.Ctx) (dto.TransferListQuery, *time.Time, *time.Time, error) {
	var q dto.TransferListQuery
	if err := c.QueryParser(&q); err != nil {
		return q, nil, nil, fmt.Errorf("%w: query inválida", domain.ErrInvalidInput)
	}
	if q.Status != "" && !entity.ValidTransferStatus(q.Status) {
		return q, nil, nil, fmt.Errorf("%w: status desconocido %q", domain.ErrInvalidInput, q.Status)
	}
	from, to, err := dto.ParseDateRange(q.StartDate, q.EndDate)
	if err != nil {
		return q, nil, nil, err
	}
	return q, from, to, nil
}
