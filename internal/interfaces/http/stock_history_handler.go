package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-management-api/internal/application/dto"
	"github.com/jhoicas/inventory-management-api/internal/application/usecase"
)

// StockHistoryHandler historial global de movimientos.
type StockHistoryHandler struct {
	uc *usecase.StockHistoryUseCase
}

// NewStockHistoryHandler construye el handler.
func NewStockHistoryHandler(uc *usecase.StockHistoryUseCase) *StockHistoryHandler {
	return &StockHistoryHandler{uc: uc}
}

// List godoc
// @Summary      Historial de stock
// @Tags         stock-history
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "ISO-8601"
// @Param        end_date    query  string  false  "ISO-8601"
// @Success      200  {array}   dto.StockHistoryEntry
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /stock-history [get]
func (h *StockHistoryHandler) List(c *fiber.Ctx) error {
	from, to, err := dto.ParseDateRange(c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.History(c.UserContext(), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
