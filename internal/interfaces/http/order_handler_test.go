package http_test

import (
	"bytes"
	"io"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-management-api/internal/application/dto"
)

func (h *harness) order(t *testing.T, token, orderType, productID string, qty int, price string) dto.OrderResponse {
	t.Helper()
	var out dto.OrderResponse
	h.expect(t, h.do(t, http.MethodPost, "/orders", token, map[string]any{
		"type":  orderType,
		"items": []map[string]any{{"product_id": productID, "quantity": qty, "price": price}},
	}), http.StatusCreated, &out)
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Creación y visibilidad
// ──────────────────────────────────────────────────────────────────────────────

func TestOrders_CreateNoMueveStock(t *testing.T) {
	h := newHarness(t)
	pid := h.product(t, "Tornillo", "2.50", 10, nil)

	o := h.order(t, h.keeper, "sell", pid, 4, "3.00")
	assert.Equal(t, "pending", o.Status)
	assert.True(t, decimal.NewFromInt(12).Equal(o.Total))
	require.Len(t, o.Items, 1)
	assert.Equal(t, "Tornillo", o.Items[0].ProductName)
	assert.Equal(t, 10, h.stockOf(t, pid))
}

func TestOrders_CreateValidaciones(t *testing.T) {
	h := newHarness(t)
	pid := h.product(t, "Tornillo", "2.50", 10, nil)

	resp := h.do(t, http.MethodPost, "/orders", h.keeper, map[string]any{
		"type": "sell", "items": []map[string]any{{"product_id": pid, "quantity": 11, "price": "1"}},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", errorCode(t, resp))

	resp = h.do(t, http.MethodPost, "/orders", h.keeper, map[string]any{"type": "sell", "items": []map[string]any{}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = h.do(t, http.MethodPost, "/orders", h.keeper, map[string]any{
		"type": "swap", "items": []map[string]any{{"product_id": pid, "quantity": 1, "price": "1"}},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = h.do(t, http.MethodPost, "/orders", h.keeper, map[string]any{
		"type": "purchase", "customer_id": uuid.NewString(),
		"items": []map[string]any{{"product_id": pid, "quantity": 1, "price": "1"}},
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestOrders_Visibilidad(t *testing.T) {
	h := newHarness(t)
	pid := h.product(t, "Tornillo", "2.50", 10, nil)
	mine := h.order(t, h.keeper, "purchase", pid, 1, "1")
	others := h.order(t, h.worker, "purchase", pid, 1, "1")

	var list []dto.OrderResponse
	h.expect(t, h.do(t, http.MethodGet, "/orders", h.keeper, nil), http.StatusOK, &list)
	require.Len(t, list, 1, "privilegio 2 solo ve las propias")
	assert.Equal(t, mine.ID, list[0].ID)

	h.expect(t, h.do(t, http.MethodGet, "/orders", h.admin, nil), http.StatusOK, &list)
	assert.Len(t, list, 2)

	resp := h.do(t, http.MethodGet, "/orders/"+others.ID+"/report", h.keeper, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = h.do(t, http.MethodDelete, "/orders/"+others.ID, h.keeper, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = h.do(t, http.MethodDelete, "/orders/"+mine.ID, h.worker, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode, "privilegio 1 borra cualquiera")
	resp.Body.Close()
}

// ──────────────────────────────────────────────────────────────────────────────
// Estados
// ──────────────────────────────────────────────────────────────────────────────

func TestOrders_UpdateStatusSoloCreador(t *testing.T) {
	h := newHarness(t)
	pid := h.product(t, "Tornillo", "2.50", 10, nil)
	o := h.order(t, h.keeper, "purchase", pid, 1, "1")

	resp := h.do(t, http.MethodPut, "/orders/"+o.ID+"/status", h.worker, dto.UpdateOrderStatusRequest{Status: "processing"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = h.do(t, http.MethodPut, "/orders/"+o.ID+"/status", h.keeper, dto.UpdateOrderStatusRequest{Status: "completed"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	var out dto.OrderResponse
	h.expect(t, h.do(t, http.MethodPut, "/orders/"+o.ID+"/status", h.keeper, dto.UpdateOrderStatusRequest{Status: "processing"}), http.StatusOK, &out)
	assert.Equal(t, "processing", out.Status)
}

func TestOrders_AprobarVentaDescuentaStock(t *testing.T) {
	h := newHarness(t)
	pid := h.product(t, "Tornillo", "2.50", 10, nil)
	o := h.order(t, h.keeper, "sell", pid, 4, "3.00")

	resp := h.do(t, http.MethodPut, "/orders/"+o.ID+"/approve", h.keeper, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "privilegio 2 no aprueba")
	resp.Body.Close()

	var out dto.OrderResponse
	h.expect(t, h.do(t, http.MethodPut, "/orders/"+o.ID+"/approve", h.worker, nil), http.StatusOK, &out)
	assert.Equal(t, "completed", out.Status)
	assert.Equal(t, 6, h.stockOf(t, pid))

	resp = h.do(t, http.MethodPut, "/orders/"+o.ID+"/approve", h.admin, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_TRANSITION", errorCode(t, resp))
	assert.Equal(t, 6, h.stockOf(t, pid))
}

func TestOrders_AprobarCompraSumaStock(t *testing.T) {
	h := newHarness(t)
	pid := h.product(t, "Tornillo", "2.50", 10, nil)
	o := h.order(t, h.keeper, "purchase", pid, 5, "2.00")

	h.expect(t, h.do(t, http.MethodPut, "/orders/"+o.ID+"/approve", h.admin, nil), http.StatusOK, nil)
	assert.Equal(t, 15, h.stockOf(t, pid))
}

func TestOrders_AprobacionTodoONada(t *testing.T) {
	h := newHarness(t)
	a := h.product(t, "Tornillo", "1", 10, nil)
	b := h.product(t, "Tuerca", "1", 5, nil)

	var o dto.OrderResponse
	h.expect(t, h.do(t, http.MethodPost, "/orders", h.keeper, map[string]any{
		"type": "sell",
		"items": []map[string]any{
			{"product_id": a, "quantity": 8, "price": "1"},
			{"product_id": b, "quantity": 5, "price": "1"},
		},
	}), http.StatusCreated, &o)

	// entre la creación y la aprobación el stock de b baja
	h.expect(t, h.do(t, http.MethodPut, "/products/"+b, h.admin, map[string]any{"stock": 2}), http.StatusOK, nil)

	resp := h.do(t, http.MethodPut, "/orders/"+o.ID+"/approve", h.worker, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
	assert.Equal(t, 10, h.stockOf(t, a), "ninguna línea se aplica si una falla")
	assert.Equal(t, 2, h.stockOf(t, b))
}

func TestOrders_Rechazar(t *testing.T) {
	h := newHarness(t)
	pid := h.product(t, "Tornillo", "2.50", 10, nil)
	o := h.order(t, h.keeper, "sell", pid, 4, "3.00")

	var out dto.OrderResponse
	h.expect(t, h.do(t, http.MethodPut, "/orders/"+o.ID+"/reject", h.admin, nil), http.StatusOK, &out)
	assert.Equal(t, "cancelled", out.Status)
	assert.Equal(t, 10, h.stockOf(t, pid))

	resp := h.do(t, http.MethodPut, "/orders/"+o.ID+"/reject", h.admin, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestOrders_ReportePDF(t *testing.T) {
	h := newHarness(t)
	pid := h.product(t, "Tornillo", "2.50", 10, nil)
	o := h.order(t, h.keeper, "sell", pid, 4, "3.00")

	resp := h.do(t, http.MethodGet, "/orders/"+o.ID+"/report", h.keeper, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment")
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}
