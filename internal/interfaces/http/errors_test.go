package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-management-api/internal/application/dto"
	"github.com/jhoicas/inventory-management-api/internal/domain"
)

func TestRespondError_Mapeo(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{fmt.Errorf("%w: nombre", domain.ErrInvalidInput), fiber.StatusBadRequest, "VALIDATION"},
		{fmt.Errorf("%w: completed", domain.ErrInvalidTransition), fiber.StatusBadRequest, "INVALID_TRANSITION"},
		{fmt.Errorf("%w (producto X)", domain.ErrInsufficientStock), fiber.StatusBadRequest, "INSUFFICIENT_STOCK"},
		{domain.ErrDuplicate, fiber.StatusBadRequest, "DUPLICATE"},
		{domain.ErrEmailAlreadyExists, fiber.StatusBadRequest, "EMAIL_EXISTS"},
		{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
		{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
		{fmt.Errorf("%w: orden 1", domain.ErrNotFound), fiber.StatusNotFound, "NOT_FOUND"},
		{domain.ErrUserNotFound, fiber.StatusNotFound, "NOT_FOUND"},
		{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
		{errors.New("conexión rechazada"), fiber.StatusInternalServerError, "INTERNAL"},
	}
	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			app := fiber.New()
			var stored any
			app.Get("/", func(c *fiber.Ctx) error {
				err := respondError(c, tc.err)
				stored = c.Locals(localError)
				return err
			})
			resp, err := app.Test(httptest.NewRequest("GET", "/", nil), -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tc.status, resp.StatusCode)
			var body dto.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tc.code, body.Code)
			if tc.status == fiber.StatusInternalServerError {
				assert.Equal(t, tc.err, stored, "el 500 guarda el error para el log")
				assert.NotContains(t, body.Message, "conexión", "el detalle interno no se expone")
			} else {
				assert.Nil(t, stored)
			}
		})
	}
}

func TestIPLimiter_RafagaYRecarga(t *testing.T) {
	l := newIPLimiter(2)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	assert.True(t, l.allow("10.0.0.1", now))
	assert.True(t, l.allow("10.0.0.1", now))
	assert.False(t, l.allow("10.0.0.1", now), "ráfaga agotada")
	assert.True(t, l.allow("10.0.0.2", now), "cada IP tiene su bucket")

	// con 2 por minuto se repone un token cada 30s
	assert.True(t, l.allow("10.0.0.1", now.Add(31*time.Second)))
}

func TestIPLimiter_DescartaVisitantesInactivos(t *testing.T) {
	l := newIPLimiter(5)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	l.allow("10.0.0.1", now)
	l.allow("10.0.0.2", now.Add(11*time.Minute))

	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.visitors["10.0.0.1"]
	assert.False(t, ok)
	assert.Len(t, l.visitors, 1)
}

func TestErrorHandler_RutaInexistente(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	resp, err := app.Test(httptest.NewRequest("GET", "/no-existe", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "NOT_FOUND", body.Code)
}

func TestErrorHandler_ErrorNoTipado(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/", func(c *fiber.Ctx) error { return errors.New("falló algo") })
	resp, err := app.Test(httptest.NewRequest("GET", "/", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}
