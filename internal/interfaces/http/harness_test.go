package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-management-api/internal/application/auth"
	"github.com/jhoicas/inventory-management-api/internal/application/dto"
	"github.com/jhoicas/inventory-management-api/internal/application/inventory"
	"github.com/jhoicas/inventory-management-api/internal/application/reports"
	"github.com/jhoicas/inventory-management-api/internal/application/usecase"
	"github.com/jhoicas/inventory-management-api/internal/infrastructure/cache"
	"github.com/jhoicas/inventory-management-api/internal/infrastructure/export"
	"github.com/jhoicas/inventory-management-api/internal/infrastructure/memory"
	"github.com/jhoicas/inventory-management-api/internal/infrastructure/pdf"
	"github.com/jhoicas/inventory-management-api/internal/infrastructure/storage"
	apphttp "github.com/jhoicas/inventory-management-api/internal/interfaces/http"
	"github.com/jhoicas/inventory-management-api/pkg/logger"
)

// harness API completa sobre el store en memoria, con un usuario por nivel de privilegio.
type harness struct {
	app    *fiber.App
	store  *memory.Store
	admin  string // token de acceso, privilegios 3
	worker string // privilegios 1
	keeper string // privilegios 2
}

type harnessOpts struct {
	loginRate int
}

func newHarness(t *testing.T) *harness {
	return newHarnessWith(t, harnessOpts{loginRate: 100})
}

func newHarnessWith(t *testing.T, opts harnessOpts) *harness {
	t.Helper()
	log := logger.Nop()
	store := memory.NewStore()
	repos := store.Repos()
	tx := store.TxRunner()

	files, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	authUC := auth.NewAuthUseCase(store.Users(), auth.JWTConfig{
		Secret:        testJWTSecret,
		RefreshSecret: testRefreshSecret,
		Issuer:        testIssuer,
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    24 * time.Hour,
	})
	orderUC := inventory.NewOrderUseCase(repos, tx, log)
	transferUC := inventory.NewTransferUseCase(repos, tx, log)

	app := fiber.New(apphttp.AppConfig("inventory-test"))
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:             authUC,
		UserUC:             usecase.NewUserUseCase(store.Users()),
		ProductUC:          usecase.NewProductUseCase(store.Products(), store.Categories()),
		CategoryUC:         usecase.NewCategoryUseCase(store.Categories(), store.Products(), store.SubInventories(), store.Locators()),
		CustomerUC:         usecase.NewCustomerUseCase(store.Customers()),
		OrganizationUC:     usecase.NewOrganizationUseCase(store.Organizations(), store.SubInventories(), store.Locators(), tx, files, log),
		StockHistoryUC:     usecase.NewStockHistoryUseCase(store.Transfers(), store.Products(), store.Locators()),
		ExportUC:           usecase.NewExportUseCase(store.Products(), store.Categories(), store.Transfers(), export.NewXLSXExporter()),
		OrderUC:            orderUC,
		TransferUC:         transferUC,
		ReportsUC:          reports.NewUseCase(orderUC, transferUC, repos, pdf.NewMarotoReportGenerator("test"), cache.Noop{}, log),
		ServiceName:        "inventory-test",
		JWTSecret:          testJWTSecret,
		LoginRatePerMinute: opts.loginRate,
	})

	h := &harness{app: app, store: store}
	h.admin = h.register(t, "admin@test.com", 3)
	h.worker = h.register(t, "worker@test.com", 1)
	h.keeper = h.register(t, "keeper@test.com", 2)
	return h
}

// register da de alta un usuario por la API y devuelve su token de acceso.
func (h *harness) register(t *testing.T, email string, privileges int) string {
	t.Helper()
	resp := h.do(t, http.MethodPost, "/auth/signup", "", map[string]any{
		"email": email, "username": email, "password": "password123", "privileges": privileges,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, "signup %s", email)
	resp.Body.Close()

	resp = h.do(t, http.MethodPost, "/auth/login", "", map[string]any{
		"email": email, "password": "password123", "isAdmin": privileges == 3,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, "login %s", email)
	var out dto.LoginResponse
	decode(t, resp, &out)
	return out.AccessToken
}

// do envía body como JSON (si no es nil) con el token Bearer (si no es vacío).
func (h *harness) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return h.send(t, req)
}

func (h *harness) send(t *testing.T, req *http.Request) *http.Response {
	t.Helper()
	resp, err := h.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// expect verifica el status y decodifica el cuerpo en out (si no es nil).
func (h *harness) expect(t *testing.T, resp *http.Response, status int, out any) {
	t.Helper()
	defer resp.Body.Close()
	if resp.StatusCode != status {
		raw, _ := io.ReadAll(resp.Body)
		require.Equalf(t, status, resp.StatusCode, "cuerpo: %s", raw)
	}
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// errorCode lee el código de un dto.ErrorResponse.
func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	var out dto.ErrorResponse
	decode(t, resp, &out)
	return out.Code
}

// warehouse crea por la API un sub-inventario con dos localizadores y dos categorías,
// una en cada localizador.
type warehouse struct {
	orgID, subID string
	locA, locB   string
	catA, catB   string
}

func (h *harness) warehouse(t *testing.T) warehouse {
	t.Helper()
	var w warehouse

	var org dto.OrganizationResponse
	h.expect(t, h.multipart(t, "/organization", h.admin, map[string]string{"name": "ACME"}, nil), http.StatusOK, &org)
	w.orgID = org.ID

	var sub dto.SubInventoryResponse
	h.expect(t, h.do(t, http.MethodPost, "/organization/"+w.orgID+"/sub-inventory", h.admin,
		dto.SubInventoryRequest{Name: "Bodega Central", Type: "storage"}), http.StatusCreated, &sub)
	w.subID = sub.ID

	for _, code := range []string{"A-01", "B-01"} {
		var loc dto.LocatorResponse
		h.expect(t, h.do(t, http.MethodPost, "/organization/"+w.orgID+"/sub-inventory/"+w.subID+"/locator", h.admin,
			dto.LocatorRequest{Code: code}), http.StatusCreated, &loc)
		if w.locA == "" {
			w.locA = loc.ID
		} else {
			w.locB = loc.ID
		}
	}

	var cat dto.CategoryResponse
	h.expect(t, h.do(t, http.MethodPost, "/categories", h.admin,
		dto.CategoryRequest{Name: "Ferretería", SubInventoryID: &w.subID, LocatorID: &w.locA}), http.StatusCreated, &cat)
	w.catA = cat.ID
	h.expect(t, h.do(t, http.MethodPost, "/categories", h.admin,
		dto.CategoryRequest{Name: "Exhibición", SubInventoryID: &w.subID, LocatorID: &w.locB}), http.StatusCreated, &cat)
	w.catB = cat.ID
	return w
}

// product crea un producto por la API y devuelve su ID.
func (h *harness) product(t *testing.T, name string, price string, stock int, categoryID *string) string {
	t.Helper()
	var out dto.ProductResponse
	h.expect(t, h.do(t, http.MethodPost, "/products", h.admin, map[string]any{
		"name": name, "price": price, "stock": stock, "category_id": categoryID,
	}), http.StatusCreated, &out)
	return out.ID
}

func (h *harness) stockOf(t *testing.T, productID string) int {
	t.Helper()
	var out dto.ProductResponse
	h.expect(t, h.do(t, http.MethodGet, "/products/"+productID, "", nil), http.StatusOK, &out)
	return out.Stock
}
