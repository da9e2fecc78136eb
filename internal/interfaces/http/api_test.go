package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-ledger/internal/app"
	apphttp "github.com/jhoicas/Inventario-ledger/internal/interfaces/http"
	"github.com/jhoicas/Inventario-ledger/internal/infrastructure/storage"
	"github.com/jhoicas/Inventario-ledger/pkg/logger"
)

// newTestAPI levanta la API completa sobre SQLite en memoria.
func newTestAPI(t *testing.T, jwtSecret string) *fiber.App {
	t.Helper()
	store, err := storage.OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	svc := app.NewServices(store, "Inventario Test")
	fiberApp := fiber.New()
	apphttp.Router(fiberApp, apphttp.RouterDeps{
		ProductUC:   svc.Products,
		LocationUC:  svc.Locations,
		DashboardUC: svc.Dashboard,
		MovementUC:  svc.Movements,
		StockUC:     svc.Stock,
		ReportUC:    svc.Reports,
		JWTSecret:   jwtSecret,
		Logger:      logger.Nop(),
	})
	return fiberApp
}

func call(t *testing.T, a *fiber.App, method, path string, body any, auth string) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := a.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]any{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return resp.StatusCode, out
}

func seedCatalog(t *testing.T, a *fiber.App, auth string) {
	t.Helper()
	for _, p := range []map[string]any{
		{"product_id": "P1", "name": "Laptop", "unit_price": "1000"},
		{"product_id": "P2", "name": "Mouse", "unit_price": "25.5"},
	} {
		status, _ := call(t, a, http.MethodPost, "/api/products", p, auth)
		require.Equal(t, http.StatusCreated, status)
	}
	for _, l := range []map[string]any{
		{"location_id": "WH", "name": "Bodega Central"},
		{"location_id": "S1", "name": "Tienda Norte"},
	} {
		status, _ := call(t, a, http.MethodPost, "/api/locations", l, auth)
		require.Equal(t, http.StatusCreated, status)
	}
}

func TestAPI_MovimientosYStock(t *testing.T) {
	a := newTestAPI(t, "")
	seedCatalog(t, a, "")

	status, body := call(t, a, http.MethodPost, "/api/movements",
		map[string]any{"product_id": "P1", "to_location": "WH", "qty": 50}, "")
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "STOCK_IN", body["type"])
	assert.Equal(t, "Laptop", body["product_name"])

	status, body = call(t, a, http.MethodPost, "/api/movements",
		map[string]any{"product_id": "P1", "from_location": "WH", "to_location": "S1", "qty": 20}, "")
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "TRANSFER", body["type"])
	transferID := body["movement_id"].(string)

	status, body = call(t, a, http.MethodGet, "/api/stock?product_id=P1&location_id=WH", nil, "")
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 30, body["qty"])

	status, body = call(t, a, http.MethodGet, "/api/stock?product_id=P1&location_id=WH&exclude_movement_id="+transferID, nil, "")
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 50, body["qty"])

	// Salida mayor que el disponible: 409 con el detalle.
	status, body = call(t, a, http.MethodPost, "/api/movements",
		map[string]any{"product_id": "P1", "from_location": "S1", "qty": 21}, "")
	require.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", body["code"])
	details := body["details"].(map[string]any)
	assert.EqualValues(t, 20, details["available"])
	assert.EqualValues(t, 21, details["requested"])

	// Editar el traslado a 45 mide el disponible sin la versión anterior (50).
	status, body = call(t, a, http.MethodPut, "/api/movements/"+transferID, map[string]any{"qty": 45}, "")
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 45, body["qty"])

	status, _ = call(t, a, http.MethodPut, "/api/movements/"+transferID, map[string]any{"qty": 51}, "")
	assert.Equal(t, http.StatusConflict, status)

	status, body = call(t, a, http.MethodGet, "/api/stock?product_id=P1&location_id=WH", nil, "")
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 5, body["qty"])
}

func TestAPI_ValidacionesDeMovimiento(t *testing.T) {
	a := newTestAPI(t, "")
	seedCatalog(t, a, "")

	status, body := call(t, a, http.MethodPost, "/api/movements", map[string]any{"product_id": "P1", "qty": 1}, "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "MISSING_LOCATION", body["code"])

	status, body = call(t, a, http.MethodPost, "/api/movements", map[string]any{"product_id": "P1", "to_location": "WH", "qty": 0}, "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", body["code"])

	status, body = call(t, a, http.MethodPost, "/api/movements", map[string]any{"product_id": "P1", "to_location": "WH", "qty": int64(1) << 40}, "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", body["code"])

	status, _ = call(t, a, http.MethodPost, "/api/movements", map[string]any{"product_id": "NOPE", "to_location": "WH", "qty": 1}, "")
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = call(t, a, http.MethodPost, "/api/movements", map[string]any{"product_id": "P1", "to_location": "NOPE", "qty": 1}, "")
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = call(t, a, http.MethodGet, "/api/stock?product_id=P1", nil, "")
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = call(t, a, http.MethodGet, "/api/movements/NOPE", nil, "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAPI_BorradoProtegidoPorMovimientos(t *testing.T) {
	a := newTestAPI(t, "")
	seedCatalog(t, a, "")

	status, body := call(t, a, http.MethodPost, "/api/movements",
		map[string]any{"product_id": "P1", "to_location": "WH", "qty": 5}, "")
	require.Equal(t, http.StatusCreated, status)
	movementID := body["movement_id"].(string)

	status, body = call(t, a, http.MethodDelete, "/api/products/P1", nil, "")
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "IN_USE", body["code"])

	status, _ = call(t, a, http.MethodDelete, "/api/locations/WH", nil, "")
	assert.Equal(t, http.StatusConflict, status)

	status, _ = call(t, a, http.MethodDelete, "/api/locations/S1", nil, "")
	assert.Equal(t, http.StatusNoContent, status)

	status, _ = call(t, a, http.MethodDelete, "/api/movements/"+movementID, nil, "")
	require.Equal(t, http.StatusNoContent, status)

	status, _ = call(t, a, http.MethodDelete, "/api/products/P1", nil, "")
	assert.Equal(t, http.StatusNoContent, status)
	status, _ = call(t, a, http.MethodGet, "/api/products/P1", nil, "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAPI_ReporteDeBalance(t *testing.T) {
	a := newTestAPI(t, "")
	seedCatalog(t, a, "")
	for _, m := range []map[string]any{
		{"product_id": "P2", "to_location": "S1", "qty": 4},
		{"product_id": "P1", "to_location": "WH", "qty": 10},
		{"product_id": "P1", "to_location": "S1", "qty": 2},
		{"product_id": "P2", "to_location": "WH", "qty": 3},
		{"product_id": "P2", "from_location": "WH", "qty": 3},
	} {
		status, _ := call(t, a, http.MethodPost, "/api/movements", m, "")
		require.Equal(t, http.StatusCreated, status)
	}

	status, body := call(t, a, http.MethodGet, "/api/reports/balance", nil, "")
	require.Equal(t, http.StatusOK, status)
	lines := body["lines"].([]any)
	require.Len(t, lines, 3)

	type cell struct{ product, location string }
	var got []cell
	for _, l := range lines {
		m := l.(map[string]any)
		got = append(got, cell{m["product_id"].(string), m["location_id"].(string)})
	}
	// Laptop antes que Mouse; Bodega Central antes que Tienda Norte; Mouse@WH quedó en cero.
	assert.Equal(t, []cell{{"P1", "WH"}, {"P1", "S1"}, {"P2", "S1"}}, got)
	assert.EqualValues(t, 16, body["total_qty"])
	assert.Equal(t, "12102", body["total_value"])
}

func TestAPI_ExportarBalance(t *testing.T) {
	a := newTestAPI(t, "")
	seedCatalog(t, a, "")

	req := httptest.NewRequest(http.MethodGet, "/api/reports/balance/export?format=xml", nil)
	resp, err := a.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/xml", resp.Header.Get("Content-Type"))
	raw, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(raw), "<BalanceReport")

	req = httptest.NewRequest(http.MethodGet, "/api/reports/balance/export", nil)
	resp, err = a.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))

	status, body := call(t, a, http.MethodGet, "/api/reports/balance/export?format=csv", nil, "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", body["code"])
}

func TestAPI_ListadoYBusqueda(t *testing.T) {
	a := newTestAPI(t, "")
	seedCatalog(t, a, "")

	status, body := call(t, a, http.MethodGet, "/api/products?q=mou", nil, "")
	require.Equal(t, http.StatusOK, status)
	items := body["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "P2", items[0].(map[string]any)["product_id"])

	status, body = call(t, a, http.MethodGet, "/api/locations?limit=1", nil, "")
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["items"].([]any), 1)
	assert.EqualValues(t, 2, body["page"].(map[string]any)["total"])

	status, _ = call(t, a, http.MethodPost, "/api/products", map[string]any{"product_id": "P1", "name": "Otra"}, "")
	assert.Equal(t, http.StatusConflict, status)

	status, body = call(t, a, http.MethodGet, "/api/dashboard", nil, "")
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 2, body["total_products"])
	assert.EqualValues(t, 2, body["total_locations"])
}

func TestAPI_EscriturasExigenToken(t *testing.T) {
	a := newTestAPI(t, testJWTSecret)
	admin := tokenForRole(t, apphttp.RoleAdmin)
	bodeguero := tokenForRole(t, apphttp.RoleBodeguero)

	status, _ := call(t, a, http.MethodPost, "/api/products", map[string]any{"product_id": "P1", "name": "Laptop"}, "")
	assert.Equal(t, http.StatusUnauthorized, status)

	seedCatalog(t, a, bodeguero)

	status, _ = call(t, a, http.MethodGet, "/api/products", nil, "")
	assert.Equal(t, http.StatusOK, status)

	status, _ = call(t, a, http.MethodDelete, "/api/locations/S1", nil, bodeguero)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = call(t, a, http.MethodDelete, "/api/locations/S1", nil, admin)
	assert.Equal(t, http.StatusNoContent, status)
}
