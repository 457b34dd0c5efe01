package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invorya/bodega-api/internal/application/usecase"
	"github.com/invorya/bodega-api/internal/infrastructure/jsonfile"
	"github.com/invorya/bodega-api/internal/infrastructure/pdf"
	apphttp "github.com/invorya/bodega-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// buildTestApp arma la aplicación completa sobre el backend de archivo en un
// directorio temporal: mismas rutas y mismos casos de uso que producción.
func buildTestApp(t *testing.T) *fiber.App {
	t.Helper()
	dir := t.TempDir()
	store, err := jsonfile.NewStore(
		filepath.Join(dir, "goods.json"),
		filepath.Join(dir, "history.json"),
	)
	require.NoError(t, err)

	goodsRepo := jsonfile.NewGoodsRepository(store)
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		GoodsUC:   usecase.NewGoodsUseCase(goodsRepo, jsonfile.NewTxRunner(store)),
		HistoryUC: usecase.NewHistoryUseCase(jsonfile.NewHistoryRepository(store)),
		ReportUC:  usecase.NewReportUseCase(goodsRepo, pdf.NewMarotoReportGenerator()),
	})
	return app
}

// doJSON lanza una petición con cuerpo JSON opcional y devuelve el status y
// el cuerpo decodificado como mapa.
func doJSON(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var decoded map[string]any
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded), "cuerpo: %s", raw)
	}
	return resp.StatusCode, decoded
}

func goodsField(t *testing.T, body map[string]any, field string) any {
	t.Helper()
	g, ok := body["goods"].(map[string]any)
	require.True(t, ok, "la respuesta debe envolver la mercancía en goods: %v", body)
	return g[field]
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario completo: crear → entrada → salida rechazada → salida → stock bajo
// ──────────────────────────────────────────────────────────────────────────────

func TestCicloDeVidaDeUnaMercancia(t *testing.T) {
	app := buildTestApp(t)

	// Crear sin cantidad: nace con 0.
	status, body := doJSON(t, app, http.MethodPost, "/api/goods",
		`{"name":"Widget","price":9.5,"location":"A1"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])
	assert.EqualValues(t, 1, goodsField(t, body, "id"))
	assert.Equal(t, "1", goodsField(t, body, "_id"))
	assert.EqualValues(t, 0, goodsField(t, body, "quantity"))
	assert.EqualValues(t, 9.5, goodsField(t, body, "price"),
		"price debe serializarse como número JSON, no como string")

	// Entrada de 10.
	status, body = doJSON(t, app, http.MethodPost, "/api/goods/1/stock_in",
		`{"quantity":10,"notes":"primera reposición"}`)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 10, goodsField(t, body, "quantity"))
	assert.EqualValues(t, 10, goodsField(t, body, "stock"))

	// Salida de 15: insuficiente, 400 y nada cambia.
	status, body = doJSON(t, app, http.MethodPost, "/api/goods/1/stock_out",
		`{"quantity":15}`)
	require.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body["error"], "stock insuficiente")
	assert.Contains(t, body["error"], "stock actual: 10")

	// Salida de 10: queda en 0.
	status, body = doJSON(t, app, http.MethodPost, "/api/goods/1/stock_out",
		`{"quantity":10}`)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 0, goodsField(t, body, "quantity"))

	// Con min_quantity 0 y cantidad 0, el umbral inclusivo la incluye.
	status, body = doJSON(t, app, http.MethodGet, "/api/goods/low_stock", "")
	require.Equal(t, http.StatusOK, status)
	low, ok := body["goods"].([]any)
	require.True(t, ok)
	require.Len(t, low, 1)
	assert.Equal(t, "Widget", low[0].(map[string]any)["name"])

	// El historial quedó con las dos operaciones efectivas, la más reciente
	// primero, con deltas con signo.
	status, body = doJSON(t, app, http.MethodGet, "/api/history", "")
	require.Equal(t, http.StatusOK, status)
	hist, ok := body["history"].([]any)
	require.True(t, ok)
	require.Len(t, hist, 2, "el rechazo por stock insuficiente no deja registro")
	first := hist[0].(map[string]any)
	second := hist[1].(map[string]any)
	assert.Equal(t, "stock-out", first["operation_type"])
	assert.EqualValues(t, -10, first["quantity"])
	assert.Equal(t, "stock-in", second["operation_type"])
	assert.EqualValues(t, 10, second["quantity"])
	assert.Equal(t, "primera reposición", second["notes"])
	assert.Equal(t, first["timestamp"], first["time"], "time es alias de timestamp")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests rutas de mercancías
// ──────────────────────────────────────────────────────────────────────────────

// La ruta alias devuelve el objeto pelado, sin envoltura {success, goods}.
func TestGetPorAlias_ObjetoPelado(t *testing.T) {
	app := buildTestApp(t)
	status, _ := doJSON(t, app, http.MethodPost, "/api/goods",
		`{"name":"cajas","price":3,"location":"B2"}`)
	require.Equal(t, http.StatusOK, status)

	status, body := doJSON(t, app, http.MethodGet, "/api/goods/by/_id/1", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "cajas", body["name"])
	assert.Equal(t, "1", body["_id"])
	_, wrapped := body["goods"]
	assert.False(t, wrapped, "la ruta alias no envuelve la respuesta")
}

func TestGoodsRutas_IdInexistenteODeforme(t *testing.T) {
	app := buildTestApp(t)

	status, body := doJSON(t, app, http.MethodGet, "/api/goods/by/_id/99", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "mercancía no encontrada", body["error"])

	// Un id no numérico no identifica nada: 404, no 500.
	status, _ = doJSON(t, app, http.MethodGet, "/api/goods/by/_id/abc", "")
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = doJSON(t, app, http.MethodDelete, "/api/goods/99", "")
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = doJSON(t, app, http.MethodPost, "/api/goods/99/stock_in", `{"quantity":5}`)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestGoodsCreate_ErroresDeValidacion(t *testing.T) {
	app := buildTestApp(t)

	status, body := doJSON(t, app, http.MethodPost, "/api/goods", `{"price":1,"location":"A1"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body["error"], "name")

	status, _ = doJSON(t, app, http.MethodPost, "/api/goods", `{esto no es json`)
	assert.Equal(t, http.StatusBadRequest, status)
}

// El cliente legado manda cantidades como string o con decimales; ambas
// formas se aceptan en la frontera.
func TestGoodsCreate_CoercionDeCantidades(t *testing.T) {
	app := buildTestApp(t)

	status, body := doJSON(t, app, http.MethodPost, "/api/goods",
		`{"name":"cajas","price":3,"location":"B2","quantity":"12"}`)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 12, goodsField(t, body, "quantity"))

	status, body = doJSON(t, app, http.MethodPost, "/api/goods",
		`{"name":"palets","price":3,"location":"B3","quantity":7.9}`)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 7, goodsField(t, body, "quantity"), "los decimales se truncan")
}

func TestGoodsUpdate_PorRutaDirectaYAlias(t *testing.T) {
	app := buildTestApp(t)
	status, _ := doJSON(t, app, http.MethodPost, "/api/goods",
		`{"name":"cajas","price":3,"location":"B2","quantity":4}`)
	require.Equal(t, http.StatusOK, status)

	status, body := doJSON(t, app, http.MethodPut, "/api/goods/1", `{"location":"C1"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "C1", goodsField(t, body, "location"))
	assert.EqualValues(t, 4, goodsField(t, body, "quantity"), "solo location cambió")

	status, body = doJSON(t, app, http.MethodPut, "/api/goods/by/_id/1", `{"stock":9}`)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 9, goodsField(t, body, "quantity"))
}

func TestGoodsSearch(t *testing.T) {
	app := buildTestApp(t)
	for _, payload := range []string{
		`{"name":"Tornillos M4","price":1,"location":"A1"}`,
		`{"name":"tuercas m4","price":1,"location":"A2"}`,
		`{"name":"Cajas","price":1,"location":"A3"}`,
	} {
		status, _ := doJSON(t, app, http.MethodPost, "/api/goods", payload)
		require.Equal(t, http.StatusOK, status)
	}

	status, body := doJSON(t, app, http.MethodGet, "/api/goods/search?q=M4", "")
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["goods"], 2)

	status, body = doJSON(t, app, http.MethodGet, "/api/goods/search?q=", "")
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["goods"], 3)
}

func TestGoodsLocationYPrice(t *testing.T) {
	app := buildTestApp(t)
	status, _ := doJSON(t, app, http.MethodPost, "/api/goods",
		`{"name":"cajas","price":3.75,"location":"B2"}`)
	require.Equal(t, http.StatusOK, status)

	status, body := doJSON(t, app, http.MethodGet, "/api/goods/1/location", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "B2", body["location"])
	assert.Equal(t, "cajas", body["name"])

	status, body = doJSON(t, app, http.MethodGet, "/api/goods/1/price", "")
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 3.75, body["price"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests rutas de historial
// ──────────────────────────────────────────────────────────────────────────────

func TestHistoryRutas(t *testing.T) {
	app := buildTestApp(t)
	status, _ := doJSON(t, app, http.MethodPost, "/api/goods",
		`{"name":"Widget","price":9.5,"location":"A1","quantity":20}`)
	require.Equal(t, http.StatusOK, status)
	status, _ = doJSON(t, app, http.MethodPost, "/api/goods",
		`{"name":"cajas","price":1,"location":"A2","quantity":20}`)
	require.Equal(t, http.StatusOK, status)

	for _, op := range []string{
		"/api/goods/1/stock_out", "/api/goods/2/stock_out", "/api/goods/1/stock_out",
	} {
		status, _ = doJSON(t, app, http.MethodPost, op, `{"quantity":1}`)
		require.Equal(t, http.StatusOK, status)
	}

	// Búsqueda por nombre de mercancía.
	status, body := doJSON(t, app, http.MethodGet, "/api/history/search?q=widget", "")
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["history"], 2)

	// Borrado individual: por ruta directa y por alias.
	status, body = doJSON(t, app, http.MethodDelete, "/api/history/1", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])
	rec, ok := body["record"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Widget", rec["goods_name"])

	status, _ = doJSON(t, app, http.MethodDelete, "/api/history/by/_id/2", "")
	require.Equal(t, http.StatusOK, status)

	status, body = doJSON(t, app, http.MethodDelete, "/api/history/99", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "registro no encontrado", body["error"])

	// Vaciar el resto.
	status, body = doJSON(t, app, http.MethodDelete, "/api/history/clear", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])

	status, body = doJSON(t, app, http.MethodGet, "/api/history", "")
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, body["history"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests CORS
// ──────────────────────────────────────────────────────────────────────────────

// La API es de origen cruzado: toda respuesta bajo /api lleva el encabezado
// de CORS, y el preflight OPTIONS se responde sin pasar por los handlers.
func TestCORSEnRutasDeAPI(t *testing.T) {
	app := buildTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/goods", nil)
	req.Header.Set("Origin", "http://panel.bodega.local")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

	pre := httptest.NewRequest(http.MethodOptions, "/api/goods/1/stock_in", nil)
	pre.Header.Set("Origin", "http://panel.bodega.local")
	pre.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp, err = app.Test(pre, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Methods"), http.MethodPost)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests reporte PDF
// ──────────────────────────────────────────────────────────────────────────────

func TestReporteDeInventarioPDF(t *testing.T) {
	app := buildTestApp(t)
	status, _ := doJSON(t, app, http.MethodPost, "/api/goods",
		`{"name":"cajas","price":3,"location":"B2","quantity":4}`)
	require.Equal(t, http.StatusOK, status)

	req := httptest.NewRequest(http.MethodGet, "/api/goods/report", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "inventario.pdf")

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "%PDF"),
		"el cuerpo debe ser un documento PDF")
}
