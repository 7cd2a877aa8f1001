package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waopos/fedo-reportes-api/internal/application/analytics"
	"github.com/waopos/fedo-reportes-api/internal/application/auth"
	"github.com/waopos/fedo-reportes-api/internal/application/personal"
	"github.com/waopos/fedo-reportes-api/internal/application/reportes"
	"github.com/waopos/fedo-reportes-api/internal/application/tareas"
	"github.com/waopos/fedo-reportes-api/internal/domain"
	"github.com/waopos/fedo-reportes-api/internal/domain/entity"
	"github.com/waopos/fedo-reportes-api/internal/infrastructure/export"
	"github.com/waopos/fedo-reportes-api/internal/infrastructure/sqlite"
	apphttp "github.com/waopos/fedo-reportes-api/internal/interfaces/http"
	"github.com/waopos/fedo-reportes-api/pkg/config"
	pkgjwt "github.com/waopos/fedo-reportes-api/pkg/jwt"
	"github.com/waopos/fedo-reportes-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// gatewayDePrueba cubre los tres puertos hacia el backend con respuestas
// preparadas por tabla.
type gatewayDePrueba struct {
	filas    map[string][]map[string]any
	objetos  map[string]map[string]any
	rowsErr  error
	tareaErr error
}

func (g *gatewayDePrueba) Rows(_ context.Context, table string, _ map[string]any) ([]map[string]any, error) {
	if g.rowsErr != nil {
		return nil, g.rowsErr
	}
	return g.filas[table], nil
}

func (g *gatewayDePrueba) Object(_ context.Context, table string, _ map[string]any) (map[string]any, error) {
	return g.objetos[table], nil
}

func (g *gatewayDePrueba) CrearTarea(context.Context, any) error {
	return g.tareaErr
}

type buscadorDePrueba struct {
	razon string
	err   error
}

func (b *buscadorDePrueba) Buscar(context.Context, string) (string, error) {
	return b.razon, b.err
}

// appDePrueba levanta la API completa sobre un store SQLite en memoria y el
// gateway de prueba, y devuelve además un Bearer token de una sesión viva.
func appDePrueba(t *testing.T, gw *gatewayDePrueba) (*fiber.App, string) {
	t.Helper()

	db, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	log := logger.Nop()
	sesiones := sqlite.NewSesionRepository(db)
	cfgJWT := config.JWTConfig{Secret: testJWTSecret, Issuer: testIssuer}
	cfgSes := config.SessionConfig{TTL: 8 * time.Hour, RefreshAt: 7 * time.Hour, OTPTTL: 5 * time.Minute, OTPAttempts: 3}

	authUC := auth.NewUseCase(gw, sesiones, cfgJWT, cfgSes, log)
	reportesUC := reportes.NewUseCase(gw, export.NewService(), log)
	dashboardUC := analytics.NewUseCase(reportesUC, log)
	personalUC := personal.NewUseCase(gw, sqlite.NewMiembroRepository(db), log)
	tareasUC := tareas.NewUseCase(gw, &buscadorDePrueba{razon: "COMERCIAL DUARTE SRL"}, sqlite.NewTicketRepository(db), log)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:      authUC,
		ReportesUC:  reportesUC,
		DashboardUC: dashboardUC,
		PersonalUC:  personalUC,
		TareasUC:    tareasUC,
		JWTSecret:   testJWTSecret,
	})

	sesion := &entity.Sesion{ID: testSessionID, Email: testEmail, CreadaEn: time.Now()}
	require.NoError(t, sesiones.GuardarSesion(context.Background(), sesion))
	tok, err := pkgjwt.Generate(testJWTSecret, sesion.ID, testMiembroID, testEmail, testIssuer, 8*time.Hour)
	require.NoError(t, err)

	return app, "Bearer " + tok
}

func get(t *testing.T, app *fiber.App, path, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func post(t *testing.T, app *fiber.App, path, token, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de rutas
// ──────────────────────────────────────────────────────────────────────────────

func TestRutasProtegidasSinToken(t *testing.T) {
	app, _ := appDePrueba(t, &gatewayDePrueba{})

	for _, path := range []string{
		"/api/v1/reportes/implementaciones",
		"/api/v1/dashboard",
		"/api/v1/personal/",
		"/api/v1/tickets/",
	} {
		resp := get(t, app, path, "")
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "ruta %s", path)
	}
}

func TestListarImplementacionesHTTP(t *testing.T) {
	gw := &gatewayDePrueba{filas: map[string][]map[string]any{
		"implementaciondatos": {
			{"nombreempresapadre": "Comercial Duarte SRL", "rncempresapadre": "131045679"},
		},
	}}
	app, token := appDePrueba(t, gw)

	resp := get(t, app, "/api/v1/reportes/implementaciones", token)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Items []map[string]any `json:"items"`
		UDF   bool             `json:"usando_datos_fallback"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Items, 1)
	assert.Equal(t, "Comercial Duarte SRL", body.Items[0]["empresa"])
	assert.False(t, body.UDF)
}

func TestImplementacionesConBackendCaidoHTTP(t *testing.T) {
	app, token := appDePrueba(t, &gatewayDePrueba{rowsErr: domain.ErrGatewayUnavailable})

	resp := get(t, app, "/api/v1/reportes/implementaciones", token)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode, "el backend caído no rompe la vista")

	var body struct {
		UDF bool `json:"usando_datos_fallback"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.UDF)
}

func TestExportarImplementacionesHTTP(t *testing.T) {
	gw := &gatewayDePrueba{filas: map[string][]map[string]any{
		"implementaciondatos": {{"nombreempresapadre": "Comercial Duarte SRL"}},
	}}
	app, token := appDePrueba(t, gw)

	resp := get(t, app, "/api/v1/reportes/implementaciones/export?formato=csv", token)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "implementaciones_")

	resp = get(t, app, "/api/v1/reportes/implementaciones/export?formato=docx", token)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDashboardHTTP(t *testing.T) {
	gw := &gatewayDePrueba{filas: map[string][]map[string]any{
		"implementaciondatos": {
			{"nombreempresapadre": "Comercial Duarte SRL", "fecha_contratacion": "2025-08-15"},
		},
	}}
	app, token := appDePrueba(t, gw)

	resp := get(t, app, "/api/v1/dashboard", token)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.EqualValues(t, 1, body["total_registros"])

	resp = get(t, app, "/api/v1/dashboard/detalle?dimension=otra&clave=x", token)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestFlujoDeLoginHTTP(t *testing.T) {
	gw := &gatewayDePrueba{objetos: map[string]map[string]any{
		"Solicitar2FA": {"session_token": "tok-abc"},
		"code": {
			"success":  true,
			"userInfo": map[string]any{"miembroID": "m-1", "nombre": "Usuario", "email": testEmail},
		},
	}}
	app, _ := appDePrueba(t, gw)

	resp := post(t, app, "/api/v1/auth/login", "", `{"email":"usuario@fedo.do","password":"secreta123","captcha":"tok"}`)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var login struct {
		PendienteID string `json:"pendiente_id"`
		Segundos    int    `json:"segundos_restantes"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&login))
	assert.Equal(t, 300, login.Segundos)

	resp = post(t, app, "/api/v1/auth/verificar", "", `{"pendiente_id":"`+login.PendienteID+`","codigo":"123456"}`)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var verificar struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&verificar))
	require.NotEmpty(t, verificar.Token)

	// El token emitido abre las rutas protegidas.
	protegida := get(t, app, "/api/v1/dashboard", "Bearer "+verificar.Token)
	protegida.Body.Close()
	assert.Equal(t, http.StatusOK, protegida.StatusCode)
}

func TestCicloDeTicketHTTP(t *testing.T) {
	app, token := appDePrueba(t, &gatewayDePrueba{})

	resp := post(t, app, "/api/v1/tickets/", token, `{"titulo":"Impresora sin conexión","prioridad":"Alta"}`)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var ticket struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&ticket))

	lista := get(t, app, "/api/v1/tickets/", token)
	defer lista.Body.Close()
	require.Equal(t, http.StatusOK, lista.StatusCode)

	var items []map[string]any
	require.NoError(t, json.NewDecoder(lista.Body).Decode(&items))
	require.Len(t, items, 1)
	assert.Equal(t, ticket.ID, items[0]["id"])
}

func TestBuscarRNCHTTP(t *testing.T) {
	app, token := appDePrueba(t, &gatewayDePrueba{})

	resp := get(t, app, "/api/v1/tareas/rnc/131045679", token)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "COMERCIAL DUARTE SRL", body["razon_social"])
}

func TestCrearTareaHTTP(t *testing.T) {
	app, token := appDePrueba(t, &gatewayDePrueba{})

	resp := post(t, app, "/api/v1/tareas", token,
		`{"formData":{"nombreCliente":"Comercial Duarte SRL","rnc":"131045679"},"confirmaciones":["accesoPortal"],"requisitos":[]}`)
	resp.Body.Close()
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)

	resp = post(t, app, "/api/v1/tareas", token, `{"formData":{"rnc":"131045679"}}`)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
