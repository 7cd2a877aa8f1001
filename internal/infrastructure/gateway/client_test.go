package gateway_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waopos/fedo-reportes-api/internal/domain"
	"github.com/waopos/fedo-reportes-api/internal/infrastructure/gateway"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

// servidorGateway levanta un backend falso que captura el sobre recibido y
// responde el cuerpo indicado.
func servidorGateway(t *testing.T, status int, contentType, body string, captured *map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/TablaMiembros", r.URL.Path)
		if captured != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(captured))
		}
		if contentType != "" {
			w.Header().Set("Content-Type", contentType)
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

func clienteDe(srv *httptest.Server) *gateway.Client {
	return gateway.NewClient(srv.URL, "webhook-tareas", 5*time.Second)
}

// ──────────────────────────────────────────────────────────────────────────────
// Rows
// ──────────────────────────────────────────────────────────────────────────────

func TestRows_EnviaSobreConTablaYTipo(t *testing.T) {
	var sobre map[string]any
	srv := servidorGateway(t, 200, "application/json", `[]`, &sobre)
	defer srv.Close()

	_, err := clienteDe(srv).Rows(context.Background(), gateway.TablaImplementaciones, map[string]any{"filtro": "x"})
	require.NoError(t, err)

	assert.Equal(t, "implementaciondatos", sobre["Table"], "el sobre debe llevar la tabla")
	assert.Equal(t, "SQL", sobre["Type"], "el sobre siempre declara Type SQL")
	assert.Equal(t, map[string]any{"filtro": "x"}, sobre["Data"])
}

func TestRows_ArregloDeFilas(t *testing.T) {
	srv := servidorGateway(t, 200, "application/json", `[{"nombre":"Acme"},{"nombre":"Zenith"}]`, nil)
	defer srv.Close()

	rows, err := clienteDe(srv).Rows(context.Background(), gateway.TablaMiembros, nil)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Acme", rows[0]["nombre"])
}

// El backend a veces responde 200 con un objeto de error en lugar de un
// arreglo; el cliente lo trata como "sin filas", nunca como pánico.
func TestRows_RespuestaNoArreglo_DevuelveVacio(t *testing.T) {
	srv := servidorGateway(t, 200, "application/json", `{"error":"algo falló"}`, nil)
	defer srv.Close()

	rows, err := clienteDe(srv).Rows(context.Background(), gateway.TablaCertificaciones, nil)
	require.NoError(t, err)
	assert.Empty(t, rows, "un objeto en lugar de arreglo equivale a cero filas")
}

func TestRows_CuerpoVacio_DevuelveVacio(t *testing.T) {
	srv := servidorGateway(t, 200, "application/json", "", nil)
	defer srv.Close()

	rows, err := clienteDe(srv).Rows(context.Background(), gateway.TablaImplementaciones, nil)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestRows_ContenidoNoJSON_RetornaError(t *testing.T) {
	srv := servidorGateway(t, 200, "text/html", `<html>mantenimiento</html>`, nil)
	defer srv.Close()

	_, err := clienteDe(srv).Rows(context.Background(), gateway.TablaImplementaciones, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrGatewayUnavailable))
}

func TestRows_StatusNo2xx_RetornaError(t *testing.T) {
	srv := servidorGateway(t, 500, "application/json", `{"error":"interno"}`, nil)
	defer srv.Close()

	_, err := clienteDe(srv).Rows(context.Background(), gateway.TablaImplementaciones, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrGatewayUnavailable))
}

// ──────────────────────────────────────────────────────────────────────────────
// Object
// ──────────────────────────────────────────────────────────────────────────────

func TestObject_ObjetoDirecto(t *testing.T) {
	srv := servidorGateway(t, 200, "application/json", `{"success":true,"session_token":"abc"}`, nil)
	defer srv.Close()

	obj, err := clienteDe(srv).Object(context.Background(), gateway.TablaSolicitar2FA, map[string]any{"email": "a@b.c"})
	require.NoError(t, err)
	assert.Equal(t, "abc", obj["session_token"])
}

// Formato legado: los flujos de login devuelven un arreglo con un elemento.
func TestObject_ArregloTomaPrimerElemento(t *testing.T) {
	srv := servidorGateway(t, 200, "application/json", `[{"success":true,"sessionToken":"legacy"}]`, nil)
	defer srv.Close()

	obj, err := clienteDe(srv).Object(context.Background(), gateway.TablaSolicitar2FA, nil)
	require.NoError(t, err)
	assert.Equal(t, "legacy", obj["sessionToken"])
}

func TestObject_ArregloVacio_RetornaError(t *testing.T) {
	srv := servidorGateway(t, 200, "application/json", `[]`, nil)
	defer srv.Close()

	_, err := clienteDe(srv).Object(context.Background(), gateway.TablaSolicitar2FA, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrGatewayRejected))
}

// ──────────────────────────────────────────────────────────────────────────────
// CrearTarea
// ──────────────────────────────────────────────────────────────────────────────

func TestCrearTarea_PublicaEnWebhookDedicado(t *testing.T) {
	var path string
	var cuerpo map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&cuerpo))
		w.WriteHeader(200)
	}))
	defer srv.Close()

	cli := gateway.NewClient(srv.URL, "webhook-tareas", 5*time.Second)
	err := cli.CrearTarea(context.Background(), map[string]any{
		"formData":       map[string]any{"nombreCliente": "Acme", "rnc": "131456789"},
		"confirmaciones": map[string]any{"true": []string{"Firma electronica, archivo p12 y contraseña"}},
		"requisitos":     map[string]any{"true": []string{"Firmó propuesta"}},
		"nrcs":           []any{},
	})
	require.NoError(t, err)

	assert.Equal(t, "/webhook-tareas", path, "la tarea va al webhook dedicado, no a TablaMiembros")
	assert.Contains(t, cuerpo, "formData")
	assert.Contains(t, cuerpo, "confirmaciones")
	assert.Contains(t, cuerpo, "requisitos")
	assert.Contains(t, cuerpo, "nrcs")
}

func TestCrearTarea_StatusNo2xx_RetornaRechazo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(422)
	}))
	defer srv.Close()

	err := gateway.NewClient(srv.URL, "webhook-tareas", 5*time.Second).CrearTarea(context.Background(), map[string]any{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrGatewayRejected))
}

// ──────────────────────────────────────────────────────────────────────────────
// RNCClient
// ──────────────────────────────────────────────────────────────────────────────

func TestRNC_ResuelveRazonSocial(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/lookup-id/131456789", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"razonSocial":"Empresa ABC SRL","nombre":"otro"}`))
	}))
	defer srv.Close()

	cli := gateway.NewRNCClient(srv.URL, "lookup-id", 5*time.Second)
	nombre, err := cli.Buscar(context.Background(), "131456789")
	require.NoError(t, err)
	assert.Equal(t, "Empresa ABC SRL", nombre, "razonSocial tiene prioridad sobre nombre")
}

func TestRNC_FallbackNombreComercial(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"nombreComercial":"ABC"}`))
	}))
	defer srv.Close()

	nombre, err := gateway.NewRNCClient(srv.URL, "id", 5*time.Second).Buscar(context.Background(), "131456789")
	require.NoError(t, err)
	assert.Equal(t, "ABC", nombre)
}

func TestRNC_SinResultados(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	_, err := gateway.NewRNCClient(srv.URL, "id", 5*time.Second).Buscar(context.Background(), "131456789")
	assert.True(t, errors.Is(err, domain.ErrRNCNotFound))
}

func TestRNC_FormatoInvalido(t *testing.T) {
	cli := gateway.NewRNCClient("http://localhost", "id", time.Second)

	for _, rnc := range []string{"", "abc", "12345678", "123456789012", "13145678a"} {
		_, err := cli.Buscar(context.Background(), rnc)
		assert.True(t, errors.Is(err, domain.ErrRNCInvalid), "RNC %q debe rechazarse sin tocar la red", rnc)
	}
}
