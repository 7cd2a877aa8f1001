// Package gateway implementa los clientes HTTP hacia el backend de
// automatización (webhooks n8n) y el servicio externo de consulta de RNC.
//
// Todas las lecturas y escrituras de datos de negocio pasan por un único
// endpoint POST que acepta el sobre {Table, Type, Data} y responde un arreglo
// JSON de filas (o un objeto de error). Las tareas se crean por un webhook
// dedicado con cuerpo libre.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/waopos/fedo-reportes-api/internal/domain"
)

// Tablas conocidas del backend.
const (
	TablaMiembros         = "Miembros"
	TablaMiembroNU        = "MiembroNU"
	TablaImplementaciones = "implementaciondatos"
	TablaCertificaciones  = "certificaciones"
	TablaSolicitar2FA     = "Solicitar2FA"
	TablaCodigo           = "code"
	TablaDistribuidores   = "Distribuidores"
	TablaTecnicos         = "Tecnicos"
	TablaVendedores       = "Vendedores"
)

const queryPath = "/TablaMiembros"

// envelope es el sobre de toda consulta al backend.
type envelope struct {
	Table string         `json:"Table"`
	Type  string         `json:"Type"`
	Data  map[string]any `json:"Data,omitempty"`
}

// Client habla con el backend de automatización.
type Client struct {
	baseURL       string
	ticketWebhook string
	httpClient    *http.Client
}

// NewClient construye el cliente con el timeout indicado. El backend puede
// tardar varios segundos en resolver una consulta SQL, así que el timeout
// debe ser generoso.
func NewClient(baseURL, ticketWebhook string, timeout time.Duration) *Client {
	return &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		ticketWebhook: ticketWebhook,
		httpClient:    &http.Client{Timeout: timeout},
	}
}

// Rows consulta una tabla y devuelve las filas como mapas laxos.
//
// Contrato defensivo observado del backend:
//   - cuerpo vacío            => lista vacía
//   - respuesta no-arreglo    => lista vacía (a veces devuelve un objeto de error con 200)
//   - contenido no JSON       => error
func (c *Client) Rows(ctx context.Context, table string, data map[string]any) ([]map[string]any, error) {
	decoded, err := c.query(ctx, table, data)
	if err != nil {
		return nil, err
	}
	arr, ok := decoded.([]any)
	if !ok {
		return []map[string]any{}, nil
	}
	rows := make([]map[string]any, 0, len(arr))
	for _, item := range arr {
		if m, ok := item.(map[string]any); ok {
			rows = append(rows, m)
		}
	}
	return rows, nil
}

// Object consulta una tabla esperando un objeto de respuesta. Si el backend
// devuelve un arreglo, se toma el primer elemento (formato legado de los
// flujos de login).
func (c *Client) Object(ctx context.Context, table string, data map[string]any) (map[string]any, error) {
	decoded, err := c.query(ctx, table, data)
	if err != nil {
		return nil, err
	}
	switch v := decoded.(type) {
	case map[string]any:
		return v, nil
	case []any:
		if len(v) > 0 {
			if m, ok := v[0].(map[string]any); ok {
				return m, nil
			}
		}
	}
	return nil, fmt.Errorf("gateway: respuesta sin objeto para tabla %s: %w", table, domain.ErrGatewayRejected)
}

func (c *Client) query(ctx context.Context, table string, data map[string]any) (any, error) {
	body, err := json.Marshal(envelope{Table: table, Type: "SQL", Data: data})
	if err != nil {
		return nil, fmt.Errorf("gateway: serializar sobre: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+queryPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("gateway: construir petición: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway: tabla %s: %w: %v", table, domain.ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("gateway: tabla %s: status %d: %w", table, resp.StatusCode, domain.ErrGatewayUnavailable)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("gateway: leer respuesta: %w", err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		// El backend responde 200 sin cuerpo cuando la consulta no produce filas.
		return []any{}, nil
	}

	ct := resp.Header.Get("Content-Type")
	if ct != "" && !strings.Contains(ct, "json") {
		return nil, fmt.Errorf("gateway: tabla %s: contenido inesperado %q: %w", table, ct, domain.ErrGatewayUnavailable)
	}

	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("gateway: tabla %s: JSON inválido: %w", table, domain.ErrGatewayUnavailable)
	}
	return decoded, nil
}

// CrearTarea envía el formulario de creación de tarea al webhook dedicado.
// El cuerpo es libre: {formData, confirmaciones, requisitos, nrcs}.
func (c *Client) CrearTarea(ctx context.Context, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("gateway: serializar tarea: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+c.ticketWebhook, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("gateway: construir petición: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("gateway: crear tarea: %w: %v", domain.ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("gateway: crear tarea: status %d: %w", resp.StatusCode, domain.ErrGatewayRejected)
	}
	return nil
}
