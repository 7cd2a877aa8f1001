package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/waopos/fedo-reportes-api/internal/domain"
)

// rncPattern valida el formato del RNC: entre 9 y 11 dígitos.
var rncPattern = regexp.MustCompile(`^\d{9,11}$`)

// RNCClient consulta el servicio externo que resuelve un RNC a la razón
// social de la empresa.
type RNCClient struct {
	baseURL    string
	lookupID   string
	httpClient *http.Client
}

// NewRNCClient construye el cliente de consulta de RNC.
func NewRNCClient(baseURL, lookupID string, timeout time.Duration) *RNCClient {
	return &RNCClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		lookupID:   lookupID,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Buscar resuelve el nombre legal de la empresa para el RNC dado.
// El servicio responde con alguna de razonSocial, nombre o nombreComercial;
// se toma la primera presente. Sin ninguna de ellas se considera "sin
// resultados", que es un desenlace distinto a un error de red.
func (c *RNCClient) Buscar(ctx context.Context, rnc string) (string, error) {
	rnc = strings.TrimSpace(rnc)
	if !rncPattern.MatchString(rnc) {
		return "", domain.ErrRNCInvalid
	}

	url := fmt.Sprintf("%s/%s/%s", c.baseURL, c.lookupID, rnc)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("rnc: construir petición: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("rnc: %w: %v", domain.ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("rnc: status %d: %w", resp.StatusCode, domain.ErrGatewayUnavailable)
	}

	var data struct {
		RazonSocial     string `json:"razonSocial"`
		Nombre          string `json:"nombre"`
		NombreComercial string `json:"nombreComercial"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", fmt.Errorf("rnc: JSON inválido: %w", domain.ErrGatewayUnavailable)
	}

	switch {
	case data.RazonSocial != "":
		return data.RazonSocial, nil
	case data.Nombre != "":
		return data.Nombre, nil
	case data.NombreComercial != "":
		return data.NombreComercial, nil
	}
	return "", domain.ErrRNCNotFound
}
