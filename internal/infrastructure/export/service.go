package export

import (
	"fmt"
	"time"

	"github.com/waopos/fedo-reportes-api/internal/application/dto"
	"github.com/waopos/fedo-reportes-api/internal/domain"
)

// Content types de los formatos soportados.
const (
	tipoCSV  = "text/csv; charset=utf-8"
	tipoXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	tipoHTML = "text/html; charset=utf-8"
	tipoPDF  = "application/pdf"
)

// Service agrupa los generadores de archivos detrás de un único punto de
// entrada que despacha por formato.
type Service struct{}

// NewService crea el servicio de exportación.
func NewService() *Service {
	return &Service{}
}

// Implementaciones genera el reporte de implementaciones en el formato pedido.
func (s *Service) Implementaciones(formato string, items []dto.ImplementacionItem, generado time.Time) ([]byte, string, error) {
	switch formato {
	case "csv":
		contenido, err := ImplementacionesCSV(items)
		return contenido, tipoCSV, err
	case "xlsx":
		contenido, err := ImplementacionesXLSX(items)
		return contenido, tipoXLSX, err
	case "html":
		contenido, err := ImplementacionesHTML(items, generado)
		return contenido, tipoHTML, err
	case "pdf":
		contenido, err := ImplementacionesPDF(items, generado)
		return contenido, tipoPDF, err
	default:
		return nil, "", fmt.Errorf("%w: formato %q no soportado", domain.ErrInvalidInput, formato)
	}
}

// Certificaciones genera el reporte de certificaciones en el formato pedido.
func (s *Service) Certificaciones(formato string, items []dto.CertificacionItem, generado time.Time) ([]byte, string, error) {
	switch formato {
	case "csv":
		contenido, err := CertificacionesCSV(items)
		return contenido, tipoCSV, err
	case "xlsx":
		contenido, err := CertificacionesXLSX(items)
		return contenido, tipoXLSX, err
	case "html":
		contenido, err := CertificacionesHTML(items, generado)
		return contenido, tipoHTML, err
	case "pdf":
		contenido, err := CertificacionesPDF(items, generado)
		return contenido, tipoPDF, err
	default:
		return nil, "", fmt.Errorf("%w: formato %q no soportado", domain.ErrInvalidInput, formato)
	}
}
