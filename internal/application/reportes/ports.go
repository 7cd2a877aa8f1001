package reportes

import (
	"context"
	"time"

	"github.com/waopos/fedo-reportes-api/internal/application/dto"
)

// Gateway define el puerto de salida hacia el backend de automatización.
// La implementación concreta es el cliente HTTP; para tests se inyecta un fake.
type Gateway interface {
	Rows(ctx context.Context, table string, data map[string]any) ([]map[string]any, error)
}

// Exportador define el puerto hacia los generadores de archivos. Recibe el
// conjunto filtrado SIN paginar y devuelve el contenido y su content type.
type Exportador interface {
	Implementaciones(formato string, items []dto.ImplementacionItem, generado time.Time) (contenido []byte, contentType string, err error)
	Certificaciones(formato string, items []dto.CertificacionItem, generado time.Time) (contenido []byte, contentType string, err error)
}
