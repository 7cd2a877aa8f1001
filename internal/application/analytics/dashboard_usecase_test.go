package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waopos/fedo-reportes-api/internal/application/dto"
	"github.com/waopos/fedo-reportes-api/internal/domain"
	"github.com/waopos/fedo-reportes-api/internal/domain/entity"
	"github.com/waopos/fedo-reportes-api/pkg/logger"
)

type fuenteFija struct {
	registros []entity.Registro
	fallback  bool
}

func (f *fuenteFija) CargarImplementaciones(context.Context) ([]entity.Registro, bool) {
	return f.registros, f.fallback
}

func TestGenerarDashboard(t *testing.T) {
	fuente := &fuenteFija{registros: []entity.Registro{
		{EmpresaNombre: "A", FechaContratacion: "2025-08-15", TecnicoNombre: "Gabriel Santos", Estado: "Completado", Certificacion: "Paso 15 Finalización"},
		{EmpresaNombre: "B", FechaContratacion: "2025-08-20", TecnicoNombre: "Gabriel Santos", Estado: "En implementación"},
	}}
	uc := NewUseCase(fuente, logger.Nop())
	uc.ahora = func() time.Time { return time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC) }

	resp := uc.Generar(context.Background(), "")
	assert.Equal(t, 2, resp.TotalRegistros)
	assert.False(t, resp.UsandoDatosFallback)
	assert.Equal(t, []string{"2025-08"}, resp.ImplementacionesPorMes.Claves)
	assert.Equal(t, []string{"Gabriel Santos"}, resp.PorTecnico.Etiquetas)
	assert.Equal(t, EtapasOrdenadas, resp.PorCertificacion.Etiquetas)
}

func TestGenerarDashboardConFallback(t *testing.T) {
	fuente := &fuenteFija{registros: []entity.Registro{{EmpresaNombre: "Ejemplo"}}, fallback: true}
	uc := NewUseCase(fuente, logger.Nop())

	resp := uc.Generar(context.Background(), "")
	assert.True(t, resp.UsandoDatosFallback)
}

func TestDetalle(t *testing.T) {
	fuente := &fuenteFija{registros: []entity.Registro{
		{EmpresaNombre: "A", FechaContratacion: "2025-08-15"},
	}}
	uc := NewUseCase(fuente, logger.Nop())

	resp, err := uc.Detalle(context.Background(), dto.DetalleRequest{Dimension: DimensionMes, Clave: "2025-08"})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
	assert.Equal(t, "A", resp.Filas[0].Nombre)

	_, err = uc.Detalle(context.Background(), dto.DetalleRequest{Dimension: "inexistente"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
