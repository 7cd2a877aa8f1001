package analytics

import (
	"context"
	"sync"
	"time"

	"github.com/waopos/fedo-reportes-api/internal/application/dto"
	"github.com/waopos/fedo-reportes-api/internal/domain/entity"
	"github.com/waopos/fedo-reportes-api/pkg/logger"
)

// Fuente entrega los registros normalizados sobre los que se calcula el
// tablero. La implementa el caso de uso de reportes, que ya resuelve la
// carga del backend y el fallback a datos de ejemplo.
type Fuente interface {
	CargarImplementaciones(ctx context.Context) ([]entity.Registro, bool)
}

// UseCase calcula los datasets del tablero y el drill-down.
type UseCase struct {
	fuente Fuente
	log    *logger.Logger
	ahora  func() time.Time // inyectable para tests
}

// NewUseCase construye el caso de uso del tablero.
func NewUseCase(fuente Fuente, log *logger.Logger) *UseCase {
	return &UseCase{fuente: fuente, log: log, ahora: time.Now}
}

// Generar arma la respuesta completa del tablero. Las series se calculan en
// paralelo sobre el mismo snapshot de registros; cada goroutine escribe
// campos disjuntos de la respuesta.
func (uc *UseCase) Generar(ctx context.Context, periodo string) *dto.DashboardResponse {
	registros, fallback := uc.fuente.CargarImplementaciones(ctx)
	ahora := uc.ahora()

	resp := &dto.DashboardResponse{
		TotalRegistros:      len(registros),
		UsandoDatosFallback: fallback,
	}

	var wg sync.WaitGroup
	wg.Add(4)
	go func() {
		defer wg.Done()
		resp.ImplementacionesPorMes = SerieImplementacionesPorMes(registros)
	}()
	go func() {
		defer wg.Done()
		resp.PorTecnico = SeriePorTecnico(registros)
		resp.PorVendedor = SeriePorVendedor(registros)
	}()
	go func() {
		defer wg.Done()
		resp.PorEstado = SeriePorEstado(registros)
		resp.PorCertificacion = SeriePorCertificacion(registros)
	}()
	go func() {
		defer wg.Done()
		resp.MontosPorMes = SerieMontosPorMes(registros, periodo, ahora)
		resp.AbonosPorMes = SerieAbonosPorMes(registros, periodo, ahora)
	}()
	wg.Wait()

	return resp
}

// Detalle devuelve las filas que aportaron al elemento de gráfico pedido.
func (uc *UseCase) Detalle(ctx context.Context, req dto.DetalleRequest) (*dto.DetalleResponse, error) {
	registros, _ := uc.fuente.CargarImplementaciones(ctx)

	filas, err := FilasDeDetalle(registros, req.Dimension, req.Clave)
	if err != nil {
		return nil, err
	}
	return &dto.DetalleResponse{
		Dimension: req.Dimension,
		Clave:     req.Clave,
		Total:     len(filas),
		Filas:     filas,
	}, nil
}
