package reportes

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/waopos/fedo-reportes-api/internal/application/dto"
	"github.com/waopos/fedo-reportes-api/internal/domain"
	"github.com/waopos/fedo-reportes-api/internal/domain/entity"
	"github.com/waopos/fedo-reportes-api/internal/infrastructure/gateway"
	"github.com/waopos/fedo-reportes-api/pkg/logger"
)

// UseCase orquesta las tablas de reportes: carga del backend, normalización,
// filtros, paginación y exportación.
type UseCase struct {
	gw    Gateway
	exp   Exportador
	log   *logger.Logger
	ahora func() time.Time // inyectable para tests
}

// NewUseCase construye el caso de uso de reportes.
func NewUseCase(gw Gateway, exp Exportador, log *logger.Logger) *UseCase {
	return &UseCase{gw: gw, exp: exp, log: log, ahora: time.Now}
}

// CargarImplementaciones trae y normaliza la tabla de implementaciones. Un
// fallo del backend no rompe la vista: se sirve el dataset de ejemplo con la
// bandera de fallback encendida.
func (uc *UseCase) CargarImplementaciones(ctx context.Context) ([]entity.Registro, bool) {
	filas, err := uc.gw.Rows(ctx, gateway.TablaImplementaciones, nil)
	if err != nil {
		uc.log.Warn().Err(err).Msg("implementaciones: backend no disponible, usando datos de ejemplo")
		return DatosDeEjemplo(), true
	}
	return NormalizarImplementaciones(filas), false
}

// CargarCertificaciones trae y normaliza la tabla de certificaciones. Además
// del fallo de red, una respuesta vacía también activa el fallback: el flujo
// de certificaciones nunca devuelve legítimamente cero empresas.
func (uc *UseCase) CargarCertificaciones(ctx context.Context) ([]entity.Registro, bool) {
	filas, err := uc.gw.Rows(ctx, gateway.TablaCertificaciones, nil)
	if err != nil || len(filas) == 0 {
		if err != nil {
			uc.log.Warn().Err(err).Msg("certificaciones: backend no disponible, usando datos de ejemplo")
		} else {
			uc.log.Warn().Msg("certificaciones: respuesta vacía, usando datos de ejemplo")
		}
		return DatosDeEjemplo(), true
	}
	return NormalizarImplementaciones(filas), false
}

// ListarImplementaciones aplica filtros y pagina la tabla de implementaciones.
func (uc *UseCase) ListarImplementaciones(ctx context.Context, f dto.FiltrosImplementaciones, pagina int) *dto.ListaImplementaciones {
	registros, fallback := uc.CargarImplementaciones(ctx)
	filtrados := FiltrarImplementaciones(registros, f)

	paginados, meta := Paginar(filtrados, pagina)
	meta.EstadoVacio = EstadoVacio(len(registros), len(filtrados), f.Activos())

	items := make([]dto.ImplementacionItem, 0, len(paginados))
	base := (meta.Page - 1) * dto.PageSize
	for i, r := range paginados {
		items = append(items, implementacionItem(r, base+i+1))
	}
	return &dto.ListaImplementaciones{Items: items, Pagina: meta, UsandoDatosFallback: fallback}
}

// ListarCertificaciones aplica filtros y pagina la lista aplanada de
// certificaciones.
func (uc *UseCase) ListarCertificaciones(ctx context.Context, f dto.FiltrosCertificaciones, pagina int) *dto.ListaCertificaciones {
	registros, fallback := uc.CargarCertificaciones(ctx)
	aplanadas := AplanarCertificaciones(registros)
	filtradas := FiltrarCertificaciones(aplanadas, f)

	paginadas, meta := Paginar(filtradas, pagina)
	meta.EstadoVacio = EstadoVacio(len(aplanadas), len(filtradas), f.Activos())

	items := make([]dto.CertificacionItem, 0, len(paginadas))
	base := (meta.Page - 1) * dto.PageSize
	for i, fila := range paginadas {
		items = append(items, certificacionItem(fila, base+i+1))
	}
	return &dto.ListaCertificaciones{Items: items, Pagina: meta, UsandoDatosFallback: fallback}
}

// ExportarImplementaciones genera el archivo del conjunto filtrado completo,
// sin paginar. Devuelve contenido, nombre de archivo y content type.
func (uc *UseCase) ExportarImplementaciones(ctx context.Context, f dto.FiltrosImplementaciones, formato string) ([]byte, string, string, error) {
	registros, _ := uc.CargarImplementaciones(ctx)
	filtrados := FiltrarImplementaciones(registros, f)

	items := make([]dto.ImplementacionItem, 0, len(filtrados))
	for i, r := range filtrados {
		items = append(items, implementacionItem(r, i+1))
	}

	generado := uc.ahora()
	contenido, contentType, err := uc.exp.Implementaciones(formato, items, generado)
	if err != nil {
		return nil, "", "", err
	}
	nombre := fmt.Sprintf("implementaciones_%s.%s", generado.Format("2006-01-02"), formato)
	return contenido, nombre, contentType, nil
}

// ExportarCertificaciones genera el archivo de certificaciones filtradas.
func (uc *UseCase) ExportarCertificaciones(ctx context.Context, f dto.FiltrosCertificaciones, formato string) ([]byte, string, string, error) {
	registros, _ := uc.CargarCertificaciones(ctx)
	filtradas := FiltrarCertificaciones(AplanarCertificaciones(registros), f)

	items := make([]dto.CertificacionItem, 0, len(filtradas))
	for i, fila := range filtradas {
		items = append(items, certificacionItem(fila, i+1))
	}

	generado := uc.ahora()
	contenido, contentType, err := uc.exp.Certificaciones(formato, items, generado)
	if err != nil {
		return nil, "", "", err
	}
	nombre := fmt.Sprintf("certificaciones_%s.%s", generado.Format("2006-01-02"), formato)
	return contenido, nombre, contentType, nil
}

// FormatoValido valida el formato de exportación pedido.
func FormatoValido(formato string) error {
	switch formato {
	case "csv", "xlsx", "html", "pdf":
		return nil
	}
	return fmt.Errorf("formato %q: %w", formato, domain.ErrInvalidInput)
}

func implementacionItem(r entity.Registro, numero int) dto.ImplementacionItem {
	return dto.ImplementacionItem{
		Numero:              numero,
		Empresa:             r.EmpresaNombre,
		RNC:                 r.RNC,
		Direccion:           r.Direccion,
		Contacto:            r.Contacto,
		ContactoEmail:       r.ContactoEmail,
		Tecnico:             r.TecnicoNombre,
		Vendedor:            r.VendedorNombre,
		Distribuidor:        r.DistribuidorNombre,
		Sistema:             sistemaConVersion(r),
		MontoImplementacion: montoTexto(r.MontoImplementacion),
		Abono:               montoTexto(r.Abono),
		Estado:              r.Estado,
		FechaContratacion:   r.FechaContratacion,
	}
}

func certificacionItem(f entity.FilaCertificacion, numero int) dto.CertificacionItem {
	return dto.CertificacionItem{
		Numero:        numero,
		Empresa:       f.Nombre,
		RNC:           f.RNC,
		Certificacion: f.Certificacion,
		Contacto:      f.Contacto,
		Email:         f.Email,
		Fecha:         f.Fecha,
		Tipo:          f.Tipo(),
		EmpresaPadre:  f.EmpresaPadre,
	}
}

func sistemaConVersion(r entity.Registro) string {
	if r.Sistema == "" {
		return ""
	}
	if r.Version == "" {
		return r.Sistema
	}
	return r.Sistema + " v: " + r.Version
}

func montoTexto(d decimal.Decimal) string {
	if d.IsZero() {
		return ""
	}
	return d.StringFixed(2)
}
