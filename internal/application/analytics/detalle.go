package analytics

import (
	"fmt"

	"github.com/waopos/fedo-reportes-api/internal/application/dto"
	"github.com/waopos/fedo-reportes-api/internal/domain"
	"github.com/waopos/fedo-reportes-api/internal/domain/entity"
)

// Dimensiones de drill-down aceptadas.
const (
	DimensionMes           = "mes"
	DimensionTecnico       = "tecnico"
	DimensionVendedor      = "vendedor"
	DimensionEstado        = "estado"
	DimensionCertificacion = "certificacion"
)

func filaPrincipal(r entity.Registro) dto.DetalleFila {
	return dto.DetalleFila{
		Nombre:        r.EmpresaNombre,
		RNC:           r.RNC,
		Estado:        r.Estado,
		Certificacion: r.Certificacion,
		Fecha:         r.FechaContratacion,
		Tipo:          "Principal",
	}
}

func filaSubsidiaria(r entity.Registro, h entity.EmpresaHija) dto.DetalleFila {
	return dto.DetalleFila{
		Nombre:        h.Nombre,
		RNC:           h.RNC,
		Estado:        h.Estado,
		Certificacion: h.Estado,
		Fecha:         r.FechaContratacion,
		Tipo:          "Subsidiaria",
		EmpresaPadre:  r.EmpresaNombre,
	}
}

// FilasDeDetalle devuelve el subconjunto exacto de filas que aportó al
// elemento de gráfico identificado por dimensión y clave. Las dimensiones
// por mes y por certificación incluyen a las subsidiarias porque sus series
// también las cuentan; las demás agrupan empresas principales.
func FilasDeDetalle(registros []entity.Registro, dimension, clave string) ([]dto.DetalleFila, error) {
	var filas []dto.DetalleFila

	switch dimension {
	case DimensionMes:
		for _, r := range registros {
			t, ok := parsearFecha(r.FechaContratacion)
			if !ok {
				continue
			}
			if mes, _ := claveMes(t); mes != clave {
				continue
			}
			filas = append(filas, filaPrincipal(r))
			for _, h := range r.EmpresasHijas {
				filas = append(filas, filaSubsidiaria(r, h))
			}
		}
	case DimensionTecnico:
		for _, r := range registros {
			if etiquetaTecnico(r) == clave {
				filas = append(filas, filaPrincipal(r))
			}
		}
	case DimensionVendedor:
		for _, r := range registros {
			if etiquetaVendedor(r) == clave {
				filas = append(filas, filaPrincipal(r))
			}
		}
	case DimensionEstado:
		for _, r := range registros {
			if etiquetaEstado(r) == clave {
				filas = append(filas, filaPrincipal(r))
			}
		}
	case DimensionCertificacion:
		for _, r := range registros {
			if ClasificarEtapa(r.Certificacion) == clave {
				filas = append(filas, filaPrincipal(r))
			}
			for _, h := range r.EmpresasHijas {
				if ClasificarEtapa(h.Estado) == clave {
					filas = append(filas, filaSubsidiaria(r, h))
				}
			}
		}
	default:
		return nil, fmt.Errorf("dimensión %q: %w", dimension, domain.ErrInvalidInput)
	}

	return filas, nil
}
