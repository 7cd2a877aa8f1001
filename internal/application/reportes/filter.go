package reportes

import (
	"strings"

	"github.com/waopos/fedo-reportes-api/internal/application/dto"
	"github.com/waopos/fedo-reportes-api/internal/domain/entity"
)

// contiene es el predicado base de filtrado: "contiene" insensible a
// mayúsculas. Un filtro vacío acepta todo.
func contiene(valor, filtro string) bool {
	if filtro == "" {
		return true
	}
	return strings.Contains(strings.ToLower(valor), strings.ToLower(filtro))
}

// contieneRNC filtra el RNC sobre el texto crudo, sin pasar a minúsculas
// (los RNC son numéricos; así se preserva el comportamiento observado).
func contieneRNC(valor, filtro string) bool {
	if filtro == "" {
		return true
	}
	return strings.Contains(valor, filtro)
}

// tokens de filtro que seleccionan certificaciones en blanco.
var tokensEnBlanco = []string{"blanco", "vacio", "vacío", "sin estado"}

// coincideCertificacion aplica la semántica especial del filtro de
// certificación:
//   - un filtro que menciona "blanco"/"vacio"/"vacío"/"sin estado" acepta solo
//     valores vacíos o de puro espacio
//   - "finalización"/"finalizacion" exacto acepta solo la etapa Paso 15
//   - "sin empezar" exacto acepta solo "Sin empezar Certificación"
//   - cualquier otro filtro es un "contiene" normal
func coincideCertificacion(valor, filtro string) bool {
	if filtro == "" {
		return true
	}
	q := strings.ToLower(strings.TrimSpace(filtro))

	for _, token := range tokensEnBlanco {
		if strings.Contains(q, token) {
			return strings.TrimSpace(valor) == ""
		}
	}
	v := strings.ToLower(strings.TrimSpace(valor))
	if q == "finalización" || q == "finalizacion" {
		return v == "paso 15 finalización"
	}
	if q == "sin empezar" {
		return v == "sin empezar certificación"
	}
	return strings.Contains(v, q)
}

// FiltrarImplementaciones aplica los filtros activos con AND.
func FiltrarImplementaciones(registros []entity.Registro, f dto.FiltrosImplementaciones) []entity.Registro {
	out := make([]entity.Registro, 0, len(registros))
	for _, r := range registros {
		if !contiene(r.EmpresaNombre, f.Empresa) {
			continue
		}
		if !contieneRNC(r.RNC, f.RNC) {
			continue
		}
		if !contiene(r.TecnicoNombre, f.Tecnico) {
			continue
		}
		if !contiene(r.VendedorNombre, f.Vendedor) {
			continue
		}
		if !contiene(r.Estado, f.Estado) {
			continue
		}
		if !contiene(r.Sistema, f.Sistema) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// FiltrarCertificaciones aplica los filtros activos con AND sobre la lista
// aplanada (principales y subsidiarias).
func FiltrarCertificaciones(filas []entity.FilaCertificacion, f dto.FiltrosCertificaciones) []entity.FilaCertificacion {
	out := make([]entity.FilaCertificacion, 0, len(filas))
	for _, fila := range filas {
		if !contiene(fila.Nombre, f.Empresa) {
			continue
		}
		if !contieneRNC(fila.RNC, f.RNC) {
			continue
		}
		if !coincideCertificacion(fila.Certificacion, f.Certificacion) {
			continue
		}
		if !contiene(fila.Tipo(), f.Tipo) {
			continue
		}
		if !contiene(fila.EmpresaPadre, f.EmpresaPadre) {
			continue
		}
		out = append(out, fila)
	}
	return out
}

// Paginar corta la página pedida (tamaño fijo dto.PageSize) y arma los
// metadatos. Una página fuera de rango devuelve la última con contenido.
func Paginar[T any](items []T, pagina int) ([]T, dto.PageResponse) {
	total := len(items)
	totalPaginas := (total + dto.PageSize - 1) / dto.PageSize
	if totalPaginas == 0 {
		totalPaginas = 1
	}
	if pagina < 1 {
		pagina = 1
	}
	if pagina > totalPaginas {
		pagina = totalPaginas
	}

	inicio := (pagina - 1) * dto.PageSize
	fin := inicio + dto.PageSize
	if inicio > total {
		inicio = total
	}
	if fin > total {
		fin = total
	}

	return items[inicio:fin], dto.PageResponse{
		Page:       pagina,
		PageSize:   dto.PageSize,
		Total:      total,
		TotalPages: totalPaginas,
		Paginas:    SecuenciaPaginas(pagina, totalPaginas),
	}
}

// SecuenciaPaginas arma la tira de números de página con elipsis: siempre la
// primera, la última y una ventana de ±1 alrededor de la actual. Un hueco de
// exactamente una página se rellena con su número; huecos mayores se marcan
// con 0 (elipsis).
func SecuenciaPaginas(actual, total int) []int {
	const delta = 1

	var visibles []int
	for p := 1; p <= total; p++ {
		if p == 1 || p == total || (p >= actual-delta && p <= actual+delta) {
			visibles = append(visibles, p)
		}
	}

	var out []int
	ultimo := 0
	for _, p := range visibles {
		if ultimo != 0 {
			if p-ultimo == 2 {
				out = append(out, ultimo+1)
			} else if p-ultimo > 2 {
				out = append(out, 0)
			}
		}
		out = append(out, p)
		ultimo = p
	}
	return out
}

// EstadoVacio decide el discriminador de lista vacía: sin filas en el origen
// es "sin_datos" (recargar); filas en el origen pero ninguna tras filtrar es
// "sin_resultados" (limpiar filtros).
func EstadoVacio(totalOrigen, totalFiltrado int, filtrosActivos bool) string {
	switch {
	case totalOrigen == 0:
		return dto.EstadoSinDatos
	case totalFiltrado == 0 && filtrosActivos:
		return dto.EstadoSinResultados
	case totalFiltrado == 0:
		return dto.EstadoSinDatos
	default:
		return dto.EstadoConDatos
	}
}
