package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/waopos/fedo-reportes-api/internal/application/dto"
	"github.com/waopos/fedo-reportes-api/internal/domain/entity"
)

// topCategorias limita las series categóricas a las categorías con más
// registros para que los gráficos de barras no se hagan ilegibles.
const topCategorias = 15

// ventanaTendencia es el tamaño de la media móvil de la serie mensual.
const ventanaTendencia = 3

var nombresMes = []string{"Ene", "Feb", "Mar", "Abr", "May", "Jun", "Jul", "Ago", "Sep", "Oct", "Nov", "Dic"}

var formatosFecha = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parsearFecha intenta los formatos de fecha que entrega el backend. Una
// fecha no parseable excluye la fila de las series por mes.
func parsearFecha(s string) (time.Time, bool) {
	for _, formato := range formatosFecha {
		if t, err := time.Parse(formato, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// claveMes produce la clave ordenable "YYYY-MM" y su etiqueta "Ene 2025".
func claveMes(t time.Time) (string, string) {
	clave := t.Format("2006-01")
	etiqueta := nombresMes[int(t.Month())-1] + " " + t.Format("2006")
	return clave, etiqueta
}

// etiquetaTecnico lleva el nombre del técnico a la etiqueta de la serie.
func etiquetaTecnico(r entity.Registro) string {
	if r.TecnicoNombre == "" || r.TecnicoNombre == "No asignado" {
		return "Sin asignar"
	}
	return r.TecnicoNombre
}

func etiquetaVendedor(r entity.Registro) string {
	if r.VendedorNombre == "" || r.VendedorNombre == "No asignado" {
		return "Sin asignar"
	}
	return r.VendedorNombre
}

func etiquetaEstado(r entity.Registro) string {
	if r.Estado == "" || r.Estado == "No especificado" {
		return "Sin especificar"
	}
	return r.Estado
}

// SerieImplementacionesPorMes agrupa por mes de contratación, ordenado
// ascendente. Cada registro aporta su empresa principal más sus
// subsidiarias. La tendencia es la media móvil de la propia serie.
func SerieImplementacionesPorMes(registros []entity.Registro) dto.SerieMensual {
	conteos := map[string]int{}
	etiquetas := map[string]string{}
	for _, r := range registros {
		t, ok := parsearFecha(r.FechaContratacion)
		if !ok {
			continue
		}
		clave, etiqueta := claveMes(t)
		conteos[clave] += 1 + len(r.EmpresasHijas)
		etiquetas[clave] = etiqueta
	}

	claves := make([]string, 0, len(conteos))
	for clave := range conteos {
		claves = append(claves, clave)
	}
	sort.Strings(claves)

	serie := dto.SerieMensual{
		Claves:    claves,
		Etiquetas: make([]string, 0, len(claves)),
		Valores:   make([]int, 0, len(claves)),
	}
	for _, clave := range claves {
		serie.Etiquetas = append(serie.Etiquetas, etiquetas[clave])
		serie.Valores = append(serie.Valores, conteos[clave])
	}
	serie.Tendencia = MediaMovil(serie.Valores, ventanaTendencia)
	return serie
}

// MediaMovil calcula la media móvil con ventana hacia atrás. Al inicio la
// ventana crece hasta alcanzar su tamaño, así la tendencia tiene la misma
// longitud que la serie. Los promedios se redondean al entero más cercano.
func MediaMovil(valores []int, ventana int) []int {
	if len(valores) == 0 || ventana < 1 {
		return nil
	}
	out := make([]int, len(valores))
	for i := range valores {
		inicio := i - ventana + 1
		if inicio < 0 {
			inicio = 0
		}
		suma := 0
		for j := inicio; j <= i; j++ {
			suma += valores[j]
		}
		out[i] = int(math.Round(float64(suma) / float64(i-inicio+1)))
	}
	return out
}

// seriePorCategoria agrupa por una dimensión categórica y se queda con las
// categorías de mayor conteo, en orden descendente. Los empates se rompen
// alfabéticamente para que la salida sea estable.
func seriePorCategoria(registros []entity.Registro, etiqueta func(entity.Registro) string) dto.SerieCategorica {
	conteos := map[string]int{}
	for _, r := range registros {
		conteos[etiqueta(r)]++
	}

	claves := make([]string, 0, len(conteos))
	for clave := range conteos {
		claves = append(claves, clave)
	}
	sort.Slice(claves, func(i, j int) bool {
		if conteos[claves[i]] != conteos[claves[j]] {
			return conteos[claves[i]] > conteos[claves[j]]
		}
		return claves[i] < claves[j]
	})
	if len(claves) > topCategorias {
		claves = claves[:topCategorias]
	}

	serie := dto.SerieCategorica{
		Etiquetas: make([]string, 0, len(claves)),
		Valores:   make([]int, 0, len(claves)),
	}
	for _, clave := range claves {
		serie.Etiquetas = append(serie.Etiquetas, clave)
		serie.Valores = append(serie.Valores, conteos[clave])
	}
	return serie
}

// SeriePorTecnico agrupa los registros por técnico asignado.
func SeriePorTecnico(registros []entity.Registro) dto.SerieCategorica {
	return seriePorCategoria(registros, etiquetaTecnico)
}

// SeriePorVendedor agrupa los registros por vendedor.
func SeriePorVendedor(registros []entity.Registro) dto.SerieCategorica {
	return seriePorCategoria(registros, etiquetaVendedor)
}

// SeriePorEstado agrupa los registros por estado de implementación.
func SeriePorEstado(registros []entity.Registro) dto.SerieCategorica {
	return seriePorCategoria(registros, etiquetaEstado)
}

// SeriePorCertificacion clasifica cada empresa (principales y subsidiarias)
// en su etapa canónica. Las seis etapas aparecen siempre, en orden de
// avance, aunque tengan conteo cero.
func SeriePorCertificacion(registros []entity.Registro) dto.SerieCategorica {
	conteos := map[string]int{}
	for _, etapa := range EtapasOrdenadas {
		conteos[etapa] = 0
	}
	for _, r := range registros {
		conteos[ClasificarEtapa(r.Certificacion)]++
		for _, h := range r.EmpresasHijas {
			conteos[ClasificarEtapa(h.Estado)]++
		}
	}

	serie := dto.SerieCategorica{
		Etiquetas: make([]string, 0, len(EtapasOrdenadas)),
		Valores:   make([]int, 0, len(EtapasOrdenadas)),
	}
	for _, etapa := range EtapasOrdenadas {
		serie.Etiquetas = append(serie.Etiquetas, etapa)
		serie.Valores = append(serie.Valores, conteos[etapa])
	}
	return serie
}

// mesesDePeriodo traduce los períodos de ventana a meses hacia atrás. Cero
// significa que el período no es de ventana.
func mesesDePeriodo(periodo string) int {
	switch periodo {
	case "3meses":
		return 3
	case "6meses":
		return 6
	}
	return 0
}

// dentroDePeriodo decide si un mes cae en el período pedido. "año" acepta
// solo el año calendario en curso; "3meses"/"6meses" son ventanas de meses
// hacia atrás contadas desde el mes actual inclusive; cualquier otro valor
// no acota.
func dentroDePeriodo(t, ahora time.Time, periodo string) bool {
	if periodo == "año" || periodo == "ano" {
		return t.Year() == ahora.Year()
	}
	meses := mesesDePeriodo(periodo)
	if meses <= 0 {
		return true
	}
	diferencia := (ahora.Year()-t.Year())*12 + int(ahora.Month()) - int(t.Month())
	return diferencia >= 0 && diferencia < meses
}

// serieMonetariaPorMes suma un campo monetario por mes de contratación,
// acotado al período pedido.
func serieMonetariaPorMes(registros []entity.Registro, monto func(entity.Registro) decimal.Decimal, periodo string, ahora time.Time) dto.SerieMonetaria {
	sumas := map[string]decimal.Decimal{}
	etiquetas := map[string]string{}
	for _, r := range registros {
		t, ok := parsearFecha(r.FechaContratacion)
		if !ok || !dentroDePeriodo(t, ahora, periodo) {
			continue
		}
		clave, etiqueta := claveMes(t)
		sumas[clave] = sumas[clave].Add(monto(r))
		etiquetas[clave] = etiqueta
	}

	claves := make([]string, 0, len(sumas))
	for clave := range sumas {
		claves = append(claves, clave)
	}
	sort.Strings(claves)

	serie := dto.SerieMonetaria{
		Claves:    claves,
		Etiquetas: make([]string, 0, len(claves)),
		Montos:    make([]string, 0, len(claves)),
	}
	for _, clave := range claves {
		serie.Etiquetas = append(serie.Etiquetas, etiquetas[clave])
		serie.Montos = append(serie.Montos, sumas[clave].StringFixed(2))
	}
	return serie
}

// SerieMontosPorMes suma los montos de implementación por mes.
func SerieMontosPorMes(registros []entity.Registro, periodo string, ahora time.Time) dto.SerieMonetaria {
	return serieMonetariaPorMes(registros, func(r entity.Registro) decimal.Decimal { return r.MontoImplementacion }, periodo, ahora)
}

// SerieAbonosPorMes suma los abonos por mes.
func SerieAbonosPorMes(registros []entity.Registro, periodo string, ahora time.Time) dto.SerieMonetaria {
	return serieMonetariaPorMes(registros, func(r entity.Registro) decimal.Decimal { return r.Abono }, periodo, ahora)
}
