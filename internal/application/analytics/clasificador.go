// Package analytics arma los datasets del tablero: series mensuales,
// agrupaciones por dimensión, tendencias y sumas monetarias, más el
// drill-down hacia las filas exactas que aportaron a cada elemento.
package analytics

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Etapas canónicas de certificación, en orden de avance. El clasificador
// siempre devuelve una de estas y las series las presentan todas aunque
// tengan conteo cero.
const (
	EtapaSinIniciar  = "Sin Iniciar"
	EtapaSinEmpezar  = "Sin empezar Certificación"
	EtapaEnvioPrueba = "Paso 4 Envío de Pruebas"
	EtapaValidacion  = "Paso 6 Validación RI"
	EtapaDeclaracion = "Paso 13 Declaración Jurada"
	EtapaFinal       = "Paso 15 Finalización"
)

// EtapasOrdenadas es el orden fijo de presentación de las etapas.
var EtapasOrdenadas = []string{
	EtapaSinIniciar,
	EtapaSinEmpezar,
	EtapaEnvioPrueba,
	EtapaValidacion,
	EtapaDeclaracion,
	EtapaFinal,
}

// reglasEtapa mapea palabras clave (ya plegadas, sin tildes y en minúscula) a
// la etapa canónica. Se evalúan en orden: las etapas más avanzadas primero
// para que "paso 15" no caiga en una regla más genérica.
var reglasEtapa = []struct {
	claves []string
	etapa  string
}{
	{[]string{"paso 15", "finalizacion"}, EtapaFinal},
	{[]string{"paso 13", "declaracion jurada"}, EtapaDeclaracion},
	{[]string{"paso 6", "validacion ri"}, EtapaValidacion},
	{[]string{"paso 4", "envio de pruebas"}, EtapaEnvioPrueba},
	{[]string{"sin empezar"}, EtapaSinEmpezar},
}

var plegador = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// plegar normaliza un texto para comparación: sin tildes y en minúscula.
func plegar(s string) string {
	sinTildes, _, err := transform.String(plegador, s)
	if err != nil {
		sinTildes = s
	}
	return strings.ToLower(strings.TrimSpace(sinTildes))
}

// ClasificarEtapa lleva el texto libre de certificación del backend a una
// etapa canónica. Un valor en blanco o no reconocido es "Sin Iniciar".
func ClasificarEtapa(valor string) string {
	v := plegar(valor)
	if v == "" {
		return EtapaSinIniciar
	}
	for _, regla := range reglasEtapa {
		for _, clave := range regla.claves {
			if strings.Contains(v, clave) {
				return regla.etapa
			}
		}
	}
	return EtapaSinIniciar
}
