package entity

import "github.com/shopspring/decimal"

// Registro es una implementación normalizada: una fila por empresa principal,
// con sus subsidiarias anidadas. El backend devuelve los campos con nombres
// heterogéneos según la versión del flujo; el normalizador resuelve las
// cadenas de fallback y produce siempre esta forma.
type Registro struct {
	ID                  int
	EmpresaNombre       string
	RNC                 string
	Direccion           string
	Contacto            string
	ContactoEmail       string
	ContactoCelular     string
	TecnicoNombre       string
	TecnicoEmail        string
	VendedorNombre      string
	VendedorEmail       string
	DistribuidorNombre  string
	Sistema             string
	Version             string
	Integracion         string
	Formato             string
	Estado              string
	Certificacion       string
	MontoImplementacion decimal.Decimal
	Abono               decimal.Decimal
	// Fechas en crudo ("YYYY-MM-DD" u otros formatos del backend). Una fecha
	// no parseable se conserva para la tabla pero queda fuera de las
	// agregaciones mensuales.
	FechaContratacion string
	FechaInicio       string
	FechaCreacion     string
	FechaModificacion string
	Resumen           string
	EmpresasHijas     []EmpresaHija
}

// EmpresaHija es una subsidiaria contenida en exactamente un Registro. No
// tiene ciclo de vida propio en este servicio.
type EmpresaHija struct {
	Nombre   string
	RNC      string
	Estado   string
	Contacto string
	Email    string
	Activo   bool
}

// FilaCertificacion es la forma aplanada usada por la tabla de
// certificaciones: la empresa principal se emite una vez y cada subsidiaria
// como fila adicional con referencia al nombre del padre.
type FilaCertificacion struct {
	Nombre        string
	RNC           string
	Certificacion string
	Contacto      string
	Email         string
	Fecha         string
	EsEmpresaHija bool
	EmpresaPadre  string
}

// Tipo devuelve la etiqueta de la columna Tipo en tablas y exportaciones.
func (f FilaCertificacion) Tipo() string {
	if f.EsEmpresaHija {
		return "Subsidiaria"
	}
	return "Principal"
}
