package dto

// SerieMensual una serie agrupada por mes. Labels y Values van en paralelo,
// ordenados ascendentemente por clave "YYYY-MM".
type SerieMensual struct {
	Claves    []string `json:"claves"`    // "2025-01", ...
	Etiquetas []string `json:"etiquetas"` // "Ene 2025", ...
	Valores   []int    `json:"valores"`
	Tendencia []int    `json:"tendencia,omitempty"` // media móvil sobre Valores
}

// SerieCategorica una serie agrupada por dimensión categórica (técnico,
// vendedor, etapa de certificación, estado).
type SerieCategorica struct {
	Etiquetas []string `json:"etiquetas"`
	Valores   []int    `json:"valores"`
}

// SerieMonetaria sumas mensuales de un campo monetario, ya filtradas por
// período si se pidió.
type SerieMonetaria struct {
	Claves    []string `json:"claves"`
	Etiquetas []string `json:"etiquetas"`
	Montos    []string `json:"montos"` // decimales serializados con 2 posiciones
}

// DashboardResponse todos los datasets del tablero en una sola respuesta.
type DashboardResponse struct {
	ImplementacionesPorMes SerieMensual    `json:"implementaciones_por_mes"`
	PorTecnico             SerieCategorica `json:"por_tecnico"`
	PorVendedor            SerieCategorica `json:"por_vendedor"`
	PorEstado              SerieCategorica `json:"por_estado"`
	PorCertificacion       SerieCategorica `json:"por_certificacion"`
	MontosPorMes           SerieMonetaria  `json:"montos_por_mes"`
	AbonosPorMes           SerieMonetaria  `json:"abonos_por_mes"`
	TotalRegistros         int             `json:"total_registros"`
	UsandoDatosFallback    bool            `json:"usando_datos_fallback"`
}

// DetalleRequest identifica el elemento de gráfico cuyo subconjunto de filas
// se quiere ver. Dimension: mes|tecnico|vendedor|estado|certificacion.
type DetalleRequest struct {
	Dimension string `query:"dimension"`
	Clave     string `query:"clave"`
}

// DetalleFila fila del modal de drill-down.
type DetalleFila struct {
	Nombre        string `json:"nombre"`
	RNC           string `json:"rnc"`
	Estado        string `json:"estado"`
	Certificacion string `json:"certificacion"`
	Fecha         string `json:"fecha"`
	Tipo          string `json:"tipo"` // Principal | Subsidiaria
	EmpresaPadre  string `json:"empresa_padre,omitempty"`
}

// DetalleResponse subconjunto exacto de filas que aportaron al elemento.
type DetalleResponse struct {
	Dimension string        `json:"dimension"`
	Clave     string        `json:"clave"`
	Total     int           `json:"total"`
	Filas     []DetalleFila `json:"filas"`
}
