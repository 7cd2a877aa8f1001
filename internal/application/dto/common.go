package dto

// PageSize es el tamaño de página fijo de todas las tablas del sistema.
const PageSize = 10

// Estados vacíos de un listado. Distinguen "no hay datos en el origen" de
// "los filtros activos no dejaron resultados": el cliente muestra acciones
// distintas (recargar vs limpiar filtros) y no deben confundirse.
const (
	EstadoConDatos      = "con_datos"
	EstadoSinDatos      = "sin_datos"
	EstadoSinResultados = "sin_resultados"
)

// PageResponse metadatos de página en respuestas de listados.
type PageResponse struct {
	Page        int    `json:"page"`
	PageSize    int    `json:"page_size"`
	Total       int    `json:"total"`
	TotalPages  int    `json:"total_pages"`
	Paginas     []int  `json:"paginas"` // secuencia con elipsis; 0 representa "..."
	EstadoVacio string `json:"estado_vacio,omitempty"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
